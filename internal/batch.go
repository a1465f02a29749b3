package internal

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/gigurra/datev-compressor/internal/logger"
)

// Options configures one compaction invocation
type Options struct {
	Config *Config
	// Source names a registered loader; empty reads Datev text in the configured encoding
	Source string
}

// Result is the outcome of compacting one file
type Result struct {
	Input   string
	Output  string
	Header  string
	Records []Record
	Stats   Stats
	// Unreadable is set when the input could not be opened and was treated as empty
	Unreadable bool
	Err        error
}

func (o Options) config() *Config {
	if o.Config == nil {
		return NewDefaultConfig()
	}
	return o.Config
}

func (o Options) load(path string) (*Document, error) {
	if o.Source != "" {
		l, err := GetLoader(o.Source)
		if err != nil {
			return nil, err
		}
		return l.Load(path)
	}
	return LoadRecords(path, o.config().SourceEncoding())
}

// CompressFile loads in, compacts its records and writes them with the original header to out.
func CompressFile(ctx context.Context, in, out string, opts Options) (*Result, error) {
	log := logger.FromContext(ctx)
	cfg := opts.config()
	res := &Result{Input: in, Output: out}

	doc, err := opts.load(in)
	if err != nil {
		var openErr *FileOpenError
		if !errors.As(err, &openErr) || cfg.StrictInput {
			res.Err = err
			return res, err
		}
		log.Warn().Err(err).Str("input", in).Msg("input unreadable, continuing with empty record set")
		res.Unreadable = true
	}

	records, stats := cfg.Compactor().Compact(doc.Records)
	res.Header = doc.Header
	res.Records = records
	res.Stats = stats

	log.Debug().
		Int("input_records", stats.Input).
		Int("output_records", stats.Output).
		Int("runs", stats.Runs).
		Int("merged", stats.Merged).
		Int("daily", stats.Daily).
		Msg("compacted")

	if err := SaveRecords(out, &Document{Header: doc.Header, Records: records}); err != nil {
		res.Err = err
		return res, err
	}
	return res, nil
}

// CompressAll compacts every file in dir with the configured extension.
// Files are processed one after another and a failure only affects its own Result.
func CompressAll(ctx context.Context, dir string, opts Options) ([]*Result, error) {
	log := logger.FromContext(ctx)
	cfg := opts.config()

	paths, err := ListInputFiles(dir, cfg.Extension)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		log.Warn().Str("dir", dir).Str("extension", cfg.Extension).Msg("no files to convert")
		return nil, nil
	}

	var results []*Result
	for _, in := range paths {
		out := OutputName(in, cfg.OutputSuffix)
		log.Info().Str("input", in).Str("output", out).Msg("converting")

		res, err := CompressFile(ctx, in, out, opts)
		if err != nil {
			log.Error().Err(err).Str("input", in).Msg("conversion failed")
		}
		results = append(results, res)
	}
	return results, nil
}

// ListInputFiles returns the regular files directly inside dir whose extension is ext, sorted by name.
func ListInputFiles(dir, ext string) ([]string, error) {
	if dir == "" {
		dir = "."
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}

	var paths []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		if filepath.Ext(entry.Name()) == ext {
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(paths)
	return paths, nil
}

// OutputName builds the batch output path next to the input:
// "<name><ext><suffix><ext>", e.g. "kasse.csv" → "kasse.csv_C.csv".
func OutputName(path, suffix string) string {
	base := filepath.Base(path)
	return filepath.Join(filepath.Dir(path), base+suffix+filepath.Ext(base))
}
