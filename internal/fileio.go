package internal

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/text/encoding"
)

const maxLineSize = 1 << 20

// FileOpenError is returned when an input file cannot be opened for reading.
type FileOpenError struct {
	Path string
	Err  error
}

func (e *FileOpenError) Error() string {
	return fmt.Sprintf("opening %s: %v", e.Path, e.Err)
}

func (e *FileOpenError) Unwrap() error {
	return e.Err
}

// FileWriteError is returned when an output file cannot be created or written.
type FileWriteError struct {
	Path string
	Err  error
}

func (e *FileWriteError) Error() string {
	return fmt.Sprintf("writing %s: %v", e.Path, e.Err)
}

func (e *FileWriteError) Unwrap() error {
	return e.Err
}

// LoadRecords reads a Datev file. If the file cannot be opened it returns an
// empty, non-nil Document together with a *FileOpenError so callers can choose
// to continue with the empty result.
func LoadRecords(path string, enc encoding.Encoding) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return &Document{}, &FileOpenError{Path: path, Err: err}
	}
	defer f.Close()

	doc, err := ReadDocument(DecodingReader(f, enc))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return doc, nil
}

// ReadDocument takes the first line verbatim as header and parses every
// following line as a record.
func ReadDocument(r io.Reader) (*Document, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	doc := &Document{}
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if lineNo == 1 {
			doc.Header = line
			continue
		}

		rec, err := ParseRecord(line)
		if err != nil {
			var perr *ParseError
			if errors.As(err, &perr) {
				perr.Line = lineNo
			}
			return nil, err
		}
		doc.Records = append(doc.Records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning line %d: %w", lineNo+1, err)
	}
	return doc, nil
}

// SaveRecords writes the header and one formatted line per record, each
// terminated by "\n". A partially written file is left in place on failure.
func SaveRecords(path string, doc *Document) error {
	f, err := os.Create(path)
	if err != nil {
		return &FileWriteError{Path: path, Err: err}
	}

	if err := WriteDocument(f, doc); err != nil {
		f.Close()
		return &FileWriteError{Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		return &FileWriteError{Path: path, Err: err}
	}
	return nil
}

// WriteDocument serializes a document in Datev line form.
func WriteDocument(w io.Writer, doc *Document) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(doc.Header + "\n"); err != nil {
		return err
	}
	for _, rec := range doc.Records {
		if _, err := bw.WriteString(FormatRecord(rec) + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}
