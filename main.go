package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/gigurra/datev-compressor/internal"
	"github.com/gigurra/datev-compressor/internal/logger"
)

type Params struct {
	Compress   bool   `descr:"Compress Datev files by accumulating same-day bookings" short:"c" optional:"true"`
	All        bool   `descr:"Convert all files with the configured extension in --dir" short:"a" optional:"true"`
	Import     string `descr:"File to import, optionally prefixed with a source (e.g. latin1:kasse.csv)" short:"i" optional:"true"`
	Export     string `descr:"File to export" short:"o" optional:"true"`
	Dir        string `descr:"Directory scanned by --all" default:"."`
	Config     string `descr:"Path to config file (default: ~/.datev-compressor/config.yaml)" optional:"true"`
	Output     string `descr:"Console output format" alts:"table,json,none" default:"table" strict:"true"`
	Xlsx       string `descr:"Also write a review workbook: a path for single files, any value for --all (writes <output>.xlsx)" optional:"true"`
	InitConfig bool   `descr:"Write the default config to the config path and exit" optional:"true"`
	Verbose    bool   `descr:"Enable debug logging" short:"v" optional:"true"`
}

const usage = `Usage:
  datev-compressor -c -i datev.csv -o datevC.csv   compress one file
  datev-compressor -c -a [--dir path]              compress every .csv file in a directory
  datev-compressor --help                          show all flags
`

func main() {
	boa.NewCmdT[Params]("datev-compressor").
		WithShort("Compress Datev cash-register exports").
		WithLong("Merges bookings of the same day that share account and booking text into one record with the summed value. Bookings on the daily account (0 by default) pass through unchanged.").
		WithRunFunc(func(params *Params) {
			if err := run(params); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
		}).
		Run()
}

func run(params *Params) error {
	log := logger.New(os.Stderr, params.Verbose)
	ctx := logger.WithContext(context.Background(), log)

	configPath := params.Config
	if configPath == "" {
		configPath = internal.DefaultConfigPath()
	}

	if params.InitConfig {
		if configPath == "" {
			return fmt.Errorf("no config path available, use --config")
		}
		if err := internal.NewDefaultConfig().Save(configPath); err != nil {
			return err
		}
		fmt.Printf("Wrote default config to %s\n", configPath)
		return nil
	}

	cfg, err := loadConfig(configPath, params.Config != "")
	if err != nil {
		return err
	}

	// Detection also picks the number format for the table
	detected := internal.DetectSystemLocale()
	displayCurrency := cfg.Currency
	if displayCurrency == "" {
		displayCurrency = detected
	}
	if displayCurrency == "" {
		displayCurrency = "EUR"
	}

	var results []*internal.Result
	switch {
	case params.Compress && params.All:
		results, err = internal.CompressAll(ctx, params.Dir, internal.Options{Config: cfg})
		if err != nil {
			return err
		}
		if len(results) == 0 {
			fmt.Fprintln(os.Stderr, "No csv files to convert")
		}
	case params.Compress && params.Import != "" && params.Export != "":
		source, in := internal.ParseFileArg(params.Import)
		log.Info().Str("input", in).Str("output", params.Export).Msg("converting")
		res, _ := internal.CompressFile(ctx, in, params.Export, internal.Options{Config: cfg, Source: source})
		results = append(results, res)
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("nothing to do: use -c together with -a, or with -i and -o")
	}

	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
			continue
		}
		if params.Xlsx != "" {
			xlsxPath := params.Xlsx
			if params.All {
				xlsxPath = res.Output + ".xlsx"
			}
			if err := internal.WriteRecordsXLSX(xlsxPath, res.Header, res.Records); err != nil {
				log.Error().Err(err).Str("xlsx", xlsxPath).Msg("writing workbook failed")
				failed++
			}
		}
	}

	switch params.Output {
	case "json":
		if err := internal.PrintResultsJSON(os.Stdout, results); err != nil {
			return err
		}
	case "table":
		for _, res := range results {
			if res.Err != nil {
				continue
			}
			internal.PrintRecordsTable(os.Stdout, res.Header, res.Records, internal.OutputOptions{
				Currency:     displayCurrency,
				DailyAccount: cfg.DailyAccount,
			})
		}
	}

	if failed > 0 {
		for _, res := range results {
			if res.Err != nil {
				fmt.Fprintf(os.Stderr, "%s: %v\n", res.Input, res.Err)
			}
		}
		return fmt.Errorf("%d of %d file(s) failed", failed, len(results))
	}
	return nil
}

// loadConfig reads the config file. A missing file is only an error when the path was given explicitly.
func loadConfig(path string, explicit bool) (*internal.Config, error) {
	if path == "" {
		return internal.NewDefaultConfig(), nil
	}
	cfg, err := internal.LoadConfig(path)
	if err == nil {
		return cfg, nil
	}
	if !explicit && errors.Is(err, fs.ErrNotExist) {
		return internal.NewDefaultConfig(), nil
	}
	return nil, err
}
