// Package config loads popcompare settings from .env, the environment and
// command line flags, in increasing order of precedence.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Env holds the settings that may come from the environment
type Env struct {
	DumpDir   string `env:"POPCOMPARE_DUMP_DIR" envDefault:"./dumps"`
	DumpExt   string `env:"POPCOMPARE_DUMP_EXT" envDefault:".xml.gz"`
	OutDir    string `env:"POPCOMPARE_OUT_DIR" envDefault:"./sheets"`
	Format    string `env:"POPCOMPARE_FORMAT" envDefault:"xlsx"`
	Title     string `env:"POPCOMPARE_TITLE" envDefault:"Regional Growth"`
	Formulas  bool   `env:"POPCOMPARE_FORMULAS" envDefault:"false"`
	StoreDir  string `env:"POPCOMPARE_STORE_DIR"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
}

// Config is the validated configuration of one run
type Config struct {
	Env
	Before string
	After  string
	Region string
}

// LoadDotEnv loads variables from the given .env files into the process
// environment. Missing files are ignored; existing variables win.
func LoadDotEnv(files ...string) error {
	for _, file := range files {
		if err := godotenv.Load(file); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", file, err)
		}
	}
	return nil
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// ParseConfig parses environment and CLI flags into a Config.
// args are the flags followed by the before and after snapshot labels.
func ParseConfig(fs *flag.FlagSet, args []string, formats []string) (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg.Env); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.DumpDir, "dump-dir", cfg.DumpDir, "directory containing <label>-regions and <label>-nations dumps")
	fs.StringVar(&cfg.DumpExt, "ext", cfg.DumpExt, "dump file extension (.xml, .xml.gz, .xml.zst)")
	fs.StringVar(&cfg.OutDir, "out-dir", cfg.OutDir, "directory reports are written to")
	fs.StringVar(&cfg.Format, "format", cfg.Format, "report format ("+strings.Join(formats, ", ")+")")
	fs.StringVar(&cfg.Title, "title", cfg.Title, "report title / worksheet name")
	fs.BoolVar(&cfg.Formulas, "formulas", cfg.Formulas, "write spreadsheet formulas instead of computed deltas")
	fs.StringVar(&cfg.StoreDir, "store-dir", cfg.StoreDir, "PocketBase data directory to persist reports in (empty disables)")
	fs.StringVar(&cfg.Region, "region", "", "only show this region (show command)")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	rest := fs.Args()
	if len(rest) != 2 {
		return Config{}, fmt.Errorf("expected <before-label> <after-label>, got %d argument(s)", len(rest))
	}
	cfg.Before = strings.TrimSpace(rest[0])
	cfg.After = strings.TrimSpace(rest[1])
	if cfg.Before == "" || cfg.After == "" {
		return Config{}, errors.New("snapshot labels must not be empty")
	}
	if !contains(formats, cfg.Format) {
		return Config{}, fmt.Errorf("unsupported format %q (want one of %s)", cfg.Format, strings.Join(formats, ", "))
	}
	return cfg, nil
}

func contains(items []string, value string) bool {
	for _, item := range items {
		if item == value {
			return true
		}
	}
	return false
}
