package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/naoina/toml"

	"github.com/jcorbin/wicked/internal/wickutil"
)

// configFileName is looked for in the working directory and its parents
// when no -config flag is given.
const configFileName = "wicked.toml"

type config struct {
	Out     string `toml:"out"`     // record file directory
	SQLite  string `toml:"sqlite"`  // record database, instead of files when rebuilding
	Report  string `toml:"report"`  // markdown, or html by extension, report file
	Lines   int    `toml:"lines"`   // stop parsing after this many lines
	Decode  bool   `toml:"decode"`  // rebuild entities as their decoded text
	Indent  string `toml:"indent"`  // rebuilt element indentation
	Verbose bool   `toml:"verbose"` // trace parsed items and malformed markup
	NoColor bool   `toml:"no_color"`

	file string
}

func (cfg *config) flags(fs *flag.FlagSet) {
	fs.StringVar(&cfg.file, "config", "", "config file; defaults to the nearest "+configFileName)
	fs.StringVar(&cfg.Out, "out", "records", "record file directory")
	fs.StringVar(&cfg.SQLite, "sqlite", "", "also store records in this sqlite database, and rebuild from it")
	fs.StringVar(&cfg.Report, "report", "", "write a markdown (or .html) parse report to this file")
	fs.IntVar(&cfg.Lines, "lines", 0, "stop parsing after this many lines; 0 parses all")
	fs.BoolVar(&cfg.Decode, "decode", false, "rebuild entities as their decoded text")
	fs.StringVar(&cfg.Indent, "indent", "  ", "rebuilt element indentation")
	fs.BoolVar(&cfg.Verbose, "v", false, "enable verbose output")
	fs.BoolVar(&cfg.NoColor, "nocolor", false, "disable colored output")
}

// parse parses args into cfg, then loads any config file, then parses args
// again so that given flags take precedence over the file.
func (cfg *config) parse(fs *flag.FlagSet, args []string) error {
	cfg.flags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if cfg.file == "" {
		_, path, err := wickutil.FindWDFile(configFileName)
		if err != nil {
			return err
		}
		cfg.file = path
	}
	if cfg.file != "" {
		if err := cfg.load(cfg.file); err != nil {
			return err
		}
	}
	return fs.Parse(args)
}

func (cfg *config) load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := toml.NewDecoder(f).Decode(cfg); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}
