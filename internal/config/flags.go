package config

import "flag"

// Flags holds the command-line overrides of a subcommand.
type Flags struct {
	Config      string
	Debug       bool
	OutputDir   string
	Watch       bool
	LevelDetail bool
	Catalog     string
}

// RegisterFlags binds the config overrides to a subcommand's flag set.
func RegisterFlags(fs *flag.FlagSet) *Flags {
	f := &Flags{}
	fs.StringVar(&f.Config, "config", "", "Path to config file")
	fs.BoolVar(&f.Debug, "debug", false, "Enable debug logging")
	fs.StringVar(&f.OutputDir, "o", "", "Output directory")
	fs.BoolVar(&f.Watch, "watch", false, "Re-export when the catalog changes")
	fs.BoolVar(&f.LevelDetail, "level-detail", false, "Lay levels out item by item")
	fs.StringVar(&f.Catalog, "catalog", "", "Facade texture catalog")
	return f
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config, f *Flags) {
	if f == nil {
		return
	}
	if f.Debug {
		cfg.Logging.Level = "debug"
	}
	if f.OutputDir != "" {
		cfg.Export.OutputDir = f.OutputDir
	}
	if f.Watch {
		cfg.Catalog.Watch = true
	}
	if f.LevelDetail {
		cfg.Export.LevelDetail = true
	}
	if f.Catalog != "" {
		cfg.Catalog.FacadePath = f.Catalog
	}
}
