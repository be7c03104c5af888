// Package config handles facadegen configuration loading and management.
package config

// Config holds all export settings.
type Config struct {
	Export  ExportConfig  `yaml:"export"`
	Catalog CatalogConfig `yaml:"catalog"`
	Heights HeightsConfig `yaml:"heights"`
	Logging LoggingConfig `yaml:"logging"`
}

// ExportConfig holds mesh export settings.
type ExportConfig struct {
	OutputDir string `yaml:"output_dir"`
	// WorkDirRoot is where per-export session directories are created.
	// Empty means the system temp directory.
	WorkDirRoot string `yaml:"work_dir_root"`
	// LevelDetail lays levels out item by item instead of one textured
	// face per level.
	LevelDetail bool       `yaml:"level_detail"`
	VertexColor [4]float32 `yaml:"vertex_color"`
}

// CatalogConfig holds texture catalog paths.
type CatalogConfig struct {
	FacadePath   string `yaml:"facade_path"`
	CladdingPath string `yaml:"cladding_path"`
	Watch        bool   `yaml:"watch"` // Re-export when a catalog changes
}

// HeightsConfig holds the level heights used when a building footprint
// does not set its own, in meters.
type HeightsConfig struct {
	Basement float64 `yaml:"basement"`
	Ground   float64 `yaml:"ground"`
	Level    float64 `yaml:"level"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Export: ExportConfig{
			OutputDir:   "out",
			VertexColor: [4]float32{0.7, 0.3, 0.3, 1},
		},
		Catalog: CatalogConfig{
			FacadePath: "textures/facade.yaml",
		},
		Heights: HeightsConfig{
			Basement: 1,
			Ground:   4,
			Level:    3,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
