package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Paths     PathsConfig     `yaml:"paths" envconfig:"PATHS"`
	Render    RenderConfig    `yaml:"render" envconfig:"RENDER"`
	Analysis  AnalysisConfig  `yaml:"analysis" envconfig:"ANALYSIS"`
	Telemetry TelemetryConfig `yaml:"telemetry" envconfig:"TELEMETRY"`
	Export    ExportConfig    `yaml:"export" envconfig:"EXPORT"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level       string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn warning error"`
	Format      string `yaml:"format" envconfig:"FORMAT"`
	Output      string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath    string `yaml:"file_path" envconfig:"FILE_PATH"`
	Development bool   `yaml:"development" envconfig:"DEVELOPMENT"`
}

// PathsConfig contains file system paths configuration
type PathsConfig struct {
	Dataset   string `yaml:"dataset" envconfig:"DATASET" validate:"required"`
	OutputDir string `yaml:"output_dir" envconfig:"OUTPUT_DIR" validate:"required"`
	LogsDir   string `yaml:"logs_dir" envconfig:"LOGS_DIR"`
}

// RenderConfig controls how chart artifacts are produced
type RenderConfig struct {
	Format  string `yaml:"format" envconfig:"FORMAT" validate:"oneof=png svg"`
	Width   int    `yaml:"width" envconfig:"WIDTH" validate:"min=320,max=8000"`
	Height  int    `yaml:"height" envconfig:"HEIGHT" validate:"min=240,max=8000"`
	Caption bool   `yaml:"caption" envconfig:"CAPTION"`
}

// AnalysisConfig holds the fixed parameters of each section
type AnalysisConfig struct {
	// Director ranking
	TopDirectors int `yaml:"top_directors" envconfig:"TOP_DIRECTORS" validate:"min=1"`
	WinWeight    int `yaml:"win_weight" envconfig:"WIN_WEIGHT" validate:"min=0"`

	// Genre chord
	ChordThreshold int      `yaml:"chord_threshold" envconfig:"CHORD_THRESHOLD" validate:"min=0"`
	GenreDenylist  []string `yaml:"genre_denylist" envconfig:"GENRE_DENYLIST"`

	// Collaboration graph
	LayoutIterations int     `yaml:"layout_iterations" envconfig:"LAYOUT_ITERATIONS" validate:"min=1,max=10000"`
	LayoutRepulsion  float64 `yaml:"layout_repulsion" envconfig:"LAYOUT_REPULSION" validate:"gt=0"`
	LayoutSeed       int64   `yaml:"layout_seed" envconfig:"LAYOUT_SEED"`
	UnknownPerson    string  `yaml:"unknown_person" envconfig:"UNKNOWN_PERSON"`

	// Rating comparisons
	RatingColumns  []string  `yaml:"rating_columns" envconfig:"RATING_COLUMNS" validate:"len=3,dive,required"`
	AdvisoryRating string    `yaml:"advisory_rating" envconfig:"ADVISORY_RATING" validate:"required"`
	Aspect         []float64 `yaml:"aspect" envconfig:"ASPECT" validate:"len=3,dive,gt=0"`

	// Nomination correlation: source column -> column it is folded into
	MergeColumns map[string]string `yaml:"merge_columns" envconfig:"MERGE_COLUMNS"`
}

// TelemetryConfig contains tracing and metrics configuration
type TelemetryConfig struct {
	Tracing     bool   `yaml:"tracing" envconfig:"TRACING"`
	Metrics     bool   `yaml:"metrics" envconfig:"METRICS"`
	TraceFile   string `yaml:"trace_file" envconfig:"TRACE_FILE"`
	MetricsFile string `yaml:"metrics_file" envconfig:"METRICS_FILE"`
}

// ExportConfig controls the optional chart-data companion files
type ExportConfig struct {
	Tables bool `yaml:"tables" envconfig:"TABLES"`
}

// Load builds the configuration from defaults, an optional YAML file and
// environment variables, in that order of increasing precedence.
func Load() (*Config, error) {
	return LoadFrom(getConfigFilePath())
}

// LoadFrom is Load with an explicit YAML path. An empty path skips the file.
func LoadFrom(configFile string) (*Config, error) {
	cfg := Default()

	if configFile != "" {
		if _, err := os.Stat(configFile); err == nil {
			if err := loadFromFile(configFile, cfg); err != nil {
				return nil, fmt.Errorf("failed to load config from file: %w", err)
			}
		}
	}

	// Fields without a matching variable are left untouched
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// loadFromFile overlays the YAML file onto cfg
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// Validate checks struct constraints and normalizes logging settings
func (c *Config) Validate() error {
	v := validator.New()
	if err := v.Struct(c); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed on '%s'", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("%s", strings.Join(msgs, "; "))
		}
		return err
	}

	// Logs are always JSON
	c.Logging.Format = "json"
	if c.Logging.Output != "console" && c.Logging.FilePath == "" {
		c.Logging.FilePath = "logs/filmeda.log"
	}

	return nil
}

// getConfigFilePath returns the first config file found in the common locations
func getConfigFilePath() string {
	locations := []string{
		"filmeda.yaml",
		"configs/filmeda.yaml",
		"../configs/filmeda.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return ""
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:    DefaultLogLevel,
			Format:   DefaultLogFormat,
			Output:   "both",
			FilePath: "logs/filmeda.log",
		},
		Paths: PathsConfig{
			Dataset:   DefaultDatasetFile,
			OutputDir: DefaultOutputDir,
			LogsDir:   DefaultLogsDir,
		},
		Render: RenderConfig{
			Format:  "png",
			Width:   DefaultChartWidth,
			Height:  DefaultChartHeight,
			Caption: true,
		},
		Analysis: AnalysisConfig{
			TopDirectors:     DefaultTopDirectors,
			WinWeight:        DefaultWinWeight,
			ChordThreshold:   DefaultChordThreshold,
			GenreDenylist:    append([]string(nil), DefaultGenreDenylist...),
			LayoutIterations: DefaultLayoutIterations,
			LayoutRepulsion:  DefaultLayoutRepulsion,
			LayoutSeed:       DefaultLayoutSeed,
			UnknownPerson:    DefaultUnknownPerson,
			RatingColumns:    []string{"IMDB_Rating", "Metascore", "RT_Score"},
			AdvisoryRating:   "IMDB_Rating",
			Aspect:           []float64{1, 1, 0.5},
			MergeColumns: map[string]string{
				"Oscar_Nominated_Makeup": "Oscar_Nominated_Makeup_and_Hairstyling",
			},
		},
		Telemetry: TelemetryConfig{
			Tracing:     true,
			Metrics:     true,
			TraceFile:   "traces.json",
			MetricsFile: "filmeda.prom",
		},
	}
}
