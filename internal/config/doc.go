// Package config provides centralized configuration management for filmeda.
// It loads configuration from multiple sources, validates it, and resolves
// the file system layout every section writes into.
//
// # Configuration Sources
//
// Configuration is assembled in the following order, later sources winning:
//
//	1. Default values (Default)
//	2. YAML file (filmeda.yaml or configs/filmeda.yaml)
//	3. Environment variables (highest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern FILMEDA_<SECTION>_<FIELD>:
//
//	FILMEDA_PATHS_DATASET=data/films.xlsx
//	FILMEDA_RENDER_FORMAT=svg
//	FILMEDA_ANALYSIS_CHORD_THRESHOLD=5
//	FILMEDA_ANALYSIS_GENRE_DENYLIST=Genre_News,Genre_Short
//	FILMEDA_LOGGING_LEVEL=debug
//
// # Path Management
//
// Paths resolves the dataset and output locations once:
//
//	paths, err := config.NewPaths(cfg.Paths)
//	chart := paths.GetChartPath("genre-chord.png")
//
// # Validation
//
// Struct tags are checked with go-playground/validator at load time, so
// out-of-range chart sizes or a malformed rating column list fail fast.
package config
