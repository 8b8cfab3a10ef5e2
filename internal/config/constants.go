package config

// Application constants
const (
	AppName    = "filmeda"
	AppVersion = "1.0.0"

	// EnvPrefix namespaces every environment variable (FILMEDA_RENDER_FORMAT, ...)
	EnvPrefix = "FILMEDA"

	// File Paths (relative to the working directory)
	DefaultDatasetFile = "data/films.csv"
	DefaultOutputDir   = "output"
	DefaultLogsDir     = "logs"

	// Output subdirectories
	ChartsSubdir    = "charts"
	TablesSubdir    = "tables"
	TelemetrySubdir = "telemetry"

	// Log Settings
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	// Chart canvas
	DefaultChartWidth  = 1200
	DefaultChartHeight = 900

	// Section parameters
	DefaultTopDirectors     = 20
	DefaultWinWeight        = 5
	DefaultChordThreshold   = 5
	DefaultLayoutIterations = 50
	DefaultLayoutRepulsion  = 0.15
	DefaultLayoutSeed       = 42
	DefaultUnknownPerson    = "Unknown"
)

// DefaultGenreDenylist holds the low-frequency or noisy genres left out of the chord diagram
var DefaultGenreDenylist = []string{
	"Genre_Documentary",
	"Genre_Film-Noir",
	"Genre_Game-Show",
	"Genre_News",
	"Genre_Reality-TV",
	"Genre_Short",
	"Genre_Talk-Show",
}
