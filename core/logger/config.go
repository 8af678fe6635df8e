package logger

// Config holds configuration for the logger.
type Config struct {
	// Level is the minimum enabled level (debug, info, warn, error).
	Level string `mapstructure:"level" default:"info"`
	// Format is the encoding, either json or console.
	Format string `mapstructure:"format" default:"json"`
	// Output is the zap sink the logger writes to (stderr, stdout or a file path).
	// Stdout is reserved for the startup confirmation line by default.
	Output string `mapstructure:"output" default:"stderr"`
}
