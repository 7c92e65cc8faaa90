// Package config provides configuration management for genindex.
package config

// Default configuration values for genindex.
const (
	// AppName names the configuration, state and environment namespaces.
	AppName = "genindex"

	// EnvPrefix is the prefix of environment variable overrides.
	EnvPrefix = "GENINDEX"

	// DefaultPath is the directory indexed when none is specified.
	DefaultPath = "."

	// DefaultOutputFile is the name of the page written into each directory.
	DefaultOutputFile = "index.html"

	// DefaultReadmeName is the README rendered above the listing with --readme.
	DefaultReadmeName = "README.md"

	// DefaultSort is the sort field within the directory and file groups.
	DefaultSort = "name"

	// DefaultRetentionDays is the default number of days to keep run history.
	DefaultRetentionDays = 30

	// DefaultLogLevel is the level of the optional log file.
	DefaultLogLevel = "info"

	// ConfigFileName is the base name of the configuration file.
	ConfigFileName = "config.yaml"
)
