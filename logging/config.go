package logging

// Config controls logging behavior. It is decoded from the `[logging]`
// table of fleet.toml (see fleetconfig), if present.
type Config struct {
	// Level is the minimum log level to output (e.g. "debug", "info", "warn", "error").
	// Overridden by the NEXUS_LOG_LEVEL environment variable.
	Level string `toml:"level" yaml:"level"`

	// ReportCaller includes file, line, and function name in log output.
	// Enabled with NEXUS_LOG_CALLER=true.
	ReportCaller bool `toml:"report_caller" yaml:"report_caller"`

	// Format controls the appearance of the log output.
	Format FormatConfig `toml:"format" yaml:"format"`
}

// FormatConfig controls the log line layout.
type FormatConfig struct {
	// Preset is "default" (rich text), "simple" (minimal text), or "json".
	Preset string `toml:"preset" yaml:"preset"`
	// DisableTimestamp drops the timestamp from "default"/"simple" formats.
	DisableTimestamp bool `toml:"disable_timestamp" yaml:"disable_timestamp"`
	// DisableComponent drops the component name from "default"/"simple" formats.
	DisableComponent bool `toml:"disable_component" yaml:"disable_component"`
}
