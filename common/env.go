// Package common provides the environment variable names shared by the
// cookiegetter commands.
package common

// Environment variable names for configuration.
const (
	// DebugEnv enables debug logging to stderr when set to "1".
	DebugEnv = "COOKIEGETTER_DEBUG"

	// LogFileEnv names a file that receives log output in addition to stderr.
	LogFileEnv = "COOKIEGETTER_LOG_FILE"

	// ConfigDirEnv overrides the directory holding the file-based selection.
	ConfigDirEnv = "COOKIEGETTER_CONFIG_DIR"

	// BrowserEnv is the default for the --browser flag.
	BrowserEnv = "COOKIEGETTER_BROWSER"

	// ProfileEnv is the default for the --profile flag.
	ProfileEnv = "COOKIEGETTER_PROFILE"
)
