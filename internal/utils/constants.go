package utils

// EmptyString represents a reusable empty string constant.
const EmptyString = ""

const (
	// IgnoreFileName is the per-project file listing extra exclusion patterns.
	IgnoreFileName = ".foldignore"
	// GitIgnoreFileName is the name of the Git ignore file.
	GitIgnoreFileName = ".gitignore"
	// ConfigFileName is the default configuration file name.
	ConfigFileName = "foldup.yaml"
	// DefaultOutputFileName is where the document is written unless overridden.
	DefaultOutputFileName = "codebase.md"
)

const (
	// LoggerInitializationFailedMessageFormat reports a logger construction failure.
	LoggerInitializationFailedMessageFormat = "failed to initialize logger: %w"
	// ApplicationExecutionFailedMessage prefixes fatal errors reported by main.
	ApplicationExecutionFailedMessage = "Error"
)
