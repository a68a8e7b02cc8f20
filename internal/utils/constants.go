package utils

const (
	// ConfigFileName is the local configuration file looked up in the working directory.
	ConfigFileName = ".projsnap.yaml"
	// GlobalConfigDirectoryName is the directory under the user's home holding GlobalConfigFileName.
	GlobalConfigDirectoryName = ".projsnap"
	// GlobalConfigFileName is the configuration file inside GlobalConfigDirectoryName.
	GlobalConfigFileName = "config.yaml"
	// GitDirectoryName is the name of the Git repository directory.
	GitDirectoryName = ".git"
)

const (
	// LoggerInitializationFailedMessageFormat reports logger construction failures.
	LoggerInitializationFailedMessageFormat = "failed to initialize logger: %w"
	// ApplicationExecutionFailedMessage prefixes fatal command errors.
	ApplicationExecutionFailedMessage = "application execution failed"
)
