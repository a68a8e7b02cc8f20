// Package cli provides the command line interfaces of savetree and zipproject.
package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tyemirov/projsnap/internal/config"
	"github.com/tyemirov/projsnap/internal/services/clipboard"
	"github.com/tyemirov/projsnap/internal/utils"
)

const (
	outputFlagName        = "output"
	outputFlagShorthand   = "o"
	configFlagName        = "config"
	clipboardFlagName     = "clipboard"
	versionFlagName       = "version"
	versionTemplate       = "%s version: %s\n"
	versionFlagUsage      = "display application version"
	configFlagUsage       = "path to a configuration file (default ./" + utils.ConfigFileName + ")"
	workingDirectoryError = "unable to determine working directory: %w"
	configurationError    = "load configuration: %w"
)

// Dependencies carries the collaborators shared by both commands.
type Dependencies struct {
	Logger *zap.Logger
	Copier clipboard.Copier
	// WorkingDirectory is the directory both tools operate on; empty means the process working directory.
	WorkingDirectory string
	// ExecutableName is the bare name of the running binary, excluded from archives.
	ExecutableName string
}

func (dependencies Dependencies) withDefaults() Dependencies {
	if dependencies.Logger == nil {
		dependencies.Logger = zap.NewNop()
	}
	if dependencies.Copier == nil {
		dependencies.Copier = clipboard.NewService()
	}
	return dependencies
}

func (dependencies Dependencies) resolveWorkingDirectory() (string, error) {
	if dependencies.WorkingDirectory != "" {
		return filepath.Abs(dependencies.WorkingDirectory)
	}
	workingDirectory, workingDirectoryErr := os.Getwd()
	if workingDirectoryErr != nil {
		return "", fmt.Errorf(workingDirectoryError, workingDirectoryErr)
	}
	return workingDirectory, nil
}

// commonOptions stores flags registered on both commands.
type commonOptions struct {
	outputName  string
	configPath  string
	showVersion bool
}

func addCommonFlags(command *cobra.Command, options *commonOptions, outputUsage string) {
	command.Flags().StringVarP(&options.outputName, outputFlagName, outputFlagShorthand, "", outputUsage)
	command.Flags().StringVar(&options.configPath, configFlagName, "", configFlagUsage)
	command.Flags().BoolVar(&options.showVersion, versionFlagName, false, versionFlagUsage)
}

// printVersion writes the version line and reports whether the command should stop.
func printVersion(command *cobra.Command, options commonOptions) bool {
	if !options.showVersion {
		return false
	}
	fmt.Fprintf(command.OutOrStdout(), versionTemplate, command.Name(), utils.GetApplicationVersion())
	return true
}

func loadConfiguration(workingDirectory string, options commonOptions) (config.ApplicationConfiguration, error) {
	applicationConfiguration, loadErr := config.LoadApplicationConfiguration(config.LoadOptions{
		WorkingDirectory: workingDirectory,
		ExplicitFilePath: options.configPath,
	})
	if loadErr != nil {
		return config.ApplicationConfiguration{}, fmt.Errorf(configurationError, loadErr)
	}
	return applicationConfiguration, nil
}

// resolveOutputName picks the flag value, then the configured value, then the default.
func resolveOutputName(flagValue, configuredValue, defaultValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if configuredValue != "" {
		return configuredValue
	}
	return defaultValue
}

// resolveOutputPath places relative output names inside the working directory.
func resolveOutputPath(workingDirectory, outputName string) string {
	if filepath.IsAbs(outputName) {
		return outputName
	}
	return filepath.Join(workingDirectory, outputName)
}

func commandContext(command *cobra.Command) context.Context {
	if ctx := command.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func executeCommand(ctx context.Context, command *cobra.Command, arguments []string) error {
	command.SetArgs(normalizeBooleanFlagArguments(command, arguments))
	return command.ExecuteContext(ctx)
}
