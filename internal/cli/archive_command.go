package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tyemirov/projsnap/internal/output"
	"github.com/tyemirov/projsnap/internal/services/stream"
	"github.com/tyemirov/projsnap/internal/types"
)

const (
	zipProjectUse              = "zipproject"
	zipProjectShortDescription = "archive the working directory into a zip file"
	zipProjectLongDescription  = `zipproject writes every file under the current directory into a deflate-compressed
zip archive (default ` + types.DefaultArchiveOutputName + `), keeping paths relative to the directory.
Version control metadata, dependency and build caches, the public assets directory,
OS metadata files, local environment files, the tree output, the archive itself and
the builder are excluded by exact name.`
	zipProjectUsageExample = `  # Create menhera_shindan_backup.zip in the current directory
  zipproject

  # Use a different archive name
  zipproject --output snapshot.zip`

	archiveOutputFlagUsage       = "name of the archive written into the working directory"
	archiveStartMessageFormat    = "Creating archive: %s..."
	archiveDoneMessageFormat     = "Done! Archived %d files into '%s'."
	archiveWarningsMessageFormat = "%d paths could not be read and were skipped."
)

// NewZipProjectCommand builds the zipproject root command.
func NewZipProjectCommand(dependencies Dependencies) *cobra.Command {
	dependencies = dependencies.withDefaults()
	var options commonOptions

	zipProjectCommand := &cobra.Command{
		Use:          zipProjectUse,
		Short:        zipProjectShortDescription,
		Long:         zipProjectLongDescription,
		Example:      zipProjectUsageExample,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			if printVersion(command, options) {
				return nil
			}
			workingDirectory, workingDirectoryErr := dependencies.resolveWorkingDirectory()
			if workingDirectoryErr != nil {
				return workingDirectoryErr
			}
			applicationConfiguration, configurationErr := loadConfiguration(workingDirectory, options)
			if configurationErr != nil {
				return configurationErr
			}
			outputName := resolveOutputName(options.outputName, applicationConfiguration.Archive.Output, types.DefaultArchiveOutputName)
			exclusions := types.NewExclusionSet(filepath.Base(outputName), dependencies.ExecutableName)

			logger := dependencies.Logger
			logger.Info(fmt.Sprintf(archiveStartMessageFormat, outputName))
			renderer, archiveErr := createArchive(commandContext(command), workingDirectory, resolveOutputPath(workingDirectory, outputName), exclusions, dependencies)
			if archiveErr != nil {
				return archiveErr
			}
			if renderer.Warnings() > 0 {
				logger.Warn(fmt.Sprintf(archiveWarningsMessageFormat, renderer.Warnings()))
			}
			logger.Info(fmt.Sprintf(archiveDoneMessageFormat, renderer.Added(), outputName))
			return nil
		},
	}

	addCommonFlags(zipProjectCommand, &options, archiveOutputFlagUsage)
	return zipProjectCommand
}

// createArchive streams the selected files of root into outputPath.
func createArchive(ctx context.Context, root string, outputPath string, exclusions types.ExclusionSet, dependencies Dependencies) (renderer *output.ArchiveRenderer, err error) {
	renderer, rendererErr := output.NewArchiveRenderer(outputPath, dependencies.Logger)
	if rendererErr != nil {
		return nil, rendererErr
	}
	defer func() {
		if flushErr := renderer.Flush(); flushErr != nil && err == nil {
			err = flushErr
		}
	}()

	producer := func(streamCtx context.Context, ch chan<- stream.Event) error {
		return stream.StreamArchive(streamCtx, stream.ArchiveOptions{Root: root, Exclusions: exclusions}, ch)
	}
	return renderer, stream.Dispatch(ctx, producer, renderer.Handle)
}

// ExecuteZipProject runs zipproject against the process arguments and working directory.
func ExecuteZipProject(ctx context.Context, dependencies Dependencies) error {
	if dependencies.ExecutableName == "" {
		dependencies.ExecutableName = filepath.Base(os.Args[0])
	}
	return executeCommand(ctx, NewZipProjectCommand(dependencies), os.Args[1:])
}
