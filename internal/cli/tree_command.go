package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tyemirov/projsnap/internal/output"
	"github.com/tyemirov/projsnap/internal/services/stream"
	"github.com/tyemirov/projsnap/internal/types"
)

const (
	saveTreeUse              = "savetree"
	saveTreeShortDescription = "save the working directory tree to a text file"
	saveTreeLongDescription  = `savetree renders the structure of the current directory with tree-drawing glyphs
and writes it, preceded by the directory's own name, to ` + types.DefaultTreeOutputName + `.
Unreadable directories are marked "Permission Denied" and the walk continues.`
	saveTreeUsageExample = `  # Write directory_tree.txt in the current directory
  savetree

  # Write to a different file and copy the result to the clipboard
  savetree --output layout.txt --clipboard`

	treeOutputFlagUsage    = "name of the tree file written into the working directory"
	clipboardFlagUsage     = "also copy the rendered tree to the clipboard"
	treeStartMessageFormat = "Processing started: %s"
	treeDoneMessageFormat  = "Done. Tree saved to: %s"
	treeFailureFormat      = "An error occurred: %v"
	clipboardWarningFormat = "Warning: could not copy tree to clipboard: %v"
	clipboardDoneMessage   = "Tree copied to clipboard."
)

// NewSaveTreeCommand builds the savetree root command.
func NewSaveTreeCommand(dependencies Dependencies) *cobra.Command {
	dependencies = dependencies.withDefaults()
	var options commonOptions
	var copyToClipboard bool

	saveTreeCommand := &cobra.Command{
		Use:          saveTreeUse,
		Short:        saveTreeShortDescription,
		Long:         saveTreeLongDescription,
		Example:      saveTreeUsageExample,
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
			outputName := resolveOutputName(options.outputName, applicationConfiguration.Tree.Output, types.DefaultTreeOutputName)
			clipboardEnabled := applicationConfiguration.Tree.ClipboardEnabled()
			if command.Flags().Changed(clipboardFlagName) {
				clipboardEnabled = copyToClipboard
			}

			logger := dependencies.Logger
			logger.Info(fmt.Sprintf(treeStartMessageFormat, workingDirectory))
			renderedText, saveErr := saveTree(commandContext(command), workingDirectory, resolveOutputPath(workingDirectory, outputName), clipboardEnabled, dependencies)
			if saveErr != nil {
				logger.Error(fmt.Sprintf(treeFailureFormat, saveErr))
				return nil
			}
			logger.Info(fmt.Sprintf(treeDoneMessageFormat, outputName))

			if clipboardEnabled {
				if copyErr := dependencies.Copier.Copy(renderedText); copyErr != nil {
					logger.Warn(fmt.Sprintf(clipboardWarningFormat, copyErr))
				} else {
					logger.Info(clipboardDoneMessage)
				}
			}
			return nil
		},
	}

	addCommonFlags(saveTreeCommand, &options, treeOutputFlagUsage)
	registerBooleanFlag(saveTreeCommand.Flags(), &copyToClipboard, clipboardFlagName, false, clipboardFlagUsage)
	return saveTreeCommand
}

// saveTree streams the tree of root into outputPath and returns the rendered text when
// captureText is set.
func saveTree(ctx context.Context, root string, outputPath string, captureText bool, dependencies Dependencies) (renderedText string, err error) {
	renderer, rendererErr := output.NewTreeFileRenderer(outputPath, output.TreeFileOptions{
		Logger:      dependencies.Logger,
		CaptureText: captureText,
	})
	if rendererErr != nil {
		return "", rendererErr
	}
	defer func() {
		if flushErr := renderer.Flush(); flushErr != nil && err == nil {
			err = flushErr
		}
		if err == nil {
			renderedText = renderer.RenderedText()
		}
	}()

	producer := func(streamCtx context.Context, ch chan<- stream.Event) error {
		return stream.StreamTree(streamCtx, stream.TreeOptions{Root: root}, ch)
	}
	return "", stream.Dispatch(ctx, producer, renderer.Handle)
}

// ExecuteSaveTree runs savetree against the process arguments and working directory.
func ExecuteSaveTree(ctx context.Context, dependencies Dependencies) error {
	return executeCommand(ctx, NewSaveTreeCommand(dependencies), os.Args[1:])
}
