package output

import (
	"archive/zip"
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-multierror"
	"go.uber.org/zap"

	"github.com/tyemirov/projsnap/internal/services/stream"
)

const (
	// progressAddedFormat is logged once per archived file.
	progressAddedFormat = "  added: %s"

	errorCreateArchiveFormat    = "create archive %s: %w"
	errorOpenSourceFormat       = "open %s: %w"
	errorStatSourceFormat       = "stat %s: %w"
	errorEntryHeaderFormat      = "build archive header for %s: %w"
	errorWriteEntryFormat       = "write archive entry %s: %w"
	errorCloseSourceFormat      = "close %s: %w"
	errorFinalizeArchiveFormat  = "finalize archive %s: %w"
	errorCloseArchiveFormat     = "close archive %s: %w"
	errorArchiveClosedFormat    = "archive %s is already closed"
	errorArchiveDirectoryFormat = "archive entry %s is a directory"
)

// ArchiveRenderer writes every entry event into a deflate-compressed zip file.
type ArchiveRenderer struct {
	path      string
	file      *os.File
	zipWriter *zip.Writer
	logger    *zap.Logger
	added     int
	warnings  int
	closed    bool
}

// NewArchiveRenderer creates or truncates outputPath.
func NewArchiveRenderer(outputPath string, logger *zap.Logger) (*ArchiveRenderer, error) {
	// #nosec G304
	fileHandle, createError := os.Create(outputPath)
	if createError != nil {
		return nil, fmt.Errorf(errorCreateArchiveFormat, outputPath, createError)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ArchiveRenderer{
		path:      outputPath,
		file:      fileHandle,
		zipWriter: zip.NewWriter(fileHandle),
		logger:    logger,
	}, nil
}

func (renderer *ArchiveRenderer) Handle(event stream.Event) error {
	if renderer.closed {
		return fmt.Errorf(errorArchiveClosedFormat, renderer.path)
	}
	switch event.Kind {
	case stream.EventKindEntry:
		if event.Entry == nil {
			return nil
		}
		if err := renderer.addEntry(event.Entry.SourcePath, event.Entry.ArchiveName); err != nil {
			return err
		}
		renderer.added++
		renderer.logger.Info(fmt.Sprintf(progressAddedFormat, event.Entry.ArchiveName))
	case stream.EventKindWarning:
		if event.Message != nil {
			renderer.warnings++
			renderer.logger.Warn(event.Message.Message)
		}
	}
	return nil
}

// addEntry copies sourcePath into the archive under archiveName, keeping its
// modification time and permission bits.
func (renderer *ArchiveRenderer) addEntry(sourcePath string, archiveName string) (err error) {
	// #nosec G304
	sourceFile, openError := os.Open(sourcePath)
	if openError != nil {
		return fmt.Errorf(errorOpenSourceFormat, sourcePath, openError)
	}
	defer func() {
		if closeError := sourceFile.Close(); closeError != nil && err == nil {
			err = fmt.Errorf(errorCloseSourceFormat, sourcePath, closeError)
		}
	}()

	sourceInfo, statError := sourceFile.Stat()
	if statError != nil {
		return fmt.Errorf(errorStatSourceFormat, sourcePath, statError)
	}
	if sourceInfo.IsDir() {
		return fmt.Errorf(errorArchiveDirectoryFormat, sourcePath)
	}
	header, headerError := zip.FileInfoHeader(sourceInfo)
	if headerError != nil {
		return fmt.Errorf(errorEntryHeaderFormat, sourcePath, headerError)
	}
	header.Name = archiveName
	header.Method = zip.Deflate

	entryWriter, createError := renderer.zipWriter.CreateHeader(header)
	if createError != nil {
		return fmt.Errorf(errorWriteEntryFormat, archiveName, createError)
	}
	if _, copyError := io.Copy(entryWriter, sourceFile); copyError != nil {
		return fmt.Errorf(errorWriteEntryFormat, archiveName, copyError)
	}
	return nil
}

// Flush writes the zip central directory and closes the file. Both failures are reported together.
func (renderer *ArchiveRenderer) Flush() error {
	if renderer.closed {
		return nil
	}
	renderer.closed = true
	var result *multierror.Error
	if finalizeError := renderer.zipWriter.Close(); finalizeError != nil {
		result = multierror.Append(result, fmt.Errorf(errorFinalizeArchiveFormat, renderer.path, finalizeError))
	}
	if closeError := renderer.file.Close(); closeError != nil {
		result = multierror.Append(result, fmt.Errorf(errorCloseArchiveFormat, renderer.path, closeError))
	}
	return result.ErrorOrNil()
}

// Path returns the archive being written.
func (renderer *ArchiveRenderer) Path() string {
	return renderer.path
}

// Added returns the number of entries written so far.
func (renderer *ArchiveRenderer) Added() int {
	return renderer.added
}

// Warnings returns the number of warning events reported so far.
func (renderer *ArchiveRenderer) Warnings() int {
	return renderer.warnings
}

var _ StreamRenderer = (*ArchiveRenderer)(nil)
