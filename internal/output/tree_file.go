package output

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hashicorp/go-multierror"
	"go.uber.org/zap"

	"github.com/tyemirov/projsnap/internal/services/stream"
	"github.com/tyemirov/projsnap/internal/types"
)

const (
	lineTerminator = "\n"

	errorCreateTreeFileFormat = "create tree file %s: %w"
	errorWriteTreeFileFormat  = "write tree file %s: %w"
	errorFlushTreeFileFormat  = "flush tree file %s: %w"
	errorCloseTreeFileFormat  = "close tree file %s: %w"
	errorTreeFileClosedFormat = "tree file %s is already closed"
)

// TreeFileOptions configures a TreeFileRenderer.
type TreeFileOptions struct {
	Logger *zap.Logger
	// CaptureText keeps a copy of everything written so it can be read back through RenderedText.
	CaptureText bool
}

// TreeFileRenderer writes the root line and every tree line to a UTF-8 text file.
type TreeFileRenderer struct {
	path     string
	file     *os.File
	buffered *bufio.Writer
	writer   io.Writer
	captured *strings.Builder
	logger   *zap.Logger
	summary  stream.SummaryEvent
	closed   bool
}

// NewTreeFileRenderer creates or truncates outputPath.
func NewTreeFileRenderer(outputPath string, options TreeFileOptions) (*TreeFileRenderer, error) {
	// #nosec G304
	fileHandle, createError := os.Create(outputPath)
	if createError != nil {
		return nil, fmt.Errorf(errorCreateTreeFileFormat, outputPath, createError)
	}
	logger := options.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	renderer := &TreeFileRenderer{
		path:     outputPath,
		file:     fileHandle,
		buffered: bufio.NewWriter(fileHandle),
		logger:   logger,
	}
	renderer.writer = renderer.buffered
	if options.CaptureText {
		renderer.captured = &strings.Builder{}
		renderer.writer = io.MultiWriter(renderer.buffered, renderer.captured)
	}
	return renderer, nil
}

func (renderer *TreeFileRenderer) Handle(event stream.Event) error {
	if renderer.closed {
		return fmt.Errorf(errorTreeFileClosedFormat, renderer.path)
	}
	switch event.Kind {
	case stream.EventKindStart:
		if event.Start != nil {
			return renderer.writeLine(types.RootLine(event.Start.RootName))
		}
	case stream.EventKindLine:
		if event.Line != nil {
			return renderer.writeLine(event.Line.Text)
		}
	case stream.EventKindSummary:
		if event.Summary != nil {
			renderer.summary = *event.Summary
		}
	case stream.EventKindWarning:
		if event.Message != nil {
			renderer.logger.Warn(event.Message.Message)
		}
	}
	return nil
}

func (renderer *TreeFileRenderer) writeLine(text string) error {
	if _, writeError := io.WriteString(renderer.writer, text+lineTerminator); writeError != nil {
		return fmt.Errorf(errorWriteTreeFileFormat, renderer.path, writeError)
	}
	return nil
}

// Flush writes buffered lines and closes the file. Both failures are reported together.
func (renderer *TreeFileRenderer) Flush() error {
	if renderer.closed {
		return nil
	}
	renderer.closed = true
	var result *multierror.Error
	if flushError := renderer.buffered.Flush(); flushError != nil {
		result = multierror.Append(result, fmt.Errorf(errorFlushTreeFileFormat, renderer.path, flushError))
	}
	if closeError := renderer.file.Close(); closeError != nil {
		result = multierror.Append(result, fmt.Errorf(errorCloseTreeFileFormat, renderer.path, closeError))
	}
	return result.ErrorOrNil()
}

// Path returns the file being written.
func (renderer *TreeFileRenderer) Path() string {
	return renderer.path
}

// RenderedText returns the captured output, or an empty string when capture is off.
func (renderer *TreeFileRenderer) RenderedText() string {
	if renderer.captured == nil {
		return ""
	}
	return renderer.captured.String()
}

// Summary returns the counts reported by the stream's summary event.
func (renderer *TreeFileRenderer) Summary() stream.SummaryEvent {
	return renderer.summary
}

var _ StreamRenderer = (*TreeFileRenderer)(nil)
