// Package stream turns the tree and archive walks into ordered event streams.
package stream

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/tyemirov/projsnap/internal/commands"
	"github.com/tyemirov/projsnap/internal/types"
	"golang.org/x/sync/errgroup"
)

const (
	errorNilChannelMessage = "stream: event channel is nil"
	errorEmptyTreeRoot     = "stream: tree root path is empty"
	errorEmptyArchiveRoot  = "stream: archive root path is empty"
	warningLevel           = "warning"
)

type TreeOptions struct {
	Root string
}

type ArchiveOptions struct {
	Root       string
	Exclusions types.ExclusionSet
}

type emitter struct {
	ctx     context.Context
	out     chan<- Event
	command string
}

func newEmitter(ctx context.Context, out chan<- Event, command string) *emitter {
	if ctx == nil {
		ctx = context.Background()
	}
	return &emitter{ctx: ctx, out: out, command: command}
}

func (e *emitter) send(event Event) error {
	if e.out == nil {
		return errors.New(errorNilChannelMessage)
	}
	event.Version = SchemaVersion
	if event.Command == "" {
		event.Command = e.command
	}
	if event.EmittedAt.IsZero() {
		event.EmittedAt = time.Now().UTC()
	}
	select {
	case <-e.ctx.Done():
		return e.ctx.Err()
	case e.out <- event:
		return nil
	}
}

func (e *emitter) warn(path, message string) error {
	trimmed := strings.TrimRight(message, "\n")
	if trimmed == "" {
		return nil
	}
	return e.send(Event{
		Kind:    EventKindWarning,
		Path:    path,
		Message: &LogEvent{Level: warningLevel, Message: trimmed},
	})
}

// fail reports err as an error event and returns it. Cancellation is returned without an event.
func (e *emitter) fail(path string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	_ = e.send(Event{Kind: EventKindError, Path: path, Err: &ErrorEvent{Message: err.Error()}})
	return err
}

func (e *emitter) start(root string) error {
	return e.send(Event{
		Kind:  EventKindStart,
		Path:  root,
		Start: &StartEvent{Root: root, RootName: filepath.Base(root)},
	})
}

func (e *emitter) finish(root string, summary *SummaryEvent) error {
	if err := e.send(Event{Kind: EventKindSummary, Path: root, Summary: summary}); err != nil {
		return err
	}
	return e.send(Event{Kind: EventKindDone, Path: root})
}

// StreamTree emits start, one line event per rendered line in pre-order, summary and done.
func StreamTree(ctx context.Context, opts TreeOptions, out chan<- Event) error {
	if opts.Root == "" {
		return errors.New(errorEmptyTreeRoot)
	}
	emitter := newEmitter(ctx, out, types.CommandTree)
	if err := emitter.start(opts.Root); err != nil {
		return err
	}

	summary := &SummaryEvent{}
	handler := func(line types.RenderLine) error {
		summary.Lines++
		switch {
		case line.Sentinel:
			summary.Denied++
		case line.IsDirectory:
			summary.Directories++
		default:
			summary.Files++
		}
		return emitter.send(Event{
			Kind: EventKindLine,
			Path: opts.Root,
			Line: &LineEvent{
				Text:        line.String(),
				Name:        line.Name,
				Depth:       line.Depth,
				IsLast:      line.IsLast,
				IsDirectory: line.IsDirectory,
				Sentinel:    line.Sentinel,
			},
		})
	}

	if err := commands.StreamTree(commands.TreeStreamOptions{Root: opts.Root}, handler); err != nil {
		return emitter.fail(opts.Root, err)
	}
	return emitter.finish(opts.Root, summary)
}

// StreamArchive emits start, one entry event per archived file, summary and done.
// Unreadable directories surface as warning events.
func StreamArchive(ctx context.Context, opts ArchiveOptions, out chan<- Event) error {
	if opts.Root == "" {
		return errors.New(errorEmptyArchiveRoot)
	}
	emitter := newEmitter(ctx, out, types.CommandArchive)
	if err := emitter.start(opts.Root); err != nil {
		return err
	}

	summary := &SummaryEvent{}
	var warnError error
	streamOptions := commands.ArchiveStreamOptions{
		Root:       opts.Root,
		Exclusions: opts.Exclusions,
		Warn: func(message string) {
			if warnError == nil {
				warnError = emitter.warn(opts.Root, message)
			}
		},
	}
	handler := func(entry types.ArchiveEntry) error {
		if warnError != nil {
			return warnError
		}
		summary.Files++
		return emitter.send(Event{
			Kind:  EventKindEntry,
			Path:  entry.SourcePath,
			Entry: &EntryEvent{SourcePath: entry.SourcePath, ArchiveName: entry.ArchiveName},
		})
	}

	if err := commands.StreamArchive(streamOptions, handler); err != nil {
		return emitter.fail(opts.Root, err)
	}
	if warnError != nil {
		return warnError
	}
	return emitter.finish(opts.Root, summary)
}

// Dispatch runs produce and consume concurrently over an unbuffered channel. The first
// error from either side cancels the other and is returned; cancellation alone is not
// reported.
func Dispatch(
	ctx context.Context,
	produce func(context.Context, chan<- Event) error,
	consume func(Event) error,
) error {
	if produce == nil || consume == nil {
		return fmt.Errorf("stream: dispatch requires a producer and a consumer")
	}
	group, streamCtx := errgroup.WithContext(ctx)
	events := make(chan Event)

	group.Go(func() error {
		defer close(events)
		return produce(streamCtx, events)
	})

	group.Go(func() error {
		for {
			select {
			case <-streamCtx.Done():
				return streamCtx.Err()
			case event, ok := <-events:
				if !ok {
					return nil
				}
				if err := consume(event); err != nil {
					return err
				}
			}
		}
	})

	if err := group.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
