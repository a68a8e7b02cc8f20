package stream

import (
	"time"
)

const SchemaVersion = 1

type EventKind string

const (
	EventKindStart   EventKind = "start"
	EventKindLine    EventKind = "line"
	EventKindEntry   EventKind = "entry"
	EventKindSummary EventKind = "summary"
	EventKindWarning EventKind = "warning"
	EventKindError   EventKind = "error"
	EventKindDone    EventKind = "done"
)

type Event struct {
	Version   int       `json:"version"`
	Kind      EventKind `json:"kind"`
	Command   string    `json:"command,omitempty"`
	Path      string    `json:"path,omitempty"`
	EmittedAt time.Time `json:"emittedAt,omitempty"`

	Start   *StartEvent   `json:"start,omitempty"`
	Line    *LineEvent    `json:"line,omitempty"`
	Entry   *EntryEvent   `json:"entry,omitempty"`
	Summary *SummaryEvent `json:"summary,omitempty"`
	Message *LogEvent     `json:"message,omitempty"`
	Err     *ErrorEvent   `json:"error,omitempty"`
}

// StartEvent names the root a stream walks.
type StartEvent struct {
	Root     string `json:"root"`
	RootName string `json:"rootName"`
}

// LineEvent carries one rendered tree line.
type LineEvent struct {
	Text        string `json:"text"`
	Name        string `json:"name,omitempty"`
	Depth       int    `json:"depth"`
	IsLast      bool   `json:"isLast"`
	IsDirectory bool   `json:"isDirectory"`
	Sentinel    bool   `json:"sentinel,omitempty"`
}

// EntryEvent carries one file selected for the archive.
type EntryEvent struct {
	SourcePath  string `json:"sourcePath"`
	ArchiveName string `json:"archiveName"`
}

type SummaryEvent struct {
	Lines       int `json:"lines,omitempty"`
	Directories int `json:"directories,omitempty"`
	Files       int `json:"files"`
	Denied      int `json:"denied,omitempty"`
}

type LogEvent struct {
	Level   string `json:"level,omitempty"`
	Message string `json:"message"`
}

type ErrorEvent struct {
	Message string `json:"message"`
}
