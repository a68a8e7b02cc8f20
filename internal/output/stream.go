// Package output writes event streams to their destination files.
package output

import (
	"github.com/tyemirov/projsnap/internal/services/stream"
)

// StreamRenderer consumes stream events in order. Flush releases the destination and
// must be called exactly once, including after a failed Handle.
type StreamRenderer interface {
	Handle(event stream.Event) error
	Flush() error
}
