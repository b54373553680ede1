// Package httpparser implements an incremental, callback-driven parser for
// HTTP/1.x requests and responses.
//
// A Parser is fed raw bytes in arbitrarily split fragments through Parse. It
// advances as far as the input allows, invoking the data callback with body
// bytes and the event callback with lifecycle events, and reports how many
// bytes belonged to the current message:
//
//	p := httpparser.New(httpparser.Settings{})
//	p.SetDataCallback(func(b []byte) { body = append(body, b...) })
//	p.SetEventCallback(func(ev httpparser.Event) { ... })
//	n := p.Parse(buf)
//
// Three body framings are supported: Content-Length, chunked
// Transfer-Encoding and, for responses only, the end of the stream (SetEOF).
//
// A Parser performs no I/O and is not safe for concurrent use.
package httpparser

// Event is a lifecycle signal delivered to the event callback.
type Event int

const (
	// EventHeaderComplete fires once the blank line after the headers is read.
	EventHeaderComplete Event = iota + 1
	// EventComplete fires once the whole message, body included, is read.
	EventComplete
	// EventError fires once when the parser enters the error state.
	EventError
)

func (e Event) String() string {
	switch e {
	case EventHeaderComplete:
		return "header-complete"
	case EventComplete:
		return "complete"
	case EventError:
		return "error"
	default:
		return "unknown"
	}
}

// DataCallback receives body bytes. The slice is only valid for the duration
// of the call.
type DataCallback func(data []byte)

// EventCallback receives lifecycle events.
type EventCallback func(ev Event)

// Phase is the externally visible parser lifecycle. Pausing and errors are
// reported separately; a paused or failed parser keeps its phase.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseStartLine
	PhaseHeaders
	PhaseBody
	PhaseDone
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseStartLine:
		return "start-line"
	case PhaseHeaders:
		return "headers"
	case PhaseBody:
		return "body"
	case PhaseDone:
		return "done"
	default:
		return "unknown"
	}
}

// noCopy marks Parser as not copyable for go vet's copylocks check.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}
