package viewer

import "flagviewer/internal/encoding"

// Kind classifies the outcome of a view request.
type Kind int

const (
	Denied Kind = iota
	Invalid
	NotFound
	ReadError
	Served
)

func (k Kind) String() string {
	switch k {
	case Denied:
		return "denied"
	case Invalid:
		return "invalid"
	case NotFound:
		return "not_found"
	case ReadError:
		return "read_error"
	case Served:
		return "served"
	}
	return "unknown"
}

// Where a served or failed read came from.
const (
	SourceBypass   = "bypass"
	SourceFallback = "fallback"
)

// Response texts returned to clients.
const (
	MsgDenied   = "Access denied."
	MsgInvalid  = "Invalid file."
	MsgNotFound = "File not found."
)

// Result is the decision for one request.
type Result struct {
	Kind   Kind
	Body   string // raw (unescaped) file content when Kind == Served
	Source string
	Path   string // file that was read, if any
	Err    error  // set when Kind == ReadError
}

// Response renders the body sent back to the caller.
func (r Result) Response() string {
	switch r.Kind {
	case Denied:
		return MsgDenied
	case Invalid:
		return MsgInvalid
	case NotFound:
		return MsgNotFound
	case ReadError:
		return "Error: " + r.Err.Error()
	case Served:
		return encoding.PreBlock(r.Body)
	}
	return MsgNotFound
}
