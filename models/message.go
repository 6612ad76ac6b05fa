package models

// Tone classifies a user-visible message. Hosts map a tone onto whatever
// presentation they have (chat colors, terminal styles, log levels).
type Tone int

const (
	// Plain is an unclassified informational line.
	Plain Tone = iota

	// Notice announces that a long-running action has started or finished
	// (download, upload).
	Notice

	// Progress reports a transfer percentage.
	Progress

	// Success reports that an operation completed as intended.
	Success

	// Warning reports a non-fatal problem, such as a failed cleanup.
	Warning

	// Failure reports that an operation did not complete.
	Failure

	// Fatal reports a condition that disables a scope until the host is fixed.
	Fatal
)

// String returns the lower-case name of the tone.
func (t Tone) String() string {
	switch t {
	case Notice:
		return "notice"
	case Progress:
		return "progress"
	case Success:
		return "success"
	case Warning:
		return "warning"
	case Failure:
		return "failure"
	case Fatal:
		return "fatal"
	default:
		return "plain"
	}
}

// Message is a single user-visible line addressed to a requester or
// broadcast to participants.
type Message struct {
	Tone Tone
	Text string
}

// NewMessage constructs a [Message] with the given tone and text.
func NewMessage(tone Tone, text string) Message {
	return Message{Tone: tone, Text: text}
}
