package instance

// Kind distinguishes the two launch events.
type Kind string

const (
	// KindActivate is a launch without files.
	KindActivate Kind = "activate"
	// KindOpen is a launch carrying one or more files.
	KindOpen Kind = "open"
)

// Request is a launch event forwarded by a later invocation.
type Request struct {
	Kind  Kind     `json:"kind"`
	Paths []string `json:"paths,omitempty"`
}

type openBody struct {
	Paths []string `json:"paths"`
}
