package httpparser

// Message is the start-line data of a parsed request or response.
type Message struct {
	IsRequest bool

	// Request fields.
	Method  string
	URL     string // raw request-target
	URLPath string // percent-decoded path part of URL

	// Response fields.
	StatusCode int

	Version string
}
