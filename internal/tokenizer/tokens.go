// Package tokenizer classifies HTTP start lines using Shape's tokenizer
// framework.
package tokenizer

// Token type constants for HTTP start lines.
const (
	TokenSP      = "SP"      // single space separator
	TokenVersion = "Version" // HTTP/<digit>.<digit>
	TokenWord    = "Word"    // method, request-target, status code, reason word
)
