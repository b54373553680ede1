package httpparser

import (
	"sync/atomic"

	"github.com/google/uuid"
)

// Token is a liveness flag shared between a Parser and its owner.
//
// An owner that tears the parser down from inside one of its callbacks calls
// Destroy; the parser checks the token after every callback and returns
// without touching its own state once it is destroyed.
type Token struct {
	id        uuid.UUID
	destroyed atomic.Bool
}

// NewToken returns a live token with a fresh identity.
func NewToken() *Token {
	return &Token{id: uuid.New()}
}

// ID identifies the token in logs.
func (t *Token) ID() uuid.UUID { return t.id }

// Destroy marks the token dead. It is safe to call more than once.
func (t *Token) Destroy() { t.destroyed.Store(true) }

// Destroyed reports whether Destroy has been called.
func (t *Token) Destroyed() bool { return t.destroyed.Load() }

func (t *Token) String() string { return t.id.String() }
