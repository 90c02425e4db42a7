// Package sink defines the backpressure-aware handoff point between the
// token emitter and its consumer.
//
// A Sink accepts one token at a time from a single producer. Each TryAccept
// call returns a definitive answer immediately: the token was accepted, the
// consumer is applying backpressure, or the consumer has gone away. The
// emitter never proceeds to the next event until it has that answer, and it
// never retries; translating Rejected into a retry policy is the caller's
// business, above the transcode.
//
// The package ships three implementations: Collect gathers tokens into a
// slice, Chan hands tokens to another goroutine through a buffered channel,
// and Func adapts a plain function. The wire package's Writer is a fourth.
package sink

import (
	"sync"

	"github.com/arloliu/tokenstream/token"
)

// Status is a sink's answer to a single token delivery.
type Status uint8

const (
	// Accepted means the token is queued or delivered; the producer may
	// proceed to the next event.
	Accepted Status = iota + 1

	// Rejected means the consumer is not ready (backpressure). The token
	// was not delivered and the producer must not assume it ever will be.
	Rejected

	// Closed means the consumer has gone away; no further tokens can be
	// delivered.
	Closed
)

func (s Status) String() string {
	switch s {
	case Accepted:
		return "Accepted"
	case Rejected:
		return "Rejected"
	case Closed:
		return "Closed"
	default:
		return "Unknown"
	}
}

// Sink is a single-producer endpoint accepting one token at a time.
//
// TryAccept must return without blocking indefinitely and must give a
// definitive Status for every call. Implementations decide what Accepted
// means (buffered, written, forwarded); the producer only relies on the
// three-way answer.
type Sink interface {
	TryAccept(tok token.Token) Status
}

// Func adapts a function to the Sink interface.
type Func func(tok token.Token) Status

func (f Func) TryAccept(tok token.Token) Status {
	return f(tok)
}

// Collect is a Sink that appends every accepted token to an in-memory
// slice. It accepts unconditionally until Close is called.
//
// Collect is not safe for concurrent use; it matches the core's
// single-threaded producer model.
type Collect struct {
	tokens []token.Token
	closed bool
}

// NewCollect creates an empty collecting sink.
func NewCollect() *Collect {
	return &Collect{}
}

func (c *Collect) TryAccept(tok token.Token) Status {
	if c.closed {
		return Closed
	}

	c.tokens = append(c.tokens, tok)

	return Accepted
}

// Tokens returns the tokens collected so far. The returned slice is the
// sink's backing storage; callers should not modify it while the sink is
// still in use.
func (c *Collect) Tokens() []token.Token {
	return c.tokens
}

// Close makes all further TryAccept calls answer Closed.
func (c *Collect) Close() {
	c.closed = true
}

// Reset discards collected tokens and reopens the sink.
func (c *Collect) Reset() {
	c.tokens = c.tokens[:0]
	c.closed = false
}

// Chan is a Sink that hands tokens to a consumer goroutine through a
// buffered channel. TryAccept never blocks: when the buffer is full it
// answers Rejected, which the emitter surfaces as a write failure. Size the
// buffer for the consumer's worst-case lag, or drain eagerly.
//
// The producer side (TryAccept, Close) must stay on a single goroutine;
// any number of goroutines may receive from Tokens.
type Chan struct {
	ch     chan token.Token
	mu     sync.Mutex
	closed bool
}

// NewChan creates a channel sink with the given buffer capacity.
func NewChan(capacity int) *Chan {
	return &Chan{ch: make(chan token.Token, capacity)}
}

func (c *Chan) TryAccept(tok token.Token) Status {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return Closed
	}

	select {
	case c.ch <- tok:
		return Accepted
	default:
		return Rejected
	}
}

// Tokens returns the receive side of the sink. The channel is closed by
// Close, so the consumer can range over it.
func (c *Chan) Tokens() <-chan token.Token {
	return c.ch
}

// Close closes the sink. Pending buffered tokens remain receivable; after
// Close every TryAccept answers Closed.
func (c *Chan) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}

	c.closed = true
	close(c.ch)
}
