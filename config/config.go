// Package config holds the tunables shared by the parser, input core, and
// PTY/framing layers, built with the teacher's functional-option ("With...")
// builder idiom (see clipboard/api.Builder in the teacher's tree).
package config

import "time"

// Config holds every tunable limit named explicitly in spec.md.
type Config struct {
	// MaxOSCLength bounds an OSC string (spec.md §4.4): exceeding it aborts
	// the sequence silently.
	MaxOSCLength int
	// MaxEscapeLength bounds a partial escape/CSI sequence before the
	// parser gives up and returns to Ground (spec.md §4.4).
	MaxEscapeLength int
	// MaxPasteBytes bounds a bracketed-paste payload (spec.md §4.7):
	// exceeding it truncates and closes the paste.
	MaxPasteBytes int
	// EscTimeout is how long a bare ESC byte is buffered waiting for a
	// follow-up before being delivered as the Esc key (spec.md §4.7).
	EscTimeout time.Duration
	// TabStopWidth is the tab-stop width, 8 per the VT100 convention
	// (spec.md §4.4). The parser's HT handling does not read this field;
	// it always uses a width of 8.
	TabStopWidth int
	// HandshakeTimeout bounds the length-prefix protocol handshake
	// (spec.md §6).
	HandshakeTimeout time.Duration
	// MaxPayloadBytes bounds a single length-prefixed frame (spec.md §6).
	MaxPayloadBytes int64
	// StdinReadBufferSize is the fixed buffer size the stdin reader thread
	// reads into (spec.md §4.6).
	StdinReadBufferSize int
}

// Option mutates a Config being built.
type Option func(*Config)

// Default returns the Config with the values spec.md specifies explicitly.
func Default() Config {
	return Config{
		MaxOSCLength:        4096,
		MaxEscapeLength:     256,
		MaxPasteBytes:       1 << 20, // 1 MiB
		EscTimeout:          50 * time.Millisecond,
		TabStopWidth:        8,
		HandshakeTimeout:    1 * time.Second,
		MaxPayloadBytes:     10 << 20, // 10 MB per spec.md §6
		StdinReadBufferSize: 4096,
	}
}

// New builds a Config starting from Default and applying options.
func New(opts ...Option) Config {
	c := Default()
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// WithMaxOSCLength overrides MaxOSCLength.
func WithMaxOSCLength(n int) Option {
	return func(c *Config) { c.MaxOSCLength = n }
}

// WithMaxPasteBytes overrides MaxPasteBytes.
func WithMaxPasteBytes(n int) Option {
	return func(c *Config) { c.MaxPasteBytes = n }
}

// WithEscTimeout overrides EscTimeout.
func WithEscTimeout(d time.Duration) Option {
	return func(c *Config) { c.EscTimeout = d }
}

// WithHandshakeTimeout overrides HandshakeTimeout.
func WithHandshakeTimeout(d time.Duration) Option {
	return func(c *Config) { c.HandshakeTimeout = d }
}

// WithMaxPayloadBytes overrides MaxPayloadBytes.
func WithMaxPayloadBytes(n int64) Option {
	return func(c *Config) { c.MaxPayloadBytes = n }
}
