package concurrency

import (
	"context"
	"encoding/binary"
	"io"
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/klauspost/compress/zstd"

	"github.com/phoenix-tui/termcore/errkind"
)

// Length-prefix framing protocol constants, grounded on
// original_source/tui/src/network_io/length_prefix_protocol.rs's
// protocol_constants module.
const (
	// MagicNumber identifies the protocol during the handshake. The digit
	// grouping spells out ACED, FACE, BABE, CAFE, carried over from the original.
	MagicNumber uint64 = 0xACED_FACE_BABE_CAFE
	// ProtocolVersion is exchanged and validated during the handshake.
	ProtocolVersion uint64 = 1
)

// Connect performs the client side of the handshake: write the magic
// number and protocol version, then read the magic number back from the
// peer and verify it. Fails if the peer doesn't respond within timeout.
func Connect(ctx context.Context, rw io.ReadWriter, timeout time.Duration) error {
	return withTimeout(ctx, timeout, func() error {
		if err := binary.Write(rw, binary.BigEndian, MagicNumber); err != nil {
			return errkind.Wrap(errkind.Io, err, "write magic number")
		}
		if err := binary.Write(rw, binary.BigEndian, ProtocolVersion); err != nil {
			return errkind.Wrap(errkind.Io, err, "write protocol version")
		}
		var got uint64
		if err := binary.Read(rw, binary.BigEndian, &got); err != nil {
			return errkind.Wrap(errkind.Io, err, "read echoed magic number")
		}
		if got != MagicNumber {
			return errkind.New(errkind.InvalidProtocol, "invalid protocol magic number")
		}
		return nil
	})
}

// Accept performs the server side of the handshake: read and validate the
// magic number and protocol version, then echo the magic number back.
func Accept(ctx context.Context, rw io.ReadWriter, timeout time.Duration) error {
	return withTimeout(ctx, timeout, func() error {
		var gotMagic uint64
		if err := binary.Read(rw, binary.BigEndian, &gotMagic); err != nil {
			return errkind.Wrap(errkind.Io, err, "read magic number")
		}
		if gotMagic != MagicNumber {
			return errkind.New(errkind.InvalidProtocol, "invalid protocol magic number")
		}
		var gotVersion uint64
		if err := binary.Read(rw, binary.BigEndian, &gotVersion); err != nil {
			return errkind.Wrap(errkind.Io, err, "read protocol version")
		}
		if gotVersion != ProtocolVersion {
			return errkind.New(errkind.InvalidProtocol, "invalid protocol version")
		}
		if err := binary.Write(rw, binary.BigEndian, MagicNumber); err != nil {
			return errkind.Wrap(errkind.Io, err, "echo magic number")
		}
		return nil
	})
}

// withTimeout runs fn in its own goroutine and fails with a typed timeout
// error if neither ctx nor the timeout allows it to finish in time. The
// handshake I/O itself (binary.Read/Write over a net.Conn) isn't
// context-aware, so this is the idiomatic bridge: race the blocking call
// against a timer, same shape as the stdin-reader/poller split in the
// input core.
func withTimeout(ctx context.Context, timeout time.Duration, fn func() error) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- fn() }()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return errkind.New(errkind.Io, "handshake timed out")
	}
}

// WriteFrame serializes v with CBOR, compresses it with zstd, and writes
// it as a big-endian u64 length prefix followed by the compressed bytes —
// the payload-framing half of length_prefix_protocol.rs's
// byte_io::try_write.
func WriteFrame(w io.Writer, v any) error {
	raw, err := cbor.Marshal(v)
	if err != nil {
		return errkind.Wrap(errkind.InvalidProtocol, err, "serialize frame payload")
	}

	compressed, err := compressBytes(raw)
	if err != nil {
		return errkind.Wrap(errkind.Io, err, "compress frame payload")
	}

	if err := binary.Write(w, binary.BigEndian, uint64(len(compressed))); err != nil {
		return errkind.Wrap(errkind.Io, err, "write frame length prefix")
	}
	if _, err := w.Write(compressed); err != nil {
		return errkind.Wrap(errkind.Io, err, "write frame payload")
	}
	return nil
}

// ReadFrame reads a length-prefixed, zstd-compressed, CBOR-encoded frame
// from r into v, rejecting any frame whose declared size exceeds
// maxPayloadBytes before attempting to read it — the same early-reject
// try_read performs against protocol_constants::MAX_PAYLOAD_SIZE.
func ReadFrame(r io.Reader, maxPayloadBytes int64, v any) error {
	var size uint64
	if err := binary.Read(r, binary.BigEndian, &size); err != nil {
		return errkind.Wrap(errkind.Io, err, "read frame length prefix")
	}
	if int64(size) > maxPayloadBytes {
		return errkind.New(errkind.PayloadTooLarge, "frame payload exceeds maximum size")
	}

	compressed := make([]byte, size)
	if _, err := io.ReadFull(r, compressed); err != nil {
		return errkind.Wrap(errkind.Io, err, "read frame payload")
	}

	raw, err := decompressBytes(compressed)
	if err != nil {
		return errkind.Wrap(errkind.Io, err, "decompress frame payload")
	}

	if err := cbor.Unmarshal(raw, v); err != nil {
		return errkind.Wrap(errkind.InvalidProtocol, err, "deserialize frame payload")
	}
	return nil
}

func compressBytes(raw []byte) ([]byte, error) {
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, err
	}
	defer enc.Close()
	return enc.EncodeAll(raw, make([]byte, 0, len(raw))), nil
}

func decompressBytes(compressed []byte) ([]byte, error) {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	return dec.DecodeAll(compressed, nil)
}
