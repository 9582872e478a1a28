package concurrency

import (
	"bytes"
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phoenix-tui/termcore/errkind"
)

func TestHandshakeRoundTrip(t *testing.T) {
	// Connect waits for the server's echo, so the two sides must run
	// concurrently over a synchronous in-memory connection.
	client, server := net.Pipe()
	defer client.Close()
	defer server.Close()

	errCh := make(chan error, 1)
	go func() { errCh <- Accept(context.Background(), server, time.Second) }()

	require.NoError(t, Connect(context.Background(), client, time.Second))
	require.NoError(t, <-errCh)
}

func TestAcceptRejectsWrongMagicNumber(t *testing.T) {
	var in, out bytes.Buffer
	// Write garbage instead of the magic number.
	require.NoError(t, writeU64(&in, 0xDEADBEEF))
	require.NoError(t, writeU64(&in, ProtocolVersion))

	err := Accept(context.Background(), pipeRW{r: &in, w: &out}, time.Second)
	require.Error(t, err)
	kind, ok := errkind.Of(err)
	require.True(t, ok)
	assert.Equal(t, errkind.InvalidProtocol, kind)
}

func TestAcceptRejectsWrongVersion(t *testing.T) {
	var in, out bytes.Buffer
	require.NoError(t, writeU64(&in, MagicNumber))
	require.NoError(t, writeU64(&in, 999))

	err := Accept(context.Background(), pipeRW{r: &in, w: &out}, time.Second)
	require.Error(t, err)
	kind, ok := errkind.Of(err)
	require.True(t, ok)
	assert.Equal(t, errkind.InvalidProtocol, kind)
}

func TestHandshakeFailsOnEmptyPeer(t *testing.T) {
	var in, out bytes.Buffer // peer never wrote anything back
	err := Connect(context.Background(), pipeRW{r: &in, w: &out}, 10*time.Millisecond)
	require.Error(t, err)
}

type frameMsg struct {
	Name  string
	Count int
}

func TestWriteReadFrameRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	want := frameMsg{Name: "hello", Count: 7}

	require.NoError(t, WriteFrame(&buf, want))

	var got frameMsg
	require.NoError(t, ReadFrame(&buf, 10<<20, &got))
	assert.Equal(t, want, got)
}

func TestReadFrameRejectsOversizedPayload(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteFrame(&buf, frameMsg{Name: "big", Count: 1}))

	var got frameMsg
	err := ReadFrame(&buf, 1, &got) // declared size will exceed a 1-byte cap
	require.Error(t, err)
	kind, ok := errkind.Of(err)
	require.True(t, ok)
	assert.Equal(t, errkind.PayloadTooLarge, kind)
}

func TestWriteFrameMultipleMessagesRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	msgs := []frameMsg{{Name: "one", Count: 1}, {Name: "two", Count: 2}, {Name: "three", Count: 3}}

	for _, m := range msgs {
		require.NoError(t, WriteFrame(&buf, m))
	}
	for _, want := range msgs {
		var got frameMsg
		require.NoError(t, ReadFrame(&buf, 10<<20, &got))
		assert.Equal(t, want, got)
	}
}

// pipeRW adapts a separate reader and writer into a single io.ReadWriter
// for the handshake helpers under test.
type pipeRW struct {
	r *bytes.Buffer
	w *bytes.Buffer
}

func (p pipeRW) Read(b []byte) (int, error)  { return p.r.Read(b) }
func (p pipeRW) Write(b []byte) (int, error) { return p.w.Write(b) }

func writeU64(buf *bytes.Buffer, v uint64) error {
	b := make([]byte, 8)
	for i := 0; i < 8; i++ {
		b[7-i] = byte(v >> (8 * i))
	}
	_, err := buf.Write(b)
	return err
}
