package pty

// InputKind discriminates the commands a ReadWriteSession's caller can
// send to the child.
type InputKind int

const (
	InputWrite InputKind = iota
	InputWriteLine
	InputSendControl
	InputResize
)

// Input is one command for the input-handler task (spec.md §4.8).
type Input struct {
	Kind    InputKind
	Bytes   []byte
	Text    string
	Control byte // e.g. 'C' for Ctrl+C -> 0x03
	Rows    int
	Cols    int
}

// ReadWriteSession additionally accepts input, bridged from the caller
// into the controller fd by a dedicated input-handler task.
type ReadWriteSession struct {
	*session
	input chan Input
}

// StartReadWrite spawns name with args attached to a new PTY sized
// rows x cols and starts its reader, completion, and input-handler
// tasks.
func StartReadWrite(name string, args []string, rows, cols int) (*ReadWriteSession, error) {
	s, err := spawn(name, args, rows, cols)
	if err != nil {
		return nil, err
	}
	rw := &ReadWriteSession{session: s, input: make(chan Input, 64)}

	go s.reader()
	go s.completion()
	go rw.inputHandler()

	return rw, nil
}

// Events returns the channel of Output/Osc/Exit events.
func (s *ReadWriteSession) Events() <-chan Event { return s.events }

// Write queues raw bytes to be written to the child's stdin.
func (s *ReadWriteSession) Write(b []byte) { s.input <- Input{Kind: InputWrite, Bytes: b} }

// WriteLine queues text followed by a newline.
func (s *ReadWriteSession) WriteLine(text string) { s.input <- Input{Kind: InputWriteLine, Text: text} }

// SendControl queues a control character, e.g. SendControl('C') sends
// Ctrl+C (0x03).
func (s *ReadWriteSession) SendControl(letter byte) {
	s.input <- Input{Kind: InputSendControl, Control: letter}
}

// Resize queues a terminal resize, applied via TIOCSWINSZ on the
// controller fd and forwarded to the child as SIGWINCH by the kernel.
func (s *ReadWriteSession) Resize(rows, cols int) {
	s.input <- Input{Kind: InputResize, Rows: rows, Cols: cols}
}

// inputHandler serializes writes to the controller fd so Write,
// WriteLine, SendControl, and Resize never race each other.
func (s *ReadWriteSession) inputHandler() {
	for in := range s.input {
		switch in.Kind {
		case InputWrite:
			s.master.Write(in.Bytes)
		case InputWriteLine:
			s.master.Write([]byte(in.Text + "\n"))
		case InputSendControl:
			ctrl := (in.Control | 0x20) - 'a' + 1 // fold to lowercase, then Ctrl+letter
			s.master.Write([]byte{ctrl})
		case InputResize:
			setWinsize(s.master, in.Rows, in.Cols)
		}
	}
}

// Close stops accepting new input; in-flight writes still drain.
func (s *ReadWriteSession) Close() { close(s.input) }
