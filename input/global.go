package input

import (
	"os"
	"os/signal"
	"sync"
	"syscall"

	"golang.org/x/sys/unix"

	"github.com/phoenix-tui/termcore/config"
	"github.com/phoenix-tui/termcore/termio"
)

// pollingStdinReader wraps os.Stdin with an explicit unix.Poll readiness
// check before each Read, the Go equivalent of the mio poller thread's
// stdin-fd registration (spec.md §4.6). EINTR is retried, matching the
// documented retry policy.
type pollingStdinReader struct {
	fd int
}

func (p pollingStdinReader) Read(buf []byte) (int, error) {
	fds := []unix.PollFd{{Fd: int32(p.fd), Events: unix.POLLIN}}
	for {
		_, err := unix.Poll(fds, -1)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return 0, err
		}
		break
	}
	return os.Stdin.Read(buf)
}

var (
	globalOnce sync.Once
	globalCore *Core
)

// Global returns the process-wide input Core, launching its
// reader/dispatcher goroutines on first call (spec.md §4.6's
// GLOBAL_INPUT_CORE LazyLock). Subsequent calls return the same
// instance; the background goroutines are never relaunched.
func Global(cfg config.Config) *Core {
	globalOnce.Do(func() {
		globalCore = NewCore(cfg.EscTimeout, cfg.MaxPasteBytes)

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGWINCH)
		winch := make(chan struct{}, 1)
		go func() {
			for range sigCh {
				select {
				case winch <- struct{}{}:
				default:
				}
			}
		}()

		sizeFn := func() (int, int, error) {
			sz, err := termio.StdoutSize()
			return sz.Rows, sz.Cols, err
		}

		go globalCore.Run(pollingStdinReader{fd: int(os.Stdin.Fd())}, winch, sizeFn, nil)
	})
	return globalCore
}
