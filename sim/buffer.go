package sim

import (
	"bytes"
	"io"
	"sync"
)

// buffer is an unbounded byte stream between goroutines. Writes never block, so the
// simulated firmware keeps its timing even when nobody is reading.
type buffer struct {
	mtx    sync.Mutex
	buf    bytes.Buffer
	ready  chan struct{}
	closed bool
}

func newBuffer() *buffer {
	return &buffer{ready: make(chan struct{}, 1)}
}

func (b *buffer) notify() {
	select {
	case b.ready <- struct{}{}:
	default:
	}
}

func (b *buffer) Write(p []byte) (int, error) {
	b.mtx.Lock()
	if b.closed {
		b.mtx.Unlock()
		return 0, io.ErrClosedPipe
	}
	n, err := b.buf.Write(p)
	b.mtx.Unlock()

	b.notify()
	return n, err
}

// Read blocks until data is available or the buffer is closed
func (b *buffer) Read(p []byte) (int, error) {
	for {
		b.mtx.Lock()
		if b.buf.Len() > 0 {
			n, err := b.buf.Read(p)
			b.mtx.Unlock()
			return n, err
		}
		if b.closed {
			b.mtx.Unlock()
			return 0, io.EOF
		}
		b.mtx.Unlock()

		<-b.ready
	}
}

func (b *buffer) Buffered() int {
	b.mtx.Lock()
	defer b.mtx.Unlock()
	return b.buf.Len()
}

func (b *buffer) ReadByte() (byte, error) {
	b.mtx.Lock()
	defer b.mtx.Unlock()
	return b.buf.ReadByte()
}

func (b *buffer) Close() error {
	b.mtx.Lock()
	b.closed = true
	b.mtx.Unlock()

	b.notify()
	return nil
}
