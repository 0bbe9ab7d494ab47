package netline

import "sync"

// FakeConn is the in-memory Conn used by tests: queue input lines with
// EnterInput, inspect server output with Sent or TakeOutput.
type FakeConn struct {
	mu     sync.Mutex
	input  chan string
	sent   []string
	closed bool
}

// NewFakeConn creates a fake connection with room for buffered input.
func NewFakeConn() *FakeConn {
	return &FakeConn{
		input: make(chan string, 64),
	}
}

var _ Conn = (*FakeConn)(nil)

// EnterInput queues a line as if the client had typed it. Input entered
// after Close is discarded.
func (c *FakeConn) EnterInput(line string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.input <- line
}

// SendLine records an outgoing line.
func (c *FakeConn) SendLine(line string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrDisconnected
	}
	c.sent = append(c.sent, line)
	return nil
}

// ReadLine blocks until input is queued or the connection is closed.
func (c *FakeConn) ReadLine() (string, error) {
	line, ok := <-c.input
	if !ok {
		return "", ErrDisconnected
	}
	return line, nil
}

// Close marks the connection dead and unblocks pending reads.
func (c *FakeConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.input)
	}
	return nil
}

// Sent returns a copy of every line sent so far.
func (c *FakeConn) Sent() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.sent))
	copy(out, c.sent)
	return out
}

// TakeOutput returns buffered output and clears it, mirroring how a real
// client would drain its socket.
func (c *FakeConn) TakeOutput() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := c.sent
	c.sent = nil
	return out
}

// LastSent returns the most recent line, or "" if nothing was sent.
func (c *FakeConn) LastSent() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.sent) == 0 {
		return ""
	}
	return c.sent[len(c.sent)-1]
}
