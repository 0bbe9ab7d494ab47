// Package netline is the messaging gateway between the game core and a
// client socket: one text line out, one text line in. The core depends
// only on the Conn capability, never on net.Conn directly.
package netline

import (
	"bufio"
	"errors"
	"io"
	"net"
	"strings"
	"sync"
)

// ErrDisconnected is returned once the peer has closed the connection.
var ErrDisconnected = errors.New("client disconnected")

// Conn is a line-oriented client channel. SendLine appends the trailing
// newline itself; ReadLine blocks until a full line arrives and returns
// it without the newline.
type Conn interface {
	SendLine(line string) error
	ReadLine() (string, error)
	Close() error
}

// TCPConn adapts a net.Conn to the Conn interface with buffered reads.
type TCPConn struct {
	conn net.Conn
	r    *bufio.Reader

	writeMu sync.Mutex
}

// NewTCPConn wraps an accepted socket.
func NewTCPConn(conn net.Conn) *TCPConn {
	return &TCPConn{
		conn: conn,
		r:    bufio.NewReader(conn),
	}
}

var _ Conn = (*TCPConn)(nil)

// SendLine writes one newline-terminated line to the socket.
func (c *TCPConn) SendLine(line string) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	if _, err := io.WriteString(c.conn, line+"\n"); err != nil {
		return ErrDisconnected
	}
	return nil
}

// ReadLine blocks until the client sends a full line. Trailing newline
// and carriage return are stripped.
func (c *TCPConn) ReadLine() (string, error) {
	line, err := c.r.ReadString('\n')
	if err != nil {
		return "", ErrDisconnected
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Close closes the underlying socket.
func (c *TCPConn) Close() error {
	return c.conn.Close()
}

// RemoteAddr reports the peer address for registry bookkeeping.
func (c *TCPConn) RemoteAddr() string {
	return c.conn.RemoteAddr().String()
}
