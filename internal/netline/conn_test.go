package netline

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tcpPair(t *testing.T) (server *TCPConn, client net.Conn) {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = listener.Close() })

	accepted := make(chan net.Conn, 1)
	go func() {
		conn, err := listener.Accept()
		if err == nil {
			accepted <- conn
		}
	}()

	client, err = net.Dial("tcp", listener.Addr().String())
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	serverSide := <-accepted
	t.Cleanup(func() { _ = serverSide.Close() })

	return NewTCPConn(serverSide), client
}

func TestTCPConnSendLine(t *testing.T) {
	server, client := tcpPair(t)

	require.NoError(t, server.SendLine("Welcome, a player is available for you to fight! You are Player Two."))

	buf := make([]byte, 256)
	n, err := client.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "Welcome, a player is available for you to fight! You are Player Two.\n", string(buf[:n]))
}

func TestTCPConnReadLineStripsNewline(t *testing.T) {
	server, client := tcpPair(t)

	_, err := client.Write([]byte("yes\r\n"))
	require.NoError(t, err)

	line, err := server.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "yes", line)
}

func TestTCPConnReadLineAfterPeerClose(t *testing.T) {
	server, client := tcpPair(t)

	require.NoError(t, client.Close())

	_, err := server.ReadLine()
	assert.ErrorIs(t, err, ErrDisconnected)
}

func TestFakeConnRoundTrip(t *testing.T) {
	conn := NewFakeConn()

	conn.EnterInput("yes")
	line, err := conn.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "yes", line)

	require.NoError(t, conn.SendLine("The Game is starting... Are you ready?"))
	assert.Equal(t, []string{"The Game is starting... Are you ready?"}, conn.Sent())

	// TakeOutput drains the buffer
	assert.Len(t, conn.TakeOutput(), 1)
	assert.Empty(t, conn.Sent())
}

func TestFakeConnClose(t *testing.T) {
	conn := NewFakeConn()
	require.NoError(t, conn.Close())

	_, err := conn.ReadLine()
	assert.ErrorIs(t, err, ErrDisconnected)
	assert.ErrorIs(t, conn.SendLine("anything"), ErrDisconnected)

	// Double close is harmless
	assert.NoError(t, conn.Close())
}

func TestFakeConnEnterInputAfterClose(t *testing.T) {
	conn := NewFakeConn()
	require.NoError(t, conn.Close())

	// Late input is dropped rather than panicking on the closed channel
	conn.EnterInput("yes")

	_, err := conn.ReadLine()
	assert.ErrorIs(t, err, ErrDisconnected)
}
