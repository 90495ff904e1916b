// Copyright (c) 2026 ircmark contributors
// released under the ISC license

package lib

import (
	"net"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProxyRelaysBothWays(t *testing.T) {
	clientEnd, proxyClient := net.Pipe()
	serverEnd, proxyServer := net.Pipe()
	client := MakeSocket(clientEnd)
	server := MakeSocket(serverEnd)

	transcriptFile := filepath.Join(t.TempDir(), "transcript.txt")
	transcript, err := NewTranscript(transcriptFile)
	require.NoError(t, err)
	defer transcript.Close()

	var mutex sync.Mutex
	var shown []string
	proxy := &Proxy{
		Client: MakeSocket(proxyClient),
		Server: MakeSocket(proxyServer),
		Show: func(line string, from Direction) {
			mutex.Lock()
			defer mutex.Unlock()
			shown = append(shown, from.Prefix()+line)
		},
		Transcript: transcript,
	}
	done := make(chan error, 1)
	go func() { done <- proxy.Run() }()

	require.NoError(t, client.SendLine("PRIVMSG #chan :hi"))
	line, err := server.GetLine()
	require.NoError(t, err)
	assert.Equal(t, "PRIVMSG #chan :hi", line)

	require.NoError(t, server.SendLine(":bob PRIVMSG #chan :\x02yo"))
	line, err = client.GetLine()
	require.NoError(t, err)
	assert.Equal(t, ":bob PRIVMSG #chan :\x02yo", line)

	client.Disconnect()
	err = <-done
	require.Error(t, err)
	assert.Contains(t, err.Error(), "client disconnected")
	// the server side goes down with the client
	_, err = server.GetLine()
	assert.Error(t, err)

	mutex.Lock()
	assert.Equal(t, []string{" -> PRIVMSG #chan :hi", "<-  :bob PRIVMSG #chan :\x02yo"}, shown)
	mutex.Unlock()

	contents, err := os.ReadFile(transcriptFile)
	require.NoError(t, err)
	assert.Equal(t, "-> PRIVMSG #chan :hi\r\n<- :bob PRIVMSG #chan :\x02yo\r\n", string(contents))
}

func TestAcceptClient(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	accepted := make(chan *Socket, 1)
	go func() {
		socket, err := AcceptClient(listener)
		if err == nil {
			accepted <- socket
		}
		close(accepted)
	}()

	conn, err := net.Dial("tcp", listener.Addr().String())
	require.NoError(t, err)
	client := MakeSocket(conn)
	defer client.Disconnect()

	socket, ok := <-accepted
	require.True(t, ok)
	defer socket.Disconnect()
	require.NoError(t, client.SendLine("NICK alice"))
	line, err := socket.GetLine()
	require.NoError(t, err)
	assert.Equal(t, "NICK alice", line)

	// only one client is taken
	_, err = net.Dial("tcp", listener.Addr().String())
	assert.Error(t, err)
}
