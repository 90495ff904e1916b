// Copyright (c) 2017 Daniel Oaks <daniel@danieloaks.net>
// released under the ISC license

package lib

import (
	"fmt"
	"net"
)

// Direction says which side of a proxy a line came from.
type Direction int

const (
	FromServer Direction = iota
	FromClient
)

// Prefix marks a relayed line in the output.
func (d Direction) Prefix() string {
	if d == FromServer {
		return "<-  "
	}
	return " -> "
}

func (d Direction) String() string {
	if d == FromServer {
		return "server"
	}
	return "client"
}

func (d Direction) other() Direction {
	return 1 - d
}

// AcceptClient waits for one client on ln, then stops listening.
func AcceptClient(ln net.Listener) (*Socket, error) {
	defer ln.Close()
	conn, err := ln.Accept()
	if err != nil {
		return nil, err
	}
	return MakeSocket(conn), nil
}

// Proxy relays lines between a client and a server, showing each one as it
// passes.
type Proxy struct {
	Client IRCSocket
	Server IRCSocket
	// Show is called for every relayed line, from both relay goroutines
	Show       func(line string, from Direction)
	Transcript *Transcript
}

// Run relays until either side disconnects or fails, then disconnects both
// and returns the reason.
func (p *Proxy) Run() error {
	errs := make(chan error, 2)
	go func() { errs <- p.relay(p.Server, p.Client, FromServer) }()
	go func() { errs <- p.relay(p.Client, p.Server, FromClient) }()
	err := <-errs
	p.Client.Disconnect()
	p.Server.Disconnect()
	<-errs
	return err
}

func (p *Proxy) relay(from, to IRCSocket, direction Direction) error {
	for {
		line, err := from.GetLine()
		if err != nil {
			return fmt.Errorf("%s disconnected: %w", direction, err)
		}
		p.Transcript.WriteLine(line, direction == FromClient)
		if p.Show != nil {
			p.Show(line, direction)
		}
		if err := to.SendLine(line); err != nil {
			return fmt.Errorf("couldn't send line to %s: %w", direction.other(), err)
		}
	}
}
