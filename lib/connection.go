// Copyright (c) 2017 Daniel Oaks <daniel@danieloaks.net>
// released under the ISC license

package lib

import (
	"crypto/tls"
	"net/url"
	"time"
)

type ConnectionConfig struct {
	// a hostname, or a ws:// or wss:// URL for WebSocket
	Host        string
	Port        int
	TLS         bool
	TLSConfig   *tls.Config
	Origin      string
	DialTimeout time.Duration
}

// IsWebSocket reports whether the host is a WebSocket URL.
func (config *ConnectionConfig) IsWebSocket() bool {
	u, err := url.Parse(config.Host)
	return err == nil && (u.Scheme == "ws" || u.Scheme == "wss")
}

func NewConnection(config ConnectionConfig) (IRCSocket, error) {
	if config.IsWebSocket() {
		return NewIRCWebSocket(config.Host, config.Origin, config.TLSConfig)
	}
	socket, err := ConnectSocket(config.Host, config.Port, config.TLS, config.TLSConfig, config.DialTimeout)
	if err != nil {
		return nil, err
	}
	return socket, nil
}
