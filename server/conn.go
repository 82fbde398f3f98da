// Client Connections
//
// Copyright (c) 2024  The go-snek authors
//
// This file is part of go-snek.
//
// go-snek is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License,
// version 3, as published by the Free Software Foundation.
//
// go-snek is distributed in the hope that it will be useful, but
// WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the GNU
// Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public
// License, version 3, along with go-snek. If not, see
// <http://www.gnu.org/licenses/>

package server

import (
	"io"
	"time"

	snek "go-snek"
)

// Conn tracks one client transport and its inbound byte accumulator.
// All fields are owned by the event loop; the reader goroutine only
// touches the underlying transport.
type Conn struct {
	rwc        io.ReadWriteCloser
	addr       string
	buff       []byte
	player     *snek.Player // nil until NICK
	lastActive time.Time
	closed     bool
}

// DisplayName returns the bound player's nickname, or the peer address
// for connections that have not identified themselves yet.
func (c *Conn) DisplayName() string {
	if c.player != nil {
		return c.player.Nickname
	}
	return c.addr
}

// send writes a message to the peer.  Writes are best effort: a broken
// transport is reaped by the idle scan or the next read, not here.
func (c *Conn) send(msg string) {
	if _, err := io.WriteString(c.rwc, msg); err != nil {
		snek.Debug.Printf("write to %s: %s", c.DisplayName(), err)
	}
}
