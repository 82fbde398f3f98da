// Event Loop
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
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"time"

	snek "go-snek"
	"go-snek/conf"
	"go-snek/game"
	"go-snek/proto"
)

// Server owns every room, player and connection.  All state is
// confined to a single loop goroutine that multiplexes transport
// events and the two interval timers, so handlers never need locks and
// every event is handled to completion before the next one.
type Server struct {
	conf *conf.Conf

	rooms   [snek.NumberOfRooms]*game.Game
	players []*snek.Player
	conns   map[*Conn]struct{}

	ln       net.Listener
	events   chan event
	done     chan struct{}
	lastPing time.Time
	now      func() time.Time
}

// Events the reader and accept goroutines feed into the loop.
type (
	// a new transport-level connection
	accepted struct {
		rwc  io.ReadWriteCloser
		addr string
	}
	// bytes read from a connection
	input struct {
		conn *Conn
		data []byte
	}
	// the reader observed EOF or a transport error
	hangup struct {
		conn *Conn
	}
)

type event interface{}

func MakeServer(config *conf.Conf) *Server {
	s := &Server{
		conf:   config,
		conns:  make(map[*Conn]struct{}),
		events: make(chan event, 16),
		done:   make(chan struct{}),
		now:    time.Now,
	}
	for i := range s.rooms {
		s.rooms[i] = game.MakeGame()
	}
	s.lastPing = s.now()
	return s
}

func (s *Server) String() string {
	return "Snake Server"
}

// Listen binds the TCP listener with address and port reuse enabled.
func (s *Server) Listen() error {
	lc := net.ListenConfig{Control: reuseControl}
	addr := fmt.Sprintf("%s:%d", s.conf.TCPAddr, s.conf.TCPPort)
	ln, err := lc.Listen(context.Background(), "tcp4", addr)
	if err != nil {
		return err
	}
	s.ln = ln
	return nil
}

// Addr returns the bound listener address.
func (s *Server) Addr() net.Addr {
	return s.ln.Addr()
}

// Start accepts connections and runs the event loop until Shutdown.
func (s *Server) Start() {
	if s.ln == nil {
		if err := s.Listen(); err != nil {
			s.conf.Log.Fatal(err)
		}
	}
	s.conf.Log.Printf("Listening on %s", s.ln.Addr())
	go s.accept()
	s.run()
}

// Shutdown stops the loop and closes the listener.
func (s *Server) Shutdown() {
	close(s.done)
	if s.ln != nil {
		s.ln.Close()
	}
}

func (s *Server) accept() {
	for {
		conn, err := s.ln.Accept()
		if err != nil {
			return
		}
		s.Accept(conn, conn.RemoteAddr().String())
	}
}

// Accept hands a transport connection over to the event loop.  The
// websocket listener uses this entry point as well.
func (s *Server) Accept(rwc io.ReadWriteCloser, addr string) {
	select {
	case s.events <- accepted{rwc, addr}:
	case <-s.done:
		rwc.Close()
	}
}

func (s *Server) run() {
	heartbeat := time.NewTicker(s.conf.CheckInterval)
	defer heartbeat.Stop()
	ticks := time.NewTicker(s.conf.GameSpeed)
	defer ticks.Stop()

	for {
		select {
		case <-s.done:
			for c := range s.conns {
				c.rwc.Close()
			}
			return
		case ev := <-s.events:
			switch ev := ev.(type) {
			case accepted:
				s.register(ev.rwc, ev.addr)
			case input:
				s.handleInput(ev.conn, ev.data)
			case hangup:
				s.closeConn(ev.conn)
			}
		case <-heartbeat.C:
			s.handleTimer()
		case <-ticks.C:
			s.handleGameTick()
		}
	}
}

func (s *Server) register(rwc io.ReadWriteCloser, addr string) {
	c := &Conn{rwc: rwc, addr: addr, lastActive: s.now()}
	s.conns[c] = struct{}{}
	s.conf.Log.Printf("Client connected: %s", c.DisplayName())
	go s.read(c)
}

// read drains the transport and forwards whatever arrives to the loop.
// It is the only goroutine besides the loop that touches a connection,
// and it only ever touches the transport itself.
func (s *Server) read(c *Conn) {
	buf := make([]byte, 1024)
	for {
		n, err := c.rwc.Read(buf)
		if n > 0 {
			data := make([]byte, n)
			copy(data, buf[:n])
			select {
			case s.events <- input{c, data}:
			case <-s.done:
				return
			}
		}
		if err != nil {
			select {
			case s.events <- hangup{c}:
			case <-s.done:
			}
			return
		}
	}
}

// handleInput appends the received bytes to the connection's buffer
// and processes every complete frame in it.  The buffer is only
// inspected once a full keyword could have arrived; an unknown keyword
// at its front is fatal for the connection.
func (s *Server) handleInput(c *Conn, data []byte) {
	if c.closed {
		return
	}
	c.buff = append(c.buff, data...)

	if len(c.buff) < proto.KeywordSize {
		return
	}
	if proto.Lookup(string(c.buff[:proto.KeywordSize])) == proto.Invalid {
		s.closeConn(c)
		return
	}

	for {
		i := bytes.IndexByte(c.buff, proto.Delimiter)
		if i < 0 {
			return
		}
		msg := string(c.buff[:i])
		c.buff = c.buff[i+1:]

		if err := s.process(c, msg); err != nil {
			s.conf.Debug.Printf("%s: %s", c.DisplayName(), err)
			s.closeConn(c)
			return
		}
		if c.closed {
			// QUIT or a displacement closed it mid-buffer
			return
		}

		// mark the connection and its player as active
		c.lastActive = s.now()
		if c.player != nil {
			c.player.LastActive = s.now()
		}
	}
}

func (s *Server) closeConn(c *Conn) {
	if c.closed {
		return
	}
	s.conf.Log.Printf("Closing connection with: %s", c.DisplayName())
	c.closed = true
	c.rwc.Close()
	delete(s.conns, c)
}

// connOf resolves a player to its currently bound connection, if any.
func (s *Server) connOf(p *snek.Player) *Conn {
	for c := range s.conns {
		if c.player == p {
			return c
		}
	}
	return nil
}

// roomOf returns the room containing the player, if any.
func (s *Server) roomOf(p *snek.Player) *game.Game {
	for _, room := range s.rooms {
		for _, member := range room.Players {
			if member == p {
				return room
			}
		}
	}
	return nil
}

func (s *Server) playerByNick(nick string) *snek.Player {
	for _, p := range s.players {
		if p.Nickname == nick {
			return p
		}
	}
	return nil
}

// broadcast writes a message to every room member's bound connection,
// in room-join order.  Members without a connection are skipped.
func (s *Server) broadcast(room *game.Game, msg string) {
	for _, p := range room.Players {
		if c := s.connOf(p); c != nil {
			c.send(msg)
		}
	}
}

// removePlayer destroys a player.  Every room and connection reference
// is scrubbed before the entry itself is dropped.
func (s *Server) removePlayer(p *snek.Player) {
	s.leaveRooms(p)
	for c := range s.conns {
		if c.player == p {
			c.player = nil
		}
	}
	for i, q := range s.players {
		if q == p {
			s.players = append(s.players[:i], s.players[i+1:]...)
			break
		}
	}
}
