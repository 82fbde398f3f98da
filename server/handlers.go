// Command Handlers
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
	"errors"
	"fmt"
	"strconv"
	"strings"

	snek "go-snek"
	"go-snek/game"
	"go-snek/proto"
)

// Protocol violations; any of these closes the offending connection.
var (
	errUnknownCommand   = errors.New("unknown command")
	errPrematureCommand = errors.New("command before NICK")
	errArgumentMismatch = errors.New("argument mismatch")
	errBadArgument      = errors.New("bad argument")
	errAlreadyNamed     = errors.New("connection already bound")
	errNotInRoom        = errors.New("player is in no room")
)

// process dispatches a single frame.  A non-nil return is a protocol
// violation and the caller closes the connection.
func (s *Server) process(c *Conn, msg string) error {
	s.conf.Debug.Printf("[%s] : %s", c.DisplayName(), msg)

	tokens := proto.Fields(msg)
	cmd := proto.Lookup(tokens[0])

	if cmd != proto.Nick && cmd != proto.Pong && c.player == nil {
		return errPrematureCommand
	}

	switch cmd {
	case proto.Pong:
		// nothing beyond the liveness bump done by the caller
		if len(tokens) != 1 {
			return errArgumentMismatch
		}
	case proto.Nick:
		return s.handleNick(c, tokens)
	case proto.List:
		if len(tokens) != 1 {
			return errArgumentMismatch
		}
		c.send(s.roomListing())
	case proto.Join:
		return s.handleJoin(c, tokens)
	case proto.Leave:
		if len(tokens) != 1 {
			return errArgumentMismatch
		}
		s.leaveRooms(c.player)
		c.send("LEFT|")
	case proto.Move:
		return s.handleMove(c, tokens)
	case proto.Start:
		if len(tokens) != 1 {
			return errArgumentMismatch
		}
		return s.handleStart(c)
	case proto.Tack:
		if len(tokens) != 1 {
			return errArgumentMismatch
		}
		c.player.Updated = true
	case proto.Quit:
		if len(tokens) != 1 {
			return errArgumentMismatch
		}
		s.removePlayer(c.player)
		s.closeConn(c)
	default:
		return errUnknownCommand
	}
	return nil
}

// handleNick binds the connection to a player, creating it if the
// nickname is unknown.  An existing player is taken over: whatever
// connection currently speaks for it is displaced and the new
// connection gets the player's state replayed.
func (s *Server) handleNick(c *Conn, tokens []string) error {
	if len(tokens) != 2 {
		return errArgumentMismatch
	}
	if c.player != nil {
		return errAlreadyNamed
	}
	nick := tokens[1]
	if nick == "" {
		return errBadArgument
	}

	player := s.playerByNick(nick)
	if player == nil {
		player = snek.NewPlayer(nick)
		s.players = append(s.players, player)
		c.player = player
		c.send(s.roomListing())
		return nil
	}

	if old := s.connOf(player); old != nil {
		s.closeConn(old)
	}
	c.player = player

	if room := s.roomOf(player); room != nil {
		c.send(lobbyListing(room))
		if room.Active {
			c.send("TICK " + room.FullState() + "|")
		}
	} else {
		c.send(s.roomListing())
	}
	return nil
}

func (s *Server) handleJoin(c *Conn, tokens []string) error {
	if len(tokens) != 2 {
		return errArgumentMismatch
	}
	id, err := strconv.ParseUint(tokens[1], 10, 32)
	if err != nil || id >= snek.NumberOfRooms {
		return errBadArgument
	}

	room := s.rooms[id]
	if len(room.Players) >= snek.MaxPlayersInRoom {
		c.send("FULL|")
		return nil
	}

	s.leaveRooms(c.player)
	room.Players = append(room.Players, c.player)
	s.broadcast(room, lobbyListing(room))
	return nil
}

func (s *Server) handleMove(c *Conn, tokens []string) error {
	if len(tokens) != 2 {
		return errArgumentMismatch
	}
	dir, ok := snek.ParseDirection(tokens[1])
	if !ok {
		return errBadArgument
	}
	// A reversal onto the last executed direction is dropped, not an
	// error.
	if !dir.Opposes(c.player.LastMoveDir) {
		c.player.Dir = dir
	}
	c.send("MOVD|")
	return nil
}

func (s *Server) handleStart(c *Conn) error {
	room := s.roomOf(c.player)
	if room == nil {
		return errNotInRoom
	}
	if err := room.Hatch(); err != nil {
		c.send("STRT FAIL|")
		return nil
	}
	c.send("STRT OK|")
	snek.Debug.Print("\n" + room.Render())
	s.broadcast(room, "TICK "+room.FullState()+"|")
	return nil
}

// leaveRooms removes the player from whatever room holds it and tells
// the remaining members about the new membership.
func (s *Server) leaveRooms(p *snek.Player) {
	for _, room := range s.rooms {
		for i, member := range room.Players {
			if member == p {
				room.Players = append(room.Players[:i], room.Players[i+1:]...)
				s.broadcast(room, lobbyListing(room))
				break
			}
		}
	}
}

func (s *Server) roomListing() string {
	var sb strings.Builder
	sb.WriteString("ROOM")
	for _, room := range s.rooms {
		fmt.Fprintf(&sb, " %d", len(room.Players))
	}
	sb.WriteString("|")
	return sb.String()
}

func lobbyListing(room *game.Game) string {
	var sb strings.Builder
	sb.WriteString("LOBY")
	for _, p := range room.Players {
		sb.WriteString(" ")
		sb.WriteString(p.Nickname)
	}
	sb.WriteString("|")
	return sb.String()
}
