// Heartbeat and Game Timers
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
	"strings"

	snek "go-snek"
)

// handleTimer runs the heartbeat scan: idle connections are closed,
// forgotten players removed, and PING broadcast when one is due.
// Disconnecting does not remove a player; only the longer player
// timeout does.
func (s *Server) handleTimer() {
	now := s.now()

	var idle []*Conn
	for c := range s.conns {
		if now.Sub(c.lastActive) > s.conf.ConnTimeout {
			idle = append(idle, c)
		}
	}
	for _, c := range idle {
		s.closeConn(c)
	}

	var gone []*snek.Player
	for _, p := range s.players {
		if now.Sub(p.LastActive) > s.conf.PlayerTimeout {
			gone = append(gone, p)
		}
	}
	for _, p := range gone {
		s.conf.Log.Printf("Removing inactive player %s", p.Nickname)
		s.removePlayer(p)
	}

	if now.Sub(s.lastPing) > s.conf.PingInterval {
		for c := range s.conns {
			c.send("PING|")
		}
		s.lastPing = now
	}
}

// handleGameTick advances every active room by one tick.  A room with
// unacknowledged players skips its tick; instead the players that did
// acknowledge are told who is holding the room up.
func (s *Server) handleGameTick() {
	for _, room := range s.rooms {
		if !room.Active {
			continue
		}

		var waiting []*snek.Player
		for _, p := range room.Players {
			if !p.Updated {
				waiting = append(waiting, p)
			}
		}
		if len(waiting) > 0 {
			var sb strings.Builder
			sb.WriteString("WAIT")
			for _, p := range waiting {
				sb.WriteString(" ")
				sb.WriteString(p.Nickname)
			}
			sb.WriteString("|")
			for _, p := range room.Players {
				if p.Updated {
					if c := s.connOf(p); c != nil {
						c.send(sb.String())
					}
				}
			}
			continue
		}

		snek.Debug.Println(room.FullState())
		snek.Debug.Println(room.CurrentMove())

		continues := room.Slither()
		s.broadcast(room, "TICK "+room.FullState()+"|")
		if continues {
			snek.Debug.Print("\n" + room.Render())
			continue
		}

		var survivor *snek.Player
		for _, p := range room.Players {
			if p.Alive {
				survivor = p
				break
			}
		}
		if survivor == nil {
			s.broadcast(room, "DRAW|")
		} else {
			s.broadcast(room, "WINS "+survivor.Nickname+"|")
		}
		room.Active = false
	}
}
