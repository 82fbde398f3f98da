// Shared model and constants
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

package snek

import "time"

const (
	// Edge length of the square playfield
	GridSize = 10
	// Target body length of a freshly hatched snake
	InitialSnakeLength = 3
	// Number of rooms the server owns for its entire lifetime
	NumberOfRooms = 4
	// Seats per room
	MaxPlayersInRoom = 4
)

// A Direction is one of the four cardinal movement directions.  None is
// only ever observed as the LastMoveDir of a player that has not
// executed a move yet.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
	None
)

// Position indexes a tile on the grid.  The origin is the top-left
// corner and y grows downwards, so Up decreases y.
type Position struct {
	X, Y int
}

func (p Position) Add(o Position) Position {
	return Position{p.X + o.X, p.Y + o.Y}
}

func (p Position) Sub(o Position) Position {
	return Position{p.X - o.X, p.Y - o.Y}
}

// OnGrid reports whether the position lies on the playfield.
func (p Position) OnGrid() bool {
	return p.X >= 0 && p.X < GridSize && p.Y >= 0 && p.Y < GridSize
}

var deltas = [...]Position{
	Up:    {0, -1},
	Down:  {0, 1},
	Left:  {-1, 0},
	Right: {1, 0},
}

// Delta returns the tile offset of one step in the direction.
func (d Direction) Delta() Position {
	return deltas[d]
}

// String returns the single letter wire representation of a direction.
func (d Direction) String() string {
	switch d {
	case Up:
		return "U"
	case Down:
		return "D"
	case Left:
		return "L"
	case Right:
		return "R"
	default:
		return "?"
	}
}

// ParseDirection maps a single letter back onto a direction.
func ParseDirection(s string) (Direction, bool) {
	switch s {
	case "U":
		return Up, true
	case "D":
		return Down, true
	case "L":
		return Left, true
	case "R":
		return Right, true
	default:
		return None, false
	}
}

// Opposes reports whether two directions cancel each other out, that is
// their deltas sum to the zero offset.  None opposes nothing.
func (d Direction) Opposes(o Direction) bool {
	if d == None || o == None {
		return false
	}
	return d.Delta().Add(o.Delta()) == Position{}
}

// Player is the server-owned identity of a participant.  A player
// outlives the connection that created it; rooms and connections only
// hold non-owning references that the server scrubs on removal.
type Player struct {
	Nickname    string
	Dir         Direction // intent for the next tick
	LastMoveDir Direction // direction executed last tick
	Alive       bool
	Updated     bool // tick acknowledgement received
	Apples      int
	Length      int        // target body length
	Body        []Position // element 0 is the head
	LastActive  time.Time
}

func NewPlayer(nickname string) *Player {
	return &Player{
		Nickname:    nickname,
		LastMoveDir: None,
		Length:      InitialSnakeLength,
		LastActive:  time.Now(),
	}
}

// Head returns the front of the body.  Only valid for hatched players.
func (p *Player) Head() Position {
	return p.Body[0]
}
