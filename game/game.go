// Room Simulation
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

package game

import (
	"errors"
	"math/rand"

	snek "go-snek"
)

// Error to return when a match cannot begin
var ErrCannotStart = errors.New("cannot start game")

// Game manages the state and logic of a single room.
//
// The players slice holds non-owning references into the server's
// player set, in join order.  The occupancy grid mirrors the union of
// all bodies and is maintained incrementally by Hatch and Slither.
type Game struct {
	Players []*snek.Player
	Active  bool // a match is in progress
	Apple   snek.Position

	grid [snek.GridSize][snek.GridSize]bool
	rand *rand.Rand // nil means the shared source
}

func MakeGame() *Game {
	return &Game{}
}

func (g *Game) intn(n int) int {
	if g.rand != nil {
		return g.rand.Intn(n)
	}
	return rand.Intn(n)
}

// Empty reports whether no snake segment occupies the tile.  It
// consults the bodies rather than the occupancy grid, so it may be
// called while the grid is incoherent (between placements in Hatch).
func (g *Game) Empty(pos snek.Position) bool {
	for _, p := range g.Players {
		for _, part := range p.Body {
			if part == pos {
				return false
			}
		}
	}
	return true
}

// Occupied reports the collision state of a tile as maintained by
// Hatch and Slither.
func (g *Game) Occupied(pos snek.Position) bool {
	return g.grid[pos.Y][pos.X]
}

func (g *Game) randomEmptyTile() snek.Position {
	for {
		pos := snek.Position{X: g.intn(snek.GridSize), Y: g.intn(snek.GridSize)}
		if g.Empty(pos) {
			return pos
		}
	}
}

func (g *Game) alive() int {
	n := 0
	for _, p := range g.Players {
		if p.Alive {
			n++
		}
	}
	return n
}

// Hatch resets the room for a new match: every player gets a fresh
// single-segment body on a random empty tile and a random direction,
// then the apple is placed.  Fails unless the room is idle and holds at
// least two players.
func (g *Game) Hatch() error {
	if len(g.Players) < 2 || g.Active {
		return ErrCannotStart
	}

	g.grid = [snek.GridSize][snek.GridSize]bool{}

	for _, p := range g.Players {
		p.Body = nil
		p.Length = snek.InitialSnakeLength
		pos := g.randomEmptyTile()
		p.Dir = snek.Direction(g.intn(4))
		p.Body = append(p.Body, pos)
		g.grid[pos.Y][pos.X] = true
		p.Alive = true
	}

	g.Apple = g.randomEmptyTile()
	g.Active = true
	return nil
}

// Slither advances the room by one tick and reports whether the match
// continues.
//
// The phases run in a fixed order: heads advance (walls kill without
// extending the body), then collisions against the pre-tick occupancy
// are resolved, then head-to-head meetings, and only then are the new
// heads marked occupied.  A snake moving onto a tile a neighbour is
// vacating this tick therefore still dies; the vacated tail tile is
// freed afterwards.  Cells under a snake that died this tick are never
// cleared.
func (g *Game) Slither() bool {
	if g.alive() < 2 {
		return false
	}

	// newly occupied tiles
	var heads []snek.Position

	// advance the snakes, kill if out of bounds
	for _, p := range g.Players {
		if !p.Alive {
			continue
		}
		p.Updated = false
		pos := p.Head().Add(p.Dir.Delta())
		if !pos.OnGrid() {
			p.Alive = false
		} else {
			heads = append(heads, pos)
			p.Body = append([]snek.Position{pos}, p.Body...)
			p.LastMoveDir = p.Dir
		}
	}

	// collisions against tiles that were occupied before this tick
	for _, p := range g.Players {
		if len(p.Body) == 0 {
			continue
		}
		if g.Occupied(p.Head()) {
			p.Alive = false
		}
	}

	// head-to-head collisions kill both parties
	for _, outer := range g.Players {
		if !outer.Alive || len(outer.Body) == 0 {
			continue
		}
		for _, inner := range g.Players {
			if outer != inner && inner.Alive && len(inner.Body) > 0 &&
				outer.Head() == inner.Head() {
				outer.Alive = false
				inner.Alive = false
			}
		}
	}

	// mark the tiles under the new heads
	for _, head := range heads {
		g.grid[head.Y][head.X] = true
	}

	// pop the tail of snakes that did not eat the apple
	appleEaten := false
	for _, p := range g.Players {
		if p.Alive && len(p.Body) > 0 && p.Head() == g.Apple {
			p.Apples++
			p.Length++
			appleEaten = true
		} else if len(p.Body) > p.Length {
			tail := p.Body[len(p.Body)-1]
			g.grid[tail.Y][tail.X] = false
			p.Body = p.Body[:len(p.Body)-1]
		}
	}

	if appleEaten {
		g.Apple = g.randomEmptyTile()
	}

	return g.alive() >= 2
}
