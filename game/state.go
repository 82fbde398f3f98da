// State Encoding
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
	"fmt"
	"strconv"
	"strings"

	snek "go-snek"
)

// Error to return if a state string couldn't be decoded
var ErrMalformedState = errors.New("malformed state")

// CurrentMove encodes the apple position followed by every player's
// nickname and intent direction.
func (g *Game) CurrentMove() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d %d", g.Apple.X, g.Apple.Y)
	for _, p := range g.Players {
		fmt.Fprintf(&sb, " %s %s", p.Nickname, p.Dir)
	}
	return sb.String()
}

// FullState encodes the apple position followed by one entry per
// player with a body: nickname, head coordinates, and a status letter
// (H alive, E eliminated) glued to the body trail.  Each trail letter
// gives the direction from the previous segment to the next one, so
// replaying the trail from the head reconstructs the body.
func (g *Game) FullState() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d %d", g.Apple.X, g.Apple.Y)
	for _, p := range g.Players {
		if len(p.Body) == 0 {
			continue
		}
		head := p.Head()
		fmt.Fprintf(&sb, " %s %d %d ", p.Nickname, head.X, head.Y)
		if p.Alive {
			sb.WriteString("H")
		} else {
			sb.WriteString("E")
		}
		last := head
		for _, part := range p.Body {
			if part == last {
				continue
			}
			for d := snek.Up; d <= snek.Right; d++ {
				if d.Delta() == part.Sub(last) {
					sb.WriteString(d.String())
				}
			}
			last = part
		}
	}
	return sb.String()
}

// Snake is one decoded entry of a full state string.
type Snake struct {
	Nickname string
	Alive    bool
	Body     []snek.Position // element 0 is the head
}

// ParseState decodes a FullState string back into the apple position
// and the snakes it describes.
func ParseState(state string) (snek.Position, []Snake, error) {
	var apple snek.Position

	fields := strings.Fields(state)
	if len(fields) < 2 || (len(fields)-2)%4 != 0 {
		return apple, nil, ErrMalformedState
	}

	ax, err := strconv.Atoi(fields[0])
	if err != nil {
		return apple, nil, ErrMalformedState
	}
	ay, err := strconv.Atoi(fields[1])
	if err != nil {
		return apple, nil, ErrMalformedState
	}
	apple = snek.Position{X: ax, Y: ay}

	var snakes []Snake
	for i := 2; i < len(fields); i += 4 {
		hx, err := strconv.Atoi(fields[i+1])
		if err != nil {
			return apple, nil, ErrMalformedState
		}
		hy, err := strconv.Atoi(fields[i+2])
		if err != nil {
			return apple, nil, ErrMalformedState
		}

		trail := fields[i+3]
		var alive bool
		switch trail[0] {
		case 'H':
			alive = true
		case 'E':
			alive = false
		default:
			return apple, nil, ErrMalformedState
		}

		s := Snake{
			Nickname: fields[i],
			Alive:    alive,
			Body:     []snek.Position{{X: hx, Y: hy}},
		}
		for _, c := range trail[1:] {
			dir, ok := snek.ParseDirection(string(c))
			if !ok {
				return apple, nil, ErrMalformedState
			}
			s.Body = append(s.Body, s.Body[len(s.Body)-1].Add(dir.Delta()))
		}
		snakes = append(snakes, s)
	}

	return apple, snakes, nil
}

// Render draws the board as text, one row per line: dots for empty
// tiles, A for the apple and a digit per living snake.  Only used for
// debug logging.
func (g *Game) Render() string {
	var field [snek.GridSize][snek.GridSize]byte
	for y := range field {
		for x := range field[y] {
			field[y][x] = '.'
		}
	}

	field[g.Apple.Y][g.Apple.X] = 'A'

	pid := 0
	for _, p := range g.Players {
		if !p.Alive {
			continue
		}
		for _, part := range p.Body {
			field[part.Y][part.X] = byte('0' + pid%10)
		}
		pid++
	}

	var sb strings.Builder
	for y := range field {
		sb.Write(field[y][:])
		sb.WriteString("\n")
	}
	return sb.String()
}
