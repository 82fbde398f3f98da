// Machine Players
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

package bot

import (
	"bufio"
	"fmt"
	"net"
	"strings"

	snek "go-snek"
	"go-snek/conf"
	"go-snek/game"
	"go-snek/proto"
)

// Bot is a machine player.  It dials the server and speaks the wire
// protocol like any other client: it identifies itself, joins a room,
// answers pings, acknowledges ticks and steers its snake by decoding
// the broadcast state.  Bots never start a match.
type Bot struct {
	conf *conf.Conf
	nick string
	room uint
	conn net.Conn
}

func MakeBot(config *conf.Conf, nick string, room uint) *Bot {
	return &Bot{conf: config, nick: nick, room: room}
}

func (b *Bot) String() string {
	return "Bot " + b.nick
}

// Start dials the server and plays until the connection drops.
func (b *Bot) Start() {
	addr := fmt.Sprintf("%s:%d", b.conf.TCPAddr, b.conf.TCPPort)
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		b.conf.Log.Printf("%s: %s", b, err)
		return
	}
	b.conn = conn
	defer conn.Close()

	fmt.Fprintf(conn, "NICK %s|JOIN %d|", b.nick, b.room)

	scanner := bufio.NewScanner(conn)
	scanner.Split(proto.ScanFrames)
	for scanner.Scan() {
		b.handle(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		snek.Debug.Printf("%s: %s", b, err)
	}
}

func (b *Bot) Shutdown() {
	if b.conn != nil {
		b.conn.Close()
	}
}

func (b *Bot) handle(msg string) {
	tokens := strings.SplitN(msg, " ", 2)
	switch tokens[0] {
	case "PING":
		fmt.Fprint(b.conn, "PONG|")
	case "TICK":
		if len(tokens) == 2 {
			b.react(tokens[1])
		}
		fmt.Fprint(b.conn, "TACK|")
	case "WAIT":
		fmt.Fprint(b.conn, "TACK|")
	}
}

// react decodes the broadcast state and steers away from anything
// deadly.
func (b *Bot) react(state string) {
	apple, snakes, err := game.ParseState(state)
	if err != nil {
		snek.Debug.Printf("%s: %s", b, err)
		return
	}
	if dir, ok := Steer(apple, snakes, b.nick); ok {
		fmt.Fprintf(b.conn, "MOVE %s|", dir)
	}
}

// Steer picks a direction for the named snake: towards the apple when
// that step is safe, otherwise any step that hits neither a wall nor a
// body.  The second return is false when the snake is absent, dead or
// boxed in.
func Steer(apple snek.Position, snakes []game.Snake, nick string) (snek.Direction, bool) {
	var me *game.Snake
	occupied := make(map[snek.Position]bool)
	for i := range snakes {
		for _, part := range snakes[i].Body {
			occupied[part] = true
		}
		if snakes[i].Nickname == nick {
			me = &snakes[i]
		}
	}
	if me == nil || !me.Alive || len(me.Body) == 0 {
		return snek.None, false
	}
	head := me.Body[0]

	safe := func(d snek.Direction) bool {
		next := head.Add(d.Delta())
		return next.OnGrid() && !occupied[next]
	}

	// Prefer closing in on the apple.
	var towards []snek.Direction
	if apple.X < head.X {
		towards = append(towards, snek.Left)
	}
	if apple.X > head.X {
		towards = append(towards, snek.Right)
	}
	if apple.Y < head.Y {
		towards = append(towards, snek.Up)
	}
	if apple.Y > head.Y {
		towards = append(towards, snek.Down)
	}
	for _, d := range towards {
		if safe(d) {
			return d, true
		}
	}

	for d := snek.Up; d <= snek.Right; d++ {
		if safe(d) {
			return d, true
		}
	}
	return snek.None, false
}
