// Wire Protocol
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

package proto

import (
	"bytes"
	"strings"
)

// Frames are delimited by a single byte on the wire; tokens within a
// frame by a single space.
const (
	Delimiter = '|'
	Separator = " "
)

// Every client keyword is exactly four bytes long, which lets the
// server reject garbage as soon as four bytes have accumulated.
const KeywordSize = 4

// Command identifies a client keyword.
type Command uint8

const (
	Invalid Command = iota
	Nick
	List
	Join
	Leave
	Move
	Start
	Tack
	Pong
	Quit
)

var keywords = map[string]Command{
	"NICK": Nick,
	"LIST": List,
	"JOIN": Join,
	"LEAV": Leave,
	"MOVE": Move,
	"STRT": Start,
	"TACK": Tack,
	"PONG": Pong,
	"QUIT": Quit,
}

// Lookup resolves a keyword token, returning Invalid for anything that
// is not a known command.
func Lookup(token string) Command {
	return keywords[token]
}

// Fields splits a frame into its space separated tokens.  Unlike
// strings.Fields this keeps empty tokens, matching the wire grammar's
// single-space rule.
func Fields(frame string) []string {
	return strings.Split(frame, Separator)
}

// ScanFrames is a bufio.SplitFunc that cuts a byte stream into frames
// at the delimiter.  A trailing partial frame is returned as-is at EOF.
func ScanFrames(data []byte, atEOF bool) (int, []byte, error) {
	if i := bytes.IndexByte(data, Delimiter); i >= 0 {
		return i + 1, data[:i], nil
	}
	if atEOF && len(data) > 0 {
		return len(data), data, nil
	}
	return 0, nil, nil
}
