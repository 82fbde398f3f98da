// Configuration loading and dumping
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

package conf

import (
	"io"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Internal representation.  All durations are milliseconds.
type conf struct {
	Proto struct {
		Addr    string `toml:"addr"`
		Port    uint   `toml:"port"`
		Timeout uint   `toml:"timeout"`
		Ping    uint   `toml:"ping"`
	} `toml:"proto"`
	Game struct {
		Speed  uint `toml:"speed"`
		Check  uint `toml:"check"`
		Forget uint `toml:"forget"`
	} `toml:"game"`
	Web struct {
		Enabled bool `toml:"enabled"`
		Port    uint `toml:"port"`
	} `toml:"web"`
	Bots struct {
		Count uint `toml:"count"`
		Room  uint `toml:"room"`
	} `toml:"bots"`
}

func wire(c *Conf) conf {
	var data conf

	data.Proto.Addr = c.TCPAddr
	data.Proto.Port = uint(c.TCPPort)
	data.Proto.Timeout = uint(c.ConnTimeout / time.Millisecond)
	data.Proto.Ping = uint(c.PingInterval / time.Millisecond)
	data.Game.Speed = uint(c.GameSpeed / time.Millisecond)
	data.Game.Check = uint(c.CheckInterval / time.Millisecond)
	data.Game.Forget = uint(c.PlayerTimeout / time.Millisecond)
	data.Web.Enabled = c.WebSocket
	data.Web.Port = uint(c.WebPort)
	data.Bots.Count = c.Bots
	data.Bots.Room = c.BotRoom

	return data
}

// Parse a configuration from R
func load(r io.Reader) (*Conf, error) {
	// Missing keys keep their default value
	data := wire(&defaultConfig)
	if _, err := toml.NewDecoder(r).Decode(&data); err != nil {
		return nil, err
	}

	c := defaultConfig
	c.TCPAddr = data.Proto.Addr
	c.TCPPort = uint16(data.Proto.Port)
	c.ConnTimeout = time.Duration(data.Proto.Timeout) * time.Millisecond
	c.PingInterval = time.Duration(data.Proto.Ping) * time.Millisecond
	c.GameSpeed = time.Duration(data.Game.Speed) * time.Millisecond
	c.CheckInterval = time.Duration(data.Game.Check) * time.Millisecond
	c.PlayerTimeout = time.Duration(data.Game.Forget) * time.Millisecond
	c.WebSocket = data.Web.Enabled
	c.WebPort = uint16(data.Web.Port)
	c.Bots = data.Bots.Count
	c.BotRoom = data.Bots.Room

	return &c, nil
}

// Open a configuration file and return it
func Open(name string) (*Conf, error) {
	file, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return load(file)
}

// Serialise the configuration into a writer
func (c *Conf) Dump(wr io.Writer) error {
	data := wire(c)
	return toml.NewEncoder(wr).Encode(data)
}
