// Configuration Specification
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
	"log"
	"time"
)

// Public configuration
type Conf struct {
	Log   *log.Logger
	Debug *log.Logger

	// Transport Configuration
	TCPAddr string // Address the listener binds to
	TCPPort uint16 // Port for accepting connections

	// Liveness Configuration
	ConnTimeout   time.Duration // Close connections idle for longer
	PlayerTimeout time.Duration // Forget players idle for longer
	PingInterval  time.Duration // Wall time between PING broadcasts
	CheckInterval time.Duration // Heartbeat scan period

	// Game Configuration
	GameSpeed time.Duration // Simulation tick period

	// Websocket Configuration
	WebSocket bool   // Are Websocket connections enabled
	WebPort   uint16 // Port that the HTTP listener uses

	// Bot Configuration
	Bots    uint // Number of bot players the server dials in
	BotRoom uint // Room the bots join
}

// Configuration object used by default
var defaultConfig = Conf{
	Log:   log.Default(),
	Debug: log.New(io.Discard, "", 0),

	TCPAddr: "127.0.0.1",
	TCPPort: 8888,

	ConnTimeout:   10 * time.Second,
	PlayerTimeout: 60 * time.Second,
	PingInterval:  2 * time.Second,
	CheckInterval: time.Second,

	GameSpeed: time.Second,

	WebSocket: false,
	WebPort:   8080,
}

// Return a copy of the default configuration
func Default() *Conf {
	conf := defaultConfig
	return &conf
}
