// Entry point
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

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	snek "go-snek"
	"go-snek/bot"
	"go-snek/conf"
	"go-snek/server"
	"go-snek/web"
)

// Default file name for the configuration file
const defconf = "server.toml"

func main() {
	var (
		confFile = flag.String("conf", defconf, "Name of configuration file")
		dumpConf = flag.Bool("dump-config", false, "Dump effective configuration")
		debug    = flag.Bool("debug", false, "Enable debug logging")
		bots     = flag.Uint("bots", 0, "Number of bot players to dial in")
		botRoom  = flag.Uint("bot-room", 0, "Room the bots join")
		websock  = flag.Bool("websocket", false, "Accept websocket connections")
	)

	flag.Parse()
	if flag.NArg() > 2 {
		fmt.Fprintf(flag.CommandLine.Output(),
			"Too many arguments passed to %s.\nUsage: %s [port [address]]\n",
			os.Args[0], os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}

	// Load the configuration from disk (if available)
	config, err := conf.Open(*confFile)
	if err != nil {
		if !os.IsNotExist(err) || *confFile != defconf {
			log.Fatal(err)
		}
		config = conf.Default()
	}

	// Positional overrides: port, then bind address
	if flag.NArg() >= 1 {
		port, err := strconv.ParseUint(flag.Arg(0), 10, 16)
		if err != nil {
			log.Fatalf("Invalid port %q", flag.Arg(0))
		}
		config.TCPPort = uint16(port)
	}
	if flag.NArg() == 2 {
		config.TCPAddr = flag.Arg(1)
	}

	if *debug {
		config.Debug.SetOutput(os.Stderr)
		snek.Debug.SetOutput(os.Stderr)
		config.Debug.Println("Debug logging has been enabled")
	}
	if *websock {
		config.WebSocket = true
	}
	if *bots > 0 {
		config.Bots = *bots
		config.BotRoom = *botRoom
	}

	// Dump the configuration if requested
	if *dumpConf {
		if err := config.Dump(os.Stdout); err != nil {
			log.Fatalln("Failed to dump configuration:", err)
		}
		os.Exit(0)
	}

	srv := server.MakeServer(config)
	if err := srv.Listen(); err != nil {
		log.Fatal(err)
	}

	// Enable the websocket transport
	if config.WebSocket {
		go web.MakeWeb(config, srv).Start()
	}

	// Dial in the machine players
	for i := uint(0); i < config.Bots; i++ {
		go bot.MakeBot(config, fmt.Sprintf("bot%d", i+1), config.BotRoom).Start()
	}

	srv.Start()
}
