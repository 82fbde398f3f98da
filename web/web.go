// Websocket Listener
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

package web

import (
	"fmt"
	"net/http"

	"go-snek/conf"
	"go-snek/server"
)

// Web serves the wire protocol to websocket clients.  Above the
// transport a websocket client is indistinguishable from a TCP one.
type Web struct {
	conf *conf.Conf
	srv  *http.Server
}

func (*Web) String() string {
	return "Websocket Handler"
}

func MakeWeb(config *conf.Conf, srv *server.Server) *Web {
	mux := http.NewServeMux()
	mux.HandleFunc("/socket", upgrader(config, srv))
	return &Web{
		conf: config,
		srv: &http.Server{
			Addr:    fmt.Sprintf(":%d", config.WebPort),
			Handler: mux,
		},
	}
}

func (w *Web) Start() {
	w.conf.Log.Printf("Accepting websocket connections on :%d", w.conf.WebPort)
	err := w.srv.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		w.conf.Log.Print(err)
	}
}

func (w *Web) Shutdown() {
	w.srv.Close()
}
