package stream

import (
	"net/http"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The stream is a broadcast of booking lifecycle events, not a command
	// channel, so cross-origin subscribers are allowed.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Upgrade switches an HTTP request to a websocket connection.
func Upgrade(w http.ResponseWriter, r *http.Request) (*websocket.Conn, error) {
	return upgrader.Upgrade(w, r, nil)
}
