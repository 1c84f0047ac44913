// Package telemetryfanout republishes a job's shared-memory telemetry
// segment onto WebSocket clients. The HTTP route that mounts Upgrade,
// its CORS policy, and the request/response schema around it are named
// out of scope (spec.md §1) — this package owns only the upgrade and
// broadcast primitive, not the server around it.
package telemetryfanout

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const (
	writeWait  = 10 * time.Second
	pingPeriod = 30 * time.Second
)

// Upgrader is shared across jobs. CheckOrigin is left permissive because
// origin policy belongs to the HTTP layer this package doesn't own.
var Upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Upgrade promotes w/r to a WebSocket connection and registers it with
// hub. The caller owns the route, auth, and CORS decision that led here;
// this only performs the protocol handshake and subscribes the result.
func Upgrade(hub *Hub, w http.ResponseWriter, r *http.Request) (*Client, error) {
	conn, err := Upgrader.Upgrade(w, r, nil)
	if err != nil {
		return nil, err
	}
	return hub.Register(conn), nil
}

// Client is one subscriber's socket and outbound queue.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// Hub fans a single job's broadcasts out to every subscribed Client.
type Hub struct {
	mu      sync.Mutex
	clients map[*Client]bool
}

// NewHub returns an empty hub for one job's telemetry stream.
func NewHub() *Hub {
	return &Hub{clients: make(map[*Client]bool)}
}

// Register adds conn as a subscriber and starts its write pump. The
// returned Client's send channel is closed, and the socket closed, when
// the write pump exits.
func (h *Hub) Register(conn *websocket.Conn) *Client {
	c := &Client{hub: h, conn: conn, send: make(chan []byte, 16)}
	h.mu.Lock()
	h.clients[c] = true
	h.mu.Unlock()
	go c.writePump()
	return c
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

// Broadcast enqueues msg for every currently-registered client. A client
// whose queue is full drops the message rather than blocking the
// broadcaster — telemetry is a stream of snapshots, not a log a client
// must receive every frame of.
func (h *Hub) Broadcast(msg []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- msg:
		default:
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.hub.unregister(c)
		_ = c.conn.Close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			if !ok {
				return
			}
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				log.Debug().Err(err).Msg("telemetryfanout: write failed, dropping client")
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
