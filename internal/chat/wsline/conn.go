// Package wsline exposes WebSocket connection as a line-oriented byte stream,
// so the chat protocol can run over it unchanged.
//
// Every inbound text message is read as one line terminated with "\n",
// binary messages are skipped. Every Write goes out as one text message
// without the trailing "\n".
package wsline

import (
	"bytes"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
)

const closeWait = time.Second

// Conn - line stream over *websocket.Conn.
// One goroutine may read while others write; writes must be serialized by the caller.
type Conn struct {
	ws      *websocket.Conn
	current io.Reader
}

// New - wraps WebSocket connection.
func New(ws *websocket.Conn) *Conn {
	return &Conn{ws: ws}
}

func (c *Conn) Read(p []byte) (int, error) {
	for {
		if c.current == nil {
			kind, r, err := c.ws.NextReader()
			if err != nil {
				if websocket.IsCloseError(
					err,
					websocket.CloseNormalClosure,
					websocket.CloseGoingAway,
					websocket.CloseNoStatusReceived,
				) {
					return 0, io.EOF
				}
				return 0, err
			}
			if kind != websocket.TextMessage {
				continue
			}
			c.current = io.MultiReader(r, strings.NewReader("\n"))
		}
		n, err := c.current.Read(p)
		if err == io.EOF {
			c.current = nil
			if n == 0 {
				continue
			}
			err = nil
		}
		return n, err
	}
}

func (c *Conn) Write(p []byte) (int, error) {
	if err := c.ws.WriteMessage(websocket.TextMessage, bytes.TrimSuffix(p, []byte("\n"))); err != nil {
		return 0, err
	}
	return len(p), nil
}

// Close - sends close frame (best effort) and closes underlying network connection.
func (c *Conn) Close() error {
	c.ws.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(closeWait),
	)
	return c.ws.Close()
}

// RemoteAddr - returns remote network address.
func (c *Conn) RemoteAddr() net.Addr {
	return c.ws.RemoteAddr()
}

// SetWriteDeadline - sets deadline for the next Write.
func (c *Conn) SetWriteDeadline(t time.Time) error {
	return c.ws.SetWriteDeadline(t)
}

// Handler - upgrades HTTP requests to WebSocket and passes the connections to accept.
// If accept returns an error the connection is closed.
type Handler struct {
	upgrader websocket.Upgrader
	accept   func(*Conn) error
}

// NewHandler - builds Handler.
func NewHandler(accept func(*Conn) error) *Handler {
	return &Handler{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
		},
		accept: accept,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has replied with HTTP error already
		return
	}
	c := New(ws)
	if h.accept == nil {
		c.Close()
		return
	}
	if err := h.accept(c); err != nil {
		c.Close()
	}
}
