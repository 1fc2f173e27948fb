package main

import (
	"encoding/json"
	"log"

	"github.com/gorilla/websocket"
	"github.com/hailam/chessboard/internal/board"
	"github.com/hailam/chessboard/internal/host"
	"github.com/hailam/chessboard/internal/input"
	"github.com/hailam/chessboard/internal/source"
	"github.com/hailam/chessboard/internal/svgview"
)

// inbound is a message from the page.
type inbound struct {
	Type string `json:"type"` // "down", "up", "flip" or "reset"
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

// outbound is a message to the page.
type outbound struct {
	Type    string `json:"type"` // "board" or "toast"
	SVG     string `json:"svg,omitempty"`
	Message string `json:"message,omitempty"`
}

// Client owns the board of one connection. All of its state is touched only
// by the goroutine running run, after newClient returns.
type Client struct {
	conn    *websocket.Conn
	session *host.Session
	pointer *input.Dispatcher
}

func newClient(app *Application, conn *websocket.Conn, id string) (*Client, error) {
	c := &Client{conn: conn}
	window := input.NewWindow()
	c.pointer = input.NewDispatcher(window)

	store := app.options.Store
	fen, orientation := host.Restore(store, id, app.options.FEN, app.options.Orientation)
	src, err := source.NewFast(fen)
	if err != nil {
		log.Printf("[WS] Warning: Failed to load position %q: %v", fen, err)
		if src, err = source.NewFast(board.StartFEN); err != nil {
			return nil, err
		}
	}

	c.session, err = host.Start(host.Config{
		ID:          id,
		Source:      src,
		Orientation: orientation,
		Renderer:    svgview.NewRenderer(c.push),
		Window:      window,
		Skin:        app.skin,
		Store:       store,
		Notify:      c,
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

// run reads pointer events until the connection fails, then tears the
// board down.
func (c *Client) run() {
	defer func() {
		c.session.Close()
		c.conn.Close()
		log.Printf("[WS] Closed connection from %s", c.conn.RemoteAddr())
	}()

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[WS] Error reading message: %v", err)
			}
			return
		}
		var msg inbound
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Printf("[WS] Error parsing message: %v", err)
			continue
		}
		c.handle(msg)
	}
}

func (c *Client) handle(msg inbound) {
	view := c.session.Board().View()
	switch msg.Type {
	case "down":
		c.pointer.Press(view, msg.X, msg.Y)
	case "up":
		c.pointer.Release(view, msg.X, msg.Y)
	case "flip":
		if err := c.session.Flip(); err != nil {
			log.Printf("[WS] Warning: Failed to flip board: %v", err)
		}
	case "reset":
		if err := c.session.Reset(); err != nil {
			log.Printf("[WS] Warning: Failed to reset board: %v", err)
		}
	default:
		log.Printf("[WS] Ignoring message of type %q", msg.Type)
	}
}

// push sends every committed board to the page.
func (c *Client) push(v *svgview.View) {
	c.send(outbound{Type: "board", SVG: string(v.SVG())})
}

func (c *Client) send(msg outbound) {
	if err := c.conn.WriteJSON(msg); err != nil {
		log.Printf("[WS] Error writing message: %v", err)
	}
}

// Moved does nothing: the move already reached the page with the pushed board.
func (c *Client) Moved(from, to board.Square) {}

// Rejected shows reason as a toast.
func (c *Client) Rejected(sq board.Square, reason string) {
	c.send(outbound{Type: "toast", Message: reason})
}

// GameOver shows the result as a toast.
func (c *Client) GameOver(result string) {
	c.send(outbound{Type: "toast", Message: "Game over " + result})
}
