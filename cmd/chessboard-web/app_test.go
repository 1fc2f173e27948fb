package main

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/hailam/chessboard/internal/board"
	"github.com/hailam/chessboard/internal/storage"
	"github.com/hailam/chessboard/internal/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T, opts Options) (*Application, *httptest.Server) {
	t.Helper()
	app, err := NewApplication(opts)
	require.NoError(t, err)
	srv := httptest.NewServer(app)
	t.Cleanup(srv.Close)
	return app, srv
}

func get(t *testing.T, url string) (*http.Response, string) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func dial(t *testing.T, srv *httptest.Server, query string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws" + query
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func read(t *testing.T, conn *websocket.Conn) outbound {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var msg outbound
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func center(sq board.Square, o board.Orientation) (int, int) {
	r, c := board.CoordOf(sq, o)
	return c*view.SquareSize + view.SquareSize/2, r*view.SquareSize + view.SquareSize/2
}

func drag(t *testing.T, conn *websocket.Conn, from, to board.Square, o board.Orientation) {
	t.Helper()
	x, y := center(from, o)
	require.NoError(t, conn.WriteJSON(inbound{Type: "down", X: x, Y: y}))
	x, y = center(to, o)
	require.NoError(t, conn.WriteJSON(inbound{Type: "up", X: x, Y: y}))
}

// squareGroup returns the SVG group of the square with the given id.
func squareGroup(doc, id string) string {
	start := strings.Index(doc, `id="`+id+`"`)
	if start < 0 {
		return ""
	}
	end := strings.Index(doc[start:], "</g>")
	if end < 0 {
		return doc[start:]
	}
	return doc[start : start+end]
}

func TestIndex(t *testing.T) {
	_, srv := newServer(t, Options{})

	resp, body := get(t, srv.URL+"/?board=analysis")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "<title>Chessboard</title>")
	assert.Contains(t, body, `data-board="analysis"`)
	assert.Contains(t, body, `data-size="512"`)

	resp, body = get(t, srv.URL+"/static/board.js")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "WebSocket")

	resp, _ = get(t, srv.URL+"/missing")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestBoardSVG(t *testing.T) {
	_, srv := newServer(t, Options{})

	resp, body := get(t, srv.URL+"/board.svg?orientation=black")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/svg+xml", resp.Header.Get("Content-Type"))
	assert.Less(t, strings.Index(body, `id="h1"`), strings.Index(body, `id="a8"`))
	assert.Contains(t, squareGroup(body, "e1"), "<image")

	resp, _ = get(t, srv.URL+"/board.svg?fen=rnbqkbnr/ppp9")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = get(t, srv.URL+"/board.svg?orientation=up")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestWebsocketDrag(t *testing.T) {
	app, srv := newServer(t, Options{})
	conn := dial(t, srv, "")

	first := read(t, conn)
	require.Equal(t, "board", first.Type)
	assert.Contains(t, squareGroup(first.SVG, "e2"), "<image")
	assert.NotContains(t, squareGroup(first.SVG, "e4"), "<image")
	require.Eventually(t, func() bool { return app.ClientCount() == 1 }, 5*time.Second, 10*time.Millisecond)

	drag(t, conn, board.E2, board.E4, board.WhiteSide)
	moved := read(t, conn)
	require.Equal(t, "board", moved.Type)
	assert.NotContains(t, squareGroup(moved.SVG, "e2"), "<image")
	assert.Contains(t, squareGroup(moved.SVG, "e4"), "<image")

	// White cannot move twice.
	drag(t, conn, board.D2, board.D4, board.WhiteSide)
	toast := read(t, conn)
	assert.Equal(t, outbound{Type: "toast", Message: "Not your turn"}, toast)

	require.NoError(t, conn.WriteJSON(inbound{Type: "flip"}))
	flipped := read(t, conn)
	require.Equal(t, "board", flipped.Type)
	assert.Less(t, strings.Index(flipped.SVG, `id="h1"`), strings.Index(flipped.SVG, `id="a8"`))

	drag(t, conn, board.E7, board.E6, board.BlackSide)
	assert.Contains(t, squareGroup(read(t, conn).SVG, "e6"), "<image")

	conn.Close()
	require.Eventually(t, func() bool { return app.ClientCount() == 0 }, 5*time.Second, 10*time.Millisecond)
}

func TestWebsocketPersistsBoards(t *testing.T) {
	store, err := storage.OpenInMemory()
	require.NoError(t, err)
	defer store.Close()
	app, srv := newServer(t, Options{Store: store})

	conn := dial(t, srv, "?board=saved")
	read(t, conn)
	drag(t, conn, board.G1, board.F3, board.WhiteSide)
	read(t, conn)
	conn.Close()
	require.Eventually(t, func() bool { return app.ClientCount() == 0 }, 5*time.Second, 10*time.Millisecond)

	conn = dial(t, srv, "?board=saved")
	restored := read(t, conn)
	assert.Contains(t, squareGroup(restored.SVG, "f3"), "<image")
	assert.NotContains(t, squareGroup(restored.SVG, "g1"), "<image")

	other := dial(t, srv, "?board=fresh")
	assert.Contains(t, squareGroup(read(t, other).SVG, "g1"), "<image")
}

func boards(t *testing.T, srv *httptest.Server) []string {
	t.Helper()
	resp, body := get(t, srv.URL+"/boards")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var ids []string
	require.NoError(t, json.Unmarshal([]byte(body), &ids))
	return ids
}

func forget(t *testing.T, srv *httptest.Server, id string) int {
	t.Helper()
	req, err := http.NewRequest(http.MethodDelete, srv.URL+"/boards/"+id, nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	return resp.StatusCode
}

func TestForgetBoard(t *testing.T) {
	store, err := storage.OpenInMemory()
	require.NoError(t, err)
	defer store.Close()
	app, srv := newServer(t, Options{Store: store})
	assert.Empty(t, boards(t, srv))

	conn := dial(t, srv, "?board=saved")
	read(t, conn)
	drag(t, conn, board.E2, board.E4, board.WhiteSide)
	read(t, conn)
	conn.Close()
	require.Eventually(t, func() bool { return app.ClientCount() == 0 }, 5*time.Second, 10*time.Millisecond)
	assert.Equal(t, []string{"saved"}, boards(t, srv))

	assert.Equal(t, http.StatusNoContent, forget(t, srv, "saved"))
	assert.Empty(t, boards(t, srv))

	conn = dial(t, srv, "?board=saved")
	restored := read(t, conn)
	assert.Contains(t, squareGroup(restored.SVG, "e2"), "<image")
	assert.NotContains(t, squareGroup(restored.SVG, "e4"), "<image")
}

func TestBoardsWithoutStore(t *testing.T) {
	_, srv := newServer(t, Options{})
	assert.Empty(t, boards(t, srv))
	assert.Equal(t, http.StatusNotFound, forget(t, srv, "web"))
}

func TestBarePlacementFEN(t *testing.T) {
	_, srv := newServer(t, Options{FEN: "k7/8/8/8/8/8/8/K7"})
	conn := dial(t, srv, "")
	first := read(t, conn)
	require.Equal(t, "board", first.Type)
	assert.Contains(t, squareGroup(first.SVG, "a1"), "<image")
	assert.NotContains(t, squareGroup(first.SVG, "e1"), "<image")

	drag(t, conn, board.A1, board.B2, board.WhiteSide)
	assert.Contains(t, squareGroup(read(t, conn).SVG, "b2"), "<image")
}
