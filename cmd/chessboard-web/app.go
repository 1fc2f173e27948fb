package main

import (
	"bytes"
	"embed"
	"encoding/json"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"os"
	"sync"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/hailam/chessboard/internal/assets"
	"github.com/hailam/chessboard/internal/board"
	"github.com/hailam/chessboard/internal/input"
	"github.com/hailam/chessboard/internal/storage"
	"github.com/hailam/chessboard/internal/svgview"
	"github.com/hailam/chessboard/internal/view"
	"github.com/hailam/chessboard/internal/widget"
)

//go:embed web
var webFiles embed.FS
var static fs.FS
var templates fs.FS

func init() {
	static, _ = fs.Sub(webFiles, "web/static")
	templates, _ = fs.Sub(webFiles, "web/templates")
}

func stdoutLogger(next http.Handler) http.Handler {
	return handlers.LoggingHandler(os.Stdout, next)
}

// Options configures the application.
type Options struct {
	FEN         string // start position of new boards; empty for the standard one
	Orientation string
	Store       *storage.Storage // optional; boards persist by id when set
}

// Application serves the board page and one board per websocket connection.
type Application struct {
	router      *mux.Router
	templates   *template.Template
	skin        view.Skin
	options     Options
	clients     map[*Client]struct{}
	clientsLock sync.RWMutex
	upgrader    websocket.Upgrader
}

// NewApplication builds the router.
func NewApplication(opts Options) (*Application, error) {
	pieces, err := assets.Default(0)
	if err != nil {
		return nil, err
	}
	templateParser := template.New("")
	templateParser.Delims("[[", "]]")
	tmpl, err := templateParser.ParseFS(templates, "*.html.gotmpl")
	if err != nil {
		return nil, err
	}

	app := &Application{
		router:    mux.NewRouter(),
		templates: tmpl,
		skin:      view.Skin{Theme: view.DefaultTheme(), Assets: pieces},
		options:   opts,
		clients:   make(map[*Client]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
	app.router.NotFoundHandler = stdoutLogger(http.HandlerFunc(notFoundHandler))
	app.router.Use(stdoutLogger)

	app.router.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.FS(static))))
	app.router.HandleFunc("/", app.indexHandler).Methods(http.MethodGet)
	app.router.HandleFunc("/board.svg", app.svgHandler).Methods(http.MethodGet)
	app.router.HandleFunc("/boards", app.boardsHandler).Methods(http.MethodGet)
	app.router.HandleFunc("/boards/{id}", app.forgetHandler).Methods(http.MethodDelete)
	app.router.HandleFunc("/ws", app.wsHandler)
	return app, nil
}

func (app *Application) indexHandler(w http.ResponseWriter, r *http.Request) {
	templateVars := struct {
		Title string
		Board string
		Size  int
	}{
		Title: "Chessboard",
		Board: boardID(r),
		Size:  view.BoardMaxSize,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := app.templates.ExecuteTemplate(w, "index.html.gotmpl", templateVars); err != nil {
		log.Printf("[WEB] Error rendering template: %v", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// svgHandler renders a static board for ?fen= and ?orientation=.
func (app *Application) svgHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	fen := q.Get("fen")
	if fen == "" {
		fen = board.StartFEN
	}
	o, err := board.ParseOrientation(q.Get("orientation"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var doc bytes.Buffer
	renderer := svgview.NewRenderer(nil)
	b, err := widget.Create(widget.MountContainer(&view.Container{ID: "board"}), widget.Config{
		Position:    fen,
		Orientation: o,
		Renderer:    renderer,
		Window:      input.NewWindow(),
		Skin:        app.skin,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	defer b.Teardown()
	if _, err := b.View().(*svgview.View).WriteTo(&doc); err != nil {
		log.Printf("[WEB] Error rendering board: %v", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	if _, err := w.Write(doc.Bytes()); err != nil {
		log.Printf("[WEB] Error writing board: %v", err)
	}
}

// boardsHandler lists the ids of saved boards.
func (app *Application) boardsHandler(w http.ResponseWriter, r *http.Request) {
	ids := []string{}
	if app.options.Store != nil {
		saved, err := app.options.Store.Boards()
		if err != nil {
			log.Printf("[STORE] Error listing boards: %v", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		ids = append(ids, saved...)
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(ids); err != nil {
		log.Printf("[WEB] Error writing boards: %v", err)
	}
}

// forgetHandler drops the saved state of a board. Open connections keep
// their board and save it again on the next change.
func (app *Application) forgetHandler(w http.ResponseWriter, r *http.Request) {
	if app.options.Store == nil {
		http.Error(w, "Boards are not persisted", http.StatusNotFound)
		return
	}
	id := mux.Vars(r)["id"]
	if err := app.options.Store.ForgetBoard(id); err != nil {
		log.Printf("[STORE] Error forgetting board %q: %v", id, err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	log.Printf("[STORE] Forgot board %q", id)
	w.WriteHeader(http.StatusNoContent)
}

func (app *Application) wsHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := app.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// The upgrader has already replied.
		log.Printf("[WS] Upgrade failed: %v", err)
		return
	}
	log.Printf("[WS] New connection from %s", conn.RemoteAddr())

	client, err := newClient(app, conn, boardID(r))
	if err != nil {
		log.Printf("[WS] Failed to start board: %v", err)
		conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseInternalServerErr, err.Error()))
		conn.Close()
		return
	}

	app.clientsLock.Lock()
	app.clients[client] = struct{}{}
	app.clientsLock.Unlock()

	go func() {
		client.run()
		app.clientsLock.Lock()
		delete(app.clients, client)
		app.clientsLock.Unlock()
	}()
}

// ClientCount returns the number of open connections.
func (app *Application) ClientCount() int {
	app.clientsLock.RLock()
	defer app.clientsLock.RUnlock()
	return len(app.clients)
}

func (app *Application) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	app.router.ServeHTTP(w, r)
}

func notFoundHandler(w http.ResponseWriter, r *http.Request) {
	http.Error(w, "File Not Found", http.StatusNotFound)
}

// boardID returns the ?board= parameter, defaulting to "web".
func boardID(r *http.Request) string {
	if id := r.URL.Query().Get("board"); id != "" {
		return id
	}
	return "web"
}
