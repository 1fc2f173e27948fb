// Command chessboard-web serves interactive boards to browsers. Each
// websocket connection gets its own board; the page forwards pointer events
// and shows the SVG the server commits.
package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/hailam/chessboard/internal/storage"
)

const DefaultPort = 8080

func main() {
	var port uint
	flag.UintVar(&port, "port", DefaultPort, "Port to listen on")
	fen := flag.String("fen", "", "start position of new boards")
	orientation := flag.String("orientation", "", "side at the bottom: w, white, b or black")
	dbDir := flag.String("db", "", "database directory; boards are not saved when empty")
	flag.Parse()
	if port == 0 || port > 65535 {
		fmt.Println("Invalid port number")
		os.Exit(1)
	}

	opts := Options{FEN: *fen, Orientation: *orientation}
	if *dbDir != "" {
		store, err := storage.Open(*dbDir)
		if err != nil {
			log.Fatalf("Failed to open storage: %v", err)
		}
		defer store.Close()
		opts.Store = store
	}

	app, err := NewApplication(opts)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("Starting server on :%d", port)
	if err := http.ListenAndServe(fmt.Sprintf(":%d", port), app); err != nil {
		log.Printf("Error: %v", err)
	}
}
