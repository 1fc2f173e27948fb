// Chessboard - an interactive chess board built with Ebitengine
package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hailam/chessboard/internal/storage"
	"github.com/hailam/chessboard/internal/ui"
)

func main() {
	fen := flag.String("fen", "", "position to show (default: last saved, or the start position)")
	orientation := flag.String("orientation", "", "side at the bottom: w, white, b or black")
	boardID := flag.String("board", "main", "board id used to save preferences")
	dbDir := flag.String("db", "", "database directory (default: $"+storage.DataDirEnv+" or the platform data dir)")
	muted := flag.Bool("mute", false, "disable sounds")
	flag.Parse()

	store, err := storage.Open(*dbDir)
	if err != nil {
		log.Printf("Warning: Failed to open storage: %v", err)
	} else {
		defer store.Close()
	}

	game, err := ui.NewGame(ui.Options{
		BoardID:     *boardID,
		FEN:         *fen,
		Orientation: *orientation,
		Muted:       *muted,
		Storage:     store,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	ebiten.SetWindowSize(ui.ScreenWidth, ui.ScreenHeight)
	ebiten.SetWindowTitle("Chessboard")

	if err := ebiten.RunGame(game); err != nil {
		log.Printf("Error: %v", err)
	}
}
