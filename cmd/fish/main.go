// Command fish runs one match of the board game Fish between reference
// in-process agents, printing the board and match log to the terminal.
// It exercises the referee package end to end; no network transport,
// persistence, or GUI is provided (see DESIGN.md).
package main

import (
	"flag"
	"fmt"

	"github.com/gomlx/exceptions"
	"github.com/janpfeifer/fish/internal/config"
	"github.com/janpfeifer/fish/internal/observer"
	"github.com/janpfeifer/fish/internal/player"
	"github.com/janpfeifer/fish/internal/referee"
	"github.com/janpfeifer/fish/internal/strategy"
	"github.com/janpfeifer/must"
	"k8s.io/klog/v2"
)

var (
	flagPlayers  = flag.Int("players", 2, "Number of seats, 2-4.")
	flagHeight   = flag.Int("height", 5, "Board height.")
	flagWidth    = flag.Int("width", 5, "Board width.")
	flagFish     = flag.Int("fish", 2, "Uniform fish count per tile.")
	flagDepth    = flag.Int("depth", 3, "Minimax search depth for every agent.")
	flagParallel = flag.Bool("parallel", true, "Evaluate each agent's top-level minimax siblings concurrently.")
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()

	if *flagPlayers < 2 || *flagPlayers > 4 {
		exceptions.Panicf("--players=%d must be between 2 and 4", *flagPlayers)
	}
	if *flagFish <= 0 {
		exceptions.Panicf("--fish=%d must be positive", *flagFish)
	}

	players := make([]player.Player, *flagPlayers)
	for i := range players {
		actor := strategy.NewMinimaxActor(*flagDepth, strategy.Parallel(*flagParallel))
		players[i] = player.NewStrategic(strategy.NewScanningPlacer(), actor)
	}

	boardConfig := config.BoardConfig{
		Height:      *flagHeight,
		Width:       *flagWidth,
		UniformFish: uint8(*flagFish),
	}

	r := referee.New()
	r.RegisterObserver(observer.NewCLI())

	result := must.M1(r.RunMatch(players, boardConfig))

	fmt.Println()
	fmt.Printf("Winners:    %v\n", result.Winners)
	fmt.Printf("Non-winners: %v\n", result.NonWinners)
	if len(result.Failed) > 0 {
		fmt.Printf("Failed:     %v\n", result.Failed)
	}
	if len(result.Cheaters) > 0 {
		fmt.Printf("Cheaters:   %v\n", result.Cheaters)
	}
}
