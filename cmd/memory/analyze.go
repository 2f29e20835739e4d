package main

import (
	"context"
	"fmt"
	"io"
	"math"

	"github.com/urfave/cli/v3"

	"github.com/wricardo/memory-game/game/config"
	"github.com/wricardo/memory-game/game/engine"
)

// AnalysisReport summarizes many simulated deals of one preset
type AnalysisReport struct {
	Config          engine.BoardConfig
	Trials          int
	MinTypesUsed    int
	MaxTypesUsed    int
	AvgTypesUsed    float64
	MaxLargestGroup int
	MinAttempts     int
	MaxAttempts     int
	AvgAttempts     float64
}

func analyzeCommand() *cli.Command {
	return &cli.Command{
		Name:  "analyze",
		Usage: "deal each preset many times and report layout and game-length statistics",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "trials",
				Value: 200,
				Usage: "number of boards dealt per preset",
			},
			&cli.IntFlag{
				Name:  "seed",
				Value: 1,
				Usage: "seed of the first trial; trial i uses seed+i",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			trials := int(cmd.Int("trials"))
			if trials <= 0 {
				return cli.Exit("--trials must be positive", 1)
			}

			configs, err := config.NewManager(cmd.String("config-dir"))
			if err != nil {
				return err
			}
			infos, err := configs.ListConfigs()
			if err != nil {
				return err
			}

			w := writerOf(cmd)
			for _, info := range infos {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				cfg, err := configs.LoadConfig(info.ConfigID)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "\n=== Analyzing %s ===\n", info.Filename)
				report, err := analyzeConfig(*cfg, trials, cmd.Int("seed"))
				if err != nil {
					fmt.Fprintf(w, "Error: %v\n", err)
					continue
				}
				printReport(w, report)
			}
			return nil
		},
	}
}

// analyzeConfig deals trials boards of cfg and plays each with a perfect-memory solitaire player
func analyzeConfig(cfg engine.BoardConfig, trials int, seed int64) (AnalysisReport, error) {
	report := AnalysisReport{
		Config:       cfg,
		Trials:       trials,
		MinTypesUsed: math.MaxInt,
		MinAttempts:  math.MaxInt,
	}

	totalTypes, totalAttempts := 0, 0
	for i := 0; i < trials; i++ {
		game := engine.NewGameSession(engine.WithSeed(seed + int64(i)))
		if err := game.StartWithConfig(cfg, 1); err != nil {
			return AnalysisReport{}, err
		}

		grid, err := game.Snapshot()
		if err != nil {
			return AnalysisReport{}, err
		}
		groups := make(map[int]int)
		for _, row := range grid {
			for _, card := range row {
				groups[card.TypeID()]++
			}
		}
		used := len(groups)
		totalTypes += used
		report.MinTypesUsed = min(report.MinTypesUsed, used)
		report.MaxTypesUsed = max(report.MaxTypesUsed, used)
		for _, n := range groups {
			report.MaxLargestGroup = max(report.MaxLargestGroup, n)
		}

		attempts, err := playPerfectMemory(game)
		if err != nil {
			return AnalysisReport{}, err
		}
		totalAttempts += attempts
		report.MinAttempts = min(report.MinAttempts, attempts)
		report.MaxAttempts = max(report.MaxAttempts, attempts)
	}

	report.AvgTypesUsed = float64(totalTypes) / float64(trials)
	report.AvgAttempts = float64(totalAttempts) / float64(trials)
	return report, nil
}

// playPerfectMemory clears a started game, remembering every card it has
// turned over, and returns the number of attempts it needed. Cards are only
// inspected once they are turned over, scanning unknown cards row by row.
func playPerfectMemory(game *engine.GameSession) (int, error) {
	columns, rows, err := game.Dimensions()
	if err != nil {
		return 0, err
	}

	known := make(map[engine.Position]int)
	reveal := func(p engine.Position) (int, error) {
		card, err := game.Card(p.X, p.Y)
		if err != nil {
			return 0, err
		}
		known[p] = card.TypeID()
		return card.TypeID(), nil
	}

	unknown := make([]engine.Position, 0, columns*rows)
	for y := 0; y < rows; y++ {
		for x := 0; x < columns; x++ {
			unknown = append(unknown, engine.Position{X: x, Y: y})
		}
	}
	nextUnknown := func() engine.Position {
		p := unknown[0]
		unknown = unknown[1:]
		return p
	}

	attempt := func(a, b engine.Position) error {
		result, err := game.AttemptMatchAt(a, b)
		if err != nil {
			return err
		}
		if result == engine.Match {
			delete(known, a)
			delete(known, b)
		}
		return nil
	}

	for !game.IsGameOver() {
		if a, b, ok := knownPair(known); ok {
			if err := attempt(a, b); err != nil {
				return 0, err
			}
			continue
		}

		first := nextUnknown()
		firstType, err := reveal(first)
		if err != nil {
			return 0, err
		}
		if partner, ok := knownOfType(known, firstType, first); ok {
			if err := attempt(first, partner); err != nil {
				return 0, err
			}
			continue
		}

		second := nextUnknown()
		if _, err := reveal(second); err != nil {
			return 0, err
		}
		if err := attempt(first, second); err != nil {
			return 0, err
		}
	}

	return len(game.History()), nil
}

func knownPair(known map[engine.Position]int) (engine.Position, engine.Position, bool) {
	seen := make(map[int]engine.Position)
	for p, typeID := range known {
		if other, ok := seen[typeID]; ok {
			return other, p, true
		}
		seen[typeID] = p
	}
	return engine.Position{}, engine.Position{}, false
}

func knownOfType(known map[engine.Position]int, typeID int, except engine.Position) (engine.Position, bool) {
	for p, t := range known {
		if t == typeID && p != except {
			return p, true
		}
	}
	return engine.Position{}, false
}

func printReport(w io.Writer, r AnalysisReport) {
	fmt.Fprintf(w, "Name: %s\n", r.Config.Name)
	fmt.Fprintf(w, "Board: %d x %d (%d pairs, %d card types)\n", r.Config.Columns, r.Config.Rows, r.Config.Pairs(), r.Config.CardTypeCount)
	fmt.Fprintf(w, "Trials: %d\n", r.Trials)
	fmt.Fprintf(w, "Types on board: min %d, avg %.2f, max %d\n", r.MinTypesUsed, r.AvgTypesUsed, r.MaxTypesUsed)
	fmt.Fprintf(w, "Largest group of one type: %d cards\n", r.MaxLargestGroup)
	fmt.Fprintf(w, "Perfect-memory attempts: min %d, avg %.2f, max %d\n", r.MinAttempts, r.AvgAttempts, r.MaxAttempts)

	if r.MinTypesUsed < r.Config.CardTypeCount {
		fmt.Fprintf(w, "⚠️  Some deals use only %d of %d card types\n", r.MinTypesUsed, r.Config.CardTypeCount)
	} else {
		fmt.Fprintln(w, "✅ Every deal used all card types")
	}
}
