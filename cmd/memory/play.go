package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pterm/pterm"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/wricardo/memory-game/game/config"
	"github.com/wricardo/memory-game/game/engine"
	"github.com/wricardo/memory-game/game/service"
	"github.com/wricardo/memory-game/game/session"
)

var errQuit = errors.New("quit")

func playCommand(settings config.Settings) *cli.Command {
	return &cli.Command{
		Name:  "play",
		Usage: "play a game, reading \"x1 y1 x2 y2\" attempts from stdin",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Value: settings.DefaultConfig,
				Usage: "board preset to play",
			},
			&cli.StringSliceFlag{
				Name:  "player",
				Usage: "player name in turn order (repeatable)",
			},
			&cli.IntFlag{
				Name:  "players",
				Value: 1,
				Usage: "number of generated players when no --player is given",
			},
			&cli.IntFlag{
				Name:  "seed",
				Value: settings.Seed,
				Usage: "seed for a reproducible layout (0 picks a random one)",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			a, err := newApp(cmd, cmd.String("config"))
			if err != nil {
				return err
			}
			defer a.logger.Sync()

			info, err := a.games.CreateSession(ctx, service.CreateSessionRequest{
				ConfigName:  cmd.String("config"),
				Players:     cmd.StringSlice("player"),
				PlayerCount: int(cmd.Int("players")),
				Seed:        cmd.Int("seed"),
			})
			if err != nil {
				return err
			}

			in := cmd.Root().Reader
			if in == nil {
				in = os.Stdin
			}
			p := &player{
				games:    a.games,
				sessions: a.sessions,
				ttl:      settings.SessionTTL,
				logger:   a.logger,
				out:      writerOf(cmd),
			}
			return p.run(ctx, info, in)
		},
	}
}

// player runs the interactive loop of one session
type player struct {
	games    service.GameService
	sessions *session.Manager
	ttl      time.Duration
	logger   *zap.Logger
	out      io.Writer
}

func (p *player) run(ctx context.Context, info *service.SessionInfo, in io.Reader) error {
	p.printBoard(info)
	p.printPrompt(info)

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		if p.ttl > 0 {
			// the session being played is never idle
			p.sessions.UpdateLastAccessed(info.ID)
			p.sessions.CleanupExpiredSessions(p.ttl)
		}

		next, err := p.handle(ctx, info.ID, strings.TrimSpace(scanner.Text()))
		if errors.Is(err, errQuit) {
			return nil
		}
		if errors.Is(err, session.ErrSessionNotFound) {
			return fmt.Errorf("session %s expired: %w", info.ID, err)
		}
		if err != nil {
			fmt.Fprintln(p.out, pterm.Error.Sprint(err))
		}
		if next != nil {
			info = next
		}
		p.printPrompt(info)
	}
	return scanner.Err()
}

// handle executes one input line and returns the refreshed session, if any
func (p *player) handle(ctx context.Context, sessionID, line string) (*service.SessionInfo, error) {
	switch strings.ToLower(line) {
	case "":
		return nil, nil
	case "q", "quit", "exit":
		return nil, errQuit
	case "h", "help":
		p.printHelp()
		return nil, nil
	case "r", "restart":
		info, err := p.games.Restart(ctx, sessionID)
		if err != nil {
			return nil, err
		}
		p.printBoard(info)
		return info, nil
	case "history":
		history, err := p.games.GetHistory(ctx, sessionID)
		if err != nil {
			return nil, err
		}
		p.printHistory(history)
		return nil, nil
	}

	first, second, err := parseMove(line)
	if err != nil {
		return nil, err
	}

	outcome, err := p.games.AttemptMatch(ctx, sessionID, first, second)
	if err != nil {
		return nil, err
	}

	for _, event := range outcome.Events {
		switch event.Type {
		case service.EventMatch:
			fmt.Fprintln(p.out, pterm.Success.Sprint(event.Message))
		case service.EventGameOver:
			fmt.Fprintln(p.out, pterm.LightGreen(event.Message))
		default:
			fmt.Fprintln(p.out, pterm.Info.Sprint(event.Message))
		}
	}
	p.printBoard(outcome.Session)
	return outcome.Session, nil
}

// parseMove reads "x1 y1 x2 y2"; commas are accepted as separators
func parseMove(line string) (engine.Position, engine.Position, error) {
	fields := strings.Fields(strings.ReplaceAll(line, ",", " "))
	if len(fields) != 4 {
		return engine.Position{}, engine.Position{}, fmt.Errorf("expected \"x1 y1 x2 y2\", got %q", line)
	}

	var coords [4]int
	for i, field := range fields {
		n, err := strconv.Atoi(field)
		if err != nil {
			return engine.Position{}, engine.Position{}, fmt.Errorf("coordinate %q is not a number", field)
		}
		coords[i] = n
	}

	return engine.Position{X: coords[0], Y: coords[1]}, engine.Position{X: coords[2], Y: coords[3]}, nil
}

// renderBoard draws matched cards by type and hides the rest
func renderBoard(info *service.SessionInfo) (string, error) {
	header := []string{"y\\x"}
	for x := 0; x < info.Columns; x++ {
		header = append(header, strconv.Itoa(x))
	}

	data := pterm.TableData{header}
	for y, row := range info.Board {
		line := []string{strconv.Itoa(y)}
		for _, card := range row {
			if card.Matched {
				line = append(line, pterm.Green(strconv.Itoa(card.TypeID)))
			} else {
				line = append(line, "?")
			}
		}
		data = append(data, line)
	}

	return pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(data).Srender()
}

// renderScores lists players in turn order, marking the current player and winners
func renderScores(info *service.SessionInfo) (string, error) {
	data := pterm.TableData{{"#", "Player", "Score", ""}}
	for _, p := range info.Players {
		marker := ""
		switch {
		case p.Winner:
			marker = "winner"
		case p.Current && info.Status == engine.StatusRunning:
			marker = "to play"
		}
		data = append(data, []string{strconv.Itoa(p.Index + 1), p.Identifier, strconv.Itoa(p.Score), marker})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
}

func (p *player) printBoard(info *service.SessionInfo) {
	board, err := renderBoard(info)
	if err != nil {
		p.logger.Error("failed to render board", zap.Error(err))
		return
	}
	scores, err := renderScores(info)
	if err != nil {
		p.logger.Error("failed to render scores", zap.Error(err))
		return
	}
	fmt.Fprintln(p.out, board)
	fmt.Fprintln(p.out, scores)
	fmt.Fprintf(p.out, "%d pair(s) left\n", info.RemainingPairs)
}

func (p *player) printPrompt(info *service.SessionInfo) {
	if info.Status == engine.StatusEnded {
		fmt.Fprintln(p.out, "Type \"restart\" for a new deal or \"quit\" to leave.")
		return
	}
	if info.CurrentPlayer < len(info.Players) {
		fmt.Fprintf(p.out, "%s> ", info.Players[info.CurrentPlayer].Identifier)
	}
}

func (p *player) printHistory(history []engine.MatchRecord) {
	if len(history) == 0 {
		fmt.Fprintln(p.out, "No attempts yet.")
		return
	}
	data := pterm.TableData{{"#", "Player", "First", "Second", "Result"}}
	for _, r := range history {
		data = append(data, []string{
			strconv.Itoa(r.Attempt),
			strconv.Itoa(r.PlayerIndex + 1),
			fmt.Sprintf("(%d,%d)=%d", r.First.X, r.First.Y, r.FirstType),
			fmt.Sprintf("(%d,%d)=%d", r.Second.X, r.Second.Y, r.SecondType),
			r.Result.String(),
		})
	}
	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		p.logger.Error("failed to render history", zap.Error(err))
		return
	}
	fmt.Fprintln(p.out, table)
}

func (p *player) printHelp() {
	fmt.Fprintln(p.out, `Commands:
  x1 y1 x2 y2   turn over two cards (x is the column, y the row)
  history       list the attempts of this game
  restart       deal a new board for the same players
  quit          leave the game`)
}
