package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pterm/pterm"
	"github.com/urfave/cli/v3"

	"github.com/wricardo/memory-game/game/config"
	"github.com/wricardo/memory-game/game/engine"
)

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Messages holds informational lines; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File     string
	Valid    bool
	Messages []string
}

func configsCommand() *cli.Command {
	return &cli.Command{
		Name:  "configs",
		Usage: "list the board presets in the config directory",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			configs, err := config.NewManager(cmd.String("config-dir"))
			if err != nil {
				return err
			}
			infos, err := configs.ListConfigs()
			if err != nil {
				return err
			}

			data := pterm.TableData{{"ID", "Name", "Board", "Pairs", "Types", "Description"}}
			for _, info := range infos {
				data = append(data, []string{
					info.ConfigID,
					info.Name,
					fmt.Sprintf("%dx%d", info.Columns, info.Rows),
					strconv.Itoa(info.Pairs),
					strconv.Itoa(info.CardTypeCount),
					info.Description,
				})
			}
			table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
			if err != nil {
				return err
			}
			fmt.Fprintln(writerOf(cmd), table)
			fmt.Fprintf(writerOf(cmd), "Default: %s\n", configs.GetDefault().Name)
			return nil
		},
	}
}

func validateCommand() *cli.Command {
	return &cli.Command{
		Name:      "validate",
		Usage:     "validate preset files (defaults to every *.json in the config directory)",
		ArgsUsage: "[files...]",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			files := cmd.Args().Slice()
			if len(files) == 0 {
				var err error
				files, err = filepath.Glob(filepath.Join(cmd.String("config-dir"), "*.json"))
				if err != nil {
					return fmt.Errorf("error finding config files: %w", err)
				}
			}
			if len(files) == 0 {
				return cli.Exit("no configuration files found", 1)
			}

			if !printValidation(writerOf(cmd), files) {
				return cli.Exit("some configurations have errors", 1)
			}
			return nil
		},
	}
}

// validateConfig loads and validates a single preset file
func validateConfig(filePath string) ValidationResult {
	result := ValidationResult{
		File:     filepath.Base(filePath),
		Valid:    true,
		Messages: []string{},
	}

	cfg, err := engine.LoadBoardConfig(filePath)
	if err != nil {
		result.Valid = false
		result.Messages = append(result.Messages, err.Error())
		return result
	}

	if name := strings.TrimSuffix(result.File, ".json"); cfg.Name != name {
		result.Messages = append(result.Messages, fmt.Sprintf("note: name %q differs from file ID %q", cfg.Name, name))
	}
	if cfg.CardTypeCount > cfg.Pairs() {
		result.Messages = append(result.Messages,
			fmt.Sprintf("note: %d card types for %d pairs, at most %d types can appear", cfg.CardTypeCount, cfg.Pairs(), cfg.Pairs()))
	}

	result.Messages = append(result.Messages, fmt.Sprintf("✓ Name: %s", cfg.Name))
	result.Messages = append(result.Messages, fmt.Sprintf("✓ Board: %dx%d", cfg.Columns, cfg.Rows))
	result.Messages = append(result.Messages, fmt.Sprintf("✓ Pairs: %d", cfg.Pairs()))
	result.Messages = append(result.Messages, fmt.Sprintf("✓ Card types: %d", cfg.CardTypeCount))

	return result
}

// printValidation validates every file, prints a report and reports whether all were valid
func printValidation(w io.Writer, files []string) bool {
	allValid := true
	for _, file := range files {
		result := validateConfig(file)

		fmt.Fprintf(w, "\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Fprintln(w, "✅ VALID")
			for _, info := range result.Messages {
				fmt.Fprintln(w, "  "+info)
			}
		} else {
			fmt.Fprintln(w, "❌ INVALID")
			allValid = false
			for _, err := range result.Messages {
				fmt.Fprintln(w, "  ❌ "+err)
			}
		}
	}

	fmt.Fprintf(w, "\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Fprintln(w, "✅ All configurations are valid!")
	} else {
		fmt.Fprintln(w, "❌ Some configurations have errors")
	}
	return allValid
}

func writerOf(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}
