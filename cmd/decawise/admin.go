package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/palemoky/decawise/internal/config"
	"github.com/palemoky/decawise/internal/game/engine"
	"github.com/palemoky/decawise/internal/game/question"
	"github.com/palemoky/decawise/internal/storage"
)

func newQuestionsCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "questions",
		Short: "Inspect the question catalog",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "check [file]",
		Short: "Validate a questions file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts, cmd.Flags().Changed("config"))
			if err != nil {
				return err
			}
			path := cfg.Game.QuestionsPath
			if len(args) == 1 {
				path = args[0]
			}
			return checkQuestions(cmd.OutOrStdout(), path)
		},
	})
	return cmd
}

func checkQuestions(w io.Writer, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read questions %s: %w", path, err)
	}
	qs, err := question.Decode(data)
	if err != nil {
		return err
	}

	errs := question.Check(qs)
	for _, e := range errs {
		_, _ = fmt.Fprintf(w, "✗ %v\n", e)
	}
	_, _ = fmt.Fprintf(w, "%s: %d questions, %d valid, %d invalid\n", path, len(qs), len(qs)-len(errs), len(errs))

	if len(errs) > 0 {
		return fmt.Errorf("%d invalid questions: %w", len(errs), errors.Join(errs...))
	}
	return nil
}

func newSessionCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Inspect or clear the saved game",
	}

	var asJSON bool
	show := &cobra.Command{
		Use:   "show",
		Short: "Print the saved game",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withStore(cmd, opts, func(store storage.Store) error {
				snap, err := store.LoadGame(cmd.Context())
				if err != nil {
					return err
				}
				return printSnapshot(cmd.OutOrStdout(), snap, asJSON, time.Now())
			})
		},
	}
	show.Flags().BoolVar(&asJSON, "json", false, "print the raw snapshot")

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete the saved game",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withStore(cmd, opts, func(store storage.Store) error {
				if err := store.DeleteGame(cmd.Context()); err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Saved game cleared")
				return nil
			})
		},
	}

	cmd.AddCommand(show, clearCmd)
	return cmd
}

func printSnapshot(w io.Writer, snap *storage.GameSnapshot, asJSON bool, now time.Time) error {
	if snap == nil {
		_, _ = fmt.Fprintln(w, "No saved game")
		return nil
	}
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(snap)
	}

	s, err := engine.FromSnapshot(snap)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(w, "Game %s: %s, round %d, first to %d\n", s.GameID, s.Status, s.CurrentRound, s.PointsToWin)
	if snap.SavedAt > 0 {
		_, _ = fmt.Fprintf(w, "Saved %s\n", humanize.RelTime(time.Unix(snap.SavedAt, 0), now, "ago", "from now"))
	}
	if q := s.CurrentQuestion; q != nil {
		_, _ = fmt.Fprintf(w, "Question #%d (%s): %s, %d/%d revealed\n", q.ID, q.Topic, q.Prompt, s.Revealed.Len(), question.OptionCount)
	}
	for i, p := range s.Players {
		marker := " "
		if i == s.CurrentPlayerIndex {
			marker = "▶"
		}
		state := ""
		switch {
		case p.IsEliminated:
			state = " (wrong)"
		case p.HasPassedThisRound:
			state = " (passed)"
		}
		_, _ = fmt.Fprintf(w, "%s %-10s score %d, round +%d%s\n", marker, p.Name, p.Score, p.RoundScore, state)
	}
	return nil
}

func newHistoryCmd(opts *options) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recently finished games",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withStore(cmd, opts, func(store storage.Store) error {
				results, err := store.RecentResults(cmd.Context(), limit)
				if err != nil {
					return err
				}
				printHistory(cmd.OutOrStdout(), results, time.Now())
				return nil
			})
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "number of games to show")
	return cmd
}

func printHistory(w io.Writer, results []*storage.GameResult, now time.Time) {
	if len(results) == 0 {
		_, _ = fmt.Fprintln(w, "No finished games yet")
		return
	}
	for _, r := range results {
		_, _ = fmt.Fprintf(w, "%-16s %s won with %d/%d points in %d rounds (%d players)\n",
			humanize.RelTime(time.Unix(r.FinishedAt, 0), now, "ago", "from now"),
			r.Winner.Name, r.Winner.Score, r.PointsToWin, r.Rounds, len(r.Standings))
	}
}

// withStore opens the configured backend for the duration of fn.
func withStore(cmd *cobra.Command, opts *options, fn func(storage.Store) error) error {
	cfg, err := loadConfig(opts, cmd.Flags().Changed("config"))
	if err != nil {
		return err
	}
	if cfg.Storage.Backend == config.BackendMemory {
		return fmt.Errorf("the memory backend does not outlive the game")
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Storage.Timeout())
	defer cancel()
	cmd.SetContext(ctx)

	store, err := storage.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()
	return fn(store)
}
