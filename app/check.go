package app

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/briefboard/briefboard/internal/briefboard"
	"github.com/briefboard/briefboard/internal/daemon"
)

func init() { //nolint: gochecknoinits
	checkCmd.Flags().StringVar(&userID, "user", "", "user id, empty for the global scope")
	visitCmd.Flags().StringVar(&userID, "user", "", "user id, empty for the global scope")

	rootCmd.AddCommand(checkCmd, visitCmd)
}

// visitResult is printed by the visit command.
type visitResult struct {
	User      string    `json:"user"`
	LastSeen  time.Time `json:"lastSeen"`
	Persisted bool      `json:"persisted"`
	Warning   string    `json:"warning,omitempty"`
}

// checkResult is printed by the check command.
type checkResult struct {
	briefboard.Decision
	User     string     `json:"user"`
	LastSeen *time.Time `json:"lastSeen"`
}

var (
	userID string

	checkCmd = &cobra.Command{
		Use:   "check",
		Short: "Print whether the briefing prompt would be shown now",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withRuntime(func(rt *daemon.Runtime) error {
				ctx := cmd.Context()

				return printJSON(cmd.OutOrStdout(), checkResult{
					Decision: rt.Briefboard.ShouldShow(ctx, userID),
					User:     userID,
					LastSeen: rt.Briefboard.LastSeen(ctx, userID),
				})
			})
		},
	}

	visitCmd = &cobra.Command{
		Use:   "visit",
		Short: "Record that the briefing prompt was seen now",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withRuntime(func(rt *daemon.Runtime) error {
				return recordVisit(cmd.Context(), rt.Briefboard, userID, cmd.OutOrStdout())
			})
		},
	}
)

// withRuntime opens the configured storage for a one-shot command. Logs go to
// stderr, so stdout only carries the JSON result.
func withRuntime(fn func(rt *daemon.Runtime) error) error {
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	zerolog.SetGlobalLevel(zerolog.WarnLevel)

	c, err := loadConfig()
	if err != nil {
		return err
	}

	rt, err := daemon.Open(&c)
	if err != nil {
		return err //nolint:wrapcheck
	}

	defer func() {
		if cerr := rt.Close(); cerr != nil {
			log.Error().Err(cerr).Msg("failed to close briefboard storage")
		}
	}()

	return fn(rt)
}

// recordVisit records a visit of user and prints the result to w. A visit that
// could not be stored is reported as a warning, not as a failure.
func recordVisit(ctx context.Context, svc *briefboard.Service, user string, w io.Writer) error {
	at, err := svc.RecordVisit(ctx, user)
	if err != nil && !errors.Is(err, briefboard.ErrVisitNotPersisted) {
		return err //nolint:wrapcheck
	}

	res := visitResult{User: user, LastSeen: at, Persisted: err == nil}
	if err != nil {
		res.Warning = err.Error()
	}

	return printJSON(w, res)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(v) //nolint:wrapcheck
}
