// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package command

import (
	"context"
	"fmt"
	"math"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/momeni/mapty/pkg/core/usecase/workoutsuc"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect or clear the workouts of a browser client",
	Long: `Inspect or clear the workouts history of a browser client.
Clients are identified by the UUID which is kept in their mapty_client
cookie.`,
}

var showHistoryCmd = &cobra.Command{
	Use:   "show <client-id>",
	Short: "List the recorded workouts of a client",
	RunE:  showHistory,
	Args:  cobra.ExactArgs(1),
}

var clearHistoryCmd = &cobra.Command{
	Use:   "clear <client-id>",
	Short: "Remove the recorded workouts of a client",
	RunE:  clearHistory,
	Args:  cobra.ExactArgs(1),
}

// withUseCase parses the client id, loads the configuration, and
// passes a workouts use case to `f` while its DB pool is open.
func withUseCase(
	ctx context.Context, clientID string,
	f func(uc *workoutsuc.UseCase, client uuid.UUID) error,
) error {
	client, err := uuid.Parse(clientID)
	if err != nil {
		return fmt.Errorf("parsing client id %q: %w", clientID, err)
	}
	c, err := loadConfig()
	if err != nil {
		return err
	}
	p, err := c.Database.ConnectionPool(ctx)
	if err != nil {
		return fmt.Errorf("creating DB pool: %w", err)
	}
	defer p.Close()
	uc, err := c.NewWorkoutsUseCase(p)
	if err != nil {
		return fmt.Errorf("creating workouts use case: %w", err)
	}
	return f(uc, client)
}

func showHistory(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	return withUseCase(ctx, args[0], func(
		uc *workoutsuc.UseCase, client uuid.UUID,
	) error {
		ws, err := uc.History(ctx, client)
		if err != nil {
			return fmt.Errorf("reading history: %w", err)
		}
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tDESCRIPTION\tDISTANCE\tDURATION\tRATE\tMETRIC")
		for _, w := range ws {
			fmt.Fprintf(
				tw, "%d\t%s\t%v km\t%v min\t%v\t%v\n",
				w.ID, w.Description(), w.Distance, w.Duration,
				math.Floor(w.Rate()), math.Floor(w.Metric()),
			)
		}
		return tw.Flush()
	})
}

func clearHistory(cmd *cobra.Command, args []string) error {
	return withUseCase(cmd.Context(), args[0], func(
		uc *workoutsuc.UseCase, client uuid.UUID,
	) error {
		if err := uc.Reset(cmd.Context(), client); err != nil {
			return fmt.Errorf("clearing history: %w", err)
		}
		return nil
	})
}

func init() {
	historyCmd.AddCommand(showHistoryCmd, clearHistoryCmd)
	rootCmd.AddCommand(historyCmd)
}
