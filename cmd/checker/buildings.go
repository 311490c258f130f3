package main

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/napolitain/cookie-checker/internal/converter"
	"github.com/napolitain/cookie-checker/internal/session"
	"github.com/napolitain/cookie-checker/internal/solver"
)

func newBuildingsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "buildings",
		Aliases: []string{"b"},
		Short:   "Rank buildings by CPS gained per 1M cookies",
		Args:    cobra.NoArgs,
		RunE:    a.rankBuildings,
	}
	cmd.PersistentFlags().IntVarP(&a.top, "top", "t", 0, "Show only the top N rows")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "rank",
			Short: "Rank buildings (default)",
			Args:  cobra.NoArgs,
			RunE:  a.rankBuildings,
		},
		&cobra.Command{
			Use:   "cost <building> <cost>",
			Short: `Set a building's current price; "" clears it`,
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				bt, err := converter.ResolveBuilding(args[0])
				if err != nil {
					return err
				}
				if _, err := a.store.Update(func(s *session.Session) error {
					return s.SetCost(string(bt), args[1])
				}); err != nil {
					return err
				}
				if _, ok := solver.ParseCost(args[1]); !ok && args[1] != "" {
					warn(cmd.OutOrStdout(), "⚠ %q is not a positive number; %s will be left out of the ranking", args[1], bt.DisplayName())
				}
				success(cmd.OutOrStdout(), "✓ %s cost set to %q", bt.DisplayName(), args[1])
				return nil
			},
		},
		&cobra.Command{
			Use:     "prestige <level>",
			Short:   "Set your prestige level (+1% CPS per level)",
			Example: "  checker buildings prestige 250\n  checker buildings prestige -- -5   # negative values need --; stored as 0",
			Args:    cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				level := converter.ParsePrestige(args[0])
				if _, err := a.store.Update(func(s *session.Session) error {
					s.SetPrestige(level)
					return nil
				}); err != nil {
					return err
				}
				success(cmd.OutOrStdout(), "✓ Prestige level set to %d", level)
				return nil
			},
		},
		&cobra.Command{
			Use:   "cps <value>",
			Short: "Record your current CPS",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if _, err := a.store.Update(func(s *session.Session) error {
					s.SetCPS(args[0])
					return nil
				}); err != nil {
					return err
				}
				success(cmd.OutOrStdout(), "✓ CPS set to %q", args[0])
				return nil
			},
		},
	)
	return cmd
}

func (a *app) rankBuildings(cmd *cobra.Command, _ []string) error {
	sess, err := a.store.Load()
	if err != nil {
		return err
	}

	inputs, prestige := converter.SessionToBuildingInputs(sess)
	results := solver.RankBuildings(inputs, prestige)

	out := cmd.OutOrStdout()
	color.New(color.FgCyan, color.Bold).Fprintln(out, "🍪 Cookie Clicker CPS Checker")
	fmt.Fprintf(out, "   Prestige level: %d (x%s)\n", prestige,
		strconv.FormatFloat(solver.PrestigeMultiplier(prestige), 'f', -1, 64))
	if sess.CPS != "" {
		fmt.Fprintf(out, "   Current CPS: %s\n", sess.CPS)
	}
	fmt.Fprintln(out)

	if len(results) == 0 {
		color.New(color.FgYellow).Fprintln(out, `No building costs entered yet. Try: checker buildings cost "Grandma" 100`)
		return nil
	}
	renderBuildings(out, results, a.top)
	return nil
}
