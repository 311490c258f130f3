package main

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/napolitain/cookie-checker/internal/converter"
	"github.com/napolitain/cookie-checker/internal/session"
)

func newUpgradesCmd(a *app) *cobra.Command {
	var showAll bool

	rank := func(cmd *cobra.Command, _ []string) error {
		return a.rankUpgrades(cmd, showAll)
	}

	cmd := &cobra.Command{
		Use:     "upgrades",
		Aliases: []string{"u"},
		Short:   "Rank upgrades by CPS gained per cookie",
		Args:    cobra.NoArgs,
		RunE:    rank,
	}
	cmd.PersistentFlags().IntVarP(&a.top, "top", "t", 0, "Show only the top N rows")
	cmd.PersistentFlags().BoolVarP(&showAll, "all", "a", false, "Show purchased upgrades even when hidden")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "rank",
			Short: "Rank upgrades (default)",
			Args:  cobra.NoArgs,
			RunE:  rank,
		},
		&cobra.Command{
			Use:     "count <building> <owned>",
			Short:   "Set how many of a building you own",
			Example: "  checker upgrades count grandma 40\n  checker upgrades count farm -- -1   # stored as 0",
			Args:    cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				bt, err := converter.ResolveBuilding(args[0])
				if err != nil {
					return err
				}
				n := converter.ParseCount(args[1])
				if _, err := a.store.Update(func(s *session.Session) error {
					return s.SetCount(string(bt), n)
				}); err != nil {
					return err
				}
				success(cmd.OutOrStdout(), "✓ %s owned: %d", bt.DisplayName(), n)
				return nil
			},
		},
		&cobra.Command{
			Use:   "counts",
			Short: "Show saved building counts",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				sess, err := a.store.Load()
				if err != nil {
					return err
				}
				renderCounts(cmd.OutOrStdout(), sess.UpgradeCounts)
				return nil
			},
		},
		&cobra.Command{
			Use:     "cps <value>",
			Short:   "Set your raw CPS (excluding golden cookies and clicking)",
			Example: "  checker upgrades cps 1.5e6\n  checker upgrades cps -- -3",
			Args:    cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if _, err := a.store.Update(func(s *session.Session) error {
					s.SetUpgradeCPS(args[0])
					return nil
				}); err != nil {
					return err
				}
				success(cmd.OutOrStdout(), "✓ CPS set to %s", formatNumber(converter.ParseCPS(args[0])))
				return nil
			},
		},
		&cobra.Command{
			Use:   "milk <level>",
			Short: "Set your milk level (1.0 = 100%)",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if _, err := a.store.Update(func(s *session.Session) error {
					s.SetMilk(args[0])
					return nil
				}); err != nil {
					return err
				}
				success(cmd.OutOrStdout(), "✓ Milk level set to %s", strconv.FormatFloat(converter.ParseMilk(args[0]), 'f', -1, 64))
				return nil
			},
		},
		&cobra.Command{
			Use:   "purchase <id|name>",
			Short: "Toggle an upgrade's purchased flag",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				catalog, err := a.loadCatalog()
				if err != nil {
					return err
				}
				u, err := converter.ResolveUpgrade(catalog, args[0])
				if err != nil {
					return err
				}
				var purchased bool
				if _, err := a.store.Update(func(s *session.Session) error {
					purchased = s.TogglePurchased(u.ID)
					return nil
				}); err != nil {
					return err
				}
				if purchased {
					success(cmd.OutOrStdout(), "✓ %s marked as purchased", u.Name)
				} else {
					warn(cmd.OutOrStdout(), "○ %s marked as not purchased", u.Name)
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "hide <true|false>",
			Short: "Hide purchased upgrades from the ranking",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				hide, err := strconv.ParseBool(args[0])
				if err != nil {
					return fmt.Errorf("hide expects true or false, got %q", args[0])
				}
				if _, err := a.store.Update(func(s *session.Session) error {
					s.SetHidePurchased(hide)
					return nil
				}); err != nil {
					return err
				}
				success(cmd.OutOrStdout(), "✓ Hide purchased: %t", hide)
				return nil
			},
		},
	)
	return cmd
}

func (a *app) rankUpgrades(cmd *cobra.Command, showAll bool) error {
	catalog, err := a.loadCatalog()
	if err != nil {
		return err
	}
	sess, err := a.store.Load()
	if err != nil {
		return err
	}

	in := converter.SessionToUpgradeInputs(sess)
	ranked := converter.RankSession(catalog, sess)

	out := cmd.OutOrStdout()
	color.New(color.FgCyan, color.Bold).Fprintln(out, "🔧 Upgrade Efficiency Checker")
	fmt.Fprintf(out, "   Total CPS: %s   Milk: %s   Buildings owned: %d   Catalog: v%s\n\n",
		formatNumber(in.TotalCPS),
		strconv.FormatFloat(in.MilkPercent, 'f', -1, 64),
		in.Counts.Total(),
		catalog.Version)

	if len(ranked) == 0 {
		color.New(color.FgYellow).Fprintln(out, "The upgrade catalog is empty.")
		return nil
	}
	renderUpgrades(out, ranked, sess.HidePurchased && !showAll, a.top)
	return nil
}
