package main

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/napolitain/cookie-checker/internal/models"
	"github.com/napolitain/cookie-checker/internal/solver"
)

var numbers = message.NewPrinter(language.English)

var bestBuyStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("2")).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("2")).
	Padding(0, 1)

// formatNumber groups thousands and keeps up to 3 decimals, like the
// browser's toLocaleString
func formatNumber(v float64) string {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return fmt.Sprint(v)
	}
	if v == math.Trunc(v) {
		return numbers.Sprintf("%.0f", v)
	}
	s := numbers.Sprintf("%.3f", v)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

// formatGain floors a CPS gain before grouping
func formatGain(v float64) string {
	return numbers.Sprintf("%.0f", math.Floor(v))
}

func formatEfficiency(v float64, decimals int) string {
	if math.IsInf(v, 1) {
		return "free"
	}
	return fmt.Sprintf("%.*f", decimals, v)
}

var (
	okColor   = color.New(color.FgGreen)
	warnColor = color.New(color.FgYellow)
)

// success prints a green status line
func success(w io.Writer, format string, args ...any) {
	okColor.Fprintf(w, format+"\n", args...)
}

// warn prints a yellow status line
func warn(w io.Writer, format string, args ...any) {
	warnColor.Fprintf(w, format+"\n", args...)
}

func bestBuyBanner(text string) string {
	return bestBuyStyle.Render("💡 Best Buy Right Now: " + text)
}

func renderBuildings(w io.Writer, results []solver.BuildingResult, top int) {
	best, ok := solver.BestBuilding(results)
	if !ok {
		return
	}
	fmt.Fprintln(w, bestBuyBanner(fmt.Sprintf("%s (%s CPS per 1M)",
		best.Building.Name, formatEfficiency(best.Efficiency, 6))))

	table := tablewriter.NewTable(w,
		tablewriter.WithHeader([]string{"#", "Building", "CPS", "Effective CPS", "Cost", "CPS per 1M"}),
	)
	for i, r := range limit(results, top) {
		name := r.Building.Name
		if i == 0 {
			name = "★ " + name
		}
		table.Append([]string{
			fmt.Sprintf("%d", i+1),
			name,
			formatNumber(r.Building.BaseCPS),
			formatNumber(r.EffectiveCPS),
			formatNumber(r.Cost),
			formatEfficiency(r.Efficiency, 6),
		})
	}
	table.Render()
}

func renderUpgrades(w io.Writer, ranked []solver.UpgradeResult, hidePurchased bool, top int) {
	best, ok := solver.BestUpgrade(ranked)
	if !ok {
		return
	}
	fmt.Fprintln(w, bestBuyBanner(fmt.Sprintf("%s (+%s CPS, efficiency %s)",
		best.Upgrade.Name, formatGain(best.CPSGain), formatEfficiency(best.Efficiency, 8))))

	shown := ranked
	if hidePurchased {
		shown = solver.FilterPurchased(ranked)
	}

	table := tablewriter.NewTable(w,
		tablewriter.WithHeader([]string{"#", "ID", "Upgrade", "Type", "Cost", "CPS Gain", "Efficiency", "Purchased"}),
	)
	for i, r := range limit(shown, top) {
		name := r.Upgrade.Name
		if r.Upgrade.ID == best.Upgrade.ID {
			name = "★ " + name
		}
		purchased := ""
		if r.Purchased {
			purchased = "✓"
		}
		table.Append([]string{
			fmt.Sprintf("%d", i+1),
			r.Upgrade.ID,
			name,
			string(r.Upgrade.Type()),
			formatNumber(r.Upgrade.Cost),
			formatGain(r.CPSGain),
			formatEfficiency(r.Efficiency, 8),
			purchased,
		})
	}
	table.Render()
}

func renderCatalog(w io.Writer, catalog *models.UpgradeCatalog) {
	table := tablewriter.NewTable(w,
		tablewriter.WithHeader([]string{"ID", "Upgrade", "Type", "Cost", "Notes"}),
	)
	for _, u := range catalog.Upgrades {
		table.Append([]string{u.ID, u.Name, string(u.Type()), formatNumber(u.Cost), u.Notes})
	}
	table.Render()
}

func renderCounts(w io.Writer, counts models.BuildingCounts) {
	table := tablewriter.NewTable(w,
		tablewriter.WithHeader([]string{"Building", "Owned"}),
	)
	counts.Each(func(bt models.BuildingType, n int) {
		table.Append([]string{bt.DisplayName(), fmt.Sprintf("%d", n)})
	})
	table.Render()
}

func limit[T any](rows []T, top int) []T {
	if top > 0 && len(rows) > top {
		return rows[:top]
	}
	return rows
}
