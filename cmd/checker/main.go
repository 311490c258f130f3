package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/napolitain/cookie-checker/internal/loader"
	"github.com/napolitain/cookie-checker/internal/logger"
	"github.com/napolitain/cookie-checker/internal/models"
	"github.com/napolitain/cookie-checker/internal/session"
)

const configEnv = "COOKIE_CHECKER_CONFIG"

// app is the state shared by every subcommand
type app struct {
	configFile  string
	dataDir     string
	sessionPath string
	verbose     bool
	top         int

	cfg     *models.Config
	store   *session.Store
	catalog *models.UpgradeCatalog
}

func main() {
	if err := newRootCmd(&app{}).Execute(); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "checker",
		Short: "Cookie Clicker purchase efficiency checker",
		Long: `Ranks buildings and upgrades by how much CPS they add per cookie spent.
Inputs are saved between runs; use "checker reset" to forget them.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.init,
	}

	rootCmd.SetFlagErrorFunc(negativeNumberHint)

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&a.configFile, "config", "c", "", "Path to TOML config file (env "+configEnv+")")
	flags.StringVarP(&a.dataDir, "data", "d", "", "Path to data directory")
	flags.StringVarP(&a.sessionPath, "session", "s", "", "Path to saved session file")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "Debug logging")

	rootCmd.AddCommand(
		newBuildingsCmd(a),
		newUpgradesCmd(a),
		newCatalogCmd(a),
		newResetCmd(a),
	)
	return rootCmd
}

// negativeNumberHint explains how to pass a negative value, which the flag
// parser otherwise reads as a shorthand flag
func negativeNumberHint(cmd *cobra.Command, err error) error {
	// pflag reports "unknown shorthand flag: '5' in -5"
	msg := err.Error()
	i := strings.LastIndex(msg, " in -")
	if i < 0 {
		return err
	}
	value := msg[i+len(" in "):]
	if _, perr := strconv.ParseFloat(value, 64); perr != nil {
		return err
	}
	return fmt.Errorf("%w (pass negative values after --, e.g. %s -- %s)", err, cmd.CommandPath(), value)
}

// init resolves configuration: flags, then env (optionally from .env), then defaults
func (a *app) init(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to read .env: %w", err)
	}

	path := a.configFile
	if path == "" {
		path = os.Getenv(configEnv)
	}
	cfg, err := models.LoadConfig(path)
	if err != nil {
		return err
	}

	if a.dataDir != "" {
		cfg.Data.Dir = a.dataDir
	}
	if a.sessionPath != "" {
		cfg.Session.Path = a.sessionPath
	}
	if a.verbose {
		cfg.Log.Level = slog.LevelDebug
	}
	if a.top == 0 {
		a.top = cfg.Display.Top
	}

	logger.Setup(cfg.Log, cmd.ErrOrStderr())
	slog.Debug("Configuration resolved",
		slog.String("config", path),
		slog.String("data", cfg.Data.Dir),
		slog.String("session", cfg.Session.Path))

	a.cfg = cfg
	a.store = session.NewStore(cfg.Session.Path)
	return nil
}

// loadCatalog loads the upgrade catalog once per run
func (a *app) loadCatalog() (*models.UpgradeCatalog, error) {
	if a.catalog != nil {
		return a.catalog, nil
	}
	catalog, err := loader.LoadUpgrades(a.cfg.Data.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to load upgrades: %w", err)
	}
	a.catalog = catalog
	return catalog, nil
}
