// Package main provides the CLI entrypoint for firstlight.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/firstlight-app/firstlight/internal/api"
	"github.com/firstlight-app/firstlight/internal/config"
	"github.com/firstlight-app/firstlight/internal/logger"
	"github.com/firstlight-app/firstlight/internal/model"
	"github.com/firstlight-app/firstlight/internal/session"
	"github.com/firstlight-app/firstlight/internal/stats"
	"github.com/firstlight-app/firstlight/internal/ui"
)

const (
	defaultBaseURL    = "http://localhost:3001"
	defaultTimeoutSec = 15
	defaultLogLevel   = "info"
)

var (
	rootBaseURL    string
	rootTimeoutSec int
	rootLogLevel   string
	rootLogFile    string

	loginEmail    string
	loginPassword string
	loginRegister bool
	loginName     string

	statsPlayer  string
	exportPlayer string
	exportOut    string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "firstlight",
		Short:         "First goal tracking dashboard",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runDashboardCmd,
	}

	rootCmd.PersistentFlags().StringVar(&rootBaseURL, "api", defaultBaseURL, "backend base URL")
	rootCmd.PersistentFlags().IntVar(&rootTimeoutSec, "timeout", defaultTimeoutSec, "request timeout in seconds")
	rootCmd.PersistentFlags().StringVar(&rootLogLevel, "log-level", defaultLogLevel, "log level (trace..error)")
	rootCmd.PersistentFlags().StringVar(&rootLogFile, "log-file", config.DefaultLogPath(), "log file path")

	rootCmd.AddCommand(newLoginCmd())
	rootCmd.AddCommand(newLogoutCmd())
	rootCmd.AddCommand(newWhoamiCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

// app bundles the wired client pieces a command needs.
type app struct {
	client *api.Client
	sess   *session.Manager
	log    zerolog.Logger

	closers []io.Closer
}

func (a *app) close() {
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			logErrf("failed to close resource: %v\n", err)
		}
	}
}

func buildApp(cmd *cobra.Command) (*app, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "api", &rootBaseURL, fileCfg.API.BaseURL)
	applyIntConfig(cmd, "timeout", &rootTimeoutSec, fileCfg.API.TimeoutSec)
	applyStringConfig(cmd, "log-level", &rootLogLevel, fileCfg.Log.Level)
	applyStringConfig(cmd, "log-file", &rootLogFile, fileCfg.Log.File)

	if rootTimeoutSec <= 0 {
		return nil, fmt.Errorf("--timeout must be > 0")
	}
	if !strings.HasPrefix(rootBaseURL, "http://") && !strings.HasPrefix(rootBaseURL, "https://") {
		return nil, fmt.Errorf("--api must be an http(s) URL")
	}

	log, logCloser, err := logger.New(rootLogFile, rootLogLevel)
	if err != nil {
		return nil, err
	}

	client := api.New(rootBaseURL, time.Duration(rootTimeoutSec)*time.Second, log)

	store, err := session.OpenStore(config.DefaultCredentialPath())
	if err != nil {
		if cerr := logCloser.Close(); cerr != nil {
			logErrf("failed to close log file: %v\n", cerr)
		}
		return nil, fmt.Errorf("failed to open credential store: %w", err)
	}

	return &app{
		client:  client,
		sess:    session.NewManager(client, store, log),
		log:     log,
		closers: []io.Closer{store, logCloser},
	}, nil
}

func runDashboardCmd(cmd *cobra.Command, _ []string) error {
	a, err := buildApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	program := tea.NewProgram(ui.New(a.client, a.sess, a.log), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newLoginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session credential",
		Args:  cobra.NoArgs,
		RunE:  runLoginCmd,
	}
	cmd.Flags().StringVar(&loginEmail, "email", "", "account email")
	cmd.Flags().StringVar(&loginPassword, "password", "", "password (prompted when omitted)")
	cmd.Flags().BoolVar(&loginRegister, "register", false, "create a new account instead")
	cmd.Flags().StringVar(&loginName, "name", "", "display name (with --register)")
	return cmd
}

func runLoginCmd(cmd *cobra.Command, _ []string) error {
	if loginEmail == "" {
		return fmt.Errorf("--email is required")
	}
	if loginRegister && loginName == "" {
		return fmt.Errorf("--name is required with --register")
	}
	password := loginPassword
	if password == "" {
		fmt.Fprint(os.Stderr, "Password: ")
		raw, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		password = string(raw)
	}
	if password == "" {
		return fmt.Errorf("password must not be empty")
	}

	a, err := buildApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	creds := model.Credentials{Name: loginName, Email: loginEmail, Password: password}
	ctx := context.Background()
	var user model.User
	if loginRegister {
		user, err = a.sess.Register(ctx, creds)
	} else {
		user, err = a.sess.Login(ctx, creds)
	}
	if err != nil {
		return err
	}
	fmt.Printf("Signed in as %s <%s>\n", user.Name, user.Email)
	return nil
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the stored session credential",
		Args:  cobra.NoArgs,
		RunE:  runLogoutCmd,
	}
}

func runLogoutCmd(cmd *cobra.Command, _ []string) error {
	a, err := buildApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	state, _, err := a.sess.Boot(context.Background())
	if err != nil {
		return err
	}
	if state != session.Authenticated {
		fmt.Println("Not signed in.")
		return nil
	}
	if err := a.sess.Logout(context.Background()); err != nil {
		return err
	}
	fmt.Println("Signed out.")
	return nil
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in account",
		Args:  cobra.NoArgs,
		RunE:  runWhoamiCmd,
	}
}

func runWhoamiCmd(cmd *cobra.Command, _ []string) error {
	a, err := buildApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	state, user, err := a.sess.Boot(context.Background())
	if err != nil {
		return err
	}
	if state != session.Authenticated {
		return fmt.Errorf("not signed in (run: firstlight login)")
	}
	plan := user.Plan
	if plan == "" {
		plan = "FREE"
	}
	fmt.Printf("%s <%s> plan=%s\n", user.Name, user.Email, plan)
	return nil
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print a plain-text stats report",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsPlayer, "player", "", "player name or id (default: first player)")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	a, err := buildApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	ctx := context.Background()
	player, err := requirePlayer(ctx, a, statsPlayer)
	if err != nil {
		return err
	}

	entries, err := a.client.ListEntries(ctx, player.ID)
	if err != nil {
		return err
	}
	bundle, err := a.client.GetStats(ctx, player.ID)
	if err != nil {
		a.log.Warn().Err(err).Msg("server stats unavailable, computing locally")
	}
	if bundle == nil {
		local := stats.Compute(entries)
		bundle = &local
	}
	return stats.RenderReport(os.Stdout, player, *bundle, entries)
}

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Download the PDF report for a player",
		Args:  cobra.NoArgs,
		RunE:  runExportCmd,
	}
	cmd.Flags().StringVar(&exportPlayer, "player", "", "player name or id (default: first player)")
	cmd.Flags().StringVar(&exportOut, "out", "", "output path (default: firstlight-<player>.pdf)")
	return cmd
}

func runExportCmd(cmd *cobra.Command, _ []string) error {
	a, err := buildApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	ctx := context.Background()
	player, err := requirePlayer(ctx, a, exportPlayer)
	if err != nil {
		return err
	}

	out := exportOut
	if out == "" {
		out = fmt.Sprintf("firstlight-%s.pdf", player.ID)
	}
	file, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", out, err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			logErrf("failed to close export file: %v\n", cerr)
		}
	}()
	if err := a.client.DownloadExport(ctx, player.ID, file); err != nil {
		if rerr := os.Remove(out); rerr != nil {
			logErrf("failed to remove partial export: %v\n", rerr)
		}
		return err
	}
	fmt.Printf("Wrote %s\n", out)
	return nil
}

// requirePlayer boots the session and resolves the player selector to
// a concrete player, defaulting to the first one.
func requirePlayer(ctx context.Context, a *app, selector string) (model.Player, error) {
	state, _, err := a.sess.Boot(ctx)
	if err != nil {
		return model.Player{}, err
	}
	if state != session.Authenticated {
		return model.Player{}, fmt.Errorf("not signed in (run: firstlight login)")
	}
	players, err := a.client.ListPlayers(ctx)
	if err != nil {
		return model.Player{}, err
	}
	if len(players) == 0 {
		return model.Player{}, fmt.Errorf("no players yet; add one in the dashboard")
	}
	if selector == "" {
		return players[0], nil
	}
	for _, p := range players {
		if p.ID == selector || strings.EqualFold(p.Name, selector) {
			return p, nil
		}
	}
	names := make([]string, 0, len(players))
	for _, p := range players {
		names = append(names, p.Name)
	}
	return model.Player{}, fmt.Errorf("unknown player %q (have: %s)", selector, strings.Join(names, ", "))
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# firstlight configuration
# Uncomment a value to enable it. CLI flags override config values.

[api]
# base-url = %q   # Backend base URL
# timeout-sec = %d              # Request timeout in seconds

[log]
# level = %q                # Log level (trace, debug, info, warn, error)
# file = "~/.local/share/firstlight/firstlight.log"
`,
		defaultBaseURL,
		defaultTimeoutSec,
		defaultLogLevel,
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
