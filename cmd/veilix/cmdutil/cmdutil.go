// Package cmdutil holds the plumbing shared by veilix subcommands: resolving
// configuration, building the API client, and wiring the logger from the
// global flags.
package cmdutil

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/jutt313/aiveilix-go/pkg/api"
	"github.com/jutt313/aiveilix-go/pkg/config"
	"github.com/jutt313/aiveilix-go/pkg/credentials"
	"github.com/jutt313/aiveilix-go/pkg/dotdir"
	"github.com/jutt313/aiveilix-go/pkg/logger"
)

// ConfigDir returns the --config-dir override from the command's flag set.
func ConfigDir(cmd *cobra.Command) string {
	dir, _ := cmd.Flags().GetString("config-dir")
	return dir
}

// NewLogger builds the CLI logger honoring the global --debug flag. In debug
// mode, records also go to debug.log in the .veilix/ directory as JSON; the
// file handle lives for the process lifetime.
func NewLogger(cmd *cobra.Command) *slog.Logger {
	debug, _ := cmd.Flags().GetBool("debug")
	if !debug {
		return logger.Nop()
	}

	pretty := logger.New(
		logger.WithDebug(true),
		logger.WithPretty(true),
		logger.WithWriter(os.Stderr),
	)

	ddm := dotdir.NewManager()
	target, err := ddm.Target(ConfigDir(cmd))
	if err != nil || target == "" {
		return pretty
	}

	f, err := os.OpenFile(filepath.Join(target, "debug.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return pretty
	}

	return logger.Multi(pretty, logger.New(
		logger.WithDebug(true),
		logger.WithJSON(true),
		logger.WithWriter(f),
	))
}

// LoadConfig resolves the effective Config for a command via viper so that
// flags, environment and config.toml all participate.
func LoadConfig(cmd *cobra.Command, boundFlags ...string) (*config.Config, error) {
	v, err := config.InitViper(ConfigDir(cmd))
	if err != nil {
		return nil, err
	}

	// The root command registers --api-target persistently; bind it for
	// every command alongside the command's own flags.
	config.BindRegisteredFlags(v, cmd, config.Flags, append([]string{config.FlagAPITarget}, boundFlags...))

	cfg := config.NewDefaultConfig()
	cfg.API.Target = v.GetString("api.target")
	cfg.Client.TimeoutSeconds = v.GetInt("client.timeout_seconds")
	cfg.Chat.DefaultBucket = v.GetString("chat.default_bucket")
	cfg.History.Enabled = v.GetBool("history.enabled")
	cfg.History.SQLitePath = v.GetString("history.sqlite_path")
	cfg.Logging.Debug = v.GetBool("logging.debug")

	return cfg, nil
}

// NewClient builds an authenticated API client for the command. The token
// comes from the environment or credentials.toml; commands that work without
// auth (login, signup) can ignore a missing token error from the Manager by
// using NewAnonymousClient.
func NewClient(cmd *cobra.Command, cfg *config.Config) (*api.Client, error) {
	mgr, err := credentials.NewManager(ConfigDir(cmd))
	if err != nil {
		return nil, fmt.Errorf("loading credentials: %w", err)
	}

	token, err := mgr.Token()
	if err != nil {
		return nil, fmt.Errorf("not signed in: %w (run \"veilix auth login\")", err)
	}

	return newClient(cmd, cfg, token), nil
}

// NewStreamingClient is NewClient without an HTTP timeout. Chat streams can
// run for minutes; they are cancelled via context instead.
func NewStreamingClient(cmd *cobra.Command, cfg *config.Config) (*api.Client, error) {
	mgr, err := credentials.NewManager(ConfigDir(cmd))
	if err != nil {
		return nil, fmt.Errorf("loading credentials: %w", err)
	}

	token, err := mgr.Token()
	if err != nil {
		return nil, fmt.Errorf("not signed in: %w (run \"veilix auth login\")", err)
	}

	return api.New(cfg.API.Target,
		api.WithLogger(NewLogger(cmd)),
		api.WithHTTPClient(&http.Client{}),
		api.WithToken(token),
	), nil
}

// NewAnonymousClient builds an API client without credentials, for auth
// commands that establish a session.
func NewAnonymousClient(cmd *cobra.Command, cfg *config.Config) *api.Client {
	return newClient(cmd, cfg, "")
}

func newClient(cmd *cobra.Command, cfg *config.Config, token string) *api.Client {
	timeout := time.Duration(cfg.Client.TimeoutSeconds) * time.Second

	opts := []api.Option{
		api.WithLogger(NewLogger(cmd)),
		api.WithHTTPClient(&http.Client{Timeout: timeout}),
	}
	if token != "" {
		opts = append(opts, api.WithToken(token))
	}

	return api.New(cfg.API.Target, opts...)
}
