package authcmder

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jutt313/aiveilix-go/cmd/veilix/cmdutil"
	"github.com/jutt313/aiveilix-go/pkg/cliui"
	"github.com/jutt313/aiveilix-go/pkg/credentials"
)

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and clear stored credentials",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLogout(cmd)
		},
	}
}

func runLogout(cmd *cobra.Command) error {
	cfg, err := cmdutil.LoadConfig(cmd)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Best effort server-side logout; the local credentials are cleared
	// either way.
	if client, err := cmdutil.NewClient(cmd, cfg); err == nil {
		if err := client.Logout(cmd.Context()); err != nil {
			cmdutil.NewLogger(cmd).Debug("server-side logout failed", "err", err)
		}
	}

	mgr, err := credentials.NewManager(cmdutil.ConfigDir(cmd))
	if err != nil {
		return fmt.Errorf("loading credentials: %w", err)
	}
	if err := mgr.Clear(); err != nil {
		return err
	}

	fmt.Printf("\n  %s Signed out\n", cliui.SuccessMark)
	return nil
}
