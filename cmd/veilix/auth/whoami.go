package authcmder

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jutt313/aiveilix-go/cmd/veilix/cmdutil"
	"github.com/jutt313/aiveilix-go/pkg/cliui"
)

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWhoami(cmd)
		},
	}
}

func runWhoami(cmd *cobra.Command) error {
	cfg, err := cmdutil.LoadConfig(cmd)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	client, err := cmdutil.NewClient(cmd, cfg)
	if err != nil {
		return err
	}

	me, err := client.Me(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Println()
	if email, ok := me["email"].(string); ok && email != "" {
		fmt.Printf("  %s %s\n", cliui.KeyStyle.Render("Email:"), cliui.NameStyle.Render(email))
	}
	if id, ok := me["id"].(string); ok && id != "" {
		fmt.Printf("  %s %s\n", cliui.KeyStyle.Render("User:"), cliui.IDStyle.Render(id))
	}
	fmt.Printf("  %s %s\n", cliui.KeyStyle.Render("Target:"), cliui.DimStyle.Render(cfg.API.Target))
	return nil
}
