// Package keyscmder provides the keys commands for managing AIVEILIX API keys.
package keyscmder

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jutt313/aiveilix-go/cmd/veilix/cmdutil"
	"github.com/jutt313/aiveilix-go/pkg/cliui"
)

const keysLongDesc string = `Manage AIVEILIX API keys.

API keys authenticate scripts and integrations without a login session.
The full key is shown exactly once at creation; only the prefix is
listed afterwards.

Examples:
  veilix keys list
  veilix keys create ci-bot --scopes read,write
  veilix keys create reporting --buckets <bucket-id>,<bucket-id>
  veilix keys rm <key-id>`

const keysShortDesc string = "Manage API keys"

func NewKeysCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keys",
		Short: keysShortDesc,
		Long:  keysLongDesc,
	}

	cmd.AddCommand(newListCmd())
	cmd.AddCommand(newCreateCmd())
	cmd.AddCommand(newRmCmd())

	return cmd
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your API keys",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd)
		},
	}
}

func runList(cmd *cobra.Command) error {
	cfg, err := cmdutil.LoadConfig(cmd)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	client, err := cmdutil.NewClient(cmd, cfg)
	if err != nil {
		return err
	}

	keys, err := client.APIKeys(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Println()
	if len(keys) == 0 {
		fmt.Printf("  %s\n", cliui.DimStyle.Render("No API keys. Create one with \"veilix keys create <name>\"."))
		return nil
	}

	for _, k := range keys {
		state := cliui.DimStyle.Render("active")
		if !k.IsActive {
			state = cliui.WarnStyle.Render("inactive")
		}
		fmt.Printf("  %s %s %s %s %s\n",
			cliui.IDStyle.Render(k.ID),
			cliui.NameStyle.Render(k.Name),
			cliui.DimStyle.Render(k.KeyPrefix+"..."),
			cliui.DimStyle.Render("["+strings.Join(k.Scopes, ",")+"]"),
			state,
		)
	}
	return nil
}

func newCreateCmd() *cobra.Command {
	var scopes, buckets []string

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create an API key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCreate(cmd, args[0], scopes, buckets)
		},
	}

	cmd.Flags().StringSliceVar(&scopes, "scopes", []string{"read"}, "Key scopes (read, write, delete)")
	cmd.Flags().StringSliceVar(&buckets, "buckets", nil, "Restrict the key to these bucket ids (default: all)")

	return cmd
}

func runCreate(cmd *cobra.Command, name string, scopes, buckets []string) error {
	cfg, err := cmdutil.LoadConfig(cmd)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	client, err := cmdutil.NewClient(cmd, cfg)
	if err != nil {
		return err
	}

	created, err := client.CreateAPIKey(cmd.Context(), name, scopes, buckets)
	if err != nil {
		return err
	}

	fmt.Printf("\n  %s Created API key %s\n\n", cliui.SuccessMark, cliui.NameStyle.Render(name))
	if created.APIKey != "" {
		fmt.Printf("  %s\n", created.APIKey)
		fmt.Printf("\n  %s\n", cliui.WarnStyle.Render("! Store this key now. It will not be shown again."))
	}
	return nil
}

func newRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <key-id>",
		Short: "Revoke an API key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRm(cmd, args[0])
		},
	}
}

func runRm(cmd *cobra.Command, keyID string) error {
	cfg, err := cmdutil.LoadConfig(cmd)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	client, err := cmdutil.NewClient(cmd, cfg)
	if err != nil {
		return err
	}

	if err := client.DeleteAPIKey(cmd.Context(), keyID); err != nil {
		return err
	}

	fmt.Printf("\n  %s Revoked key %s\n", cliui.SuccessMark, cliui.IDStyle.Render(keyID))
	return nil
}
