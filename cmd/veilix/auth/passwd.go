package authcmder

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jutt313/aiveilix-go/cmd/veilix/cmdutil"
	"github.com/jutt313/aiveilix-go/pkg/cliui"
)

const changePasswordLongDesc string = `Change the signed-in account's password.

Prompts for the current password and the new one. The stored session stays
valid after the change.

Examples:
  veilix auth change-password`

func newChangePasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "change-password",
		Short: "Change the account password",
		Long:  changePasswordLongDesc,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runChangePassword(cmd)
		},
	}
}

func runChangePassword(cmd *cobra.Command) error {
	current, err := readPassword("Current password: ")
	if err != nil {
		return err
	}

	updated, err := readPassword("New password: ")
	if err != nil {
		return err
	}
	if updated == "" {
		return errors.New("new password cannot be empty")
	}

	confirm, err := readPassword("Repeat new password: ")
	if err != nil {
		return err
	}
	if confirm != updated {
		return errors.New("passwords do not match")
	}

	cfg, err := cmdutil.LoadConfig(cmd)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	client, err := cmdutil.NewClient(cmd, cfg)
	if err != nil {
		return err
	}

	if _, err := client.ChangePassword(cmd.Context(), current, updated); err != nil {
		return err
	}

	fmt.Printf("\n  %s Password changed\n", cliui.SuccessMark)
	return nil
}
