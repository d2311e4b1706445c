package authcmder

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jutt313/aiveilix-go/cmd/veilix/cmdutil"
	"github.com/jutt313/aiveilix-go/pkg/cliui"
	"github.com/jutt313/aiveilix-go/pkg/credentials"
)

const signupLongDesc string = `Create a new AIVEILIX account.

When the server returns a session immediately, it is stored and you are
signed in. Some deployments require email confirmation first; in that case
run "veilix auth login" after confirming.

Examples:
  veilix auth signup --email dev@example.com --name "Dev Example"`

func newSignupCmd() *cobra.Command {
	var email, fullName string

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create a new account",
		Long:  signupLongDesc,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSignup(cmd, email, fullName)
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "Account email (prompted if omitted)")
	cmd.Flags().StringVarP(&fullName, "name", "n", "", "Full name")

	return cmd
}

func runSignup(cmd *cobra.Command, email, fullName string) error {
	if email == "" {
		var err error
		email, err = readLine("Email: ")
		if err != nil {
			return err
		}
	}
	email = strings.TrimSpace(email)
	if email == "" {
		return errors.New("email cannot be empty")
	}

	password, err := readPassword("Password: ")
	if err != nil {
		return err
	}

	cfg, err := cmdutil.LoadConfig(cmd)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	client := cmdutil.NewAnonymousClient(cmd, cfg)

	res, err := client.Signup(cmd.Context(), email, password, fullName)
	if err != nil {
		return err
	}

	if res.Session != nil && res.Session.AccessToken != "" {
		mgr, err := credentials.NewManager(cmdutil.ConfigDir(cmd))
		if err != nil {
			return fmt.Errorf("loading credentials: %w", err)
		}
		if err := mgr.SetSession(email, res.Session.AccessToken); err != nil {
			return err
		}

		fmt.Printf("\n  %s Account created, signed in as %s\n",
			cliui.SuccessMark,
			cliui.NameStyle.Render(email),
		)
		return nil
	}

	fmt.Printf("\n  %s %s\n", cliui.SuccessMark, res.Message)
	fmt.Printf("  %s\n", cliui.DimStyle.Render("Confirm your email, then run \"veilix auth login\"."))
	return nil
}
