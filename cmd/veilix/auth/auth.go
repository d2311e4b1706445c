// Package authcmder provides the auth commands for signing in to AIVEILIX
// and storing credentials.
package authcmder

import (
	"github.com/spf13/cobra"
)

const authLongDesc string = `Manage the AIVEILIX session stored on this machine.

Credentials are stored in credentials.toml in the .veilix/ directory with
0600 permissions. The VEILIX_TOKEN and VEILIX_API_KEY environment variables
take precedence over the stored credentials, so CI and scripts can
authenticate without a login.

Examples:
  veilix auth login                  Sign in with email and password
  veilix auth signup                 Create a new account
  veilix auth whoami                 Show the signed-in account
  veilix auth change-password        Change the account password
  veilix auth key                    Store an API key instead of a session
  echo $KEY | veilix auth key        Pipe an API key from stdin
  veilix auth logout                 Sign out and clear stored credentials`

const authShortDesc string = "Sign in to AIVEILIX and manage stored credentials"

func NewAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: authShortDesc,
		Long:  authLongDesc,
	}

	cmd.AddCommand(newLoginCmd())
	cmd.AddCommand(newSignupCmd())
	cmd.AddCommand(newLogoutCmd())
	cmd.AddCommand(newWhoamiCmd())
	cmd.AddCommand(newChangePasswordCmd())
	cmd.AddCommand(newKeyCmd())

	return cmd
}
