package authcmder

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jutt313/aiveilix-go/cmd/veilix/cmdutil"
	"github.com/jutt313/aiveilix-go/pkg/cliui"
	"github.com/jutt313/aiveilix-go/pkg/credentials"
)

const loginLongDesc string = `Sign in to AIVEILIX with email and password.

On success the session access token is stored in credentials.toml and used
by every other veilix command.

Examples:
  veilix auth login
  veilix auth login --email dev@example.com`

func newLoginCmd() *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with email and password",
		Long:  loginLongDesc,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLogin(cmd, email)
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "Account email (prompted if omitted)")

	return cmd
}

func runLogin(cmd *cobra.Command, email string) error {
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

	res, err := client.Login(cmd.Context(), email, password)
	if err != nil {
		return err
	}
	if res.Session == nil || res.Session.AccessToken == "" {
		return errors.New("server returned no session")
	}

	mgr, err := credentials.NewManager(cmdutil.ConfigDir(cmd))
	if err != nil {
		return fmt.Errorf("loading credentials: %w", err)
	}
	if err := mgr.SetSession(email, res.Session.AccessToken); err != nil {
		return err
	}

	fmt.Printf("\n  %s Signed in as %s\n",
		cliui.SuccessMark,
		cliui.NameStyle.Render(email),
	)
	return nil
}

// readLine reads one line of visible input from stdin.
func readLine(prompt string) (string, error) {
	fmt.Print(prompt)
	scanner := bufio.NewScanner(os.Stdin)
	if scanner.Scan() {
		return scanner.Text(), nil
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return "", errors.New("no input received on stdin")
}

// readPassword reads hidden input when stdin is a terminal, falling back to
// a plain line read for piped input.
func readPassword(prompt string) (string, error) {
	fi, err := os.Stdin.Stat()
	if err != nil {
		return "", fmt.Errorf("checking stdin: %w", err)
	}

	// Piped input
	if (fi.Mode() & os.ModeCharDevice) == 0 {
		return readLine("")
	}

	fmt.Print(prompt)
	pwBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println() // newline after hidden input
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}

	return string(pwBytes), nil
}
