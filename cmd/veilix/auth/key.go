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

const keyLongDesc string = `Store an AIVEILIX API key for authentication.

An API key authenticates without a login session, which suits scripts and
shared machines. A stored session token still takes precedence when both
are present; use "veilix auth logout" to drop the session.

Examples:
  veilix auth key                Prompt for an API key
  echo $KEY | veilix auth key    Pipe an API key from stdin`

func newKeyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "key",
		Short: "Store an API key",
		Long:  keyLongDesc,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runKey(cmd)
		},
	}
}

func runKey(cmd *cobra.Command) error {
	apiKey, err := readAPIKey()
	if err != nil {
		return err
	}

	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return errors.New("API key cannot be empty")
	}

	mgr, err := credentials.NewManager(cmdutil.ConfigDir(cmd))
	if err != nil {
		return fmt.Errorf("loading credentials: %w", err)
	}

	if err := mgr.SetAPIKey(apiKey); err != nil {
		return err
	}

	fmt.Printf("\n  %s Stored API key %s\n",
		cliui.SuccessMark,
		cliui.DimStyle.Render("(also honored as "+credentials.EnvAPIKey+")"),
	)
	return nil
}

// readAPIKey reads an API key from stdin. If stdin is a pipe, it reads the
// first line. Otherwise, it prompts interactively with hidden input.
func readAPIKey() (string, error) {
	fi, err := os.Stdin.Stat()
	if err != nil {
		return "", fmt.Errorf("checking stdin: %w", err)
	}

	// Piped input
	if (fi.Mode() & os.ModeCharDevice) == 0 {
		scanner := bufio.NewScanner(os.Stdin)
		if scanner.Scan() {
			return scanner.Text(), nil
		}
		if err := scanner.Err(); err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return "", errors.New("no input received on stdin")
	}

	// Interactive terminal
	fmt.Print("Enter API key: ")

	keyBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println() // newline after hidden input
	if err != nil {
		return "", fmt.Errorf("reading API key: %w", err)
	}

	return string(keyBytes), nil
}
