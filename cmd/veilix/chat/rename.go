package chatcmder

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jutt313/aiveilix-go/cmd/veilix/cmdutil"
	"github.com/jutt313/aiveilix-go/pkg/cliui"
)

func newRenameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename <conversation-id> <title>",
		Short: "Rename a conversation",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRename(cmd, args[0], args[1])
		},
	}
}

func runRename(cmd *cobra.Command, conversationID, title string) error {
	cfg, err := cmdutil.LoadConfig(cmd)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	client, err := cmdutil.NewClient(cmd, cfg)
	if err != nil {
		return err
	}

	if err := client.RenameConversation(cmd.Context(), conversationID, title); err != nil {
		return err
	}

	fmt.Printf("\n  %s Renamed conversation to %s\n", cliui.SuccessMark, cliui.NameStyle.Render(title))
	return nil
}
