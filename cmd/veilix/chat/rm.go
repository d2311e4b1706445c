package chatcmder

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jutt313/aiveilix-go/cmd/veilix/cmdutil"
	"github.com/jutt313/aiveilix-go/pkg/cliui"
)

const chatRmLongDesc string = `Delete a conversation and all its messages.

The server-side conversation is removed; matching turns in the local
history are dropped as well when history is enabled.`

func newRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <conversation-id>",
		Short: "Delete a conversation",
		Long:  chatRmLongDesc,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConversationRm(cmd, args[0])
		},
	}
}

func runConversationRm(cmd *cobra.Command, conversationID string) error {
	cfg, err := cmdutil.LoadConfig(cmd)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	client, err := cmdutil.NewClient(cmd, cfg)
	if err != nil {
		return err
	}

	if err := client.DeleteConversation(cmd.Context(), conversationID); err != nil {
		return err
	}

	if cfg.History.Enabled {
		store, err := openHistory(cmdutil.ConfigDir(cmd), cfg)
		if err == nil {
			defer store.Close()
			if err := store.DeleteConversation(cmd.Context(), conversationID); err != nil {
				cmdutil.NewLogger(cmd).Debug("pruning local history failed", "err", err)
			}
		}
	}

	fmt.Printf("\n  %s Deleted conversation %s\n", cliui.SuccessMark, cliui.IDStyle.Render(conversationID))
	return nil
}
