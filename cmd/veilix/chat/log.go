package chatcmder

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jutt313/aiveilix-go/cmd/veilix/cmdutil"
	"github.com/jutt313/aiveilix-go/pkg/cliui"
	"github.com/jutt313/aiveilix-go/pkg/config"
	"github.com/jutt313/aiveilix-go/pkg/history"
)

const logLongDesc string = `Show a conversation's messages.

By default the messages are fetched from the server. With --local the turns
come from the local SQLite history instead, which works offline but only
contains turns chatted from this machine.

Examples:
  veilix chat log <conversation-id>
  veilix chat log <conversation-id> --local`

func newLogCmd() *cobra.Command {
	var local bool

	cmd := &cobra.Command{
		Use:   "log <conversation-id>",
		Short: "Show a conversation's messages",
		Long:  logLongDesc,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLog(cmd, args[0], local)
		},
	}

	cmd.Flags().BoolVar(&local, "local", false, "Read from the local history instead of the server")

	return cmd
}

func runLog(cmd *cobra.Command, conversationID string, local bool) error {
	cfg, err := cmdutil.LoadConfig(cmd)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if local {
		return runLocalLog(cmd, cfg, conversationID)
	}

	client, err := cmdutil.NewClient(cmd, cfg)
	if err != nil {
		return err
	}

	messages, err := client.ConversationMessages(cmd.Context(), conversationID)
	if err != nil {
		return err
	}

	fmt.Println()
	for _, msg := range messages {
		prompt := assistantPrompt
		if msg.Role == "user" {
			prompt = userPrompt
		}
		fmt.Printf("%s%s\n\n", prompt, msg.Content)
	}
	return nil
}

func runLocalLog(cmd *cobra.Command, cfg *config.Config, conversationID string) error {
	store, err := openHistory(cmdutil.ConfigDir(cmd), cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	turns, err := store.Conversation(cmd.Context(), conversationID)
	if errors.Is(err, history.ErrNotFound) {
		fmt.Printf("\n  %s\n", cliui.DimStyle.Render("No local turns for this conversation."))
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Println()
	for _, t := range turns {
		fmt.Printf("%s%s\n", userPrompt, t.Prompt)
		fmt.Printf("%s%s\n\n", assistantPrompt, t.Answer)
	}
	return nil
}
