package chatcmder

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jutt313/aiveilix-go/cmd/veilix/cmdutil"
	"github.com/jutt313/aiveilix-go/pkg/cliui"
	"github.com/jutt313/aiveilix-go/pkg/config"
	"github.com/jutt313/aiveilix-go/pkg/utils"
)

func newListCmd() *cobra.Command {
	var bucketID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a bucket's conversations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConversationList(cmd, bucketID)
		},
	}

	config.AddStringFlag(cmd, config.Flags, config.FlagDefaultBucket, &bucketID)

	return cmd
}

func runConversationList(cmd *cobra.Command, bucketID string) error {
	cfg, err := cmdutil.LoadConfig(cmd)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if bucketID == "" {
		bucketID = cfg.Chat.DefaultBucket
	}
	if bucketID == "" {
		return errors.New("no bucket given: pass --bucket or set chat.default_bucket")
	}

	client, err := cmdutil.NewClient(cmd, cfg)
	if err != nil {
		return err
	}

	conversations, err := client.Conversations(cmd.Context(), bucketID)
	if err != nil {
		return err
	}

	fmt.Println()
	if len(conversations) == 0 {
		fmt.Printf("  %s\n", cliui.DimStyle.Render("No conversations yet."))
		return nil
	}

	for _, conv := range conversations {
		title := conv.Title
		if title == "" {
			title = "(untitled)"
		}
		fmt.Printf("  %s %s %s\n",
			cliui.IDStyle.Render(conv.ID),
			cliui.NameStyle.Render(utils.Truncate(title, 60)),
			cliui.DimStyle.Render(conv.UpdatedAt.Local().Format("2006-01-02 15:04")),
		)
	}
	return nil
}
