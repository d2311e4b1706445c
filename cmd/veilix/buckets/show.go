package bucketscmder

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jutt313/aiveilix-go/cmd/veilix/cmdutil"
	"github.com/jutt313/aiveilix-go/pkg/cliui"
	"github.com/jutt313/aiveilix-go/pkg/utils"
)

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <bucket-id>",
		Short: "Show one bucket's details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, args[0])
		},
	}
}

func runShow(cmd *cobra.Command, bucketID string) error {
	cfg, err := cmdutil.LoadConfig(cmd)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	client, err := cmdutil.NewClient(cmd, cfg)
	if err != nil {
		return err
	}

	b, err := client.Bucket(cmd.Context(), bucketID)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Printf("  %s %s\n", cliui.KeyStyle.Render("Name:"), cliui.NameStyle.Render(b.Name))
	fmt.Printf("  %s %s\n", cliui.KeyStyle.Render("ID:"), cliui.IDStyle.Render(b.ID))
	if b.Description != "" {
		fmt.Printf("  %s %s\n", cliui.KeyStyle.Render("Description:"), b.Description)
	}
	fmt.Printf("  %s %d\n", cliui.KeyStyle.Render("Files:"), b.FileCount)
	fmt.Printf("  %s %s\n", cliui.KeyStyle.Render("Size:"), utils.FormatBytes(b.TotalSizeBytes))
	fmt.Printf("  %s %s\n", cliui.KeyStyle.Render("Created:"), cliui.DimStyle.Render(b.CreatedAt.Local().Format("2006-01-02 15:04")))
	return nil
}
