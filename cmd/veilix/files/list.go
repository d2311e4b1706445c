package filescmder

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jutt313/aiveilix-go/cmd/veilix/cmdutil"
	"github.com/jutt313/aiveilix-go/pkg/cliui"
	"github.com/jutt313/aiveilix-go/pkg/utils"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <bucket-id>",
		Short: "List the files in a bucket",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, args[0])
		},
	}
}

func runList(cmd *cobra.Command, bucketID string) error {
	cfg, err := cmdutil.LoadConfig(cmd)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	client, err := cmdutil.NewClient(cmd, cfg)
	if err != nil {
		return err
	}

	page, err := client.Files(cmd.Context(), bucketID)
	if err != nil {
		return err
	}

	fmt.Println()
	if len(page.Files) == 0 {
		fmt.Printf("  %s\n", cliui.DimStyle.Render("No files yet. Upload some with \"veilix files upload\"."))
		return nil
	}

	for _, f := range page.Files {
		status := cliui.DimStyle.Render(f.Status)
		if f.Status == "failed" {
			status = cliui.WarnStyle.Render(f.Status)
		}
		fmt.Printf("  %s %s %s %s\n",
			cliui.IDStyle.Render(f.ID),
			cliui.NameStyle.Render(f.Name),
			cliui.DimStyle.Render(utils.FormatBytes(f.SizeBytes)),
			status,
		)
	}

	fmt.Printf("\n  %s %d files\n", cliui.KeyStyle.Render("Total:"), page.Total)
	return nil
}
