package bucketscmder

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jutt313/aiveilix-go/cmd/veilix/cmdutil"
	"github.com/jutt313/aiveilix-go/pkg/cliui"
	"github.com/jutt313/aiveilix-go/pkg/utils"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your knowledge buckets",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd)
		},
	}
}

func runList(cmd *cobra.Command) error {
	cfg, err := cmdutil.LoadConfig(cmd)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	client, err := cmdutil.NewClient(cmd, cfg)
	if err != nil {
		return err
	}

	page, err := client.Buckets(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Println()
	if len(page.Buckets) == 0 {
		fmt.Printf("  %s\n", cliui.DimStyle.Render("No buckets yet. Create one with \"veilix buckets create <name>\"."))
		return nil
	}

	for _, b := range page.Buckets {
		fmt.Printf("  %s %s %s\n",
			cliui.IDStyle.Render(b.ID),
			cliui.NameStyle.Render(b.Name),
			cliui.DimStyle.Render(fmt.Sprintf("(%d files, %s)", b.FileCount, utils.FormatBytes(b.TotalSizeBytes))),
		)
		if b.Description != "" {
			fmt.Printf("    %s\n", cliui.DimStyle.Render(utils.Truncate(b.Description, 80)))
		}
	}

	fmt.Printf("\n  %s %d buckets\n", cliui.KeyStyle.Render("Total:"), page.Total)
	return nil
}
