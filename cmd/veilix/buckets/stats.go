package bucketscmder

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jutt313/aiveilix-go/cmd/veilix/cmdutil"
	"github.com/jutt313/aiveilix-go/pkg/cliui"
	"github.com/jutt313/aiveilix-go/pkg/utils"
)

func newStatsCmd() *cobra.Command {
	var activity bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show account-wide storage stats",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runStats(cmd, activity)
		},
	}

	cmd.Flags().BoolVar(&activity, "activity", false, "Show the recent per-day activity series")

	return cmd
}

func runStats(cmd *cobra.Command, activity bool) error {
	cfg, err := cmdutil.LoadConfig(cmd)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	client, err := cmdutil.NewClient(cmd, cfg)
	if err != nil {
		return err
	}

	stats, err := client.DashboardStats(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Printf("  %s %d\n", cliui.KeyStyle.Render("Buckets:"), stats.TotalBuckets)
	fmt.Printf("  %s %d\n", cliui.KeyStyle.Render("Files:"), stats.TotalFiles)
	fmt.Printf("  %s %s\n", cliui.KeyStyle.Render("Storage:"), utils.FormatBytes(stats.TotalStorageBytes))

	if !activity {
		return nil
	}

	points, err := client.ActivityData(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Println()
	for _, p := range points {
		fmt.Printf("  %s  %s\n",
			cliui.DimStyle.Render(p.Date),
			fmt.Sprintf("%d files, %d buckets, %.1f MB", p.Files, p.Buckets, p.Storage),
		)
	}
	return nil
}
