package bucketscmder

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jutt313/aiveilix-go/cmd/veilix/cmdutil"
	"github.com/jutt313/aiveilix-go/pkg/cliui"
)

const rmLongDesc string = `Delete a bucket and every file in it.

This cannot be undone. Pass --yes to skip the confirmation prompt.

Examples:
  veilix buckets rm <bucket-id>
  veilix buckets rm <bucket-id> --yes`

func newRmCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "rm <bucket-id>",
		Short: "Delete a bucket",
		Long:  rmLongDesc,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRm(cmd, args[0], yes)
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}

func runRm(cmd *cobra.Command, bucketID string, yes bool) error {
	cfg, err := cmdutil.LoadConfig(cmd)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	client, err := cmdutil.NewClient(cmd, cfg)
	if err != nil {
		return err
	}

	if !yes {
		fmt.Printf("Delete bucket %s and all its files? [y/N] ", bucketID)
		var answer string
		fmt.Scanln(&answer)
		if !strings.EqualFold(strings.TrimSpace(answer), "y") {
			fmt.Printf("  %s\n", cliui.DimStyle.Render("Aborted."))
			return nil
		}
	}

	if err := client.DeleteBucket(cmd.Context(), bucketID); err != nil {
		return err
	}

	fmt.Printf("\n  %s Deleted bucket %s\n", cliui.SuccessMark, cliui.IDStyle.Render(bucketID))
	return nil
}
