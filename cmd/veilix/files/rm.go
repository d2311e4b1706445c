package filescmder

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jutt313/aiveilix-go/cmd/veilix/cmdutil"
	"github.com/jutt313/aiveilix-go/pkg/cliui"
)

func newRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <bucket-id> <file-id>",
		Short: "Delete a file from a bucket",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRm(cmd, args[0], args[1])
		},
	}
}

func runRm(cmd *cobra.Command, bucketID, fileID string) error {
	cfg, err := cmdutil.LoadConfig(cmd)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	client, err := cmdutil.NewClient(cmd, cfg)
	if err != nil {
		return err
	}

	if err := client.DeleteFile(cmd.Context(), bucketID, fileID); err != nil {
		return err
	}

	fmt.Printf("\n  %s Deleted file %s\n", cliui.SuccessMark, cliui.IDStyle.Render(fileID))
	return nil
}
