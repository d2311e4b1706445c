package bucketscmder

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jutt313/aiveilix-go/cmd/veilix/cmdutil"
	"github.com/jutt313/aiveilix-go/pkg/cliui"
)

func newCreateCmd() *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a knowledge bucket",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCreate(cmd, args[0], description)
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "Bucket description")

	return cmd
}

func runCreate(cmd *cobra.Command, name, description string) error {
	cfg, err := cmdutil.LoadConfig(cmd)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	client, err := cmdutil.NewClient(cmd, cfg)
	if err != nil {
		return err
	}

	bucket, err := client.CreateBucket(cmd.Context(), name, description)
	if err != nil {
		return err
	}

	fmt.Printf("\n  %s Created bucket %s %s\n",
		cliui.SuccessMark,
		cliui.NameStyle.Render(bucket.Name),
		cliui.IDStyle.Render(bucket.ID),
	)
	return nil
}
