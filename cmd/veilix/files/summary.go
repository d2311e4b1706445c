package filescmder

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jutt313/aiveilix-go/cmd/veilix/cmdutil"
	"github.com/jutt313/aiveilix-go/pkg/cliui"
)

const summaryLongDesc string = `Show or replace a file's stored summary.

Without flags the current summary is printed as rendered markdown.
With --set the summary is replaced by the contents of the given file,
or by the flag value itself when it is not a readable path.

Examples:
  veilix files summary <bucket-id> <file-id>
  veilix files summary <bucket-id> <file-id> --set new-summary.md
  veilix files summary <bucket-id> <file-id> --set "One-line summary."`

func newSummaryCmd() *cobra.Command {
	var set string

	cmd := &cobra.Command{
		Use:   "summary <bucket-id> <file-id>",
		Short: "Show or replace a file's summary",
		Long:  summaryLongDesc,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSummary(cmd, args[0], args[1], set)
		},
	}

	cmd.Flags().StringVar(&set, "set", "", "Replace the summary (path to a file, or literal text)")

	return cmd
}

func runSummary(cmd *cobra.Command, bucketID, fileID, set string) error {
	cfg, err := cmdutil.LoadConfig(cmd)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	client, err := cmdutil.NewClient(cmd, cfg)
	if err != nil {
		return err
	}

	if set != "" {
		content := set
		if data, err := os.ReadFile(set); err == nil {
			content = string(data)
		}

		if err := client.UpdateSummary(cmd.Context(), bucketID, fileID, content); err != nil {
			return err
		}
		fmt.Printf("\n  %s Summary updated\n", cliui.SuccessMark)
		return nil
	}

	content, err := client.FileContent(cmd.Context(), bucketID, fileID)
	if err != nil {
		return err
	}

	summary, _ := content["summary"].(string)
	if summary == "" {
		fmt.Printf("\n  %s\n", cliui.DimStyle.Render("No summary stored for this file."))
		return nil
	}

	rendered, err := cliui.RenderMarkdown(summary)
	if err != nil {
		// Fall back to the raw text.
		fmt.Println(summary)
		return nil
	}
	fmt.Print(rendered)
	return nil
}
