package filescmder

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jutt313/aiveilix-go/cmd/veilix/cmdutil"
	"github.com/jutt313/aiveilix-go/pkg/api"
	"github.com/jutt313/aiveilix-go/pkg/cliui"
	"github.com/jutt313/aiveilix-go/pkg/utils"
)

const searchLongDesc string = `Search a bucket's documents.

The default search matches keywords against chunks, summaries and file
names. With --semantic the query is embedded and matched by meaning
instead, which finds relevant passages that share no words with the query.

Examples:
  veilix files search <bucket-id> "quarterly revenue"
  veilix files search <bucket-id> "how do refunds work" --semantic`

func newSearchCmd() *cobra.Command {
	var semantic bool

	cmd := &cobra.Command{
		Use:   "search <bucket-id> <query>",
		Short: "Search a bucket's documents",
		Long:  searchLongDesc,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, args[0], args[1], semantic)
		},
	}

	cmd.Flags().BoolVar(&semantic, "semantic", false, "Search by meaning instead of keywords")

	return cmd
}

func runSearch(cmd *cobra.Command, bucketID, query string, semantic bool) error {
	cfg, err := cmdutil.LoadConfig(cmd)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	client, err := cmdutil.NewClient(cmd, cfg)
	if err != nil {
		return err
	}

	var page *api.SearchPage
	if semantic {
		page, err = client.SemanticSearch(cmd.Context(), bucketID, query)
	} else {
		page, err = client.Search(cmd.Context(), bucketID, query)
	}
	if err != nil {
		return err
	}

	fmt.Println()
	if len(page.Results) == 0 {
		fmt.Printf("  %s\n", cliui.DimStyle.Render("No matches."))
		return nil
	}

	for _, r := range page.Results {
		score := ""
		if r.RelevanceScore > 0 {
			score = cliui.DimStyle.Render(fmt.Sprintf(" %.2f", r.RelevanceScore))
		}
		fmt.Printf("  %s %s%s\n",
			cliui.NameStyle.Render(r.FileName),
			cliui.DimStyle.Render("["+r.MatchType+"]"),
			score,
		)
		fmt.Printf("    %s\n", utils.Truncate(r.Content, 160))
	}

	fmt.Printf("\n  %s %d matches\n", cliui.KeyStyle.Render("Total:"), page.Total)
	return nil
}
