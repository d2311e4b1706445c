// Package bucketscmder provides the buckets commands for managing AIVEILIX
// knowledge buckets.
package bucketscmder

import (
	"github.com/spf13/cobra"
)

const bucketsLongDesc string = `Manage AIVEILIX knowledge buckets.

A bucket groups related documents and gives the chat assistant its scope.

Examples:
  veilix buckets list
  veilix buckets create research --description "papers and notes"
  veilix buckets show <bucket-id>
  veilix buckets stats
  veilix buckets rm <bucket-id>`

const bucketsShortDesc string = "Manage knowledge buckets"

func NewBucketsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "buckets",
		Short: bucketsShortDesc,
		Long:  bucketsLongDesc,
	}

	cmd.AddCommand(newListCmd())
	cmd.AddCommand(newCreateCmd())
	cmd.AddCommand(newShowCmd())
	cmd.AddCommand(newStatsCmd())
	cmd.AddCommand(newRmCmd())

	return cmd
}
