// Package filescmder provides the files commands for uploading, searching
// and managing documents inside a bucket.
package filescmder

import (
	"github.com/spf13/cobra"
)

const filesLongDesc string = `Manage the documents inside a knowledge bucket.

Uploaded files are processed asynchronously server-side: text extraction,
chunking and indexing happen after the upload returns, so a file may show
status "processing" for a while.

Examples:
  veilix files list <bucket-id>
  veilix files upload <bucket-id> notes.md paper.pdf
  veilix files search <bucket-id> "retention policy"
  veilix files search <bucket-id> "retention policy" --semantic
  veilix files rm <bucket-id> <file-id>`

const filesShortDesc string = "Manage documents inside a bucket"

func NewFilesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "files",
		Short: filesShortDesc,
		Long:  filesLongDesc,
	}

	cmd.AddCommand(newListCmd())
	cmd.AddCommand(newUploadCmd())
	cmd.AddCommand(newSearchCmd())
	cmd.AddCommand(newSummaryCmd())
	cmd.AddCommand(newRmCmd())

	return cmd
}
