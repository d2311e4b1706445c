package filescmder

import (
	"fmt"
	"os"
	"sync"

	"github.com/spf13/cobra"

	"github.com/jutt313/aiveilix-go/cmd/veilix/cmdutil"
	"github.com/jutt313/aiveilix-go/pkg/api"
	"github.com/jutt313/aiveilix-go/pkg/cliui"
)

const uploadLongDesc string = `Upload one or more local files into a bucket.

Multiple files upload concurrently through a bounded worker pool. Each
file's outcome is reported as it completes; the command exits non-zero if
any upload failed.

Examples:
  veilix files upload <bucket-id> notes.md
  veilix files upload <bucket-id> *.pdf --workers 5`

func newUploadCmd() *cobra.Command {
	var workers int

	cmd := &cobra.Command{
		Use:   "upload <bucket-id> <path>...",
		Short: "Upload files into a bucket",
		Long:  uploadLongDesc,
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUpload(cmd, args[0], args[1:], workers)
		},
	}

	cmd.Flags().IntVar(&workers, "workers", 3, "Number of concurrent uploads")

	return cmd
}

func runUpload(cmd *cobra.Command, bucketID string, paths []string, workers int) error {
	cfg, err := cmdutil.LoadConfig(cmd)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	client, err := cmdutil.NewClient(cmd, cfg)
	if err != nil {
		return err
	}

	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			return fmt.Errorf("cannot read %s: %w", p, err)
		}
	}

	var (
		mu     sync.Mutex
		failed int
	)

	uploader := api.NewUploader(cmd.Context(), &api.UploaderConfig{
		Client:     client,
		NumWorkers: workers,
		OnOutcome: func(o api.UploadOutcome) {
			mu.Lock()
			defer mu.Unlock()

			if o.Err != nil {
				failed++
				fmt.Printf("  %s %s %s\n", cliui.FailMark, o.Job.Path, cliui.DimStyle.Render(o.Err.Error()))
				return
			}
			fmt.Printf("  %s %s %s\n",
				cliui.SuccessMark,
				cliui.NameStyle.Render(o.Result.Name),
				cliui.DimStyle.Render("("+o.Result.Status+")"),
			)
		},
	})

	fmt.Println()
	for _, p := range paths {
		if !uploader.Enqueue(api.UploadJob{BucketID: bucketID, Path: p}) {
			mu.Lock()
			failed++
			mu.Unlock()
			fmt.Printf("  %s %s %s\n", cliui.FailMark, p, cliui.DimStyle.Render("queue full"))
		}
	}
	uploader.Close()

	if failed > 0 {
		return fmt.Errorf("%d of %d uploads failed", failed, len(paths))
	}

	fmt.Printf("\n  %s Uploaded %d files\n", cliui.SuccessMark, len(paths))
	return nil
}
