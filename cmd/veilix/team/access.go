package teamcmder

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jutt313/aiveilix-go/cmd/veilix/cmdutil"
	"github.com/jutt313/aiveilix-go/pkg/api"
	"github.com/jutt313/aiveilix-go/pkg/cliui"
	"github.com/jutt313/aiveilix-go/pkg/utils"
)

const assignLongDesc string = `Grant a member access to a bucket.

View access is always granted; chat, upload and delete are opt-in flags.
Assigning a bucket the member already has replaces its permissions.

Examples:
  veilix team assign <member-id> <bucket-id>
  veilix team assign <member-id> <bucket-id> --chat --upload`

func newAssignCmd() *cobra.Command {
	var chat, upload, del bool

	cmd := &cobra.Command{
		Use:   "assign <member-id> <bucket-id>",
		Short: "Grant a member access to a bucket",
		Long:  assignLongDesc,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAssign(cmd, args[0], args[1], chat, upload, del)
		},
	}

	cmd.Flags().BoolVar(&chat, "chat", false, "Allow chatting with the bucket")
	cmd.Flags().BoolVar(&upload, "upload", false, "Allow uploading files")
	cmd.Flags().BoolVar(&del, "delete", false, "Allow deleting files")

	return cmd
}

func runAssign(cmd *cobra.Command, memberID, bucketID string, chat, upload, del bool) error {
	cfg, err := cmdutil.LoadConfig(cmd)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	client, err := cmdutil.NewClient(cmd, cfg)
	if err != nil {
		return err
	}

	perms := []api.BucketPermission{{
		BucketID:  bucketID,
		CanView:   true,
		CanChat:   chat,
		CanUpload: upload,
		CanDelete: del,
	}}

	if err := client.AssignBuckets(cmd.Context(), memberID, perms); err != nil {
		return err
	}

	granted := []string{"view"}
	if chat {
		granted = append(granted, "chat")
	}
	if upload {
		granted = append(granted, "upload")
	}
	if del {
		granted = append(granted, "delete")
	}

	fmt.Printf("\n  %s Granted %s on %s\n",
		cliui.SuccessMark,
		cliui.NameStyle.Render(strings.Join(granted, ", ")),
		cliui.IDStyle.Render(bucketID),
	)
	return nil
}

func newBucketsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "buckets <member-id>",
		Short: "List the buckets a member can reach",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuckets(cmd, args[0])
		},
	}
}

func runBuckets(cmd *cobra.Command, memberID string) error {
	cfg, err := cmdutil.LoadConfig(cmd)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	client, err := cmdutil.NewClient(cmd, cfg)
	if err != nil {
		return err
	}

	access, err := client.MemberBuckets(cmd.Context(), memberID)
	if err != nil {
		return err
	}

	fmt.Println()
	if len(access) == 0 {
		fmt.Printf("  %s\n", cliui.DimStyle.Render("No buckets assigned."))
		return nil
	}

	for _, a := range access {
		perms := make([]string, 0, 4)
		if a.CanView {
			perms = append(perms, "view")
		}
		if a.CanChat {
			perms = append(perms, "chat")
		}
		if a.CanUpload {
			perms = append(perms, "upload")
		}
		if a.CanDelete {
			perms = append(perms, "delete")
		}

		name := a.BucketName
		if name == "" {
			name = a.BucketID
		}
		fmt.Printf("  %s %s %s\n",
			cliui.IDStyle.Render(a.BucketID),
			cliui.NameStyle.Render(name),
			cliui.DimStyle.Render("["+strings.Join(perms, ",")+"]"),
		)
	}
	return nil
}

func newActivityCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "activity",
		Short: "Show the team audit log",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runActivity(cmd)
		},
	}
}

func runActivity(cmd *cobra.Command) error {
	cfg, err := cmdutil.LoadConfig(cmd)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	client, err := cmdutil.NewClient(cmd, cfg)
	if err != nil {
		return err
	}

	entries, err := client.TeamActivity(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Println()
	if len(entries) == 0 {
		fmt.Printf("  %s\n", cliui.DimStyle.Render("No team activity yet."))
		return nil
	}

	for _, e := range entries {
		who := e.MemberName
		if who == "" {
			who = "someone"
		}
		what := e.ActionType
		if e.ResourceName != "" {
			what += " " + utils.Truncate(e.ResourceName, 40)
		}
		fmt.Printf("  %s %s %s\n",
			cliui.DimStyle.Render(e.CreatedAt.Local().Format("2006-01-02 15:04")),
			cliui.NameStyle.Render(who),
			what,
		)
	}
	return nil
}
