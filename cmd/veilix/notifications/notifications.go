// Package notificationscmder provides the notifications commands for the
// in-app notification feed.
package notificationscmder

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jutt313/aiveilix-go/cmd/veilix/cmdutil"
	"github.com/jutt313/aiveilix-go/pkg/cliui"
	"github.com/jutt313/aiveilix-go/pkg/utils"
)

const notificationsLongDesc string = `Read and manage the notification feed.

Examples:
  veilix notifications list
  veilix notifications list --unread
  veilix notifications read <notification-id>
  veilix notifications read --all
  veilix notifications rm <notification-id>
  veilix notifications rm --read`

const notificationsShortDesc string = "Read and manage notifications"

func NewNotificationsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notifications",
		Short: notificationsShortDesc,
		Long:  notificationsLongDesc,
	}

	cmd.AddCommand(newListCmd())
	cmd.AddCommand(newReadCmd())
	cmd.AddCommand(newRmCmd())

	return cmd
}

func newListCmd() *cobra.Command {
	var unread bool
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List notifications, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd, unread, limit)
		},
	}

	cmd.Flags().BoolVar(&unread, "unread", false, "Only show unread notifications")
	cmd.Flags().IntVar(&limit, "limit", 50, "Maximum notifications to show")

	return cmd
}

func runList(cmd *cobra.Command, unread bool, limit int) error {
	cfg, err := cmdutil.LoadConfig(cmd)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	client, err := cmdutil.NewClient(cmd, cfg)
	if err != nil {
		return err
	}

	page, err := client.Notifications(cmd.Context(), limit, 0, unread)
	if err != nil {
		return err
	}

	fmt.Println()
	if len(page.Notifications) == 0 {
		fmt.Printf("  %s\n", cliui.DimStyle.Render("Nothing here."))
		return nil
	}

	for _, n := range page.Notifications {
		marker := cliui.DimStyle.Render(" ")
		if !n.IsRead {
			marker = cliui.WarnStyle.Render("●")
		}
		fmt.Printf("  %s %s %s\n",
			marker,
			cliui.NameStyle.Render(n.Title),
			cliui.IDStyle.Render(n.ID),
		)
		fmt.Printf("    %s\n", cliui.DimStyle.Render(utils.Truncate(n.Message, 100)))
	}

	fmt.Printf("\n  %s %d unread\n", cliui.KeyStyle.Render("Unread:"), page.UnreadCount)
	return nil
}

func newReadCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "read [notification-id]",
		Short: "Mark notifications as read",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRead(cmd, args, all)
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Mark every notification as read")

	return cmd
}

func runRead(cmd *cobra.Command, args []string, all bool) error {
	cfg, err := cmdutil.LoadConfig(cmd)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	client, err := cmdutil.NewClient(cmd, cfg)
	if err != nil {
		return err
	}

	if all {
		if err := client.MarkAllNotificationsRead(cmd.Context()); err != nil {
			return err
		}
		fmt.Printf("\n  %s Marked all notifications read\n", cliui.SuccessMark)
		return nil
	}

	if len(args) == 0 {
		return fmt.Errorf("notification id required (or pass --all)")
	}

	if err := client.MarkNotificationRead(cmd.Context(), args[0]); err != nil {
		return err
	}
	fmt.Printf("\n  %s Marked read\n", cliui.SuccessMark)
	return nil
}

func newRmCmd() *cobra.Command {
	var read bool

	cmd := &cobra.Command{
		Use:   "rm [notification-id]",
		Short: "Delete notifications",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRm(cmd, args, read)
		},
	}

	cmd.Flags().BoolVar(&read, "read", false, "Delete every read notification")

	return cmd
}

func runRm(cmd *cobra.Command, args []string, read bool) error {
	cfg, err := cmdutil.LoadConfig(cmd)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	client, err := cmdutil.NewClient(cmd, cfg)
	if err != nil {
		return err
	}

	if read {
		if err := client.DeleteReadNotifications(cmd.Context()); err != nil {
			return err
		}
		fmt.Printf("\n  %s Deleted read notifications\n", cliui.SuccessMark)
		return nil
	}

	if len(args) == 0 {
		return fmt.Errorf("notification id required (or pass --read)")
	}

	if err := client.DeleteNotification(cmd.Context(), args[0]); err != nil {
		return err
	}
	fmt.Printf("\n  %s Deleted notification\n", cliui.SuccessMark)
	return nil
}
