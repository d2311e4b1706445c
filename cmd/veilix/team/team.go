// Package teamcmder provides the team commands for managing delegated
// member accounts and their bucket permissions.
package teamcmder

import (
	"github.com/spf13/cobra"
)

const teamLongDesc string = `Manage your team's delegated member accounts.

Team members sign in with their own credentials and see only the buckets
you grant them, with per-bucket view/chat/upload/delete permissions.

Examples:
  veilix team list
  veilix team add "Sam Harper" --email sam@example.com
  veilix team assign <member-id> <bucket-id> --chat --upload
  veilix team buckets <member-id>
  veilix team activity
  veilix team rm <member-id>`

const teamShortDesc string = "Manage team members and their bucket access"

func NewTeamCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "team",
		Short: teamShortDesc,
		Long:  teamLongDesc,
	}

	cmd.AddCommand(newListCmd())
	cmd.AddCommand(newAddCmd())
	cmd.AddCommand(newAssignCmd())
	cmd.AddCommand(newBucketsCmd())
	cmd.AddCommand(newActivityCmd())
	cmd.AddCommand(newRmCmd())

	return cmd
}
