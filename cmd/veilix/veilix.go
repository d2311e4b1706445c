// Package veilixcmder
package veilixcmder

import (
	"github.com/spf13/cobra"

	authcmder "github.com/jutt313/aiveilix-go/cmd/veilix/auth"
	bucketscmder "github.com/jutt313/aiveilix-go/cmd/veilix/buckets"
	chatcmder "github.com/jutt313/aiveilix-go/cmd/veilix/chat"
	configcmder "github.com/jutt313/aiveilix-go/cmd/veilix/config"
	filescmder "github.com/jutt313/aiveilix-go/cmd/veilix/files"
	keyscmder "github.com/jutt313/aiveilix-go/cmd/veilix/keys"
	notificationscmder "github.com/jutt313/aiveilix-go/cmd/veilix/notifications"
	teamcmder "github.com/jutt313/aiveilix-go/cmd/veilix/team"
)

const veilixLongDesc string = `Veilix is the command line client for AIVEILIX knowledge buckets.

Sign in, manage buckets and their files, and chat with the assistant
over your documents:
  veilix auth login            Sign in with email and password
  veilix buckets list          List your knowledge buckets
  veilix files upload          Upload documents into a bucket
  veilix chat                  Chat with a bucket's assistant`

const veilixShortDesc string = "Veilix - AIVEILIX knowledge buckets from the terminal"

func NewVeilixCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "veilix",
		Short: veilixShortDesc,
		Long:  veilixLongDesc,
	}

	// Global flags
	cmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")
	cmd.PersistentFlags().String("config-dir", "", "Override path to .veilix/ config directory")
	cmd.PersistentFlags().String("api-target", "", "AIVEILIX API base URL (overrides api.target)")

	// Add subcommands
	cmd.AddCommand(authcmder.NewAuthCmd())
	cmd.AddCommand(bucketscmder.NewBucketsCmd())
	cmd.AddCommand(filescmder.NewFilesCmd())
	cmd.AddCommand(chatcmder.NewChatCmd())
	cmd.AddCommand(keyscmder.NewKeysCmd())
	cmd.AddCommand(teamcmder.NewTeamCmd())
	cmd.AddCommand(notificationscmder.NewNotificationsCmd())
	cmd.AddCommand(configcmder.NewConfigCmd())

	return cmd
}
