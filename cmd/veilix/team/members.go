package teamcmder

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jutt313/aiveilix-go/cmd/veilix/cmdutil"
	"github.com/jutt313/aiveilix-go/pkg/cliui"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List team members",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd)
		},
	}
}

func runList(cmd *cobra.Command) error {
	cfg, err := cmdutil.LoadConfig(cmd)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	client, err := cmdutil.NewClient(cmd, cfg)
	if err != nil {
		return err
	}

	members, err := client.TeamMembers(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Println()
	if len(members) == 0 {
		fmt.Printf("  %s\n", cliui.DimStyle.Render("No team members. Add one with \"veilix team add\"."))
		return nil
	}

	for _, m := range members {
		state := cliui.DimStyle.Render("active")
		if !m.IsActive {
			state = cliui.WarnStyle.Render("inactive")
		}
		fmt.Printf("  %s %s %s %s %s\n",
			cliui.IDStyle.Render(m.ID),
			cliui.NameStyle.Render(m.Name),
			cliui.DimStyle.Render(m.RealEmail),
			cliui.DimStyle.Render(fmt.Sprintf("(%d buckets)", m.BucketCount)),
			state,
		)
	}
	return nil
}

const addLongDesc string = `Add a delegated team member.

The member gets their own login under your account. Their password is
prompted with hidden input (or read from stdin when piped).

Examples:
  veilix team add "Sam Harper" --email sam@example.com
  veilix team add "Sam Harper" --email sam@example.com --color "#FF5733"`

func newAddCmd() *cobra.Command {
	var email, color string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a team member",
		Long:  addLongDesc,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(cmd, args[0], email, color)
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "Member's real email (required)")
	cmd.Flags().StringVar(&color, "color", "", "Display color (hex)")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func runAdd(cmd *cobra.Command, name, email, color string) error {
	password, err := readMemberPassword()
	if err != nil {
		return err
	}

	cfg, err := cmdutil.LoadConfig(cmd)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	client, err := cmdutil.NewClient(cmd, cfg)
	if err != nil {
		return err
	}

	member, err := client.AddTeamMember(cmd.Context(), name, email, password, color)
	if err != nil {
		return err
	}

	fmt.Printf("\n  %s Added %s %s\n",
		cliui.SuccessMark,
		cliui.NameStyle.Render(member.Name),
		cliui.IDStyle.Render(member.ID),
	)
	fmt.Printf("  %s %s\n",
		cliui.KeyStyle.Render("Login:"),
		cliui.DimStyle.Render(member.AIveilixEmail),
	)
	return nil
}

func readMemberPassword() (string, error) {
	fmt.Print("Member password: ")
	pwBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	if len(pwBytes) == 0 {
		return "", errors.New("password cannot be empty")
	}
	return string(pwBytes), nil
}

func newRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <member-id>",
		Short: "Remove a team member",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRm(cmd, args[0])
		},
	}
}

func runRm(cmd *cobra.Command, memberID string) error {
	cfg, err := cmdutil.LoadConfig(cmd)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	client, err := cmdutil.NewClient(cmd, cfg)
	if err != nil {
		return err
	}

	if err := client.RemoveTeamMember(cmd.Context(), memberID); err != nil {
		return err
	}

	fmt.Printf("\n  %s Removed member %s\n", cliui.SuccessMark, cliui.IDStyle.Render(memberID))
	return nil
}
