// Package chatcmder provides the chat command for interactive conversations
// with a bucket's assistant.
package chatcmder

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/jutt313/aiveilix-go/cmd/veilix/cmdutil"
	"github.com/jutt313/aiveilix-go/pkg/api"
	"github.com/jutt313/aiveilix-go/pkg/cliui"
	"github.com/jutt313/aiveilix-go/pkg/config"
	"github.com/jutt313/aiveilix-go/pkg/dotdir"
	"github.com/jutt313/aiveilix-go/pkg/history"
	"github.com/jutt313/aiveilix-go/pkg/utils"
)

var (
	userPrompt      = lipgloss.NewStyle().Foreground(lipgloss.Color("82")).Bold(true).Render("you> ")
	assistantPrompt = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Render("assistant> ")
	thinkingStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true)
)

type chatCommander struct {
	bucketID    string
	mode        string
	fresh       bool
	resume      string
	historyPath string

	cfg *config.Config
}

const chatLongDesc string = `Start an interactive chat session with a bucket's assistant.

Answers stream live: the assistant's reasoning appears dimmed, the answer
itself streams as it is generated, and citations are listed afterwards.
The conversation id is remembered per bucket in .veilix/session.json, so
re-running "veilix chat" continues where you left off. Use --new to start
a fresh conversation.

Completed turns are also stored in a local SQLite history (see
"veilix chat log" and the history.* config keys).

Examples:
  veilix chat --bucket <bucket-id>
  veilix chat                        Uses chat.default_bucket from config
  veilix chat --new
  veilix chat --resume <conversation-id>
  veilix chat --mode file_draft`

const chatShortDesc string = "Chat with a bucket's assistant"

func NewChatCmd() *cobra.Command {
	cmder := &chatCommander{}

	cmd := &cobra.Command{
		Use:   "chat",
		Short: chatShortDesc,
		Long:  chatLongDesc,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := cmdutil.LoadConfig(cmd, config.FlagDefaultBucket, config.FlagHistoryPath)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			cmder.cfg = cfg

			if cmder.bucketID == "" {
				cmder.bucketID = cfg.Chat.DefaultBucket
			}
			if cmder.bucketID == "" {
				return errors.New("no bucket given: pass --bucket or set chat.default_bucket")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmder.run(cmd)
		},
	}

	config.AddStringFlag(cmd, config.Flags, config.FlagDefaultBucket, &cmder.bucketID)
	config.AddStringFlag(cmd, config.Flags, config.FlagHistoryPath, &cmder.historyPath)
	cmd.Flags().StringVarP(&cmder.mode, "mode", "m", "", "Turn mode (file_draft, file_update)")
	cmd.Flags().BoolVar(&cmder.fresh, "new", false, "Start a fresh conversation")
	cmd.Flags().StringVar(&cmder.resume, "resume", "", "Continue the given conversation id instead of the remembered one")

	cmd.AddCommand(newListCmd())
	cmd.AddCommand(newLogCmd())
	cmd.AddCommand(newRenameCmd())
	cmd.AddCommand(newRmCmd())

	return cmd
}

func (c *chatCommander) run(cmd *cobra.Command) error {
	// Chat streams are bounded by ctx, not a client timeout.
	client, err := cmdutil.NewStreamingClient(cmd, c.cfg)
	if err != nil {
		return err
	}

	configDir := cmdutil.ConfigDir(cmd)
	ddm := dotdir.NewManager()

	session, err := ddm.LoadSession(configDir)
	if err != nil {
		return fmt.Errorf("loading session state: %w", err)
	}

	conversationID := c.resume
	if conversationID == "" && !c.fresh {
		conversationID = session.Conversations[c.bucketID]
	}

	var store *history.Store
	if c.cfg.History.Enabled {
		store, err = openHistory(configDir, c.cfg)
		if err != nil {
			return err
		}
		defer store.Close()
	}

	fmt.Println()
	if conversationID != "" {
		fmt.Printf("  %s Resuming conversation %s\n",
			cliui.SuccessMark,
			cliui.IDStyle.Render(utils.Truncate(conversationID, 16)),
		)
	} else {
		fmt.Printf("  %s New conversation\n", cliui.DimStyle.Render("●"))
	}
	fmt.Printf("  %s %s\n\n",
		cliui.KeyStyle.Render("Bucket:"),
		cliui.NameStyle.Render(c.bucketID),
	)
	fmt.Printf("  %s\n\n", cliui.DimStyle.Render("Type your message and press Enter. /exit or Ctrl+D to quit."))

	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print(userPrompt)
		if !scanner.Scan() {
			// EOF or error
			break
		}

		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		if input == "/exit" {
			break
		}

		result, err := c.sendAndStream(cmd, client, input, conversationID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "  %s %v\n", cliui.FailMark, err)
			continue
		}

		if result.ConversationID != "" && result.ConversationID != conversationID {
			conversationID = result.ConversationID
			session.Conversations[c.bucketID] = conversationID
			if err := ddm.SaveSession(session, configDir); err != nil {
				fmt.Fprintf(os.Stderr, "  %s saving session: %v\n", cliui.WarnStyle.Render("!"), err)
			}
		}

		if store != nil {
			if _, err := store.Record(cmd.Context(), c.bucketID, input, result); err != nil {
				fmt.Fprintf(os.Stderr, "  %s recording history: %v\n", cliui.WarnStyle.Render("!"), err)
			}
		}

		fmt.Println()
		fmt.Println()
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	fmt.Println()
	return nil
}

// sendAndStream sends one message and renders the event stream to stdout.
func (c *chatCommander) sendAndStream(cmd *cobra.Command, client *api.Client, input, conversationID string) (*api.ChatResult, error) {
	var (
		inThinking    bool
		startedAnswer bool
	)

	result, err := client.Chat(cmd.Context(), c.bucketID, api.ChatOptions{
		Message:        input,
		ConversationID: conversationID,
		Mode:           c.mode,
		OnEvent: func(ev api.StreamEvent) error {
			switch ev.Type {
			case api.EventSearching:
				fmt.Printf("%s\n", thinkingStyle.Render("searching: "+strings.Join(ev.Keywords, " ")))

			case api.EventThinking:
				if !inThinking {
					fmt.Print(thinkingStyle.Render("thinking> "))
					inThinking = true
				}
				fmt.Print(thinkingStyle.Render(ev.Content))

			case api.EventResponse:
				if inThinking {
					fmt.Println()
					inThinking = false
				}
				if !startedAnswer {
					fmt.Print(assistantPrompt)
					startedAnswer = true
				}
				fmt.Print(ev.Content)
			}
			return nil
		},
	})
	if err != nil {
		return nil, err
	}

	if !startedAnswer && result.Message != "" {
		// Nothing streamed (e.g. a pure done event); render the final text.
		fmt.Print(assistantPrompt)
		if md, err := cliui.RenderMarkdown(result.Message); err == nil {
			fmt.Print(md)
		} else {
			fmt.Print(result.Message)
		}
	}
	fmt.Println()

	if !result.Done {
		fmt.Printf("  %s\n", cliui.WarnStyle.Render("! stream ended early, answer may be incomplete"))
	}

	if result.FileDraft != nil {
		fmt.Printf("\n  %s Drafted %s %s\n",
			cliui.SuccessMark,
			cliui.NameStyle.Render(result.FileDraft.FileName),
			cliui.DimStyle.Render(fmt.Sprintf("(%d bytes)", len(result.FileDraft.FileContent))),
		)
	}

	if len(result.Sources) > 0 {
		fmt.Println()
		for _, s := range result.Sources {
			name := s.FileName
			if name == "" {
				name = s.Title
			}
			if name == "" {
				name = s.URL
			}
			fmt.Printf("  %s %s\n", cliui.DimStyle.Render("↳"), cliui.DimStyle.Render(name))
		}
	}

	return result, nil
}

// openHistory opens the local history store at the configured path, resolving
// relative paths against the .veilix/ directory.
func openHistory(configDir string, cfg *config.Config) (*history.Store, error) {
	path := cfg.History.SQLitePath
	if !strings.HasPrefix(path, "/") && path != ":memory:" {
		ddm := dotdir.NewManager()
		dir, err := ddm.Target(configDir)
		if err != nil {
			return nil, fmt.Errorf("resolving history path: %w", err)
		}
		path = dir + "/" + path
	}

	store, err := history.NewStore(path)
	if err != nil {
		return nil, fmt.Errorf("opening history: %w", err)
	}
	return store, nil
}
