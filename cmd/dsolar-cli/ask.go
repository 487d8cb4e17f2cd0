package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/spf13/cobra"

	"github.com/Ramsu24/D-Solar-sub001/internal/chat"
	"github.com/Ramsu24/D-Solar-sub001/internal/domain"
	"github.com/Ramsu24/D-Solar-sub001/pkg/client"
)

// asker answers a message either in-process or through a running API.
type asker func(ctx context.Context, message string, history []domain.ChatTurn) (chat.Response, error)

func remoteAsker(baseURL string) asker {
	c := client.NewClient(client.ClientConfig{BaseURL: baseURL})
	return func(ctx context.Context, message string, history []domain.ChatTurn) (chat.Response, error) {
		turns := make([]client.Turn, len(history))
		for i, t := range history {
			turns[i] = client.Turn{Role: string(t.Role), Content: t.Content}
		}
		resp, err := c.Chat(ctx, client.ChatRequest{Message: message, History: turns})
		if err != nil {
			return chat.Response{}, err
		}
		return chat.Response{
			Text:           resp.Message,
			Source:         chat.Source(resp.Source),
			Intent:         chat.Intent(resp.Intent),
			IsPricingQuery: resp.IsPricingQuery,
			Complex:        resp.Complex,
			FAQID:          resp.FAQID,
			PackageCode:    resp.PackageCode,
		}, nil
	}
}

// newAsker returns the asker and a cleanup function.
func newAsker(ctx context.Context, remote string) (asker, func(), error) {
	if remote != "" {
		return remoteAsker(remote), func() {}, nil
	}
	a, err := openApp(ctx, true)
	if err != nil {
		return nil, nil, err
	}
	return a.Router.Route, func() { a.Close() }, nil
}

func newAskCmd() *cobra.Command {
	var remote string

	cmd := &cobra.Command{
		Use:   "ask <message>",
		Short: "Ask the assistant a single question",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ask, cleanup, err := newAsker(ctx, remote)
			if err != nil {
				return err
			}
			defer cleanup()

			ui := NewUI(cmd.OutOrStdout(), outputJSON)
			spin := ui.Spinner("Thinking...")
			resp, err := ask(ctx, strings.Join(args, " "), nil)
			spin.Stop()
			if err != nil {
				return err
			}

			if outputJSON {
				return writeJSON(cmd.OutOrStdout(), resp)
			}
			ui.Answer(resp.Source, resp.Text)
			return nil
		},
	}

	cmd.Flags().StringVar(&remote, "remote", "", "base URL of a running assistant API")
	return cmd
}

func newChatCmd() *cobra.Command {
	var remote string

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive conversation",
		Long:  "Start an interactive conversation. Type /reset to forget the history and /quit to leave.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ask, cleanup, err := newAsker(ctx, remote)
			if err != nil {
				return err
			}
			defer cleanup()

			ui := NewUI(cmd.OutOrStdout(), false)
			ui.Info("Ask about solar packages, financing or installation. /quit to leave.")

			var history []domain.ChatTurn
			for {
				var message string
				err := survey.AskOne(&survey.Input{Message: "You:"}, &message)
				if errors.Is(err, terminal.InterruptErr) {
					return nil
				}
				if err != nil {
					return fmt.Errorf("read input: %w", err)
				}

				message = strings.TrimSpace(message)
				switch message {
				case "":
					continue
				case "/quit", "/exit":
					return nil
				case "/reset":
					history = nil
					ui.Success("Conversation cleared")
					continue
				}

				spin := ui.Spinner("Thinking...")
				resp, err := ask(ctx, message, history)
				spin.Stop()
				if err != nil {
					ui.Warning("%v", err)
					continue
				}
				ui.Answer(resp.Source, resp.Text)

				history = append(history,
					domain.ChatTurn{Role: domain.RoleUser, Content: message},
					domain.ChatTurn{Role: domain.RoleAssistant, Content: resp.Text},
				)
			}
		},
	}

	cmd.Flags().StringVar(&remote, "remote", "", "base URL of a running assistant API")
	return cmd
}
