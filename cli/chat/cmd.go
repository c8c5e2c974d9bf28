// Package chat wires the interactive TUI chat command.
package chat

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"hiwar/cli/chat/session"
	"hiwar/internal/api"
	"hiwar/internal/chat"
	"hiwar/internal/configuration"
)

// NewCmd instantiates and returns the chat command.
func NewCmd(config *configuration.Config, client *api.Client) *cobra.Command {
	var opts struct {
		Model string
	}
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Open the interactive chat session",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if !client.Authenticated() {
				return fmt.Errorf("not logged in, run `hiwar login` first")
			}

			if opts.Model == "" {
				opts.Model = config.Chat.DefaultModel
			}
			aiModel, err := parseModel(opts.Model)
			if err != nil {
				return err
			}

			store := chat.NewStore(client, chat.Options{
				Language:       client.Language(),
				PageSize:       config.Chat.PageSize,
				RevealInterval: time.Duration(config.Chat.TypingIntervalMs) * time.Millisecond,
			})

			m, err := session.New(ctx, config, store, aiModel)
			if err != nil {
				return err
			}

			p := tea.NewProgram(
				m,
				tea.WithAltScreen(),
				tea.WithContext(ctx),
				tea.WithMouseCellMotion(),
				tea.WithReportFocus(),
			)

			if _, err := p.Run(); err != nil {
				return fmt.Errorf("error running chat: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&opts.Model, "model", "m", "", "Model to chat with (GPT, Gemini, DEEPSEEK)")
	return cmd
}

func parseModel(name string) (chat.Model, error) {
	switch chat.Model(name) {
	case chat.ModelGPT, chat.ModelGemini, chat.ModelDeepseek:
		return chat.Model(name), nil
	}
	return "", fmt.Errorf("unknown model %s", name)
}
