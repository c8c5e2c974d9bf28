package cli

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"hiwar/internal/api"
	"hiwar/internal/chat"
)

const exportPageSize = 100

// NewExportCmd instantiates and returns the export command.
func NewExportCmd(client *api.Client) *cobra.Command {
	var opts struct {
		Directory string
	}
	cmd := &cobra.Command{
		Use:   "export <conversation-id>",
		Short: "Export a conversation transcript to a text file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			conversationID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return errors.Wrap(err, "parsing conversation id")
			}

			conversation := &chat.Conversation{ID: conversationID}
			for pageNumber := 1; ; pageNumber++ {
				page, err := client.ListMessages(ctx, conversationID, pageNumber, exportPageSize)
				if err != nil {
					return err
				}
				for _, item := range page.Items {
					role := chat.RoleUser
					if strings.EqualFold(item.SentBy, "bot") {
						role = chat.RoleAssistant
					}
					conversation.Messages = append(conversation.Messages, &chat.Message{
						ID:             strconv.FormatInt(item.ID, 10),
						ConversationID: conversationID,
						Role:           role,
						Content:        item.Text,
						Timestamp:      item.CreatedAt,
						Model:          chat.Model(item.ModelUsed),
					})
				}
				if pageNumber >= page.TotalPages || len(page.Items) == 0 {
					break
				}
			}

			path := filepath.Join(opts.Directory, chat.ExportFilename(conversationID))
			if err := os.WriteFile(path, []byte(chat.Transcript(conversation)), 0644); err != nil {
				return errors.Wrap(err, "writing transcript")
			}
			Info("Exported %d messages to %s", len(conversation.Messages), path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&opts.Directory, "directory", "d", ".", "Directory to write the transcript into")
	return cmd
}
