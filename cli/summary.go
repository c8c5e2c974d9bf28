package cli

import (
	"github.com/spf13/cobra"

	"hiwar/internal/api"
)

// NewSummaryCmd instantiates and returns the summary command.
func NewSummaryCmd(client *api.Client) *cobra.Command {
	var opts struct {
		History bool
	}
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show the AI-generated summary of your activity",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if opts.History {
				history, err := client.GetSummaryHistory(ctx)
				if err != nil {
					return err
				}
				Title("Summary history")
				for _, entry := range history.Results {
					Muted(entry.CreatedAt.Format("2006-01-02 15:04"))
					Info("%s", entry.Summary)
					Separator()
				}
				return nil
			}

			summary, err := client.GetUserSummary(ctx)
			if err != nil {
				return err
			}
			Title("Summary")
			Info("%s", summary.Summary)
			if summary.LastUpdated != "" {
				Muted("Last updated: %s", summary.LastUpdated)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&opts.History, "history", false, "Show previously generated summaries")
	return cmd
}
