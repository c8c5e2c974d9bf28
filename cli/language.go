package cli

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"hiwar/internal/session"
)

// NewLanguageCmd instantiates and returns the language command.
func NewLanguageCmd(sessionStore *session.Store) *cobra.Command {
	return &cobra.Command{
		Use:   "language [en|ar]",
		Short: "Show or set the display language",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				Field("Language", sessionStore.Language())
				return nil
			}
			language := args[0]
			if language != "en" && language != "ar" {
				return errors.Errorf("unsupported language %q", language)
			}
			if err := sessionStore.SetLanguage(language); err != nil {
				return err
			}
			Info("Language set to %s", language)
			return nil
		},
	}
}
