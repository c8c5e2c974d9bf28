package cli

import (
	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"hiwar/internal/api"
)

// NewLoginCmd instantiates and returns the login command.
func NewLoginCmd(client *api.Client) *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Authenticate against the backend and cache tokens",
		RunE: func(cmd *cobra.Command, args []string) error {
			var email string
			emailQuestion := &survey.Input{
				Message: "Email",
			}
			if err := survey.AskOne(emailQuestion, &email, survey.WithValidator(survey.Required)); err != nil {
				return err
			}

			var password string
			passwordQuestion := &survey.Password{
				Message: "Password",
			}
			if err := survey.AskOne(passwordQuestion, &password, survey.WithValidator(survey.Required)); err != nil {
				return err
			}

			if err := client.Login(cmd.Context(), email, password); err != nil {
				return err
			}
			Info("Logged in as %s", email)
			return nil
		},
	}
}

// NewLogoutCmd instantiates and returns the logout command.
func NewLogoutCmd(client *api.Client) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Drop the cached session tokens",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Logout(); err != nil {
				return err
			}
			Info("Logged out")
			return nil
		},
	}
}
