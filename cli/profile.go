package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"hiwar/internal/api"
	"hiwar/internal/session"
)

// NewProfileCmd instantiates and returns the profile command.
func NewProfileCmd(client *api.Client, sessionStore *session.Store) *cobra.Command {
	var opts struct {
		Name  string
		Email string
	}
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or update the user profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if opts.Name != "" || opts.Email != "" {
				request := &api.UpdateProfileRequest{Name: opts.Name, Email: opts.Email}
				if err := client.UpdateProfile(ctx, request); err != nil {
					return err
				}
				Info("Profile updated")
			}

			profile, err := client.GetProfile(ctx)
			if err != nil {
				// Fall back to the cached copy when offline.
				cached, cacheErr := sessionStore.Get(session.KeyProfile)
				if cacheErr != nil || cached == "" {
					return err
				}
				profile = &api.Profile{}
				if err := json.Unmarshal([]byte(cached), profile); err != nil {
					return err
				}
				Muted("Showing cached profile")
			} else if raw, err := json.Marshal(profile); err == nil {
				sessionStore.Set(session.KeyProfile, string(raw))
			}

			Title("Profile")
			Field("Name", profile.Name)
			Field("Email", profile.Email)
			Field("Member since", profile.CreatedAt.Format("2006-01-02"))
			return nil
		},
	}
	cmd.Flags().StringVar(&opts.Name, "name", "", "Set a new display name")
	cmd.Flags().StringVar(&opts.Email, "email", "", "Set a new email address")
	return cmd
}
