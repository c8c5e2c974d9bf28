package main

import (
	"time"

	"github.com/spf13/cobra"

	"hiwar/cli"
	"hiwar/cli/chat"
	"hiwar/internal/api"
	"hiwar/internal/configuration"
	"hiwar/internal/session"
)

const configFilepath = "~/.hiwar/config.json"

var rootCmd = &cobra.Command{
	Use:   "hiwar",
	Short: "A terminal client for the hiwar chat backend",
}

func main() {
	config, err := configuration.Parse(configFilepath)
	if err != nil {
		panic(err)
	}

	// Open the local session store.
	sessionStore, err := session.Open(config.SessionPath)
	if err != nil {
		panic(err)
	}
	defer sessionStore.Close()

	// A language set via `hiwar language` wins over the config default.
	language := config.Language
	if persisted, err := sessionStore.Get(session.KeyLanguage); err == nil && persisted != "" {
		language = persisted
	}

	// Instantiate the API client backed by the session's token cache.
	timeout := time.Duration(config.RequestTimeout) * time.Second
	client := api.New(config.APIHost, language, timeout, sessionStore)

	rootCmd.AddCommand(cli.NewLoginCmd(client))
	rootCmd.AddCommand(cli.NewLogoutCmd(client))
	rootCmd.AddCommand(cli.NewProfileCmd(client, sessionStore))
	rootCmd.AddCommand(cli.NewSummaryCmd(client))
	rootCmd.AddCommand(cli.NewExportCmd(client))
	rootCmd.AddCommand(cli.NewLanguageCmd(sessionStore))
	rootCmd.AddCommand(chat.NewCmd(config, client))
	rootCmd.Execute()
}
