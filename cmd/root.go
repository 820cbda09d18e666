package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "confbot",
		Short:         "confbot: a group chat bot that manages conference rooms for its operator",
		Long:          "confbot hosts group chats on behalf of its masters: friends message the bot to create, join and configure password-protected rooms, while masters steer the bot's presence and membership over the same command channel.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newRunCmd(app),
		newMastersCmd(app),
	)

	return rootCmd
}
