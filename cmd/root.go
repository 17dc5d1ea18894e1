package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

func Execute() error {
	return ExecuteContext(context.Background())
}

func ExecuteContext(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "cah",
		Short:         "CloudAHK gateway (cah): run snippets on remote backends",
		Long:          "cah forwards code snippets to CloudAHK and snekbox execution backends, relays their output as chat replies, and hosts interactive evaluation sessions.",
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
		newStressCmd(app),
		newFanOutCmd(app),
		newReplCmd(app),
		newServeCmd(app),
		newVariantsCmd(app),
		newSecretCmd(app),
	)

	return rootCmd
}
