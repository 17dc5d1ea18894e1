package cmd

import (
	"github.com/spf13/cobra"
)

func newSecretCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "secret",
		Short: "Manage backend credentials in the secret store",
	}

	cmd.AddCommand(newSecretSetCmd(app), newSecretRemoveCmd(app))

	return cmd
}

func newSecretSetCmd(app *app) *cobra.Command {
	var ref string
	var value string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Store a secret",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.variants.SetSecret(cmd.Context(), ref, value)
		},
	}

	cmd.Flags().StringVar(&ref, "ref", "", "Secret-store key")
	cmd.Flags().StringVar(&value, "value", "", "Secret value")
	_ = cmd.MarkFlagRequired("ref")
	_ = cmd.MarkFlagRequired("value")

	return cmd
}

func newSecretRemoveCmd(app *app) *cobra.Command {
	var ref string

	cmd := &cobra.Command{
		Use:   "rm",
		Short: "Delete a secret",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.variants.RemoveSecret(cmd.Context(), ref)
		},
	}

	cmd.Flags().StringVar(&ref, "ref", "", "Secret-store key")
	_ = cmd.MarkFlagRequired("ref")

	return cmd
}
