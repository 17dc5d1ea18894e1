package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/cloudahk-cli/internal/adapters/render/reply"
	"github.com/bnema/cloudahk-cli/internal/application"
	"github.com/bnema/cloudahk-cli/internal/domain"
)

func newVariantsCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "variants",
		Short: "Manage backend variants",
	}

	cmd.AddCommand(newVariantsListCmd(app), newVariantsAddCmd(app), newVariantsRemoveCmd(app))

	return cmd
}

type variantView struct {
	Name       domain.VariantName `json:"name"`
	URL        string             `json:"url"`
	Protocol   domain.Protocol    `json:"protocol"`
	Language   string             `json:"language"`
	Configured bool               `json:"configured"`
}

func newVariantsListCmd(app *app) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List backend variants",
		RunE: func(cmd *cobra.Command, _ []string) error {
			registry, err := app.registry(cmd.Context())
			if err != nil {
				return err
			}
			variants := registry.List()

			if jsonOutput {
				views := make([]variantView, 0, len(variants))
				for _, v := range variants {
					views = append(views, variantView{Name: v.Name, URL: v.BaseURL, Protocol: v.Protocol, Language: v.Language, Configured: v.Configured()})
				}
				encoder := json.NewEncoder(cmd.OutOrStdout())
				encoder.SetIndent("", "  ")
				return encoder.Encode(views)
			}

			rendered, err := reply.RenderVariants(variants)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print variants as JSON")

	return cmd
}

func newVariantsAddCmd(app *app) *cobra.Command {
	var (
		spec     domain.VariantSpec
		name     string
		protocol string
		password string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add or replace a backend variant",
		RunE: func(cmd *cobra.Command, _ []string) error {
			spec.Name = domain.VariantName(name)
			spec.Protocol = domain.Protocol(protocol)

			if err := app.variants.AddVariant(cmd.Context(), application.AddVariantCommand{Spec: spec, Password: password}); err != nil {
				return err
			}

			_, err := fmt.Fprintf(cmd.OutOrStdout(), "variant %s saved\n", spec.Name)
			return err
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Variant name")
	cmd.Flags().StringVar(&spec.BaseURL, "url", "", "Backend base URL")
	cmd.Flags().StringVar(&spec.User, "user", "", "Basic auth user")
	cmd.Flags().StringVar(&password, "password", "", "Basic auth password, stored in the secret store")
	cmd.Flags().StringVar(&spec.PasswordRef, "password-ref", "", "Existing secret-store key holding the password")
	cmd.Flags().StringVar(&protocol, "protocol", string(domain.ProtocolFormRun), "Payload protocol (form-run|json-eval)")
	cmd.Flags().StringVar(&spec.Language, "lang", "", "Default language")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("url")

	return cmd
}

func newVariantsRemoveCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <name>",
		Short: "Remove a stored backend variant",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.variants.RemoveVariant(cmd.Context(), domain.VariantName(args[0]))
		},
	}
}
