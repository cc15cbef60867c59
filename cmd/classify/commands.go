package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/AdadaEdu/ClassificadorDeEmaisComHuggingFace/internal/classifier"
	"github.com/AdadaEdu/ClassificadorDeEmaisComHuggingFace/internal/data"
	"github.com/AdadaEdu/ClassificadorDeEmaisComHuggingFace/internal/domain"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

var errNoInput = errors.New("nothing to classify")

func newTextCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "text [words...]",
		Short: "Classify free text given as arguments or on stdin",
		Example: `  classify text "Segue a fatura do mês"
  echo "preciso de suporte" | classify text`,
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			if len(args) == 0 {
				raw, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
				text = string(raw)
			}
			if strings.TrimSpace(text) == "" {
				return errNoInput
			}

			engine, _, err := opts.buildEngine(cmd.Context())
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), opts.output, engine.Classify(cmd.Context(), text))
		},
	}
}

func newEmailCommand(opts *options) *cobra.Command {
	var msg domain.Email

	cmd := &cobra.Command{
		Use:   "email",
		Short: "Classify an email from its subject and body",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if msg.Empty() {
				return errNoInput
			}

			engine, _, err := opts.buildEngine(cmd.Context())
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), opts.output, engine.ClassifyEmail(cmd.Context(), msg))
		},
	}

	cmd.Flags().StringVar(&msg.Subject, "subject", "", "email subject")
	cmd.Flags().StringVar(&msg.Body, "body", "", "email body")
	cmd.Flags().StringVar(&msg.Sender, "sender", "", "sender address")
	cmd.Flags().StringVar(&msg.Recipient, "recipient", "", "recipient address")
	return cmd
}

func newScenariosCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "scenarios",
		Short: "Classify the built-in sample emails and report accuracy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, _, err := opts.buildEngine(cmd.Context())
			if err != nil {
				return err
			}
			report := classifier.RunScenarios(cmd.Context(), engine, data.Scenarios())
			return render(cmd.OutOrStdout(), opts.output, report)
		},
	}
}

func newCategoriesCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the departments in tie-break order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return render(cmd.OutOrStdout(), opts.output, domain.AllCategories())
		},
	}
}

func newVersionCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s %s (cli %s)\n", cfg.Service.Name, cfg.Service.Version, version)
			return err
		},
	}
}
