package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	infralogger "github.com/AdadaEdu/ClassificadorDeEmaisComHuggingFace/infrastructure/logger"
	"github.com/AdadaEdu/ClassificadorDeEmaisComHuggingFace/internal/bootstrap"
	"github.com/AdadaEdu/ClassificadorDeEmaisComHuggingFace/internal/classifier"
	"github.com/AdadaEdu/ClassificadorDeEmaisComHuggingFace/internal/config"
)

const (
	outputJSON  = "json"
	outputTable = "table"

	defaultWait = 3 * time.Second
)

// options are the persistent flags shared by every subcommand.
type options struct {
	configPath string
	output     string
	wait       time.Duration
	debug      bool
}

func newRootCommand() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "classify",
		Short:         "Route Portuguese business emails to a department",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.output != outputJSON && opts.output != outputTable {
				return fmt.Errorf("unknown output format %q", opts.output)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default is CONFIG_PATH or ./config.yml)")
	root.PersistentFlags().StringVarP(&opts.output, "output", "o", outputJSON, "output format: json or table")
	root.PersistentFlags().DurationVar(&opts.wait, "wait", defaultWait,
		"how long to wait for the semantic tier before classifying with keywords only")
	root.PersistentFlags().BoolVar(&opts.debug, "debug", false, "log pipeline activity to stderr")

	root.AddCommand(
		newTextCommand(opts),
		newEmailCommand(opts),
		newScenariosCommand(opts),
		newCategoriesCommand(opts),
		newVersionCommand(opts),
	)
	return root
}

func (o *options) loadConfig() (*config.Config, error) {
	if o.configPath != "" {
		return config.Load(o.configPath)
	}
	return bootstrap.LoadConfig()
}

// buildEngine assembles the same pipeline the service runs and waits up to
// --wait for it to become ready. A timeout is not an error: the keyword tier
// answers in the meantime.
func (o *options) buildEngine(ctx context.Context) (*classifier.Engine, *config.Config, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, nil, err
	}

	logger := infralogger.NewNop()
	if o.debug {
		logger, err = infralogger.New(infralogger.Config{
			Level:       "debug",
			Format:      infralogger.FormatConsole,
			OutputPaths: []string{"stderr"},
		})
		if err != nil {
			return nil, nil, fmt.Errorf("create logger: %w", err)
		}
	}

	db, err := bootstrap.SetupDatabase(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	defer func() { _ = db.Close() }()

	rules, err := bootstrap.LoadRuleSets(ctx, cfg, db, logger)
	if err != nil {
		return nil, nil, err
	}

	engine, err := bootstrap.NewEngine(cfg, rules, bootstrap.NewDelegate(cfg, logger), logger, nil)
	if err != nil {
		return nil, nil, err
	}

	waitCtx, cancel := context.WithTimeout(ctx, o.wait)
	defer cancel()
	if waitErr := engine.WaitReady(waitCtx); waitErr != nil {
		logger.Warn("Classifying before every tier is ready", infralogger.Error(waitErr))
	}
	return engine, cfg, nil
}
