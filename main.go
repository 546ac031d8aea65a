package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"seraph.si/v2/bfhl-form/src/config"
	"seraph.si/v2/bfhl-form/src/form"
	"seraph.si/v2/bfhl-form/src/logging"
	"seraph.si/v2/bfhl-form/src/tui"
)

// errReported means the failure was already printed for the user.
var errReported = errors.New("reported")

type options struct {
	configPath string
	endpoint   string
	logFile    string
	verbose    bool

	cfg    config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "bfhl-form",
		Short: "Submit JSON to the BFHL endpoint and view selected fields",
		Long: `bfhl-form posts a JSON document to a fixed collaborator endpoint and shows
the numbers, alphabets and highest lowercase alphabet it returns.

Run without arguments to start the interactive terminal form.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.logger != nil {
				_ = opts.logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return tui.Run(cmd.Context(), opts.client())
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default ./config.json)")
	flags.StringVar(&opts.endpoint, "endpoint", "", "collaborator endpoint (overrides config and BFHL_ENDPOINT)")
	flags.StringVar(&opts.logFile, "log-file", "", "write logs to this file")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(newServeCmd(opts), newSubmitCmd(opts), newConfigCmd(opts))
	return rootCmd
}

func (o *options) setup(cmd *cobra.Command) error {
	if err := config.LoadDotEnv(".env"); err != nil {
		return fmt.Errorf("load .env: %w", err)
	}

	cfg, err := config.Read(o.path())
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	cfg.ApplyEnv()
	if o.endpoint != "" {
		cfg.Endpoint = o.endpoint
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	o.cfg = cfg

	logPath := o.logFile
	if logPath == "" && cmd.Name() == "serve" {
		logPath = "stderr"
	}
	o.logger, err = logging.New(logPath, o.verbose)
	return err
}

func (o *options) path() string {
	if o.configPath == "" {
		return config.DefaultPath()
	}
	return o.configPath
}

func (o *options) client() *form.Client {
	return form.NewClient(o.cfg.Endpoint,
		form.WithUserAgent(o.cfg.UserAgent),
		form.WithLogger(o.logger),
	)
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
