package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"ikedadada/go-onionoo/internal/config"
	"ikedadada/go-onionoo/internal/logging"
	"ikedadada/go-onionoo/onionoo"
)

type rootOptions struct {
	detailsURL string

	output    string
	timeout   time.Duration
	logLevel  string
	logFormat string

	log    *logrus.Logger
	client *onionoo.Client
}

func Execute(ctx context.Context) error {
	root := newRootCmd(onionoo.DetailsURL)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(root.ErrOrStderr(), "Error:", err)
		return err
	}
	return nil
}

func newRootCmd(detailsURL string) *cobra.Command {
	opts := &rootOptions{detailsURL: detailsURL}

	root := &cobra.Command{
		Use:           "onionoo",
		Short:         "Query the Tor relay directory published by Onionoo",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup(cmd)
		},
	}

	root.PersistentFlags().StringVarP(&opts.output, "output", "o", formatTable, "output format: table, json or yaml")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", 0, "request timeout (default from ONIONOO_TIMEOUT, 30s)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level (default from ONIONOO_LOG_LEVEL, info)")
	root.PersistentFlags().StringVar(&opts.logFormat, "log-format", "", "log format: text or json (default from ONIONOO_LOG_FORMAT, text)")

	root.AddCommand(
		newFetchCmd(opts, "all", "Print every relay", (*onionoo.Client).FetchAllRelays),
		newFetchCmd(opts, "entry", "Print entry (Guard) relays", (*onionoo.Client).FetchEntryNodes),
		newFetchCmd(opts, "exit", "Print exit (Exit) relays", (*onionoo.Client).FetchExitNodes),
	)
	return root
}

func (o *rootOptions) setup(cmd *cobra.Command) error {
	if !validFormat(o.output) {
		return fmt.Errorf("unsupported output format %q", o.output)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("timeout") {
		cfg.Timeout = o.timeout
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = o.logFormat
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	o.log, err = logging.New(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	o.client = onionoo.NewClient(
		onionoo.WithDetailsURL(o.detailsURL),
		onionoo.WithTimeout(cfg.Timeout),
		onionoo.WithMaxBytes(cfg.MaxBytes),
		onionoo.WithUserAgent(cfg.UserAgent),
		onionoo.WithLogger(o.log),
	)
	return nil
}
