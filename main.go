package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"motion2constatus/config"
	"motion2constatus/metrics"
	"motion2constatus/translate"
)

func main() {
	if err := newCommand().ExecuteContext(context.Background()); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

func newCommand() *cobra.Command {
	v := config.NewViper()

	cmd := &cobra.Command{
		Use:   "motion2constatus [flags] <motion.conf>",
		Short: "Translate a motion configuration into constatus configurations",
		Long: `Reads a motion configuration file and every camera file it includes and
writes a constatus configuration next to each of them, named after the source
with its extension replaced by -constatus.cfg.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				cmd.PrintErr(cmd.UsageString())
				return errors.New("filename of motion configuration file missing")
			}
			return nil
		},
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.FromViper(v)
			if err != nil {
				return err
			}
			cfg.Apply()
			return run(cmd.Context(), cfg, args[0])
		},
	}

	f := cmd.Flags()
	f.String("log-level", "info", "Log level (trace, debug, info, warn, error).")
	f.String("inherit", string(translate.InheritLayered), "Directive inheritance between camera files: layered, or shared as motion does.")
	f.Int("max-depth", translate.DefaultMaxDepth, "Maximum nesting of camera includes.")
	f.Bool("dry-run", false, "Print the configurations instead of writing them.")
	f.Bool("watch", false, "Translate again whenever a processed file changes.")
	f.String("metrics-textfile", "", "Write run metrics to this file in the Prometheus text format.")
	if err := v.BindPFlags(f); err != nil {
		log.Fatalf("Failed to bind flags: %v", err)
	}
	return cmd
}

func run(ctx context.Context, cfg *config.Config, path string) error {
	m := metrics.New()
	opts := cfg.TranslateOptions()
	if cfg.DryRun {
		opts.DryRun = os.Stdout
	}
	t := translate.NewTranslator(opts, m)

	once := func(ctx context.Context) ([]string, error) {
		start := time.Now()
		res, err := t.Run(ctx, path)
		m.RunFinished(start, err)
		if cfg.MetricsTextfile != "" {
			if werr := m.WriteTextfile(cfg.MetricsTextfile); werr != nil {
				log.Errorf("Failed to write metrics to %s: %v", cfg.MetricsTextfile, werr)
			}
		}
		if err != nil {
			return res.Sources, err
		}
		log.Infof("Translated %d file(s)", len(res.Outputs))
		return res.Sources, nil
	}

	if !cfg.Watch {
		_, err := once(ctx)
		return err
	}

	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	log.Infof("Watching %s for changes", path)
	return config.Watch(ctx, []string{path}, once)
}
