package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/mrwhite4939/selfguard"
	"github.com/mrwhite4939/selfguard/events"
	"github.com/mrwhite4939/selfguard/internal/config"
)

var watchConfigPath string

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Monitor the process continuously until interrupted",
	Long: `Initialize the monitor, take a baseline snapshot, and run periodic
integrity sweeps until SIGINT or SIGTERM. Sweep cadence, probe selection,
and notification throttling come from the YAML config file and SELFGUARD_*
environment overrides.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadWatchConfig(watchConfigPath)
		if err != nil {
			return fmt.Errorf("loading watch config: %w", err)
		}
		mask, err := selfguard.ParseChecks(cfg.Checks)
		if err != nil {
			return err
		}

		if cfg.HardenOnStart {
			if err := selfguard.Harden(); err != nil {
				log.Printf("warning: hardening failed: %v", err)
			}
		}

		if err := selfguard.Init(); err != nil {
			return fmt.Errorf("init failed: %w", err)
		}
		defer selfguard.Shutdown()
		if err := selfguard.Snapshot(); err != nil {
			return fmt.Errorf("snapshot failed: %w", err)
		}

		// Events flow through a channel so rendering never runs on the
		// watcher goroutine.
		eventCh := make(chan events.Event, 64)
		selfguard.RegisterSink(events.SinkFunc(func(e events.Event) {
			select {
			case eventCh <- e:
			default: // drop rather than block the monitor
			}
		}))

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		watcher := selfguard.NewWatcher(selfguard.WatcherConfig{
			Interval:        time.Duration(cfg.IntervalSeconds) * time.Second,
			Mask:            mask,
			EventsPerMinute: cfg.EventsPerMinute,
			Notify: func(v selfguard.Verdict) {
				log.Printf("verdict: %s", verdictText(v))
			},
		})

		log.Printf("watching (%s, every %ds)", selfguard.Implementation(), cfg.IntervalSeconds)

		g, ctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			return watcher.Run(ctx)
		})
		g.Go(func() error {
			for {
				select {
				case <-ctx.Done():
					return ctx.Err()
				case e := <-eventCh:
					renderEvent(e)
				}
			}
		})

		if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		fmt.Println()
		return nil
	},
}

func init() {
	watchCmd.Flags().StringVar(&watchConfigPath, "config", "selfguard.yaml",
		"path to watcher config file")
}

func renderEvent(e events.Event) {
	var tint *color.Color
	switch e.Severity {
	case events.SeverityCritical:
		tint = color.New(color.FgRed, color.Bold)
	case events.SeverityWarning:
		tint = color.New(color.FgYellow)
	default:
		tint = color.New(color.FgHiBlack)
	}
	log.Printf("%s %s", tint.Sprintf("[%s]", e.Type), e.Message)
}
