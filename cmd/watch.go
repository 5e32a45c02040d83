package cmd

import (
	"context"
	"io"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/bep/debounce"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/jsphweid/chartpak/config"
)

func init() {
	watchCmd.Flags().StringVarP(&outputPath, "output", "o", "", "output path (default: input path + suffix)")
	rootCmd.AddCommand(watchCmd)
}

var watchCmd = &cobra.Command{
	Use:   "watch <chart.json>",
	Short: "Repacks a chart whenever it changes",
	Long: `Packs the chart, then polls it and packs it again after every change.
Bursts of saves are coalesced into one pack.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		out := outputPath
		if out == "" {
			out = cfg.OutputPath(args[0])
		}
		return Watch(ctx, cfg, args[0], out, progress(cmd))
	},
}

// Watch packs in to out once, then again each time in's modification time changes,
// until ctx is done. Failed packs are logged and do not stop the watch. Packs only
// run on the calling goroutine, so none is in flight once Watch returns.
func Watch(ctx context.Context, c *config.Config, in string, out string, w io.Writer) error {
	if c.WatchInterval <= 0 || c.WatchDebounce <= 0 {
		return errors.Errorf("watch interval and debounce must be positive, got %v and %v", c.WatchInterval, c.WatchDebounce)
	}

	repack := func() {
		if _, err := Pack(in, out, w); err != nil {
			log.Printf("Could not pack %v: %v\n", in, err)
		}
	}

	last := modTime(in)
	repack()

	// the debounced func only signals; a full buffer already has a pack queued
	due := make(chan struct{}, 1)
	queue := func() {
		select {
		case due <- struct{}{}:
		default:
		}
	}
	debounced := debounce.New(c.WatchDebounce)
	ticker := time.NewTicker(c.WatchInterval)
	defer ticker.Stop()

	log.Printf("Watching %v\n", in)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if m := modTime(in); !m.Equal(last) {
				last = m
				debounced(queue)
			}
		case <-due:
			repack()
		}
	}
}

// zero when the file is missing, so a deleted-then-restored chart is picked up
func modTime(path string) time.Time {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}
	}
	return info.ModTime()
}
