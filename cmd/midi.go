package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jsphweid/chartpak/chart"
	"github.com/jsphweid/chartpak/midi"
	"github.com/jsphweid/chartpak/pack"
	"github.com/jsphweid/chartpak/util"
)

var midiOutputPath string

func init() {
	midiCmd.Flags().StringVarP(&midiOutputPath, "output", "o", "", "output path (default: input path + .mid)")
	rootCmd.AddCommand(midiCmd)
}

var midiCmd = &cobra.Command{
	Use:   "midi <chart.json>",
	Short: "Exports a chart preview as a MIDI file",
	Long: `Packs the chart in memory and renders its note table as a standard MIDI file,
one track for the player and one for the opponent, for listening back in a DAW.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := midiOutputPath
		if out == "" {
			out = args[0] + ".mid"
		}

		song, err := chart.Load(args[0])
		if err != nil {
			return err
		}
		c, err := pack.Convert(song)
		if err != nil {
			return err
		}
		dat, err := midi.Bytes(c, song.Bpm, chartName(song, args[0]))
		if err != nil {
			return err
		}
		if err := util.WriteFileAtomic(out, dat); err != nil {
			return err
		}

		fmt.Fprintf(progress(cmd), "Wrote %v (%v bytes)\n", out, len(dat))
		return nil
	},
}
