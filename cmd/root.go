package cmd

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jsphweid/chartpak/chart"
	"github.com/jsphweid/chartpak/config"
	"github.com/jsphweid/chartpak/model"
	"github.com/jsphweid/chartpak/pack"
	"github.com/jsphweid/chartpak/tempo"
)

var cfg = config.Default()

var (
	outputPath string
	quiet      bool
)

func init() {
	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "output path (default: input path + suffix)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "only print errors")
}

var rootCmd = &cobra.Command{
	Use:   "chartpak [chart.json]",
	Short: "Packs rhythm game charts",
	Long: `Packs a JSON chart (song.bpm, song.speed, song.notes sections) into the binary
section/note tables read by the playback engine. The output lands next to the
input with the configured suffix (.cht by default).`,
	Args:          cobra.MaximumNArgs(1),
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// bare chartpak only prints usage, even with a broken config
		if !cmd.HasParent() && len(args) == 0 {
			return nil
		}
		loaded, err := config.Load()
		if err != nil {
			return err
		}
		cfg = loaded
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// no chart is not a failure, just print usage
		if len(args) == 0 {
			return cmd.Usage()
		}
		out := outputPath
		if out == "" {
			out = cfg.OutputPath(args[0])
		}
		_, err := Pack(args[0], out, progress(cmd))
		return err
	},
}

func progress(cmd *cobra.Command) io.Writer {
	if quiet {
		return io.Discard
	}
	return cmd.OutOrStdout()
}

// Pack converts the chart at in and writes the packed tables to out.
func Pack(in string, out string, w io.Writer) (model.ChartSummary, error) {
	song, err := chart.Load(in)
	if err != nil {
		return model.ChartSummary{}, err
	}

	t, err := tempo.Calculate(song.Bpm)
	if err != nil {
		return model.ChartSummary{}, err
	}
	fmt.Fprintf(w, "bpm: %.6g crochet: %.6g step_crochet: %.6g speed: %.6g\n", t.Bpm, t.Crochet, t.StepCrochet, song.Speed)

	c, err := pack.Convert(song)
	if err != nil {
		return model.ChartSummary{}, err
	}

	n, err := pack.WriteFile(out, c)
	if err != nil {
		return model.ChartSummary{}, err
	}

	summary := pack.Summarize(chartName(song, in), song.Bpm, c)
	fmt.Fprintf(w, "sections: %v notes: %v sustains: %v\n", summary.NumSections, summary.NumNotes, summary.NumSustains)
	fmt.Fprintf(w, "Wrote %v (%v bytes)\n", out, n)
	return summary, nil
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func chartName(song model.RawSong, path string) string {
	if song.Name != "" {
		return song.Name
	}
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}
