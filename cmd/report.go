package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jsphweid/chartpak/chart"
	"github.com/jsphweid/chartpak/db"
	"github.com/jsphweid/chartpak/model"
	"github.com/jsphweid/chartpak/pack"
	"github.com/jsphweid/chartpak/util"
)

var reportCatalog bool

func init() {
	reportCmd.Flags().BoolVar(&reportCatalog, "catalog", false, "store each summary in the DynamoDB catalog")
	rootCmd.AddCommand(reportCmd)
}

var reportCmd = &cobra.Command{
	Use:   "report <chart.json|dir>...",
	Short: "Creates a report",
	Long:  `Packs every chart found in memory and reports what each one holds.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var catalog *db.Catalog
		if reportCatalog {
			var err error
			if catalog, err = db.Open(cfg); err != nil {
				return err
			}
		}
		_, err := Report(args, catalog, cmd.OutOrStdout())
		return err
	},
}

type ChartsReport struct {
	Summaries []model.ChartSummary
	Skipped   []string
	// summaries read back from the catalog matching what was stored
	Cataloged int
}

func summarize(path string) (model.ChartSummary, error) {
	song, err := chart.Load(path)
	if err != nil {
		return model.ChartSummary{}, err
	}
	c, err := pack.Convert(song)
	if err != nil {
		return model.ChartSummary{}, err
	}
	return pack.Summarize(chartName(song, path), song.Bpm, c), nil
}

// Report summarizes every chart under paths. Charts that fail to pack are skipped.
// A nil catalog stores nothing.
func Report(paths []string, catalog *db.Catalog, w io.Writer) (ChartsReport, error) {
	var report ChartsReport

	chartPaths, err := util.GatherChartPaths(paths)
	if err != nil {
		return report, err
	}

	for i, path := range chartPaths {
		fmt.Fprintf(w, "Processing %v of %v charts\n", i+1, len(chartPaths))
		s, err := summarize(path)
		if err != nil {
			fmt.Fprintf(w, "Skipping %v because: %v\n", path, err)
			report.Skipped = append(report.Skipped, path)
			continue
		}
		report.Summaries = append(report.Summaries, s)

		if catalog != nil {
			if err := catalog.PutSummary(s); err != nil {
				return report, err
			}
		}
	}

	var notes, sustains, opponent, bytes []int
	for _, s := range report.Summaries {
		fmt.Fprintf(w, "%v: bpm %v, %v sections, %v notes (%v sustain, %v opponent), last pos %v, %v bytes\n",
			s.Name, s.Bpm, s.NumSections, s.NumNotes, s.NumSustains, s.NumOpponent, s.LastPos, s.NumBytes)
		notes = append(notes, s.NumNotes)
		sustains = append(sustains, s.NumSustains)
		opponent = append(opponent, s.NumOpponent)
		bytes = append(bytes, s.NumBytes)
	}

	fmt.Fprintf(w, "charts: %v packed, %v skipped\n", len(report.Summaries), len(report.Skipped))
	fmt.Fprintf(w, "total notes: %v\n", util.Sum(notes))
	fmt.Fprintf(w, "total sustains: %v\n", util.Sum(sustains))
	fmt.Fprintf(w, "total opponent: %v\n", util.Sum(opponent))
	fmt.Fprintf(w, "total bytes: %v\n", util.Sum(bytes))

	if catalog != nil {
		if err := verifyCatalog(catalog, &report, w); err != nil {
			return report, err
		}
	}
	return report, nil
}

// verifyCatalog reads every stored summary back and counts the ones that match.
func verifyCatalog(catalog *db.Catalog, report *ChartsReport, w io.Writer) error {
	names := make([]string, 0, len(report.Summaries))
	for _, s := range report.Summaries {
		names = append(names, s.Name)
	}
	stored, err := catalog.GetSummaries(names)
	if err != nil {
		return err
	}

	for _, s := range report.Summaries {
		if got, ok := stored[s.Name]; ok && got == s {
			report.Cataloged++
		} else {
			fmt.Fprintf(w, "Catalog does not hold the summary for %v\n", s.Name)
		}
	}
	fmt.Fprintf(w, "catalog: %v of %v summaries stored\n", report.Cataloged, len(report.Summaries))
	return nil
}
