package cmd

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/tidwall/sjson"

	"github.com/jsphweid/chartpak/model"
	"github.com/jsphweid/chartpak/pack"
)

var inspectJSON bool

func init() {
	inspectCmd.Flags().BoolVar(&inspectJSON, "json", false, "print the tables as JSON")
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <chart.cht>",
	Short: "Prints a packed chart",
	Long:  `Decodes a packed chart and prints its section and note tables.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := pack.ReadFile(args[0])
		if err != nil {
			return err
		}
		if inspectJSON {
			dat, err := chartJSON(c)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(dat))
			return nil
		}
		inspect(cmd.OutOrStdout(), c)
		return nil
	},
}

func inspect(w io.Writer, c model.Chart) {
	fmt.Fprintf(w, "section table: %v bytes\n", pack.HeaderWord(len(c.Sections)))
	for i, s := range c.Sections {
		fmt.Fprintf(w, "section %3d: end %5d flag %08b\n", i, s.End, s.Flag)
	}
	for i, n := range c.Notes {
		fmt.Fprintf(w, "note %5d: pos %5d type %08b\n", i, n.Pos, n.Type)
	}
}

// chartJSON lays the tables out as {"sectionTableLength", "sections": [...], "notes": [...]}.
func chartJSON(c model.Chart) ([]byte, error) {
	doc := []byte(`{"sections":[],"notes":[]}`)

	var err error
	set := func(path string, value interface{}) {
		if err == nil {
			doc, err = sjson.SetBytes(doc, path, value)
		}
	}

	set("sectionTableLength", pack.HeaderWord(len(c.Sections)))
	for i, s := range c.Sections {
		prefix := fmt.Sprintf("sections.%d.", i)
		set(prefix+"end", s.End)
		set(prefix+"flag", uint8(s.Flag))
		set(prefix+"altAnim", s.Flag.Has(model.SectionFlagAltAnim))
		set(prefix+"oppFocus", s.Flag.Has(model.SectionFlagOppFocus))
	}
	for i, n := range c.Notes {
		prefix := fmt.Sprintf("notes.%d.", i)
		set(prefix+"pos", n.Pos)
		set(prefix+"type", uint8(n.Type))
		set(prefix+"lane", n.Type.Lane())
		set(prefix+"opponent", n.Type.Has(model.NoteFlagOpponent))
		set(prefix+"sustain", n.Type.Has(model.NoteFlagSustain))
		set(prefix+"sustainEnd", n.Type.Has(model.NoteFlagSustainEnd))
		set(prefix+"hit", n.Type.Has(model.NoteFlagHit))
	}

	return doc, errors.Wrap(err, "could not build chart JSON")
}
