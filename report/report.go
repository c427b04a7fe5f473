// Package report renders bias tables for people and for machines.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"

	"github.com/domino14/scramblebias/bias"
	"github.com/domino14/scramblebias/config"
)

// Document is the machine readable form of a report.
type Document struct {
	Rows        []bias.Row       `json:"rows" yaml:"rows"`
	Convergence bias.Convergence `json:"convergence" yaml:"convergence"`
}

type Options struct {
	Format string
	// Reference adds the documented value next to each computed one.
	Reference bool
	// Tag selects the locale used for grouping digits in text output.
	Tag language.Tag
}

// Write renders rows and their convergence summary to w.
func Write(w io.Writer, opts Options, rows []bias.Row, conv bias.Convergence) error {
	switch opts.Format {
	case config.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(Document{Rows: rows, Convergence: conv})
	case config.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(Document{Rows: rows, Convergence: conv}); err != nil {
			return err
		}
		return enc.Close()
	case config.FormatText, "":
		return writeText(w, opts, rows, conv)
	}
	return fmt.Errorf("%w: %q", config.ErrUnknownFormat, opts.Format)
}

func writeText(w io.Writer, opts Options, rows []bias.Row, conv bias.Convergence) error {
	tag := opts.Tag
	if tag == language.Und {
		tag = language.English
	}
	p := message.NewPrinter(tag)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	if opts.Reference {
		p.Fprintf(tw, "bit\tpopulation\tbias\treference\t\n")
	} else {
		p.Fprintf(tw, "bit\tpopulation\tbias\t\n")
	}
	for _, r := range rows {
		p.Fprintf(tw, "%d\t%d\t%s\t", r.Bit, r.Population, value(r))
		if opts.Reference {
			p.Fprintf(tw, "%s\t", reference(r))
		}
		p.Fprintf(tw, "\n")
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(conv.Ratios) == 0 {
		return nil
	}
	_, err := p.Fprintf(w, "\nratio of consecutive bits: mean %.6f ± %.6f (%.0f%%), last %.6f, %.6f from √0.5\n",
		conv.Mean, conv.Interval, conv.Confidence, conv.Last, conv.Distance)
	return err
}

func value(r bias.Row) string {
	if !r.Computed {
		return "-"
	}
	return fmt.Sprintf("%.6f", r.Value)
}

func reference(r bias.Row) string {
	if r.Reference == nil {
		return "-"
	}
	s := fmt.Sprintf("%.6f", *r.Reference)
	if r.Extrapolated {
		s += " (est.)"
	}
	return s
}
