package main

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"

	"github.com/talgya/decosim/internal/engine"
	"github.com/talgya/decosim/internal/persistence"
	"github.com/talgya/decosim/internal/zhl16"
)

func atm(p float64) string {
	return humanize.FtoaWithDigits(p, zhl16.Precision)
}

func printReport(w io.Writer, state engine.State, ceiling zhl16.Ceiling) {
	fmt.Fprintf(w, "Session %s (%s table, variant %s)\n", state.Session, state.Revision, ceiling.Variant)
	fmt.Fprintf(w, "  Depth:   %s m\n", humanize.FtoaWithDigits(state.Depth, 1))
	fmt.Fprintf(w, "  Runtime: %s\n\n", engine.RunTime(state.Elapsed))

	fmt.Fprintf(w, "  %-4s %10s %10s %10s\n", "cpt", "pN2", "pHe", "tolerated")
	for _, c := range ceiling.Compartments {
		cs, _ := state.Lookup(c.ID)
		mark := ""
		if c.ID == ceiling.Governing.ID {
			mark = " *"
		}
		fmt.Fprintf(w, "  %-4s %10s %10s %10s%s\n", c.ID, atm(cs.Nitrogen), atm(cs.Helium), atm(c.ToleratedPressure), mark)
	}

	fmt.Fprintln(w)
	if ceiling.MandatoryStop() {
		fmt.Fprintf(w, "Ceiling: %s m (%s atm, compartment %s)\n",
			humanize.FtoaWithDigits(ceiling.Depth(), 1), atm(ceiling.Pressure()), ceiling.Governing.ID)
	} else {
		fmt.Fprintf(w, "No ceiling: direct ascent to the surface tolerated (compartment %s governs at %s atm)\n",
			ceiling.Governing.ID, atm(ceiling.Pressure()))
	}
}

func printHistory(w io.Writer, records []persistence.SegmentRecord) {
	fmt.Fprintf(w, "\nLast %d segments:\n", len(records))
	for _, r := range records {
		fmt.Fprintf(w, "  %7s  %-8s %5sm -> %5sm  %s min\n",
			engine.RunTime(r.Elapsed), r.Kind,
			humanize.FtoaWithDigits(r.StartDepth, 1), humanize.FtoaWithDigits(r.EndDepth, 1),
			humanize.FtoaWithDigits(r.Duration, 2))
	}
}
