package report

import (
	"fmt"
	"strings"

	"clustercheck/internal/sanity"
)

const bannerWidth = 80

// Renderer formats run output for one of the two entry points. Noun is
// the structure word used in headings ("cluster" or "snapshot").
type Renderer struct {
	Styles Styles
	Noun   string
}

// NewRenderer builds a Renderer with the default styles.
func NewRenderer(noun string) Renderer {
	return Renderer{Styles: DefaultStyles(), Noun: noun}
}

// StatusTable renders the per-structure one-line status table.
func (rd Renderer) StatusTable(run *sanity.Run) string {
	t := Table{
		Title:   "Detailed Results:",
		Headers: []string{capitalize(rd.Noun), "Atoms", "Xe", "Neighbors", "Status"},
	}
	for _, res := range run.Results {
		if !res.OK {
			t.AddRow(res.Label(), "-", "-", "-", rd.Styles.Bad.Render("ERROR: "+res.Err))
			continue
		}
		status := rd.Styles.Good.Render("GOOD")
		if res.Anomalous {
			status = rd.Styles.Bad.Render("ANOMALOUS")
		}
		t.AddRow(
			res.Label(),
			fmt.Sprintf("%d", res.NumAtoms),
			fmt.Sprintf("%d", res.NumTarget),
			formatCounts(res.NeighborCounts),
			status,
		)
	}
	return t.View(rd.Styles)
}

// Summary renders the aggregate analysis report for a finished run.
func (rd Renderer) Summary(run *sanity.Run) string {
	sum := Summarize(run)
	banner := rd.Styles.Muted.Render(strings.Repeat("=", bannerWidth))

	var sb strings.Builder
	sb.WriteString("\n" + banner + "\n")
	sb.WriteString(rd.Styles.Title.Render(strings.ToUpper(rd.Noun)+" ANALYSIS SUMMARY") + "\n")
	sb.WriteString(banner + "\n")

	sb.WriteString(rd.Styles.Bold.Render("Analysis Parameters:") + "\n")
	fmt.Fprintf(&sb, "  - Cutoff radius: %.2f Å\n", run.Rcut)
	fmt.Fprintf(&sb, "  - Minimum neighbors threshold: %d\n\n", run.MinNeighbors)

	sb.WriteString(rd.Styles.Bold.Render("File Statistics:") + "\n")
	fmt.Fprintf(&sb, "  - Total %ss found: %d\n", rd.Noun, sum.Total)
	fmt.Fprintf(&sb, "  - Successfully analyzed: %d\n", sum.Succeeded)
	fmt.Fprintf(&sb, "  - Failed analyses: %d\n\n", sum.Failed)

	if sum.Failed > 0 {
		sb.WriteString(rd.Styles.Bold.Render("Failed analyses:") + "\n")
		for _, res := range sum.FailedResults {
			fmt.Fprintf(&sb, "  - %s: %s\n", res.Label(), res.Err)
		}
		sb.WriteString("\n")
	}

	if sum.Succeeded == 0 {
		sb.WriteString("No successful analyses to report.\n")
		sb.WriteString(banner + "\n")
		return sb.String()
	}

	sb.WriteString(rd.Styles.Bold.Render(capitalize(rd.Noun)+" Composition:") + "\n")
	fmt.Fprintf(&sb, "  - Total atoms per %s: %d - %d (avg: %.1f)\n",
		rd.Noun, sum.Atoms.Min, sum.Atoms.Max, sum.Atoms.Mean)
	fmt.Fprintf(&sb, "  - Xe atoms per %s: %d - %d (avg: %.1f)\n\n",
		rd.Noun, sum.Targets.Min, sum.Targets.Max, sum.Targets.Mean)

	sb.WriteString(rd.Styles.Bold.Render("Xenon Coordination Analysis:") + "\n")
	fmt.Fprintf(&sb, "  - Total Xe atoms analyzed: %d\n", sum.Coordination.N)
	fmt.Fprintf(&sb, "  - Coordination numbers: %d - %d (avg: %.1f ± %.1f)\n\n",
		sum.Coordination.Min, sum.Coordination.Max, sum.Coordination.Mean, sum.Coordination.Std)

	sb.WriteString(rd.Styles.Bold.Render("Quality Assessment:") + "\n")
	fmt.Fprintf(&sb, "  - Good %ss: %s\n", rd.Noun,
		rd.Styles.Good.Render(fmt.Sprintf("%d (%.1f%%)", sum.Good, sum.GoodPct)))
	fmt.Fprintf(&sb, "  - Anomalous %ss: %s\n\n", rd.Noun,
		rd.Styles.Bad.Render(fmt.Sprintf("%d (%.1f%%)", sum.Anomalous, sum.AnomalousPct)))

	if len(sum.AnomalousResults) > 0 {
		sb.WriteString(rd.Styles.Bold.Render("Anomalous "+capitalize(rd.Noun)+"s Details:") + "\n")
		for _, res := range sum.AnomalousResults {
			fmt.Fprintf(&sb, "  - %s: Xe coordination = %s (min: %d)\n",
				res.Label(), formatCounts(res.NeighborCounts), res.MinCount())
		}
	}

	sb.WriteString("\n" + banner + "\n")
	return sb.String()
}

// formatCounts renders a neighbor-count vector as "[12, 13]".
func formatCounts(counts []int) string {
	parts := make([]string, len(counts))
	for i, c := range counts {
		parts[i] = fmt.Sprintf("%d", c)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
