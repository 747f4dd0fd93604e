package console

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/checkernumber/avatar-checker/internal/analysis"
	"github.com/checkernumber/avatar-checker/internal/domain"
	"github.com/checkernumber/avatar-checker/internal/ports"
)

const (
	ruleWidth = 50

	// The console shows only the head of long tails; the JSON export
	// keeps every value.
	maxAgeRows       = 10
	maxHairColorRows = 8
)

// Reporter prints job progress and the final report to a writer, stdout
// by default. Diagnostics stay on the logger; this output is the
// program's product.
type Reporter struct {
	out io.Writer
}

var _ ports.Reporter = (*Reporter)(nil)

// NewReporter builds a reporter. A nil writer means stdout.
func NewReporter(out io.Writer) *Reporter {
	if out == nil {
		out = os.Stdout
	}
	return &Reporter{out: out}
}

// JobProgress prints one line per non-terminal poll.
func (r *Reporter) JobProgress(job domain.Job) {
	if job.Total > 0 {
		fmt.Fprintf(r.out, "%s: %d/%d numbers processed\n", job.Status, job.Success, job.Total)
		return
	}
	fmt.Fprintf(r.out, "status: %s\n", job.Status)
}

// RunCompleted prints the demographic report and the artifact locations.
func (r *Reporter) RunCompleted(outcome domain.Outcome) {
	job := outcome.Job
	fmt.Fprintf(r.out, "\ntask %s finished: %d/%d numbers processed\n", job.TaskID, job.Success, job.Total)

	if outcome.Summary == nil {
		fmt.Fprintln(r.out, "the service exported no result file")
		return
	}

	r.printSummary(*outcome.Summary)
	fmt.Fprintf(r.out, "\nresult file:  %s\n", outcome.ResultPath)
	fmt.Fprintf(r.out, "summary file: %s\n", outcome.SummaryPath)
}

// RunFailed prints the terminal failure.
func (r *Reporter) RunFailed(err error) {
	fmt.Fprintf(r.out, "\ncheck failed: %v\n", err)
}

func (r *Reporter) printSummary(sum domain.Summary) {
	rule := strings.Repeat("=", ruleWidth)
	fmt.Fprintf(r.out, "\n%s\n", rule)
	fmt.Fprintln(r.out, "WHATSAPP AVATAR ANALYSIS")
	fmt.Fprintln(r.out, rule)
	fmt.Fprintf(r.out, "Total numbers checked:   %d\n", sum.TotalRecords)
	fmt.Fprintf(r.out, "WhatsApp accounts found: %d (%s)\n", sum.WhatsAppAccounts, share(sum.WhatsAppAccounts, sum.TotalRecords))
	fmt.Fprintf(r.out, "Avatars available:       %d (%s)\n", sum.AvailableAvatars, share(sum.AvailableAvatars, sum.TotalRecords))

	for _, dim := range domain.SummaryDimensions() {
		dist := sum.Distribution(dim)
		if dist.KnownCount == 0 {
			continue
		}

		if dim == domain.DimCategory {
			fmt.Fprintf(r.out, "\n%s (%d of %d avatars)\n", sectionTitle(dim), dist.KnownCount, sum.AvailableAvatars)
		} else {
			fmt.Fprintf(r.out, "\n%s (%d known)\n", sectionTitle(dim), dist.KnownCount)
		}

		values := analysis.RankedValues(dist)
		limit := 0
		switch dim {
		case domain.DimAge:
			values = analysis.AgeValues(dist)
			limit = maxAgeRows
		case domain.DimHairColor:
			limit = maxHairColorRows
		}
		if limit > 0 && len(values) > limit {
			values = values[:limit]
		}
		for _, value := range values {
			fmt.Fprintf(r.out, "  %s: %d (%.1f%%)\n", value, dist.Counts[value], sum.Percentage(dim, value))
		}
	}

	fmt.Fprintf(r.out, "\n%s\n", rule)
}

func share(part, whole int) string {
	if whole == 0 {
		return "0.0%"
	}
	return fmt.Sprintf("%.1f%%", float64(part)/float64(whole)*100)
}

func sectionTitle(dim domain.Dimension) string {
	switch dim {
	case domain.DimCategory:
		return "AVATAR CATEGORY"
	case domain.DimSkinColor:
		return "ETHNICITY"
	}
	return strings.ToUpper(strings.ReplaceAll(string(dim), "_", " "))
}
