package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	domain "github.com/donaldgifford/card-market/pkg/types"
)

const timeLayout = "2006-01-02 15:04"

// tabWriter wraps tabwriter with error tracking.
type tabWriter struct {
	*tabwriter.Writer
	err error
}

func newTabWriter(w io.Writer) *tabWriter {
	return &tabWriter{Writer: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}
}

func (tw *tabWriter) writef(format string, args ...any) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.Writer, format, args...)
}

func (tw *tabWriter) finish() error {
	if tw.err != nil {
		return tw.err
	}
	return tw.Flush()
}

// printCardTable lists cards. Cards for which isNew reports true are marked.
func printCardTable(w io.Writer, cards []domain.Card, isNew func(string) bool) error {
	tw := newTabWriter(w)
	tw.writef("ID\tNAME\tDESCRIPTION\tNEW\n")
	for i := range cards {
		mark := ""
		if isNew != nil && isNew(cards[i].ID) {
			mark = "*"
		}
		tw.writef("%s\t%s\t%s\t%s\n",
			cards[i].ID,
			cards[i].Name,
			truncate(cards[i].Description, 48),
			mark,
		)
	}
	return tw.finish()
}

func printTradeTable(w io.Writer, trades []domain.Trade) error {
	tw := newTabWriter(w)
	tw.writef("ID\tOWNER\tCREATED\tOFFERING\tRECEIVING\n")
	for i := range trades {
		t := &trades[i]
		tw.writef("%s\t%s\t%s\t%s\t%s\n",
			t.ID,
			t.User.Name,
			displayTime(t.CreatedAt),
			truncate(cardNames(t.Offering()), 40),
			truncate(cardNames(t.Receiving()), 40),
		)
	}
	return tw.finish()
}

// displayTime shows an API timestamp in local time, or verbatim when it
// cannot be parsed.
func displayTime(raw string) string {
	if ts, ok := domain.ParseTimestamp(raw); ok {
		return ts.Local().Format(timeLayout)
	}
	return raw
}

func printProfile(w io.Writer, u *domain.UserProfile, avatar bool) error {
	tw := newTabWriter(w)
	tw.writef("ID:\t%s\n", u.ID)
	tw.writef("Name:\t%s\n", u.Name)
	tw.writef("Email:\t%s\n", u.Email)
	tw.writef("Avatar:\t%v\n", avatar)
	return tw.finish()
}

// printPageFooter reports the page position and whether more pages exist.
func printPageFooter(w io.Writer, page, rpp int, more bool) error {
	next := ""
	if more {
		next = fmt.Sprintf(" (more: --page %d)", page+1)
	}
	_, err := fmt.Fprintf(w, "\nPage %d, %d per page%s\n", page, rpp, next)
	return err
}

func cardNames(cards []domain.TradeCard) string {
	names := make([]string, 0, len(cards))
	for i := range cards {
		name := cards[i].Card.Name
		if name == "" {
			name = cards[i].CardID
		}
		names = append(names, name)
	}
	return strings.Join(names, ", ")
}

// printMetrics writes every non-zero cardmarket counter and histogram count
// gathered during the command.
func printMetrics(w io.Writer) error {
	return writeMetrics(w, prometheus.DefaultGatherer)
}

func writeMetrics(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("gathering metrics: %w", err)
	}

	var lines []string
	for _, mf := range families {
		name := mf.GetName()
		if !strings.HasPrefix(name, "cardmarket_") {
			continue
		}
		for _, m := range mf.GetMetric() {
			value, suffix := sampleOf(mf.GetType(), m)
			if value == 0 {
				continue
			}
			lines = append(lines, fmt.Sprintf("%s%s%s\t%g", name, suffix, labelsOf(m), value))
		}
	}
	slices.Sort(lines)

	tw := newTabWriter(w)
	for _, line := range lines {
		tw.writef("%s\n", line)
	}
	return tw.finish()
}

func sampleOf(kind dto.MetricType, m *dto.Metric) (float64, string) {
	switch kind {
	case dto.MetricType_COUNTER:
		return m.GetCounter().GetValue(), ""
	case dto.MetricType_GAUGE:
		return m.GetGauge().GetValue(), ""
	case dto.MetricType_HISTOGRAM:
		return float64(m.GetHistogram().GetSampleCount()), "_count"
	default:
		return 0, ""
	}
}

func labelsOf(m *dto.Metric) string {
	pairs := m.GetLabel()
	if len(pairs) == 0 {
		return ""
	}
	parts := make([]string, 0, len(pairs))
	for _, lp := range pairs {
		parts = append(parts, fmt.Sprintf("%s=%q", lp.GetName(), lp.GetValue()))
	}
	return "{" + strings.Join(parts, ",") + "}"
}

func outputJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
