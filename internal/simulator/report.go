package simulator

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/lox/holdemtable/internal/bot"
	"github.com/lox/holdemtable/internal/statistics"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	titleStyle  = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1).
			Bold(true)
)

// Render formats the report as terminal tables.
func (r *Report) Render() string {
	var b strings.Builder
	fmt.Fprintln(&b, titleStyle.Render(fmt.Sprintf("%d hands on %d tables in %s", r.Hands, r.Tables, r.Elapsed.Round(time.Millisecond))))
	if r.Hands > 0 {
		fmt.Fprintf(&b, "showdowns %d (%.1f%%), won uncontested %d (%.1f%%)\n\n",
			r.Showdowns, pct(r.Showdowns, r.Hands), r.Uncontested, pct(r.Uncontested, r.Hands))
	}

	personalities := make([]string, 0, len(r.ByPersonality))
	for _, p := range bot.Personalities {
		if _, ok := r.ByPersonality[p]; ok {
			personalities = append(personalities, string(p))
		}
	}
	b.WriteString(statsTable("personality", personalities, func(k string) *statistics.Statistics {
		return r.ByPersonality[bot.Personality(k)]
	}))
	b.WriteString("\n")

	var levels []string
	for _, d := range difficulties {
		if _, ok := r.ByDifficulty[d]; ok {
			levels = append(levels, string(d))
		}
	}
	b.WriteString(statsTable("difficulty", levels, func(k string) *statistics.Statistics {
		return r.ByDifficulty[bot.Difficulty(k)]
	}))
	b.WriteString("\n")
	return b.String()
}

func statsTable(label string, keys []string, get func(string) *statistics.Statistics) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(label, "hands", "bb/100", "95% CI", "showdown", "sd won", "max pot").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	for _, k := range keys {
		s := get(k)
		lo, hi := s.ConfidenceInterval95()
		t.Row(
			k,
			fmt.Sprint(s.Hands),
			fmt.Sprintf("%+.1f", s.BBPer100()),
			fmt.Sprintf("[%+.1f, %+.1f]", lo*100, hi*100),
			fmt.Sprintf("%.1f%%", pct(s.ShowdownHands, s.Hands)),
			fmt.Sprintf("%.1f%%", pct(s.ShowdownWins, s.ShowdownHands)),
			fmt.Sprintf("%.0fbb", s.MaxPotBB),
		)
	}
	return t.Render()
}

func pct(n, of int) float64 {
	if of == 0 {
		return 0
	}
	return float64(n) / float64(of) * 100
}
