package statistics

import (
	"math"
	"strings"
	"testing"
)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func bb(net int) HandResult { return HandResult{NetChips: net, BigBlind: 10} }

func TestStatistics_Empty(t *testing.T) {
	t.Parallel()
	stats := &Statistics{}

	for name, got := range map[string]float64{
		"mean":       stats.Mean(),
		"variance":   stats.Variance(),
		"stddev":     stats.StdDev(),
		"stderr":     stats.StdError(),
		"median":     stats.Median(),
		"percentile": stats.Percentile(0.9),
	} {
		if got != 0 {
			t.Errorf("expected %s of 0 for empty stats, got %f", name, got)
		}
	}
	if err := stats.Validate(); err == nil {
		t.Error("expected empty stats to fail validation")
	}
}

func TestStatistics_SingleValue(t *testing.T) {
	t.Parallel()
	stats := &Statistics{}
	stats.Add(HandResult{
		NetChips:       25,
		BigBlind:       10,
		Position:       3,
		WentToShowdown: true,
		PotChips:       60,
		StreetReached:  "river",
	})

	if stats.Hands != 1 {
		t.Errorf("expected 1 hand, got %d", stats.Hands)
	}
	if stats.Mean() != 2.5 {
		t.Errorf("expected mean of 2.5, got %f", stats.Mean())
	}
	if stats.Variance() != 0 {
		t.Errorf("expected variance of 0 for single value, got %f", stats.Variance())
	}
	if stats.Median() != 2.5 {
		t.Errorf("expected median of 2.5, got %f", stats.Median())
	}
	if stats.ShowdownWins != 1 || stats.ShowdownHands != 1 {
		t.Errorf("expected 1 showdown win from 1 showdown, got %d/%d", stats.ShowdownWins, stats.ShowdownHands)
	}
	if stats.PositionMean(3) != 2.5 {
		t.Errorf("expected position 3 mean 2.5, got %f", stats.PositionMean(3))
	}
	if stats.Streets["river"] != 1 {
		t.Errorf("expected one hand reaching the river, got %v", stats.Streets)
	}
	if err := stats.Validate(); err != nil {
		t.Errorf("unexpected validation error: %v", err)
	}
}

func TestStatistics_MultipleValues(t *testing.T) {
	t.Parallel()
	stats := &Statistics{}
	for _, net := range []int{10, 20, 30, 40, 50} {
		stats.Add(bb(net))
	}

	if !near(stats.Mean(), 3) {
		t.Errorf("expected mean 3, got %f", stats.Mean())
	}
	if !near(stats.Variance(), 2.5) {
		t.Errorf("expected variance 2.5, got %f", stats.Variance())
	}
	if !near(stats.StdError(), math.Sqrt(2.5)/math.Sqrt(5)) {
		t.Errorf("unexpected standard error %f", stats.StdError())
	}
	if !near(stats.BBPer100(), 300) {
		t.Errorf("expected 300 bb/100, got %f", stats.BBPer100())
	}
	lo, hi := stats.ConfidenceInterval95()
	if !(lo < 3 && hi > 3) || !near(hi-3, 3-lo) {
		t.Errorf("confidence interval [%f, %f] not centred on the mean", lo, hi)
	}
}

func TestStatistics_Percentiles(t *testing.T) {
	t.Parallel()
	stats := &Statistics{}
	for _, net := range []int{40, 10, 30, 20} {
		stats.Add(bb(net))
	}

	tests := []struct {
		p    float64
		want float64
	}{
		{0, 1},
		{0.5, 2.5},
		{1, 4},
		{1.0 / 3, 2},
	}
	for _, tt := range tests {
		if got := stats.Percentile(tt.p); !near(got, tt.want) {
			t.Errorf("Percentile(%v) = %f, want %f", tt.p, got, tt.want)
		}
	}
	if stats.Values[0] != 4 {
		t.Error("percentile must not reorder the recorded values")
	}
}

func TestStatistics_ShowdownLedger(t *testing.T) {
	t.Parallel()
	stats := &Statistics{}
	stats.Add(HandResult{NetChips: 100, BigBlind: 10, WentToShowdown: true})
	stats.Add(HandResult{NetChips: -40, BigBlind: 10, WentToShowdown: true})
	stats.Add(HandResult{NetChips: 30, BigBlind: 10})
	stats.Add(HandResult{NetChips: -10, BigBlind: 10})

	if stats.ShowdownWins != 1 || stats.NonShowdownWins != 1 || stats.ShowdownHands != 2 {
		t.Errorf("unexpected win counts: %+v", stats)
	}
	if !near(stats.ShowdownBB, 6) || !near(stats.NonShowdownBB, 2) {
		t.Errorf("unexpected buckets: showdown %f, non-showdown %f", stats.ShowdownBB, stats.NonShowdownBB)
	}
	if !stats.IsLedgerBalanced() {
		t.Error("ledger should balance")
	}
}

func TestStatistics_PotSizeTracking(t *testing.T) {
	t.Parallel()
	stats := &Statistics{}
	stats.Add(HandResult{NetChips: 10, BigBlind: 10, PotChips: 100})
	stats.Add(HandResult{NetChips: -200, BigBlind: 10, PotChips: 600})
	stats.Add(HandResult{NetChips: 20, BigBlind: 20, PotChips: 400})

	if stats.MaxPotChips != 600 || stats.MaxPotBB != 60 {
		t.Errorf("expected max pot 600 chips / 60bb, got %d / %f", stats.MaxPotChips, stats.MaxPotBB)
	}
	if stats.BigPots != 1 || !near(stats.BigPotsBB, -20) {
		t.Errorf("expected one big pot losing 20bb, got %d / %f", stats.BigPots, stats.BigPotsBB)
	}
}

func TestStatistics_Merge(t *testing.T) {
	t.Parallel()
	a, b, all := &Statistics{}, &Statistics{}, &Statistics{}
	results := []HandResult{
		{NetChips: 50, BigBlind: 10, Position: 0, WentToShowdown: true, PotChips: 800, StreetReached: "river"},
		{NetChips: -20, BigBlind: 10, Position: 1, StreetReached: "preflop"},
		{NetChips: 5, BigBlind: 10, Position: 2, PotChips: 30, StreetReached: "flop"},
		{NetChips: -35, BigBlind: 10, Position: 1, WentToShowdown: true, PotChips: 70, StreetReached: "river"},
	}
	for i, r := range results {
		all.Add(r)
		if i%2 == 0 {
			a.Add(r)
		} else {
			b.Add(r)
		}
	}
	a.Merge(b)

	if a.Hands != all.Hands || !near(a.Mean(), all.Mean()) || !near(a.Variance(), all.Variance()) {
		t.Errorf("merged stats differ: %+v vs %+v", a, all)
	}
	if a.PositionResults != all.PositionResults || a.Streets["river"] != 2 {
		t.Errorf("merged breakdowns differ")
	}
	if a.MaxPotChips != 800 || a.BigPots != 1 {
		t.Errorf("merged pot tracking differs")
	}
	if err := a.Validate(); err != nil {
		t.Errorf("merged stats invalid: %v", err)
	}
}

func TestStatistics_Validate(t *testing.T) {
	t.Parallel()
	valid := func() *Statistics {
		s := &Statistics{}
		s.Add(HandResult{NetChips: 10, BigBlind: 10, WentToShowdown: true})
		s.Add(HandResult{NetChips: -10, BigBlind: 10, Position: 1})
		return s
	}

	tests := []struct {
		name   string
		corrupt func(*Statistics)
		errMsg string
	}{
		{"ledger mismatch", func(s *Statistics) { s.AllBB += 5 }, "ledger mismatch"},
		{"hands count", func(s *Statistics) { s.Hands, s.Values, s.PositionResults = 0, nil, [MaxPositions]PositionStats{} }, "invalid hands count"},
		{"values mismatch", func(s *Statistics) { s.Values = s.Values[:1] }, "values array length"},
		{"too many wins", func(s *Statistics) { s.NonShowdownWins = 5 }, "exceeds total hands"},
		{"showdown wins", func(s *Statistics) { s.ShowdownHands = 0 }, "showdown wins"},
		{"position mismatch", func(s *Statistics) { s.PositionResults[4].Hands = 3 }, "position hands total"},
	}
	if err := valid().Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s := valid()
			tt.corrupt(s)
			err := s.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.errMsg) {
				t.Errorf("expected error containing %q, got %v", tt.errMsg, err)
			}
		})
	}
}

func TestHandResult_NetBB(t *testing.T) {
	t.Parallel()
	if got := (HandResult{NetChips: -45, BigBlind: 10}).NetBB(); got != -4.5 {
		t.Errorf("expected -4.5bb, got %f", got)
	}
	if got := (HandResult{NetChips: 45}).NetBB(); got != 0 {
		t.Errorf("expected 0 without a big blind, got %f", got)
	}
}
