package stats

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/ghosttype/internal/model"
	"github.com/verte-zerg/ghosttype/internal/store"
)

func TestMovingAverage(t *testing.T) {
	got := MovingAverage([]float64{2, 4, 6, 8}, 2)
	want := []float64{2, 3, 5, 7}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("index %d: got %v want %v", i, got[i], want[i])
		}
	}
	same := MovingAverage([]float64{1, 5}, 1)
	if same[0] != 1 || same[1] != 5 {
		t.Fatalf("window 1 must copy values, got %v", same)
	}
}

func TestSparkline(t *testing.T) {
	if Sparkline(nil) != "" {
		t.Fatalf("expected empty sparkline")
	}
	line := []rune(Sparkline([]float64{0, 5, 10}))
	if len(line) != 3 || line[0] != '▁' || line[2] != '█' {
		t.Fatalf("unexpected sparkline %q", string(line))
	}
	flat := []rune(Sparkline([]float64{3, 3}))
	if flat[0] != flat[1] {
		t.Fatalf("flat series must render evenly, got %q", string(flat))
	}
}

func TestRenderSummary(t *testing.T) {
	played := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	p := model.PersistedStats{
		TotalSessions:        4,
		TotalWords:           37,
		TotalKeystrokes:      200,
		TotalErrors:          10,
		BestStreak:           12,
		BestWPM:              48,
		DifficultyMultiplier: 1.1,
		LastPlayed:           &played,
	}
	var buf bytes.Buffer
	if err := RenderSummary(&buf, p); err != nil {
		t.Fatalf("render summary: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Sessions", "37", "95%", "Best streak", "48", "1.10x"} {
		if !strings.Contains(out, want) {
			t.Fatalf("summary missing %q:\n%s", want, out)
		}
	}

	buf.Reset()
	if err := RenderSummary(&buf, model.PersistedStats{DifficultyMultiplier: 1}); err != nil {
		t.Fatalf("render summary: %v", err)
	}
	if !strings.Contains(buf.String(), "never") {
		t.Fatalf("expected never played:\n%s", buf.String())
	}
}

func TestRenderTrendFitsWidth(t *testing.T) {
	sessions := make([]model.SessionRecord, 100)
	for i := range sessions {
		sessions[i] = model.SessionRecord{WPM: i, Accuracy: 90}
	}
	var buf bytes.Buffer
	if err := RenderTrend(&buf, sessions, 3, 40); err != nil {
		t.Fatalf("render trend: %v", err)
	}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if displayWidth(line) > 40 {
			t.Fatalf("line wider than 40: %q", line)
		}
	}
}

type failingSource struct{}

func (failingSource) ListSessions(context.Context, int) ([]model.SessionRecord, error) {
	return nil, errors.New("boom")
}

func TestBuildReport(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "ghosttype.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})

	ctx := context.Background()
	start := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		rec := model.SessionRecord{
			StartedAt:            start.Add(time.Duration(i) * time.Hour),
			EndedAt:              start.Add(time.Duration(i)*time.Hour + time.Minute),
			Level:                i + 1,
			WordsCompleted:       i * 4,
			WPM:                  10 + i,
			Accuracy:             90,
			DifficultyMultiplier: 1,
		}
		if _, err := st.InsertSession(ctx, rec); err != nil {
			t.Fatalf("insert session: %v", err)
		}
	}

	report, err := BuildReport(ctx, model.PersistedStats{TotalSessions: 3, DifficultyMultiplier: 1}, st, 2)
	if err != nil {
		t.Fatalf("build report: %v", err)
	}
	if len(report.Sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(report.Sessions))
	}
	if report.Sessions[0].WPM != 11 || report.Sessions[1].WPM != 12 {
		t.Fatalf("unexpected sessions: %+v", report.Sessions)
	}

	var buf bytes.Buffer
	if err := Render(&buf, report, 80); err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{"Summary", "Sessions", "Trend", "Difficulty"} {
		if !strings.Contains(buf.String(), want) {
			t.Fatalf("report missing %q:\n%s", want, buf.String())
		}
	}
}

func TestBuildReportWithoutHistory(t *testing.T) {
	report, err := BuildReport(context.Background(), model.PersistedStats{}, nil, 0)
	if err != nil {
		t.Fatalf("build report: %v", err)
	}
	var buf bytes.Buffer
	if err := Render(&buf, report, 80); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(buf.String(), "No sessions found.") {
		t.Fatalf("expected empty history notice:\n%s", buf.String())
	}
	if _, err := BuildReport(context.Background(), model.PersistedStats{}, failingSource{}, 0); err == nil {
		t.Fatalf("expected source error")
	}
}
