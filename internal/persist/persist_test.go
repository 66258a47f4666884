package persist

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/verte-zerg/ghosttype/internal/model"
	"github.com/verte-zerg/ghosttype/internal/store"
)

type memMedium struct {
	data   map[string][]byte
	getErr error
	setErr error
	delErr error
}

func newMemMedium() *memMedium {
	return &memMedium{data: map[string][]byte{}}
}

func (m *memMedium) Get(_ context.Context, key string) ([]byte, bool, error) {
	if m.getErr != nil {
		return nil, false, m.getErr
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memMedium) Set(_ context.Context, key string, value []byte) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.data[key] = value
	return nil
}

func (m *memMedium) Delete(_ context.Context, key string) error {
	if m.delErr != nil {
		return m.delErr
	}
	delete(m.data, key)
	return nil
}

type failingHistory struct{}

func (failingHistory) InsertSession(context.Context, model.SessionRecord) (int64, error) {
	return 0, errors.New("disk full")
}

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func TestLoadFreshStoreReturnsDefaults(t *testing.T) {
	stats := New(newMemMedium(), nil, quietLogger())
	got := stats.Load()
	if got.DifficultyMultiplier != 1.0 {
		t.Fatalf("expected multiplier 1.0, got %v", got.DifficultyMultiplier)
	}
	if got.BestStreak != 0 || got.TotalSessions != 0 || got.LastPlayed != nil {
		t.Fatalf("expected zeroed defaults, got %+v", got)
	}
}

func TestLoadMergesPartialRecord(t *testing.T) {
	medium := newMemMedium()
	medium.data[StatsKey] = []byte(`{"bestStreak":7,"totalWords":40,"unknown":"x"}`)
	got := New(medium, nil, quietLogger()).Load()
	if got.BestStreak != 7 || got.TotalWords != 40 {
		t.Fatalf("expected stored fields, got %+v", got)
	}
	if got.DifficultyMultiplier != 1.0 {
		t.Fatalf("expected default multiplier, got %v", got.DifficultyMultiplier)
	}
}

func TestLoadFaultsFallBackToDefaults(t *testing.T) {
	corrupt := newMemMedium()
	corrupt.data[StatsKey] = []byte(`{not json`)
	broken := newMemMedium()
	broken.getErr = errors.New("io error")

	for name, stats := range map[string]*Stats{
		"corrupt":     New(corrupt, nil, quietLogger()),
		"read error":  New(broken, nil, quietLogger()),
		"unavailable": New(nil, nil, quietLogger()),
	} {
		got := stats.Load()
		if got != DefaultStats() {
			t.Fatalf("%s: expected defaults, got %+v", name, got)
		}
	}
}

func TestLoadClampsMultiplier(t *testing.T) {
	medium := newMemMedium()
	medium.data[StatsKey] = []byte(`{"difficultyMultiplier":3.5}`)
	if got := New(medium, nil, quietLogger()).DifficultyMultiplier(); got != 2.0 {
		t.Fatalf("expected clamp to 2.0, got %v", got)
	}
}

func TestSaveStampsLastPlayed(t *testing.T) {
	medium := newMemMedium()
	stats := New(medium, nil, quietLogger())
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	stats.now = func() time.Time { return fixed }

	record := DefaultStats()
	record.BestStreak = 4
	if !stats.Save(&record) {
		t.Fatalf("expected save to succeed")
	}
	if record.LastPlayed == nil || !record.LastPlayed.Equal(fixed) {
		t.Fatalf("expected lastPlayed stamp, got %v", record.LastPlayed)
	}
	loaded := stats.Load()
	if loaded.BestStreak != 4 || loaded.LastPlayed == nil || !loaded.LastPlayed.Equal(fixed) {
		t.Fatalf("unexpected reload: %+v", loaded)
	}
	if stats.BestStreak() != 4 {
		t.Fatalf("expected best streak 4")
	}
}

func TestSaveAndResetFailuresReturnFalse(t *testing.T) {
	medium := newMemMedium()
	medium.setErr = errors.New("quota exceeded")
	medium.delErr = errors.New("locked")
	stats := New(medium, nil, quietLogger())
	record := DefaultStats()
	if stats.Save(&record) {
		t.Fatalf("expected save to fail")
	}
	if stats.Reset() {
		t.Fatalf("expected reset to fail")
	}

	unavailable := New(nil, nil, quietLogger())
	if unavailable.Save(&record) || unavailable.Reset() {
		t.Fatalf("expected unavailable storage to report false")
	}
}

func TestUpdateWritesThroughStoredRecord(t *testing.T) {
	medium := newMemMedium()
	medium.data[StatsKey] = []byte(`{"totalWords":500,"bestStreak":30,"difficultyMultiplier":1.5}`)
	stats := New(medium, nil, quietLogger())

	next, ok := stats.Update(func(cur model.PersistedStats) model.PersistedStats {
		cur.TotalWords += 3
		return cur
	})
	if !ok || next.TotalWords != 503 || next.LastPlayed == nil {
		t.Fatalf("expected saved update, got ok=%v %+v", ok, next)
	}
	if got := stats.Load(); got.TotalWords != 503 || got.BestStreak != 30 || got.DifficultyMultiplier != 1.5 {
		t.Fatalf("unexpected reload: %+v", got)
	}
}

func TestUpdateLeavesRecordOnReadFault(t *testing.T) {
	medium := newMemMedium()
	stored := []byte(`{"totalWords":500,"bestStreak":30,"bestWPM":70,"difficultyMultiplier":1.5}`)
	medium.data[StatsKey] = stored
	medium.getErr = errors.New("database is locked")
	stats := New(medium, nil, quietLogger())

	next, ok := stats.Update(func(cur model.PersistedStats) model.PersistedStats {
		cur.TotalSessions++
		return cur
	})
	if ok {
		t.Fatalf("expected update to report the fault")
	}
	if next.TotalSessions != 1 || next.DifficultyMultiplier != 1.0 {
		t.Fatalf("expected result over defaults, got %+v", next)
	}
	if string(medium.data[StatsKey]) != string(stored) {
		t.Fatalf("stored record was overwritten: %s", medium.data[StatsKey])
	}

	medium.getErr = nil
	if got := stats.Load(); got.TotalWords != 500 || got.BestWPM != 70 || got.DifficultyMultiplier != 1.5 {
		t.Fatalf("expected record intact, got %+v", got)
	}
}

func TestRecordSessionFailure(t *testing.T) {
	stats := New(newMemMedium(), failingHistory{}, quietLogger())
	if stats.RecordSession(model.SessionRecord{}) {
		t.Fatalf("expected history failure to report false")
	}
	if New(newMemMedium(), nil, quietLogger()).RecordSession(model.SessionRecord{}) {
		t.Fatalf("expected missing history to report false")
	}
}

func TestSQLiteBackedRoundTrip(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "ghosttype.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	stats := New(st, st, quietLogger())

	record := stats.Load()
	record.TotalSessions = 3
	record.DifficultyMultiplier = 1.15
	if !stats.Save(&record) {
		t.Fatalf("expected save to succeed")
	}
	if got := stats.Load(); got.TotalSessions != 3 || got.DifficultyMultiplier != 1.15 {
		t.Fatalf("unexpected reload: %+v", got)
	}
	if !stats.RecordSession(model.SessionRecord{StartedAt: time.Now(), EndedAt: time.Now(), WPM: 12}) {
		t.Fatalf("expected history write to succeed")
	}
	if !stats.Reset() {
		t.Fatalf("expected reset to succeed")
	}
	if got := stats.Load(); got != DefaultStats() {
		t.Fatalf("expected defaults after reset, got %+v", got)
	}
}
