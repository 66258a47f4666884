// Package persist keeps the aggregate player record in a key-value medium.
//
// Persistence is best-effort: every failure is logged and swallowed so the
// game keeps running on defaults or in-memory values.
package persist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/verte-zerg/ghosttype/internal/model"
	"github.com/verte-zerg/ghosttype/internal/progression"
)

// StatsKey is the key of the aggregate record.
const StatsKey = "ghost_type_stats"

// ErrUnavailable reports that no storage medium could be opened.
var ErrUnavailable = errors.New("storage unavailable")

// Medium is a key-value store holding the serialized record.
type Medium interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// History appends finished sessions.
type History interface {
	InsertSession(ctx context.Context, rec model.SessionRecord) (int64, error)
}

// Stats loads and saves the aggregate record.
type Stats struct {
	medium  Medium
	history History
	logger  *log.Logger
	now     func() time.Time
}

// New returns a Stats over medium. A nil medium behaves as unavailable storage;
// a nil history disables session history.
func New(medium Medium, history History, logger *log.Logger) *Stats {
	if logger == nil {
		logger = log.Default()
	}
	return &Stats{
		medium:  medium,
		history: history,
		logger:  logger,
		now:     time.Now,
	}
}

// DefaultStats returns the record for a player with no history.
func DefaultStats() model.PersistedStats {
	return model.PersistedStats{DifficultyMultiplier: progression.MinMultiplier}
}

// Load returns the stored record merged over defaults. It never fails.
func (s *Stats) Load() model.PersistedStats {
	stats, err := s.load(context.Background())
	if err != nil {
		s.logger.Warn("stats read failed, using defaults", "err", err)
		return DefaultStats()
	}
	return stats
}

func (s *Stats) load(ctx context.Context) (model.PersistedStats, error) {
	if s.medium == nil {
		return model.PersistedStats{}, ErrUnavailable
	}
	raw, ok, err := s.medium.Get(ctx, StatsKey)
	if err != nil {
		return model.PersistedStats{}, fmt.Errorf("failed to read stats: %w", err)
	}
	stats := DefaultStats()
	if !ok {
		return stats, nil
	}
	if err := json.Unmarshal(raw, &stats); err != nil {
		return model.PersistedStats{}, fmt.Errorf("failed to decode stats: %w", err)
	}
	stats.DifficultyMultiplier = progression.ClampMultiplier(stats.DifficultyMultiplier)
	return stats, nil
}

// Save stamps LastPlayed and writes the record. It reports false on failure.
func (s *Stats) Save(stats *model.PersistedStats) bool {
	now := s.now()
	stats.LastPlayed = &now
	if err := s.save(context.Background(), *stats); err != nil {
		s.logger.Warn("stats write failed", "err", err)
		return false
	}
	return true
}

// Update applies fn to the stored record and writes the result back. When the
// record cannot be read, fn runs over defaults for display only and nothing is
// written, so a transient fault never replaces the stored record. It reports
// whether the write happened.
func (s *Stats) Update(fn func(model.PersistedStats) model.PersistedStats) (model.PersistedStats, bool) {
	current, err := s.load(context.Background())
	if err != nil {
		s.logger.Warn("stats read failed, leaving record untouched", "err", err)
		return fn(DefaultStats()), false
	}
	next := fn(current)
	return next, s.Save(&next)
}

func (s *Stats) save(ctx context.Context, stats model.PersistedStats) error {
	if s.medium == nil {
		return ErrUnavailable
	}
	raw, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("failed to encode stats: %w", err)
	}
	if err := s.medium.Set(ctx, StatsKey, raw); err != nil {
		return fmt.Errorf("failed to write stats: %w", err)
	}
	return nil
}

// Reset clears the stored record. It reports false on failure.
func (s *Stats) Reset() bool {
	if s.medium == nil {
		s.logger.Warn("stats reset failed", "err", ErrUnavailable)
		return false
	}
	if err := s.medium.Delete(context.Background(), StatsKey); err != nil {
		s.logger.Warn("stats reset failed", "err", err)
		return false
	}
	return true
}

// BestStreak returns the stored best streak.
func (s *Stats) BestStreak() int {
	return s.Load().BestStreak
}

// DifficultyMultiplier returns the stored difficulty multiplier.
func (s *Stats) DifficultyMultiplier() float64 {
	return s.Load().DifficultyMultiplier
}

// RecordSession appends a finished session to history. It reports false on failure.
func (s *Stats) RecordSession(rec model.SessionRecord) bool {
	if s.history == nil {
		return false
	}
	if _, err := s.history.InsertSession(context.Background(), rec); err != nil {
		s.logger.Warn("session history write failed", "err", err)
		return false
	}
	return true
}
