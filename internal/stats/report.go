package stats

import (
	"context"

	"github.com/verte-zerg/ghosttype/internal/model"
)

// DefaultWindow is the moving average window of the trend lines.
const DefaultWindow = 5

// Source lists recorded sessions in chronological order.
type Source interface {
	ListSessions(ctx context.Context, last int) ([]model.SessionRecord, error)
}

// Report contains precomputed data for stats rendering.
type Report struct {
	Persisted model.PersistedStats
	Sessions  []model.SessionRecord
	Window    int
}

// BuildReport loads the session history and pairs it with the persisted totals.
// A nil source yields a report without history.
func BuildReport(ctx context.Context, persisted model.PersistedStats, src Source, last int) (Report, error) {
	report := Report{Persisted: persisted, Window: DefaultWindow}
	if src == nil {
		return report, nil
	}
	sessions, err := src.ListSessions(ctx, last)
	if err != nil {
		return Report{}, err
	}
	report.Sessions = sessions
	return report, nil
}
