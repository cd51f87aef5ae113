package directory

import (
	"context"
	"fmt"
	"time"

	"tableflip.dev/pilot/pkg/admin"
	"tableflip.dev/pilot/pkg/app"
)

const (
	day   = 24 * time.Hour
	week  = 7 * day
	month = 30 * day
)

// Stats computes the dashboard figures relative to now.
func (d *Directory) Stats(ctx context.Context, now time.Time) (admin.Stats, error) {
	now = now.UTC()
	var s admin.Stats
	queries := []struct {
		dst   *int
		query string
		args  []interface{}
	}{
		{&s.TotalUsers, `SELECT COUNT(*) FROM users`, nil},
		{&s.ActiveUsers24h, `SELECT COUNT(*) FROM users WHERE last_sign_in >= ?`, []interface{}{now.Add(-day)}},
		{&s.ActiveUsers7d, `SELECT COUNT(*) FROM users WHERE last_sign_in >= ?`, []interface{}{now.Add(-week)}},
		{&s.ActiveUsers30d, `SELECT COUNT(*) FROM users WHERE last_sign_in >= ?`, []interface{}{now.Add(-month)}},
		{&s.DailyActiveUsers, `SELECT COUNT(DISTINCT user_id) FROM activity WHERE at >= ?`, []interface{}{now.Add(-day)}},
		{&s.MonthlyActiveUsers, `SELECT COUNT(DISTINCT user_id) FROM activity WHERE at >= ?`, []interface{}{now.Add(-month)}},
		{&s.EventsCreated30d, `SELECT COUNT(*) FROM activity WHERE kind = ? AND at >= ?`, []interface{}{app.ActivityEventCreated, now.Add(-month)}},
		{&s.AIInteractions, `SELECT COUNT(*) FROM activity WHERE kind = ? AND at >= ?`, []interface{}{app.ActivityAIInteraction, now.Add(-month)}},
	}
	for _, q := range queries {
		if err := d.db.GetContext(ctx, q.dst, q.query, q.args...); err != nil {
			return admin.Stats{}, fmt.Errorf("directory: stats: %w", err)
		}
	}
	return s, nil
}
