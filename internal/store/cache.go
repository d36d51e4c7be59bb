// Package store provides a SQLite-backed cache of the last fetched
// projection and entries, so the dashboard can still show its last-known
// state when the backend is unreachable.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"horaboard/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

// Cache provides SQLite-backed snapshot caching.
type Cache struct {
	db *sql.DB
}

// DefaultPath returns the cache database location under the user cache dir.
func DefaultPath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "horaboard", "cache.db")
}

// Open opens or creates the cache database at the given path.
func Open(dbPath string) (*Cache, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("opening cache db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Cache{db: db}, nil
}

// Close closes the cache database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// SaveProjection stores a fetched projection, replacing any previous
// snapshot for the same period.
func (c *Cache) SaveProjection(p model.Projection, fetchedAt time.Time) error {
	tx, err := c.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	hasGoal := 0
	var goalRate, goalBalance, goalTarget sql.NullFloat64
	var goalStatus sql.NullString
	if p.Goal != nil {
		hasGoal = 1
		goalRate = sql.NullFloat64{Float64: p.Goal.CurrentRatePerDay, Valid: true}
		goalBalance = sql.NullFloat64{Float64: p.Goal.ProjectedBalanceAtEnd, Valid: true}
		goalTarget = sql.NullFloat64{Float64: p.Goal.TargetHours, Valid: true}
		goalStatus = sql.NullString{String: string(p.Goal.Status), Valid: true}
	}

	_, err = tx.Exec(`INSERT OR REPLACE INTO snapshots
		(period_start, period_end, total_days, total_worked, total_adjusted, balance,
		 full_month_max_hours, available_hours, days_elapsed, progress_total_days,
		 percentage_elapsed, has_goal, goal_rate_per_day, goal_projected_balance,
		 goal_target_hours, goal_status, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Period.Start.String(), p.Period.End.String(), p.Period.TotalDays,
		p.Totals.TotalWorked, p.Totals.TotalAdjusted, p.Totals.Balance,
		p.Totals.FullMonthMaxHours, p.Totals.AvailableHoursInPeriod,
		p.Progress.DaysElapsed, p.Progress.TotalDays, p.Progress.PercentageElapsed,
		hasGoal, goalRate, goalBalance, goalTarget, goalStatus,
		fetchedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return err
	}

	if _, err = tx.Exec("DELETE FROM snapshot_weeks WHERE period_start = ?", p.Period.Start.String()); err != nil {
		return err
	}

	for _, w := range p.Weeks {
		daysJSON, err := json.Marshal(w.Days)
		if err != nil {
			return fmt.Errorf("encoding week days: %w", err)
		}
		_, err = tx.Exec(`INSERT INTO snapshot_weeks
			(period_start, week_start, week_end, total_worked, total_adjusted, balance,
			 working_days, hours_available, base_weekly_hours, total_segment_hours, days_json)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			p.Period.Start.String(), w.WeekStart.String(), w.WeekEnd.String(),
			w.TotalWorked, w.TotalAdjusted, w.Balance, w.WorkingDaysCount,
			w.HoursAvailable, w.BaseWeeklyHours, w.TotalSegmentHours, string(daysJSON),
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// LoadLatestProjection returns the most recently fetched snapshot, or
// (nil, zero time, nil) when the cache is empty.
func (c *Cache) LoadLatestProjection() (*model.Projection, time.Time, error) {
	row := c.db.QueryRow(`SELECT
		period_start, period_end, total_days, total_worked, total_adjusted, balance,
		full_month_max_hours, available_hours, days_elapsed, progress_total_days,
		percentage_elapsed, has_goal, goal_rate_per_day, goal_projected_balance,
		goal_target_hours, goal_status, fetched_at
		FROM snapshots ORDER BY fetched_at DESC LIMIT 1`)

	var p model.Projection
	var periodStart, periodEnd, fetchedStr string
	var hasGoal int
	var goalRate, goalBalance, goalTarget sql.NullFloat64
	var goalStatus sql.NullString

	err := row.Scan(&periodStart, &periodEnd, &p.Period.TotalDays,
		&p.Totals.TotalWorked, &p.Totals.TotalAdjusted, &p.Totals.Balance,
		&p.Totals.FullMonthMaxHours, &p.Totals.AvailableHoursInPeriod,
		&p.Progress.DaysElapsed, &p.Progress.TotalDays, &p.Progress.PercentageElapsed,
		&hasGoal, &goalRate, &goalBalance, &goalTarget, &goalStatus, &fetchedStr)
	if err == sql.ErrNoRows {
		return nil, time.Time{}, nil
	}
	if err != nil {
		return nil, time.Time{}, err
	}

	if p.Period.Start, err = model.ParseDate(periodStart); err != nil {
		return nil, time.Time{}, err
	}
	if p.Period.End, err = model.ParseDate(periodEnd); err != nil {
		return nil, time.Time{}, err
	}

	if hasGoal == 1 {
		p.Goal = &model.GoalProjection{
			CurrentRatePerDay:     goalRate.Float64,
			ProjectedBalanceAtEnd: goalBalance.Float64,
			TargetHours:           goalTarget.Float64,
			Status:                model.GoalStatus(goalStatus.String),
		}
	}

	if p.Weeks, err = c.loadWeeks(periodStart); err != nil {
		return nil, time.Time{}, err
	}

	fetchedAt, err := time.Parse(time.RFC3339, fetchedStr)
	if err != nil {
		fetchedAt = time.Time{}
	}
	return &p, fetchedAt, nil
}

func (c *Cache) loadWeeks(periodStart string) ([]model.Week, error) {
	rows, err := c.db.Query(`SELECT
		week_start, week_end, total_worked, total_adjusted, balance, working_days,
		hours_available, base_weekly_hours, total_segment_hours, days_json
		FROM snapshot_weeks WHERE period_start = ? ORDER BY week_start`, periodStart)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var weeks []model.Week
	for rows.Next() {
		var w model.Week
		var wStart, wEnd string
		var daysJSON sql.NullString
		if err := rows.Scan(&wStart, &wEnd, &w.TotalWorked, &w.TotalAdjusted,
			&w.Balance, &w.WorkingDaysCount, &w.HoursAvailable,
			&w.BaseWeeklyHours, &w.TotalSegmentHours, &daysJSON); err != nil {
			return nil, err
		}
		if w.WeekStart, err = model.ParseDate(wStart); err != nil {
			return nil, err
		}
		if w.WeekEnd, err = model.ParseDate(wEnd); err != nil {
			return nil, err
		}
		if daysJSON.Valid && daysJSON.String != "" {
			if err := json.Unmarshal([]byte(daysJSON.String), &w.Days); err != nil {
				return nil, fmt.Errorf("decoding week days: %w", err)
			}
		}
		weeks = append(weeks, w)
	}
	return weeks, rows.Err()
}

// ReplaceEntries mirrors a freshly listed set of entries.
func (c *Cache) ReplaceEntries(entries []model.HourEntry, fetchedAt time.Time) error {
	tx, err := c.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec("DELETE FROM entries"); err != nil {
		return err
	}

	ts := fetchedAt.UTC().Format(time.RFC3339)
	for _, e := range entries {
		_, err := tx.Exec(`INSERT INTO entries (id, entry_date, hours, description, fetched_at)
			VALUES (?, ?, ?, ?, ?)`,
			e.ID, e.EntryDate.String(), e.Hours, e.Description, ts)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// SaveEntry mirrors a single created entry.
func (c *Cache) SaveEntry(e model.HourEntry, fetchedAt time.Time) error {
	_, err := c.db.Exec(`INSERT OR REPLACE INTO entries (id, entry_date, hours, description, fetched_at)
		VALUES (?, ?, ?, ?, ?)`,
		e.ID, e.EntryDate.String(), e.Hours, e.Description,
		fetchedAt.UTC().Format(time.RFC3339))
	return err
}

// DeleteEntry removes a mirrored entry after a successful remote delete.
func (c *Cache) DeleteEntry(id int64) error {
	_, err := c.db.Exec("DELETE FROM entries WHERE id = ?", id)
	return err
}

// ListEntries returns mirrored entries within the inclusive date range,
// oldest first. Empty bounds are open-ended.
func (c *Cache) ListEntries(start, end string) ([]model.HourEntry, error) {
	rows, err := c.db.Query(`SELECT id, entry_date, hours, description FROM entries
		WHERE (? = '' OR entry_date >= ?) AND (? = '' OR entry_date <= ?)
		ORDER BY entry_date, id`, start, start, end, end)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var entries []model.HourEntry
	for rows.Next() {
		var e model.HourEntry
		var date string
		var desc sql.NullString
		if err := rows.Scan(&e.ID, &date, &e.Hours, &desc); err != nil {
			return nil, err
		}
		if e.EntryDate, err = model.ParseDate(date); err != nil {
			return nil, err
		}
		e.Description = desc.String
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
