package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS snapshots (
    period_start           TEXT PRIMARY KEY,
    period_end             TEXT NOT NULL,
    total_days             INTEGER NOT NULL,
    total_worked           REAL NOT NULL DEFAULT 0,
    total_adjusted         REAL NOT NULL DEFAULT 0,
    balance                REAL NOT NULL DEFAULT 0,
    full_month_max_hours   REAL NOT NULL DEFAULT 0,
    available_hours        REAL NOT NULL DEFAULT 0,
    days_elapsed           INTEGER NOT NULL DEFAULT 0,
    progress_total_days    INTEGER NOT NULL DEFAULT 0,
    percentage_elapsed     REAL NOT NULL DEFAULT 0,
    has_goal               INTEGER NOT NULL DEFAULT 0,
    goal_rate_per_day      REAL,
    goal_projected_balance REAL,
    goal_target_hours      REAL,
    goal_status            TEXT,
    fetched_at             TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS snapshot_weeks (
    period_start        TEXT NOT NULL REFERENCES snapshots(period_start) ON DELETE CASCADE,
    week_start          TEXT NOT NULL,
    week_end            TEXT NOT NULL,
    total_worked        REAL NOT NULL DEFAULT 0,
    total_adjusted      REAL NOT NULL DEFAULT 0,
    balance             REAL NOT NULL DEFAULT 0,
    working_days        INTEGER NOT NULL DEFAULT 0,
    hours_available     REAL NOT NULL DEFAULT 0,
    base_weekly_hours   REAL NOT NULL DEFAULT 0,
    total_segment_hours REAL NOT NULL DEFAULT 0,
    days_json           TEXT,
    PRIMARY KEY (period_start, week_start)
);

CREATE TABLE IF NOT EXISTS entries (
    id          INTEGER PRIMARY KEY,
    entry_date  TEXT NOT NULL,
    hours       REAL NOT NULL,
    description TEXT,
    fetched_at  TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_snapshots_fetched ON snapshots(fetched_at);
CREATE INDEX IF NOT EXISTS idx_entries_date ON entries(entry_date);
`
