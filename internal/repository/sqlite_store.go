package repository

import (
	"context"
	"database/sql"
	"fmt"

	"VitalPull/internal/domain/models"
	"VitalPull/internal/domain/repository"

	_ "modernc.org/sqlite"
)

// SQLiteStore implements RecordStore on a local SQLite file. Metric columns
// are nullable; NULL round-trips as a missing signal, never as zero.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the database at path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite open: %w", err)
	}
	// SQLite allows one writer at a time; serialize through one connection.
	db.SetMaxOpenConns(1)
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Init(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS health_records (
			user_id     TEXT NOT NULL,
			date        TEXT NOT NULL,
			sleep_hours REAL,
			resting_hr  REAL,
			hrv         REAL,
			steps       REAL,
			calories    REAL,
			weight      REAL,
			PRIMARY KEY (user_id, date)
		);
	`)
	if err != nil {
		return fmt.Errorf("sqlite schema: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Upsert(ctx context.Context, rec *models.Record) error {
	args := upsertArgs(rec)
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO health_records (user_id, date, sleep_hours, resting_hr, hrv, steps, calories, weight)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id, date) DO UPDATE SET
			sleep_hours=excluded.sleep_hours,
			resting_hr=excluded.resting_hr,
			hrv=excluded.hrv,
			steps=excluded.steps,
			calories=excluded.calories,
			weight=excluded.weight;
	`, args...)
	if err != nil {
		return fmt.Errorf("sqlite upsert: %w", err)
	}
	return nil
}

func (s *SQLiteStore) UpsertBatch(ctx context.Context, recs []*models.Record) error {
	if len(recs) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite begin: %w", err)
	}
	for _, rec := range recs {
		if rec == nil || rec.UserID == "" || rec.Date == "" {
			continue
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO health_records (user_id, date, sleep_hours, resting_hr, hrv, steps, calories, weight)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(user_id, date) DO UPDATE SET
				sleep_hours=excluded.sleep_hours,
				resting_hr=excluded.resting_hr,
				hrv=excluded.hrv,
				steps=excluded.steps,
				calories=excluded.calories,
				weight=excluded.weight;
		`, upsertArgs(rec)...); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("sqlite batch upsert: %w", err)
		}
	}
	return tx.Commit()
}

func (s *SQLiteStore) FetchUser(ctx context.Context, userID string) ([]models.Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT user_id, date, sleep_hours, resting_hr, hrv, steps, calories, weight
		FROM health_records WHERE user_id = ? ORDER BY date ASC;
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("sqlite fetch user: %w", err)
	}
	defer rows.Close()
	return scanRecords(rows)
}

func (s *SQLiteStore) FetchCohort(ctx context.Context, excludeUser string) ([]models.Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT user_id, date, sleep_hours, resting_hr, hrv, steps, calories, weight
		FROM health_records WHERE user_id != ? ORDER BY user_id ASC, date ASC;
	`, excludeUser)
	if err != nil {
		return nil, fmt.Errorf("sqlite fetch cohort: %w", err)
	}
	defer rows.Close()
	return scanRecords(rows)
}

func (s *SQLiteStore) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func upsertArgs(rec *models.Record) []interface{} {
	args := make([]interface{}, 0, 2+len(models.Metrics))
	args = append(args, rec.UserID, rec.Date)
	for _, metric := range models.Metrics {
		if v, ok := rec.Value(metric); ok {
			args = append(args, v)
		} else {
			args = append(args, nil)
		}
	}
	return args
}

func scanRecords(rows *sql.Rows) ([]models.Record, error) {
	var out []models.Record
	for rows.Next() {
		var rec models.Record
		vals := make([]sql.NullFloat64, len(models.Metrics))
		dest := []interface{}{&rec.UserID, &rec.Date}
		for i := range vals {
			dest = append(dest, &vals[i])
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		for i, metric := range models.Metrics {
			if vals[i].Valid {
				rec.Set(metric, vals[i].Float64)
			}
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

var _ repository.RecordStore = (*SQLiteStore)(nil)
