package repository

import (
	"context"
	"fmt"

	"VitalPull/internal/domain/models"
	"VitalPull/internal/domain/repository"
	"VitalPull/pkg/clickhouse"
)

// ClickHouseStore implements RecordStore on ClickHouse for deployments where
// the telemetry volume outgrows a single SQLite file. The table uses
// ReplacingMergeTree keyed by (user_id, date) so re-ingested days collapse to
// the latest version; reads apply FINAL to see the collapsed view.
type ClickHouseStore struct {
	client *clickhouse.Client
	table  string
}

func NewClickHouseStore(client *clickhouse.Client, database string) *ClickHouseStore {
	return &ClickHouseStore{
		client: client,
		table:  fmt.Sprintf("%s.health_records", database),
	}
}

func (s *ClickHouseStore) Init(ctx context.Context) error {
	stmts := []string{
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				user_id     String,
				date        String,
				sleep_hours Nullable(Float64),
				resting_hr  Nullable(Float64),
				hrv         Nullable(Float64),
				steps       Nullable(Float64),
				calories    Nullable(Float64),
				weight      Nullable(Float64),
				ingested_at DateTime DEFAULT now()
			) ENGINE = ReplacingMergeTree(ingested_at)
			ORDER BY (user_id, date);
		`, s.table),
	}
	return s.client.InitSchema(ctx, stmts)
}

func (s *ClickHouseStore) Upsert(ctx context.Context, rec *models.Record) error {
	return s.UpsertBatch(ctx, []*models.Record{rec})
}

func (s *ClickHouseStore) UpsertBatch(ctx context.Context, recs []*models.Record) error {
	if len(recs) == 0 {
		return nil
	}
	tx, err := s.client.DB().BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("clickhouse begin: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(`
		INSERT INTO %s (user_id, date, sleep_hours, resting_hr, hrv, steps, calories, weight)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, s.table))
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("clickhouse prepare: %w", err)
	}
	defer stmt.Close()

	for _, rec := range recs {
		if rec == nil || rec.UserID == "" || rec.Date == "" {
			continue
		}
		if _, err := stmt.ExecContext(ctx, upsertArgs(rec)...); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("clickhouse insert: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("clickhouse commit: %w", err)
	}
	return nil
}

func (s *ClickHouseStore) FetchUser(ctx context.Context, userID string) ([]models.Record, error) {
	rows, err := s.client.DB().QueryContext(ctx, fmt.Sprintf(`
		SELECT user_id, date, sleep_hours, resting_hr, hrv, steps, calories, weight
		FROM %s FINAL WHERE user_id = ? ORDER BY date ASC
	`, s.table), userID)
	if err != nil {
		return nil, fmt.Errorf("clickhouse fetch user: %w", err)
	}
	defer rows.Close()
	return scanRecords(rows)
}

func (s *ClickHouseStore) FetchCohort(ctx context.Context, excludeUser string) ([]models.Record, error) {
	rows, err := s.client.DB().QueryContext(ctx, fmt.Sprintf(`
		SELECT user_id, date, sleep_hours, resting_hr, hrv, steps, calories, weight
		FROM %s FINAL WHERE user_id != ? ORDER BY user_id ASC, date ASC
	`, s.table), excludeUser)
	if err != nil {
		return nil, fmt.Errorf("clickhouse fetch cohort: %w", err)
	}
	defer rows.Close()
	return scanRecords(rows)
}

func (s *ClickHouseStore) Health(ctx context.Context) error {
	return s.client.Health(ctx)
}

func (s *ClickHouseStore) Close() error {
	return s.client.Close()
}

var _ repository.RecordStore = (*ClickHouseStore)(nil)
