package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"intellicath/catheter"
)

var ErrNoReadings = errors.New("no readings stored")

// Store persists readings to intellicath_data. Every operation opens its
// own connection and closes it before returning.
type Store struct {
	driver string
	dsn    string
	logger *zap.Logger
}

func NewStore(driver, dsn string, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{driver: driver, dsn: dsn, logger: logger}
}

func (s *Store) open(ctx context.Context) (*sql.DB, error) {
	conn, err := sql.Open(s.driver, s.dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	conn.SetMaxOpenConns(1)
	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("connect database: %w", err)
	}
	return conn, nil
}

// InitSchema creates intellicath_data if it does not exist.
func (s *Store) InitSchema(ctx context.Context) error {
	schema, err := schemaFor(s.driver)
	if err != nil {
		return err
	}
	conn, err := s.open(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	if _, err := conn.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create %s: %w", tableName, err)
	}
	return nil
}

// SaveReading inserts r unless it is within the dedup thresholds of the
// most recent row. The read and the insert are not isolated from
// concurrent writers.
func (s *Store) SaveReading(ctx context.Context, r catheter.Reading) (bool, error) {
	conn, err := s.open(ctx)
	if err != nil {
		return false, err
	}
	defer conn.Close()

	last, err := latestReading(ctx, conn)
	switch {
	case errors.Is(err, ErrNoReadings):
	case err != nil:
		return false, err
	case !catheter.Changed(last, r):
		s.logger.Info("no significant change in reading, skipping insert",
			zap.Int64("last_id", last.ID))
		return false, nil
	}

	_, err = conn.ExecContext(ctx, `
        INSERT INTO intellicath_data (
            urine_output, urine_flow_rate, catheter_bag_volume,
            remaining_volume, predicted_time, actual_time
        ) VALUES (?, ?, ?, ?, ?, ?)`,
		r.UrineOutput,
		r.UrineFlowRate,
		r.CatheterBagVolume,
		r.RemainingVolume,
		r.PredictedTime,
		r.ActualTime,
	)
	if err != nil {
		return false, fmt.Errorf("insert reading: %w", err)
	}
	s.logger.Info("reading inserted",
		zap.Float64("catheter_bag_volume", r.CatheterBagVolume),
		zap.String("predicted_time", r.PredictedTime))
	return true, nil
}

// LatestReading returns the newest row, or ErrNoReadings.
func (s *Store) LatestReading(ctx context.Context) (catheter.Reading, error) {
	conn, err := s.open(ctx)
	if err != nil {
		return catheter.Reading{}, err
	}
	defer conn.Close()
	return latestReading(ctx, conn)
}

func latestReading(ctx context.Context, conn *sql.DB) (catheter.Reading, error) {
	var r catheter.Reading
	err := conn.QueryRowContext(ctx, `
        SELECT id, urine_output, urine_flow_rate, catheter_bag_volume,
               remaining_volume, predicted_time, actual_time
        FROM intellicath_data
        ORDER BY id DESC
        LIMIT 1`).Scan(&r.ID, &r.UrineOutput, &r.UrineFlowRate, &r.CatheterBagVolume,
		&r.RemainingVolume, &r.PredictedTime, &r.ActualTime)
	if errors.Is(err, sql.ErrNoRows) {
		return catheter.Reading{}, ErrNoReadings
	}
	if err != nil {
		return catheter.Reading{}, fmt.Errorf("query latest reading: %w", err)
	}
	return r, nil
}

// RecentReadings returns up to limit rows, newest first.
func (s *Store) RecentReadings(ctx context.Context, limit int) ([]catheter.Reading, error) {
	conn, err := s.open(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	rows, err := conn.QueryContext(ctx, `
        SELECT id, urine_output, urine_flow_rate, catheter_bag_volume,
               remaining_volume, predicted_time, actual_time
        FROM intellicath_data
        ORDER BY id DESC
        LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query readings: %w", err)
	}
	defer rows.Close()

	readings := make([]catheter.Reading, 0)
	for rows.Next() {
		var r catheter.Reading
		if err := rows.Scan(&r.ID, &r.UrineOutput, &r.UrineFlowRate, &r.CatheterBagVolume,
			&r.RemainingVolume, &r.PredictedTime, &r.ActualTime); err != nil {
			return nil, err
		}
		readings = append(readings, r)
	}
	return readings, rows.Err()
}

// FirstCrossing returns the earliest actual time recorded for a full bag.
// ok is false when no reading has reached the threshold.
func (s *Store) FirstCrossing(ctx context.Context) (string, bool, error) {
	conn, err := s.open(ctx)
	if err != nil {
		return "", false, err
	}
	defer conn.Close()

	var actual sql.NullString
	err = conn.QueryRowContext(ctx, `
        SELECT actual_time
        FROM intellicath_data
        WHERE catheter_bag_volume >= ? AND actual_time IS NOT NULL
        ORDER BY actual_time ASC
        LIMIT 1`, catheter.FullBagVolume).Scan(&actual)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("query first crossing: %w", err)
	}
	return actual.String, actual.Valid, nil
}
