package storage

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cmw1990/quitopia-support-sub008/internal"
)

type PostgresStorage struct {
	pool   *pgxpool.Pool
	logger internal.Logger
}

func NewPostgresStorage(dsn string, logger internal.Logger) (*PostgresStorage, error) {
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		logger.Errorf("failed to connect to postgres: %v", err)
		return nil, err
	}
	return &PostgresStorage{pool: pool, logger: logger}, nil
}

// --- EventRepository ---

func (p *PostgresStorage) SaveEvent(ctx context.Context, e *internal.ConsumptionEvent) error {
	_, err := p.pool.Exec(ctx,
		`INSERT INTO consumption_events (id, user_id, product_type, quantity, unit, consumption_timestamp, "trigger", location, mood, intensity, notes, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		e.ID, e.UserID, e.ProductType, e.Quantity, e.Unit, e.ConsumptionTimestamp, e.Trigger, e.Location, e.Mood, e.Intensity, e.Notes, e.CreatedAt)
	if err != nil {
		p.logger.Errorf("failed to insert event: %v", err)
		return err
	}
	return nil
}

func (p *PostgresStorage) ListEvents(ctx context.Context, userID string) ([]internal.ConsumptionEvent, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT id, user_id, product_type, quantity, unit, consumption_timestamp, "trigger", location, mood, intensity, notes, created_at
		 FROM consumption_events WHERE user_id = $1 ORDER BY consumption_timestamp DESC`, userID)
	if err != nil {
		p.logger.Errorf("failed to query events: %v", err)
		return nil, err
	}
	defer rows.Close()

	var events []internal.ConsumptionEvent
	for rows.Next() {
		var e internal.ConsumptionEvent
		err := rows.Scan(&e.ID, &e.UserID, &e.ProductType, &e.Quantity, &e.Unit, &e.ConsumptionTimestamp, &e.Trigger, &e.Location, &e.Mood, &e.Intensity, &e.Notes, &e.CreatedAt)
		if err != nil {
			p.logger.Errorf("failed to scan event: %v", err)
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (p *PostgresStorage) UpdateEvent(ctx context.Context, e *internal.ConsumptionEvent) error {
	tag, err := p.pool.Exec(ctx,
		`UPDATE consumption_events
		 SET product_type = $3, quantity = $4, unit = $5, consumption_timestamp = $6, "trigger" = $7, location = $8, mood = $9, intensity = $10, notes = $11
		 WHERE id = $1 AND user_id = $2`,
		e.ID, e.UserID, e.ProductType, e.Quantity, e.Unit, e.ConsumptionTimestamp, e.Trigger, e.Location, e.Mood, e.Intensity, e.Notes)
	if err != nil {
		p.logger.Errorf("failed to update event: %v", err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *PostgresStorage) DeleteEvent(ctx context.Context, userID, eventID string) error {
	tag, err := p.pool.Exec(ctx,
		`DELETE FROM consumption_events WHERE id = $1 AND user_id = $2`, eventID, userID)
	if err != nil {
		p.logger.Errorf("failed to delete event: %v", err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// --- ProfileRepository ---

func (p *PostgresStorage) SetProfile(ctx context.Context, profile *internal.QuitProfile) error {
	_, err := p.pool.Exec(ctx,
		`INSERT INTO quit_profiles (user_id, quit_anchor, baseline_daily_consumption, cost_per_pack, units_per_pack, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (user_id) DO UPDATE
		 SET quit_anchor = EXCLUDED.quit_anchor,
		     baseline_daily_consumption = EXCLUDED.baseline_daily_consumption,
		     cost_per_pack = EXCLUDED.cost_per_pack,
		     units_per_pack = EXCLUDED.units_per_pack,
		     updated_at = EXCLUDED.updated_at`,
		profile.UserID, profile.QuitAnchor, profile.BaselineDailyConsumption, profile.CostPerPack, profile.UnitsPerPack, profile.UpdatedAt)
	if err != nil {
		p.logger.Errorf("failed to upsert profile: %v", err)
		return err
	}
	return nil
}

func (p *PostgresStorage) GetProfile(ctx context.Context, userID string) (*internal.QuitProfile, error) {
	row := p.pool.QueryRow(ctx,
		`SELECT user_id, quit_anchor, baseline_daily_consumption, cost_per_pack, units_per_pack, updated_at
		 FROM quit_profiles WHERE user_id = $1`, userID)
	var qp internal.QuitProfile
	if err := row.Scan(&qp.UserID, &qp.QuitAnchor, &qp.BaselineDailyConsumption, &qp.CostPerPack, &qp.UnitsPerPack, &qp.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		p.logger.Errorf("failed to load profile: %v", err)
		return nil, err
	}
	return &qp, nil
}

// --- UserRepository ---

func (p *PostgresStorage) GetUserByToken(ctx context.Context, token string) (*internal.User, error) {
	row := p.pool.QueryRow(ctx, `SELECT id, token, name FROM users WHERE token = $1`, token)
	var u internal.User
	if err := row.Scan(&u.ID, &u.Token, &u.Name); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		p.logger.Errorf("user not found: %v", err)
		return nil, err
	}
	return &u, nil
}

// Close releases the connection pool.
func (p *PostgresStorage) Close() error {
	p.pool.Close()
	return nil
}

// --- Compile-time assertions ---
var _ EventRepository = (*PostgresStorage)(nil)
var _ ProfileRepository = (*PostgresStorage)(nil)
