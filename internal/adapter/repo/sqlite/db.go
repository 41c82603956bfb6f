package sqliterepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"survivalcore/internal/domain/device"
	"survivalcore/internal/domain/world"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS survival_scalars (
	scope TEXT NOT NULL,
	key TEXT NOT NULL,
	value REAL NOT NULL,
	updated_at INTEGER NOT NULL,
	PRIMARY KEY (scope, key)
);

CREATE TABLE IF NOT EXISTS survival_devices (
	device_key TEXT PRIMARY KEY,
	kind TEXT NOT NULL,
	dimension TEXT NOT NULL,
	x INTEGER NOT NULL,
	y INTEGER NOT NULL,
	z INTEGER NOT NULL,
	water_level INTEGER NOT NULL,
	is_dirty INTEGER NOT NULL,
	has_filter INTEGER NOT NULL,
	filter_uses_left INTEGER NOT NULL,
	progress_ticks INTEGER NOT NULL,
	updated_at INTEGER NOT NULL
);
`

// DB is the single-node persistence backend.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates the database at path and applies the schema.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	conn.SetMaxOpenConns(1)
	if _, err := conn.Exec(schema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &DB{conn: conn}, nil
}

func (db *DB) Close() error {
	return db.conn.Close()
}

type txKeyType struct{}

var txKey = txKeyType{}

func (db *DB) ext(ctx context.Context) sqlx.ExtContext {
	if tx, ok := ctx.Value(txKey).(*sqlx.Tx); ok && tx != nil {
		return tx
	}
	return db.conn
}

func (db *DB) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey).(*sqlx.Tx); ok {
		return fn(ctx)
	}
	tx, err := db.conn.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(context.WithValue(ctx, txKey, tx)); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func (db *DB) GetScalar(ctx context.Context, scope, key string) (float64, bool, error) {
	var v float64
	err := sqlx.GetContext(ctx, db.ext(ctx), &v, `SELECT value FROM survival_scalars WHERE scope = ? AND key = ?`, scope, key)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("get scalar %s/%s: %w", scope, key, err)
	}
	return v, true, nil
}

func (db *DB) SetScalar(ctx context.Context, scope, key string, value float64) error {
	_, err := db.ext(ctx).ExecContext(ctx, `INSERT INTO survival_scalars (scope, key, value, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(scope, key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		scope, key, value, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("set scalar %s/%s: %w", scope, key, err)
	}
	return nil
}

type deviceRow struct {
	DeviceKey      string `db:"device_key"`
	Kind           string `db:"kind"`
	Dimension      string `db:"dimension"`
	X              int    `db:"x"`
	Y              int    `db:"y"`
	Z              int    `db:"z"`
	WaterLevel     int    `db:"water_level"`
	IsDirty        bool   `db:"is_dirty"`
	HasFilter      bool   `db:"has_filter"`
	FilterUsesLeft int    `db:"filter_uses_left"`
	ProgressTicks  int    `db:"progress_ticks"`
	UpdatedAt      int64  `db:"updated_at"`
}

func (db *DB) SaveDevice(ctx context.Context, s device.State) error {
	row := deviceRow{
		DeviceKey:      s.Key(),
		Kind:           string(s.Kind),
		Dimension:      string(s.Dimension),
		X:              s.Position.X,
		Y:              s.Position.Y,
		Z:              s.Position.Z,
		WaterLevel:     s.WaterLevel,
		IsDirty:        s.IsDirty,
		HasFilter:      s.HasFilter,
		FilterUsesLeft: s.FilterUsesLeft,
		ProgressTicks:  s.ProgressTicks,
		UpdatedAt:      time.Now().Unix(),
	}
	_, err := sqlx.NamedExecContext(ctx, db.ext(ctx), `INSERT INTO survival_devices
		(device_key, kind, dimension, x, y, z, water_level, is_dirty, has_filter, filter_uses_left, progress_ticks, updated_at)
		VALUES (:device_key, :kind, :dimension, :x, :y, :z, :water_level, :is_dirty, :has_filter, :filter_uses_left, :progress_ticks, :updated_at)
		ON CONFLICT(device_key) DO UPDATE SET
			kind = excluded.kind, dimension = excluded.dimension,
			x = excluded.x, y = excluded.y, z = excluded.z,
			water_level = excluded.water_level, is_dirty = excluded.is_dirty,
			has_filter = excluded.has_filter, filter_uses_left = excluded.filter_uses_left,
			progress_ticks = excluded.progress_ticks, updated_at = excluded.updated_at`, row)
	if err != nil {
		return fmt.Errorf("save device %s: %w", row.DeviceKey, err)
	}
	return nil
}

func (db *DB) DeleteDevice(ctx context.Context, key string) error {
	if _, err := db.ext(ctx).ExecContext(ctx, `DELETE FROM survival_devices WHERE device_key = ?`, key); err != nil {
		return fmt.Errorf("delete device %s: %w", key, err)
	}
	return nil
}

func (db *DB) ListDevices(ctx context.Context) ([]device.State, error) {
	var rows []deviceRow
	if err := sqlx.SelectContext(ctx, db.ext(ctx), &rows, `SELECT * FROM survival_devices ORDER BY device_key`); err != nil {
		return nil, fmt.Errorf("list devices: %w", err)
	}
	out := make([]device.State, 0, len(rows))
	for _, r := range rows {
		out = append(out, device.State{
			Kind:           device.Kind(r.Kind),
			Dimension:      world.Dimension(r.Dimension),
			Position:       world.BlockPos{X: r.X, Y: r.Y, Z: r.Z},
			WaterLevel:     r.WaterLevel,
			IsDirty:        r.IsDirty,
			HasFilter:      r.HasFilter,
			FilterUsesLeft: r.FilterUsesLeft,
			ProgressTicks:  r.ProgressTicks,
		})
	}
	return out, nil
}
