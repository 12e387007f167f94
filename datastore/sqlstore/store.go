// Package sqlstore persists measurement records in a SQL table using the three-column measurement
// layout. It runs against postgres through lib/pq and against the in-process ramsql engine.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/avast/retry-go/v4"
	_ "github.com/lib/pq"
	_ "github.com/proullon/ramsql/driver"

	"github.com/smartcontractkit/measurement-framework/datastore"
	"github.com/smartcontractkit/measurement-framework/measure"
	"github.com/smartcontractkit/measurement-framework/pkg/logger"
)

// Supported database/sql driver names.
const (
	DriverPostgres = "postgres"
	DriverRamSQL   = "ramsql"
)

// Config configures a Store.
type Config struct {
	// Driver is the database/sql driver name, DriverPostgres or DriverRamSQL.
	Driver string
	// DSN is the data source name passed to the driver.
	DSN string
	// Table defaults to DefaultTable.
	Table string
	// Registry resolves stored measures. Defaults to measure.Default().
	Registry *measure.Registry
	// Logger defaults to a no-op logger.
	Logger logger.Logger
	// PingAttempts and PingDelay bound the wait for the database to accept connections.
	PingAttempts uint
	PingDelay    time.Duration
}

func (c *Config) setDefaults() {
	if c.Table == "" {
		c.Table = DefaultTable
	}
	if c.Registry == nil {
		c.Registry = measure.Default()
	}
	if c.Logger == nil {
		c.Logger = logger.Nop()
	}
	if c.PingAttempts == 0 {
		c.PingAttempts = 5
	}
	if c.PingDelay == 0 {
		c.PingDelay = time.Second
	}
}

// Validate checks the driver and data source of the configuration.
func (c Config) Validate() error {
	switch c.Driver {
	case DriverPostgres, DriverRamSQL:
	case "":
		return errors.New("store driver is required")
	default:
		return fmt.Errorf("unsupported store driver %q", c.Driver)
	}
	if c.DSN == "" {
		return errors.New("store dsn is required")
	}

	return nil
}

// Store is a measurement store backed by a SQL database.
type Store struct {
	db           *dbController
	closer       func() error
	queries      queries
	lggr         logger.Logger
	measurements *measurementStore
}

var _ datastore.Transactional = &Store{}

// Open connects to the configured database, waits for it to answer and creates the measurement
// table if it does not exist yet.
func Open(ctx context.Context, cfg Config) (*Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.setDefaults()

	db, err := sql.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", cfg.Driver, err)
	}

	err = retry.Do(func() error {
		return db.PingContext(ctx)
	},
		retry.Context(ctx),
		retry.Attempts(cfg.PingAttempts),
		retry.Delay(cfg.PingDelay),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(attempt uint, err error) {
			cfg.Logger.Warnw("Database not reachable yet", "driver", cfg.Driver, "attempt", attempt+1, "error", err)
		}),
	)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to reach %s database: %w", cfg.Driver, err)
	}

	s, err := New(ctx, db, cfg)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	s.closer = db.Close
	s.lggr.Infow("Opened measurement store", "driver", cfg.Driver, "table", cfg.Table)

	return s, nil
}

// New wraps an already open database. The caller keeps ownership of db, and Close does not close
// it.
func New(ctx context.Context, db *sql.DB, cfg Config) (*Store, error) {
	cfg.setDefaults()

	q, err := newQueries(cfg.Table)
	if err != nil {
		return nil, err
	}
	lggr := cfg.Logger.Named("sqlstore")
	ctrl := newDbController(db, lggr)
	if err := ctrl.Fixture(ctx, q.schema); err != nil {
		return nil, fmt.Errorf("failed to create %s schema: %w", cfg.Table, err)
	}

	s := &Store{
		db:      ctrl,
		closer:  func() error { return nil },
		queries: q,
		lggr:    lggr,
	}
	s.measurements = &measurementStore{db: ctrl, queries: q, registry: cfg.Registry}

	return s, nil
}

// Measurements returns the measurement records of the store.
func (s *Store) Measurements() datastore.MutableMeasurementStoreV2 {
	return s.measurements
}

// Close releases the database opened by Open.
func (s *Store) Close() error {
	return s.closer()
}

// WithTransaction runs fn inside a database transaction. The transaction is committed when fn
// returns nil and rolled back when it fails or panics.
func (s *Store) WithTransaction(ctx context.Context, fn datastore.TransactionLogic) (err error) {
	err = s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	var txerr error
	defer func() {
		if r := recover(); r != nil {
			// rollback before re-panicking
			_ = s.db.Rollback()
			panic(r)
		} else if txerr != nil {
			err = errors.Join(err, s.db.Rollback())
		} else {
			err = s.db.Commit()
		}
	}()

	txerr = fn(ctx)

	return txerr
}
