// Package record provides CLI commands which store and query measurement records.
package record

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/smartcontractkit/measurement-framework/datastore"
	"github.com/smartcontractkit/measurement-framework/datastore/sqlstore"
	"github.com/smartcontractkit/measurement-framework/measure"
	"github.com/smartcontractkit/measurement-framework/pkg/logger"
)

// DriverJSON keeps the records in a JSON file named by the DSN.
const DriverJSON = "json"

// StoreConfig names the store a command runs against.
type StoreConfig struct {
	Driver string
	DSN    string
	Table  string
}

// Store is an open measurement store.
type Store interface {
	Measurements() datastore.MutableMeasurementStoreV2
	Close() error
}

// StoreOpenerFunc opens the store named by cfg, resolving measures in reg.
type StoreOpenerFunc func(ctx context.Context, cfg StoreConfig, reg *measure.Registry, lggr logger.Logger) (Store, error)

// defaultStoreOpener opens a JSON file store for the json driver and a SQL store otherwise.
func defaultStoreOpener(ctx context.Context, cfg StoreConfig, reg *measure.Registry, lggr logger.Logger) (Store, error) {
	if cfg.Driver == DriverJSON {
		s, err := openFileStore(cfg.DSN, reg)
		if err != nil {
			return nil, err
		}

		return s, nil
	}

	s, err := sqlstore.Open(ctx, sqlstore.Config{
		Driver:   cfg.Driver,
		DSN:      cfg.DSN,
		Table:    cfg.Table,
		Registry: reg,
		Logger:   lggr,
	})
	if err != nil {
		return nil, err
	}

	return s, nil
}

// Deps holds the injectable dependencies for record commands.
// All fields are optional; nil values will use production defaults.
type Deps struct {
	// StoreOpener opens the measurement store.
	// Default: a JSON file store for the json driver, sqlstore.Open otherwise
	StoreOpener StoreOpenerFunc
}

// applyDefaults fills in nil dependencies with production defaults.
func (d *Deps) applyDefaults() {
	if d.StoreOpener == nil {
		d.StoreOpener = defaultStoreOpener
	}
}

// fileStore is a memory store loaded from and saved back to a JSON file.
type fileStore struct {
	path string
	mem  *datastore.MemoryMeasurementStore
}

func openFileStore(path string, reg *measure.Registry) (*fileStore, error) {
	if path == "" {
		return nil, errors.New("store dsn is required")
	}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return &fileStore{path: path, mem: datastore.NewMemoryMeasurementStore()}, nil
	case err != nil:
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	mem, err := datastore.LoadMemoryMeasurementStore(data, reg)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}

	return &fileStore{path: path, mem: mem}, nil
}

func (s *fileStore) Measurements() datastore.MutableMeasurementStoreV2 {
	return memoryStoreV2{s.mem}
}

// Close writes the records back to the file.
func (s *fileStore) Close() error {
	b, err := json.MarshalIndent(s.mem, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(s.path, append(b, '\n'), 0o600)
}

// memoryStoreV2 adapts a MemoryMeasurementStore to the context-aware store interface.
type memoryStoreV2 struct {
	mem *datastore.MemoryMeasurementStore
}

var _ datastore.MutableMeasurementStoreV2 = memoryStoreV2{}

func (s memoryStoreV2) Fetch(context.Context) ([]datastore.MeasurementRecord, error) {
	return s.mem.Fetch()
}

func (s memoryStoreV2) Get(_ context.Context, key datastore.MeasurementKey) (datastore.MeasurementRecord, error) {
	return s.mem.Get(key)
}

func (s memoryStoreV2) Filter(_ context.Context, filters ...datastore.FilterFunc[datastore.MeasurementKey, datastore.MeasurementRecord]) ([]datastore.MeasurementRecord, error) {
	return s.mem.Filter(filters...), nil
}

func (s memoryStoreV2) Add(_ context.Context, record datastore.MeasurementRecord) error {
	return s.mem.Add(record)
}

func (s memoryStoreV2) Upsert(_ context.Context, record datastore.MeasurementRecord) error {
	return s.mem.Upsert(record)
}

func (s memoryStoreV2) Update(_ context.Context, record datastore.MeasurementRecord) error {
	return s.mem.Update(record)
}

func (s memoryStoreV2) Delete(_ context.Context, key datastore.MeasurementKey) error {
	return s.mem.Delete(key)
}
