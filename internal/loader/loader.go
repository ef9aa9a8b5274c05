// Package loader optionally writes the generated dataset straight into a
// relational database, bypassing the SQL script. Inserts follow the same
// foreign-key dependency order as generation.
package loader

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/KIHLYouns/GreenCity-ETL/internal/domain"
)

const batchSize = 500

// Loader migrates the fixture schema and inserts all collections.
type Loader struct {
	db  *gorm.DB
	log *zap.Logger
}

// New builds a Loader over an open gorm handle.
func New(db *gorm.DB, log *zap.Logger) *Loader {
	return &Loader{db: db, log: log.Named("loader")}
}

// Load migrates the ten tables and inserts the dataset in dependency
// order within one transaction. Any database error aborts the run.
func (l *Loader) Load(ctx context.Context, ds *domain.Dataset) error {
	if err := l.db.WithContext(ctx).AutoMigrate(
		&domain.Region{},
		&domain.EnergyType{},
		&domain.Building{},
		&domain.Meter{},
		&domain.Client{},
		&domain.Contract{},
		&domain.Tariff{},
		&domain.Invoice{},
		&domain.Payment{},
		&domain.TemperatureReading{},
	); err != nil {
		return fmt.Errorf("loader: migrate: %w", err)
	}

	return l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		steps := []struct {
			table string
			rows  any
			count int
		}{
			{"regions", ds.Regions, len(ds.Regions)},
			{"energy_types", ds.EnergyTypes, len(ds.EnergyTypes)},
			{"buildings", ds.Buildings, len(ds.Buildings)},
			{"meters", ds.Meters, len(ds.Meters)},
			{"clients", ds.Clients, len(ds.Clients)},
			{"contracts", ds.Contracts, len(ds.Contracts)},
			{"tariffs", ds.Tariffs, len(ds.Tariffs)},
			{"invoices", ds.Invoices, len(ds.Invoices)},
			{"payments", ds.Payments, len(ds.Payments)},
			{"temperature_readings", ds.Temperatures, len(ds.Temperatures)},
		}
		for _, step := range steps {
			if step.count == 0 {
				continue
			}
			if err := tx.CreateInBatches(step.rows, batchSize).Error; err != nil {
				return fmt.Errorf("loader: insert %s: %w", step.table, err)
			}
			l.log.Debug("collection loaded", zap.String("table", step.table), zap.Int("rows", step.count))
		}
		return nil
	})
}
