// Command greencity runs the one-shot synthetic dataset generation:
// build the relational dataset in memory, then emit the SQL script, the
// per-day telemetry JSON files and the monthly environmental CSV
// reports, optionally loading the dataset into a database.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/KIHLYouns/GreenCity-ETL/internal/clock"
	"github.com/KIHLYouns/GreenCity-ETL/internal/config"
	"github.com/KIHLYouns/GreenCity-ETL/internal/export"
	"github.com/KIHLYouns/GreenCity-ETL/internal/export/envreport"
	"github.com/KIHLYouns/GreenCity-ETL/internal/export/sqlexport"
	"github.com/KIHLYouns/GreenCity-ETL/internal/export/telemetry"
	"github.com/KIHLYouns/GreenCity-ETL/internal/generator"
	"github.com/KIHLYouns/GreenCity-ETL/internal/loader"
	"github.com/KIHLYouns/GreenCity-ETL/pkg/db"
	"github.com/KIHLYouns/GreenCity-ETL/pkg/log"
)

func main() {
	app := fx.New(
		clock.Module,
		config.Module,
		log.Module,
		generator.Module,
		sqlexport.Module,
		telemetry.Module,
		envreport.Module,
		fx.Invoke(run),
		fx.NopLogger,
	)

	startCtx, cancel := context.WithTimeout(context.Background(), time.Hour)
	defer cancel()
	if err := app.Start(startCtx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	stopCtx, stopCancel := context.WithTimeout(context.Background(), time.Minute)
	defer stopCancel()
	_ = app.Stop(stopCtx)
}

type runParams struct {
	fx.In

	Config    config.Config
	Log       *zap.Logger
	Clock     clock.Clock
	Pipeline  *generator.Pipeline
	SQL       *sqlexport.Exporter
	Telemetry *telemetry.Exporter
	Reports   *envreport.Exporter
}

func run(p runParams) error {
	started := p.Clock.Now()
	logger := p.Log.With(zap.String("run_id", uuid.NewString()))
	logger.Info("generation run starting",
		zap.Int64("seed", p.Config.Seed),
		zap.Time("window_start", p.Config.Window.Start),
		zap.Time("window_end", p.Config.Window.End),
	)

	ds := p.Pipeline.Generate()

	sqlSink, err := export.NewDirSink(p.Config.Output.SQLDir)
	if err != nil {
		return err
	}
	if err := p.SQL.Export(ds, sqlSink); err != nil {
		return err
	}

	jsonSink, err := export.NewDirSink(p.Config.Output.JSONDir)
	if err != nil {
		return err
	}
	if err := p.Telemetry.Export(ds, jsonSink); err != nil {
		return err
	}

	csvSink, err := export.NewDirSink(p.Config.Output.CSVDir)
	if err != nil {
		return err
	}
	if err := p.Reports.Export(ds, csvSink); err != nil {
		return err
	}

	if p.Config.Database.Enabled {
		dialector, err := db.Dialect(p.Config.Database)
		if err != nil {
			return err
		}
		gdb, err := gorm.Open(dialector, &gorm.Config{})
		if err != nil {
			return err
		}
		if err := loader.New(gdb, logger).Load(context.Background(), ds); err != nil {
			return err
		}
	}

	logger.Info("generation run finished", zap.Duration("elapsed", p.Clock.Now().Sub(started)))
	return nil
}
