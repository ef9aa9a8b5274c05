// Package envreport derives monthly per-building environmental metrics
// and writes one CSV artifact per month. Like the telemetry exporter it
// owns its own random stream seeded from the run configuration.
package envreport

import (
	"encoding/csv"
	"fmt"
	"math"
	"math/rand"
	"strconv"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/KIHLYouns/GreenCity-ETL/internal/catalog"
	"github.com/KIHLYouns/GreenCity-ETL/internal/config"
	"github.com/KIHLYouns/GreenCity-ETL/internal/defect"
	"github.com/KIHLYouns/GreenCity-ETL/internal/domain"
	"github.com/KIHLYouns/GreenCity-ETL/internal/export"
)

// Module provides the exporter to the fx graph.
var Module = fx.Module("export.envreport", fx.Provide(New))

var header = []string{"region_id", "building_id", "report_date", "co2_emission_kg", "recycling_rate"}

// Exporter writes the monthly environmental reports.
type Exporter struct {
	cfg config.Config
	log *zap.Logger
	rng *rand.Rand
	inj *defect.Injector
}

// New builds the exporter with its own seeded random stream.
func New(cfg config.Config, log *zap.Logger) *Exporter {
	rng := rand.New(rand.NewSource(cfg.Seed))
	return &Exporter{
		cfg: cfg,
		log: log.Named("export.envreport"),
		rng: rng,
		inj: defect.New(cfg.Defects, rng),
	}
}

// FileName names the artifact for one month.
func FileName(month time.Month, year int) string {
	return fmt.Sprintf("env_reports_%02d_%d.csv", int(month), year)
}

// Export writes one report per month of the configured window.
func (e *Exporter) Export(ds *domain.Dataset, sink export.Sink) error {
	files := 0
	cur := time.Date(e.cfg.Window.Start.Year(), e.cfg.Window.Start.Month(), 1, 0, 0, 0, 0, time.UTC)
	for !cur.After(e.cfg.Window.End) {
		if err := e.ExportMonth(ds, cur.Month(), cur.Year(), sink); err != nil {
			return err
		}
		files++
		cur = cur.AddDate(0, 1, 0)
	}
	e.log.Info("environmental reports written", zap.Int("files", files))
	return nil
}

// ExportMonth writes the report for one month: one row per building plus
// the configured duplicate fraction.
func (e *Exporter) ExportMonth(ds *domain.Dataset, month time.Month, year int, sink export.Sink) error {
	rows := e.BuildMonth(ds, month, year)

	name := FileName(month, year)
	f, err := sink.Create(name)
	if err != nil {
		return fmt.Errorf("envreport: create %s: %w", name, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("envreport: write %s: %w", name, err)
	}
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("envreport: write %s: %w", name, err)
	}
	return f.Close()
}

// BuildMonth assembles the report rows for one month.
func (e *Exporter) BuildMonth(ds *domain.Dataset, month time.Month, year int) [][]string {
	// Report date is the last day of the month.
	reportDate := time.Date(year, month+1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)

	rows := make([][]string, 0, len(ds.Buildings))
	for _, b := range ds.Buildings {
		rows = append(rows, e.row(b, reportDate, month))
	}

	dups := e.inj.DuplicateCount(len(rows))
	for k := 0; k < dups; k++ {
		rows = append(rows, rows[e.rng.Intn(len(rows))])
	}
	return rows
}

func (e *Exporter) row(b domain.Building, reportDate time.Time, month time.Month) []string {
	rate, ok := catalog.EmissionRates[b.Type]
	if !ok {
		rate = catalog.DefaultEmissionRate
	}

	var seasonFactor float64
	if catalog.IsHeatingSeason(month) {
		seasonFactor = e.uniform(1.3, 1.8)
	} else {
		seasonFactor = e.uniform(0.8, 1.2)
	}

	// Surface may carry a corrupted sign; the emission model works on
	// the magnitude.
	emission := round2(math.Abs(b.SurfaceM2) * rate * seasonFactor * e.uniform(0.8, 1.2))
	recycling := round2(e.uniform(0.45, 0.85))

	emissionCell := formatFloat(emission)
	recyclingCell := formatFloat(recycling)
	dateCell := e.inj.Date(reportDate)
	buildingCell := e.inj.Whitespace(b.ID)

	// Missing emission renders as an empty cell, the CSV null marker.
	if e.inj.Flip(e.inj.Rates().Missing) {
		emissionCell = ""
	}
	if e.inj.Flip(e.inj.Rates().Incoherent) {
		if e.rng.Float64() < 0.5 {
			emissionCell = formatFloat(-emission)
		} else {
			recyclingCell = formatFloat(round2(e.uniform(1.5, 2.0)))
		}
	}

	return []string{b.RegionID, buildingCell, dateCell, emissionCell, recyclingCell}
}

func (e *Exporter) uniform(lo, hi float64) float64 {
	return lo + e.rng.Float64()*(hi-lo)
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }

func formatFloat(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
