// Package telemetry derives hourly synthetic meter readings and writes
// one JSON artifact per (energy type, calendar day), grouped by region
// and building. The exporter owns its own random stream, seeded like the
// pipeline's; reproducibility is per-exporter, not cross-exporter.
package telemetry

import (
	"encoding/json"
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/gosimple/slug"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/KIHLYouns/GreenCity-ETL/internal/catalog"
	"github.com/KIHLYouns/GreenCity-ETL/internal/config"
	"github.com/KIHLYouns/GreenCity-ETL/internal/defect"
	"github.com/KIHLYouns/GreenCity-ETL/internal/domain"
	"github.com/KIHLYouns/GreenCity-ETL/internal/export"
)

// Module provides the exporter to the fx graph.
var Module = fx.Module("export.telemetry", fx.Provide(New))

const timestampLayout = "2006-01-02T15:04:05"

// Grouping is one building's day of readings inside an artifact.
type Grouping struct {
	RegionID      string           `json:"region_id"`
	BuildingID    string           `json:"building_id"`
	EnergyType    string           `json:"energy_type"`
	Unit          string           `json:"unit"`
	GeneratedDate string           `json:"generated_date"`
	Measures      []map[string]any `json:"measures"`
}

// Exporter writes the per-day telemetry files.
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
		log: log.Named("export.telemetry"),
		rng: rng,
		inj: defect.New(cfg.Defects, rng),
	}
}

// FileName names the artifact for one energy type and day.
func FileName(et domain.EnergyType, day time.Time) string {
	label := slug.Make(et.Label)
	label = strings.ToUpper(label[:1]) + label[1:]
	return fmt.Sprintf("%s_consumption_%02d_%02d_%d.json", label, day.Day(), int(day.Month()), day.Year())
}

// Export writes one artifact per energy type per day of the telemetry
// window.
func (e *Exporter) Export(ds *domain.Dataset, sink export.Sink) error {
	files := 0
	for day := e.cfg.Telemetry.Start; !day.After(e.cfg.Telemetry.End); day = day.AddDate(0, 0, 1) {
		for _, et := range ds.EnergyTypes {
			if err := e.ExportDay(ds, et, day, sink); err != nil {
				return err
			}
			files++
		}
	}
	e.log.Info("telemetry files written",
		zap.Int("files", files),
		zap.Int("days", e.cfg.Telemetry.Days()))
	return nil
}

// ExportDay writes the artifact for one (energy type, day) pair.
// Buildings with no meter for the energy type are omitted.
func (e *Exporter) ExportDay(ds *domain.Dataset, et domain.EnergyType, day time.Time, sink export.Sink) error {
	data := e.BuildDay(ds, et, day)

	name := FileName(et, day)
	f, err := sink.Create(name)
	if err != nil {
		return fmt.Errorf("telemetry: create %s: %w", name, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("telemetry: encode %s: %w", name, err)
	}
	return f.Close()
}

// BuildDay assembles the groupings for one (energy type, day) pair.
func (e *Exporter) BuildDay(ds *domain.Dataset, et domain.EnergyType, day time.Time) []Grouping {
	data := []Grouping{}
	for _, region := range ds.Regions {
		for _, building := range ds.BuildingsInRegion(region.ID) {
			meters := ds.MetersFor(building.ID, et.ID)
			if len(meters) == 0 {
				continue
			}

			g := Grouping{
				RegionID:      region.ID,
				BuildingID:    building.ID,
				EnergyType:    et.Label,
				Unit:          et.Unit,
				GeneratedDate: day.Format("2006-01-02"),
			}
			for _, m := range meters {
				g.Measures = append(g.Measures, e.hourlyMeasures(m, et, day)...)
			}
			data = append(data, g)
		}
	}
	return data
}

// hourlyMeasures produces 24 readings for one meter, each independently
// defect-injected, with a small chance of one duplicated reading at 5x
// the base duplicate rate.
func (e *Exporter) hourlyMeasures(m domain.Meter, et domain.EnergyType, day time.Time) []map[string]any {
	key := "consumption_" + strings.ToLower(et.Unit)

	measures := make([]map[string]any, 0, 24)
	for hour := 0; hour < 24; hour++ {
		at := time.Date(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, time.UTC)
		base := e.baseMagnitude(et.ID, hour, day.Month())

		measure := map[string]any{
			"meter_id":    m.ID,
			"measured_at": at.Format(timestampLayout),
		}
		switch {
		case e.inj.Flip(e.inj.Rates().Missing):
			measure[key] = nil
		case e.inj.Flip(e.inj.Rates().Incoherent):
			v := base * 100
			if e.rng.Float64() < 0.5 {
				v = -base
			}
			measure[key] = round2(v)
		default:
			measure[key] = round2(base)
		}
		measures = append(measures, measure)
	}

	if e.inj.Flip(e.inj.Rates().Duplicate * 5) {
		measures = append(measures, measures[e.rng.Intn(len(measures))])
	}
	return measures
}

// baseMagnitude applies the per-type base range and its peak multiplier.
func (e *Exporter) baseMagnitude(energyTypeID, hour int, month time.Month) float64 {
	switch energyTypeID {
	case catalog.Electricity:
		v := e.uniform(80, 200)
		if hour >= 8 && hour <= 18 {
			v *= e.uniform(1.2, 1.8)
		}
		return v
	case catalog.Water:
		v := e.uniform(0.5, 3.0)
		switch hour {
		case 7, 8, 9, 18, 19, 20:
			v *= e.uniform(1.5, 2.5)
		}
		return v
	default:
		v := e.uniform(2.0, 8.0)
		if catalog.IsHeatingSeason(month) {
			v *= e.uniform(1.5, 2.5)
		}
		return v
	}
}

func (e *Exporter) uniform(lo, hi float64) float64 {
	return lo + e.rng.Float64()*(hi-lo)
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
