package sqlexport

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/KIHLYouns/GreenCity-ETL/internal/config"
	"github.com/KIHLYouns/GreenCity-ETL/internal/domain"
	"github.com/KIHLYouns/GreenCity-ETL/internal/export"
)

func testConfig() config.Config {
	return config.Config{
		Seed: 42,
		Window: config.Window{
			Start: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			End:   time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC),
		},
	}
}

func testDataset() *domain.Dataset {
	address := "12 Rue de l'Atlas"
	return &domain.Dataset{
		Regions: []domain.Region{
			{ID: "REG01", Name: "Casablanca-Settat", Country: "Morocco", City: "Casablanca", PostalCode: "20000"},
		},
		EnergyTypes: []domain.EnergyType{
			{ID: 1, Label: "electricity", Unit: "kWh"},
		},
		Buildings: []domain.Building{
			{ID: "BAT001", RegionID: "REG01", Name: "Tour O'Brien", Address: &address,
				SurfaceM2: 1200.5, Type: domain.BuildingCommercial, Floors: 3, ConstructionYear: 1995},
			{ID: "BAT002", RegionID: "REG01", Name: "Résidence Azur", Address: nil,
				SurfaceM2: -800, Type: domain.BuildingResidential, Floors: 2, ConstructionYear: 2010},
		},
	}
}

func TestExportEscapesQuotes(t *testing.T) {
	sink := export.NewMemSink()
	require.NoError(t, New(testConfig(), zap.NewNop()).Export(testDataset(), sink))

	script := sink.Files[FileName].String()
	assert.Contains(t, script, "'Tour O''Brien'")
	assert.Contains(t, script, "'12 Rue de l''Atlas'")
}

func TestExportRendersNullForMissingValues(t *testing.T) {
	sink := export.NewMemSink()
	require.NoError(t, New(testConfig(), zap.NewNop()).Export(testDataset(), sink))

	script := sink.Files[FileName].String()
	assert.Contains(t, script,
		"INSERT INTO buildings (id, region_id, name, address, surface_m2, type, floors, construction_year) "+
			"VALUES ('BAT002', 'REG01', 'Résidence Azur', NULL, -800, 'residential', 2, 2010);")
}

func TestExportBlockOrderFollowsDependencies(t *testing.T) {
	sink := export.NewMemSink()
	require.NoError(t, New(testConfig(), zap.NewNop()).Export(testDataset(), sink))

	script := sink.Files[FileName].String()
	order := []string{
		"SET FOREIGN_KEY_CHECKS = 0;",
		"-- regions",
		"-- energy_types",
		"-- buildings",
		"-- meters",
		"-- clients",
		"-- contracts",
		"-- tariffs",
		"-- invoices",
		"-- payments",
		"-- temperature_readings",
		"SET FOREIGN_KEY_CHECKS = 1;",
	}
	last := -1
	for _, marker := range order {
		pos := strings.Index(script, marker)
		require.GreaterOrEqual(t, pos, 0, "missing %q", marker)
		assert.Greater(t, pos, last, "%q out of order", marker)
		last = pos
	}
}

func TestExportHeaderCarriesSeedAndWindow(t *testing.T) {
	sink := export.NewMemSink()
	require.NoError(t, New(testConfig(), zap.NewNop()).Export(testDataset(), sink))

	script := sink.Files[FileName].String()
	assert.Contains(t, script, "-- seed: 42  window: 2024-01-01 .. 2025-01-31")
}

func TestExportIsByteDeterministic(t *testing.T) {
	ds := testDataset()

	a := export.NewMemSink()
	require.NoError(t, New(testConfig(), zap.NewNop()).Export(ds, a))
	b := export.NewMemSink()
	require.NoError(t, New(testConfig(), zap.NewNop()).Export(ds, b))

	assert.Equal(t, a.Files[FileName].String(), b.Files[FileName].String())
}
