// Package catalog declares the fixed reference data every generation run
// starts from: regions, energy types, seasonal temperature bases, tariff
// base prices, consumption profiles and emission rates. Catalogs are
// immutable inputs to every stage.
package catalog

import (
	"time"

	"github.com/KIHLYouns/GreenCity-ETL/internal/domain"
)

// Regions is the fixed district catalog. A run uses the first
// counts.regions entries.
var Regions = []domain.Region{
	{ID: "REG01", Name: "Centre-Ville Tanger", Country: "Maroc", City: "Tanger", PostalCode: "90000"},
	{ID: "REG02", Name: "Quartier Charf Tanger", Country: "Maroc", City: "Tanger", PostalCode: "90000"},
	{ID: "REG03", Name: "Quartier Mgharza Tanger", Country: "Maroc", City: "Tanger", PostalCode: "90000"},
	{ID: "REG04", Name: "Quartier Ben Diab Tanger", Country: "Maroc", City: "Tanger", PostalCode: "90000"},
	{ID: "REG05", Name: "Centre-Ville Tétouan", Country: "Maroc", City: "Tétouan", PostalCode: "93000"},
	{ID: "REG06", Name: "Quartier Moulay Mehdi Tétouan", Country: "Maroc", City: "Tétouan", PostalCode: "93000"},
	{ID: "REG07", Name: "Quartier Sidi Mandri Tétouan", Country: "Maroc", City: "Tétouan", PostalCode: "93000"},
	{ID: "REG08", Name: "Quartier Oued Laou Tétouan", Country: "Maroc", City: "Tétouan", PostalCode: "93000"},
}

// Energy type ids. The catalog is exactly these three.
const (
	Electricity = 1
	Water       = 2
	Gas         = 3
)

// EnergyTypes is the fixed energy catalog.
var EnergyTypes = []domain.EnergyType{
	{ID: Electricity, Label: "electricity", Unit: "kWh", MeterPrefix: "ELEC"},
	{ID: Water, Label: "water", Unit: "m3", MeterPrefix: "WAT"},
	{ID: Gas, Label: "gas", Unit: "m3", MeterPrefix: "GAS"},
}

// TariffBase holds per-unit base prices for one energy type.
type TariffBase struct {
	Purchase float64
	Sale     float64
}

// TariffBases maps energy type id to base prices. Each ~180-day window
// perturbs these by a uniform 0.95-1.15 factor.
var TariffBases = map[int]TariffBase{
	Electricity: {Purchase: 0.08, Sale: 0.15},
	Water:       {Purchase: 2.50, Sale: 4.20},
	Gas:         {Purchase: 0.05, Sale: 0.09},
}

// Tariff horizon: sequential windows cover 2022 through 2024.
var (
	TariffHorizonStart = time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)
	TariffHorizonEnd   = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
)

// TariffWindowDays is the length of one validity window.
const TariffWindowDays = 180

// ConsumptionProfile holds the billing-period consumption range and the
// fixed sale price used for invoice derivation.
type ConsumptionProfile struct {
	MinUnits  float64
	MaxUnits  float64
	UnitPrice float64
}

// ConsumptionProfiles maps energy type id to its invoice constants.
var ConsumptionProfiles = map[int]ConsumptionProfile{
	Electricity: {MinUnits: 200, MaxUnits: 2000, UnitPrice: 0.15},
	Water:       {MinUnits: 10, MaxUnits: 100, UnitPrice: 4.20},
	Gas:         {MinUnits: 50, MaxUnits: 500, UnitPrice: 0.09},
}

// SeasonBase holds the per-season temperature baseline.
type SeasonBase struct {
	Min float64
	Max float64
	Avg float64
}

// Season identifies one of the four meteorological seasons.
type Season string

const (
	Winter Season = "winter"
	Spring Season = "spring"
	Summer Season = "summer"
	Autumn Season = "autumn"
)

// SeasonBases is the seasonal temperature table.
var SeasonBases = map[Season]SeasonBase{
	Winter: {Min: -5, Max: 10, Avg: 3},
	Spring: {Min: 5, Max: 20, Avg: 12},
	Summer: {Min: 15, Max: 35, Avg: 25},
	Autumn: {Min: 5, Max: 18, Avg: 11},
}

// SeasonOf maps a month to its season.
func SeasonOf(m time.Month) Season {
	switch m {
	case time.December, time.January, time.February:
		return Winter
	case time.March, time.April, time.May:
		return Spring
	case time.June, time.July, time.August:
		return Summer
	default:
		return Autumn
	}
}

// EmissionRates maps building type to its CO2 emission base (kg per m²
// per month). Unknown types fall back to DefaultEmissionRate.
var EmissionRates = map[domain.BuildingType]float64{
	domain.BuildingResidential: 0.15,
	domain.BuildingCommercial:  0.25,
	domain.BuildingIndustrial:  0.45,
	domain.BuildingMixed:       0.20,
}

// DefaultEmissionRate applies to building types missing from EmissionRates.
const DefaultEmissionRate = 0.20

// BuildingTypes is the draw set for building generation.
var BuildingTypes = []domain.BuildingType{
	domain.BuildingResidential,
	domain.BuildingCommercial,
	domain.BuildingIndustrial,
	domain.BuildingMixed,
}

// BuildingKinds prefixes generated building names.
var BuildingKinds = []string{"Tour", "Résidence", "Immeuble", "Centre", "Complexe", "Pavillon"}

// MeterStatuses is the weighted draw set for meter status; active is
// three times more likely than either other state.
var MeterStatuses = []domain.MeterStatus{
	domain.MeterActive,
	domain.MeterActive,
	domain.MeterActive,
	domain.MeterInactive,
	domain.MeterMaintenance,
}

// PaymentModes is the uniform draw set for payment generation.
var PaymentModes = []domain.PaymentMode{
	domain.ModeBankTransfer,
	domain.ModeCard,
	domain.ModeDirectDebit,
	domain.ModeCheque,
	domain.ModeCash,
}

// IsHeatingSeason reports whether gas consumption and CO2 emissions get
// their winter multiplier for the given month.
func IsHeatingSeason(m time.Month) bool {
	switch m {
	case time.November, time.December, time.January, time.February, time.March:
		return true
	default:
		return false
	}
}
