package generator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/KIHLYouns/GreenCity-ETL/internal/config"
	"github.com/KIHLYouns/GreenCity-ETL/internal/defect"
	"github.com/KIHLYouns/GreenCity-ETL/internal/domain"
)

func testConfig() config.Config {
	return config.Config{
		Seed: 42,
		Counts: config.Counts{
			Regions:                8,
			Buildings:              30,
			Clients:                60,
			Contracts:              80,
			MaxInvoicesPerContract: 12,
		},
		Defects: defect.DefaultRates(),
		Window: config.Window{
			Start: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			End:   time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC),
		},
		Telemetry: config.Window{
			Start: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			End:   time.Date(2025, 1, 7, 0, 0, 0, 0, time.UTC),
		},
	}
}

func newTestPipeline(cfg config.Config) *Pipeline {
	return New(Params{Config: cfg, Log: zap.NewNop()})
}

func TestReferentialIntegrity(t *testing.T) {
	ds := newTestPipeline(testConfig()).Generate()

	regions := map[string]bool{}
	for _, r := range ds.Regions {
		regions[r.ID] = true
	}
	energyTypes := map[int]bool{}
	for _, et := range ds.EnergyTypes {
		energyTypes[et.ID] = true
	}
	buildings := map[string]bool{}
	for _, b := range ds.Buildings {
		require.True(t, regions[b.RegionID], "building %s has dangling region %s", b.ID, b.RegionID)
		buildings[b.ID] = true
	}
	meters := map[string]bool{}
	for _, m := range ds.Meters {
		require.True(t, buildings[m.BuildingID], "meter %s has dangling building %s", m.ID, m.BuildingID)
		require.True(t, energyTypes[m.EnergyTypeID], "meter %s has dangling energy type %d", m.ID, m.EnergyTypeID)
		meters[m.ID] = true
	}
	clients := map[string]bool{}
	for _, c := range ds.Clients {
		require.True(t, regions[c.RegionID], "client %s has dangling region %s", c.ID, c.RegionID)
		clients[c.ID] = true
	}
	contracts := map[string]bool{}
	for _, c := range ds.Contracts {
		require.True(t, clients[c.ClientID], "contract %s has dangling client %s", c.ID, c.ClientID)
		require.True(t, meters[c.MeterID], "contract %s has dangling meter %s", c.ID, c.MeterID)
		contracts[c.ID] = true
	}
	for _, tr := range ds.Tariffs {
		require.True(t, energyTypes[tr.EnergyTypeID])
	}
	invoices := map[string]bool{}
	for _, inv := range ds.Invoices {
		require.True(t, contracts[inv.ContractID], "invoice %s has dangling contract %s", inv.ID, inv.ContractID)
		invoices[inv.ID] = true
	}
	for _, p := range ds.Payments {
		require.True(t, invoices[p.InvoiceID], "payment %s has dangling invoice %s", p.ID, p.InvoiceID)
	}
	for _, tr := range ds.Temperatures {
		require.True(t, regions[tr.RegionID])
	}
}

func TestDeterminism(t *testing.T) {
	a := newTestPipeline(testConfig()).Generate()
	b := newTestPipeline(testConfig()).Generate()
	require.Equal(t, a, b)
}

func TestEnergyTypeCatalog(t *testing.T) {
	ds := newTestPipeline(testConfig()).Generate()
	require.Len(t, ds.EnergyTypes, 3)
	assert.Equal(t, "electricity", ds.EnergyTypes[0].Label)
	assert.Equal(t, "kWh", ds.EnergyTypes[0].Unit)
	assert.Equal(t, "water", ds.EnergyTypes[1].Label)
	assert.Equal(t, "gas", ds.EnergyTypes[2].Label)
}

func TestOneMeterPerBuildingAndEnergyType(t *testing.T) {
	ds := newTestPipeline(testConfig()).Generate()

	type pair struct {
		building   string
		energyType int
	}
	seen := map[pair]int{}
	for _, m := range ds.Meters {
		seen[pair{m.BuildingID, m.EnergyTypeID}]++
	}
	for key, n := range seen {
		assert.Equal(t, 1, n, "pair %v", key)
	}
	assert.Len(t, ds.Meters, len(ds.Buildings)*3)
}

func TestContractStatusMatchesEndDate(t *testing.T) {
	ds := newTestPipeline(testConfig()).Generate()

	for _, c := range ds.Contracts {
		if c.Status == domain.ContractActive {
			assert.Nil(t, c.EndDate, "active contract %s has an end date", c.ID)
		} else {
			require.NotNil(t, c.EndDate, "closed contract %s has no end date", c.ID)
			assert.Contains(t,
				[]domain.ContractStatus{domain.ContractTerminated, domain.ContractCancelled},
				c.Status)
		}
	}
}

func TestPaidInvoicesHaveExactlyOnePayment(t *testing.T) {
	ds := newTestPipeline(testConfig()).Generate()

	paymentsByInvoice := map[string]int{}
	for _, p := range ds.Payments {
		paymentsByInvoice[p.InvoiceID]++
	}
	for _, inv := range ds.Invoices {
		if inv.PaymentStatus == domain.PaymentPaid {
			assert.Equal(t, 1, paymentsByInvoice[inv.ID], "invoice %s", inv.ID)
		} else {
			assert.Zero(t, paymentsByInvoice[inv.ID], "invoice %s", inv.ID)
		}
	}
}

func TestPaymentDatesNearDueDate(t *testing.T) {
	ds := newTestPipeline(testConfig()).Generate()

	dueByInvoice := map[string]string{}
	for _, inv := range ds.Invoices {
		dueByInvoice[inv.ID] = inv.DueDate
	}
	for _, p := range ds.Payments {
		due, err := time.Parse("2006-01-02", dueByInvoice[p.InvoiceID])
		require.NoError(t, err)
		paid, err := time.Parse("2006-01-02", p.PaymentDate)
		require.NoError(t, err)

		days := int(paid.Sub(due).Hours() / 24)
		assert.GreaterOrEqual(t, days, -15)
		assert.LessOrEqual(t, days, 10)
	}
}

func TestInvoiceBounds(t *testing.T) {
	cfg := testConfig()
	ds := newTestPipeline(cfg).Generate()

	contractsByID := map[string]domain.Contract{}
	for _, c := range ds.Contracts {
		contractsByID[c.ID] = c
	}

	perContract := map[string]int{}
	for _, inv := range ds.Invoices {
		perContract[inv.ContractID]++

		c := contractsByID[inv.ContractID]
		start, _ := time.Parse("2006-01-02", c.StartDate)
		end := cfg.Window.End
		if c.EndDate != nil {
			end, _ = time.Parse("2006-01-02", *c.EndDate)
		}

		periodStart, _ := time.Parse("2006-01-02", inv.PeriodStart)
		periodEnd, _ := time.Parse("2006-01-02", inv.PeriodEnd)
		assert.False(t, periodStart.Before(start), "invoice %s starts before contract", inv.ID)
		assert.False(t, periodEnd.After(end), "invoice %s extends past contract end", inv.ID)
	}
	for id, n := range perContract {
		assert.LessOrEqual(t, n, cfg.Counts.MaxInvoicesPerContract, "contract %s", id)
	}
}

func TestInvoiceScheduleFor400DayContract(t *testing.T) {
	cfg := testConfig()
	cfg.Defects = defect.Zero()
	p := newTestPipeline(cfg)

	ds := &domain.Dataset{}
	p.generateEnergyTypes(ds)
	ds.Meters = []domain.Meter{{
		ID:           "ELEC_0001",
		BuildingID:   "BAT001",
		EnergyTypeID: 1,
		InstallDate:  "2020-06-01",
		Status:       domain.MeterActive,
	}}
	end := "2023-02-05" // 400 days after the start
	ds.Contracts = []domain.Contract{{
		ID:        "CTR000001",
		ClientID:  "CLI00001",
		MeterID:   "ELEC_0001",
		StartDate: "2022-01-01",
		EndDate:   &end,
		Status:    domain.ContractTerminated,
	}}

	p.generateInvoices(ds)
	require.Len(t, ds.Invoices, 12)

	prevStart := time.Time{}
	for i, inv := range ds.Invoices {
		start, _ := time.Parse("2006-01-02", inv.PeriodStart)
		endP, _ := time.Parse("2006-01-02", inv.PeriodEnd)
		assert.Equal(t, 30*24*time.Hour, endP.Sub(start))
		if i > 0 {
			assert.Equal(t, 30*24*time.Hour, start.Sub(prevStart))
		}
		assert.False(t, start.Before(time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)))

		// Derived amounts stay mutually consistent with zero defect rates.
		assert.GreaterOrEqual(t, inv.Consumption, 200.0)
		assert.LessOrEqual(t, inv.Consumption, 2000.0)
		assert.InDelta(t, inv.AmountExclTax*1.2, inv.AmountInclTax, 0.011)
		assert.Equal(t, 20.0, inv.TaxRate)

		prevStart = start
	}
}

func TestTariffWindowsContiguous(t *testing.T) {
	ds := newTestPipeline(testConfig()).Generate()

	byType := map[int][]domain.Tariff{}
	for _, tr := range ds.Tariffs {
		byType[tr.EnergyTypeID] = append(byType[tr.EnergyTypeID], tr)
	}
	require.Len(t, byType, 3)

	for typeID, windows := range byType {
		// 2022-01-01 through 2024-12-31 in 180-day steps: 7 windows.
		require.Len(t, windows, 7, "energy type %d", typeID)

		assert.Equal(t, "2022-01-01", windows[0].ValidFrom)
		for i, w := range windows {
			from, _ := time.Parse("2006-01-02", w.ValidFrom)
			until, _ := time.Parse("2006-01-02", w.ValidUntil)
			assert.Equal(t, 180*24*time.Hour, until.Sub(from))
			if i > 0 {
				assert.Equal(t, windows[i-1].ValidUntil, w.ValidFrom, "gap before window %d of type %d", i, typeID)
			}
			assert.Positive(t, w.UnitPurchaseCost)
			assert.Greater(t, w.UnitSalePrice, w.UnitPurchaseCost)
		}

		last, _ := time.Parse("2006-01-02", windows[len(windows)-1].ValidUntil)
		assert.False(t, last.Before(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)))
	}
}

func TestBuildingDuplicates(t *testing.T) {
	cfg := testConfig()
	cfg.Counts.Buildings = 50
	cfg.Defects.Duplicate = 0.1
	ds := newTestPipeline(cfg).Generate()

	require.Len(t, ds.Buildings, 55)

	ids := map[string]bool{}
	for _, b := range ds.Buildings {
		assert.False(t, ids[b.ID], "duplicate building id %s", b.ID)
		ids[b.ID] = true
	}
}

func TestTemperatureCoverageAndCorrelation(t *testing.T) {
	cfg := testConfig()
	cfg.Defects = defect.Zero()
	ds := newTestPipeline(cfg).Generate()

	require.Len(t, ds.Temperatures, len(ds.Regions)*cfg.Window.Days())

	for _, tr := range ds.Temperatures {
		day, err := time.Parse("2006-01-02", tr.MeasuredAt)
		require.NoError(t, err)

		// A single offset moves min, max and average together, so the
		// spreads always match the seasonal base table.
		switch day.Month() {
		case time.December, time.January, time.February:
			assert.InDelta(t, 15, tr.TempMax-tr.TempMin, 1e-9)
			assert.InDelta(t, 8, tr.TempAvg-tr.TempMin, 1e-9)
		case time.March, time.April, time.May:
			assert.InDelta(t, 15, tr.TempMax-tr.TempMin, 1e-9)
			assert.InDelta(t, 7, tr.TempAvg-tr.TempMin, 1e-9)
		case time.June, time.July, time.August:
			assert.InDelta(t, 20, tr.TempMax-tr.TempMin, 1e-9)
			assert.InDelta(t, 10, tr.TempAvg-tr.TempMin, 1e-9)
		default:
			assert.InDelta(t, 13, tr.TempMax-tr.TempMin, 1e-9)
			assert.InDelta(t, 6, tr.TempAvg-tr.TempMin, 1e-9)
		}
	}
}

func TestOrganizationsHaveNoFirstName(t *testing.T) {
	cfg := testConfig()
	cfg.Defects = defect.Zero()
	ds := newTestPipeline(cfg).Generate()

	for _, c := range ds.Clients {
		if c.Type == domain.ClientOrganization {
			assert.Nil(t, c.FirstName, "organization %s has a first name", c.ID)
		} else {
			assert.NotNil(t, c.FirstName, "individual %s lost its first name with zero defect rates", c.ID)
		}
	}
}
