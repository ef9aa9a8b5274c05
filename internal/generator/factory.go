package generator

import (
	"fmt"
	"time"

	"github.com/KIHLYouns/GreenCity-ETL/internal/catalog"
	"github.com/KIHLYouns/GreenCity-ETL/internal/domain"
)

// Entity factories. Each one takes its required foreign keys as typed
// parameters — a factory never invents a foreign key — and routes only
// the designated corruption-eligible fields through the defect injector.
// Identifiers and foreign keys are never corrupted.

func (p *Pipeline) newRegion(src domain.Region) domain.Region {
	src.Name = p.inj.Whitespace(src.Name)
	return src
}

func (p *Pipeline) newBuilding(seq int, regionID string) domain.Building {
	name := fmt.Sprintf("%s %s", pick(p.rng, catalog.BuildingKinds), p.fake.Person().LastName())

	surface := round2(p.uniform(500, 15000))
	// Two independent incoherence draws on the surface, per observed
	// generator behavior: one through the shared numeric helper, one
	// direct sign flip.
	surface = p.inj.IncoherentFloat(surface)
	if p.inj.Flip(p.inj.Rates().Incoherent) && surface > 0 {
		surface = -surface
	}

	return domain.Building{
		ID:               fmt.Sprintf("BAT%03d", seq),
		RegionID:         regionID,
		Name:             p.inj.Whitespace(name),
		Address:          p.inj.MissingString(p.fake.Address().StreetAddress()),
		SurfaceM2:        surface,
		Type:             pick(p.rng, catalog.BuildingTypes),
		Floors:           1 + p.rng.Intn(5),
		ConstructionYear: 1980 + p.rng.Intn(44),
	}
}

func (p *Pipeline) newMeter(seq int, buildingID string, et domain.EnergyType) domain.Meter {
	install := p.dateBetween(
		time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC),
	)
	return domain.Meter{
		ID:           fmt.Sprintf("%s_%04d", et.MeterPrefix, seq),
		BuildingID:   buildingID,
		EnergyTypeID: et.ID,
		InstallDate:  install.Format(dateLayout),
		Status:       pick(p.rng, catalog.MeterStatuses),
	}
}

func (p *Pipeline) newClient(seq int, regionID string) domain.Client {
	var (
		name       string
		firstName  *string
		clientType domain.ClientType
	)
	if p.rng.Float64() < 0.5 {
		clientType = domain.ClientIndividual
		name = p.fake.Person().LastName()
		firstName = p.inj.MissingString(p.fake.Person().FirstName())
	} else {
		clientType = domain.ClientOrganization
		name = p.fake.Company().Name()
	}

	email := p.inj.IncoherentEmail(p.fake.Internet().Email())

	status := domain.ClientStatusActive
	if p.rng.Float64() >= 0.9 {
		status = domain.ClientStatusInactive
	}

	registered := p.dateBetween(
		time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
	)

	return domain.Client{
		ID:               fmt.Sprintf("CLI%05d", seq),
		Name:             p.inj.Whitespace(name),
		FirstName:        firstName,
		Email:            p.inj.MissingString(email),
		Phone:            p.inj.MissingString(p.fake.Phone().Number()),
		Type:             clientType,
		Address:          fmt.Sprintf("%s, %s", p.fake.Address().StreetAddress(), p.fake.Address().City()),
		RegionID:         regionID,
		RegistrationDate: registered.Format(dateLayout),
		Status:           status,
	}
}

func (p *Pipeline) newContract(seq int, clientID, meterID string) domain.Contract {
	start := p.dateBetween(
		time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC),
	)

	// Status is derived from the end date, never drawn independently:
	// active if and only if the contract is open-ended.
	var (
		endDate *string
		status  domain.ContractStatus
	)
	if p.rng.Float64() < 0.7 {
		status = domain.ContractActive
	} else {
		end := start.AddDate(0, 0, 180+p.rng.Intn(551)).Format(dateLayout)
		endDate = &end
		status = domain.ContractTerminated
		if p.rng.Float64() < 0.5 {
			status = domain.ContractCancelled
		}
	}

	return domain.Contract{
		ID:        fmt.Sprintf("CTR%06d", seq),
		ClientID:  clientID,
		MeterID:   meterID,
		StartDate: start.Format(dateLayout),
		EndDate:   endDate,
		Status:    status,
	}
}

func (p *Pipeline) newTariff(energyTypeID int, base catalog.TariffBase, from time.Time) domain.Tariff {
	variation := p.uniform(0.95, 1.15)
	return domain.Tariff{
		EnergyTypeID:     energyTypeID,
		UnitPurchaseCost: round4(base.Purchase * variation),
		UnitSalePrice:    round4(base.Sale * variation),
		ValidFrom:        from.Format(dateLayout),
		ValidUntil:       from.AddDate(0, 0, catalog.TariffWindowDays).Format(dateLayout),
	}
}

func (p *Pipeline) newInvoice(seq int, contractID string, energyTypeID int, periodStart time.Time) domain.Invoice {
	profile := catalog.ConsumptionProfiles[energyTypeID]
	consumption := round2(p.uniform(profile.MinUnits, profile.MaxUnits))

	energyCost := round2(consumption * profile.UnitPrice * 0.6)
	exclTax := round2(consumption * profile.UnitPrice)
	inclTax := round2(exclTax * 1.2)

	status := domain.PaymentPaid
	switch r := p.rng.Float64(); {
	case r < 0.75:
	case r < 0.90:
		status = domain.PaymentPending
	default:
		status = domain.PaymentOverdue
	}

	// Incl-tax is derived before the sign flip so a corrupted invoice
	// stays internally inconsistent, as intended for the fixture.
	if p.inj.Flip(p.inj.Rates().Incoherent) {
		exclTax = -exclTax
	}

	periodEnd := periodStart.AddDate(0, 0, 30)
	return domain.Invoice{
		ID:            fmt.Sprintf("FAC%08d", seq),
		ContractID:    contractID,
		IssueDate:     periodEnd.Format(dateLayout),
		DueDate:       periodEnd.AddDate(0, 0, 30).Format(dateLayout),
		PeriodStart:   periodStart.Format(dateLayout),
		PeriodEnd:     periodEnd.Format(dateLayout),
		AmountExclTax: exclTax,
		TaxRate:       20.0,
		AmountInclTax: inclTax,
		EnergyCost:    energyCost,
		Consumption:   consumption,
		PaymentStatus: status,
	}
}

func (p *Pipeline) newPayment(seq int, invoice domain.Invoice) domain.Payment {
	due, _ := time.ParseInLocation(dateLayout, invoice.DueDate, time.UTC)
	paid := due.AddDate(0, 0, -15+p.rng.Intn(26))

	return domain.Payment{
		ID:             fmt.Sprintf("PAY%08d", seq),
		InvoiceID:      invoice.ID,
		PaymentDate:    paid.Format(dateLayout),
		Amount:         invoice.AmountInclTax,
		Mode:           pick(p.rng, catalog.PaymentModes),
		TransactionRef: p.transactionRef(paid),
	}
}

func (p *Pipeline) newTemperature(regionID string, day time.Time) domain.TemperatureReading {
	base := catalog.SeasonBases[catalog.SeasonOf(day.Month())]
	// One offset for the whole reading: min, max and average move
	// together.
	offset := p.uniform(-3, 3)

	return domain.TemperatureReading{
		RegionID:   regionID,
		MeasuredAt: p.inj.Date(day),
		TempMin:    round2(base.Min + offset),
		TempMax:    round2(base.Max + offset),
		TempAvg:    round2(base.Avg + offset),
	}
}
