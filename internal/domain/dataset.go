package domain

// Dataset holds every generated collection. Collections are append-only
// during generation and read-only for exporters; entities are never
// mutated after being appended.
type Dataset struct {
	Regions      []Region
	EnergyTypes  []EnergyType
	Buildings    []Building
	Meters       []Meter
	Clients      []Client
	Contracts    []Contract
	Tariffs      []Tariff
	Invoices     []Invoice
	Payments     []Payment
	Temperatures []TemperatureReading
}

// MeterByID resolves a meter id. Meter ids are unique, so the first match
// wins.
func (d *Dataset) MeterByID(id string) (Meter, bool) {
	for _, m := range d.Meters {
		if m.ID == id {
			return m, true
		}
	}
	return Meter{}, false
}

// BuildingsInRegion returns the buildings attached to a region, in
// generation order.
func (d *Dataset) BuildingsInRegion(regionID string) []Building {
	var out []Building
	for _, b := range d.Buildings {
		if b.RegionID == regionID {
			out = append(out, b)
		}
	}
	return out
}

// MetersFor returns the meters of a building matching one energy type.
func (d *Dataset) MetersFor(buildingID string, energyTypeID int) []Meter {
	var out []Meter
	for _, m := range d.Meters {
		if m.BuildingID == buildingID && m.EnergyTypeID == energyTypeID {
			out = append(out, m)
		}
	}
	return out
}
