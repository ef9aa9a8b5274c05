// Package domain contains the typed records of the synthetic billing dataset.
//
// Date fields that are eligible for the bad-date-format defect are stored
// pre-rendered as strings: a malformed date such as "13/01/2024" is only
// representable as text, and the fixture schema keeps those columns TEXT
// for the same reason. Nullable fields are pointers.
package domain

// BuildingType classifies a building's usage profile.
type BuildingType string

const (
	BuildingResidential BuildingType = "residential"
	BuildingCommercial  BuildingType = "commercial"
	BuildingIndustrial  BuildingType = "industrial"
	BuildingMixed       BuildingType = "mixed"
)

// MeterStatus represents meter operational states.
type MeterStatus string

const (
	MeterActive      MeterStatus = "active"
	MeterInactive    MeterStatus = "inactive"
	MeterMaintenance MeterStatus = "maintenance"
)

// ClientType distinguishes individuals from organizations.
type ClientType string

const (
	ClientIndividual   ClientType = "individual"
	ClientOrganization ClientType = "organization"
)

// ClientStatus represents client account states.
type ClientStatus string

const (
	ClientStatusActive   ClientStatus = "active"
	ClientStatusInactive ClientStatus = "inactive"
)

// ContractStatus represents contract lifecycle states. Suspended is a
// declared state the generator never emits.
type ContractStatus string

const (
	ContractActive     ContractStatus = "active"
	ContractTerminated ContractStatus = "terminated"
	ContractSuspended  ContractStatus = "suspended"
	ContractCancelled  ContractStatus = "cancelled"
)

// PaymentStatus represents invoice settlement states.
type PaymentStatus string

const (
	PaymentPaid    PaymentStatus = "paid"
	PaymentPending PaymentStatus = "pending"
	PaymentOverdue PaymentStatus = "overdue"
)

// PaymentMode enumerates settlement channels.
type PaymentMode string

const (
	ModeBankTransfer PaymentMode = "bank_transfer"
	ModeCard         PaymentMode = "card"
	ModeDirectDebit  PaymentMode = "direct_debit"
	ModeCheque       PaymentMode = "cheque"
	ModeCash         PaymentMode = "cash"
)

// Region is the root entity; seeded from a fixed catalog.
type Region struct {
	ID         string `gorm:"primaryKey" json:"region_id"`
	Name       string `gorm:"not null" json:"name"`
	Country    string `gorm:"not null" json:"country"`
	City       string `gorm:"not null" json:"city"`
	PostalCode string `gorm:"not null" json:"postal_code"`
}

// TableName sets the database table name.
func (Region) TableName() string { return "regions" }

// EnergyType is one of the three fixed energy categories.
type EnergyType struct {
	ID    int    `gorm:"primaryKey" json:"energy_type_id"`
	Label string `gorm:"not null" json:"label"`
	Unit  string `gorm:"not null" json:"unit"`

	// MeterPrefix is catalog metadata for meter id construction; it is
	// not part of the exported relational schema.
	MeterPrefix string `gorm:"-" json:"-"`
}

// TableName sets the database table name.
func (EnergyType) TableName() string { return "energy_types" }

// Building belongs to a region. SurfaceM2 is signed on purpose: the
// incoherent-value defect may flip it negative.
type Building struct {
	ID               string       `gorm:"primaryKey" json:"building_id"`
	RegionID         string       `gorm:"not null;index" json:"region_id"`
	Name             string       `gorm:"not null" json:"name"`
	Address          *string      `json:"address"`
	SurfaceM2        float64      `gorm:"not null" json:"surface_m2"`
	Type             BuildingType `gorm:"type:text;not null" json:"type"`
	Floors           int          `gorm:"not null" json:"floors"`
	ConstructionYear int          `gorm:"not null" json:"construction_year"`
}

// TableName sets the database table name.
func (Building) TableName() string { return "buildings" }

// Meter measures one energy type for one building.
type Meter struct {
	ID           string      `gorm:"primaryKey" json:"meter_id"`
	BuildingID   string      `gorm:"not null;index" json:"building_id"`
	EnergyTypeID int         `gorm:"not null;index" json:"energy_type_id"`
	InstallDate  string      `gorm:"not null" json:"install_date"`
	Status       MeterStatus `gorm:"type:text;not null" json:"status"`
}

// TableName sets the database table name.
func (Meter) TableName() string { return "meters" }

// Client is an individual or an organization. FirstName is nil for
// organizations; Email and Phone may be nil from the missing-value defect.
type Client struct {
	ID               string       `gorm:"primaryKey" json:"client_id"`
	Name             string       `gorm:"not null" json:"name"`
	FirstName        *string      `json:"first_name"`
	Email            *string      `json:"email"`
	Phone            *string      `json:"phone"`
	Type             ClientType   `gorm:"type:text;not null" json:"type"`
	Address          string       `gorm:"not null" json:"address"`
	RegionID         string       `gorm:"not null;index" json:"region_id"`
	RegistrationDate string       `gorm:"not null" json:"registration_date"`
	Status           ClientStatus `gorm:"type:text;not null" json:"status"`
}

// TableName sets the database table name.
func (Client) TableName() string { return "clients" }

// Contract links a client to a meter for a period. A nil EndDate means
// the contract is ongoing; Status is active if and only if EndDate is nil.
type Contract struct {
	ID        string         `gorm:"primaryKey" json:"contract_id"`
	ClientID  string         `gorm:"not null;index" json:"client_id"`
	MeterID   string         `gorm:"not null;index" json:"meter_id"`
	StartDate string         `gorm:"not null" json:"start_date"`
	EndDate   *string        `json:"end_date"`
	Status    ContractStatus `gorm:"type:text;not null" json:"status"`
}

// TableName sets the database table name.
func (Contract) TableName() string { return "contracts" }

// Tariff is one validity window of unit prices for an energy type.
type Tariff struct {
	EnergyTypeID     int     `gorm:"not null;index" json:"energy_type_id"`
	UnitPurchaseCost float64 `gorm:"not null" json:"unit_purchase_cost"`
	UnitSalePrice    float64 `gorm:"not null" json:"unit_sale_price"`
	ValidFrom        string  `gorm:"not null" json:"valid_from"`
	ValidUntil       string  `gorm:"not null" json:"valid_until"`
}

// TableName sets the database table name.
func (Tariff) TableName() string { return "tariffs" }

// Invoice bills one 30-day period of a contract. AmountExclTax may carry
// a flipped sign; AmountInclTax is always derived from the clean value.
type Invoice struct {
	ID            string        `gorm:"primaryKey" json:"invoice_id"`
	ContractID    string        `gorm:"not null;index" json:"contract_id"`
	IssueDate     string        `gorm:"not null" json:"issue_date"`
	DueDate       string        `gorm:"not null" json:"due_date"`
	PeriodStart   string        `gorm:"not null" json:"period_start"`
	PeriodEnd     string        `gorm:"not null" json:"period_end"`
	AmountExclTax float64       `gorm:"not null" json:"amount_excl_tax"`
	TaxRate       float64       `gorm:"not null" json:"tax_rate"`
	AmountInclTax float64       `gorm:"not null" json:"amount_incl_tax"`
	EnergyCost    float64       `gorm:"not null" json:"energy_cost"`
	Consumption   float64       `gorm:"not null" json:"consumption"`
	PaymentStatus PaymentStatus `gorm:"type:text;not null" json:"payment_status"`
}

// TableName sets the database table name.
func (Invoice) TableName() string { return "invoices" }

// Payment settles exactly one paid invoice.
type Payment struct {
	ID             string      `gorm:"primaryKey" json:"payment_id"`
	InvoiceID      string      `gorm:"not null;index" json:"invoice_id"`
	PaymentDate    string      `gorm:"not null" json:"payment_date"`
	Amount         float64     `gorm:"not null" json:"amount"`
	Mode           PaymentMode `gorm:"type:text;not null" json:"mode"`
	TransactionRef string      `gorm:"not null" json:"transaction_ref"`
}

// TableName sets the database table name.
func (Payment) TableName() string { return "payments" }

// TemperatureReading is one seasonally-modeled reading per region per day.
type TemperatureReading struct {
	RegionID   string  `gorm:"not null;index" json:"region_id"`
	MeasuredAt string  `gorm:"not null" json:"measured_at"`
	TempMin    float64 `gorm:"column:temperature_min;not null" json:"temperature_min"`
	TempMax    float64 `gorm:"column:temperature_max;not null" json:"temperature_max"`
	TempAvg    float64 `gorm:"column:temperature_avg;not null" json:"temperature_avg"`
}

// TableName sets the database table name.
func (TemperatureReading) TableName() string { return "temperature_readings" }
