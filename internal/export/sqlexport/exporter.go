// Package sqlexport serializes the dataset into one SQL insert script,
// one statement block per entity in foreign-key dependency order. The
// script is text synthesis only; constraint checking is suspended around
// it so ordering slack in hand-edited fixtures still loads.
package sqlexport

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/KIHLYouns/GreenCity-ETL/internal/config"
	"github.com/KIHLYouns/GreenCity-ETL/internal/domain"
	"github.com/KIHLYouns/GreenCity-ETL/internal/export"
)

// Module provides the exporter to the fx graph.
var Module = fx.Module("export.sql", fx.Provide(New))

// FileName is the single artifact this exporter produces.
const FileName = "insert_data.sql"

// Exporter writes the relational insert script.
type Exporter struct {
	cfg config.Config
	log *zap.Logger
}

// New builds the exporter.
func New(cfg config.Config, log *zap.Logger) *Exporter {
	return &Exporter{cfg: cfg, log: log.Named("export.sql")}
}

// Export writes the full script to the sink.
func (e *Exporter) Export(ds *domain.Dataset, sink export.Sink) error {
	f, err := sink.Create(FileName)
	if err != nil {
		return fmt.Errorf("sqlexport: create: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	e.write(w, ds)
	if err := w.Flush(); err != nil {
		return fmt.Errorf("sqlexport: write: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("sqlexport: close: %w", err)
	}

	e.log.Info("sql script written", zap.String("file", FileName))
	return nil
}

func (e *Exporter) write(w io.Writer, ds *domain.Dataset) {
	fmt.Fprintf(w, "-- ============================================\n")
	fmt.Fprintf(w, "-- GreenCity synthetic dataset\n")
	fmt.Fprintf(w, "-- seed: %d  window: %s .. %s\n",
		e.cfg.Seed,
		e.cfg.Window.Start.Format("2006-01-02"),
		e.cfg.Window.End.Format("2006-01-02"))
	fmt.Fprintf(w, "-- ============================================\n\n")
	fmt.Fprintf(w, "SET FOREIGN_KEY_CHECKS = 0;\n")

	fmt.Fprintf(w, "\n-- regions\n")
	for _, r := range ds.Regions {
		e.insert(w, "regions", "id, name, country, city, postal_code",
			str(r.ID), str(r.Name), str(r.Country), str(r.City), str(r.PostalCode))
	}

	fmt.Fprintf(w, "\n-- energy_types\n")
	for _, et := range ds.EnergyTypes {
		e.insert(w, "energy_types", "id, label, unit",
			integer(et.ID), str(et.Label), str(et.Unit))
	}

	fmt.Fprintf(w, "\n-- buildings\n")
	for _, b := range ds.Buildings {
		e.insert(w, "buildings", "id, region_id, name, address, surface_m2, type, floors, construction_year",
			str(b.ID), str(b.RegionID), str(b.Name), nullStr(b.Address),
			float(b.SurfaceM2), str(string(b.Type)), integer(b.Floors), integer(b.ConstructionYear))
	}

	fmt.Fprintf(w, "\n-- meters\n")
	for _, m := range ds.Meters {
		e.insert(w, "meters", "id, building_id, energy_type_id, install_date, status",
			str(m.ID), str(m.BuildingID), integer(m.EnergyTypeID), str(m.InstallDate), str(string(m.Status)))
	}

	fmt.Fprintf(w, "\n-- clients\n")
	for _, c := range ds.Clients {
		e.insert(w, "clients", "id, name, first_name, email, phone, type, address, region_id, registration_date, status",
			str(c.ID), str(c.Name), nullStr(c.FirstName), nullStr(c.Email), nullStr(c.Phone),
			str(string(c.Type)), str(c.Address), str(c.RegionID), str(c.RegistrationDate), str(string(c.Status)))
	}

	fmt.Fprintf(w, "\n-- contracts\n")
	for _, c := range ds.Contracts {
		e.insert(w, "contracts", "id, client_id, meter_id, start_date, end_date, status",
			str(c.ID), str(c.ClientID), str(c.MeterID), str(c.StartDate), nullStr(c.EndDate), str(string(c.Status)))
	}

	fmt.Fprintf(w, "\n-- tariffs\n")
	for _, t := range ds.Tariffs {
		e.insert(w, "tariffs", "energy_type_id, unit_purchase_cost, unit_sale_price, valid_from, valid_until",
			integer(t.EnergyTypeID), float(t.UnitPurchaseCost), float(t.UnitSalePrice), str(t.ValidFrom), str(t.ValidUntil))
	}

	fmt.Fprintf(w, "\n-- invoices\n")
	for _, i := range ds.Invoices {
		e.insert(w, "invoices", "id, contract_id, issue_date, due_date, period_start, period_end, amount_excl_tax, tax_rate, amount_incl_tax, energy_cost, consumption, payment_status",
			str(i.ID), str(i.ContractID), str(i.IssueDate), str(i.DueDate), str(i.PeriodStart), str(i.PeriodEnd),
			float(i.AmountExclTax), float(i.TaxRate), float(i.AmountInclTax), float(i.EnergyCost), float(i.Consumption),
			str(string(i.PaymentStatus)))
	}

	fmt.Fprintf(w, "\n-- payments\n")
	for _, p := range ds.Payments {
		e.insert(w, "payments", "id, invoice_id, payment_date, amount, mode, transaction_ref",
			str(p.ID), str(p.InvoiceID), str(p.PaymentDate), float(p.Amount), str(string(p.Mode)), str(p.TransactionRef))
	}

	fmt.Fprintf(w, "\n-- temperature_readings\n")
	for _, t := range ds.Temperatures {
		e.insert(w, "temperature_readings", "region_id, measured_at, temperature_min, temperature_max, temperature_avg",
			str(t.RegionID), str(t.MeasuredAt), float(t.TempMin), float(t.TempMax), float(t.TempAvg))
	}

	fmt.Fprintf(w, "\nSET FOREIGN_KEY_CHECKS = 1;\n")
}

func (e *Exporter) insert(w io.Writer, table, columns string, values ...string) {
	fmt.Fprintf(w, "INSERT INTO %s (%s) VALUES (%s);\n", table, columns, strings.Join(values, ", "))
}

// Value rendering. NULL is distinct from the empty string: nil pointers
// render as the SQL keyword, empty strings as ''.

func str(v string) string {
	return "'" + strings.ReplaceAll(v, "'", "''") + "'"
}

func nullStr(v *string) string {
	if v == nil {
		return "NULL"
	}
	return str(*v)
}

func integer(v int) string { return strconv.Itoa(v) }

func float(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
