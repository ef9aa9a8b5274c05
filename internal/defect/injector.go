// Package defect implements policy-driven corruption of scalar values.
// Injection is intentional data shape, not an error path: no operation
// here can fail, each one only consumes entropy from the shared random
// source. Identifiers and foreign keys must never be routed through an
// Injector.
package defect

import (
	"math/rand"
	"strconv"
	"strings"
	"time"
)

// Rates holds one independent probability per defect kind.
type Rates struct {
	Missing       float64 `mapstructure:"missing"`
	Duplicate     float64 `mapstructure:"duplicate"`
	Whitespace    float64 `mapstructure:"whitespace"`
	BadDateFormat float64 `mapstructure:"badDateFormat"`
	Incoherent    float64 `mapstructure:"incoherent"`
}

// DefaultRates mirrors the reference defect magnitudes.
func DefaultRates() Rates {
	return Rates{
		Missing:       0.02,
		Duplicate:     0.01,
		Whitespace:    0.03,
		BadDateFormat: 0.02,
		Incoherent:    0.02,
	}
}

// Zero returns rates that disable every defect kind.
func Zero() Rates { return Rates{} }

// canonicalDate is the ISO form every date renders to unless the
// bad-date-format defect fires.
const canonicalDate = "2006-01-02"

// badDateLayouts are the non-canonical renderings. The fourth variant is
// a raw unix-seconds string, handled separately.
var badDateLayouts = []string{"02/01/2006", "01-02-2006", "2006/01/02"}

// Injector corrupts scalar values according to a Rates policy, drawing
// from a caller-owned random source.
type Injector struct {
	rates Rates
	rng   *rand.Rand
}

// New builds an Injector over the shared random source.
func New(rates Rates, rng *rand.Rand) *Injector {
	return &Injector{rates: rates, rng: rng}
}

// Rates returns the injector's policy.
func (i *Injector) Rates() Rates { return i.rates }

// Flip draws once against an arbitrary rate. Used for collection-level
// decisions (duplicates) and the direct surface-area sign flip.
func (i *Injector) Flip(rate float64) bool {
	return i.rng.Float64() < rate
}

// MissingString nils out a string at the missing rate.
func (i *Injector) MissingString(v string) *string {
	if i.Flip(i.rates.Missing) {
		return nil
	}
	return &v
}

// Whitespace wraps a value with 1-3 leading and 1-3 trailing spaces at
// the whitespace rate.
func (i *Injector) Whitespace(v string) string {
	if !i.Flip(i.rates.Whitespace) {
		return v
	}
	lead := strings.Repeat(" ", 1+i.rng.Intn(3))
	trail := strings.Repeat(" ", 1+i.rng.Intn(3))
	return lead + v + trail
}

// Date renders t canonically, or in one of four non-canonical formats at
// the bad-date-format rate.
func (i *Injector) Date(t time.Time) string {
	if !i.Flip(i.rates.BadDateFormat) {
		return t.Format(canonicalDate)
	}
	pick := i.rng.Intn(len(badDateLayouts) + 1)
	if pick == len(badDateLayouts) {
		return strconv.FormatInt(t.Unix(), 10)
	}
	return t.Format(badDateLayouts[pick])
}

// IncoherentFloat negates or multiplies by 100 at the incoherent rate.
func (i *Injector) IncoherentFloat(v float64) float64 {
	if !i.Flip(i.rates.Incoherent) {
		return v
	}
	if i.rng.Float64() < 0.5 {
		if v > 0 {
			return -v
		}
		return v
	}
	return v * 100
}

// IncoherentEmail doubles the "@" at the incoherent rate.
func (i *Injector) IncoherentEmail(v string) string {
	if !i.Flip(i.rates.Incoherent) {
		return v
	}
	if !strings.Contains(v, "@") {
		return v
	}
	return strings.Replace(v, "@", "@@", 1)
}

// DuplicateCount sizes the collection-level duplicate set for n rows.
func (i *Injector) DuplicateCount(n int) int {
	return int(float64(n) * i.rates.Duplicate)
}
