// Package clock abstracts the wall clock for run timing. Artifacts never
// read it; only log output does, which keeps runs byte-identical.
package clock

import (
	"time"

	"go.uber.org/fx"
)

// Module provides the system clock to the fx graph.
var Module = fx.Provide(func() Clock { return System{} })

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

// System reads the wall clock in UTC.
type System struct{}

// Now returns the current UTC time.
func (System) Now() time.Time { return time.Now().UTC() }
