package configs

import "time"

// Traffic configures the campaign scheduler and the hit executor.
// MinInterval is the pacing floor for a single campaign. RequestTimeout
// bounds one outbound visit. Require2xx makes non-2xx responses count as
// failed hits. Reconcile chooses what happens on boot to campaigns left
// active by a previous process: "resume", "stop" or "off".
type Traffic struct {
	MinInterval      time.Duration `env:"MIN_INTERVAL" envDefault:"2s"`
	RequestTimeout   time.Duration `env:"REQUEST_TIMEOUT" envDefault:"10s"`
	Require2xx       bool          `env:"REQUIRE_2XX" envDefault:"false"`
	Reconcile        string        `env:"RECONCILE" envDefault:"resume"`
	ReconcileWorkers int           `env:"RECONCILE_WORKERS" envDefault:"8"`
	ShutdownTimeout  time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}
