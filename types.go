package cryptolab

// PrimePoolParams bounds the pool of known primes key generation draws from.
// The pool is every prime in [Min, Max).
type PrimePoolParams struct {
	Min uint64 `toml:"min" json:"min"`
	Max uint64 `toml:"max" json:"max"`
}

// PeriodParams is the inclusive range of key lengths tried by period estimation.
type PeriodParams struct {
	Min int `toml:"min" json:"min"`
	Max int `toml:"max" json:"max"`
}

// LogParams configures the logger built by drivers.
type LogParams struct {
	Level string `toml:"level" json:"level"` // debug, info, warn or error
	JSON  bool   `toml:"json" json:"json"`
}

// Params contains the driver-side defaults that the core only ever receives as
// plain arguments.
type Params struct {
	PrimePool PrimePoolParams `toml:"prime_pool" json:"prime_pool"`
	Period    PeriodParams    `toml:"period" json:"period"`
	// Seed is a hex string. When set, key generation reads from a
	// deterministic stream derived from it.
	Seed string    `toml:"seed,omitempty" json:"seed,omitempty"`
	Log  LogParams `toml:"log" json:"log"`
}
