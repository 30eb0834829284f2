// Package core provides default parameters, validation and configuration
// loading for cryptolab drivers.
package core

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-multierror"
	"go.uber.org/zap/zapcore"

	cryptolab "github.com/BackendStack21/cryptolab-go"
	"github.com/BackendStack21/cryptolab-go/log"
	"github.com/BackendStack21/cryptolab-go/numtheory"
	"github.com/BackendStack21/cryptolab-go/utils"
)

// MaxPrimePoolBound caps the pool range so building it stays cheap and every
// product of two pool primes fits in 64 bits.
const MaxPrimePoolBound = 1 << 24

// DefaultParams are the values the classroom demo has always used: primes in
// [5, 200) and key lengths 1 through 20.
var DefaultParams = cryptolab.Params{
	PrimePool: cryptolab.PrimePoolParams{Min: 5, Max: 200},
	Period:    cryptolab.PeriodParams{Min: 1, Max: 20},
	Log:       cryptolab.LogParams{Level: "info"},
}

// ValidateParams checks params for consistency and reports every violation.
func ValidateParams(params cryptolab.Params) error {
	var result *multierror.Error

	pool := params.PrimePool
	if pool.Max <= pool.Min {
		result = multierror.Append(result, fmt.Errorf("prime pool range [%d, %d) is empty", pool.Min, pool.Max))
	}
	if pool.Max > MaxPrimePoolBound {
		result = multierror.Append(result, fmt.Errorf("prime pool bound %d exceeds %d", pool.Max, MaxPrimePoolBound))
	}
	if pool.Max > pool.Min && pool.Max <= MaxPrimePoolBound {
		if n := len(numtheory.PrimesInRange(pool.Min, pool.Max)); n < 2 {
			result = multierror.Append(result, fmt.Errorf("prime pool [%d, %d) holds %d primes, need at least 2", pool.Min, pool.Max, n))
		}
	}

	if err := utils.CheckPositive(params.Period.Min, "minimum period"); err != nil {
		result = multierror.Append(result, err)
	}
	if params.Period.Max < params.Period.Min {
		result = multierror.Append(result, errors.New("maximum period must not be below minimum period"))
	}

	if params.Seed != "" {
		if _, err := utils.ParseSeed(params.Seed); err != nil {
			result = multierror.Append(result, err)
		}
	}
	if _, err := log.ParseLevel(params.Log.Level); err != nil {
		result = multierror.Append(result, err)
	}

	return result.ErrorOrNil()
}

// PrimePool lists the primes key generation draws from.
func PrimePool(params cryptolab.Params) []uint64 {
	return numtheory.PrimesInRange(params.PrimePool.Min, params.PrimePool.Max)
}

// RandomSource returns the reader key generation should use: a seeded stream
// when params.Seed is set, utils.RandReader otherwise.
func RandomSource(params cryptolab.Params) (io.Reader, error) {
	if params.Seed == "" {
		return utils.RandReader, nil
	}
	seed, err := utils.ParseSeed(params.Seed)
	if err != nil {
		return nil, err
	}
	return utils.NewSeededReader(seed), nil
}

// NewLogger builds the logger described by params.Log. Logs go to stderr so
// they never mix with command output.
func NewLogger(params cryptolab.Params) (log.Logger, error) {
	level, err := log.ParseLevel(params.Log.Level)
	if err != nil {
		return nil, err
	}
	return log.New(zapcore.Lock(os.Stderr), level, params.Log.JSON), nil
}
