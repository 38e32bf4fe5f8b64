package generator

import (
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
)

// Rand is the random source used for every sampled field. *gofakeit.Faker
// satisfies it; tests pass a seeded one.
type Rand interface {
	Float64() float64
	IntRange(min, max int) int
	Float64Range(min, max float64) float64
	RandomString(a []string) string
	Numerify(str string) string
}

// NewRand returns a faker-backed Rand. A zero seed picks one from the clock.
func NewRand(seed uint64) Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return gofakeit.New(seed)
}

// chance reports true with probability p.
func chance(r Rand, p float64) bool {
	return r.Float64() < p
}

// round2 rounds to two decimal places, half away from zero.
func round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
