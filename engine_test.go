package greeks

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Regression fixture: short-dated near-the-money call quoted at 0.55.
// Both solve paths must reproduce these values.
func fixtureOption() Option {
	return Option{
		Kind:       Call,
		Underlying: 48,
		Strike:     49,
		Expiry:     2.0 / 365.0,
		NPV:        0.55,
	}
}

func TestRegressionFixture(t *testing.T) {
	for name, solve := range map[string]func(Option) (Option, error){
		"auto": Auto,
		"fast": Fast,
	} {
		got, err := solve(fixtureOption())
		require.NoError(t, err, name)
		require.NotNil(t, got.Greeks, name)

		assert.InDelta(t, 0.6766, got.IV, 1e-3, name)
		assert.InDelta(t, 0.55, got.NPV, 1e-3, name)
		assert.InDelta(t, 0.3495, got.Greeks.Delta, 1e-3, name)
		assert.InDelta(t, 0.1540, got.Greeks.Gamma, 1e-3, name)
		assert.InDelta(t, 0.01315, got.Greeks.Vega, 1e-3, name)
		assert.InDelta(t, -0.2224, got.Greeks.Theta, 1e-3, name)
	}
}

func TestAutoFastAgree(t *testing.T) {
	auto, err := Auto(fixtureOption())
	require.NoError(t, err)
	fast, err := Fast(fixtureOption())
	require.NoError(t, err)

	assert.InDelta(t, auto.IV, fast.IV, 1e-3)
	assert.InDelta(t, auto.NPV, fast.NPV, 1e-3)
	assert.InDelta(t, auto.Greeks.Delta, fast.Greeks.Delta, 1e-3)
	assert.InDelta(t, auto.Greeks.Gamma, fast.Greeks.Gamma, 1e-3)
	assert.InDelta(t, auto.Greeks.Theta, fast.Greeks.Theta, 1e-3)
	assert.InDelta(t, auto.Greeks.Vega, fast.Greeks.Vega, 1e-3)
}

// With IV supplied there is nothing to search for; both paths are the
// same single evaluator call.
func TestSolveWithKnownIV(t *testing.T) {
	opt := Option{Kind: Put, Underlying: 100, Strike: 105, Expiry: 0.5, IV: 0.3}

	auto, err := Auto(opt)
	require.NoError(t, err)
	fast, err := Fast(opt)
	require.NoError(t, err)

	assert.Equal(t, auto, fast)
	assert.Equal(t, 0.3, auto.IV)
	assert.Greater(t, auto.NPV, 0.0)
	require.NotNil(t, auto.Greeks)
	assert.Less(t, auto.Greeks.Delta, 0.0) // long put
	assert.Less(t, auto.Greeks.Theta, 0.0)
	assert.Greater(t, auto.Greeks.Vega, 0.0)
}

// Full cycle through the engine: derive a price from a volatility, then
// recover that volatility from the price.
func TestEngineRoundTrip(t *testing.T) {
	priced, err := Auto(Option{Kind: Call, Underlying: 100, Strike: 110, Expiry: 1, IV: 0.45})
	require.NoError(t, err)

	solved, err := Auto(Option{Kind: Call, Underlying: 100, Strike: 110, Expiry: 1, NPV: priced.NPV})
	require.NoError(t, err)
	assert.InDelta(t, 0.45, solved.IV, 1e-4)
	assert.InDelta(t, priced.NPV, solved.NPV, 1e-6)
}

// A deep ITM quote with no time value is infeasible for the fast
// approximation; Fast must transparently retry through the exact path
// and return exactly what Auto returns.
func TestFastFallsBackToExact(t *testing.T) {
	priced, err := Auto(Option{Kind: Call, Underlying: 100, Strike: 50, Expiry: 0.1, IV: 0.15})
	require.NoError(t, err)

	in := Option{Kind: Call, Underlying: 100, Strike: 50, Expiry: 0.1, NPV: priced.NPV}
	fast, err := Fast(in)
	require.NoError(t, err)
	auto, err := Auto(in)
	require.NoError(t, err)

	assert.Equal(t, auto, fast)
}

func TestInvalidInputs(t *testing.T) {
	cases := map[string]Option{
		"both iv and npv":     {Kind: Call, Underlying: 100, Strike: 100, Expiry: 1, IV: 0.2, NPV: 8},
		"neither iv nor npv":  {Kind: Call, Underlying: 100, Strike: 100, Expiry: 1},
		"zero strike":         {Kind: Call, Underlying: 100, Expiry: 1, IV: 0.2},
		"negative strike":     {Kind: Call, Underlying: 100, Strike: -5, Expiry: 1, IV: 0.2},
		"zero underlying":     {Kind: Call, Strike: 100, Expiry: 1, IV: 0.2},
		"zero expiry":         {Kind: Call, Underlying: 100, Strike: 100, IV: 0.2},
		"negative iv":         {Kind: Call, Underlying: 100, Strike: 100, Expiry: 1, IV: -0.2},
		"negative npv":        {Kind: Call, Underlying: 100, Strike: 100, Expiry: 1, NPV: -1},
		"unknown kind":        {Kind: "straddle", Underlying: 100, Strike: 100, Expiry: 1, IV: 0.2},
		"empty kind":          {Underlying: 100, Strike: 100, Expiry: 1, IV: 0.2},
	}

	for name, opt := range cases {
		for solveName, solve := range map[string]func(Option) (Option, error){
			"auto": Auto,
			"fast": Fast,
		} {
			got, err := solve(opt)
			assert.True(t, errors.Is(err, ErrInvalidInput), "%s/%s: got %v", name, solveName, err)
			assert.Equal(t, Option{}, got, "%s/%s: no partial result allowed", name, solveName)
		}
	}
}

// Config-driven solver limits reach the exact search: starving the
// iteration budget turns a solvable input into non-convergence, and
// restoring the defaults makes it solvable again.
func TestSetSolverLimits(t *testing.T) {
	defer SetSolverLimits(0, 0)

	SetSolverLimits(2, 0)
	_, err := Auto(fixtureOption())
	assert.True(t, errors.Is(err, ErrNonConvergence), "got %v", err)

	SetSolverLimits(0, 0)
	got, err := Auto(fixtureOption())
	require.NoError(t, err)
	assert.InDelta(t, 0.6766, got.IV, 1e-3)
}

// The engine holds no per-solve mutable state, so concurrent callers
// must all see the same answer.
func TestConcurrentSolves(t *testing.T) {
	want, err := Auto(fixtureOption())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := Auto(fixtureOption())
			assert.NoError(t, err)
			assert.Equal(t, want, got)
		}()
	}
	wg.Wait()
}

// The caller's record is passed by value and never mutated.
func TestCallerRecordUntouched(t *testing.T) {
	in := fixtureOption()
	_, err := Auto(in)
	require.NoError(t, err)

	assert.Equal(t, fixtureOption(), in)
	assert.Nil(t, in.Greeks)
}
