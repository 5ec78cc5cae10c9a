package report

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	greeks "github.com/contactkeval/option-greeks"
)

func solvedChain(t *testing.T) []greeks.Option {
	t.Helper()
	var out []greeks.Option
	for _, in := range []greeks.Option{
		{Kind: greeks.Call, Underlying: 48, Strike: 49, Expiry: 2.0 / 365.0, NPV: 0.55},
		{Kind: greeks.Put, Underlying: 100, Strike: 105, Expiry: 0.5, IV: 0.3},
	} {
		solved, err := greeks.Auto(in)
		require.NoError(t, err)
		out = append(out, solved)
	}
	return out
}

func TestWriteJSON(t *testing.T) {
	dir := t.TempDir()
	chain := solvedChain(t)
	require.NoError(t, WriteJSON(chain, dir))

	b, err := os.ReadFile(filepath.Join(dir, "greeks.json"))
	require.NoError(t, err)

	var back []greeks.Option
	require.NoError(t, json.Unmarshal(b, &back))
	require.Len(t, back, 2)
	assert.Equal(t, chain[0], back[0])
	assert.Equal(t, chain[1], back[1])
}

func TestWriteCSV(t *testing.T) {
	dir := t.TempDir()
	chain := solvedChain(t)
	require.NoError(t, WriteCSV(chain, dir))

	f, err := os.Open(filepath.Join(dir, "greeks.csv"))
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{"kind", "underlying", "strike", "expiry", "iv", "npv", "delta", "gamma", "theta", "vega"}, rows[0])
	assert.Equal(t, "call", rows[1][0])
	assert.Equal(t, "49.0000", rows[1][2])
	assert.Equal(t, "0.676", rows[1][4][:5])
	assert.Equal(t, "put", rows[2][0])
	assert.Equal(t, "0.300000", rows[2][4])
}

// Options that never went through a solve still serialize, with zeroed
// sensitivity columns.
func TestWriteCSVWithoutGreeks(t *testing.T) {
	dir := t.TempDir()
	raw := []greeks.Option{{Kind: greeks.Call, Underlying: 100, Strike: 100, Expiry: 1, NPV: 8}}
	require.NoError(t, WriteCSV(raw, dir))

	f, err := os.Open(filepath.Join(dir, "greeks.csv"))
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "0.000000", rows[1][6]) // delta
}

func TestWriteJSONBadDir(t *testing.T) {
	err := WriteJSON(solvedChain(t), filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}
