package data

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/contactkeval/option-greeks/internal/logger"
)

// ChainRow is one option of a market chain snapshot: the known market
// price of a contract at a given strike and expiry.
type ChainRow struct {
	Kind   string  // "call" or "put"
	Strike float64 // strike price
	Expiry float64 // time to expiry in years
	Price  float64 // market price (NPV)
}

// ReadChainCSV loads an option chain from a CSV file with the header
// kind,strike,expiry,price. Expiry is a year fraction. Blank lines are
// skipped; any malformed row aborts the load.
func ReadChainCSV(path string) ([]ChainRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open chain file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read chain header: %w", err)
	}
	if len(header) != 4 || header[0] != "kind" || header[1] != "strike" || header[2] != "expiry" || header[3] != "price" {
		return nil, fmt.Errorf("chain header must be kind,strike,expiry,price, got %v", header)
	}

	var out []ChainRow
	for line := 2; ; line++ {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		row := ChainRow{Kind: rec[0]}
		if row.Strike, err = strconv.ParseFloat(rec[1], 64); err != nil {
			return nil, fmt.Errorf("line %d: strike %q: %w", line, rec[1], err)
		}
		if row.Expiry, err = strconv.ParseFloat(rec[2], 64); err != nil {
			return nil, fmt.Errorf("line %d: expiry %q: %w", line, rec[2], err)
		}
		if row.Price, err = strconv.ParseFloat(rec[3], 64); err != nil {
			return nil, fmt.Errorf("line %d: price %q: %w", line, rec[3], err)
		}
		out = append(out, row)
	}

	logger.Debugf("loaded %d chain rows from %s", len(out), path)
	return out, nil
}
