package series

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// LoadColumn reads one named column of a CSV file with a header row into a
// Series. Empty and unparsable cells become NaN so they can be backfilled.
func LoadColumn(path, column string) (Series, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header of %s: %w", path, err)
	}
	col := -1
	for i, name := range header {
		if strings.EqualFold(strings.TrimSpace(name), column) {
			col = i
			break
		}
	}
	if col < 0 {
		return nil, fmt.Errorf("column %q not found in %s", column, path)
	}

	var out Series
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		if col >= len(rec) {
			out = append(out, math.NaN())
			continue
		}
		v, perr := strconv.ParseFloat(strings.TrimSpace(rec[col]), 64)
		if perr != nil {
			out = append(out, math.NaN())
			continue
		}
		out = append(out, v)
	}
	return out, nil
}
