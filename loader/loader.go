package loader

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"go-attackboard/types"

	"go.uber.org/zap"
)

// Stats counts cells that were substituted while parsing.
type Stats struct {
	Rows               int `json:"rows"`
	MissingCasualties  int `json:"missingCasualties"`
	InvalidCasualties  int `json:"invalidCasualties"` // unparseable or negative, treated as missing
	MissingCoordinates int `json:"missingCoordinates"`
}

// LoadCSV reads records from a local path or an http(s) URL.
func LoadCSV(ctx context.Context, source string, timeout time.Duration, logger *zap.Logger) ([]types.AttackRecord, Stats, error) {
	body, err := open(ctx, source, timeout)
	if err != nil {
		return nil, Stats{}, err
	}
	defer body.Close()

	records, stats, err := ParseCSV(body)
	if err != nil {
		return nil, stats, fmt.Errorf("parsing %s: %w", source, err)
	}

	logger.Info("Loaded attack records",
		zap.String("source", source),
		zap.Int("rows", stats.Rows),
		zap.Int("missingCasualties", stats.MissingCasualties),
		zap.Int("invalidCasualties", stats.InvalidCasualties),
		zap.Int("missingCoordinates", stats.MissingCoordinates))
	return records, stats, nil
}

func isRemote(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

func open(ctx context.Context, source string, timeout time.Duration) (io.ReadCloser, error) {
	if !isRemote(source) {
		f, err := os.Open(source)
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", source, err)
		}
		return f, nil
	}

	client := &http.Client{Timeout: timeout}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", source, err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", source, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, errors.New("fetching " + source + ": unexpected status " + resp.Status)
	}
	return resp.Body, nil
}

// ParseCSV decodes a headered CSV. Columns are matched by header name; unknown
// columns are ignored and absent ones leave their fields empty. A body with no
// header at all is an empty dataset, not an error.
func ParseCSV(r io.Reader) ([]types.AttackRecord, Stats, error) {
	var stats Stats
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return []types.AttackRecord{}, stats, nil
	}
	if err != nil {
		return nil, stats, fmt.Errorf("reading header: %w", err)
	}

	index := make(map[types.Column]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		index[types.Column(name)] = i
	}

	records := []types.AttackRecord{}
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, stats, fmt.Errorf("reading row %d: %w", stats.Rows+2, err)
		}
		stats.Rows++

		cell := func(col types.Column) string {
			i, ok := index[col]
			if !ok || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}

		rec := types.AttackRecord{
			EventID:       cell(types.ColumnEventID),
			Date:          cell(types.ColumnDate),
			City:          cell(types.ColumnCity),
			Country:       cell(types.ColumnCountry),
			TargetType:    cell(types.ColumnTargetType),
			TargetSubtype: cell(types.ColumnTargetSubtype),
			WeaponType:    cell(types.ColumnWeaponType),
			WeaponSubtype: cell(types.ColumnWeaponSubtype),
			Citation:      cell(types.ColumnCitation),
		}

		switch n, status := parseCount(cell(types.ColumnCasualties)); status {
		case cellOK:
			rec.Casualties = &n
		case cellEmpty:
			stats.MissingCasualties++
		case cellInvalid:
			stats.InvalidCasualties++
		}

		lat, latStatus := parseFloat(cell(types.ColumnLatitude))
		long, longStatus := parseFloat(cell(types.ColumnLongitude))
		if latStatus == cellOK && longStatus == cellOK {
			rec.Latitude, rec.Longitude = &lat, &long
		} else {
			stats.MissingCoordinates++
		}

		records = append(records, rec)
	}
	return records, stats, nil
}

type cellStatus int

const (
	cellOK cellStatus = iota
	cellEmpty
	cellInvalid
)

func isNull(s string) bool {
	switch strings.ToLower(s) {
	case "", "nan", "null", "none", "na":
		return true
	}
	return false
}

// parseCount accepts whole or float-formatted counts ("3", "3.0"); fractions round.
func parseCount(s string) (int, cellStatus) {
	if isNull(s) {
		return 0, cellEmpty
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0, cellInvalid
	}
	return int(math.Round(f)), cellOK
}

func parseFloat(s string) (float64, cellStatus) {
	if isNull(s) {
		return 0, cellEmpty
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, cellInvalid
	}
	return f, cellOK
}
