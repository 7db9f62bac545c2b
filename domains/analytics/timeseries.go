package analytics

import (
	"encoding/json"
	"sort"
)

// Time-series metrics that BuildTimeSeries understands
const (
	SeriesSessions = "sessions"
	SeriesMessages = "messages"
	SeriesTokens   = "tokens"
	SeriesCost     = "cost"
)

// TimeSeriesPoint is one date-aligned row of a comparison chart: the date plus
// one numeric column per assistant display name. Assistants without data on
// the date carry an explicit 0 so every series shares one x-axis.
type TimeSeriesPoint struct {
	Date   string
	Values map[string]float64
}

// MarshalJSON flattens the point into {"date": ..., "<assistant>": n, ...},
// the row shape chart components consume directly.
func (p TimeSeriesPoint) MarshalJSON() ([]byte, error) {
	row := make(map[string]interface{}, len(p.Values)+1)
	row["date"] = p.Date
	for name, v := range p.Values {
		row[name] = v
	}
	return json.Marshal(row)
}

// UnmarshalJSON restores a flattened row.
func (p *TimeSeriesPoint) UnmarshalJSON(data []byte) error {
	var row map[string]interface{}
	if err := json.Unmarshal(data, &row); err != nil {
		return err
	}
	p.Values = make(map[string]float64)
	for k, v := range row {
		if k == "date" {
			if s, ok := v.(string); ok {
				p.Date = s
			}
			continue
		}
		if n, ok := v.(float64); ok {
			p.Values[k] = n
		}
	}
	return nil
}

// SeriesColumns returns the column names of a series in stable order.
func SeriesColumns(points []TimeSeriesPoint) []string {
	seen := make(map[string]bool)
	var cols []string
	for _, p := range points {
		for name := range p.Values {
			if !seen[name] {
				seen[name] = true
				cols = append(cols, name)
			}
		}
	}
	sort.Strings(cols)
	return cols
}
