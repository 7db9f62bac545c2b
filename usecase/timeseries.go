package usecase

import (
	"sort"

	"github.com/Kadoinkus/chatbot-platform/domains/analytics"
)

// BuildTimeSeries aligns the independently-dated daily series of each bundle
// onto one shared date axis for comparison charts. The result holds the union
// of all dates sorted ascending, with one column per assistant display name
// and an explicit 0 wherever an assistant has no data for a date. Output is
// identical regardless of bundle order.
func BuildTimeSeries(bundles []*analytics.AssistantWithMetrics, metric string) []analytics.TimeSeriesPoint {
	dates := map[string]bool{}
	series := make(map[string]map[string]float64, len(bundles))
	var names []string

	for _, b := range bundles {
		name := b.Assistant.Name
		if _, ok := series[name]; !ok {
			series[name] = map[string]float64{}
			names = append(names, name)
		}
		for _, day := range b.Daily {
			dates[day.Date] = true
			series[name][day.Date] += dailyValue(day, metric)
		}
	}

	sorted := make([]string, 0, len(dates))
	for date := range dates {
		sorted = append(sorted, date)
	}
	sort.Strings(sorted)

	points := make([]analytics.TimeSeriesPoint, 0, len(sorted))
	for _, date := range sorted {
		point := analytics.TimeSeriesPoint{Date: date, Values: make(map[string]float64, len(names))}
		for _, name := range names {
			point.Values[name] = series[name][date] // missing dates read as 0
		}
		points = append(points, point)
	}
	return points
}

func dailyValue(day analytics.DailyMetric, metric string) float64 {
	switch metric {
	case analytics.SeriesMessages:
		return float64(day.Messages)
	case analytics.SeriesTokens:
		return float64(day.Tokens)
	case analytics.SeriesCost:
		return day.Cost
	default: // analytics.SeriesSessions
		return float64(day.Sessions)
	}
}
