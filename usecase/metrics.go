package usecase

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Kadoinkus/chatbot-platform/config"
	"github.com/Kadoinkus/chatbot-platform/domains/analytics"
)

// BuildAssistantMetrics shapes one assistant's normalized sessions into the
// bundle the formula library and aggregator consume. Breakdown slices are
// sorted descending by count here and nowhere else; consumers treat index 0
// as "top" without re-sorting.
func BuildAssistantMetrics(assistant analytics.AssistantRef, sessions []analytics.NormalizedSession, pricing config.Pricing) *analytics.AssistantWithMetrics {
	bundle := &analytics.AssistantWithMetrics{
		Assistant: assistant,
		Sessions:  sessions,
	}

	total := len(sessions)
	bundle.Overview.TotalSessions = total

	today := time.Now().Format("2006-01-02")
	countries := map[string]int{}
	languages := map[string]int{}
	devices := map[string]int{}
	browsers := map[string]int{}
	daily := map[string]*analytics.DailyMetric{}

	var totalDuration float64
	var resolved, escalated int
	for _, s := range sessions {
		bundle.Overview.TotalMessages += s.MessageCount
		totalDuration += s.DurationSec

		if s.Country != "" {
			countries[s.Country]++
		}
		if s.Language != "" {
			languages[s.Language]++
		}
		if s.Device != "" {
			devices[s.Device]++
		}
		if s.Browser != "" {
			browsers[s.Browser]++
		}
		if s.Animations > 0 {
			bundle.Animations.TotalSessions++
			if s.EasterEggs > 0 {
				bundle.Animations.WithEasterEggs++
			}
		}
		bundle.Questions = append(bundle.Questions, s.Questions...)
		bundle.Unanswered = append(bundle.Unanswered, s.Unanswered...)

		date := s.StartedAt.Format("2006-01-02")
		day := daily[date]
		if day == nil {
			day = &analytics.DailyMetric{Date: date}
			daily[date] = day
		}
		day.Sessions++
		day.Messages += s.MessageCount

		if s.Analysis == nil {
			continue
		}
		bundle.Overview.ChatTokens += s.Analysis.ChatTokens
		bundle.Overview.AnalysisTokens += s.Analysis.AnalysisTokens
		day.Tokens += s.Analysis.ChatTokens + s.Analysis.AnalysisTokens
		day.Cost += tokenCost(s.Analysis.ChatTokens, pricing.ChatTokenRate) +
			tokenCost(s.Analysis.AnalysisTokens, pricing.AnalysisTokenRate)

		if s.Analysis.ResolutionStatus == analytics.ResolutionResolved {
			resolved++
			if date == today {
				bundle.Overview.ResolvedToday++
			}
		}
		if s.Analysis.Escalated {
			escalated++
			if date == today {
				bundle.Overview.EscalatedToday++
			}
		}
		switch s.Analysis.Sentiment {
		case analytics.SentimentPositive:
			bundle.Sentiment.PositiveCount++
		case analytics.SentimentNeutral:
			bundle.Sentiment.NeutralCount++
		case analytics.SentimentNegative:
			bundle.Sentiment.NegativeCount++
		}
	}

	if total > 0 {
		bundle.Overview.AvgDurationSec = totalDuration / float64(total)
		bundle.Overview.ResolutionRate = float64(resolved) / float64(total) * 100
		bundle.Overview.EscalationRate = float64(escalated) / float64(total) * 100
	}

	analyzed := bundle.Sentiment.PositiveCount + bundle.Sentiment.NeutralCount + bundle.Sentiment.NegativeCount
	if analyzed > 0 {
		bundle.Sentiment.PositivePct = float64(bundle.Sentiment.PositiveCount) / float64(analyzed) * 100
		bundle.Sentiment.NeutralPct = float64(bundle.Sentiment.NeutralCount) / float64(analyzed) * 100
		bundle.Sentiment.NegativePct = float64(bundle.Sentiment.NegativeCount) / float64(analyzed) * 100
	}

	bundle.Countries = rankedBreakdown(countries, total)
	bundle.Languages = rankedBreakdown(languages, total)
	bundle.Devices = rankedBreakdown(devices, total)
	bundle.Browsers = rankedBreakdown(browsers, total)

	for _, day := range daily {
		bundle.Daily = append(bundle.Daily, *day)
	}
	sort.Slice(bundle.Daily, func(i, j int) bool { return bundle.Daily[i].Date < bundle.Daily[j].Date })

	return bundle
}

// rankedBreakdown converts a tally into a breakdown sorted descending by
// count, ties broken by label so the ranking is deterministic.
func rankedBreakdown(tally map[string]int, total int) []analytics.BreakdownEntry {
	entries := make([]analytics.BreakdownEntry, 0, len(tally))
	for label, count := range tally {
		entry := analytics.BreakdownEntry{Label: label, Count: count}
		if total > 0 {
			entry.Percentage = float64(count) / float64(total) * 100
		}
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Label < entries[j].Label
	})
	return entries
}

func tokenCost(tokens int, rate decimal.Decimal) float64 {
	cost, _ := decimal.NewFromInt(int64(tokens)).Mul(rate).Float64()
	return cost
}

// ResolutionBreakdown buckets sessions by resolution status. Sessions without
// analysis fall into no bucket; escalation is counted orthogonally.
func ResolutionBreakdown(a *analytics.AssistantWithMetrics) analytics.ResolutionBreakdown {
	var out analytics.ResolutionBreakdown
	for _, s := range a.Sessions {
		if s.Analysis == nil {
			continue
		}
		switch s.Analysis.ResolutionStatus {
		case analytics.ResolutionResolved:
			out.Resolved++
		case analytics.ResolutionPartial:
			out.Partial++
		case analytics.ResolutionUnresolved:
			out.Unresolved++
		}
		if s.Analysis.Escalated {
			out.Escalated++
		}
	}
	return out
}

// ReturnRate splits the assistant's audience into new and returning users. A
// user is returning when any of their sessions is flagged returning. The rate
// is 0 when the assistant has no users at all.
func ReturnRate(a *analytics.AssistantWithMetrics) analytics.ReturnRateBreakdown {
	returning := map[string]bool{}
	for _, s := range a.Sessions {
		if s.UserID == "" {
			continue
		}
		if s.Returning {
			returning[s.UserID] = true
		} else if _, seen := returning[s.UserID]; !seen {
			returning[s.UserID] = false
		}
	}

	var out analytics.ReturnRateBreakdown
	for _, isReturning := range returning {
		if isReturning {
			out.ReturningUsers++
		} else {
			out.NewUsers++
		}
	}
	if total := out.NewUsers + out.ReturningUsers; total > 0 {
		out.ReturnRate = float64(out.ReturningUsers) / float64(total) * 100
	}
	return out
}

// CostBreakdown derives the assistant's spend from token counts and the
// configured per-token rates.
func CostBreakdown(a *analytics.AssistantWithMetrics, pricing config.Pricing) analytics.CostBreakdown {
	out := analytics.CostBreakdown{
		ChatCost:     tokenCost(a.Overview.ChatTokens, pricing.ChatTokenRate),
		AnalysisCost: tokenCost(a.Overview.AnalysisTokens, pricing.AnalysisTokenRate),
	}
	out.TotalCost = out.ChatCost + out.AnalysisCost
	if a.Overview.TotalSessions > 0 {
		out.CostPerSession = out.TotalCost / float64(a.Overview.TotalSessions)
	}
	return out
}

// HandoffCounts tallies sessions whose outcome handed the visitor off to a
// URL or an email flow. Other outcomes count toward neither.
func HandoffCounts(a *analytics.AssistantWithMetrics) analytics.HandoffCounts {
	var out analytics.HandoffCounts
	for _, s := range a.Sessions {
		if s.Analysis == nil {
			continue
		}
		switch s.Analysis.SessionOutcome {
		case analytics.OutcomeURLHandoff:
			out.URLHandoffs++
		case analytics.OutcomeEmailHandoff:
			out.EmailHandoffs++
		}
	}
	return out
}

// breakdownTop returns the label of the highest-ranked entry, or "-" when the
// breakdown is empty. Breakdowns are sorted at construction; index 0 is top.
func breakdownTop(entries []analytics.BreakdownEntry) string {
	if len(entries) == 0 {
		return "-"
	}
	return entries[0].Label
}

// TopCountry returns the assistant's most common visitor country.
func TopCountry(a *analytics.AssistantWithMetrics) string { return breakdownTop(a.Countries) }

// TopLanguage returns the assistant's most common visitor language.
func TopLanguage(a *analytics.AssistantWithMetrics) string { return breakdownTop(a.Languages) }

// TopDevice returns the assistant's most common visitor device type.
func TopDevice(a *analytics.AssistantWithMetrics) string { return breakdownTop(a.Devices) }

// TopBrowser returns the assistant's most common visitor browser.
func TopBrowser(a *analytics.AssistantWithMetrics) string { return breakdownTop(a.Browsers) }

// EasterEggRate is the share of animation sessions that triggered at least
// one easter egg, 0 when no session played animations.
func EasterEggRate(a *analytics.AssistantWithMetrics) float64 {
	if a.Animations.TotalSessions == 0 {
		return 0
	}
	return float64(a.Animations.WithEasterEggs) / float64(a.Animations.TotalSessions) * 100
}
