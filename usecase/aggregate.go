package usecase

import (
	"github.com/Kadoinkus/chatbot-platform/config"
	"github.com/Kadoinkus/chatbot-platform/domains/analytics"
)

// Aggregate folds a set of assistant bundles into one rollup. Counters are
// exact sums, so the result is associative under any partition of the set.
// Every rate is weighted by the assistant's own session count; an assistant
// with zero sessions contributes zero weight to rates while its counters
// still participate in the sums.
func Aggregate(bundles []*analytics.AssistantWithMetrics, pricing config.Pricing) analytics.AggregatedMetrics {
	agg := analytics.AggregatedMetrics{TotalAssistants: len(bundles)}

	var weight float64
	var resolutionSum, escalationSum, durationSum float64
	var positiveSum, neutralSum, negativeSum float64

	for _, b := range bundles {
		agg.TotalSessions += b.Overview.TotalSessions
		agg.TotalMessages += b.Overview.TotalMessages
		agg.TotalChatTokens += b.Overview.ChatTokens
		agg.TotalAnalysisTokens += b.Overview.AnalysisTokens
		agg.ResolvedToday += b.Overview.ResolvedToday
		agg.EscalatedToday += b.Overview.EscalatedToday

		cost := CostBreakdown(b, pricing)
		agg.TotalCost += cost.TotalCost

		w := float64(b.Overview.TotalSessions)
		weight += w
		resolutionSum += b.Overview.ResolutionRate * w
		escalationSum += b.Overview.EscalationRate * w
		durationSum += b.Overview.AvgDurationSec * w
		positiveSum += b.Sentiment.PositivePct * w
		neutralSum += b.Sentiment.NeutralPct * w
		negativeSum += b.Sentiment.NegativePct * w
	}

	if weight > 0 {
		agg.AvgResolutionRate = resolutionSum / weight
		agg.AvgEscalationRate = escalationSum / weight
		agg.AvgDurationSec = durationSum / weight
		agg.Sentiment = normalizeSentiment(positiveSum/weight, neutralSum/weight, negativeSum/weight)
	}
	if agg.TotalSessions > 0 {
		agg.CostPerSession = agg.TotalCost / float64(agg.TotalSessions)
	}

	return agg
}

// normalizeSentiment rescales the weighted shares so the three add up to 100.
// Assistants whose sessions are partially unanalyzed would otherwise leave the
// mix summing below 100.
func normalizeSentiment(positive, neutral, negative float64) analytics.SentimentPercentages {
	total := positive + neutral + negative
	if total == 0 {
		return analytics.SentimentPercentages{}
	}
	return analytics.SentimentPercentages{
		Positive: positive / total * 100,
		Neutral:  neutral / total * 100,
		Negative: negative / total * 100,
	}
}
