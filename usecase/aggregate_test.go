package usecase

import (
	"math"
	"testing"

	"github.com/Kadoinkus/chatbot-platform/domains/analytics"
)

func bundleWithOverview(name string, overview analytics.MetricsOverview, sentiment analytics.SentimentBreakdown) *analytics.AssistantWithMetrics {
	return &analytics.AssistantWithMetrics{
		Assistant: analytics.AssistantRef{ID: "ast-" + name, Name: name, Slug: name},
		Overview:  overview,
		Sentiment: sentiment,
	}
}

func TestAggregateWeightedResolutionRate(t *testing.T) {
	bundles := []*analytics.AssistantWithMetrics{
		bundleWithOverview("a", analytics.MetricsOverview{TotalSessions: 10, ResolutionRate: 100}, analytics.SentimentBreakdown{}),
		bundleWithOverview("b", analytics.MetricsOverview{TotalSessions: 90, ResolutionRate: 0}, analytics.SentimentBreakdown{}),
	}

	agg := Aggregate(bundles, testPricing())

	// A naive unweighted average would report 50 here
	if agg.AvgResolutionRate != 10 {
		t.Errorf("expected session-weighted rate 10, got %v", agg.AvgResolutionRate)
	}
	if agg.TotalSessions != 100 {
		t.Errorf("expected 100 total sessions, got %d", agg.TotalSessions)
	}
}

func TestAggregateTotalsAssociativity(t *testing.T) {
	group1 := []*analytics.AssistantWithMetrics{
		bundleWithOverview("a", analytics.MetricsOverview{TotalSessions: 7, TotalMessages: 31}, analytics.SentimentBreakdown{}),
		bundleWithOverview("b", analytics.MetricsOverview{TotalSessions: 13, TotalMessages: 8}, analytics.SentimentBreakdown{}),
	}
	group2 := []*analytics.AssistantWithMetrics{
		bundleWithOverview("c", analytics.MetricsOverview{TotalSessions: 21, TotalMessages: 99}, analytics.SentimentBreakdown{}),
	}

	whole := Aggregate(append(append([]*analytics.AssistantWithMetrics{}, group1...), group2...), testPricing())
	part1 := Aggregate(group1, testPricing())
	part2 := Aggregate(group2, testPricing())

	if whole.TotalSessions != part1.TotalSessions+part2.TotalSessions {
		t.Errorf("session totals not associative: %d != %d + %d", whole.TotalSessions, part1.TotalSessions, part2.TotalSessions)
	}
	if whole.TotalMessages != part1.TotalMessages+part2.TotalMessages {
		t.Errorf("message totals not associative: %d != %d + %d", whole.TotalMessages, part1.TotalMessages, part2.TotalMessages)
	}
}

func TestAggregateSentimentEqualWeights(t *testing.T) {
	bundles := []*analytics.AssistantWithMetrics{
		bundleWithOverview("x",
			analytics.MetricsOverview{TotalSessions: 100},
			analytics.SentimentBreakdown{PositivePct: 80, NeutralPct: 20}),
		bundleWithOverview("y",
			analytics.MetricsOverview{TotalSessions: 100},
			analytics.SentimentBreakdown{PositivePct: 20, NeutralPct: 80}),
	}

	agg := Aggregate(bundles, testPricing())

	if math.Abs(agg.Sentiment.Positive-50) > 1e-9 {
		t.Errorf("expected positive 50 with equal weights, got %v", agg.Sentiment.Positive)
	}
	if math.Abs(agg.Sentiment.Neutral-50) > 1e-9 {
		t.Errorf("expected neutral 50 with equal weights, got %v", agg.Sentiment.Neutral)
	}
}

func TestAggregateSentimentSumsToHundred(t *testing.T) {
	bundles := []*analytics.AssistantWithMetrics{
		bundleWithOverview("x",
			analytics.MetricsOverview{TotalSessions: 40},
			analytics.SentimentBreakdown{PositivePct: 70, NeutralPct: 20, NegativePct: 10}),
		bundleWithOverview("y",
			analytics.MetricsOverview{TotalSessions: 160},
			analytics.SentimentBreakdown{PositivePct: 10, NeutralPct: 30, NegativePct: 60}),
	}

	agg := Aggregate(bundles, testPricing())
	sum := agg.Sentiment.Positive + agg.Sentiment.Neutral + agg.Sentiment.Negative
	if math.Abs(sum-100) > 1e-9 {
		t.Errorf("expected sentiment mix to sum to 100, got %v (%+v)", sum, agg.Sentiment)
	}
}

func TestAggregateZeroSessionAssistant(t *testing.T) {
	bundles := []*analytics.AssistantWithMetrics{
		bundleWithOverview("busy", analytics.MetricsOverview{TotalSessions: 50, ResolutionRate: 80, TotalMessages: 200}, analytics.SentimentBreakdown{}),
		// Zero sessions: excluded from rate weights, counters still summed
		bundleWithOverview("idle", analytics.MetricsOverview{TotalSessions: 0, ResolutionRate: 0, TotalMessages: 0}, analytics.SentimentBreakdown{}),
	}

	agg := Aggregate(bundles, testPricing())

	if agg.AvgResolutionRate != 80 {
		t.Errorf("idle assistant distorted the weighted rate: got %v", agg.AvgResolutionRate)
	}
	if agg.TotalAssistants != 2 {
		t.Errorf("idle assistant dropped from the set: got %d", agg.TotalAssistants)
	}
}

func TestAggregateEmptySet(t *testing.T) {
	agg := Aggregate(nil, testPricing())

	if agg.TotalSessions != 0 || agg.AvgResolutionRate != 0 || agg.CostPerSession != 0 {
		t.Errorf("expected zero-valued aggregate on empty set, got %+v", agg)
	}
	if math.IsNaN(agg.AvgResolutionRate) || math.IsNaN(agg.CostPerSession) {
		t.Error("empty aggregate produced NaN")
	}
}
