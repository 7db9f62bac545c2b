package usecase

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/Kadoinkus/chatbot-platform/config"
	"github.com/Kadoinkus/chatbot-platform/domains/analytics"
)

func testPricing() config.Pricing {
	return config.Pricing{
		ChatTokenRate:     decimal.RequireFromString("0.0000025"),
		AnalysisTokenRate: decimal.RequireFromString("0.00001"),
	}
}

func bundleFromRaw(t *testing.T, sessions []analytics.RawSession) *analytics.AssistantWithMetrics {
	t.Helper()
	target := testAssistants()[0]
	normalized, _ := NormalizeAssistantSessions(target, sessions)
	return BuildAssistantMetrics(target, normalized, testPricing())
}

func TestResolutionBreakdownScenario(t *testing.T) {
	sessions := []analytics.RawSession{
		rawSession("mila", analyzed("", analytics.ResolutionResolved)),
		rawSession("mila", analyzed("", analytics.ResolutionResolved)),
		rawSession("mila", analyzed("", analytics.ResolutionPartial)),
		rawSession("mila", analyzed("", analytics.ResolutionUnresolved)),
		rawSession("mila", analyzed("", analytics.ResolutionUnresolved)),
		rawSession("mila", analyzed("", analytics.ResolutionUnresolved)),
	}

	got := ResolutionBreakdown(bundleFromRaw(t, sessions))
	want := analytics.ResolutionBreakdown{Resolved: 2, Partial: 1, Unresolved: 3, Escalated: 0}
	if got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}

func TestResolutionBreakdownEscalationOrthogonal(t *testing.T) {
	sessions := []analytics.RawSession{
		rawSession("mila", func(s *analytics.RawSession) {
			s.Analysis = &analytics.Analysis{ResolutionStatus: analytics.ResolutionResolved, Escalated: true}
		}),
	}

	got := ResolutionBreakdown(bundleFromRaw(t, sessions))
	if got.Resolved != 1 || got.Escalated != 1 {
		t.Errorf("a session can be both resolved and escalated, got %+v", got)
	}
}

func TestCostBreakdownScenario(t *testing.T) {
	// 5,000,000 chat tokens at 0.0000025 = 12.50; 250,000 analysis tokens at 0.00001 = 2.50
	sessions := make([]analytics.RawSession, 5)
	for i := range sessions {
		sessions[i] = rawSession("mila", func(s *analytics.RawSession) {
			s.Analysis = &analytics.Analysis{ChatTokens: 1_000_000, AnalysisTokens: 50_000}
		})
	}

	got := CostBreakdown(bundleFromRaw(t, sessions), testPricing())

	if got.ChatCost != 12.50 {
		t.Errorf("expected chat cost 12.50, got %v", got.ChatCost)
	}
	if got.AnalysisCost != 2.50 {
		t.Errorf("expected analysis cost 2.50, got %v", got.AnalysisCost)
	}
	if got.TotalCost != 15.00 {
		t.Errorf("expected total cost 15.00, got %v", got.TotalCost)
	}
	if got.CostPerSession != 3.00 {
		t.Errorf("expected cost per session 3.00, got %v", got.CostPerSession)
	}
}

func TestZeroDenominatorSafety(t *testing.T) {
	empty := bundleFromRaw(t, nil)

	checks := map[string]float64{
		"resolutionRate": empty.Overview.ResolutionRate,
		"escalationRate": empty.Overview.EscalationRate,
		"avgDuration":    empty.Overview.AvgDurationSec,
		"returnRate":     ReturnRate(empty).ReturnRate,
		"costPerSession": CostBreakdown(empty, testPricing()).CostPerSession,
		"easterEggRate":  EasterEggRate(empty),
	}
	for name, v := range checks {
		if v != 0 {
			t.Errorf("%s: expected exactly 0 on empty bundle, got %v", name, v)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Errorf("%s: produced NaN/Inf", name)
		}
	}
}

func TestReturnRate(t *testing.T) {
	sessions := []analytics.RawSession{
		rawSession("mila", func(s *analytics.RawSession) { s.UserID = "u1"; s.Returning = true }),
		rawSession("mila", func(s *analytics.RawSession) { s.UserID = "u2" }),
		rawSession("mila", func(s *analytics.RawSession) { s.UserID = "u3" }),
		rawSession("mila", func(s *analytics.RawSession) { s.UserID = "u4" }),
	}

	got := ReturnRate(bundleFromRaw(t, sessions))
	if got.ReturningUsers != 1 || got.NewUsers != 3 {
		t.Fatalf("expected 1 returning / 3 new, got %+v", got)
	}
	if got.ReturnRate != 25 {
		t.Errorf("expected return rate 25, got %v", got.ReturnRate)
	}
}

func TestHandoffCountsMutuallyExclusive(t *testing.T) {
	outcome := func(o string) func(*analytics.RawSession) {
		return func(s *analytics.RawSession) {
			s.Analysis = &analytics.Analysis{SessionOutcome: o}
		}
	}
	sessions := []analytics.RawSession{
		rawSession("mila", outcome(analytics.OutcomeURLHandoff)),
		rawSession("mila", outcome(analytics.OutcomeURLHandoff)),
		rawSession("mila", outcome(analytics.OutcomeEmailHandoff)),
		rawSession("mila", outcome(analytics.OutcomeSelfService)), // neither
		rawSession("mila", nil),                                   // unanalyzed: neither
	}

	got := HandoffCounts(bundleFromRaw(t, sessions))
	want := analytics.HandoffCounts{URLHandoffs: 2, EmailHandoffs: 1}
	if got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}

func TestTopBreakdownRankAndSentinel(t *testing.T) {
	sessions := []analytics.RawSession{
		rawSession("mila", func(s *analytics.RawSession) { s.Country = "NL"; s.Browser = "Chrome" }),
		rawSession("mila", func(s *analytics.RawSession) { s.Country = "NL"; s.Browser = "Safari" }),
		rawSession("mila", func(s *analytics.RawSession) { s.Country = "DE"; s.Browser = "Chrome" }),
	}
	bundle := bundleFromRaw(t, sessions)

	if top := TopCountry(bundle); top != "NL" {
		t.Errorf("expected top country NL, got %q", top)
	}
	if top := TopBrowser(bundle); top != "Chrome" {
		t.Errorf("expected top browser Chrome, got %q", top)
	}
	// No language data at all: sentinel, never a panic
	if top := TopLanguage(bundle); top != "-" {
		t.Errorf("expected sentinel '-' for empty breakdown, got %q", top)
	}
}

func TestBreakdownsSortedDescendingAtConstruction(t *testing.T) {
	sessions := []analytics.RawSession{
		rawSession("mila", func(s *analytics.RawSession) { s.Device = "mobile" }),
		rawSession("mila", func(s *analytics.RawSession) { s.Device = "desktop" }),
		rawSession("mila", func(s *analytics.RawSession) { s.Device = "mobile" }),
		rawSession("mila", func(s *analytics.RawSession) { s.Device = "tablet" }),
	}
	bundle := bundleFromRaw(t, sessions)

	for i := 1; i < len(bundle.Devices); i++ {
		if bundle.Devices[i].Count > bundle.Devices[i-1].Count {
			t.Fatalf("devices breakdown not sorted descending: %+v", bundle.Devices)
		}
	}
	if bundle.Devices[0].Label != "mobile" {
		t.Errorf("expected mobile ranked top, got %+v", bundle.Devices[0])
	}
	if bundle.Devices[0].Percentage != 50 {
		t.Errorf("expected top share 50%%, got %v", bundle.Devices[0].Percentage)
	}
}

func TestEasterEggRate(t *testing.T) {
	sessions := []analytics.RawSession{
		rawSession("mila", func(s *analytics.RawSession) { s.Animations = 3; s.EasterEggs = 1 }),
		rawSession("mila", func(s *analytics.RawSession) { s.Animations = 2 }),
		rawSession("mila", func(s *analytics.RawSession) { s.Animations = 1 }),
		rawSession("mila", nil), // no animations: not in the denominator
	}

	bundle := bundleFromRaw(t, sessions)
	if got := EasterEggRate(bundle); math.Abs(got-100.0/3) > 1e-9 {
		t.Errorf("expected rate 33.33..., got %v", got)
	}
}

func TestBuildAssistantMetricsSentimentPercentages(t *testing.T) {
	sessions := []analytics.RawSession{
		rawSession("mila", analyzed(analytics.SentimentPositive, "")),
		rawSession("mila", analyzed(analytics.SentimentPositive, "")),
		rawSession("mila", analyzed(analytics.SentimentNegative, "")),
		rawSession("mila", nil), // unanalyzed excluded from the mix
	}
	bundle := bundleFromRaw(t, sessions)

	if bundle.Sentiment.PositiveCount != 2 || bundle.Sentiment.NegativeCount != 1 {
		t.Fatalf("unexpected sentiment counts: %+v", bundle.Sentiment)
	}
	if math.Abs(bundle.Sentiment.PositivePct-200.0/3) > 1e-9 {
		t.Errorf("expected positive pct 66.66..., got %v", bundle.Sentiment.PositivePct)
	}
}
