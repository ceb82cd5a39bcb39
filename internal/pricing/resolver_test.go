package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func motorRules() []Rule {
	return []Rule{
		{ID: "r1", VehicleTypeID: "motor", DurationMin: 0, DurationMax: intPtr(60), Price: 2000, Status: RuleActive},
		{ID: "r2", VehicleTypeID: "motor", DurationMin: 61, DurationMax: nil, Price: 5000, Status: RuleActive},
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name      string
		duration  int
		wantRule  string
		wantPrice int64
	}{
		{"FirstBracket", 30, "r1", 2000},
		{"BracketUpperBoundInclusive", 60, "r1", 2000},
		{"OpenEndedLowerBound", 61, "r2", 5000},
		{"OpenEnded", 120, "r2", 5000},
		{"ZeroDuration", 0, "r1", 2000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			match, err := Resolve("motor", motorRules(), tt.duration)
			require.NoError(t, err)
			assert.Equal(t, tt.wantRule, match.RuleID)
			assert.Equal(t, tt.wantPrice, match.Price)
		})
	}
}

func TestResolveNegativeDuration(t *testing.T) {
	_, err := Resolve("motor", motorRules(), -1)
	assert.ErrorIs(t, err, ErrInvalidDuration)
}

func TestResolveNoRules(t *testing.T) {
	for _, duration := range []int{0, 1, 1000} {
		_, err := Resolve("mobil", nil, duration)

		var noTariff *NoTariffError
		require.ErrorAs(t, err, &noTariff)
		assert.Equal(t, "mobil", noTariff.VehicleTypeID)
		assert.Equal(t, duration, noTariff.DurationMinutes)
	}
}

func TestResolveGapInBrackets(t *testing.T) {
	rules := []Rule{
		{ID: "r1", DurationMin: 0, DurationMax: intPtr(60), Price: 2000, Status: RuleActive},
		{ID: "r2", DurationMin: 120, DurationMax: nil, Price: 5000, Status: RuleActive},
	}

	_, err := Resolve("motor", rules, 90)
	var noTariff *NoTariffError
	assert.ErrorAs(t, err, &noTariff)
}

func TestResolveSkipsInactiveAndDeleted(t *testing.T) {
	rules := []Rule{
		{ID: "r1", DurationMin: 0, DurationMax: intPtr(60), Price: 1000, Status: RuleInactive},
		{ID: "r2", DurationMin: 0, DurationMax: intPtr(60), Price: 1500, Status: RuleDeleted},
	}

	_, err := Resolve("motor", rules, 30)
	var noTariff *NoTariffError
	require.ErrorAs(t, err, &noTariff)

	// an active rule alongside them is still found
	rules = append(rules, Rule{ID: "r3", DurationMin: 0, DurationMax: intPtr(60), Price: 2000, Status: RuleActive})
	match, err := Resolve("motor", rules, 30)
	require.NoError(t, err)
	assert.Equal(t, "r3", match.RuleID)
}

func TestResolveOverlapTieBreak(t *testing.T) {
	t.Run("SmallestDurationMinWins", func(t *testing.T) {
		rules := []Rule{
			{ID: "wide", DurationMin: 0, DurationMax: intPtr(120), Price: 3000, Status: RuleActive},
			{ID: "late", DurationMin: 30, DurationMax: intPtr(120), Price: 4000, Status: RuleActive},
		}
		match, err := Resolve("motor", rules, 60)
		require.NoError(t, err)
		assert.Equal(t, "wide", match.RuleID)
	})

	t.Run("ThenSmallestDurationMaxWins", func(t *testing.T) {
		rules := []Rule{
			{ID: "open", DurationMin: 0, DurationMax: nil, Price: 5000, Status: RuleActive},
			{ID: "narrow", DurationMin: 0, DurationMax: intPtr(60), Price: 2000, Status: RuleActive},
			{ID: "wider", DurationMin: 0, DurationMax: intPtr(240), Price: 3000, Status: RuleActive},
		}
		match, err := Resolve("motor", rules, 45)
		require.NoError(t, err)
		assert.Equal(t, "narrow", match.RuleID)
	})

	t.Run("DeterministicRegardlessOfOrder", func(t *testing.T) {
		a := Rule{ID: "a", DurationMin: 0, DurationMax: intPtr(90), Price: 2500, Status: RuleActive}
		b := Rule{ID: "b", DurationMin: 0, DurationMax: intPtr(60), Price: 2000, Status: RuleActive}

		m1, err := Resolve("motor", []Rule{a, b}, 30)
		require.NoError(t, err)
		m2, err := Resolve("motor", []Rule{b, a}, 30)
		require.NoError(t, err)
		assert.Equal(t, m1, m2)
		assert.Equal(t, "b", m1.RuleID)
	})
}

func TestResolveCoveringRuleSetAlwaysMatches(t *testing.T) {
	// non-overlapping brackets covering [0, inf)
	rules := []Rule{
		{ID: "r1", DurationMin: 0, DurationMax: intPtr(60), Price: 2000, Status: RuleActive},
		{ID: "r2", DurationMin: 61, DurationMax: intPtr(180), Price: 4000, Status: RuleActive},
		{ID: "r3", DurationMin: 181, DurationMax: nil, Price: 10000, Status: RuleActive},
	}

	for d := 0; d <= 500; d++ {
		_, err := Resolve("motor", rules, d)
		require.NoError(t, err, "duration %d", d)
	}
}
