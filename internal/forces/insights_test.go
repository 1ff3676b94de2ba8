package forces

import (
	"strings"
	"testing"
)

func classifyOrFail(t *testing.T, aggs Aggregates) *Classification {
	t.Helper()
	cls, err := Classify(aggs, 7, 3)
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	return cls
}

func TestGenerateInsightOrdering(t *testing.T) {
	aggs := aggsWith(map[ForceKind]AggregatedForce{
		PainOfOld:    {Count: 2, AverageStrength: 8, TopThemes: []string{"manual work"}},
		PullOfNew:    {Count: 2, AverageStrength: 9, TopThemes: []string{"automation"}},
		AnchorsToOld: {Count: 2, AverageStrength: 1, TopThemes: []string{"legacy tools"}},
		AnxietyOfNew: {Count: 2, AverageStrength: 2, TopThemes: []string{"job security"}},
	})
	cls := classifyOrFail(t, aggs)

	insights, _ := Generate(aggs, cls)

	// Dominant first by descending strength, then weak by ascending
	wantOrder := []ForceKind{PullOfNew, PainOfOld, AnchorsToOld, AnxietyOfNew}
	if len(insights) != len(wantOrder) {
		t.Fatalf("insight count = %d, want %d", len(insights), len(wantOrder))
	}
	for i, want := range wantOrder {
		if insights[i].Force != want {
			t.Errorf("insight[%d].Force = %s, want %s", i, insights[i].Force, want)
		}
	}

	if insights[0].Kind != "dominant" || !strings.Contains(insights[0].Statement, "dominant") {
		t.Errorf("first insight not marked dominant: %+v", insights[0])
	}
	if insights[0].Evidence[0] != "automation" {
		t.Errorf("evidence = %v, want topThemes of the force", insights[0].Evidence)
	}
}

func TestRecommendationRules(t *testing.T) {
	tests := []struct {
		name         string
		aggs         Aggregates
		wantCategory string
	}{
		{
			"low pain of old strengthens push",
			aggsWith(map[ForceKind]AggregatedForce{PainOfOld: {Count: 1, AverageStrength: 3}}),
			"strengthen_push",
		},
		{
			"low pull of new strengthens push",
			aggsWith(map[ForceKind]AggregatedForce{PullOfNew: {Count: 1, AverageStrength: 5}}),
			"strengthen_push",
		},
		{
			"high anchors reduce pull",
			aggsWith(map[ForceKind]AggregatedForce{AnchorsToOld: {Count: 1, AverageStrength: 8}}),
			"reduce_pull",
		},
		{
			"high anxiety addressed",
			aggsWith(map[ForceKind]AggregatedForce{AnxietyOfNew: {Count: 1, AverageStrength: 7}}),
			"address_anxiety",
		},
		{
			"positive net force leverages momentum",
			aggsWith(map[ForceKind]AggregatedForce{
				PainOfOld: {Count: 1, AverageStrength: 9},
				PullOfNew: {Count: 1, AverageStrength: 9},
			}),
			"leverage_momentum",
		},
		{
			"negative net force flags blocking risk",
			aggsWith(map[ForceKind]AggregatedForce{
				AnchorsToOld: {Count: 1, AverageStrength: 9},
				AnxietyOfNew: {Count: 1, AverageStrength: 9},
			}),
			"blocking_risk",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cls := classifyOrFail(t, tt.aggs)
			_, recs := Generate(tt.aggs, cls)
			for _, rec := range recs {
				if rec.Category == tt.wantCategory {
					if rec.Action == "" || rec.Priority == "" || rec.Effort == "" || rec.Impact == "" {
						t.Errorf("recommendation %s has empty fields: %+v", rec.Category, rec)
					}
					return
				}
			}
			t.Errorf("no recommendation with category %s in %+v", tt.wantCategory, recs)
		})
	}
}

func TestBlockingRiskIsCritical(t *testing.T) {
	aggs := aggsWith(map[ForceKind]AggregatedForce{
		AnchorsToOld: {Count: 1, AverageStrength: 10},
	})
	cls := classifyOrFail(t, aggs)

	_, recs := Generate(aggs, cls)
	for _, rec := range recs {
		if rec.Category == "blocking_risk" {
			if rec.Priority != "critical" {
				t.Errorf("blocking_risk priority = %s, want critical", rec.Priority)
			}
			return
		}
	}
	t.Fatal("expected blocking_risk recommendation")
}

func TestNoRecommendationsForAbsentForces(t *testing.T) {
	// Forces with zero responses must not trigger their low-average rules
	aggs := aggsWith(map[ForceKind]AggregatedForce{
		Demographic: {Count: 3, AverageStrength: 5},
	})
	cls := classifyOrFail(t, aggs)

	_, recs := Generate(aggs, cls)
	if len(recs) != 0 {
		t.Errorf("recommendations = %+v, want none", recs)
	}
}
