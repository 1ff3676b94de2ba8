package forces

import (
	"errors"
	"math"
	"testing"
)

func aggsWith(entries map[ForceKind]AggregatedForce) Aggregates {
	aggs := make(Aggregates, len(Kinds))
	for _, kind := range Kinds {
		if agg, ok := entries[kind]; ok {
			agg.Force = kind
			aggs[kind] = agg
		} else {
			aggs[kind] = AggregatedForce{Force: kind, TopThemes: []string{}}
		}
	}
	return aggs
}

func TestClassifyInvalidThresholds(t *testing.T) {
	for _, pair := range [][2]float64{{3, 7}, {5, 5}} {
		_, err := Classify(aggsWith(nil), pair[0], pair[1])
		if !errors.Is(err, ErrInvalidThresholds) {
			t.Errorf("Classify(high=%v, low=%v) err = %v, want ErrInvalidThresholds", pair[0], pair[1], err)
		}
	}
}

func TestClassifyDominantAndWeak(t *testing.T) {
	aggs := aggsWith(map[ForceKind]AggregatedForce{
		PainOfOld:    {Count: 3, AverageStrength: 8},
		PullOfNew:    {Count: 2, AverageStrength: 9},
		AnchorsToOld: {Count: 2, AverageStrength: 2},
		AnxietyOfNew: {Count: 1, AverageStrength: 5},
		// demographic has count 0 and must stay unlabeled
	})

	cls, err := Classify(aggs, 7, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Dominant sorted by descending strength
	if len(cls.DominantForces) != 2 || cls.DominantForces[0] != PullOfNew || cls.DominantForces[1] != PainOfOld {
		t.Errorf("dominant = %v, want [pull_of_new pain_of_old]", cls.DominantForces)
	}
	if len(cls.WeakForces) != 1 || cls.WeakForces[0] != AnchorsToOld {
		t.Errorf("weak = %v, want [anchors_to_old]", cls.WeakForces)
	}

	// No overlap, ever
	for _, d := range cls.DominantForces {
		for _, w := range cls.WeakForces {
			if d == w {
				t.Errorf("force %s is both dominant and weak", d)
			}
		}
	}
}

func TestClassifyZeroCountForceUnlabeled(t *testing.T) {
	// Single response: pull_of_new at strength 8 on the 0-10 scale.
	// The absent forces average 0 but must not show up as weak.
	aggs := Aggregate([]ForceScore{{PrimaryForce: PullOfNew, Strength: 8}}, 5)

	cls, err := Classify(aggs, 7, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cls.DominantForces) != 1 || cls.DominantForces[0] != PullOfNew {
		t.Errorf("dominant = %v, want [pull_of_new]", cls.DominantForces)
	}
	if len(cls.WeakForces) != 0 {
		t.Errorf("weak = %v, want empty", cls.WeakForces)
	}
}

func TestBalanceClampsHold(t *testing.T) {
	tests := []struct {
		name string
		aggs Aggregates
	}{
		{"all zero", aggsWith(nil)},
		{"extreme push", aggsWith(map[ForceKind]AggregatedForce{
			PainOfOld: {Count: 1, AverageStrength: 10},
			PullOfNew: {Count: 1, AverageStrength: 10},
		})},
		{"extreme pull", aggsWith(map[ForceKind]AggregatedForce{
			AnchorsToOld: {Count: 1, AverageStrength: 10},
			AnxietyOfNew: {Count: 1, AverageStrength: 10},
		})},
		{"out of range input", aggsWith(map[ForceKind]AggregatedForce{
			PainOfOld:    {Count: 1, AverageStrength: 500},
			AnchorsToOld: {Count: 1, AverageStrength: -500},
		})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cls, err := Classify(tt.aggs, 7, 3)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			b := cls.Balance
			if b.PushForces < 0 || b.PushForces > 10 {
				t.Errorf("pushForces = %v outside [0,10]", b.PushForces)
			}
			if b.PullForces < 0 || b.PullForces > 10 {
				t.Errorf("pullForces = %v outside [0,10]", b.PullForces)
			}
			if b.NetForce < -10 || b.NetForce > 10 {
				t.Errorf("netForce = %v outside [-10,10]", b.NetForce)
			}
			if cls.ReadinessScore < 0 || cls.ReadinessScore > 100 {
				t.Errorf("readiness = %d outside [0,100]", cls.ReadinessScore)
			}
		})
	}
}

func TestReadinessFormulaExact(t *testing.T) {
	aggs := aggsWith(map[ForceKind]AggregatedForce{
		PainOfOld: {Count: 1, AverageStrength: 7},
		PullOfNew: {Count: 1, AverageStrength: 6},
	})

	cls, err := Classify(aggs, 7, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := int(math.Round(((cls.Balance.NetForce + 10) / 20) * 100))
	if cls.ReadinessScore != want {
		t.Errorf("readiness = %d, want %d from net %v", cls.ReadinessScore, want, cls.Balance.NetForce)
	}
	// push = 7/2 + 6/2 = 6.5, net 6.5 -> round(82.5) = 83
	if cls.ReadinessScore != 83 {
		t.Errorf("readiness = %d, want 83", cls.ReadinessScore)
	}
}
