package forces

import (
	"math"
	"sort"
)

// ForceBalance is the push-vs-pull summary of a batch. Push sums the
// change-driving forces (pain of old, pull of new), pull sums the
// change-resisting ones (anchors, anxiety). Each component is the sum
// of the half-scale (0-5) averages, so both sit in [0,10] and net force
// in [-10,10]; the clamps hold regardless of input magnitude.
type ForceBalance struct {
	PushForces float64 `json:"pushForces" bson:"pushForces"`
	PullForces float64 `json:"pullForces" bson:"pullForces"`
	NetForce   float64 `json:"netForce" bson:"netForce"`
}

// Classification labels each force and derives the readiness score
type Classification struct {
	DominantForces []ForceKind  `json:"dominantForces" bson:"dominantForces"`
	WeakForces     []ForceKind  `json:"weakForces" bson:"weakForces"`
	Balance        ForceBalance `json:"forceBalance" bson:"forceBalance"`
	ReadinessScore int          `json:"readinessScore" bson:"readinessScore"`
}

// Classify labels forces whose average strength crosses the high or low
// threshold (0-10 scale) and computes the force balance and readiness
// score. Forces with no matching responses are left unlabeled. A
// threshold pair with high <= low is a configuration error, not a data
// error, and fails the whole call.
//
// readiness = round(((netForce+10)/20)*100), clamped to [0,100], the
// exact linear rescaling of net force from [-10,10]. An even batch
// (net force 0) lands on 50.
func Classify(aggs Aggregates, high, low float64) (*Classification, error) {
	if high <= low {
		return nil, ErrInvalidThresholds
	}

	cls := &Classification{
		DominantForces: []ForceKind{},
		WeakForces:     []ForceKind{},
	}

	for _, kind := range Kinds {
		agg := aggs[kind]
		if agg.Count == 0 {
			continue
		}
		switch {
		case agg.AverageStrength >= high:
			cls.DominantForces = append(cls.DominantForces, kind)
		case agg.AverageStrength <= low:
			cls.WeakForces = append(cls.WeakForces, kind)
		}
	}

	// Strongest first among dominant, most lacking first among weak.
	// Ties keep canonical kind order (the sort is stable).
	sort.SliceStable(cls.DominantForces, func(i, j int) bool {
		return aggs[cls.DominantForces[i]].AverageStrength > aggs[cls.DominantForces[j]].AverageStrength
	})
	sort.SliceStable(cls.WeakForces, func(i, j int) bool {
		return aggs[cls.WeakForces[i]].AverageStrength < aggs[cls.WeakForces[j]].AverageStrength
	})

	cls.Balance = balance(aggs)
	cls.ReadinessScore = readiness(cls.Balance.NetForce)
	return cls, nil
}

func balance(aggs Aggregates) ForceBalance {
	push := aggs[PainOfOld].AverageStrength/2 + aggs[PullOfNew].AverageStrength/2
	pull := aggs[AnchorsToOld].AverageStrength/2 + aggs[AnxietyOfNew].AverageStrength/2
	b := ForceBalance{
		PushForces: clamp(push, 0, 10),
		PullForces: clamp(pull, 0, 10),
	}
	b.NetForce = clamp(b.PushForces-b.PullForces, -10, 10)
	return b
}

func readiness(netForce float64) int {
	score := int(math.Round(((netForce + 10) / 20) * 100))
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
