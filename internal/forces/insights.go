package forces

import "fmt"

// Insight is one classified force with its templated statement and the
// themes that back it up
type Insight struct {
	Force     ForceKind `json:"force" bson:"force"`
	Kind      string    `json:"kind" bson:"kind"` // "dominant" or "weak"
	Statement string    `json:"statement" bson:"statement"`
	Evidence  []string  `json:"evidence" bson:"evidence"`
}

// Recommendation is one actionable item derived from the rule table
type Recommendation struct {
	Category string `json:"category" bson:"category"`
	Action   string `json:"action" bson:"action"`
	Priority string `json:"priority" bson:"priority"` // low, medium, high, critical
	Effort   string `json:"effort" bson:"effort"`     // low, medium, high
	Impact   string `json:"impact" bson:"impact"`     // low, medium, high
}

// recommendationRule pairs a predicate over the aggregates with a fixed
// recommendation. Priority, effort and impact are static per rule, not
// computed. Force predicates only fire for forces that actually have
// responses; net-force predicates never fire on an empty batch because
// net force is 0 there.
type recommendationRule struct {
	rec     Recommendation
	applies func(aggs Aggregates, b ForceBalance) bool
}

func forceBelow(kind ForceKind, threshold float64) func(Aggregates, ForceBalance) bool {
	return func(aggs Aggregates, _ ForceBalance) bool {
		agg := aggs[kind]
		return agg.Count > 0 && agg.AverageStrength < threshold
	}
}

func forceAbove(kind ForceKind, threshold float64) func(Aggregates, ForceBalance) bool {
	return func(aggs Aggregates, _ ForceBalance) bool {
		agg := aggs[kind]
		return agg.Count > 0 && agg.AverageStrength > threshold
	}
}

// The rule table. Order is output order, so the set stays auditable in
// one place and the result is deterministic.
var recommendationRules = []recommendationRule{
	{
		rec: Recommendation{
			Category: "strengthen_push",
			Action:   "Make the cost of the current way of working visible: quantify time lost, errors and missed opportunities before introducing the change.",
			Priority: "high",
			Effort:   "medium",
			Impact:   "high",
		},
		applies: forceBelow(PainOfOld, 5),
	},
	{
		rec: Recommendation{
			Category: "strengthen_push",
			Action:   "Make the future state concrete: run small pilots and share before/after examples so the benefit of the new way is tangible.",
			Priority: "high",
			Effort:   "medium",
			Impact:   "high",
		},
		applies: forceBelow(PullOfNew, 6),
	},
	{
		rec: Recommendation{
			Category: "reduce_pull",
			Action:   "Lower switching costs: audit the habits, tooling and sunk investments that keep teams on the old way and remove the heaviest ones first.",
			Priority: "medium",
			Effort:   "high",
			Impact:   "medium",
		},
		applies: forceAbove(AnchorsToOld, 6),
	},
	{
		rec: Recommendation{
			Category: "address_anxiety",
			Action:   "Address adoption anxiety directly: provide training, safe sandboxes and clear messaging about what the change means for individual roles.",
			Priority: "high",
			Effort:   "medium",
			Impact:   "high",
		},
		applies: forceAbove(AnxietyOfNew, 6),
	},
	{
		rec: Recommendation{
			Category: "leverage_momentum",
			Action:   "Momentum favors the change: lock in early wins publicly and expand the rollout while net force is positive.",
			Priority: "medium",
			Effort:   "low",
			Impact:   "medium",
		},
		applies: func(_ Aggregates, b ForceBalance) bool { return b.NetForce > 2 },
	},
	{
		rec: Recommendation{
			Category: "blocking_risk",
			Action:   "Resisting forces outweigh the drivers: treat the rollout as at risk and resolve anchors and anxiety before committing further investment.",
			Priority: "critical",
			Effort:   "high",
			Impact:   "high",
		},
		applies: func(_ Aggregates, b ForceBalance) bool { return b.NetForce < -2 },
	},
}

// Generate turns a classification into ranked insights and
// recommendations. Insights list dominant forces first (strongest
// first), then weak forces (weakest first), mirroring the order already
// established by Classify. Output depends only on the inputs, so
// identical aggregates produce byte-identical results.
func Generate(aggs Aggregates, cls *Classification) ([]Insight, []Recommendation) {
	insights := []Insight{}
	for _, kind := range cls.DominantForces {
		agg := aggs[kind]
		insights = append(insights, Insight{
			Force: kind,
			Kind:  "dominant",
			Statement: fmt.Sprintf("The %s is a dominant force (average strength %.1f/10, confidence %.1f/10 across %d responses).",
				kind.Label(), agg.AverageStrength, agg.AverageConfidence, agg.Count),
			Evidence: agg.TopThemes,
		})
	}
	for _, kind := range cls.WeakForces {
		agg := aggs[kind]
		insights = append(insights, Insight{
			Force: kind,
			Kind:  "weak",
			Statement: fmt.Sprintf("The %s barely registers (average strength %.1f/10, confidence %.1f/10 across %d responses).",
				kind.Label(), agg.AverageStrength, agg.AverageConfidence, agg.Count),
			Evidence: agg.TopThemes,
		})
	}

	recommendations := []Recommendation{}
	for _, rule := range recommendationRules {
		if rule.applies(aggs, cls.Balance) {
			recommendations = append(recommendations, rule.rec)
		}
	}
	return insights, recommendations
}
