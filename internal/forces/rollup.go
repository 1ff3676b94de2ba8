package forces

import "fmt"

// RejectedScore reports one dropped record from a batch
type RejectedScore struct {
	Index  int    `json:"index" bson:"index"`
	Reason string `json:"reason" bson:"reason"`
}

// OrganizationalAnalysis is the terminal artifact of a rollup. It is
// built wholesale from one batch of raw scores and never mutated after
// being returned; a new batch means a new rollup.
type OrganizationalAnalysis struct {
	ReadinessScore  int              `json:"readinessScore" bson:"readinessScore"`
	ForceBalance    ForceBalance     `json:"forceBalance" bson:"forceBalance"`
	DominantForces  []ForceKind      `json:"dominantForces" bson:"dominantForces"`
	WeakForces      []ForceKind      `json:"weakForces" bson:"weakForces"`
	PerForce        Aggregates       `json:"perForce" bson:"perForce"`
	Insights        []Insight        `json:"insights" bson:"insights"`
	Recommendations []Recommendation `json:"recommendations" bson:"recommendations"`
	Summary         []string         `json:"summary" bson:"summary"`
	SampleSize      int              `json:"sampleSize" bson:"sampleSize"`
	Rejected        []RejectedScore  `json:"rejected" bson:"rejected"`
}

// Rollup runs the whole pipeline over one batch: validate each record,
// aggregate, classify, generate insights, assemble the summary.
//
// Malformed records are dropped into Rejected and the batch continues;
// one bad response never blocks an organization's rollup. An empty (or
// fully rejected) batch is not an error: it yields sample size 0, all
// forces neutral, readiness 50 and no insights or recommendations.
// The only error surface is a bad threshold configuration.
func Rollup(raw []RawScore, opts Options) (*OrganizationalAnalysis, error) {
	valid := make([]ForceScore, 0, len(raw))
	rejected := []RejectedScore{}
	for i, r := range raw {
		score, err := Validate(r, opts)
		if err != nil {
			rejected = append(rejected, RejectedScore{Index: i, Reason: "InvalidForceKind"})
			continue
		}
		valid = append(valid, score)
	}

	aggs := Aggregate(valid, opts.TopThemes)

	cls, err := Classify(aggs, opts.HighThreshold, opts.LowThreshold)
	if err != nil {
		return nil, err
	}

	analysis := &OrganizationalAnalysis{
		ReadinessScore:  cls.ReadinessScore,
		ForceBalance:    cls.Balance,
		DominantForces:  cls.DominantForces,
		WeakForces:      cls.WeakForces,
		PerForce:        aggs,
		Insights:        []Insight{},
		Recommendations: []Recommendation{},
		SampleSize:      len(valid),
		Rejected:        rejected,
	}

	if len(valid) > 0 {
		analysis.Insights, analysis.Recommendations = Generate(aggs, cls)
	}

	analysis.Summary = summarize(analysis)
	return analysis, nil
}

// summarize builds the executive summary lines shown at the top of the
// dashboard. Purely templated, no wall clock, no randomness.
func summarize(a *OrganizationalAnalysis) []string {
	if a.SampleSize == 0 {
		return []string{"No valid responses analyzed yet; readiness is at the neutral midpoint of 50/100."}
	}

	lines := []string{
		fmt.Sprintf("Readiness score %d/100 from %d analyzed responses (%d rejected).",
			a.ReadinessScore, a.SampleSize, len(a.Rejected)),
		fmt.Sprintf("Forces pushing toward change score %.1f/10 against %.1f/10 holding it back (net %+.1f).",
			a.ForceBalance.PushForces, a.ForceBalance.PullForces, a.ForceBalance.NetForce),
	}

	if len(a.DominantForces) > 0 {
		lines = append(lines, fmt.Sprintf("Dominant force: %s.", a.DominantForces[0].Label()))
	}
	if len(a.WeakForces) > 0 {
		lines = append(lines, fmt.Sprintf("Weakest force: %s.", a.WeakForces[0].Label()))
	}

	switch {
	case a.ForceBalance.NetForce > 2:
		lines = append(lines, "The organization leans toward change; momentum is on the rollout's side.")
	case a.ForceBalance.NetForce < -2:
		lines = append(lines, "Resisting forces outweigh the drivers; the rollout is at risk as-is.")
	default:
		lines = append(lines, "Push and pull are roughly balanced; targeted interventions will decide the outcome.")
	}
	return lines
}
