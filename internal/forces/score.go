package forces

import "errors"

var (
	ErrInvalidForceKind  = errors.New("primary force is not a known JTBD force")
	ErrInvalidThresholds = errors.New("high threshold must be greater than low threshold")
)

// ForceKind is one of the five JTBD forces a scored response can express
type ForceKind string

const (
	PainOfOld    ForceKind = "pain_of_old"
	PullOfNew    ForceKind = "pull_of_new"
	AnchorsToOld ForceKind = "anchors_to_old"
	AnxietyOfNew ForceKind = "anxiety_of_new"
	Demographic  ForceKind = "demographic"
)

// Kinds lists all forces in canonical order. Used for stable iteration
// wherever map ordering would leak into output.
var Kinds = []ForceKind{PainOfOld, PullOfNew, AnchorsToOld, AnxietyOfNew, Demographic}

// Valid reports whether k is a member of the force enum
func (k ForceKind) Valid() bool {
	switch k {
	case PainOfOld, PullOfNew, AnchorsToOld, AnxietyOfNew, Demographic:
		return true
	}
	return false
}

// Label returns the human-readable name used in insight statements
func (k ForceKind) Label() string {
	switch k {
	case PainOfOld:
		return "pain of the old way"
	case PullOfNew:
		return "pull of the new way"
	case AnchorsToOld:
		return "anchors to the old way"
	case AnxietyOfNew:
		return "anxiety about the new way"
	case Demographic:
		return "demographic baseline"
	}
	return string(k)
}

// RawScore is the per-response record produced by the external scorer.
// Strength and confidence are on the scorer's raw scale (0-ScaleMax).
type RawScore struct {
	PrimaryForce    ForceKind   `json:"primaryJtbdForce" bson:"primaryJtbdForce"`
	SecondaryForces []ForceKind `json:"secondaryJtbdForces,omitempty" bson:"secondaryJtbdForces,omitempty"`
	Strength        float64     `json:"forceStrengthScore" bson:"forceStrengthScore"`
	Confidence      float64     `json:"confidenceScore" bson:"confidenceScore"`
	KeyThemes       []string    `json:"keyThemes,omitempty" bson:"keyThemes,omitempty"`
}

// ForceScore is a validated score on the canonical 0-10 scale
type ForceScore struct {
	PrimaryForce    ForceKind   `json:"primaryForce" bson:"primaryForce"`
	SecondaryForces []ForceKind `json:"secondaryForces,omitempty" bson:"secondaryForces,omitempty"`
	Strength        float64     `json:"strength" bson:"strength"`
	Confidence      float64     `json:"confidence" bson:"confidence"`
	KeyThemes       []string    `json:"keyThemes,omitempty" bson:"keyThemes,omitempty"`
}

// Options configures validation and classification for one rollup
type Options struct {
	// ScaleMax is the upper bound of the scorer's raw scale. Strength and
	// confidence are clamped into [0, ScaleMax] and rescaled to 0-10.
	ScaleMax float64

	// ThemeCap truncates keyThemes per response, preserving order
	ThemeCap int

	// TopThemes is how many themes to keep per force in the aggregate
	TopThemes int

	// HighThreshold / LowThreshold classify dominant and weak forces
	// on the canonical 0-10 average-strength scale
	HighThreshold float64
	LowThreshold  float64
}

// DefaultOptions matches the scorer contract (0-5 raw scale) and the
// standard dominance thresholds.
func DefaultOptions() Options {
	return Options{
		ScaleMax:      5,
		ThemeCap:      20,
		TopThemes:     5,
		HighThreshold: 7,
		LowThreshold:  3,
	}
}

// Validate checks a raw score and converts it to the canonical scale.
// An unknown primary force is rejected; out-of-range strength and
// confidence are clamped rather than rejected, so minor scorer drift
// does not discard an otherwise usable analysis. The clamping is
// observable: a clamped value sits exactly on the scale boundary.
func Validate(raw RawScore, opts Options) (ForceScore, error) {
	if !raw.PrimaryForce.Valid() {
		return ForceScore{}, ErrInvalidForceKind
	}

	scaleMax := opts.ScaleMax
	if scaleMax <= 0 {
		scaleMax = 5
	}
	factor := 10 / scaleMax

	score := ForceScore{
		PrimaryForce: raw.PrimaryForce,
		Strength:     clamp(raw.Strength, 0, scaleMax) * factor,
		Confidence:   clamp(raw.Confidence, 0, scaleMax) * factor,
	}

	// Secondary forces exclude the primary; unknown entries are dropped
	for _, f := range raw.SecondaryForces {
		if f.Valid() && f != raw.PrimaryForce {
			score.SecondaryForces = append(score.SecondaryForces, f)
		}
	}

	cap := opts.ThemeCap
	if cap <= 0 {
		cap = 20
	}
	seen := make(map[string]bool, len(raw.KeyThemes))
	for _, theme := range raw.KeyThemes {
		if theme == "" || seen[theme] {
			continue
		}
		seen[theme] = true
		score.KeyThemes = append(score.KeyThemes, theme)
		if len(score.KeyThemes) >= cap {
			break
		}
	}

	return score, nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
