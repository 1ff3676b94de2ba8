package forces

import "sort"

// AggregatedForce summarizes every response whose primary force matched
type AggregatedForce struct {
	Force             ForceKind `json:"force" bson:"force"`
	Count             int       `json:"count" bson:"count"`
	AverageStrength   float64   `json:"averageStrength" bson:"averageStrength"`
	AverageConfidence float64   `json:"averageConfidence" bson:"averageConfidence"`
	TopThemes         []string  `json:"topThemes" bson:"topThemes"`
}

// Aggregates maps every force kind to its summary. All five keys are
// always present, zero-count forces included.
type Aggregates map[ForceKind]AggregatedForce

type themeEntry struct {
	theme     string
	count     int
	firstSeen int
}

// Aggregate folds validated scores into per-force counts, averages and
// theme-frequency tables in a single pass. topK bounds topThemes per
// force (<=0 means the default of 5).
func Aggregate(scores []ForceScore, topK int) Aggregates {
	if topK <= 0 {
		topK = 5
	}

	type bucket struct {
		count         int
		strengthSum   float64
		confidenceSum float64
		themes        map[string]*themeEntry
	}

	buckets := make(map[ForceKind]*bucket, len(Kinds))
	for _, kind := range Kinds {
		buckets[kind] = &bucket{themes: make(map[string]*themeEntry)}
	}

	seq := 0
	for _, score := range scores {
		b := buckets[score.PrimaryForce]
		b.count++
		b.strengthSum += score.Strength
		b.confidenceSum += score.Confidence
		for _, theme := range score.KeyThemes {
			if entry, ok := b.themes[theme]; ok {
				entry.count++
			} else {
				b.themes[theme] = &themeEntry{theme: theme, count: 1, firstSeen: seq}
			}
			seq++
		}
	}

	out := make(Aggregates, len(Kinds))
	for _, kind := range Kinds {
		b := buckets[kind]
		agg := AggregatedForce{
			Force:     kind,
			Count:     b.count,
			TopThemes: []string{},
		}
		if b.count > 0 {
			agg.AverageStrength = b.strengthSum / float64(b.count)
			agg.AverageConfidence = b.confidenceSum / float64(b.count)
		}
		agg.TopThemes = topThemes(b.themes, topK)
		out[kind] = agg
	}
	return out
}

// topThemes ranks by frequency descending, ties broken by first-seen
// order so equally frequent themes keep extraction order.
func topThemes(table map[string]*themeEntry, k int) []string {
	entries := make([]*themeEntry, 0, len(table))
	for _, e := range table {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].firstSeen < entries[j].firstSeen
	})
	if len(entries) > k {
		entries = entries[:k]
	}
	themes := make([]string, len(entries))
	for i, e := range entries {
		themes[i] = e.theme
	}
	return themes
}
