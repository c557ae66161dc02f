// Package detect infers likely recurring charges from raw transaction
// history. It is a heuristic shortlist builder for human confirmation, not a
// classifier with accuracy guarantees.
package detect

import (
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/budgetflow/budgetflow/internal/dates"
	"github.com/budgetflow/budgetflow/internal/models"
)

// Detection thresholds and scoring constants. These are tuning knobs, not
// inherent logic; adjust them together when recalibrating the detector.
const (
	DefaultLookbackDays = 180
	MinLookbackDays     = 30
	MaxLookbackDays     = 365

	merchantKeyMaxLen = 40
	minObservations   = 2
	minSpanDays       = 20

	scoreBase           = 30
	scoreManyObs        = 20 // at or above 3 observations
	scoreKnownCadence   = 30
	scoreMaterialAmount = 10 // |expected amount| of at least 5
	materialAmountFloor = 5.0
	manyObsThreshold    = 3
)

// cadenceBucket classifies a median day-gap into a cadence.
type cadenceBucket struct {
	cadence string
	min     float64
	max     float64
}

var cadenceBuckets = []cadenceBucket{
	{models.CadenceWeekly, 5, 10},
	{models.CadenceMonthly, 20, 45},
	{models.CadenceQuarterly, 70, 110},
	{models.CadenceYearly, 330, 400},
}

// ClampLookback forces a lookback window into the supported range,
// defaulting when the caller passes zero or less.
func ClampLookback(days int) int {
	if days <= 0 {
		return DefaultLookbackDays
	}
	if days < MinLookbackDays {
		return MinLookbackDays
	}
	if days > MaxLookbackDays {
		return MaxLookbackDays
	}
	return days
}

// NormalizeMerchantKey reduces merchant text to a stable grouping key:
// lowercased, alphanumeric-only, single-spaced, bounded length.
func NormalizeMerchantKey(raw string) string {
	lower := strings.ToLower(raw)
	var b strings.Builder
	for _, r := range lower {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}
	key := strings.Join(strings.Fields(b.String()), " ")
	if len(key) > merchantKeyMaxLen {
		key = key[:merchantKeyMaxLen]
	}
	return key
}

// Candidates groups the supplied transactions by normalized merchant key,
// measures each group's date-gap and amount statistics, and emits one ranked
// candidate per group that shows enough evidence of recurring. Merchants in
// ignoredKeys or already confirmed in existing are excluded. Groups with too
// few transactions or too short a first-to-last span are silently skipped.
func Candidates(txs []models.Transaction, ignoredKeys []string, existing []models.Subscription) []models.SubscriptionCandidate {
	excluded := make(map[string]bool, len(ignoredKeys)+len(existing))
	for _, key := range ignoredKeys {
		excluded[key] = true
	}
	for _, sub := range existing {
		excluded[sub.MerchantKey] = true
	}

	groups := make(map[string][]models.Transaction)
	for _, tx := range txs {
		key := NormalizeMerchantKey(tx.Merchant)
		if key == "" || excluded[key] {
			continue
		}
		groups[key] = append(groups[key], tx)
	}

	var out []models.SubscriptionCandidate
	for key, group := range groups {
		sort.Slice(group, func(i, j int) bool { return group[i].Date.Before(group[j].Date) })

		if len(group) < minObservations {
			continue
		}
		span := dates.DaysBetween(group[0].Date, group[len(group)-1].Date)
		if span < minSpanDays {
			continue
		}

		gaps := make([]float64, 0, len(group)-1)
		for i := 1; i < len(group); i++ {
			gaps = append(gaps, float64(dates.DaysBetween(group[i-1].Date, group[i].Date)))
		}
		cadence := classifyCadence(median(gaps))

		amounts := make([]float64, 0, len(group))
		for _, tx := range group {
			if !math.IsNaN(tx.Amount) && !math.IsInf(tx.Amount, 0) {
				amounts = append(amounts, tx.Amount)
			}
		}
		if len(amounts) < minObservations {
			continue
		}
		expected := median(append([]float64(nil), amounts...))
		lo, hi := amounts[0], amounts[0]
		for _, a := range amounts[1:] {
			lo = math.Min(lo, a)
			hi = math.Max(hi, a)
		}

		out = append(out, models.SubscriptionCandidate{
			MerchantKey:    key,
			DisplayName:    group[0].Merchant,
			Cadence:        cadence,
			ExpectedAmount: expected,
			AmountMin:      lo,
			AmountMax:      hi,
			LastDate:       dates.Midnight(group[len(group)-1].Date),
			Occurrences:    len(group),
			Confidence:     score(len(group), cadence, expected),
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Confidence != out[j].Confidence {
			return out[i].Confidence > out[j].Confidence
		}
		return out[i].MerchantKey < out[j].MerchantKey
	})
	return out
}

func classifyCadence(medianGap float64) string {
	for _, b := range cadenceBuckets {
		if medianGap >= b.min && medianGap <= b.max {
			return b.cadence
		}
	}
	return models.CadenceUnknown
}

func score(observations int, cadence string, expected float64) int {
	s := scoreBase
	if observations >= manyObsThreshold {
		s += scoreManyObs
	}
	if cadence != models.CadenceUnknown {
		s += scoreKnownCadence
	}
	if math.Abs(expected) >= materialAmountFloor {
		s += scoreMaterialAmount
	}
	if s < 0 {
		s = 0
	}
	if s > 100 {
		s = 100
	}
	return s
}

// median sorts its argument in place.
func median(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	sort.Float64s(vals)
	mid := len(vals) / 2
	if len(vals)%2 == 1 {
		return vals[mid]
	}
	return (vals[mid-1] + vals[mid]) / 2
}
