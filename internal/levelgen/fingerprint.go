package levelgen

import (
	"fmt"
	"strconv"
	"time"
)

// shortCodeAlphabet excludes visually ambiguous glyphs (I, O, 0, 1) so codes
// survive being read aloud or scrawled on paper.
const shortCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const shortCodeLength = 8

// hash31 rolls s through the classic 31-polynomial string hash with signed
// 32-bit wraparound. The wrap semantics are part of the fingerprint format
// and must not change.
func hash31(s string) int32 {
	var hash int32
	for _, c := range s {
		hash = hash*31 + int32(c)
	}
	return hash
}

func abs32(v int32) int64 {
	n := int64(v)
	if n < 0 {
		n = -n
	}
	return n
}

// canonicalParams serializes the rounded parameter subset that identifies a
// level. Integers pass through as-is; fractional scores round to integer
// percent so float noise can never split one level into two identities.
// Player count and coordination demand stay out on purpose: a level is the
// same shareable level whether it is played solo or cooperatively.
func canonicalParams(seed int32, p Parameters) string {
	return fmt.Sprintf(
		`{"seed":%d,"nodes":%d,"edges":%d,"portals":%d,"layers":%d,"complexity":%d,"intensity":%d}`,
		seed,
		p.NodeCount,
		p.EdgeCount,
		p.PortalCount,
		p.DimensionLayers,
		roundPercent(p.ComplexityScore),
		roundPercent(p.IntensityScore),
	)
}

func roundPercent(v float64) int {
	return int(v*100 + 0.5)
}

// FingerprintID derives the level identifier from the rounded parameter set:
// canonical JSON, 31-polynomial hash, absolute value, base-36.
func FingerprintID(seed int32, p Parameters) string {
	return "lvl-" + strconv.FormatInt(abs32(hash31(canonicalParams(seed, p))), 36)
}

// ShortCode maps a fingerprint id onto a human-shareable XXXX-XXXX code.
// Each position rehashes the running value so all eight characters move
// when the id changes.
func ShortCode(id string) string {
	h := hash31(id)
	buf := make([]byte, 0, shortCodeLength+1)
	for i := 0; i < shortCodeLength; i++ {
		h = h*31 + int32(i+1)
		buf = append(buf, shortCodeAlphabet[abs32(h)%int64(len(shortCodeAlphabet))])
		if i == 3 {
			buf = append(buf, '-')
		}
	}
	return string(buf)
}

// NewFingerprint assembles the level's identity record. The creation time
// is caller-supplied so batch generation and tests control the clock.
func NewFingerprint(seed int32, p Parameters, mods Modifiers, now time.Time) Fingerprint {
	id := FingerprintID(seed, p)
	rating := DifficultyRating(p, mods)
	return Fingerprint{
		ID:        id,
		ShortCode: ShortCode(id),
		Rating:    rating,
		Tier:      RatingTier(rating),
		CreatedAt: now.UTC(),
	}
}

// DifficultyRating scores a parameter set on a 0-100 scale: a structural
// term worth up to 40 points, a skill-demand term worth up to 50, and an
// adaptation modifier worth up to 10 in either direction.
func DifficultyRating(p Parameters, mods Modifiers) int {
	structural := clamp01(float64(p.NodeCount)/nodeDensityScale)*15 +
		clamp01(float64(p.EdgeCount)/edgeDensityScale)*15 +
		clamp01(float64(p.DimensionLayers)/layerDensityScale)*10
	skill := p.ComplexityScore*20 + mods.PerceptionDemand*15 + mods.TimePressure*15
	adaptation := (p.IntensityScore - 0.5) * 20

	rating := int(structural + skill + adaptation + 0.5)
	if rating < 0 {
		rating = 0
	}
	if rating > 100 {
		rating = 100
	}
	return rating
}

// RatingTier buckets a rating at the 20/40/60/80 thresholds.
func RatingTier(rating int) Tier {
	switch {
	case rating < 20:
		return TierBeginner
	case rating < 40:
		return TierIntermediate
	case rating < 60:
		return TierAdvanced
	case rating < 80:
		return TierExpert
	default:
		return TierTranscendent
	}
}
