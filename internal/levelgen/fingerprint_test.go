package levelgen

import (
	"strings"
	"testing"
	"time"
)

func testParams() Parameters {
	return Parameters{
		NodeCount:       15,
		EdgeCount:       23,
		PortalCount:     4,
		DimensionLayers: 2,
		ComplexityScore: 0.42,
		IntensityScore:  0.5,
		PlayerCount:     1,
	}
}

func TestFingerprintIDFormat(t *testing.T) {
	id := FingerprintID(42, testParams())
	if !strings.HasPrefix(id, "lvl-") {
		t.Fatalf("expected lvl- prefix, got %q", id)
	}
	for _, c := range id[len("lvl-"):] {
		if (c < '0' || c > '9') && (c < 'a' || c > 'z') {
			t.Fatalf("unexpected base-36 digit %q in %q", c, id)
		}
	}
}

func TestFingerprintIDDeterministic(t *testing.T) {
	a := FingerprintID(42, testParams())
	b := FingerprintID(42, testParams())
	if a != b {
		t.Fatalf("identical parameters produced %q and %q", a, b)
	}
}

func TestFingerprintIDSensitivity(t *testing.T) {
	base := FingerprintID(42, testParams())

	bump := func(mutate func(*Parameters)) string {
		p := testParams()
		mutate(&p)
		return FingerprintID(42, p)
	}

	cases := map[string]string{
		"seed":       FingerprintID(43, testParams()),
		"nodes":      bump(func(p *Parameters) { p.NodeCount++ }),
		"edges":      bump(func(p *Parameters) { p.EdgeCount++ }),
		"portals":    bump(func(p *Parameters) { p.PortalCount++ }),
		"layers":     bump(func(p *Parameters) { p.DimensionLayers++ }),
		"complexity": bump(func(p *Parameters) { p.ComplexityScore += 0.01 }),
	}
	for name, id := range cases {
		if id == base {
			t.Fatalf("changing %s by one unit did not change the fingerprint id", name)
		}
	}
}

func TestFingerprintIgnoresSubPercentNoise(t *testing.T) {
	p := testParams()
	p.ComplexityScore = 0.420001
	if FingerprintID(42, p) != FingerprintID(42, testParams()) {
		t.Fatal("fractional noise below one percent must not change the id")
	}
}

func TestShortCodeFormat(t *testing.T) {
	code := ShortCode(FingerprintID(42, testParams()))
	if len(code) != 9 {
		t.Fatalf("expected XXXX-XXXX, got %q", code)
	}
	if code[4] != '-' {
		t.Fatalf("expected separator at position 4, got %q", code)
	}
	for i, c := range code {
		if i == 4 {
			continue
		}
		if !strings.ContainsRune(shortCodeAlphabet, c) {
			t.Fatalf("character %q at %d outside the short-code alphabet", c, i)
		}
	}
	for _, banned := range "IO01" {
		if strings.ContainsRune(code, banned) {
			t.Fatalf("ambiguous glyph %q leaked into %q", banned, code)
		}
	}
}

func TestShortCodeTracksID(t *testing.T) {
	a := ShortCode("lvl-abc123")
	b := ShortCode("lvl-abc124")
	if a == b {
		t.Fatal("different ids should map to different short codes")
	}
	if a != ShortCode("lvl-abc123") {
		t.Fatal("short code must be deterministic")
	}
}

func TestDifficultyRatingMonotone(t *testing.T) {
	mods := Modifiers{PerceptionDemand: 0.5, TimePressure: 0.5}

	sweep := func(name string, mutate func(p *Parameters, m *Modifiers, step int)) {
		prev := -1
		for step := 0; step <= 10; step++ {
			p := testParams()
			m := mods
			mutate(&p, &m, step)
			rating := DifficultyRating(p, m)
			if rating < prev {
				t.Fatalf("%s sweep: rating decreased from %d to %d at step %d", name, prev, rating, step)
			}
			prev = rating
		}
	}

	sweep("node count", func(p *Parameters, _ *Modifiers, step int) { p.NodeCount = 5 + step*10 })
	sweep("complexity", func(p *Parameters, _ *Modifiers, step int) { p.ComplexityScore = float64(step) / 10 })
	sweep("perception", func(_ *Parameters, m *Modifiers, step int) { m.PerceptionDemand = float64(step) / 10 })
	sweep("time pressure", func(_ *Parameters, m *Modifiers, step int) { m.TimePressure = float64(step) / 10 })
}

func TestDifficultyRatingBounds(t *testing.T) {
	low := DifficultyRating(Parameters{}, Modifiers{})
	if low < 0 || low > 100 {
		t.Fatalf("rating out of range: %d", low)
	}
	high := DifficultyRating(Parameters{
		NodeCount: 500, EdgeCount: 500, DimensionLayers: 3,
		ComplexityScore: 1, IntensityScore: 1,
	}, Modifiers{PerceptionDemand: 1, TimePressure: 1})
	if high < 0 || high > 100 {
		t.Fatalf("rating out of range: %d", high)
	}
	if high <= low {
		t.Fatalf("expected extreme parameters to outrank empty ones: %d vs %d", high, low)
	}
}

func TestRatingTiers(t *testing.T) {
	cases := []struct {
		rating int
		tier   Tier
	}{
		{0, TierBeginner},
		{19, TierBeginner},
		{20, TierIntermediate},
		{39, TierIntermediate},
		{40, TierAdvanced},
		{59, TierAdvanced},
		{60, TierExpert},
		{79, TierExpert},
		{80, TierTranscendent},
		{100, TierTranscendent},
	}
	for _, tc := range cases {
		if got := RatingTier(tc.rating); got != tc.tier {
			t.Fatalf("rating %d: expected %q, got %q", tc.rating, tc.tier, got)
		}
	}
}

func TestNewFingerprintStampsUTC(t *testing.T) {
	loc := time.FixedZone("PST", -8*3600)
	now := time.Date(2026, 8, 27, 4, 0, 0, 0, loc)
	fp := NewFingerprint(42, testParams(), Modifiers{}, now)
	if fp.CreatedAt.Location() != time.UTC {
		t.Fatalf("expected UTC timestamp, got %v", fp.CreatedAt.Location())
	}
	if fp.ID == "" || fp.ShortCode == "" {
		t.Fatal("expected populated identity fields")
	}
	if fp.Tier != RatingTier(fp.Rating) {
		t.Fatalf("tier %q does not match rating %d", fp.Tier, fp.Rating)
	}
}
