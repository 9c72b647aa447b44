package grading

import "fmt"

// ScaleEntry maps a percentage lower bound to a letter grade and its GPA
// quality-point value.
type ScaleEntry struct {
	MinPercent    float64 `json:"min_percent"`
	Letter        string  `json:"letter"`
	QualityPoints float64 `json:"quality_points"`
}

// Scale is a validated, immutable letter-grade scale. Entries are ordered by
// strictly decreasing lower bound and the last bound is 0, so every
// percentage in [0, 100] (and above) maps to exactly one letter.
type Scale struct {
	entries []ScaleEntry
	quality map[string]float64
}

// NewScale validates and constructs a Scale from ordered entries.
// Validation happens once here, never per call: bounds must be strictly
// decreasing, the final bound must be 0, and letters must be unique.
func NewScale(entries []ScaleEntry) (*Scale, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: scale has no entries", ErrInvalidConfiguration)
	}

	quality := make(map[string]float64, len(entries))
	for i, e := range entries {
		if e.Letter == "" {
			return nil, fmt.Errorf("%w: entry %d has an empty letter", ErrInvalidConfiguration, i)
		}
		if _, dup := quality[e.Letter]; dup {
			return nil, fmt.Errorf("%w: duplicate letter %q", ErrInvalidConfiguration, e.Letter)
		}
		if i > 0 && e.MinPercent >= entries[i-1].MinPercent {
			return nil, fmt.Errorf("%w: bounds not strictly decreasing at %q", ErrInvalidConfiguration, e.Letter)
		}
		if e.QualityPoints < 0 {
			return nil, fmt.Errorf("%w: negative quality points for %q", ErrInvalidConfiguration, e.Letter)
		}
		quality[e.Letter] = e.QualityPoints
	}

	if last := entries[len(entries)-1]; last.MinPercent != 0 {
		return nil, fmt.Errorf("%w: lowest bound must be 0, got %.2f", ErrInvalidConfiguration, last.MinPercent)
	}

	s := &Scale{
		entries: make([]ScaleEntry, len(entries)),
		quality: quality,
	}
	copy(s.entries, entries)
	return s, nil
}

// Letter maps a percentage to its letter grade: the highest entry whose
// lower bound is ≤ the percentage. Percentages above the top bound still
// map to the top letter; there is no ">100" tier.
func (s *Scale) Letter(percentage float64) string {
	for _, e := range s.entries {
		if percentage >= e.MinPercent {
			return e.Letter
		}
	}
	// Unreachable for non-negative input since the last bound is 0.
	return s.entries[len(s.entries)-1].Letter
}

// QualityPoints returns the GPA quality-point value for a letter grade.
func (s *Scale) QualityPoints(letter string) (float64, bool) {
	qp, ok := s.quality[letter]
	return qp, ok
}

// Entries returns a copy of the scale entries in descending bound order.
func (s *Scale) Entries() []ScaleEntry {
	out := make([]ScaleEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// DefaultScale returns the system default grading scale, used when a course
// has no scale of its own.
func DefaultScale() *Scale {
	s, err := NewScale([]ScaleEntry{
		{MinPercent: 97, Letter: "A+", QualityPoints: 4.0},
		{MinPercent: 93, Letter: "A", QualityPoints: 4.0},
		{MinPercent: 90, Letter: "A-", QualityPoints: 3.7},
		{MinPercent: 87, Letter: "B+", QualityPoints: 3.3},
		{MinPercent: 83, Letter: "B", QualityPoints: 3.0},
		{MinPercent: 80, Letter: "B-", QualityPoints: 2.7},
		{MinPercent: 77, Letter: "C+", QualityPoints: 2.3},
		{MinPercent: 73, Letter: "C", QualityPoints: 2.0},
		{MinPercent: 70, Letter: "C-", QualityPoints: 1.7},
		{MinPercent: 67, Letter: "D+", QualityPoints: 1.3},
		{MinPercent: 63, Letter: "D", QualityPoints: 1.0},
		{MinPercent: 60, Letter: "D-", QualityPoints: 0.7},
		{MinPercent: 0, Letter: "F", QualityPoints: 0.0},
	})
	if err != nil {
		panic(err) // The default scale is a compile-time constant.
	}
	return s
}
