package grading

import (
	"errors"
	"testing"
)

func record(letter, semester string, year, credits int, status RecordStatus, major bool) AcademicRecord {
	return AcademicRecord{
		Semester:         semester,
		Year:             year,
		LetterGrade:      letter,
		CreditsAttempted: credits,
		CreditsEarned:    credits,
		Status:           status,
		MajorCourse:      major,
	}
}

var springFirstOrder = []string{"Spring", "Summer", "Fall", "Winter"}

func TestComputeGPACumulative(t *testing.T) {
	scale := DefaultScale()
	records := []AcademicRecord{
		record("A", "Fall", 2025, 3, StatusGraded, true),   // 4.0 * 3
		record("B+", "Fall", 2025, 4, StatusGraded, false), // 3.3 * 4
		record("C", "Spring", 2026, 3, StatusGraded, true), // 2.0 * 3
	}

	res, err := ComputeGPA(records, scale, Scope{Kind: ScopeCumulative})
	if err != nil {
		t.Fatalf("ComputeGPA: %v", err)
	}
	want := (4.0*3 + 3.3*4 + 2.0*3) / 10
	if !almostEqual(res.GPA, want) {
		t.Fatalf("GPA = %.4f, want %.4f", res.GPA, want)
	}
	if res.TotalCredits != 10 {
		t.Fatalf("TotalCredits = %d, want 10", res.TotalCredits)
	}
}

func TestComputeGPAExcludesNonGraded(t *testing.T) {
	scale := DefaultScale()
	records := []AcademicRecord{
		record("A", "Fall", 2025, 3, StatusGraded, false),
		record("A", "Fall", 2025, 3, StatusPending, false),
		record("A", "Fall", 2025, 3, StatusIncomplete, false),
		record("A", "Fall", 2025, 3, StatusWithdrawn, false),
		record("A", "Fall", 2025, 0, StatusGraded, false), // zero credits
	}

	res, err := ComputeGPA(records, scale, Scope{Kind: ScopeCumulative})
	if err != nil {
		t.Fatalf("ComputeGPA: %v", err)
	}
	if res.TotalCredits != 3 {
		t.Fatalf("TotalCredits = %d, want 3 (only the graded record)", res.TotalCredits)
	}
	if !almostEqual(res.GPA, 4.0) {
		t.Fatalf("GPA = %.4f, want 4.0", res.GPA)
	}
}

func TestComputeGPAZeroCredits(t *testing.T) {
	scale := DefaultScale()

	res, err := ComputeGPA(nil, scale, Scope{Kind: ScopeCumulative})
	if err != nil {
		t.Fatalf("ComputeGPA: %v", err)
	}
	if res.GPA != 0 || res.TotalCredits != 0 {
		t.Fatalf("empty records: GPA = %.2f credits = %d, want 0 and 0", res.GPA, res.TotalCredits)
	}
}

func TestComputeGPAMajorScope(t *testing.T) {
	scale := DefaultScale()
	records := []AcademicRecord{
		record("A", "Fall", 2025, 3, StatusGraded, true),
		record("F", "Fall", 2025, 3, StatusGraded, false),
	}

	res, err := ComputeGPA(records, scale, Scope{Kind: ScopeMajor})
	if err != nil {
		t.Fatalf("ComputeGPA: %v", err)
	}
	if !almostEqual(res.GPA, 4.0) {
		t.Fatalf("major GPA = %.4f, want 4.0", res.GPA)
	}
}

func TestComputeGPAFailureLowersGPA(t *testing.T) {
	scale := DefaultScale()
	base := []AcademicRecord{
		record("B", "Fall", 2025, 3, StatusGraded, false),
		record("B", "Fall", 2025, 3, StatusGraded, false),
	}

	before, err := ComputeGPA(base, scale, Scope{Kind: ScopeCumulative})
	if err != nil {
		t.Fatalf("ComputeGPA: %v", err)
	}

	// An F adds attempted credits with zero quality points.
	withFail := append(base, record("F", "Fall", 2025, 3, StatusGraded, false))
	after, err := ComputeGPA(withFail, scale, Scope{Kind: ScopeCumulative})
	if err != nil {
		t.Fatalf("ComputeGPA: %v", err)
	}

	if after.GPA >= before.GPA {
		t.Fatalf("GPA did not drop after an F: %.4f -> %.4f", before.GPA, after.GPA)
	}
	if after.TotalCredits != before.TotalCredits+3 {
		t.Fatalf("attempted credits must include the failed course")
	}
}

func TestComputeGPAUnknownLetter(t *testing.T) {
	scale := DefaultScale()
	records := []AcademicRecord{record("Z", "Fall", 2025, 3, StatusGraded, false)}

	if _, err := ComputeGPA(records, scale, Scope{Kind: ScopeCumulative}); !errors.Is(err, ErrInvalidGradeInput) {
		t.Fatalf("expected ErrInvalidGradeInput, got %v", err)
	}
}

func TestSemesterBreakdownOrdering(t *testing.T) {
	scale := DefaultScale()
	records := []AcademicRecord{
		record("B", "Fall", 2026, 3, StatusGraded, false),
		record("A", "Spring", 2026, 3, StatusGraded, false),
		record("C", "Fall", 2025, 3, StatusGraded, false),
		record("A-", "Spring", 2026, 3, StatusGraded, false),
	}

	breakdown, err := SemesterBreakdown(records, scale, springFirstOrder)
	if err != nil {
		t.Fatalf("SemesterBreakdown: %v", err)
	}

	wantTerms := []struct {
		semester string
		year     int
	}{
		{"Fall", 2025},
		{"Spring", 2026},
		{"Fall", 2026},
	}
	if len(breakdown) != len(wantTerms) {
		t.Fatalf("got %d terms, want %d", len(breakdown), len(wantTerms))
	}
	for i, want := range wantTerms {
		if breakdown[i].Semester != want.semester || breakdown[i].Year != want.year {
			t.Fatalf("term %d = %s %d, want %s %d",
				i, breakdown[i].Semester, breakdown[i].Year, want.semester, want.year)
		}
	}

	// Spring 2026 holds two records: A (4.0) and A- (3.7).
	if !almostEqual(breakdown[1].GPA, (4.0+3.7)/2) {
		t.Fatalf("Spring 2026 GPA = %.4f, want %.4f", breakdown[1].GPA, (4.0+3.7)/2)
	}
	if breakdown[1].Credits != 6 {
		t.Fatalf("Spring 2026 credits = %d, want 6", breakdown[1].Credits)
	}
}

func TestSemesterBreakdownUnknownSemesterSortsLast(t *testing.T) {
	scale := DefaultScale()
	records := []AcademicRecord{
		record("A", "Intersession", 2026, 1, StatusGraded, false),
		record("B", "Spring", 2026, 3, StatusGraded, false),
	}

	breakdown, err := SemesterBreakdown(records, scale, springFirstOrder)
	if err != nil {
		t.Fatalf("SemesterBreakdown: %v", err)
	}
	if len(breakdown) != 2 || breakdown[0].Semester != "Spring" || breakdown[1].Semester != "Intersession" {
		t.Fatalf("unexpected ordering: %+v", breakdown)
	}
}
