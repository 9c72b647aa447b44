package grading

import (
	"fmt"
	"sort"
)

// RecordStatus is the lifecycle status of an academic record.
type RecordStatus string

const (
	StatusPending    RecordStatus = "pending"
	StatusGraded     RecordStatus = "graded"
	StatusIncomplete RecordStatus = "incomplete"
	StatusWithdrawn  RecordStatus = "withdrawn"
)

// AcademicRecord is the per-course record consumed by GPA computation.
// MajorCourse marks records whose course counts toward the student's major.
type AcademicRecord struct {
	CourseID         int
	Semester         string
	Year             int
	LetterGrade      string
	CreditsAttempted int
	CreditsEarned    int
	Status           RecordStatus
	MajorCourse      bool
}

// ScopeKind selects which records contribute to a GPA.
type ScopeKind string

const (
	ScopeCumulative ScopeKind = "cumulative"
	ScopeMajor      ScopeKind = "major"
	ScopeSemester   ScopeKind = "semester"
)

// Scope filters academic records for a GPA computation. Semester/Year are
// consulted only when Kind is ScopeSemester.
type Scope struct {
	Kind     ScopeKind
	Semester string
	Year     int
}

// GPAResult is a credit-weighted GPA over a filtered record set.
type GPAResult struct {
	Scope              ScopeKind `json:"scope"`
	Semester           string    `json:"semester,omitempty"`
	Year               int       `json:"year,omitempty"`
	TotalQualityPoints float64   `json:"total_quality_points"`
	TotalCredits       int       `json:"total_credits"`
	GPA                float64   `json:"gpa"`
}

// ComputeGPA computes a credit-weighted GPA over the records matching the
// scope. Only records with status "graded" and attempted credits > 0
// contribute; withdrawn, incomplete and pending records are excluded. The
// denominator is credits ATTEMPTED, so a failed course still lowers the GPA.
// An empty contribution set yields GPA 0.0, never a division error.
func ComputeGPA(records []AcademicRecord, scale *Scale, scope Scope) (GPAResult, error) {
	result := GPAResult{Scope: scope.Kind}
	if scope.Kind == ScopeSemester {
		result.Semester = scope.Semester
		result.Year = scope.Year
	}

	for _, rec := range records {
		if !inScope(rec, scope) {
			continue
		}
		if rec.Status != StatusGraded || rec.CreditsAttempted <= 0 {
			continue
		}

		qp, ok := scale.QualityPoints(rec.LetterGrade)
		if !ok {
			return GPAResult{}, fmt.Errorf("%w: letter grade %q not in scale", ErrInvalidGradeInput, rec.LetterGrade)
		}

		result.TotalQualityPoints += qp * float64(rec.CreditsAttempted)
		result.TotalCredits += rec.CreditsAttempted
	}

	if result.TotalCredits > 0 {
		result.GPA = result.TotalQualityPoints / float64(result.TotalCredits)
	}
	return result, nil
}

func inScope(rec AcademicRecord, scope Scope) bool {
	switch scope.Kind {
	case ScopeMajor:
		return rec.MajorCourse
	case ScopeSemester:
		return rec.Semester == scope.Semester && rec.Year == scope.Year
	default:
		return true
	}
}

// SemesterGPA is one term's entry in a chronological GPA breakdown.
type SemesterGPA struct {
	Semester string  `json:"semester"`
	Year     int     `json:"year"`
	GPA      float64 `json:"gpa"`
	Credits  int     `json:"credits"`
}

// SemesterBreakdown groups graded records by (semester, year) and computes
// each term's GPA, ordered chronologically. semesterOrder is the canonical
// within-year sequence (e.g. Spring < Summer < Fall < Winter); semesters
// absent from it sort after known ones, preserving determinism. Ordering is
// never lexical.
func SemesterBreakdown(records []AcademicRecord, scale *Scale, semesterOrder []string) ([]SemesterGPA, error) {
	type term struct {
		semester string
		year     int
	}

	seen := make(map[term]bool)
	var terms []term
	for _, rec := range records {
		if rec.Status != StatusGraded || rec.CreditsAttempted <= 0 {
			continue
		}
		t := term{rec.Semester, rec.Year}
		if !seen[t] {
			seen[t] = true
			terms = append(terms, t)
		}
	}

	rank := make(map[string]int, len(semesterOrder))
	for i, s := range semesterOrder {
		rank[s] = i
	}
	pos := func(semester string) int {
		if p, ok := rank[semester]; ok {
			return p
		}
		return len(semesterOrder)
	}

	sort.Slice(terms, func(i, j int) bool {
		if terms[i].year != terms[j].year {
			return terms[i].year < terms[j].year
		}
		return pos(terms[i].semester) < pos(terms[j].semester)
	})

	breakdown := make([]SemesterGPA, 0, len(terms))
	for _, t := range terms {
		res, err := ComputeGPA(records, scale, Scope{Kind: ScopeSemester, Semester: t.semester, Year: t.year})
		if err != nil {
			return nil, err
		}
		breakdown = append(breakdown, SemesterGPA{
			Semester: t.semester,
			Year:     t.year,
			GPA:      res.GPA,
			Credits:  res.TotalCredits,
		})
	}
	return breakdown, nil
}
