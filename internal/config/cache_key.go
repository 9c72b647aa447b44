package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// StudentSessionKey returns the cache key for a student's login session
func (r *CacheKeyStruct) StudentSessionKey(studentID int) string {
	return fmt.Sprintf("login:student:%d", studentID)
}

// CourseScaleKey returns the cache key for a course's grading scale payload
func (r *CacheKeyStruct) CourseScaleKey(courseID int) string {
	return fmt.Sprintf("course:%d:grading_scale", courseID)
}

// CourseStatsKey returns the cache key for a course's computed grade statistics
func (r *CacheKeyStruct) CourseStatsKey(courseID int) string {
	return fmt.Sprintf("course:%d:grade_stats", courseID)
}

var CacheKey = NewCacheKeyStruct()
