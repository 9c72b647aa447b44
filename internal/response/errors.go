package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Authentication ────────────────────────────────────────────────
	ErrInvalidCredentials ErrCode = "INVALID_CREDENTIALS"
	ErrSessionActive      ErrCode = "SESSION_ALREADY_ACTIVE"
	ErrSessionInvalidated ErrCode = "SESSION_INVALIDATED"
	ErrTokenRequired      ErrCode = "TOKEN_REQUIRED"
	ErrTokenInvalid       ErrCode = "TOKEN_INVALID"
	ErrTokenExpired       ErrCode = "TOKEN_EXPIRED"

	// ─── Authorization ─────────────────────────────────────────────────
	ErrForbidden           ErrCode = "FORBIDDEN"
	ErrStudentAccessOnly   ErrCode = "STUDENT_ACCESS_ONLY"
	ErrProfessorAccessOnly ErrCode = "PROFESSOR_ACCESS_ONLY"
	ErrNotCourseOwner      ErrCode = "NOT_COURSE_OWNER"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidID      ErrCode = "INVALID_ID"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound         ErrCode = "NOT_FOUND"
	ErrConflict         ErrCode = "CONFLICT"
	ErrDependencyExists ErrCode = "DEPENDENCY_EXISTS"

	// ─── Registration ──────────────────────────────────────────────────
	ErrCourseFull        ErrCode = "COURSE_FULL"
	ErrAlreadyRegistered ErrCode = "ALREADY_REGISTERED"
	ErrNotRegistered     ErrCode = "NOT_REGISTERED"

	// ─── Grading ───────────────────────────────────────────────────────
	ErrInvalidGradeInput    ErrCode = "INVALID_GRADE_INPUT"
	ErrInvalidGradingConfig ErrCode = "INVALID_GRADING_CONFIG"
	ErrGradeNotDraft        ErrCode = "GRADE_NOT_DRAFT"
	ErrNotPublished         ErrCode = "NOT_PUBLISHED"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Authentication ────────────────────────────────────────────────
	case ErrInvalidCredentials:
		return "Email/student number or password is incorrect."
	case ErrSessionActive:
		return "You are already logged in on another device."
	case ErrSessionInvalidated:
		return "Your session has ended. Please log in again."
	case ErrTokenRequired:
		return "An authentication token is required."
	case ErrTokenInvalid:
		return "The authentication token is invalid."
	case ErrTokenExpired:
		return "The authentication token has expired."

	// ─── Authorization ─────────────────────────────────────────────────
	case ErrForbidden:
		return "You do not have permission to access this resource."
	case ErrStudentAccessOnly:
		return "This resource is restricted to students."
	case ErrProfessorAccessOnly:
		return "This resource is restricted to professors."
	case ErrNotCourseOwner:
		return "You are not the professor of this course."

	// ─── Validation ────────────────────────────────────────────────────
	case ErrValidation:
		return "Validation failed. Please check your input."
	case ErrInvalidID:
		return "Invalid ID format."
	case ErrInvalidPayload:
		return "Invalid request payload."

	// ─── Resources ─────────────────────────────────────────────────────
	case ErrNotFound:
		return "Resource not found."
	case ErrConflict:
		return "Resource already exists."
	case ErrDependencyExists:
		return "This record cannot be deleted because other records depend on it."

	// ─── Registration ──────────────────────────────────────────────────
	case ErrCourseFull:
		return "This course has reached its maximum capacity."
	case ErrAlreadyRegistered:
		return "You are already registered for this course."
	case ErrNotRegistered:
		return "You are not registered for this course."

	// ─── Grading ───────────────────────────────────────────────────────
	case ErrInvalidGradeInput:
		return "The grade input is invalid."
	case ErrInvalidGradingConfig:
		return "The course grading configuration is invalid."
	case ErrGradeNotDraft:
		return "This grade is not in DRAFT status."
	case ErrNotPublished:
		return "This resource has not been published."

	// ─── Rate Limiting ─────────────────────────────────────────────────
	case ErrRateLimitExceeded:
		return "Too many requests. Please try again later."

	// ─── Server ────────────────────────────────────────────────────────
	case ErrInternal:
		return "An internal server error occurred."
	default:
		return "An unexpected error occurred."
	}
}
