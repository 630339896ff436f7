package domain

import "context"

// Repositories return (nil, nil) when a record is not found; callers decide
// whether absence is an error.

// QuizRepository defines the interface for quiz persistence.
type QuizRepository interface {
	// GetQuizByID retrieves a quiz with its questions and options.
	GetQuizByID(ctx context.Context, id string) (*Quiz, error)

	// GetQuizzesByCourse returns all quizzes for a course (without question trees).
	GetQuizzesByCourse(ctx context.Context, courseID string) ([]*Quiz, error)

	// SaveQuiz persists a quiz together with its questions and options.
	SaveQuiz(ctx context.Context, quiz *Quiz) error
}

// AttemptRepository defines the interface for quiz-attempt persistence.
type AttemptRepository interface {
	// CountAttempts counts all of a user's attempts for a quiz, completed or not.
	CountAttempts(ctx context.Context, userID, quizID string) (int, error)

	// CreateAttempt persists a new open attempt.
	CreateAttempt(ctx context.Context, attempt *QuizAttempt) error

	// GetAttemptByID retrieves an attempt together with its answers.
	GetAttemptByID(ctx context.Context, id string) (*QuizAttempt, error)

	// UpsertAnswer inserts the answer or replaces an existing answer for the
	// same (attempt, question) pair. Last answer wins.
	UpsertAnswer(ctx context.Context, answer *QuizAnswer) error

	// FinalizeAttempt persists the terminal state of a completed attempt.
	FinalizeAttempt(ctx context.Context, attempt *QuizAttempt) error

	// GetAttemptsByUserAndQuiz lists a user's attempts for a quiz, newest first.
	GetAttemptsByUserAndQuiz(ctx context.Context, userID, quizID string) ([]*QuizAttempt, error)
}

// CertificateRepository defines the interface for certificate persistence.
type CertificateRepository interface {
	// CreateCertificate persists a new certificate. A storage-level
	// uniqueness violation on (user, course) or on the certificate number is
	// surfaced as CodeCertificateAlreadyExists.
	CreateCertificate(ctx context.Context, cert *Certificate) error

	GetCertificateByID(ctx context.Context, id string) (*Certificate, error)
	GetCertificateByNumber(ctx context.Context, number string) (*Certificate, error)
	GetCertificateByUserAndCourse(ctx context.Context, userID, courseID string) (*Certificate, error)

	// UpdateCertificate persists status/metadata mutations (revocation).
	UpdateCertificate(ctx context.Context, cert *Certificate) error
}

// CourseRepository defines the interface for course persistence.
type CourseRepository interface {
	SaveCourse(ctx context.Context, course *Course) error
	GetCourseByID(ctx context.Context, id string) (*Course, error)
	GetAllCourses(ctx context.Context) ([]*Course, error)
	CountCourses(ctx context.Context) (total int, free int, err error)
}

// EnrollmentRepository defines the interface for enrollment persistence.
type EnrollmentRepository interface {
	// CreateEnrollment persists a new enrollment. A uniqueness violation on
	// (user, course) is surfaced as CodeAlreadyEnrolled.
	CreateEnrollment(ctx context.Context, enrollment *Enrollment) error

	GetEnrollmentByUserAndCourse(ctx context.Context, userID, courseID string) (*Enrollment, error)
	GetEnrollmentsByUser(ctx context.Context, userID string) ([]*Enrollment, error)

	// GetAllEnrollments fetches the full enrollment table for aggregation.
	GetAllEnrollments(ctx context.Context) ([]*Enrollment, error)
}

// UserRepository defines the interface for user persistence.
type UserRepository interface {
	GetUserByID(ctx context.Context, id string) (*User, error)
	GetUserByGoogleID(ctx context.Context, googleID string) (*User, error)
	CreateUser(ctx context.Context, user *User) error
	UpdateUser(ctx context.Context, user *User) error
	CountUsers(ctx context.Context) (int, error)
}

// TransactionManager runs a function within a storage transaction carried on
// the context.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
