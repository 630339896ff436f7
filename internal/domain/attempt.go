package domain

import "time"

// QuizAttempt is one user's run through a quiz. It is OPEN from StartAttempt
// until CompleteAttempt finalizes it; a finalized attempt is never mutated.
type QuizAttempt struct {
	ID               string
	UserID           string
	QuizID           string
	AttemptNumber    int
	TotalQuestions   int // snapshotted from the quiz at creation
	CorrectAnswers   int
	ScorePercentage  float64
	Completed        bool
	Passed           bool
	StartedAt        time.Time
	CompletedAt      *time.Time
	TimeTakenMinutes int
	Answers          []*QuizAnswer
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// NewQuizAttempt creates an open attempt for the given user and quiz.
func NewQuizAttempt(userID, quizID string, attemptNumber, totalQuestions int) *QuizAttempt {
	now := time.Now()
	return &QuizAttempt{
		UserID:         userID,
		QuizID:         quizID,
		AttemptNumber:  attemptNumber,
		TotalQuestions: totalQuestions,
		StartedAt:      now,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// Score computes the score percentage from the recorded answers.
// A quiz with zero questions scores zero; never divides by zero.
func (a *QuizAttempt) Score() (correct int, percentage float64) {
	for _, ans := range a.Answers {
		if ans.IsCorrect {
			correct++
		}
	}
	if a.TotalQuestions == 0 {
		return correct, 0
	}
	return correct, float64(correct) / float64(a.TotalQuestions) * 100
}

// Finalize marks the attempt completed with the given score and pass state.
func (a *QuizAttempt) Finalize(correct int, percentage float64, passed bool, completedAt time.Time) {
	a.CorrectAnswers = correct
	a.ScorePercentage = percentage
	a.Passed = passed
	a.Completed = true
	a.CompletedAt = &completedAt
	a.TimeTakenMinutes = int(completedAt.Sub(a.StartedAt).Minutes())
	a.UpdatedAt = completedAt
}

// QuizAnswer records the option a user selected for one question of an
// attempt. IsCorrect is denormalized at submission time from the selected
// option's correctness flag.
type QuizAnswer struct {
	ID               string
	AttemptID        string
	QuestionID       string
	SelectedOptionID string // empty if unanswered
	IsCorrect        bool
	AnsweredAt       time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
