package domain

import "time"

// Course represents a course in the catalog.
// Relationships are carried as foreign-key identifiers, not object graphs.
type Course struct {
	ID           string
	Title        string
	Description  string
	Price        float64
	IsFree       bool
	InstructorID string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time
}

// NewCourse creates a new Course instance
func NewCourse(title, description string, price float64, isFree bool, instructorID string) *Course {
	now := time.Now()
	return &Course{
		Title:        title,
		Description:  description,
		Price:        price,
		IsFree:       isFree,
		InstructorID: instructorID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Validate validates the course
func (c *Course) Validate() error {
	var errs ValidationErrors
	if c.Title == "" {
		errs = append(errs, NewMissingFieldError("title"))
	}
	if c.Price < 0 {
		errs = append(errs, ValidationError{Field: "price", Message: "must not be negative"})
	}
	if !c.IsFree && c.Price == 0 {
		errs = append(errs, ValidationError{Field: "price", Message: "paid course must have a positive price"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}
