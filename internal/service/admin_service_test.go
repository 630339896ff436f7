package service

import (
	"context"
	"testing"
	"time"

	"learnhub/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newAdminServiceForTest() (AdminService, *MockUserRepository, *MockCourseRepository, *MockEnrollmentRepository, *MockCache) {
	userRepo := new(MockUserRepository)
	courseRepo := new(MockCourseRepository)
	enrollRepo := new(MockEnrollmentRepository)
	cacheMock := new(MockCache)
	svc := NewAdminService(userRepo, courseRepo, enrollRepo, cacheMock, time.Minute)
	return svc, userRepo, courseRepo, enrollRepo, cacheMock
}

func TestOverview(t *testing.T) {
	ctx := context.Background()

	t.Run("aggregates counts and revenue per enrollment of non-free courses", func(t *testing.T) {
		svc, userRepo, courseRepo, enrollRepo, cacheMock := newAdminServiceForTest()
		now := time.Now()

		cacheMock.On("Get", mock.Anything, mock.Anything).Return("", domain.ErrCacheMiss)
		cacheMock.On("Set", mock.Anything, mock.Anything, mock.Anything, time.Minute).Return(nil)
		userRepo.On("CountUsers", mock.Anything).Return(10, nil)
		courseRepo.On("CountCourses", mock.Anything).Return(3, 1, nil)
		courseRepo.On("GetAllCourses", mock.Anything).Return([]*domain.Course{
			{ID: "c1", Title: "Go", Price: 50, CreatedAt: now},
			{ID: "c2", Title: "SQL", Price: 30, CreatedAt: now.Add(-time.Hour)},
			{ID: "c3", Title: "Intro", IsFree: true, CreatedAt: now.Add(-2 * time.Hour)},
		}, nil)
		enrollRepo.On("GetAllEnrollments", mock.Anything).Return([]*domain.Enrollment{
			{CourseID: "c1", Paid: true, EnrolledAt: now},
			// Payment not settled yet; the course is still non-free.
			{CourseID: "c2", Paid: false, EnrolledAt: now.AddDate(0, 0, -40)},
			{CourseID: "c3", EnrolledAt: now},
		}, nil)

		resp, err := svc.Overview(ctx)
		assert.NoError(t, err)
		assert.Equal(t, 10, resp.TotalUsers)
		assert.Equal(t, 3, resp.TotalCourses)
		assert.Equal(t, 1, resp.FreeCourses)
		assert.Equal(t, 2, resp.PaidCourses)
		assert.Equal(t, 2, resp.RecentEnrollments) // the 40-day-old one falls outside the window
		assert.Equal(t, 80.0, resp.TotalRevenue)   // free c3 contributes nothing, unsettled c2 counts
		assert.Len(t, resp.RecentCourses, 3)
	})

	t.Run("serves from cache on hit", func(t *testing.T) {
		svc, userRepo, _, _, cacheMock := newAdminServiceForTest()
		cacheMock.On("Get", mock.Anything, mock.Anything).
			Return(`{"total_users":42}`, nil)

		resp, err := svc.Overview(ctx)
		assert.NoError(t, err)
		assert.Equal(t, 42, resp.TotalUsers)
		userRepo.AssertNotCalled(t, "CountUsers", mock.Anything)
	})
}

func TestEnrollmentsTrend(t *testing.T) {
	ctx := context.Background()

	t.Run("buckets by day with zeros for empty days", func(t *testing.T) {
		svc, _, _, enrollRepo, _ := newAdminServiceForTest()
		now := time.Now()
		enrollRepo.On("GetAllEnrollments", ctx).Return([]*domain.Enrollment{
			{EnrolledAt: now},
			{EnrolledAt: now},
			{EnrolledAt: now.AddDate(0, 0, -2)},
			{EnrolledAt: now.AddDate(0, 0, -30)}, // outside 7d
		}, nil)

		resp, err := svc.EnrollmentsTrend(ctx, "7d")
		assert.NoError(t, err)
		assert.Equal(t, "7d", resp.Range)
		assert.Len(t, resp.Labels, 7)
		assert.Len(t, resp.Counts, 7)

		total := 0
		for _, c := range resp.Counts {
			total += c
		}
		assert.Equal(t, 3, total)
		assert.Equal(t, 2, resp.Counts[6]) // today is the last bucket
	})

	t.Run("unknown range falls back to the 30 day window", func(t *testing.T) {
		svc, _, _, enrollRepo, _ := newAdminServiceForTest()
		enrollRepo.On("GetAllEnrollments", ctx).Return([]*domain.Enrollment{}, nil)

		resp, err := svc.EnrollmentsTrend(ctx, "1y")
		assert.NoError(t, err)
		assert.Equal(t, "30d", resp.Range)
		assert.Len(t, resp.Labels, 30)
		assert.Len(t, resp.Counts, 30)
	})
}

func TestTopCourses(t *testing.T) {
	ctx := context.Background()

	courses := []*domain.Course{
		{ID: "c1", Title: "Go", Price: 50},
		{ID: "c2", Title: "SQL", Price: 80},
		{ID: "c3", Title: "Intro", IsFree: true},
	}
	enrollments := []*domain.Enrollment{
		{CourseID: "c1", Paid: true},
		{CourseID: "c1", Paid: true},
		{CourseID: "c2", Paid: true},
		// Revenue keys on the course price, not the enrollment paid flag.
		{CourseID: "c2", Paid: false},
		{CourseID: "c3"},
	}

	t.Run("ranks by students then revenue", func(t *testing.T) {
		svc, _, courseRepo, enrollRepo, _ := newAdminServiceForTest()
		courseRepo.On("GetAllCourses", mock.Anything).Return(courses, nil)
		enrollRepo.On("GetAllEnrollments", mock.Anything).Return(enrollments, nil)

		rows, err := svc.TopCourses(ctx, 2)
		assert.NoError(t, err)
		assert.Len(t, rows, 2)
		// c1 and c2 tie on students; c2 wins on revenue.
		assert.Equal(t, "c2", rows[0].CourseID)
		assert.Equal(t, 160.0, rows[0].Revenue)
		assert.Equal(t, "c1", rows[1].CourseID)
	})

	t.Run("non-positive limit returns all", func(t *testing.T) {
		svc, _, courseRepo, enrollRepo, _ := newAdminServiceForTest()
		courseRepo.On("GetAllCourses", mock.Anything).Return(courses, nil)
		enrollRepo.On("GetAllEnrollments", mock.Anything).Return(enrollments, nil)

		rows, err := svc.TopCourses(ctx, 0)
		assert.NoError(t, err)
		assert.Len(t, rows, 3)
	})
}

func TestRecentActivity(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	t.Run("merges events newest first", func(t *testing.T) {
		svc, _, courseRepo, enrollRepo, _ := newAdminServiceForTest()
		courseRepo.On("GetAllCourses", mock.Anything).Return([]*domain.Course{
			{ID: "c1", CreatedAt: now.Add(-2 * time.Hour)},
		}, nil)
		enrollRepo.On("GetAllEnrollments", mock.Anything).Return([]*domain.Enrollment{
			{CourseID: "c1", UserID: "u1", EnrolledAt: now.Add(-time.Hour)},
			{CourseID: "c1", UserID: "u2", EnrolledAt: now},
		}, nil)

		events, err := svc.RecentActivity(ctx, 10)
		assert.NoError(t, err)
		assert.Len(t, events, 3)
		assert.Equal(t, "enrollment_created", events[0].Type)
		assert.Equal(t, "u2", events[0].UserID)
		assert.Equal(t, "course_created", events[2].Type)
	})

	t.Run("events without timestamps sort last", func(t *testing.T) {
		svc, _, courseRepo, enrollRepo, _ := newAdminServiceForTest()
		courseRepo.On("GetAllCourses", mock.Anything).Return([]*domain.Course{}, nil)
		enrollRepo.On("GetAllEnrollments", mock.Anything).Return([]*domain.Enrollment{
			{CourseID: "c1", UserID: "u1"}, // zero EnrolledAt
			{CourseID: "c1", UserID: "u2", EnrolledAt: now},
		}, nil)

		events, err := svc.RecentActivity(ctx, 10)
		assert.NoError(t, err)
		assert.Equal(t, "u2", events[0].UserID)
	})
}
