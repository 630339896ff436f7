package service

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"learnhub/internal/cache"
	"learnhub/internal/domain"
	"learnhub/internal/dto"
	"learnhub/internal/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const recentWindowDays = 30

// AdminService aggregates platform statistics for the admin dashboard.
type AdminService interface {
	// Overview returns the dashboard summary in one call.
	Overview(ctx context.Context) (*dto.OverviewResponse, error)

	// EnrollmentsTrend returns a day-bucketed enrollment series for the
	// range "7d", "30d" or "90d"; any other key means the default 30 day
	// window. Empty days carry a zero.
	EnrollmentsTrend(ctx context.Context, rangeKey string) (*dto.TrendResponse, error)

	// TopCourses ranks courses by student count, then revenue. A
	// non-positive limit returns all courses.
	TopCourses(ctx context.Context, limit int) ([]*dto.TopCourseRow, error)

	// RecentActivity merges enrollment and course creation events, newest
	// first.
	RecentActivity(ctx context.Context, limit int) ([]*dto.ActivityEvent, error)
}

type adminService struct {
	userRepo   domain.UserRepository
	courseRepo domain.CourseRepository
	enrollRepo domain.EnrollmentRepository
	cacheAdpt  domain.Cache
	cacheTTL   time.Duration
}

// NewAdminService creates a new AdminService.
func NewAdminService(
	userRepo domain.UserRepository,
	courseRepo domain.CourseRepository,
	enrollRepo domain.EnrollmentRepository,
	cacheAdpt domain.Cache,
	cacheTTL time.Duration,
) AdminService {
	return &adminService{
		userRepo:   userRepo,
		courseRepo: courseRepo,
		enrollRepo: enrollRepo,
		cacheAdpt:  cacheAdpt,
		cacheTTL:   cacheTTL,
	}
}

var trendRanges = map[string]int{
	"7d":  7,
	"30d": 30,
	"90d": 90,
}

func (s *adminService) Overview(ctx context.Context) (*dto.OverviewResponse, error) {
	key := cache.GenerateCacheKey("admin", "overview", "all")
	if cached, err := s.cacheAdpt.Get(ctx, key); err == nil {
		var resp dto.OverviewResponse
		if err := json.Unmarshal([]byte(cached), &resp); err == nil {
			return &resp, nil
		}
	} else if err != domain.ErrCacheMiss {
		logger.Get().Warn("overview cache read failed", zap.Error(err))
	}

	var (
		totalUsers  int
		totalCourse int
		freeCourses int
		courses     []*domain.Course
		enrollments []*domain.Enrollment
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		totalUsers, err = s.userRepo.CountUsers(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		totalCourse, freeCourses, err = s.courseRepo.CountCourses(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		courses, err = s.courseRepo.GetAllCourses(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		enrollments, err = s.enrollRepo.GetAllEnrollments(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, domain.NewInternalError("failed to aggregate overview", err)
	}

	courseByID := make(map[string]*domain.Course, len(courses))
	for _, course := range courses {
		courseByID[course.ID] = course
	}

	// Revenue counts the course price once per enrollment of a non-free
	// course, regardless of the enrollment's payment state.
	cutoff := time.Now().AddDate(0, 0, -recentWindowDays)
	recentEnrollments := 0
	totalRevenue := 0.0
	for _, enrollment := range enrollments {
		if enrollment.EnrolledAt.After(cutoff) {
			recentEnrollments++
		}
		if course, ok := courseByID[enrollment.CourseID]; ok && !course.IsFree {
			totalRevenue += course.Price
		}
	}

	// GetAllCourses is newest first.
	recentCourses := make([]dto.CourseSummary, 0, 5)
	for _, course := range courses {
		if len(recentCourses) == 5 {
			break
		}
		recentCourses = append(recentCourses, dto.CourseSummary{
			ID:        course.ID,
			Title:     course.Title,
			Price:     course.Price,
			IsFree:    course.IsFree,
			CreatedAt: course.CreatedAt,
		})
	}

	resp := &dto.OverviewResponse{
		TotalUsers:        totalUsers,
		TotalCourses:      totalCourse,
		FreeCourses:       freeCourses,
		PaidCourses:       totalCourse - freeCourses,
		RecentEnrollments: recentEnrollments,
		TotalRevenue:      totalRevenue,
		RecentCourses:     recentCourses,
	}

	if payload, err := json.Marshal(resp); err == nil {
		if err := s.cacheAdpt.Set(ctx, key, string(payload), s.cacheTTL); err != nil {
			logger.Get().Warn("overview cache write failed", zap.Error(err))
		}
	}

	return resp, nil
}

func (s *adminService) EnrollmentsTrend(ctx context.Context, rangeKey string) (*dto.TrendResponse, error) {
	days, ok := trendRanges[rangeKey]
	if !ok {
		rangeKey, days = "30d", 30
	}

	enrollments, err := s.enrollRepo.GetAllEnrollments(ctx)
	if err != nil {
		return nil, domain.NewInternalError("failed to load enrollments", err)
	}

	today := time.Now().Truncate(24 * time.Hour)
	start := today.AddDate(0, 0, -(days - 1))

	counts := make(map[string]int, days)
	for _, enrollment := range enrollments {
		day := enrollment.EnrolledAt.Truncate(24 * time.Hour)
		if day.Before(start) || day.After(today) {
			continue
		}
		counts[day.Format("2006-01-02")]++
	}

	resp := &dto.TrendResponse{
		Range:  rangeKey,
		Labels: make([]string, 0, days),
		Counts: make([]int, 0, days),
	}
	for d := start; !d.After(today); d = d.AddDate(0, 0, 1) {
		label := d.Format("2006-01-02")
		resp.Labels = append(resp.Labels, label)
		resp.Counts = append(resp.Counts, counts[label])
	}
	return resp, nil
}

func (s *adminService) TopCourses(ctx context.Context, limit int) ([]*dto.TopCourseRow, error) {
	var (
		courses     []*domain.Course
		enrollments []*domain.Enrollment
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		courses, err = s.courseRepo.GetAllCourses(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		enrollments, err = s.enrollRepo.GetAllEnrollments(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, domain.NewInternalError("failed to load top courses", err)
	}

	rows := make(map[string]*dto.TopCourseRow, len(courses))
	courseByID := make(map[string]*domain.Course, len(courses))
	for _, course := range courses {
		rows[course.ID] = &dto.TopCourseRow{CourseID: course.ID, Title: course.Title}
		courseByID[course.ID] = course
	}

	for _, enrollment := range enrollments {
		row, ok := rows[enrollment.CourseID]
		if !ok {
			// Enrollment into a since-deleted course.
			continue
		}
		row.StudentCount++
		if course := courseByID[enrollment.CourseID]; !course.IsFree {
			row.Revenue += course.Price
		}
	}

	ranked := make([]*dto.TopCourseRow, 0, len(rows))
	for _, row := range rows {
		ranked = append(ranked, row)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].StudentCount != ranked[j].StudentCount {
			return ranked[i].StudentCount > ranked[j].StudentCount
		}
		if ranked[i].Revenue != ranked[j].Revenue {
			return ranked[i].Revenue > ranked[j].Revenue
		}
		return ranked[i].CourseID < ranked[j].CourseID
	})

	if limit > 0 && limit < len(ranked) {
		ranked = ranked[:limit]
	}
	return ranked, nil
}

func (s *adminService) RecentActivity(ctx context.Context, limit int) ([]*dto.ActivityEvent, error) {
	var (
		courses     []*domain.Course
		enrollments []*domain.Enrollment
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		courses, err = s.courseRepo.GetAllCourses(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		enrollments, err = s.enrollRepo.GetAllEnrollments(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, domain.NewInternalError("failed to load recent activity", err)
	}

	events := make([]*dto.ActivityEvent, 0, len(courses)+len(enrollments))
	for _, enrollment := range enrollments {
		at := enrollment.EnrolledAt
		events = append(events, &dto.ActivityEvent{
			Type:       "enrollment_created",
			CourseID:   enrollment.CourseID,
			UserID:     enrollment.UserID,
			OccurredAt: &at,
		})
	}
	for _, course := range courses {
		at := course.CreatedAt
		events = append(events, &dto.ActivityEvent{
			Type:       "course_created",
			CourseID:   course.ID,
			OccurredAt: &at,
		})
	}

	// Newest first; events without a timestamp sink to the end.
	sort.SliceStable(events, func(i, j int) bool {
		ti, tj := events[i].OccurredAt, events[j].OccurredAt
		if ti == nil {
			return false
		}
		if tj == nil {
			return true
		}
		return ti.After(*tj)
	})

	if limit <= 0 {
		limit = 20
	}
	if limit < len(events) {
		events = events[:limit]
	}
	return events, nil
}
