package service

import (
	"context"
	"strings"
	"time"

	"comunidad/internal/models"
	"comunidad/internal/repository"
	"comunidad/internal/validation"
)

// Layouts of the date and time fields shared by tasks and medications.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

type TaskService struct {
	taskRepo repository.TaskRepository
	location *time.Location
	now      func() time.Time
}

type CreateTaskInput struct {
	UserID      uint   `json:"userId" validate:"required"`
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"max=5000"`
	Date        string `json:"date" validate:"required,datetime=2006-01-02"`
	Time        string `json:"time" validate:"required,datetime=15:04"`
}

// NewTaskService interprets task dates in loc; nil means time.Local.
func NewTaskService(taskRepo repository.TaskRepository, loc *time.Location) *TaskService {
	if loc == nil {
		loc = time.Local
	}
	return &TaskService{taskRepo: taskRepo, location: loc, now: time.Now}
}

func (s *TaskService) CreateTask(ctx context.Context, in CreateTaskInput) (*models.Task, error) {
	in.Title = strings.TrimSpace(in.Title)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	dueAt, err := time.ParseInLocation(DateLayout+" "+TimeLayout, in.Date+" "+in.Time, s.location)
	if err != nil {
		return nil, models.NewValidationError("invalid date or time")
	}

	task := &models.Task{
		UserID:      in.UserID,
		Title:       in.Title,
		Description: in.Description,
		Date:        in.Date,
		Time:        in.Time,
		DueAt:       dueAt,
	}
	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// ListUpcoming returns the user's tasks that are still in the future.
func (s *TaskService) ListUpcoming(ctx context.Context, userID uint) ([]*models.Task, error) {
	if userID == 0 {
		return nil, models.NewValidationError("userId is required")
	}
	return s.taskRepo.ListUpcoming(ctx, userID, s.now())
}

func (s *TaskService) DeleteTask(ctx context.Context, taskID uint) error {
	if taskID == 0 {
		return models.NewValidationError("taskId is required")
	}
	return s.taskRepo.Delete(ctx, taskID)
}
