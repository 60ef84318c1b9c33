package repository

import (
	"context"
	"time"

	"comunidad/internal/models"

	"gorm.io/gorm"
)

// TaskRepository defines persistence operations for scheduled tasks.
type TaskRepository interface {
	Create(ctx context.Context, task *models.Task) error
	ListUpcoming(ctx context.Context, userID uint, now time.Time) ([]*models.Task, error)
	Delete(ctx context.Context, id uint) error
}

type taskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) Create(ctx context.Context, task *models.Task) error {
	return writeError(r.db.WithContext(ctx).Create(task).Error, "Task")
}

// ListUpcoming returns the user's tasks due strictly after now, soonest first.
func (r *taskRepository) ListUpcoming(ctx context.Context, userID uint, now time.Time) ([]*models.Task, error) {
	var tasks []*models.Task
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND due_at > ?", userID, now).
		Order("due_at ASC").
		Find(&tasks).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return tasks, nil
}

func (r *taskRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Task{}, id)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Task", id)
	}
	return nil
}
