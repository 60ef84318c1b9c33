package service

import (
	"context"
	"testing"
	"time"

	"comunidad/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskService_CreateTask_ComputesDueAt(t *testing.T) {
	t.Parallel()
	loc := time.FixedZone("UTC-5", -5*3600)
	repo := &taskRepoStub{}
	svc := NewTaskService(repo, loc)

	task, err := svc.CreateTask(context.Background(), CreateTaskInput{
		UserID: 1, Title: "Cita médica", Date: "2024-06-01", Time: "09:30",
	})
	require.NoError(t, err)
	assert.True(t, task.DueAt.Equal(time.Date(2024, 6, 1, 14, 30, 0, 0, time.UTC)))
	assert.Equal(t, "2024-06-01", task.Date)
	assert.Len(t, repo.created, 1)
}

func TestTaskService_CreateTask_Validation(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		in   CreateTaskInput
	}{
		{"missing title", CreateTaskInput{UserID: 1, Date: "2024-06-01", Time: "09:30"}},
		{"bad date", CreateTaskInput{UserID: 1, Title: "x", Date: "2024-13-01", Time: "09:30"}},
		{"bad time", CreateTaskInput{UserID: 1, Title: "x", Date: "2024-06-01", Time: "25:00"}},
		{"missing user", CreateTaskInput{Title: "x", Date: "2024-06-01", Time: "09:30"}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			repo := &taskRepoStub{}
			_, err := NewTaskService(repo, time.UTC).CreateTask(context.Background(), tt.in)
			assertValidationError(t, err)
			assert.Empty(t, repo.created)
		})
	}
}

func TestTaskService_ListUpcoming_UsesClock(t *testing.T) {
	t.Parallel()
	repo := &taskRepoStub{}
	svc := NewTaskService(repo, time.UTC)
	fixed := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	_, err := svc.ListUpcoming(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, fixed, repo.listedAt)

	_, err = svc.ListUpcoming(context.Background(), 0)
	assertValidationError(t, err)
}

func TestTaskService_DeleteTask(t *testing.T) {
	t.Parallel()
	repo := &taskRepoStub{deleteFn: func(_ context.Context, id uint) error {
		return models.NewNotFoundError("Task", id)
	}}
	svc := NewTaskService(repo, nil)

	assertAppErrorCode(t, svc.DeleteTask(context.Background(), 3), models.CodeNotFound)
	assertValidationError(t, svc.DeleteTask(context.Background(), 0))
}
