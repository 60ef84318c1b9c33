package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"comunidad/internal/models"
	"comunidad/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errStore = errors.New("store unavailable")

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	createFn        func(context.Context, *models.Post) error
	getByIDFn       func(context.Context, uint) (*models.Post, error)
	listFn          func(context.Context) ([]*models.Post, error)
	existsFn        func(context.Context, uint) (bool, error)
	deleteCascadeFn func(context.Context, uint) (*repository.CascadeResult, error)
	calls           int
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	s.calls++
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	s.calls++
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) List(ctx context.Context) ([]*models.Post, error) {
	s.calls++
	return s.listFn(ctx)
}
func (s *postRepoStub) Exists(ctx context.Context, id uint) (bool, error) {
	s.calls++
	return s.existsFn(ctx, id)
}
func (s *postRepoStub) DeleteCascade(ctx context.Context, id uint) (*repository.CascadeResult, error) {
	s.calls++
	return s.deleteCascadeFn(ctx, id)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn:  func(_ context.Context, _ *models.Post) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Post, error) { return &models.Post{ID: id}, nil },
		listFn:    func(_ context.Context) ([]*models.Post, error) { return nil, nil },
		existsFn:  func(_ context.Context, _ uint) (bool, error) { return true, nil },
		deleteCascadeFn: func(_ context.Context, id uint) (*repository.CascadeResult, error) {
			return &repository.CascadeResult{PostID: id}, nil
		},
	}
}

// replyRepoStub is a stub for repository.ReplyRepository.
type replyRepoStub struct {
	createFn     func(context.Context, *models.Reply) error
	listByPostFn func(context.Context, uint) ([]*models.Reply, error)
	calls        int
}

func (s *replyRepoStub) Create(ctx context.Context, reply *models.Reply) error {
	s.calls++
	return s.createFn(ctx, reply)
}
func (s *replyRepoStub) ListByPost(ctx context.Context, postID uint) ([]*models.Reply, error) {
	s.calls++
	return s.listByPostFn(ctx, postID)
}

func noopReplyRepo() *replyRepoStub {
	return &replyRepoStub{
		createFn:     func(_ context.Context, _ *models.Reply) error { return nil },
		listByPostFn: func(_ context.Context, _ uint) ([]*models.Reply, error) { return nil, nil },
	}
}

type favoriteKey struct{ userID, postID uint }

// favoriteRepoStub keeps favorites in memory.
type favoriteRepoStub struct {
	set   map[favoriteKey]bool
	err   error
	calls int
}

func newFavoriteRepoStub() *favoriteRepoStub {
	return &favoriteRepoStub{set: map[favoriteKey]bool{}}
}

func (s *favoriteRepoStub) Toggle(_ context.Context, userID, postID uint) (bool, error) {
	s.calls++
	if s.err != nil {
		return false, s.err
	}
	key := favoriteKey{userID, postID}
	if s.set[key] {
		delete(s.set, key)
		return false, nil
	}
	s.set[key] = true
	return true, nil
}

func (s *favoriteRepoStub) ListByUser(_ context.Context, userID uint) ([]*models.Post, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	var posts []*models.Post
	for key := range s.set {
		if key.userID == userID {
			posts = append(posts, &models.Post{ID: key.postID})
		}
	}
	return posts, nil
}

// taskRepoStub is a stub for repository.TaskRepository.
type taskRepoStub struct {
	created  []*models.Task
	listedAt time.Time
	deleteFn func(context.Context, uint) error
}

func (s *taskRepoStub) Create(_ context.Context, task *models.Task) error {
	task.ID = uint(len(s.created) + 1)
	s.created = append(s.created, task)
	return nil
}
func (s *taskRepoStub) ListUpcoming(_ context.Context, _ uint, now time.Time) ([]*models.Task, error) {
	s.listedAt = now
	return s.created, nil
}
func (s *taskRepoStub) Delete(ctx context.Context, id uint) error {
	if s.deleteFn != nil {
		return s.deleteFn(ctx, id)
	}
	return nil
}

// medicationRepoStub is a stub for repository.MedicationRepository.
type medicationRepoStub struct {
	medications map[uint]*models.Medication
	err         error
	calls       int
}

func newMedicationRepoStub(meds ...*models.Medication) *medicationRepoStub {
	s := &medicationRepoStub{medications: map[uint]*models.Medication{}}
	for _, m := range meds {
		s.medications[m.ID] = m
	}
	return s
}

func (s *medicationRepoStub) Create(_ context.Context, m *models.Medication) error {
	s.calls++
	m.ID = uint(len(s.medications) + 1)
	s.medications[m.ID] = m
	return s.err
}
func (s *medicationRepoStub) GetByID(_ context.Context, id uint) (*models.Medication, error) {
	s.calls++
	m, ok := s.medications[id]
	if !ok {
		return nil, models.NewNotFoundError("Medication", id)
	}
	return m, nil
}
func (s *medicationRepoStub) ListByUser(_ context.Context, _ uint) ([]*models.Medication, error) {
	s.calls++
	return nil, s.err
}
func (s *medicationRepoStub) Delete(_ context.Context, id uint) error {
	s.calls++
	if _, ok := s.medications[id]; !ok {
		return models.NewNotFoundError("Medication", id)
	}
	delete(s.medications, id)
	return nil
}
func (s *medicationRepoStub) ToggleSuppliedDate(_ context.Context, id uint, date string) (models.SuppliedDates, bool, error) {
	s.calls++
	if s.err != nil {
		return nil, false, s.err
	}
	m, ok := s.medications[id]
	if !ok {
		return nil, false, models.NewNotFoundError("Medication", id)
	}
	next, added, err := m.SuppliedDates.Toggle(date)
	if err != nil {
		return nil, false, models.NewValidationError(err.Error())
	}
	m.SuppliedDates = next
	return next, added, nil
}

// userRepoStub keeps users in memory.
type userRepoStub struct {
	users []*models.User
	err   error
}

func (s *userRepoStub) GetByID(_ context.Context, id uint) (*models.User, error) {
	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, models.NewNotFoundError("User", id)
}
func (s *userRepoStub) GetByEmail(_ context.Context, email string) (*models.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}
func (s *userRepoStub) GetByUsername(_ context.Context, username string) (*models.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	for _, u := range s.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}
func (s *userRepoStub) Create(_ context.Context, user *models.User) error {
	for _, u := range s.users {
		if u.Username == user.Username {
			return models.NewConflictError("User already exists")
		}
	}
	user.ID = uint(len(s.users) + 1)
	s.users = append(s.users, user)
	return nil
}
func (s *userRepoStub) List(_ context.Context) ([]models.User, error) {
	out := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, *u)
	}
	return out, nil
}

func assertAppErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, code, appErr.Code)
}

// assertValidationError asserts that err is an AppError with code VALIDATION_ERROR.
func assertValidationError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, models.CodeValidation)
}
