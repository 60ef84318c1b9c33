// Package seed provides helpers to create demo and test data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"comunidad/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DefaultPassword is the plain-text password of every generated user.
const DefaultPassword = "password123"

var medicationNames = []string{
	"Ibuprofeno", "Paracetamol", "Omeprazol", "Metformina", "Enalapril",
	"Atorvastatina", "Levotiroxina", "Amoxicilina", "Losartán", "Vitamina D",
}

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by the demo preset, fixtures and tests.
type Factory struct {
	db    *gorm.DB
	faker *gofakeit.Faker
	// PasswordCost is the bcrypt cost used for generated users.
	PasswordCost int
	// Location interprets task dates; defaults to time.Local.
	Location *time.Location

	seq atomic.Uint64
}

// NewFactory creates a Factory bound to db. A zero seed draws a random one.
func NewFactory(db *gorm.DB, seed int64) *Factory {
	return &Factory{
		db:           db,
		faker:        gofakeit.New(seed),
		PasswordCost: bcrypt.DefaultCost,
		Location:     time.Local,
	}
}

// WithDB returns a copy of the factory that writes through db, typically a
// transaction.
func (f *Factory) WithDB(db *gorm.DB) *Factory {
	clone := &Factory{db: db, faker: f.faker, PasswordCost: f.PasswordCost, Location: f.Location}
	clone.seq.Store(f.seq.Load())
	return clone
}

func (f *Factory) hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), f.PasswordCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

// BuildUser constructs an unsaved user with a unique username and email.
// The Password field holds the plain-text DefaultPassword.
func (f *Factory) BuildUser() *models.User {
	n := f.seq.Add(1)
	name := strings.ToLower(f.faker.Username())
	if len(name) > 40 {
		name = name[:40]
	}
	username := fmt.Sprintf("%s%d", name, n)
	return &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: DefaultPassword,
	}
}

// CreateUser constructs and persists a sample user. Overrides run before the
// password is hashed, so they may set a plain-text password.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	user := f.BuildUser()
	for _, override := range overrides {
		override(user)
	}

	hashed, err := f.hash(user.Password)
	if err != nil {
		return nil, err
	}
	user.Password = hashed

	if err := f.db.Create(user).Error; err != nil {
		return nil, fmt.Errorf("create user %s: %w", user.Username, err)
	}
	return user, nil
}

// CreatePost constructs and persists a sample post for the given user.
func (f *Factory) CreatePost(user *models.User, overrides ...func(*models.Post)) (*models.Post, error) {
	post := &models.Post{
		UserID:  user.ID,
		Content: f.faker.Paragraph(1, 3, 12, "\n"),
	}
	for _, override := range overrides {
		override(post)
	}

	if err := f.db.Create(post).Error; err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return post, nil
}

// CreateReply constructs and persists a reply by user on post.
func (f *Factory) CreateReply(user *models.User, post *models.Post, overrides ...func(*models.Reply)) (*models.Reply, error) {
	reply := &models.Reply{
		PostID:  post.ID,
		UserID:  user.ID,
		Content: f.faker.Sentence(10),
	}
	for _, override := range overrides {
		override(reply)
	}

	if err := f.db.Create(reply).Error; err != nil {
		return nil, fmt.Errorf("create reply: %w", err)
	}
	return reply, nil
}

// CreateFavorite persists a favorite of post by user.
func (f *Factory) CreateFavorite(user *models.User, post *models.Post) error {
	if err := f.db.Create(&models.Favorite{UserID: user.ID, PostID: post.ID}).Error; err != nil {
		return fmt.Errorf("create favorite: %w", err)
	}
	return nil
}

// CreateTask persists a task for user due between one and thirty days from now.
func (f *Factory) CreateTask(user *models.User, overrides ...func(*models.Task)) (*models.Task, error) {
	due := time.Now().In(f.Location).
		AddDate(0, 0, f.faker.Number(1, 30)).
		Truncate(time.Minute)
	task := &models.Task{
		UserID:      user.ID,
		Title:       f.faker.Sentence(4),
		Description: f.faker.Sentence(12),
	}
	for _, override := range overrides {
		override(task)
	}
	if task.Date == "" || task.Time == "" {
		task.Date = due.Format("2006-01-02")
		task.Time = fmt.Sprintf("%02d:%02d", f.faker.Number(7, 21), 15*f.faker.Number(0, 3))
	}
	dueAt, err := time.ParseInLocation("2006-01-02 15:04", task.Date+" "+task.Time, f.Location)
	if err != nil {
		return nil, fmt.Errorf("task due date: %w", err)
	}
	task.DueAt = dueAt

	if err := f.db.Create(task).Error; err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	return task, nil
}

// CreateMedication persists a month-long medication schedule for user with a
// few doses already supplied.
func (f *Factory) CreateMedication(user *models.User, overrides ...func(*models.Medication)) (*models.Medication, error) {
	today := time.Now().In(f.Location)
	start := today.AddDate(0, 0, -f.faker.Number(3, 10))

	supplied := models.SuppliedDates{}
	for d := start; d.Before(today); d = d.AddDate(0, 0, 1) {
		if f.faker.Bool() {
			supplied = append(supplied, d.Format("2006-01-02"))
		}
	}

	medication := &models.Medication{
		UserID:        user.ID,
		Name:          f.faker.RandomString(medicationNames),
		Dose:          fmt.Sprintf("%dmg", 50*f.faker.Number(1, 10)),
		Monday:        f.faker.Bool(),
		Tuesday:       f.faker.Bool(),
		Wednesday:     f.faker.Bool(),
		Thursday:      f.faker.Bool(),
		Friday:        f.faker.Bool(),
		Saturday:      f.faker.Bool(),
		Sunday:        f.faker.Bool(),
		StartDate:     start.Format("2006-01-02"),
		EndDate:       start.AddDate(0, 0, 30).Format("2006-01-02"),
		Time:          fmt.Sprintf("%02d:00", f.faker.Number(7, 22)),
		SuppliedDates: supplied,
	}
	for _, override := range overrides {
		override(medication)
	}

	if err := f.db.Create(medication).Error; err != nil {
		return nil, fmt.Errorf("create medication: %w", err)
	}
	return medication, nil
}
