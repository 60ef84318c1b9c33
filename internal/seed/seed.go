package seed

import (
	"fmt"
	"log/slog"

	"comunidad/internal/middleware"
	"comunidad/internal/models"

	"gorm.io/gorm"
)

// DemoOptions size the generated demo dataset.
type DemoOptions struct {
	Users        int
	PostsPerUser int
}

// Summary counts the rows a seeding run created.
type Summary struct {
	Users       int
	Posts       int
	Replies     int
	Favorites   int
	Tasks       int
	Medications int
}

// IsEmpty reports whether the database has no users yet.
func IsEmpty(db *gorm.DB) (bool, error) {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return false, fmt.Errorf("count users: %w", err)
	}
	return count == 0, nil
}

// Clear removes every row of the domain tables, dependents first.
func Clear(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		for _, model := range []interface{}{
			&models.Favorite{},
			&models.Reply{},
			&models.Post{},
			&models.Task{},
			&models.Medication{},
			&models.User{},
		} {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
				return fmt.Errorf("clear %T: %w", model, err)
			}
		}
		return nil
	})
}

// Demo creates opts.Users users, each with posts, a task and a medication.
// Every post gets a reply and a favorite from the next user in the ring.
// The whole dataset is written in one transaction.
func (f *Factory) Demo(opts DemoOptions) (Summary, error) {
	var summary Summary
	if opts.Users <= 0 {
		return summary, fmt.Errorf("demo needs at least one user")
	}
	if opts.PostsPerUser < 0 {
		opts.PostsPerUser = 0
	}

	err := f.db.Transaction(func(tx *gorm.DB) error {
		txf := f.WithDB(tx)
		summary = Summary{}

		users := make([]*models.User, 0, opts.Users)
		for i := 0; i < opts.Users; i++ {
			user, err := txf.CreateUser()
			if err != nil {
				return err
			}
			users = append(users, user)
			summary.Users++
		}

		for i, author := range users {
			peer := users[(i+1)%len(users)]
			for p := 0; p < opts.PostsPerUser; p++ {
				post, err := txf.CreatePost(author)
				if err != nil {
					return err
				}
				summary.Posts++

				if _, err := txf.CreateReply(peer, post); err != nil {
					return err
				}
				summary.Replies++

				if err := txf.CreateFavorite(peer, post); err != nil {
					return err
				}
				summary.Favorites++
			}

			if _, err := txf.CreateTask(author); err != nil {
				return err
			}
			summary.Tasks++

			if _, err := txf.CreateMedication(author); err != nil {
				return err
			}
			summary.Medications++
		}
		f.seq.Store(txf.seq.Load())
		return nil
	})
	if err != nil {
		return Summary{}, err
	}

	middleware.Logger.Info("demo dataset created",
		slog.Int("users", summary.Users),
		slog.Int("posts", summary.Posts),
		slog.Int("replies", summary.Replies),
		slog.Int("favorites", summary.Favorites),
	)
	return summary, nil
}
