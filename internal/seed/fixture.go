package seed

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"comunidad/internal/models"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

// Fixture is a hand-written dataset. Posts, replies and favorites refer to
// users by username.
//
//	users:
//	  - username: ana
//	    email: ana@example.com
//	posts:
//	  - author: ana
//	    content: Hola
//	    replies:
//	      - author: ana
//	        content: Gracias
//	    favoritedBy: [ana]
type Fixture struct {
	Users       []FixtureUser       `yaml:"users"`
	Posts       []FixturePost       `yaml:"posts"`
	Tasks       []FixtureTask       `yaml:"tasks"`
	Medications []FixtureMedication `yaml:"medications"`
}

type FixtureUser struct {
	Username string `yaml:"username"`
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
}

type FixturePost struct {
	Author      string         `yaml:"author"`
	Content     string         `yaml:"content"`
	Replies     []FixtureReply `yaml:"replies"`
	FavoritedBy []string       `yaml:"favoritedBy"`
}

type FixtureReply struct {
	Author  string `yaml:"author"`
	Content string `yaml:"content"`
}

type FixtureTask struct {
	Owner       string `yaml:"owner"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Date        string `yaml:"date"`
	Time        string `yaml:"time"`
}

type FixtureMedication struct {
	Owner         string   `yaml:"owner"`
	Name          string   `yaml:"name"`
	Dose          string   `yaml:"dose"`
	Days          []string `yaml:"days"`
	StartDate     string   `yaml:"startDate"`
	EndDate       string   `yaml:"endDate"`
	Time          string   `yaml:"time"`
	SuppliedDates []string `yaml:"suppliedDates"`
}

// LoadFixture reads and parses a YAML fixture file.
func LoadFixture(path string) (*Fixture, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}
	return ParseFixture(raw)
}

// ParseFixture decodes a YAML fixture. Unknown keys are rejected.
func ParseFixture(raw []byte) (*Fixture, error) {
	var fx Fixture
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&fx); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse fixture: %w", err)
	}
	return &fx, nil
}

// ApplyFixture writes fx in one transaction. A reference to an unknown
// username aborts the whole fixture.
func (f *Factory) ApplyFixture(fx *Fixture) (Summary, error) {
	var summary Summary
	err := f.db.Transaction(func(tx *gorm.DB) error {
		txf := f.WithDB(tx)
		summary = Summary{}
		users := make(map[string]*models.User, len(fx.Users))

		lookup := func(username, what string) (*models.User, error) {
			user, ok := users[username]
			if !ok {
				return nil, fmt.Errorf("%s refers to unknown user %q", what, username)
			}
			return user, nil
		}

		for _, fu := range fx.Users {
			if fu.Username == "" {
				return fmt.Errorf("fixture user without username")
			}
			user, err := txf.CreateUser(func(u *models.User) {
				u.Username = fu.Username
				if fu.Email != "" {
					u.Email = fu.Email
				} else {
					u.Email = fu.Username + "@example.com"
				}
				if fu.Password != "" {
					u.Password = fu.Password
				}
			})
			if err != nil {
				return err
			}
			users[fu.Username] = user
			summary.Users++
		}

		for i, fp := range fx.Posts {
			author, err := lookup(fp.Author, fmt.Sprintf("post %d", i+1))
			if err != nil {
				return err
			}
			post, err := txf.CreatePost(author, func(p *models.Post) {
				if fp.Content != "" {
					p.Content = fp.Content
				}
			})
			if err != nil {
				return err
			}
			summary.Posts++

			for _, fr := range fp.Replies {
				replier, err := lookup(fr.Author, fmt.Sprintf("reply on post %d", i+1))
				if err != nil {
					return err
				}
				if _, err := txf.CreateReply(replier, post, func(r *models.Reply) {
					if fr.Content != "" {
						r.Content = fr.Content
					}
				}); err != nil {
					return err
				}
				summary.Replies++
			}

			for _, username := range fp.FavoritedBy {
				fan, err := lookup(username, fmt.Sprintf("favorite of post %d", i+1))
				if err != nil {
					return err
				}
				if err := txf.CreateFavorite(fan, post); err != nil {
					return err
				}
				summary.Favorites++
			}
		}

		for _, ft := range fx.Tasks {
			owner, err := lookup(ft.Owner, "task "+ft.Title)
			if err != nil {
				return err
			}
			if _, err := txf.CreateTask(owner, func(t *models.Task) {
				if ft.Title != "" {
					t.Title = ft.Title
				}
				t.Description = ft.Description
				t.Date = ft.Date
				t.Time = ft.Time
			}); err != nil {
				return err
			}
			summary.Tasks++
		}

		for _, fm := range fx.Medications {
			owner, err := lookup(fm.Owner, "medication "+fm.Name)
			if err != nil {
				return err
			}
			for _, d := range fm.SuppliedDates {
				if err := models.ValidateSuppliedDate(d); err != nil {
					return fmt.Errorf("medication %s: supplied date %q: %w", fm.Name, d, err)
				}
			}
			if _, err := txf.CreateMedication(owner, fm.apply); err != nil {
				return err
			}
			summary.Medications++
		}
		return nil
	})
	if err != nil {
		return Summary{}, err
	}
	return summary, nil
}

func (fm FixtureMedication) apply(m *models.Medication) {
	if fm.Name != "" {
		m.Name = fm.Name
	}
	if fm.Dose != "" {
		m.Dose = fm.Dose
	}
	if len(fm.Days) > 0 {
		m.Monday, m.Tuesday, m.Wednesday, m.Thursday = false, false, false, false
		m.Friday, m.Saturday, m.Sunday = false, false, false
		for _, day := range fm.Days {
			switch day {
			case "monday", "lunes":
				m.Monday = true
			case "tuesday", "martes":
				m.Tuesday = true
			case "wednesday", "miercoles", "miércoles":
				m.Wednesday = true
			case "thursday", "jueves":
				m.Thursday = true
			case "friday", "viernes":
				m.Friday = true
			case "saturday", "sabado", "sábado":
				m.Saturday = true
			case "sunday", "domingo":
				m.Sunday = true
			}
		}
	}
	if fm.StartDate != "" {
		m.StartDate = fm.StartDate
	}
	if fm.EndDate != "" {
		m.EndDate = fm.EndDate
	}
	if fm.Time != "" {
		m.Time = fm.Time
	}
	if fm.SuppliedDates != nil {
		m.SuppliedDates = models.SuppliedDates{}
		for _, d := range fm.SuppliedDates {
			if !m.SuppliedDates.Contains(d) {
				m.SuppliedDates = append(m.SuppliedDates, d)
			}
		}
	}
}
