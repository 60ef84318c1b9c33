package models

import "time"

// Medication is a reminder schedule for one drug taken by a user.
type Medication struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	UserID        uint          `gorm:"not null;index" json:"userId"`
	User          *User         `gorm:"foreignKey:UserID" json:"-"`
	Name          string        `gorm:"not null;size:120" json:"name"`
	Dose          string        `gorm:"size:120" json:"dose"`
	Monday        bool          `gorm:"not null;default:false" json:"monday"`
	Tuesday       bool          `gorm:"not null;default:false" json:"tuesday"`
	Wednesday     bool          `gorm:"not null;default:false" json:"wednesday"`
	Thursday      bool          `gorm:"not null;default:false" json:"thursday"`
	Friday        bool          `gorm:"not null;default:false" json:"friday"`
	Saturday      bool          `gorm:"not null;default:false" json:"saturday"`
	Sunday        bool          `gorm:"not null;default:false" json:"sunday"`
	StartDate     string        `gorm:"size:10" json:"startDate"`
	EndDate       string        `gorm:"size:10" json:"endDate"`
	Time          string        `gorm:"size:5" json:"time"`
	SuppliedDates SuppliedDates `gorm:"type:text;not null;default:''" json:"suppliedDates"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

