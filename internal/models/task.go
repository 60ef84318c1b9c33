package models

import "time"

// Task is a scheduled to-do item. It is listed only while DueAt is in the future.
type Task struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;index" json:"userId"`
	User        *User     `gorm:"foreignKey:UserID" json:"-"`
	Title       string    `gorm:"not null;size:200" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Date        string    `gorm:"size:10;not null" json:"date"`
	Time        string    `gorm:"size:5;not null" json:"time"`
	DueAt       time.Time `gorm:"not null;index" json:"dueAt"`
	CreatedAt   time.Time `json:"createdAt"`
}

