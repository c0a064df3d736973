package entities

import (
	"time"
)

type User struct {
	ID           int64     `json:"id" gorm:"primaryKey;column:id"`
	Email        string    `json:"email" gorm:"column:email;type:text;uniqueIndex;not null"`
	Name         string    `json:"name" gorm:"column:name;type:text"`
	PasswordHash string    `json:"-" gorm:"column:password_hash;type:text"`
	Role         string    `json:"role" gorm:"column:role;type:text;not null;default:'analista'"`
	Active       bool      `json:"active" gorm:"column:active;default:true"`
	CreatedAt    time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (User) TableName() string { return "users" }
