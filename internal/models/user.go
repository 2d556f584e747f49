// internal/models/user.go
package models

import (
	"golang.org/x/crypto/bcrypt"
)

type User struct {
	BaseModel
	Username     string `json:"username" gorm:"uniqueIndex;uniqueIndex:idx_users_username_email;size:150;not null"`
	Email        string `json:"email" gorm:"uniqueIndex;uniqueIndex:idx_users_username_email;size:254;not null"`
	FirstName    string `json:"first_name" gorm:"size:150;not null"`
	LastName     string `json:"last_name" gorm:"size:150;not null"`
	Role         Role   `json:"-" gorm:"type:varchar(20);not null;default:'user'"`
	PasswordHash string `json:"-" gorm:"size:255;not null"`

	// Relationships
	Recipes []Recipe `json:"-" gorm:"foreignKey:AuthorID"`
}

func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashedPassword)
	return nil
}

func (u *User) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
}
