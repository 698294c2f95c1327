package models

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

type User struct {
	BaseModel
	Username     string    `json:"username" gorm:"not null;unique"`
	Email        string    `json:"email" gorm:"not null;unique"`
	PasswordHash string    `json:"-" gorm:"not null"`
	Contacts     []Contact `json:"contacts,omitempty" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

func CreateUser(user *User) error {
	return db.Create(user).Error
}

func FindUserBy(field string, value interface{}) (*User, error) {
	user := User{}
	err := db.Select("id", "username", "email", "created_at", "updated_at").
		First(&user, fmt.Sprintf("%v = ?", field), value).Error
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// FindUserWithPasswordHash is only used by the login flow;
// everything else goes through FindUserBy which drops the hash.
func FindUserWithPasswordHash(username string) (*User, error) {
	user := User{}
	err := db.First(&user, "username = ?", username).Error
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// UserEmailTaken reports whether any user already holds the given
// email. The match is case-sensitive & runs against current db state.
func UserEmailTaken(email string) (bool, error) {
	err := db.First(&User{}, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}

	if err != nil {
		return false, err
	}

	return true, nil
}

// UserUsernameTaken reports whether any user already holds the given username.
func UserUsernameTaken(username string) (bool, error) {
	err := db.First(&User{}, "username = ?", username).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}

	if err != nil {
		return false, err
	}

	return true, nil
}

// DeleteUser removes the user along with their contacts & every
// phone number hanging off those contacts. Cascades run downward only.
func DeleteUser(id interface{}) error {
	err := db.Where(
		"contact_id IN (?)",
		db.Model(&Contact{}).Select("id").Where("user_id = ?", id),
	).Delete(&PhoneNumber{}).Error
	if err != nil {
		return err
	}

	err = db.Where("user_id = ?", id).Delete(&Contact{}).Error
	if err != nil {
		return err
	}

	return db.Delete(&User{}, id).Error
}
