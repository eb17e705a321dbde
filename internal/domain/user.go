package domain

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// Password length limits. bcrypt ignores anything past 72 bytes.
const (
	MinPasswordLength = 12
	MaxPasswordLength = 72
)

var (
	ErrPasswordTooShort = errors.New("password must be at least 12 characters long")
	ErrPasswordTooLong  = errors.New("password must be at most 72 characters long")
)

// User is a registered account. A user belongs to at most one guild; the
// reference is cleared if the guild is purged.
type User struct {
	Record
	Username     string `gorm:"size:150;not null;uniqueIndex" json:"username" validate:"required,max=150"`
	Email        string `gorm:"size:254;not null;default:''" json:"email" validate:"omitempty,email,max=254"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	GuildID      *int64 `gorm:"index" json:"-"`
	Guild        *Guild `gorm:"constraint:OnDelete:SET NULL" json:"guild"`
}

func (User) TableName() string { return "users" }
func (User) Kind() Kind        { return KindUser }

// SetPassword validates and hashes a plaintext password.
func (u *User) SetPassword(plaintext string) error {
	switch {
	case len(plaintext) < MinPasswordLength:
		return NewValidationError("password", ErrPasswordTooShort.Error(), ErrPasswordTooShort)
	case len(plaintext) > MaxPasswordLength:
		return NewValidationError("password", ErrPasswordTooLong.Error(), ErrPasswordTooLong)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword reports whether plaintext matches the stored hash.
func (u *User) CheckPassword(plaintext string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(plaintext)) == nil
}
