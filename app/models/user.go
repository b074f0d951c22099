package models

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type User struct {
	ID                 uint           `gorm:"primaryKey" json:"id"`
	Name               string         `gorm:"type:varchar(150)" json:"name" validate:"required,min=3,max=150"`
	Email              string         `gorm:"uniqueIndex;type:varchar(200) CHARACTER SET utf8 COLLATE utf8_bin" json:"email" validate:"required,email,min=5,max=200"`
	Password           string         `gorm:"type:text" json:"-" validate:"required,min=6"`
	Verified           bool           `gorm:"default:false" json:"verified"`
	VerificationCode   string         `gorm:"type:varchar(10);default:null" json:"-"`
	VerificationSentAt *time.Time     `gorm:"type:timestamp;default:null" json:"-"`
	Credits            uint           `gorm:"default:0" json:"credits"`
	LastLoginAt        *time.Time     `gorm:"type:timestamp;default:null" json:"last_login_at"`
	CreatedAt          time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
}

func (u *User) Validate() error {
	v := validator.New()

	return v.Struct(u)
}

// CreateUser builds an unverified user with a hashed password and a fresh
// verification code. The caller persists it.
func CreateUser(name string, email string, password string) (*User, error) {
	pw, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	u := &User{
		Name:     name,
		Email:    email,
		Password: pw,
		Verified: false,
	}

	if err := u.Validate(); err != nil {
		return nil, err
	}

	if err := u.GenerateVerificationCode(); err != nil {
		return nil, err
	}

	return u, nil
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

	return string(bytes), err
}

// CheckPasswordHash compares the given password with the stored hash.
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))

	return err == nil
}

// CheckPassword verifies if the provided password matches the user's stored password
func (u *User) CheckPassword(password string) bool {
	return CheckPasswordHash(password, u.Password)
}

// SetPassword hashes and sets a new password for the user
func (u *User) SetPassword(password string) error {
	hashedPassword, err := HashPassword(password)
	if err != nil {
		return err
	}
	u.Password = hashedPassword
	return nil
}

// GenerateVerificationCode creates a random 6-digit code and sets VerificationSentAt
func (u *User) GenerateVerificationCode() error {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return err
	}
	u.VerificationCode = fmt.Sprintf("%06d", n.Int64()+100000)
	now := time.Now()
	u.VerificationSentAt = &now
	return nil
}

// IsVerificationCodeValid checks the single-use code. Codes expire after 24 hours.
func (u *User) IsVerificationCodeValid(code string) bool {
	if u.VerificationCode == "" || u.VerificationSentAt == nil {
		return false
	}
	if u.VerificationCode != code {
		return false
	}
	return time.Since(*u.VerificationSentAt) < 24*time.Hour
}

// MarkVerified flips the verified flag and clears the single-use code.
func (u *User) MarkVerified() {
	u.Verified = true
	u.VerificationCode = ""
	u.VerificationSentAt = nil
}
