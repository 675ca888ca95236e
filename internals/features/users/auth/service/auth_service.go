package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"sevasetu_backend/internals/features/users/auth/model"
)

const tokenTTL = 24 * time.Hour

// ErrInvalidCredentials covers both unknown email and wrong password so the
// response does not leak which one it was.
var ErrInvalidCredentials = errors.New("invalid credentials")

/* ========================== LOGIN ========================== */

// Login verifies the admin credentials and issues a signed bearer token.
func Login(ctx context.Context, db *gorm.DB, secret, email, password string) (string, int64, error) {
	var user model.User
	err := db.WithContext(ctx).
		Where("user_email = ? AND user_is_active = true", email).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", 0, ErrInvalidCredentials
	}
	if err != nil {
		return "", 0, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.UserPassword), []byte(password)); err != nil {
		return "", 0, ErrInvalidCredentials
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"id":   user.UserID.String(),
		"name": user.UserName,
		"role": user.UserRole,
		"iat":  now.Unix(),
		"exp":  now.Add(tokenTTL).Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", 0, err
	}
	return token, int64(tokenTTL.Seconds()), nil
}

/* ========================== PASSWORD ========================== */

func HashPassword(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}
