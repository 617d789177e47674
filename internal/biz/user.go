package biz

import (
	"context"
	"strings"
	"time"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/VickyRohilla862/ResiliTrack-AI/internal/conf"
)

// User is an account that owns chat history and analysis results.
type User struct {
	ID           int
	Email        string
	Name         string
	PasswordHash string
}

// UserRepo is the account storage interface.
type UserRepo interface {
	CreateUser(ctx context.Context, u *User) (int, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	GetUserByID(ctx context.Context, id int) (*User, error)
	DeleteUser(ctx context.Context, id int) error
}

// UserUseCase handles registration, login, and account lifecycle.
type UserUseCase struct {
	repo   UserRepo
	log    *log.Helper
	jwtKey string
}

// NewUserUseCase wires the account logic.
func NewUserUseCase(repo UserRepo, auth *conf.Auth, logger log.Logger) *UserUseCase {
	jwtKey := "default-secret"
	if auth != nil && auth.JwtKey != "" {
		jwtKey = auth.JwtKey
	}
	return &UserUseCase{
		repo:   repo,
		log:    log.NewHelper(logger),
		jwtKey: jwtKey,
	}
}

// Register creates an account with a bcrypt password hash.
func (uc *UserUseCase) Register(ctx context.Context, email, password, name string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, errors.BadRequest("VALIDATION", "valid email required")
	}
	if len(password) < 6 {
		return nil, errors.BadRequest("VALIDATION", "password must be at least 6 characters")
	}
	if existing, err := uc.repo.GetUserByEmail(ctx, email); err == nil && existing != nil {
		return nil, errors.Conflict("EMAIL_TAKEN", "email already registered")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u := &User{
		Email:        email,
		Name:         strings.TrimSpace(name),
		PasswordHash: string(hashed),
	}
	id, err := uc.repo.CreateUser(ctx, u)
	if err != nil {
		return nil, err
	}
	u.ID = id
	return u, nil
}

// Login verifies credentials and returns a signed JWT.
func (uc *UserUseCase) Login(ctx context.Context, email, password string) (string, *User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	u, err := uc.repo.GetUserByEmail(ctx, email)
	if err != nil || u == nil {
		return "", nil, errors.Unauthorized("AUTH_FAILED", "invalid credentials")
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return "", nil, errors.Unauthorized("AUTH_FAILED", "invalid credentials")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"uid":   u.ID,
		"email": u.Email,
		"exp":   time.Now().Add(24 * time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(uc.jwtKey))
	if err != nil {
		return "", nil, err
	}
	return signed, u, nil
}

// ParseToken validates a bearer token and returns the account id.
func (uc *UserUseCase) ParseToken(tokenStr string) (int, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Unauthorized("AUTH_FAILED", "unexpected signing method")
		}
		return []byte(uc.jwtKey), nil
	})
	if err != nil || !token.Valid {
		return 0, errors.Unauthorized("AUTH_FAILED", "invalid token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, errors.Unauthorized("AUTH_FAILED", "invalid token claims")
	}
	uid, ok := claims["uid"].(float64)
	if !ok {
		return 0, errors.Unauthorized("AUTH_FAILED", "invalid token claims")
	}
	return int(uid), nil
}

// Profile returns the account for id.
func (uc *UserUseCase) Profile(ctx context.Context, id int) (*User, error) {
	u, err := uc.repo.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, errors.NotFound("USER_NOT_FOUND", "user not found")
	}
	return u, nil
}

// DeleteAccount removes the account; the caller clears dependent data first.
func (uc *UserUseCase) DeleteAccount(ctx context.Context, id int) error {
	return uc.repo.DeleteUser(ctx, id)
}
