package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"scholarspace-backend/errs"
	"scholarspace-backend/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// CredentialStore is the persistence surface AuthService depends on
type CredentialStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// AuthService handles user registration and login
type AuthService struct {
	users      CredentialStore
	signingKey []byte
	tokenTTL   time.Duration
}

// AuthServiceOption is a functional option for AuthService
type AuthServiceOption func(*AuthService)

// WithCredentialStore sets the credential store
func WithCredentialStore(store CredentialStore) AuthServiceOption {
	return func(s *AuthService) {
		s.users = store
	}
}

// WithSigningKey sets the token signing key
func WithSigningKey(key []byte) AuthServiceOption {
	return func(s *AuthService) {
		s.signingKey = key
	}
}

// WithTokenTTL sets the lifetime of issued tokens
func WithTokenTTL(ttl time.Duration) AuthServiceOption {
	return func(s *AuthService) {
		s.tokenTTL = ttl
	}
}

// NewAuthService creates a new auth service
func NewAuthService(opts ...AuthServiceOption) *AuthService {
	s := &AuthService{
		tokenTTL: time.Hour,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RegisterRequest represents a request to register a user
type RegisterRequest struct {
	Name     string
	Email    string
	Password string
}

// RegisterResult represents the result of a registration
type RegisterResult struct {
	User *models.User
}

// Register creates a new user with a bcrypt-hashed password. The email
// lookup and the insert are not atomic; the unique constraint on
// users.email is what actually guarantees uniqueness under concurrency,
// and the store reports a violation as ErrDuplicateUser.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*RegisterResult, error) {
	if s.users == nil {
		return nil, errors.New("credential store not set")
	}
	if req.Email == "" || req.Password == "" {
		return nil, errors.New("email and password are required")
	}

	_, err := s.users.GetByEmail(ctx, req.Email)
	if err == nil {
		return nil, errs.ErrDuplicateUser
	}
	if !errors.Is(err, errs.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	return &RegisterResult{User: user}, nil
}

// LoginRequest represents a request to log in
type LoginRequest struct {
	Email    string
	Password string
}

// LoginResult represents the result of a successful login
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      models.PublicUser
}

// Login verifies the password and issues a signed, time-limited token.
// Unknown email and wrong password remain distinguishable errors.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	if s.users == nil {
		return nil, errors.New("credential store not set")
	}

	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, errs.ErrInvalidCredentials
	}

	token, exp, err := s.issueToken(user.ID)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		Token:     token,
		ExpiresAt: exp,
		User:      user.Public(),
	}, nil
}

// issueToken creates a signed HS256 JWT with the user id as subject
func (s *AuthService) issueToken(userID uuid.UUID) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(s.tokenTTL)
	claims := jwt.RegisteredClaims{
		Subject:   userID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(s.signingKey)
	return signed, exp, err
}

// VerifyToken validates the token's signature and expiry and returns the
// user id encoded in its subject claim.
func (s *AuthService) VerifyToken(tokenString string) (uuid.UUID, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.signingKey, nil
	})
	if err != nil {
		return uuid.Nil, err
	}

	return uuid.Parse(claims.Subject)
}
