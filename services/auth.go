package services

import (
	"context"
	"fmt"
	"net/mail"
	"strconv"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"

	"speclab-backend/apierr"
	"speclab-backend/logger"
	"speclab-backend/models/users"
	"speclab-backend/repository"
)

const minPasswordLength = 8

type Claims struct {
	UserID    uint   `json:"uid"`
	Email     string `json:"email"`
	Superuser bool   `json:"su,omitempty"`
	jwt.StandardClaims
}

type RegisterInput struct {
	Email    string  `json:"email"`
	Password string  `json:"password"`
	FullName *string `json:"full_name"`
}

type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type AuthService struct {
	users repository.UserRepo
	key   []byte
	ttl   time.Duration
	now   func() time.Time
	log   *logger.Logger
}

func NewAuthService(userRepo repository.UserRepo, signingKey []byte, ttl time.Duration, baseLog *logger.Logger) *AuthService {
	return &AuthService{
		users: userRepo,
		key:   signingKey,
		ttl:   ttl,
		now:   time.Now,
		log:   baseLog.With("service", "AuthService"),
	}
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*users.User, error) {
	email, err := validateEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if err := validatePassword(in.Password); err != nil {
		return nil, err
	}
	exists, err := s.users.EmailExists(ctx, nil, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apierr.Conflict("이미 등록된 이메일입니다")
	}
	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	u := &users.User{
		Email:          email,
		HashedPassword: hash,
		FullName:       in.FullName,
		IsActive:       true,
	}
	if err := s.users.Create(ctx, nil, u); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	s.log.Info("user registered", "user_id", u.ID)
	return u, nil
}

// Login checks the credentials and returns a bearer token for the user.
func (s *AuthService) Login(ctx context.Context, email, password string) (*users.User, Token, error) {
	u, err := s.users.GetByEmail(ctx, nil, email)
	if err != nil && !repository.IsNotFound(err) {
		return nil, Token{}, err
	}
	if u == nil || bcrypt.CompareHashAndPassword([]byte(u.HashedPassword), []byte(password)) != nil {
		return nil, Token{}, apierr.Unauthorized("이메일 또는 비밀번호가 올바르지 않습니다")
	}
	if !u.IsActive {
		return nil, Token{}, apierr.Forbidden("비활성화된 계정입니다")
	}
	tok, err := s.IssueToken(u)
	if err != nil {
		return nil, Token{}, err
	}
	return u, Token{AccessToken: tok, TokenType: "bearer"}, nil
}

func (s *AuthService) IssueToken(u *users.User) (string, error) {
	now := s.now()
	claims := &Claims{
		UserID:    u.ID,
		Email:     u.Email,
		Superuser: u.IsSuperuser,
		StandardClaims: jwt.StandardClaims{
			Subject:   strconv.FormatUint(uint64(u.ID), 10),
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(s.ttl).Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (s *AuthService) ParseToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.key, nil
	})
	if err != nil || !token.Valid {
		return nil, apierr.Unauthorized("유효하지 않은 토큰입니다")
	}
	return claims, nil
}

// UserFromToken resolves a bearer token to an active user.
func (s *AuthService) UserFromToken(ctx context.Context, tokenString string) (*users.User, error) {
	claims, err := s.ParseToken(tokenString)
	if err != nil {
		return nil, err
	}
	return s.ActiveUser(ctx, claims.UserID)
}

func (s *AuthService) ActiveUser(ctx context.Context, id uint) (*users.User, error) {
	u, err := s.users.GetByID(ctx, nil, id)
	if repository.IsNotFound(err) {
		return nil, apierr.Unauthorized("인증이 필요합니다")
	}
	if err != nil {
		return nil, err
	}
	if !u.IsActive {
		return nil, apierr.Unauthorized("인증이 필요합니다")
	}
	return u, nil
}

func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

func validateEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", apierr.BadRequest("올바른 이메일 형식이 아닙니다")
	}
	return email, nil
}

func validatePassword(pw string) error {
	if len(pw) < minPasswordLength {
		return apierr.BadRequest(fmt.Sprintf("비밀번호는 %d자 이상이어야 합니다", minPasswordLength))
	}
	return nil
}

// ChangePassword replaces the password after checking the current one.
func (s *AuthService) ChangePassword(ctx context.Context, userID uint, current, next string) error {
	u, err := s.ActiveUser(ctx, userID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.HashedPassword), []byte(current)) != nil {
		return apierr.BadRequest("현재 비밀번호가 올바르지 않습니다")
	}
	if err := validatePassword(next); err != nil {
		return err
	}
	hash, err := HashPassword(next)
	if err != nil {
		return err
	}
	return s.users.Update(ctx, nil, userID, map[string]any{"hashed_password": hash})
}
