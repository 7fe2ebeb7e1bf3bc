package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Freeeeeet/slotswapper/internal/apperr"
	"github.com/Freeeeeet/slotswapper/internal/model"
	"github.com/Freeeeeet/slotswapper/internal/repository/base"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Токен живёт неделю, refresh-токенов нет
const tokenTTL = 7 * 24 * time.Hour

type userStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}

// Claims полезная нагрузка токена; subject - id пользователя
type Claims struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// AuthService выпускает и проверяет токены. Ядро обмена паролей не видит -
// оно получает только проверенный subject id из middleware.
type AuthService struct {
	users  userStore
	secret []byte
	logger *zap.Logger
}

func NewAuthService(users userStore, jwtSecret string, logger *zap.Logger) *AuthService {
	return &AuthService{
		users:  users,
		secret: []byte(jwtSecret),
		logger: logger,
	}
}

// Signup регистрирует пользователя и сразу выдаёт токен
func (s *AuthService) Signup(ctx context.Context, name, email, password string) (string, *model.User, error) {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(email) == "" || password == "" {
		return "", nil, apperr.Validation("name, email and password are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UnixMilli(),
	}

	if err := s.users.Create(ctx, user); err != nil {
		if base.IsUniqueViolation(err) {
			return "", nil, apperr.Validation("email already exists")
		}
		return "", nil, err
	}

	token, err := s.IssueToken(user)
	if err != nil {
		return "", nil, err
	}

	s.logger.Info("User signed up",
		zap.String("user_id", user.ID),
		zap.String("email", email),
	)

	return token, user, nil
}

// Login проверяет учётные данные и выдаёт токен
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	if email == "" || password == "" {
		return "", nil, apperr.Validation("email and password are required")
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}
	// Не различаем "нет пользователя" и "неверный пароль"
	if user == nil {
		return "", nil, apperr.Validation("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, apperr.Validation("invalid credentials")
	}

	token, err := s.IssueToken(user)
	if err != nil {
		return "", nil, err
	}

	s.logger.Info("User logged in", zap.String("user_id", user.ID))

	return token, user, nil
}

// IssueToken подписывает HS256-токен с id пользователя в subject
func (s *AuthService) IssueToken(user *model.User) (string, error) {
	claims := Claims{
		Name:  user.Name,
		Email: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ParseToken проверяет подпись и срок действия токена
func (s *AuthService) ParseToken(tokenString string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.Subject == "" {
		return nil, fmt.Errorf("invalid token")
	}

	return claims, nil
}
