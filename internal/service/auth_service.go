package service

import (
	"database/sql"
	"errors"
	"fmt"

	"grocery/internal/model"
	"grocery/internal/repository"
	"grocery/internal/token"

	"golang.org/x/crypto/bcrypt"
)

// bcryptCost - стоимость хеширования пароля.
const bcryptCost = 10

// ErrInvalidCredentials возвращается при неудачном входе. Ошибка одна и та же
// для несуществующего email и для неверного пароля - наружу не утекает,
// какой именно из факторов не совпал.
var ErrInvalidCredentials = errors.New("invalid email or password")

// AuthService отвечает за регистрацию и вход пользователей.
type AuthService struct {
	userRepo *repository.UserRepository
	tokens   *token.Manager
}

// NewAuthService создает новый сервис аутентификации.
func NewAuthService(userRepo *repository.UserRepository, tokens *token.Manager) *AuthService {
	return &AuthService{userRepo: userRepo, tokens: tokens}
}

// Register регистрирует нового пользователя: хеширует пароль, сохраняет запись
// и выдает подписанный токен. Открытый пароль не сохраняется и не логируется.
// Дубликат email отдается как ошибка БД (уникальный индекс).
func (s *AuthService) Register(firstName, lastName, email, password string, isAdmin bool) (*model.User, string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("не удалось захешировать пароль: %w", err)
	}
	user := &model.User{
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Password:  string(hash),
		IsAdmin:   isAdmin,
	}
	id, err := s.userRepo.Create(user)
	if err != nil {
		return nil, "", err
	}
	user.ID = id
	signed, err := s.tokens.Issue(user.ID, user.IsAdmin)
	if err != nil {
		return nil, "", err
	}
	return user, signed, nil
}

// Login проверяет email и пароль и выдает токен того же вида, что и при регистрации.
func (s *AuthService) Login(email, password string) (*model.User, string, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("ошибка при поиске пользователя: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}
	signed, err := s.tokens.Issue(user.ID, user.IsAdmin)
	if err != nil {
		return nil, "", err
	}
	return user, signed, nil
}
