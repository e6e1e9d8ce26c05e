package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TTL - срок действия выданного токена.
const TTL = time.Hour

// Claims - расшифрованные данные токена: идентификатор пользователя и признак администратора.
// Живут только в рамках одного запроса, нигде не сохраняются.
type Claims struct {
	ID      int
	IsAdmin bool
}

// Manager подписывает и проверяет JWT по общему секрету (HS256).
type Manager struct {
	secret []byte
}

// NewManager создает менеджер токенов. Секрет берется из конфигурации,
// в коде он не захардкожен.
func NewManager(secret string) *Manager {
	return &Manager{secret: []byte(secret)}
}

// Issue выдает подписанный токен с полями {id, isAdmin} и сроком действия в один час.
func (m *Manager) Issue(userID int, isAdmin bool) (string, error) {
	now := time.Now()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":      userID,
		"isAdmin": isAdmin,
		"iat":     now.Unix(),
		"exp":     now.Add(TTL).Unix(),
	})
	signed, err := t.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("не удалось подписать токен: %w", err)
	}
	return signed, nil
}

// Verify проверяет подпись и срок действия токена и возвращает claims.
// Любой невалидный, просроченный или чужой токен дает ошибку.
func (m *Manager) Verify(tokenString string) (*Claims, error) {
	parsed, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("неожиданный метод подписи: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, err
	}
	mapClaims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return nil, errors.New("невалидный токен")
	}
	id, ok := mapClaims["id"].(float64)
	if !ok {
		return nil, errors.New("в токене отсутствует идентификатор пользователя")
	}
	isAdmin, _ := mapClaims["isAdmin"].(bool)
	return &Claims{ID: int(id), IsAdmin: isAdmin}, nil
}
