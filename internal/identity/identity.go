// Package identity определяет текущего пользователя по bearer-токену.
package identity

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"
)

// ErrUnauthenticated пользователь не определён (нет токена или токен отклонён)
var ErrUnauthenticated = errors.New("unauthenticated")

// Identity текущий пользователь
type Identity struct {
	UID         string `json:"uid"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
}

// Provider проверяет токен и возвращает пользователя
type Provider interface {
	Identify(ctx context.Context, token string) (*Identity, error)
}

type contextKey struct{}

// WithIdentity кладёт пользователя в контекст
func WithIdentity(ctx context.Context, who *Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, who)
}

// FromContext достаёт пользователя из контекста
func FromContext(ctx context.Context) (*Identity, bool) {
	who, ok := ctx.Value(contextKey{}).(*Identity)
	if !ok || who == nil || who.UID == "" {
		return nil, false
	}
	return who, true
}

// BearerToken извлекает токен из заголовка Authorization
func BearerToken(header string) (string, bool) {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

// StaticProvider принимает один заранее заданный токен (локальная разработка и тесты)
type StaticProvider struct {
	token    string
	identity Identity
}

// NewStaticProvider создаёт провайдер, сопоставляющий token с who
func NewStaticProvider(token string, who Identity) *StaticProvider {
	return &StaticProvider{token: token, identity: who}
}

func (p *StaticProvider) Identify(_ context.Context, token string) (*Identity, error) {
	if p.token == "" || subtle.ConstantTimeCompare([]byte(token), []byte(p.token)) != 1 {
		return nil, ErrUnauthenticated
	}
	who := p.identity
	return &who, nil
}

// DenyAll отклоняет любой токен; используется, когда аутентификация не настроена
type DenyAll struct{}

func (DenyAll) Identify(context.Context, string) (*Identity, error) {
	return nil, ErrUnauthenticated
}
