// Package auth проверяет bearer-токены и кладёт вызывающего в контекст.
// Токены выпускает внешний сервис; здесь только проверка подписи HS256.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/Leganyst/trainer-booking/internal/calendar"
)

var (
	ErrMissingToken = errors.New("authorization header required")
	ErrInvalidToken = errors.New("invalid token")
)

// Verifier разбирает токен, а роль берёт из хранилища по sub.
type Verifier struct {
	secret   []byte
	accounts calendar.AccountStore
}

func NewVerifier(secret string, accounts calendar.AccountStore) *Verifier {
	return &Verifier{secret: []byte(secret), accounts: accounts}
}

// Authenticate принимает значение заголовка Authorization ("Bearer <jwt>").
func (v *Verifier) Authenticate(ctx context.Context, header string) (calendar.Caller, error) {
	raw, err := bearer(header)
	if err != nil {
		return calendar.Caller{}, err
	}

	token, err := jwt.Parse(raw, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return calendar.Caller{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	sub, err := token.Claims.GetSubject()
	if err != nil || sub == "" {
		return calendar.Caller{}, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	id, err := uuid.Parse(sub)
	if err != nil {
		return calendar.Caller{}, fmt.Errorf("%w: subject is not a client id", ErrInvalidToken)
	}

	caller, err := calendar.ValidateCaller(ctx, v.accounts, id)
	if err != nil {
		if errors.Is(err, calendar.ErrCallerNotFound) || errors.Is(err, calendar.ErrInvalidCallerID) {
			return calendar.Caller{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
		}
		return calendar.Caller{}, err
	}
	return caller, nil
}

func bearer(header string) (string, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", ErrMissingToken
	}
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return strings.TrimSpace(header[7:]), nil
	}
	return "", fmt.Errorf("%w: expected bearer scheme", ErrInvalidToken)
}

type callerKey struct{}

func WithCaller(ctx context.Context, c calendar.Caller) context.Context {
	return context.WithValue(ctx, callerKey{}, c)
}

func CallerFrom(ctx context.Context) (calendar.Caller, bool) {
	c, ok := ctx.Value(callerKey{}).(calendar.Caller)
	return c, ok
}
