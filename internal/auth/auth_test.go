package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Leganyst/trainer-booking/internal/calendar"
)

const testSecret = "test-secret-0123456789"

type fakeAccounts map[uuid.UUID]bool

func (f fakeAccounts) FindAccount(_ context.Context, id uuid.UUID) (*calendar.Account, error) {
	isAdmin, ok := f[id]
	if !ok {
		return nil, nil
	}
	return &calendar.Account{ID: id, IsAdmin: isAdmin}, nil
}

func sign(t *testing.T, secret string, method jwt.SigningMethod, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func TestVerifier_Authenticate(t *testing.T) {
	clientID := uuid.New()
	adminID := uuid.New()
	v := NewVerifier(testSecret, fakeAccounts{clientID: false, adminID: true})
	exp := time.Now().Add(time.Hour).Unix()

	tests := []struct {
		name     string
		header   string
		wantErr  error
		wantRole calendar.Role
	}{
		{
			name:     "client token",
			header:   "Bearer " + sign(t, testSecret, jwt.SigningMethodHS256, jwt.MapClaims{"sub": clientID.String(), "exp": exp}),
			wantRole: calendar.RoleClient,
		},
		{
			name:     "admin role comes from the store",
			header:   "bearer " + sign(t, testSecret, jwt.SigningMethodHS256, jwt.MapClaims{"sub": adminID.String(), "exp": exp, "role": "client"}),
			wantRole: calendar.RoleAdmin,
		},
		{
			name:    "missing header",
			header:  "",
			wantErr: ErrMissingToken,
		},
		{
			name:    "wrong scheme",
			header:  "Basic abc",
			wantErr: ErrInvalidToken,
		},
		{
			name:    "wrong secret",
			header:  "Bearer " + sign(t, "another-secret-value", jwt.SigningMethodHS256, jwt.MapClaims{"sub": clientID.String(), "exp": exp}),
			wantErr: ErrInvalidToken,
		},
		{
			name:    "expired",
			header:  "Bearer " + sign(t, testSecret, jwt.SigningMethodHS256, jwt.MapClaims{"sub": clientID.String(), "exp": time.Now().Add(-time.Hour).Unix()}),
			wantErr: ErrInvalidToken,
		},
		{
			name:    "unknown client",
			header:  "Bearer " + sign(t, testSecret, jwt.SigningMethodHS256, jwt.MapClaims{"sub": uuid.NewString(), "exp": exp}),
			wantErr: ErrInvalidToken,
		},
		{
			name:    "subject is not a uuid",
			header:  "Bearer " + sign(t, testSecret, jwt.SigningMethodHS256, jwt.MapClaims{"sub": "42", "exp": exp}),
			wantErr: ErrInvalidToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			caller, err := v.Authenticate(context.Background(), tt.header)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantRole, caller.Role)
		})
	}
}

func TestCallerContext(t *testing.T) {
	_, ok := CallerFrom(context.Background())
	assert.False(t, ok)

	c := calendar.NewCaller(uuid.New(), true)
	got, ok := CallerFrom(WithCaller(context.Background(), c))
	require.True(t, ok)
	assert.Equal(t, c, got)
}
