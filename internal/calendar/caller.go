package calendar

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// Ошибки проверки вызывающего.
var (
	ErrInvalidCallerID = errors.New("invalid caller id")
	ErrCallerNotFound  = errors.New("caller not found")
)

// Role пользователя. Определяется один раз на границе и дальше передаётся явно.
type Role string

const (
	RoleClient Role = "client"
	RoleAdmin  Role = "admin"
)

// Actor — кто отменил запись; пишется в журнал отмен.
type Actor string

const (
	ActorUser  Actor = "user"
	ActorAdmin Actor = "admin"
)

// Caller — аутентифицированный вызывающий.
type Caller struct {
	ClientID uuid.UUID
	Role     Role
}

func NewCaller(clientID uuid.UUID, isAdmin bool) Caller {
	role := RoleClient
	if isAdmin {
		role = RoleAdmin
	}
	return Caller{ClientID: clientID, Role: role}
}

func (c Caller) IsAdmin() bool { return c.Role == RoleAdmin }

// Owns — вызывающий является владельцем записи.
func (c Caller) Owns(clientID uuid.UUID) bool { return c.ClientID == clientID }

// CanManage: владелец или администратор.
func (c Caller) CanManage(clientID uuid.UUID) bool { return c.IsAdmin() || c.Owns(clientID) }

func (c Caller) Actor() Actor {
	if c.IsAdmin() {
		return ActorAdmin
	}
	return ActorUser
}

// Account — то, что хранилище знает о клиенте.
type Account struct {
	ID      uuid.UUID
	IsAdmin bool
}

// AccountStore — источник данных о клиентах.
// В реале это обёртка над БД, в тестах — мок.
type AccountStore interface {
	FindAccount(ctx context.Context, id uuid.UUID) (*Account, error)
}

// ValidateCaller:
//   - проверяет идентификатор;
//   - достаёт клиента из хранилища;
//   - роль берёт из флага администратора в хранилище, а не из токена.
func ValidateCaller(ctx context.Context, store AccountStore, id uuid.UUID) (Caller, error) {
	if id == uuid.Nil {
		return Caller{}, ErrInvalidCallerID
	}

	acc, err := store.FindAccount(ctx, id)
	if err != nil {
		return Caller{}, err
	}
	if acc == nil {
		return Caller{}, ErrCallerNotFound
	}

	return NewCaller(acc.ID, acc.IsAdmin), nil
}
