package domain

import (
	"fmt"
	"time"
)

// User is the master of recipes and shopping lists.
type User struct {
	ID           uint
	TelegramID   int64
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewUser creates a user stamped with the clock's current time.
func NewUser(name, email, passwordHash string, clock Clock) User {
	now := clockOrSystem(clock).Now()
	return User{
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func (u User) String() string {
	return fmt.Sprintf("<Пользователь: %s, %s>", u.Name, u.Email)
}
