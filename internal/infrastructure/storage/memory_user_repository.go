package storage

import (
	"context"
	"sync"

	"imgfilter/internal/domain/entity"
	"imgfilter/internal/domain/port"
)

// MemoryUserRepository in-memory хранилище пользователей бота
type MemoryUserRepository struct {
	mu    sync.Mutex
	users map[int64]entity.User
}

// NewMemoryUserRepository создаёт новое in-memory хранилище
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{
		users: make(map[int64]entity.User),
	}
}

// Get возвращает копию пользователя, создаёт нового если не найден
func (r *MemoryUserRepository) Get(ctx context.Context, userID, chatID int64) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, exists := r.users[userID]
	if !exists {
		user = *entity.NewUser(userID, chatID)
		r.users[userID] = user
	}

	return copyUser(user), nil
}

// Save сохраняет пользователя целиком
func (r *MemoryUserRepository) Save(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	r.users[user.ID] = *copyUser(*user)
	r.mu.Unlock()

	return nil
}

// UpdateThreshold задаёт или сбрасывает личный порог
func (r *MemoryUserRepository) UpdateThreshold(ctx context.Context, userID int64, th *entity.Threshold) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user, exists := r.users[userID]; exists {
		user.Threshold = nil
		if th != nil {
			user.SetThreshold(*th)
		}
		r.users[userID] = user
	}

	return nil
}

// copyUser отвязывает указатель на порог от хранилища
func copyUser(u entity.User) *entity.User {
	if u.Threshold != nil {
		th := *u.Threshold
		u.Threshold = &th
	}
	return &u
}

// Проверка реализации интерфейса
var _ port.UserRepository = (*MemoryUserRepository)(nil)
