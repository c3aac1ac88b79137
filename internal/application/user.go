package app

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"imgfilter/internal/domain/entity"
	"imgfilter/internal/domain/port"
)

// ErrInvalidThreshold порог не число или вне [0, 1]
var ErrInvalidThreshold = errors.New("threshold must be a number in [0, 1]")

type UserService struct {
	repo port.UserRepository
	base entity.Threshold
}

// NewUserService base порог, от которого отталкивается /invert без личного порога
func NewUserService(repo port.UserRepository, base entity.Threshold) *UserService {
	return &UserService{repo: repo, base: base}
}

func (s *UserService) Get(ctx context.Context, userID, chatID int64) (*entity.User, error) {
	return s.repo.Get(ctx, userID, chatID)
}

func (s *UserService) SetState(ctx context.Context, userID, chatID int64, state entity.UserState) (*entity.User, error) {
	user, err := s.repo.Get(ctx, userID, chatID)
	if err != nil {
		return nil, err
	}

	user.SetState(state)
	if err := s.repo.Save(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *UserService) BeginCheck(ctx context.Context, userID, chatID int64) (*entity.User, error) {
	return s.SetState(ctx, userID, chatID, entity.StateAwaitingPhoto)
}

func (s *UserService) Cancel(ctx context.Context, userID, chatID int64) (*entity.User, error) {
	return s.SetState(ctx, userID, chatID, entity.StateMainMenu)
}

// SetThreshold разбирает и сохраняет личный порог. Инверсия сохраняется.
// Пользовательский ввод проверяется строже, чем порог фильтра.
func (s *UserService) SetThreshold(ctx context.Context, userID, chatID int64, raw string) (entity.Threshold, error) {
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || value < 0 || value > 1 {
		return entity.Threshold{}, fmt.Errorf("%w: %q", ErrInvalidThreshold, raw)
	}

	user, err := s.repo.Get(ctx, userID, chatID)
	if err != nil {
		return entity.Threshold{}, err
	}

	th := s.base
	if user.Threshold != nil {
		th = *user.Threshold
	}
	th.Value = value

	if err := s.repo.UpdateThreshold(ctx, userID, &th); err != nil {
		return entity.Threshold{}, err
	}
	return th, nil
}

// ToggleInvert переключает инверсию личного порога
func (s *UserService) ToggleInvert(ctx context.Context, userID, chatID int64) (entity.Threshold, error) {
	user, err := s.repo.Get(ctx, userID, chatID)
	if err != nil {
		return entity.Threshold{}, err
	}

	th := user.ToggleInvert(s.base)
	if err := s.repo.UpdateThreshold(ctx, userID, &th); err != nil {
		return entity.Threshold{}, err
	}
	return th, nil
}

// ResetThreshold возвращает пользователя к порогам фильтров
func (s *UserService) ResetThreshold(ctx context.Context, userID, chatID int64) error {
	if _, err := s.repo.Get(ctx, userID, chatID); err != nil {
		return err
	}
	return s.repo.UpdateThreshold(ctx, userID, nil)
}
