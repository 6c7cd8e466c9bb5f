package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/Yulian302/findit-gateway/auth/types"
	apperror "github.com/Yulian302/findit-gateway/common/errors"
	"github.com/Yulian302/findit-gateway/store"
)

type DeviceService interface {
	SaveToken(ctx context.Context, id types.Identity, token string) error
}

type DeviceServiceImpl struct {
	tokens store.DeviceTokenStore
}

func NewDeviceServiceImpl(tokens store.DeviceTokenStore) *DeviceServiceImpl {
	return &DeviceServiceImpl{tokens: tokens}
}

func (s *DeviceServiceImpl) SaveToken(ctx context.Context, id types.Identity, token string) error {
	if id.IsZero() {
		return apperror.ErrAuthRequired
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return fmt.Errorf("%w: token is empty", apperror.ErrInvalidInput)
	}

	if err := s.tokens.Save(ctx, id.UserID, token); err != nil {
		return fmt.Errorf("%w: %w", apperror.ErrInternalServer, err)
	}
	return nil
}
