package services

import (
	"context"
	"errors"
	"testing"

	"github.com/Yulian302/findit-gateway/auth/types"
	apperror "github.com/Yulian302/findit-gateway/common/errors"
	"github.com/Yulian302/findit-gateway/common/test/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSaveToken(t *testing.T) {
	tokens := &mocks.MockDeviceTokenStore{}
	svc := NewDeviceServiceImpl(tokens)

	tokens.On("Save", mock.Anything, "u1", "fcm-token").Return(nil)
	require.NoError(t, svc.SaveToken(context.Background(), alice, " fcm-token "))
	tokens.AssertExpectations(t)
}

func TestSaveToken_Errors(t *testing.T) {
	tokens := &mocks.MockDeviceTokenStore{}
	svc := NewDeviceServiceImpl(tokens)
	ctx := context.Background()

	assert.ErrorIs(t, svc.SaveToken(ctx, types.Identity{}, "t"), apperror.ErrAuthRequired)
	assert.ErrorIs(t, svc.SaveToken(ctx, alice, "  "), apperror.ErrInvalidInput)

	tokens.On("Save", mock.Anything, "u1", "t").Return(errors.New("redis down"))
	assert.ErrorIs(t, svc.SaveToken(ctx, alice, "t"), apperror.ErrInternalServer)
}
