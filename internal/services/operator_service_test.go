package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"vipgate/internal/models/request_models"
	"vipgate/internal/repositories"
	"vipgate/pkg/utils"
)

func TestRegisterAndLogin(t *testing.T) {
	db := newTestDB(t)
	svc := NewOperatorService(repositories.NewOperatorRepository(db), zap.NewNop())

	session, err := svc.Register(context.Background(), request_models.SignUpRequest{
		Name:     "Ana",
		Email:    "ana@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)
	assert.Equal(t, "Ana", session.Name)

	session, err = svc.Login(context.Background(), request_models.LoginRequest{
		Email:    "ana@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	svc := NewOperatorService(repositories.NewOperatorRepository(db), zap.NewNop())

	req := request_models.SignUpRequest{Name: "Ana", Email: "ana@example.com", Password: "supersecret"}
	_, err := svc.Register(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), req)
	assert.ErrorIs(t, err, utils.ErrEmailAlreadyInUse)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	db := newTestDB(t)
	svc := NewOperatorService(repositories.NewOperatorRepository(db), zap.NewNop())

	_, err := svc.Register(context.Background(), request_models.SignUpRequest{
		Name:     "Ana",
		Email:    "ana@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), request_models.LoginRequest{
		Email:    "ana@example.com",
		Password: "wrongpass",
	})
	assert.ErrorIs(t, err, utils.ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), request_models.LoginRequest{
		Email:    "nobody@example.com",
		Password: "supersecret",
	})
	assert.ErrorIs(t, err, utils.ErrInvalidCredentials)
}
