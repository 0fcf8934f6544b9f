package services

import (
	"context"

	"go.uber.org/zap"

	"vipgate/internal/models/db_models"
	"vipgate/internal/models/request_models"
	"vipgate/internal/models/response_models"
	"vipgate/internal/repositories"
	"vipgate/pkg/utils"
)

type OperatorService interface {
	Register(ctx context.Context, req request_models.SignUpRequest) (*response_models.OperatorSession, error)
	Login(ctx context.Context, req request_models.LoginRequest) (*response_models.OperatorSession, error)
}

type operatorService struct {
	operatorRepo repositories.IOperatorRepository
	logger       *zap.Logger
}

func NewOperatorService(operatorRepo repositories.IOperatorRepository, logger *zap.Logger) OperatorService {
	return &operatorService{operatorRepo: operatorRepo, logger: logger}
}

func (s *operatorService) Register(ctx context.Context, req request_models.SignUpRequest) (*response_models.OperatorSession, error) {
	existing, err := s.operatorRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if existing != nil {
		return nil, utils.ErrEmailAlreadyInUse
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	operator := &db_models.Operator{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
	}
	if err := s.operatorRepo.Create(ctx, operator); err != nil {
		s.logger.Error("create operator", zap.String("email", req.Email), zap.Error(err))
		return nil, utils.ErrDatabaseError
	}

	token, err := utils.CreateToken(operator.ID)
	if err != nil {
		return nil, err
	}

	return &response_models.OperatorSession{
		Token: token,
		Name:  operator.Name,
		Email: operator.Email,
	}, nil
}

func (s *operatorService) Login(ctx context.Context, req request_models.LoginRequest) (*response_models.OperatorSession, error) {
	operator, err := s.operatorRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if operator == nil {
		return nil, utils.ErrInvalidCredentials
	}

	if err := utils.ComparePasswords(operator.PasswordHash, req.Password); err != nil {
		return nil, utils.ErrInvalidCredentials
	}

	token, err := utils.CreateToken(operator.ID)
	if err != nil {
		return nil, err
	}

	return &response_models.OperatorSession{
		Token: token,
		Name:  operator.Name,
		Email: operator.Email,
	}, nil
}
