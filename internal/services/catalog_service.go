package services

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"vipgate/internal/models/db_models"
	"vipgate/internal/models/request_models"
	"vipgate/internal/repositories"
	"vipgate/pkg/utils"
)

// CatalogService manages the sellable items of one bot. Every call checks bot
// ownership first; plan and package IDs are only meaningful under a bot the
// operator owns.
type CatalogService interface {
	CreatePlan(ctx context.Context, operatorID, botID string, req request_models.PlanRequest) (*db_models.Plan, error)
	ListPlans(ctx context.Context, operatorID, botID string) ([]db_models.Plan, error)
	UpdatePlan(ctx context.Context, operatorID, botID, planID string, req request_models.PlanRequest) (*db_models.Plan, error)
	DeletePlan(ctx context.Context, operatorID, botID, planID string) error

	CreatePackage(ctx context.Context, operatorID, botID string, req request_models.PackageRequest) (*db_models.Package, error)
	ListPackages(ctx context.Context, operatorID, botID string) ([]db_models.Package, error)
	UpdatePackage(ctx context.Context, operatorID, botID, packageID string, req request_models.PackageRequest) (*db_models.Package, error)
	DeletePackage(ctx context.Context, operatorID, botID, packageID string) error
}

type catalogService struct {
	botRepo     repositories.IBotRepository
	planRepo    repositories.IPlanRepository
	packageRepo repositories.IPackageRepository
	logger      *zap.Logger
}

func NewCatalogService(
	botRepo repositories.IBotRepository,
	planRepo repositories.IPlanRepository,
	packageRepo repositories.IPackageRepository,
	logger *zap.Logger,
) CatalogService {
	return &catalogService{
		botRepo:     botRepo,
		planRepo:    planRepo,
		packageRepo: packageRepo,
		logger:      logger,
	}
}

func (s *catalogService) CreatePlan(ctx context.Context, operatorID, botID string, req request_models.PlanRequest) (*db_models.Plan, error) {
	bot, err := s.checkOwnership(ctx, operatorID, botID)
	if err != nil {
		return nil, err
	}

	plan := &db_models.Plan{BotID: bot.ID}
	applyPlanRequest(plan, req)

	if err := s.planRepo.Create(ctx, plan); err != nil {
		s.logger.Error("create plan", zap.String("bot_id", botID), zap.Error(err))
		return nil, utils.ErrDatabaseError
	}
	return plan, nil
}

func (s *catalogService) ListPlans(ctx context.Context, operatorID, botID string) ([]db_models.Plan, error) {
	if _, err := s.checkOwnership(ctx, operatorID, botID); err != nil {
		return nil, err
	}

	plans, err := s.planRepo.ListByBot(ctx, botID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	return plans, nil
}

func (s *catalogService) UpdatePlan(ctx context.Context, operatorID, botID, planID string, req request_models.PlanRequest) (*db_models.Plan, error) {
	if _, err := s.checkOwnership(ctx, operatorID, botID); err != nil {
		return nil, err
	}

	plan, err := s.planRepo.GetByID(ctx, planID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if plan == nil || plan.BotID.String() != botID {
		return nil, utils.ErrPlanNotFound
	}

	applyPlanRequest(plan, req)

	if err := s.planRepo.Update(ctx, plan); err != nil {
		s.logger.Error("update plan", zap.String("plan_id", planID), zap.Error(err))
		return nil, utils.ErrDatabaseError
	}
	return plan, nil
}

func (s *catalogService) DeletePlan(ctx context.Context, operatorID, botID, planID string) error {
	if _, err := s.checkOwnership(ctx, operatorID, botID); err != nil {
		return err
	}

	plan, err := s.planRepo.GetByID(ctx, planID)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if plan == nil || plan.BotID.String() != botID {
		return utils.ErrPlanNotFound
	}

	if err := s.planRepo.Delete(ctx, planID); err != nil {
		s.logger.Error("delete plan", zap.String("plan_id", planID), zap.Error(err))
		return utils.ErrDatabaseError
	}
	return nil
}

func (s *catalogService) CreatePackage(ctx context.Context, operatorID, botID string, req request_models.PackageRequest) (*db_models.Package, error) {
	bot, err := s.checkOwnership(ctx, operatorID, botID)
	if err != nil {
		return nil, err
	}

	pkg := &db_models.Package{BotID: bot.ID}
	applyPackageRequest(pkg, req)

	if err := s.packageRepo.Create(ctx, pkg); err != nil {
		s.logger.Error("create package", zap.String("bot_id", botID), zap.Error(err))
		return nil, utils.ErrDatabaseError
	}
	return pkg, nil
}

func (s *catalogService) ListPackages(ctx context.Context, operatorID, botID string) ([]db_models.Package, error) {
	if _, err := s.checkOwnership(ctx, operatorID, botID); err != nil {
		return nil, err
	}

	pkgs, err := s.packageRepo.ListByBot(ctx, botID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	return pkgs, nil
}

func (s *catalogService) UpdatePackage(ctx context.Context, operatorID, botID, packageID string, req request_models.PackageRequest) (*db_models.Package, error) {
	if _, err := s.checkOwnership(ctx, operatorID, botID); err != nil {
		return nil, err
	}

	pkg, err := s.packageRepo.GetByID(ctx, packageID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if pkg == nil || pkg.BotID.String() != botID {
		return nil, utils.ErrPackageNotFound
	}

	applyPackageRequest(pkg, req)

	if err := s.packageRepo.Update(ctx, pkg); err != nil {
		s.logger.Error("update package", zap.String("package_id", packageID), zap.Error(err))
		return nil, utils.ErrDatabaseError
	}
	return pkg, nil
}

func (s *catalogService) DeletePackage(ctx context.Context, operatorID, botID, packageID string) error {
	if _, err := s.checkOwnership(ctx, operatorID, botID); err != nil {
		return err
	}

	pkg, err := s.packageRepo.GetByID(ctx, packageID)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if pkg == nil || pkg.BotID.String() != botID {
		return utils.ErrPackageNotFound
	}

	if err := s.packageRepo.Delete(ctx, packageID); err != nil {
		s.logger.Error("delete package", zap.String("package_id", packageID), zap.Error(err))
		return utils.ErrDatabaseError
	}
	return nil
}

func (s *catalogService) checkOwnership(ctx context.Context, operatorID, botID string) (*db_models.Bot, error) {
	bot, err := s.botRepo.GetByID(ctx, botID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if bot == nil || bot.OperatorID.String() != operatorID {
		return nil, utils.ErrBotNotFound
	}
	return bot, nil
}

func applyPlanRequest(plan *db_models.Plan, req request_models.PlanRequest) {
	plan.Name = req.Name
	plan.Description = req.Description
	plan.DurationType = db_models.DurationType(req.DurationType)
	plan.Price = req.Price
	if req.IsActive != nil {
		plan.IsActive = *req.IsActive
	} else {
		plan.IsActive = true
	}

	// Days are derived from the type unless an explicit count came in;
	// LIFETIME always stores zero.
	plan.DurationDays = req.DurationDays
	if plan.DurationDays <= 0 {
		switch plan.DurationType {
		case db_models.DurationDaily:
			plan.DurationDays = 1
		case db_models.DurationWeekly:
			plan.DurationDays = 7
		case db_models.DurationMonthly:
			plan.DurationDays = 30
		}
	}
	if plan.DurationType == db_models.DurationLifetime {
		plan.DurationDays = 0
	}

	plan.OrderBumpEnabled = req.OrderBumpEnabled
	plan.OrderBumpName = req.OrderBumpName
	plan.OrderBumpDescription = req.OrderBumpDescription
	plan.OrderBumpPrice = req.OrderBumpPrice
	plan.OrderBumpAcceptText = req.OrderBumpAcceptText
	plan.OrderBumpRejectText = req.OrderBumpRejectText
	plan.OrderBumpMediaURL = req.OrderBumpMediaURL
}

func applyPackageRequest(pkg *db_models.Package, req request_models.PackageRequest) {
	pkg.Name = req.Name
	pkg.Description = req.Description
	pkg.Price = req.Price
	if req.IsActive != nil {
		pkg.IsActive = *req.IsActive
	} else {
		pkg.IsActive = true
	}

	pkg.OrderBumpEnabled = req.OrderBumpEnabled
	pkg.OrderBumpName = req.OrderBumpName
	pkg.OrderBumpDescription = req.OrderBumpDescription
	pkg.OrderBumpPrice = req.OrderBumpPrice
	pkg.OrderBumpMediaURL = req.OrderBumpMediaURL

	if req.Deliverables != nil {
		if raw, err := json.Marshal(req.Deliverables); err == nil {
			pkg.Deliverables = raw
		}
	}
}
