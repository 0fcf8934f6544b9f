package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"vipgate/internal/models/db_models"
)

type IPackageRepository interface {
	GetByID(ctx context.Context, packageID string) (*db_models.Package, error)
	ListByBot(ctx context.Context, botID string) ([]db_models.Package, error)
	Create(ctx context.Context, pkg *db_models.Package) error
	Update(ctx context.Context, pkg *db_models.Package) error
	Delete(ctx context.Context, packageID string) error
}

type PackageRepository struct {
	db *gorm.DB
}

func NewPackageRepository(db *gorm.DB) IPackageRepository {
	return &PackageRepository{db: db}
}

func (r *PackageRepository) GetByID(ctx context.Context, packageID string) (*db_models.Package, error) {
	var pkg db_models.Package
	err := r.db.WithContext(ctx).First(&pkg, "id = ?", packageID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &pkg, nil
}

func (r *PackageRepository) ListByBot(ctx context.Context, botID string) ([]db_models.Package, error) {
	var pkgs []db_models.Package
	err := r.db.WithContext(ctx).Where("bot_id = ?", botID).Find(&pkgs).Error
	if err != nil {
		return nil, err
	}
	return pkgs, nil
}

func (r *PackageRepository) Create(ctx context.Context, pkg *db_models.Package) error {
	return r.db.WithContext(ctx).Create(pkg).Error
}

func (r *PackageRepository) Update(ctx context.Context, pkg *db_models.Package) error {
	return r.db.WithContext(ctx).Save(pkg).Error
}

func (r *PackageRepository) Delete(ctx context.Context, packageID string) error {
	return r.db.WithContext(ctx).Delete(&db_models.Package{}, "id = ?", packageID).Error
}
