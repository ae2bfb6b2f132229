package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/wyfcoding/marketplace/internal/catalog/domain"
)

type categoryRepository struct{ db *gorm.DB }

// NewCategoryRepository 创建基于 MySQL 的分类目录
func NewCategoryRepository(db *gorm.DB) domain.CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) ListNames(ctx context.Context) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).
		Model(&CategoryModel{}).
		Pluck("name", &names).Error
	if err != nil {
		return nil, &domain.DirectoryError{Op: "list categories", Err: err}
	}
	return names, nil
}

type referenceRepository struct{ db *gorm.DB }

// NewReferenceRepository 创建基于 MySQL 的参考数据仓储
func NewReferenceRepository(db *gorm.DB) domain.ReferenceRepository {
	return &referenceRepository{db: db}
}

func (r *referenceRepository) ProcurementTypes(ctx context.Context) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).
		Model(&ProcurementTypeModel{}).
		Order("name asc").
		Pluck("name", &names).Error
	if err != nil {
		return nil, err
	}
	return names, nil
}

func (r *referenceRepository) PaymentTypes(ctx context.Context) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).
		Model(&PaymentTypeModel{}).
		Order("name asc").
		Pluck("name", &names).Error
	if err != nil {
		return nil, err
	}
	return names, nil
}
