package mysql

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/wyfcoding/marketplace/internal/catalog/domain"
)

type sellerDirectory struct{ db *gorm.DB }

// NewSellerDirectory 创建基于 MySQL 的卖家目录
func NewSellerDirectory(db *gorm.DB) domain.SellerDirectory {
	return &sellerDirectory{db: db}
}

func (r *sellerDirectory) ListSellers(ctx context.Context) ([]domain.Seller, error) {
	var users []UserModel
	err := r.db.WithContext(ctx).
		Where("type = ?", string(domain.AccountSeller)).
		Find(&users).Error
	if err != nil {
		return nil, &domain.DirectoryError{Op: "list sellers", Err: err}
	}

	sellers := make([]domain.Seller, 0, len(users))
	for _, u := range users {
		// 名称或 UID 为空的记录视为未完成注册，跳过
		if u.Username == "" || u.UID == "" {
			continue
		}
		sellers = append(sellers, domain.Seller{
			Name:     u.Username,
			UID:      u.UID,
			ImageURL: u.ImageURL,
		})
	}
	return sellers, nil
}

func (r *sellerDirectory) AccountTypeOf(ctx context.Context, uid string) (domain.AccountType, error) {
	var user UserModel
	err := r.db.WithContext(ctx).Where("uid = ?", uid).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", fmt.Errorf("user %s not found", uid)
		}
		return "", &domain.DirectoryError{Op: "account type", Err: err}
	}
	return domain.AccountType(user.Type), nil
}
