package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/wyfcoding/marketplace/internal/catalog/domain"
)

type listingPartition struct{ db *gorm.DB }

// NewListingPartition 创建基于 MySQL 的商品分区仓储
func NewListingPartition(db *gorm.DB) domain.ListingPartition {
	return &listingPartition{db: db}
}

func (r *listingPartition) FetchRaw(ctx context.Context, sellerUID string) ([]domain.RawListing, error) {
	var models []ListingModel
	err := r.db.WithContext(ctx).
		Where("seller_uid = ? AND is_active = ?", sellerUID, true).
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	raws := make([]domain.RawListing, 0, len(models))
	for _, m := range models {
		raws = append(raws, domain.RawListing{
			ListingID:              m.ListingID,
			Title:                  m.Title,
			Price:                  m.Price,
			Rating:                 m.Rating,
			Description:            m.Description,
			TransactionInformation: m.TransactionInformation,
			ProcurementInformation: m.ProcurementInformation,
			Category:               m.Category,
			Stock:                  m.Stock,
			Image1:                 m.Image1,
			Image2:                 m.Image2,
			Image3:                 m.Image3,
			Image4:                 m.Image4,
			AdvertisementPoints:    m.AdvertisementPoints,
			IsDiscounted:           m.IsDiscounted,
			IsRestocked:            m.IsRestocked,
			IsUsed:                 m.IsUsed,
			Location:               m.Location,
			ListedTime:             m.ListedTime,
			NumberSold:             m.NumberSold,
		})
	}
	return raws, nil
}
