package mysql

import (
	"time"

	"gorm.io/gorm"
)

// UserModel 账户目录，Type 区分 Buyer/Seller/Admin
type UserModel struct {
	gorm.Model
	UID      string `gorm:"column:uid;type:varchar(64);uniqueIndex;not null"`
	Username string `gorm:"column:username;type:varchar(255);not null"`
	ImageURL string `gorm:"column:image_url;type:varchar(512)"`
	Type     string `gorm:"column:type;type:varchar(32);index;not null"`
}

func (UserModel) TableName() string { return "users" }

// ListingModel 商品，按 seller_uid 划分分区
type ListingModel struct {
	gorm.Model
	ListingID              string    `gorm:"column:listing_id;type:varchar(64);uniqueIndex;not null"`
	SellerUID              string    `gorm:"column:seller_uid;type:varchar(64);index;not null"`
	Title                  string    `gorm:"column:title;type:varchar(255)"`
	Price                  float64   `gorm:"column:price;type:decimal(20,8)"`
	Rating                 float64   `gorm:"column:rating"`
	Description            string    `gorm:"column:description;type:text"`
	TransactionInformation string    `gorm:"column:transaction_information;type:text"`
	ProcurementInformation string    `gorm:"column:procurement_information;type:text"`
	Category               string    `gorm:"column:category;type:varchar(100);index"`
	Stock                  int       `gorm:"column:stock;not null;default:0"`
	Image1                 string    `gorm:"column:image1;type:varchar(512)"`
	Image2                 string    `gorm:"column:image2;type:varchar(512)"`
	Image3                 string    `gorm:"column:image3;type:varchar(512)"`
	Image4                 string    `gorm:"column:image4;type:varchar(512)"`
	AdvertisementPoints    int       `gorm:"column:advertisement_points;not null;default:0"`
	IsDiscounted           bool      `gorm:"column:is_discounted;not null;default:false"`
	IsRestocked            bool      `gorm:"column:is_restocked;not null;default:false"`
	IsUsed                 bool      `gorm:"column:is_used;not null;default:false"`
	IsActive               bool      `gorm:"column:is_active;not null;default:true"`
	Location               string    `gorm:"column:location;type:varchar(255)"`
	ListedTime             time.Time `gorm:"column:listed_time;not null"`
	NumberSold             int       `gorm:"column:number_sold;not null;default:0"`
}

func (ListingModel) TableName() string { return "listings" }

// LikeModel 用户点赞记录
type LikeModel struct {
	gorm.Model
	UserID    string `gorm:"column:user_id;type:varchar(64);index;not null"`
	ListingID string `gorm:"column:listing_id;type:varchar(64);index;not null"`
}

func (LikeModel) TableName() string { return "likes" }

// FollowModel 用户关注卖家的记录
type FollowModel struct {
	gorm.Model
	UserID    string `gorm:"column:user_id;type:varchar(64);index;not null"`
	SellerUID string `gorm:"column:seller_uid;type:varchar(64);index;not null"`
}

func (FollowModel) TableName() string { return "follows" }

// CategoryModel 分类目录
type CategoryModel struct {
	gorm.Model
	Name string `gorm:"column:name;type:varchar(100);uniqueIndex;not null"`
}

func (CategoryModel) TableName() string { return "categories" }

// CategorySubscriptionModel 用户订阅的分类
type CategorySubscriptionModel struct {
	gorm.Model
	UserID       string `gorm:"column:user_id;type:varchar(64);index;not null"`
	CategoryName string `gorm:"column:category_name;type:varchar(100);not null"`
}

func (CategorySubscriptionModel) TableName() string { return "category_subscriptions" }

// ProcurementTypeModel 采购方式
type ProcurementTypeModel struct {
	gorm.Model
	Name string `gorm:"column:name;type:varchar(100);uniqueIndex;not null"`
}

func (ProcurementTypeModel) TableName() string { return "procurement_types" }

// PaymentTypeModel 支付方式
type PaymentTypeModel struct {
	gorm.Model
	Name string `gorm:"column:name;type:varchar(100);uniqueIndex;not null"`
}

func (PaymentTypeModel) TableName() string { return "payment_types" }
