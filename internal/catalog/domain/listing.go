package domain

import "time"

// StockStatus 库存状态，折扣优先级最高
type StockStatus int

const (
	StockNormal     StockStatus = 1
	StockRestocked  StockStatus = 2
	StockRunningOut StockStatus = 3
	StockDiscounted StockStatus = 4
)

// Seller 卖家信息的去规范化副本
type Seller struct {
	Name     string `json:"Name"`
	UID      string `json:"UID"`
	ImageURL string `json:"ImageURL"`
}

// RawListing 分区中持久化的原始商品数据
type RawListing struct {
	ListingID              string
	Title                  string
	Price                  float64
	Rating                 float64
	Description            string
	TransactionInformation string
	ProcurementInformation string
	Category               string
	Stock                  int
	Image1                 string
	Image2                 string
	Image3                 string
	Image4                 string
	AdvertisementPoints    int
	IsDiscounted           bool
	IsRestocked            bool
	IsUsed                 bool
	Location               string
	ListedTime             time.Time
	NumberSold             int
}

// Listing 聚合后的商品实体，Performance 为排名分值
type Listing struct {
	ListingID              string      `json:"ListingID"`
	Title                  string      `json:"Title"`
	SellerName             string      `json:"sellerName"`
	SellerUID              string      `json:"sellerUID"`
	SellerImageURL         string      `json:"sellerImageURL"`
	Likes                  int         `json:"Likes"`
	ListedTime             time.Time   `json:"ListedTime"`
	Price                  float64     `json:"Price"`
	Rating                 float64     `json:"Rating"`
	Description            string      `json:"Description"`
	TransactionInformation string      `json:"TransactionInformation"`
	ProcurementInformation string      `json:"ProcurementInformation"`
	Category               string      `json:"Category"`
	Stock                  int         `json:"Stock"`
	NumberSold             int         `json:"NumberSold"`
	Images                 []string    `json:"Images"`
	Performance            float64     `json:"Performance"`
	IsAdvert               bool        `json:"isAdvert"`
	UserLiked              bool        `json:"userLiked"`
	StockStatus            StockStatus `json:"StockStatus"`
	IsUsed                 bool        `json:"isUsed"`
	Location               string      `json:"Location"`
}

// NewListing 由原始分区数据、卖家信息和点赞数构建商品实体。
// 标题为空视为无效商品（上游部分写入的残留），返回 ok=false。
func NewListing(raw RawListing, seller Seller, likes int, now time.Time) (Listing, bool) {
	if raw.Title == "" {
		return Listing{}, false
	}

	l := Listing{
		ListingID:              raw.ListingID,
		Title:                  raw.Title,
		SellerName:             seller.Name,
		SellerUID:              seller.UID,
		SellerImageURL:         seller.ImageURL,
		Likes:                  likes,
		ListedTime:             raw.ListedTime,
		Price:                  raw.Price,
		Rating:                 raw.Rating,
		Description:            raw.Description,
		TransactionInformation: raw.TransactionInformation,
		ProcurementInformation: raw.ProcurementInformation,
		Category:               raw.Category,
		Stock:                  raw.Stock,
		NumberSold:             raw.NumberSold,
		IsAdvert:               raw.AdvertisementPoints != 0,
		UserLiked:              false,
		IsUsed:                 raw.IsUsed,
		Location:               raw.Location,
	}

	// 折扣在排名算法中贡献最大，优先于其余状态
	switch {
	case raw.IsDiscounted:
		l.StockStatus = StockDiscounted
	case raw.Stock <= 10:
		l.StockStatus = StockRunningOut
	case raw.IsRestocked:
		l.StockStatus = StockRestocked
	default:
		l.StockStatus = StockNormal
	}

	images := make([]string, 0, 4)
	for _, img := range []string{raw.Image1, raw.Image2, raw.Image3, raw.Image4} {
		if img != "" {
			images = append(images, img)
		}
	}
	l.Images = images

	l.Performance = RankScore(likes, raw.ListedTime, now, raw.AdvertisementPoints)

	return l, true
}

// RankScore 排名分值：单位时间内的点赞数乘以广告权重。
// 时间差以毫秒计，下限为 1，避免刚上架的商品除零。
func RankScore(likes int, listed, now time.Time, advertisementPoints int) float64 {
	elapsed := now.UnixMilli() - listed.UnixMilli()
	if elapsed < 1 {
		elapsed = 1
	}
	weight := advertisementPoints
	if weight < 1 {
		weight = 1
	}
	return float64(likes) / float64(elapsed) * float64(weight)
}
