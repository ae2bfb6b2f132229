package domain

// AccountType 账户类型
type AccountType string

const (
	AccountBuyer  AccountType = "Buyer"
	AccountSeller AccountType = "Seller"
	AccountAdmin  AccountType = "Admin"
)

// Clearance 返回账户的权限等级。任何已知类型都解析到声明顺序中
// 最后一个匹配分支的等级（沿用线上服务的历史行为），未知类型返回 -1，
// 使无效用户无法通过任何权限校验。
func (t AccountType) Clearance() int {
	switch t {
	case AccountBuyer, AccountSeller, AccountAdmin:
		return 3
	default:
		return -1
	}
}
