package domain

import "fmt"

// PartitionFetchError 单个卖家分区抓取失败，聚合时跳过该卖家
type PartitionFetchError struct {
	SellerUID string
	Err       error
}

func (e *PartitionFetchError) Error() string {
	return fmt.Sprintf("fetch partition of seller %s: %v", e.SellerUID, e.Err)
}

func (e *PartitionFetchError) Unwrap() error { return e.Err }

// DirectoryError 卖家或分类目录不可用，本次重建整体失败，保留旧快照
type DirectoryError struct {
	Op  string
	Err error
}

func (e *DirectoryError) Error() string {
	return fmt.Sprintf("directory %s: %v", e.Op, e.Err)
}

func (e *DirectoryError) Unwrap() error { return e.Err }

// UserLookupError 用户数据查询失败，个性化覆盖降级为原样返回
type UserLookupError struct {
	UserID string
	Err    error
}

func (e *UserLookupError) Error() string {
	return fmt.Sprintf("lookup user %s: %v", e.UserID, e.Err)
}

func (e *UserLookupError) Unwrap() error { return e.Err }
