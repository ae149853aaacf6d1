package shared

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// NormalizePagination 归一化分页参数。
func NormalizePagination(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}
	return page, pageSize
}

// ParsePagination 从查询参数读取 page/page_size，非法值回落到默认值。
func ParsePagination(c *gin.Context, defaultPageSize int) (int, int) {
	if defaultPageSize <= 0 {
		defaultPageSize = 20
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, err := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(defaultPageSize)))
	if err != nil {
		pageSize = defaultPageSize
	}
	return NormalizePagination(page, pageSize)
}
