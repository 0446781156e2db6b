package tool

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
)

// GetPage 从查询参数读取分页，可变参数依次是 defaultPageSize, maxPageSize
func GetPage(c *gin.Context, defaults ...int) (page, offset, limit int) {
	defaultPageSize, maxPageSize := 30, 300
	if len(defaults) > 0 && defaults[0] > 0 {
		defaultPageSize = defaults[0]
	}
	if len(defaults) > 1 && defaults[1] > 0 {
		maxPageSize = defaults[1]
	}

	limit, err := strconv.Atoi(c.Query("page_size"))
	if err != nil || limit < 1 {
		limit = defaultPageSize
	} else if limit > maxPageSize {
		limit = maxPageSize
	}
	page, err = strconv.Atoi(c.Query("page"))
	if err != nil || page < 1 {
		page = 1
	} else if page > maxPage(limit) {
		page = maxPage(limit)
	}
	offset = (page - 1) * limit
	return
}

// maxPage 保证 (page-1)*limit 不溢出
func maxPage(limit int) int {
	return math.MaxInt/limit + 1
}

// Window 返回 [offset, offset+limit) 与 [0, total) 的交集
func Window(total, offset, limit int) (start, end int) {
	if offset < 0 {
		offset = 0
	}
	if limit < 0 {
		limit = 0
	}
	if offset >= total {
		return total, total
	}
	end = offset + limit
	if end > total || end < offset {
		end = total
	}
	return offset, end
}
