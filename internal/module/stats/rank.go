package stats

import (
	"citizens-link/internal/global/bucket"
	"citizens-link/internal/global/response"
	"citizens-link/internal/leaderboard"
	"citizens-link/internal/module/stats/tool"
	"citizens-link/internal/ranking"
	"citizens-link/internal/store"
	"citizens-link/tools"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

// SearchResp 未找到时 Found 为 false，不视为错误
type SearchResp struct {
	Found bool             `json:"found"`
	Entry *leaderboard.Row `json:"entry,omitempty"`
}

// Rank 分页的完整排行榜
func Rank(c *gin.Context) {
	entries, ok := rankings(c)
	if !ok {
		return
	}
	page, offset, limit := tool.GetPage(c, 30, 300)
	start, end := tool.Window(len(entries), offset, limit)
	response.Success(c, gin.H{
		"list":      leaderboard.Rows(entries[start:end], leaderboard.Tiers()),
		"total":     len(entries),
		"page":      page,
		"page_size": limit,
	})
}

// Search 按姓名片段查找最靠前的一位
func Search(c *gin.Context) {
	lookup(c, ranking.Search)
}

// Exact 按完整姓名查找
func Exact(c *gin.Context) {
	lookup(c, leaderboard.Options().RankOf)
}

func lookup(c *gin.Context, find func([]ranking.Entry, string) (int, bool)) {
	name := c.Query("name")
	if strings.TrimSpace(name) == "" {
		response.Fail(c, response.ErrInvalidRequest.WithTips("성함을 입력해주세요."))
		return
	}
	entries, ok := rankings(c)
	if !ok {
		return
	}
	response.Success(c, Lookup(entries, name, find))
}

// Lookup 查找并附带等级
func Lookup(entries []ranking.Entry, name string, find func([]ranking.Entry, string) (int, bool)) SearchResp {
	rank, found := find(entries, name)
	if !found {
		return SearchResp{}
	}
	row := leaderboard.NewRow(entries[rank-1], leaderboard.Tiers())
	return SearchResp{Found: true, Entry: &row}
}

// Tier 积分对应的等级
func Tier(c *gin.Context) {
	point, err := strconv.Atoi(c.Query("point"))
	if err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	response.Success(c, leaderboard.Tiers().Classify(point))
}

func Tiers(c *gin.Context) {
	response.Success(c, leaderboard.Tiers().Tiers())
}

// Export 下载完整排行榜 xlsx
func Export(c *gin.Context) {
	f, err := leaderboard.Workbook(c.Request.Context(), store.Default)
	if err != nil {
		log.Error("生成排行榜表格失败", "error", err)
		response.Fail(c, response.ErrExport.WithOrigin(err))
		return
	}
	defer f.Close()
	if err := tools.SendExcel(c, f, leaderboard.FileName(time.Now())); err != nil {
		log.Error("输出排行榜表格失败", "error", err)
		response.Fail(c, response.ErrExport.WithOrigin(err))
	}
}

// Archive 上传排行榜快照到对象存储，返回预签名下载地址
func Archive(c *gin.Context) {
	archived, err := leaderboard.Archive(c.Request.Context(), store.Default, archive)
	switch {
	case errors.Is(err, bucket.ErrNotConfigured):
		response.Fail(c, response.ErrInvalidRequest.WithTips("S3 저장소가 설정되지 않았습니다."))
		return
	case err != nil:
		log.Error("归档排行榜失败", "error", err)
		response.Fail(c, response.ErrExport.WithOrigin(err))
		return
	}
	response.Success(c, archived)
}

func rankings(c *gin.Context) ([]ranking.Entry, bool) {
	entries, err := leaderboard.Rankings(c.Request.Context(), store.Default)
	if err != nil {
		log.Error("计算排行榜失败", "error", err)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return nil, false
	}
	return entries, true
}
