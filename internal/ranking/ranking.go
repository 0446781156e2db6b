// Package ranking 把已审核的活动报告汇总为积分排行榜并划分等级
//
// 包内全部是纯函数，不做 I/O，也不返回错误。
package ranking

import (
	"citizens-link/internal/model"
	"sort"
	"strings"
)

type PointPolicy string

const (
	// PolicyLive 按活动当前积分计算，修改活动积分会追溯影响历史
	PolicyLive PointPolicy = "live"
	// PolicySnapshot 优先使用审核时记录的积分快照
	PolicySnapshot PointPolicy = "snapshot"
)

const DefaultAnonymous = "익명"

// Report 参与汇总的一条报告
type Report struct {
	UserName      string
	Status        model.ReportStatus
	BasePoints    *int // 关联活动的当前积分，未关联为 nil
	AwardedPoints *int // 审核时的积分快照
}

type Entry struct {
	Rank  int    `json:"rank" excel:"순위"`
	Name  string `json:"name" excel:"성함"`
	Point int    `json:"point" excel:"포인트"`
}

type Options struct {
	Policy         PointPolicy
	FallbackPoints int    // 缺少关联积分时使用
	Anonymous      string // 姓名为空时使用
}

func DefaultOptions() Options {
	return Options{Policy: PolicyLive, Anonymous: DefaultAnonymous}
}

// FromModels 把存储层返回的报告转换为汇总输入
func FromModels(reports []model.ActivityReport) []Report {
	out := make([]Report, 0, len(reports))
	for i := range reports {
		out = append(out, Report{
			UserName:      reports[i].UserName,
			Status:        reports[i].Status,
			BasePoints:    reports[i].BasePoints(),
			AwardedPoints: reports[i].AwardedPoints,
		})
	}
	return out
}

// Compute 汇总已审核报告：按姓名分组求和，积分降序，同分按姓名升序
// 同名的不同市民会被合并为一人
func Compute(reports []Report, opts Options) []Entry {
	totals := make(map[string]int)
	for _, r := range reports {
		if r.Status != model.ReportApproved {
			continue
		}
		totals[normalizeName(r.UserName, opts.anonymous())] += opts.points(r)
	}

	entries := make([]Entry, 0, len(totals))
	for name, point := range totals {
		entries = append(entries, Entry{Name: name, Point: point})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Point != entries[j].Point {
			return entries[i].Point > entries[j].Point
		}
		return entries[i].Name < entries[j].Name
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}

// RankOf 按姓名精确查找名次，从 1 开始
// 姓名与汇总时同样归一化，空白姓名对应默认匿名条目
func RankOf(entries []Entry, name string) (int, bool) {
	return DefaultOptions().RankOf(entries, name)
}

// RankOf 使用 o.Anonymous 归一化空白姓名
func (o Options) RankOf(entries []Entry, name string) (int, bool) {
	target := normalizeName(name, o.anonymous())
	for i, e := range entries {
		if e.Name == target {
			return i + 1, true
		}
	}
	return 0, false
}

// Search 返回第一个姓名包含 term 的条目的名次，term 为空视为未找到
func Search(entries []Entry, term string) (int, bool) {
	term = strings.TrimSpace(term)
	if term == "" {
		return 0, false
	}
	for i, e := range entries {
		if strings.Contains(e.Name, term) {
			return i + 1, true
		}
	}
	return 0, false
}

func (o Options) points(r Report) int {
	if o.Policy == PolicySnapshot && r.AwardedPoints != nil {
		return *r.AwardedPoints
	}
	if r.BasePoints != nil {
		return *r.BasePoints
	}
	return o.FallbackPoints
}

func (o Options) anonymous() string {
	if o.Anonymous == "" {
		return DefaultAnonymous
	}
	return o.Anonymous
}

func normalizeName(name, anonymous string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return anonymous
	}
	return name
}
