package ranking

import (
	"sort"

	"github.com/pkg/errors"
)

type Tier struct {
	Level    int    `json:"level"`
	Name     string `json:"name"`
	Style    string `json:"style"`
	MinPoint int    `json:"min_point"`
}

// TierTable 按门槛升序排列的等级表
type TierTable struct {
	tiers []Tier
}

var DefaultTierTable = TierTable{tiers: []Tier{
	{Level: 0, Name: "씨앗", Style: "seed", MinPoint: 0},
	{Level: 1, Name: "새싹", Style: "sprout", MinPoint: 100},
	{Level: 2, Name: "나무", Style: "tree", MinPoint: 1000},
	{Level: 3, Name: "숲", Style: "forest", MinPoint: 2000},
}}

// NewTierTable 校验等级表：非空，第一档门槛为 0，门槛严格递增
// Level 按顺序重新编号
func NewTierTable(tiers []Tier) (TierTable, error) {
	if len(tiers) == 0 {
		return TierTable{}, errors.New("tier table is empty")
	}
	if tiers[0].MinPoint != 0 {
		return TierTable{}, errors.Errorf("first tier %q must start at 0, got %d", tiers[0].Name, tiers[0].MinPoint)
	}
	out := make([]Tier, len(tiers))
	for i, t := range tiers {
		if i > 0 && t.MinPoint <= tiers[i-1].MinPoint {
			return TierTable{}, errors.Errorf("tier %q threshold %d is not above %d", t.Name, t.MinPoint, tiers[i-1].MinPoint)
		}
		t.Level = i
		out[i] = t
	}
	return TierTable{tiers: out}, nil
}

// Classify 返回积分所属等级，低于第一档门槛的归入第一档
func (t TierTable) Classify(point int) Tier {
	if len(t.tiers) == 0 {
		t = DefaultTierTable
	}
	// 第一个门槛大于 point 的下标
	i := sort.Search(len(t.tiers), func(i int) bool { return t.tiers[i].MinPoint > point })
	if i == 0 {
		return t.tiers[0]
	}
	return t.tiers[i-1]
}

func (t TierTable) Tiers() []Tier {
	if len(t.tiers) == 0 {
		t = DefaultTierTable
	}
	return append([]Tier(nil), t.tiers...)
}
