package model

// ActivityType 活动类型，运营本部维护
type ActivityType struct {
	Model
	Name       string `gorm:"type:varchar(100);not null;uniqueIndex" json:"name"` // 活动名称
	BasePoints int    `gorm:"not null;default:0" json:"base_points"`              // 基础积分
}

func (ActivityType) TableName() string {
	return "activity_types"
}
