package model

import "time"

type ReportStatus string

const (
	ReportPending  ReportStatus = "pending"
	ReportApproved ReportStatus = "approved"
)

func (s ReportStatus) Valid() bool {
	return s == ReportPending || s == ReportApproved
}

// ActivityReport 市民提交的活动报告
// pending 只能变为 approved 一次，之后不再修改
type ActivityReport struct {
	Model
	UserName      string        `gorm:"type:varchar(100);not null;index" json:"user_name"`     // 报告人姓名，自由文本
	ActivityID    uint          `gorm:"not null;index" json:"activity_id"`                     // 活动类型
	Status        ReportStatus  `gorm:"type:varchar(16);not null;index" json:"status"`         // pending / approved
	ApprovedAt    *time.Time    `json:"approved_at"`                                           // 审核通过时间
	ApprovedBy    *string       `gorm:"type:varchar(50)" json:"approved_by"`                   // 审核人，QR 现场确认为 "qr"
	AwardedPoints *int          `json:"awarded_points"`                                        // 审核时的积分快照
	ActivityType  *ActivityType `gorm:"foreignKey:ActivityID" json:"activity_types,omitempty"` // 与 PostgREST 嵌入名一致
}

func (ActivityReport) TableName() string {
	return "activity_reports"
}

// BasePoints 关联活动的当前积分，未关联时返回 nil
func (r *ActivityReport) BasePoints() *int {
	if r.ActivityType == nil {
		return nil
	}
	p := r.ActivityType.BasePoints
	return &p
}
