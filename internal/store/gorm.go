package store

import (
	"citizens-link/internal/model"
	"context"

	"github.com/go-sql-driver/mysql"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// mysqlDuplicateEntry MySQL 唯一键冲突错误码
const mysqlDuplicateEntry = 1062

type Gorm struct {
	db *gorm.DB
}

func NewGorm(db *gorm.DB) *Gorm {
	return &Gorm{db: db}
}

func (s *Gorm) ListActivityTypes(ctx context.Context) ([]model.ActivityType, error) {
	var types []model.ActivityType
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&types).Error; err != nil {
		return nil, errors.WithStack(err)
	}
	return types, nil
}

func (s *Gorm) GetActivityType(ctx context.Context, id uint) (*model.ActivityType, error) {
	var activity model.ActivityType
	err := s.db.WithContext(ctx).First(&activity, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.Wrapf(ErrNotFound, "activity type %d", id)
	}
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return &activity, nil
}

func (s *Gorm) CreateActivityType(ctx context.Context, activity *model.ActivityType) error {
	return translate(s.db.WithContext(ctx).Create(activity).Error)
}

func (s *Gorm) UpdateActivityType(ctx context.Context, id uint, update ActivityTypeUpdate) (*model.ActivityType, error) {
	activity, err := s.GetActivityType(ctx, id)
	if err != nil {
		return nil, err
	}
	updates := map[string]any{}
	if update.Name != nil {
		updates["name"] = *update.Name
	}
	if update.BasePoints != nil {
		updates["base_points"] = *update.BasePoints
	}
	if len(updates) == 0 {
		return activity, nil
	}
	if err := translate(s.db.WithContext(ctx).Model(activity).Updates(updates).Error); err != nil {
		return nil, err
	}
	return activity, nil
}

func (s *Gorm) ListPendingReports(ctx context.Context) ([]model.ActivityReport, error) {
	var reports []model.ActivityReport
	err := s.db.WithContext(ctx).
		Preload("ActivityType").
		Where("status = ?", model.ReportPending).
		Order("created_at DESC").
		Find(&reports).Error
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return reports, nil
}

func (s *Gorm) ListApprovedReports(ctx context.Context) ([]model.ActivityReport, error) {
	var reports []model.ActivityReport
	err := s.db.WithContext(ctx).
		Preload("ActivityType").
		Where("status = ?", model.ReportApproved).
		Find(&reports).Error
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return reports, nil
}

func (s *Gorm) GetReport(ctx context.Context, id uint) (*model.ActivityReport, error) {
	var report model.ActivityReport
	err := s.db.WithContext(ctx).Preload("ActivityType").First(&report, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.Wrapf(ErrNotFound, "report %d", id)
	}
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return &report, nil
}

func (s *Gorm) InsertReport(ctx context.Context, report *model.ActivityReport) error {
	return translate(s.db.WithContext(ctx).Omit("ActivityType").Create(report).Error)
}

func (s *Gorm) ApproveReport(ctx context.Context, id uint, approval Approval) error {
	res := s.db.WithContext(ctx).
		Model(&model.ActivityReport{}).
		Where("id = ? AND status = ?", id, model.ReportPending).
		Updates(map[string]any{
			"status":         model.ReportApproved,
			"approved_at":    approval.ApprovedAt,
			"approved_by":    approval.ApprovedBy,
			"awarded_points": approval.AwardedPoints,
		})
	if res.Error != nil {
		return errors.WithStack(res.Error)
	}
	if res.RowsAffected > 0 {
		return nil
	}

	// 没有更新到行：报告不存在或已审核
	if _, err := s.GetReport(ctx, id); err != nil {
		return err
	}
	return errors.Wrapf(ErrAlreadyApproved, "report %d", id)
}

func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return errors.Wrap(ErrDuplicate, err.Error())
	}
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry {
		return errors.Wrap(ErrDuplicate, mysqlErr.Message)
	}
	return errors.WithStack(err)
}
