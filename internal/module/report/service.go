package report

import (
	"citizens-link/config"
	"citizens-link/internal/leaderboard"
	"citizens-link/internal/model"
	"citizens-link/internal/store"
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// ApprovedByQR 现场 QR 确认时记录的审核人
const ApprovedByQR = "qr"

var (
	ErrMissingField     = errors.New("user name and activity are required")
	ErrActivityNotFound = errors.New("activity type not found")
	ErrReportNotFound   = errors.New("report not found")
	ErrAlreadyApproved  = store.ErrAlreadyApproved
)

// Submit 创建报告，forced 为 approved 时即 QR 现场确认直接通过
func Submit(ctx context.Context, s store.Store, userName string, activityID uint, forced *model.ReportStatus) (*model.ActivityReport, error) {
	userName = strings.TrimSpace(userName)
	if userName == "" || activityID == 0 {
		return nil, ErrMissingField
	}

	activity, err := s.GetActivityType(ctx, activityID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, errors.Wrapf(ErrActivityNotFound, "activity %d", activityID)
	}
	if err != nil {
		return nil, err
	}

	report := &model.ActivityReport{
		UserName:   userName,
		ActivityID: activityID,
		Status:     model.ReportPending,
	}
	if forced != nil && *forced == model.ReportApproved && qrApprovalAllowed() {
		now := time.Now()
		by := ApprovedByQR
		points := activity.BasePoints
		report.Status = model.ReportApproved
		report.ApprovedAt = &now
		report.ApprovedBy = &by
		report.AwardedPoints = &points
	}

	if err := s.InsertReport(ctx, report); err != nil {
		return nil, err
	}
	report.ActivityType = activity

	if report.Status == model.ReportApproved {
		leaderboard.Invalidate(ctx)
	}
	return report, nil
}

// Approve pending 只能变为 approved 一次
func Approve(ctx context.Context, s store.Store, reportID uint, staff string) error {
	report, err := s.GetReport(ctx, reportID)
	if errors.Is(err, store.ErrNotFound) {
		return errors.Wrapf(ErrReportNotFound, "report %d", reportID)
	}
	if err != nil {
		return err
	}
	if report.Status == model.ReportApproved {
		return errors.Wrapf(ErrAlreadyApproved, "report %d", reportID)
	}

	err = s.ApproveReport(ctx, reportID, store.Approval{
		ApprovedBy:    staff,
		ApprovedAt:    time.Now(),
		AwardedPoints: report.BasePoints(),
	})
	switch {
	case errors.Is(err, store.ErrNotFound):
		return errors.Wrapf(ErrReportNotFound, "report %d", reportID)
	case err != nil:
		return err
	}

	leaderboard.Invalidate(ctx)
	return nil
}

func qrApprovalAllowed() bool {
	cfg := config.Current()
	return cfg == nil || cfg.Report.AllowQRApproval
}

// Message 提交成功后显示给市民的提示
func Message(status model.ReportStatus) string {
	if status == model.ReportApproved {
		return "✨ 현장 확인이 완료되어 즉시 승인되었습니다!"
	}
	return "📝 보고서가 접수되었습니다. 운영본부 승인 후 합산됩니다."
}
