package store

import (
	"citizens-link/internal/model"
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
)

const (
	tableActivityTypes   = "activity_types"
	tableActivityReports = "activity_reports"

	selectPending          = "*,activity_types(name,base_points)"
	selectApproved         = "user_name,status,activity_types(base_points)"
	selectApprovedSnapshot = "user_name,status,awarded_points,activity_types(base_points)"
)

// Supabase 通过 PostgREST 访问托管数据库，鉴权使用匿名 key
// 托管库只有 activity_reports 的原始列（id, user_name, activity_id, status, created_at），
// approved_at / approved_by / awarded_points 只在 snapshot 模式下读写
type Supabase struct {
	client   *resty.Client
	baseURL  string
	anonKey  string
	snapshot bool
}

func NewSupabase(client *resty.Client, projectURL, anonKey string) *Supabase {
	return &Supabase{
		client:  client,
		baseURL: strings.TrimRight(projectURL, "/") + "/rest/v1/",
		anonKey: anonKey,
	}
}

// WithSnapshot 开启后读写审核快照列，托管库需要先加上这三列
func (s *Supabase) WithSnapshot(on bool) *Supabase {
	s.snapshot = on
	return s
}

// PostgRESTError PostgREST 返回的错误体
type PostgRESTError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details"`
	Hint    string `json:"hint"`
}

func (e *PostgRESTError) Error() string {
	return "postgrest: " + strconv.Itoa(e.Status) + " " + e.Code + " " + e.Message
}

// activityTypeRow 写入时只发送表里原有的列
type activityTypeRow struct {
	Name       *string `json:"name,omitempty"`
	BasePoints *int    `json:"base_points,omitempty"`
}

type reportRow struct {
	UserName      string             `json:"user_name"`
	ActivityID    uint               `json:"activity_id"`
	Status        model.ReportStatus `json:"status"`
	ApprovedAt    *time.Time         `json:"approved_at,omitempty"`
	ApprovedBy    *string            `json:"approved_by,omitempty"`
	AwardedPoints *int               `json:"awarded_points,omitempty"`
}

func (s *Supabase) request(ctx context.Context) *resty.Request {
	return s.client.R().
		SetContext(ctx).
		SetHeader("apikey", s.anonKey).
		SetHeader("Authorization", "Bearer "+s.anonKey).
		SetHeader("Accept", "application/json").
		SetError(&PostgRESTError{})
}

func (s *Supabase) do(req *resty.Request, method, table string) error {
	resp, err := req.Execute(method, s.baseURL+table)
	if err != nil {
		return errors.Wrapf(err, "%s %s", method, table)
	}
	if !resp.IsError() {
		return nil
	}
	pgErr, ok := resp.Error().(*PostgRESTError)
	if !ok || pgErr == nil {
		pgErr = &PostgRESTError{Message: resp.String()}
	}
	pgErr.Status = resp.StatusCode()
	// 23505 unique_violation
	if pgErr.Status == http.StatusConflict || pgErr.Code == "23505" {
		return errors.Wrap(ErrDuplicate, pgErr.Error())
	}
	return errors.WithStack(pgErr)
}

func (s *Supabase) ListActivityTypes(ctx context.Context) ([]model.ActivityType, error) {
	var types []model.ActivityType
	req := s.request(ctx).
		SetQueryParam("select", "*").
		SetQueryParam("order", "id.asc").
		SetResult(&types)
	if err := s.do(req, http.MethodGet, tableActivityTypes); err != nil {
		return nil, err
	}
	return types, nil
}

func (s *Supabase) GetActivityType(ctx context.Context, id uint) (*model.ActivityType, error) {
	var types []model.ActivityType
	req := s.request(ctx).
		SetQueryParam("select", "*").
		SetQueryParam("id", eq(id)).
		SetResult(&types)
	if err := s.do(req, http.MethodGet, tableActivityTypes); err != nil {
		return nil, err
	}
	if len(types) == 0 {
		return nil, errors.Wrapf(ErrNotFound, "activity type %d", id)
	}
	return &types[0], nil
}

func (s *Supabase) CreateActivityType(ctx context.Context, activity *model.ActivityType) error {
	var created []model.ActivityType
	req := s.request(ctx).
		SetHeader("Prefer", "return=representation").
		SetBody([]activityTypeRow{{Name: &activity.Name, BasePoints: &activity.BasePoints}}).
		SetResult(&created)
	if err := s.do(req, http.MethodPost, tableActivityTypes); err != nil {
		return err
	}
	if len(created) > 0 {
		*activity = created[0]
	}
	return nil
}

func (s *Supabase) UpdateActivityType(ctx context.Context, id uint, update ActivityTypeUpdate) (*model.ActivityType, error) {
	if update.Name == nil && update.BasePoints == nil {
		return s.GetActivityType(ctx, id)
	}
	var updated []model.ActivityType
	req := s.request(ctx).
		SetHeader("Prefer", "return=representation").
		SetQueryParam("id", eq(id)).
		SetBody(activityTypeRow{Name: update.Name, BasePoints: update.BasePoints}).
		SetResult(&updated)
	if err := s.do(req, http.MethodPatch, tableActivityTypes); err != nil {
		return nil, err
	}
	if len(updated) == 0 {
		return nil, errors.Wrapf(ErrNotFound, "activity type %d", id)
	}
	return &updated[0], nil
}

func (s *Supabase) ListPendingReports(ctx context.Context) ([]model.ActivityReport, error) {
	var reports []model.ActivityReport
	req := s.request(ctx).
		SetQueryParam("select", selectPending).
		SetQueryParam("status", "eq."+string(model.ReportPending)).
		SetQueryParam("order", "created_at.desc").
		SetResult(&reports)
	if err := s.do(req, http.MethodGet, tableActivityReports); err != nil {
		return nil, err
	}
	return reports, nil
}

func (s *Supabase) ListApprovedReports(ctx context.Context) ([]model.ActivityReport, error) {
	var reports []model.ActivityReport
	sel := selectApproved
	if s.snapshot {
		sel = selectApprovedSnapshot
	}
	req := s.request(ctx).
		SetQueryParam("select", sel).
		SetQueryParam("status", "eq."+string(model.ReportApproved)).
		SetResult(&reports)
	if err := s.do(req, http.MethodGet, tableActivityReports); err != nil {
		return nil, err
	}
	return reports, nil
}

func (s *Supabase) GetReport(ctx context.Context, id uint) (*model.ActivityReport, error) {
	var reports []model.ActivityReport
	req := s.request(ctx).
		SetQueryParam("select", selectPending).
		SetQueryParam("id", eq(id)).
		SetResult(&reports)
	if err := s.do(req, http.MethodGet, tableActivityReports); err != nil {
		return nil, err
	}
	if len(reports) == 0 {
		return nil, errors.Wrapf(ErrNotFound, "report %d", id)
	}
	return &reports[0], nil
}

func (s *Supabase) InsertReport(ctx context.Context, report *model.ActivityReport) error {
	row := reportRow{
		UserName:   report.UserName,
		ActivityID: report.ActivityID,
		Status:     report.Status,
	}
	if s.snapshot {
		row.ApprovedAt = report.ApprovedAt
		row.ApprovedBy = report.ApprovedBy
		row.AwardedPoints = report.AwardedPoints
	}
	var created []model.ActivityReport
	req := s.request(ctx).
		SetHeader("Prefer", "return=representation").
		SetBody([]reportRow{row}).
		SetResult(&created)
	if err := s.do(req, http.MethodPost, tableActivityReports); err != nil {
		return err
	}
	if len(created) > 0 {
		activity := report.ActivityType
		*report = created[0]
		if report.ActivityType == nil {
			report.ActivityType = activity
		}
	}
	return nil
}

func (s *Supabase) ApproveReport(ctx context.Context, id uint, approval Approval) error {
	patch := reportPatch{Status: model.ReportApproved}
	if s.snapshot {
		approvedAt := approval.ApprovedAt
		patch.ApprovedAt = &approvedAt
		patch.ApprovedBy = &approval.ApprovedBy
		patch.AwardedPoints = approval.AwardedPoints
	}
	var updated []model.ActivityReport
	req := s.request(ctx).
		SetHeader("Prefer", "return=representation").
		SetQueryParam("id", eq(id)).
		SetQueryParam("status", "eq."+string(model.ReportPending)).
		SetBody(patch).
		SetResult(&updated)
	if err := s.do(req, http.MethodPatch, tableActivityReports); err != nil {
		return err
	}
	if len(updated) > 0 {
		return nil
	}

	// 条件更新没有命中：报告不存在或已审核
	if _, err := s.GetReport(ctx, id); err != nil {
		return err
	}
	return errors.Wrapf(ErrAlreadyApproved, "report %d", id)
}

type reportPatch struct {
	Status        model.ReportStatus `json:"status"`
	ApprovedAt    *time.Time         `json:"approved_at,omitempty"`
	ApprovedBy    *string            `json:"approved_by,omitempty"`
	AwardedPoints *int               `json:"awarded_points,omitempty"`
}

func eq(id uint) string {
	return "eq." + strconv.FormatUint(uint64(id), 10)
}
