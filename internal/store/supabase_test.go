package store

import (
	"citizens-link/internal/model"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/require"
)

type recorded struct {
	Method string
	Path   string
	Query  map[string]string
	Prefer string
	Body   string
}

// fakePostgREST 记录请求并按顺序返回预设响应
func fakePostgREST(t *testing.T, responses ...func(w http.ResponseWriter)) (*Supabase, *[]recorded) {
	var calls []recorded
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "anon-key", r.Header.Get("apikey"))
		require.Equal(t, "Bearer anon-key", r.Header.Get("Authorization"))
		body, _ := io.ReadAll(r.Body)
		query := map[string]string{}
		for k, v := range r.URL.Query() {
			query[k] = v[0]
		}
		calls = append(calls, recorded{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  query,
			Prefer: r.Header.Get("Prefer"),
			Body:   string(body),
		})
		require.Less(t, len(calls)-1, len(responses), "unexpected request %s %s", r.Method, r.URL)
		w.Header().Set("Content-Type", "application/json")
		responses[len(calls)-1](w)
	}))
	t.Cleanup(srv.Close)
	return NewSupabase(resty.New(), srv.URL+"/", "anon-key"), &calls
}

func reply(status int, body string) func(w http.ResponseWriter) {
	return func(w http.ResponseWriter) {
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}
}

func TestSupabaseListActivityTypes(t *testing.T) {
	s, calls := fakePostgREST(t, reply(http.StatusOK, `[{"id":1,"name":"캠페인","base_points":20}]`))

	types, err := s.ListActivityTypes(context.Background())
	require.NoError(t, err)
	require.Equal(t, []model.ActivityType{{Model: model.Model{ID: 1}, Name: "캠페인", BasePoints: 20}}, types)

	require.Equal(t, http.MethodGet, (*calls)[0].Method)
	require.Equal(t, "/rest/v1/activity_types", (*calls)[0].Path)
	require.Equal(t, map[string]string{"select": "*", "order": "id.asc"}, (*calls)[0].Query)
}

func TestSupabaseListPendingAndApproved(t *testing.T) {
	s, calls := fakePostgREST(t,
		reply(http.StatusOK, `[{"id":7,"user_name":"Kim","activity_id":1,"status":"pending","created_at":"2025-03-01T09:00:00Z","activity_types":{"name":"캠페인","base_points":20}}]`),
		reply(http.StatusOK, `[{"user_name":"Lee","status":"approved","awarded_points":null,"activity_types":{"base_points":15}},{"user_name":"Park","status":"approved","activity_types":null}]`),
	)
	ctx := context.Background()

	pending, err := s.ListPendingReports(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	require.Equal(t, "캠페인", pending[0].ActivityType.Name)
	require.Equal(t, map[string]string{
		"select": "*,activity_types(name,base_points)",
		"status": "eq.pending",
		"order":  "created_at.desc",
	}, (*calls)[0].Query)

	approved, err := s.ListApprovedReports(ctx)
	require.NoError(t, err)
	require.Len(t, approved, 2)
	require.Equal(t, 15, *approved[0].BasePoints())
	require.Nil(t, approved[1].BasePoints())
	require.Equal(t, map[string]string{
		"select": "user_name,status,activity_types(base_points)",
		"status": "eq.approved",
	}, (*calls)[1].Query)
}

func TestSupabaseInsertReport(t *testing.T) {
	s, calls := fakePostgREST(t, reply(http.StatusCreated, `[{"id":9,"user_name":"Kim","activity_id":1,"status":"pending"}]`))

	report := &model.ActivityReport{UserName: "Kim", ActivityID: 1, Status: model.ReportPending}
	require.NoError(t, s.InsertReport(context.Background(), report))
	require.EqualValues(t, 9, report.ID)

	call := (*calls)[0]
	require.Equal(t, http.MethodPost, call.Method)
	require.Equal(t, "/rest/v1/activity_reports", call.Path)
	require.Equal(t, "return=representation", call.Prefer)

	var rows []map[string]any
	require.NoError(t, json.Unmarshal([]byte(call.Body), &rows))
	// pending 报告只写原有的三列
	require.Equal(t, []map[string]any{{"user_name": "Kim", "activity_id": float64(1), "status": "pending"}}, rows)
}

func TestSupabaseApproveReport(t *testing.T) {
	awarded := 20
	approval := Approval{ApprovedBy: "admin", AwardedPoints: &awarded}

	t.Run("approved", func(t *testing.T) {
		s, calls := fakePostgREST(t, reply(http.StatusOK, `[{"id":3,"status":"approved"}]`))
		require.NoError(t, s.ApproveReport(context.Background(), 3, approval))
		call := (*calls)[0]
		require.Equal(t, http.MethodPatch, call.Method)
		require.Equal(t, map[string]string{"id": "eq.3", "status": "eq.pending"}, call.Query)
		require.JSONEq(t, `{"status":"approved"}`, call.Body)
	})

	t.Run("already approved", func(t *testing.T) {
		s, _ := fakePostgREST(t,
			reply(http.StatusOK, `[]`),
			reply(http.StatusOK, `[{"id":3,"status":"approved"}]`),
		)
		require.ErrorIs(t, s.ApproveReport(context.Background(), 3, approval), ErrAlreadyApproved)
	})

	t.Run("not found", func(t *testing.T) {
		s, _ := fakePostgREST(t, reply(http.StatusOK, `[]`), reply(http.StatusOK, `[]`))
		require.ErrorIs(t, s.ApproveReport(context.Background(), 3, approval), ErrNotFound)
	})
}

func TestSupabaseErrors(t *testing.T) {
	s, _ := fakePostgREST(t,
		reply(http.StatusConflict, `{"code":"23505","message":"duplicate key value violates unique constraint"}`),
		reply(http.StatusBadRequest, `{"code":"PGRST100","message":"bad filter"}`),
	)
	ctx := context.Background()

	err := s.CreateActivityType(ctx, &model.ActivityType{Name: "캠페인", BasePoints: 1})
	require.ErrorIs(t, err, ErrDuplicate)

	_, err = s.ListActivityTypes(ctx)
	var pgErr *PostgRESTError
	require.ErrorAs(t, err, &pgErr)
	require.Equal(t, http.StatusBadRequest, pgErr.Status)
	require.Equal(t, "PGRST100", pgErr.Code)
}

// reportColumns 托管库 activity_reports 的原始列
var reportColumns = map[string]bool{"id": true, "user_name": true, "activity_id": true, "status": true, "created_at": true}

// strictPostgREST 和真实 PostgREST 一样拒绝表里不存在的列
func strictPostgREST(t *testing.T) *Supabase {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		for _, col := range selectColumns(r.URL.Query().Get("select")) {
			if !reportColumns[col] {
				w.WriteHeader(http.StatusBadRequest)
				_, _ = io.WriteString(w, `{"code":"42703","message":"column activity_reports.`+col+` does not exist"}`)
				return
			}
		}
		body, _ := io.ReadAll(r.Body)
		var rows []map[string]any
		if len(body) > 0 && body[0] == '{' {
			var row map[string]any
			require.NoError(t, json.Unmarshal(body, &row))
			rows = append(rows, row)
		} else if len(body) > 0 {
			require.NoError(t, json.Unmarshal(body, &rows))
		}
		for _, row := range rows {
			for col := range row {
				if !reportColumns[col] {
					w.WriteHeader(http.StatusBadRequest)
					_, _ = io.WriteString(w, `{"code":"PGRST204","message":"Could not find the '`+col+`' column of 'activity_reports' in the schema cache"}`)
					return
				}
			}
		}
		switch r.Method {
		case http.MethodGet:
			_, _ = io.WriteString(w, `[{"user_name":"Kim","status":"approved","activity_types":{"base_points":20}}]`)
		case http.MethodPost:
			w.WriteHeader(http.StatusCreated)
			_, _ = io.WriteString(w, `[{"id":1,"user_name":"Kim","activity_id":1,"status":"approved"}]`)
		default:
			_, _ = io.WriteString(w, `[{"id":1,"status":"approved"}]`)
		}
	}))
	t.Cleanup(srv.Close)
	return NewSupabase(resty.New(), srv.URL, "anon-key")
}

// selectColumns 取 select 参数中属于本表的列，跳过嵌入的关联表
func selectColumns(sel string) []string {
	var cols []string
	depth := 0
	start := 0
	for i := 0; i <= len(sel); i++ {
		if i < len(sel) {
			switch sel[i] {
			case '(':
				depth++
				continue
			case ')':
				depth--
				continue
			case ',':
				if depth > 0 {
					continue
				}
			default:
				continue
			}
		}
		col := strings.TrimSpace(sel[start:i])
		start = i + 1
		if col != "" && col != "*" && !strings.Contains(col, "(") {
			cols = append(cols, col)
		}
	}
	return cols
}

func TestSupabaseLivePolicyUsesOriginalColumns(t *testing.T) {
	s := strictPostgREST(t)
	ctx := context.Background()

	approved, err := s.ListApprovedReports(ctx)
	require.NoError(t, err)
	require.Len(t, approved, 1)
	require.Equal(t, 20, *approved[0].BasePoints())

	now := time.Now()
	by := "qr"
	awarded := 20
	report := &model.ActivityReport{
		UserName: "Kim", ActivityID: 1, Status: model.ReportApproved,
		ApprovedAt: &now, ApprovedBy: &by, AwardedPoints: &awarded,
	}
	require.NoError(t, s.InsertReport(ctx, report))

	require.NoError(t, s.ApproveReport(ctx, 1, Approval{ApprovedBy: "admin", ApprovedAt: now, AwardedPoints: &awarded}))
}

func TestSupabaseSnapshotWritesAwardedPoints(t *testing.T) {
	s, calls := fakePostgREST(t,
		reply(http.StatusOK, `[{"user_name":"Kim","status":"approved","awarded_points":5,"activity_types":{"base_points":20}}]`),
		reply(http.StatusOK, `[{"id":3,"status":"approved"}]`),
	)
	s.WithSnapshot(true)
	ctx := context.Background()

	approved, err := s.ListApprovedReports(ctx)
	require.NoError(t, err)
	require.Equal(t, 5, *approved[0].AwardedPoints)
	require.Equal(t, "user_name,status,awarded_points,activity_types(base_points)", (*calls)[0].Query["select"])

	awarded := 20
	require.NoError(t, s.ApproveReport(ctx, 3, Approval{ApprovedBy: "admin", ApprovedAt: time.Now(), AwardedPoints: &awarded}))
	var patch map[string]any
	require.NoError(t, json.Unmarshal([]byte((*calls)[1].Body), &patch))
	require.Equal(t, "approved", patch["status"])
	require.Equal(t, "admin", patch["approved_by"])
	require.Equal(t, float64(20), patch["awarded_points"])
}
