package report

import (
	"citizens-link/internal/global/jwt"
	"citizens-link/internal/global/logger"
	"citizens-link/internal/global/response"
	"citizens-link/internal/model"
	"citizens-link/internal/store"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

// SubmitReq mode 为 qr 时表示现场扫码提交，也可放在查询参数里
type SubmitReq struct {
	UserName   string `json:"user_name"`
	ActivityID uint   `json:"activity_id"`
	Mode       string `json:"mode"`
}

type SubmitResp struct {
	Report  *model.ActivityReport `json:"report"`
	Message string                `json:"message"`
}

func SubmitReport(c *gin.Context) {
	var req SubmitReq
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("绑定提交请求失败", "error", err)
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	mode := req.Mode
	if mode == "" {
		mode = c.Query("mode")
	}

	var forced *model.ReportStatus
	if strings.EqualFold(mode, "qr") {
		approved := model.ReportApproved
		forced = &approved
	}

	report, err := Submit(c.Request.Context(), store.Default, req.UserName, req.ActivityID, forced)
	switch {
	case errors.Is(err, ErrMissingField):
		response.Fail(c, response.ErrInvalidRequest.WithTips("성함과 활동을 선택해주세요!"))
		return
	case errors.Is(err, ErrActivityNotFound):
		response.Fail(c, response.ErrNotFound.WithTips("존재하지 않는 활동입니다."))
		return
	case err != nil:
		logger.WithContext(log, c).Error("提交报告失败", "error", err, "activity_id", req.ActivityID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	logger.WithContext(log, c).Info("报告已提交",
		"report_id", report.ID,
		"activity_id", report.ActivityID,
		"status", report.Status,
	)
	response.Success(c, SubmitResp{Report: report, Message: Message(report.Status)})
}

func ListPending(c *gin.Context) {
	reports, err := store.Default.ListPendingReports(c.Request.Context())
	if err != nil {
		log.Error("查询待审核报告失败", "error", err)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	response.Success(c, gin.H{
		"list":  reports,
		"total": len(reports),
	})
}

func ApproveReport(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		response.Fail(c, response.ErrInvalidRequest.WithTips("잘못된 보고서 ID입니다."))
		return
	}
	staff := ""
	if payload, ok := jwt.GetUserPayload(c); ok {
		staff = payload.Username
	}

	err = Approve(c.Request.Context(), store.Default, uint(id), staff)
	switch {
	case errors.Is(err, ErrReportNotFound):
		response.Fail(c, response.ErrNotFound.WithTips("보고서를 찾을 수 없습니다."))
		return
	case errors.Is(err, ErrAlreadyApproved):
		response.Fail(c, response.ErrConflict.WithTips("이미 승인된 보고서입니다."))
		return
	case err != nil:
		log.Error("审核报告失败", "error", err, "report_id", id)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	log.Info("报告审核通过", "report_id", id, "staff", staff)
	response.Success(c, gin.H{"report_id": id})
}
