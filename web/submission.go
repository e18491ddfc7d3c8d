package web

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/to404hanga/online_judge_arena/constants"
	"github.com/to404hanga/online_judge_arena/errs"
	"github.com/to404hanga/online_judge_arena/model"
	"github.com/to404hanga/online_judge_arena/pkg/gintool"
	"github.com/to404hanga/online_judge_arena/service"
	"github.com/to404hanga/pkg404/logger"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
)

type SubmissionHandler struct {
	submissionSvc service.SubmissionService
	log           loggerv2.Logger
}

var _ Handler = (*SubmissionHandler)(nil)

func NewSubmissionHandler(submissionSvc service.SubmissionService, log loggerv2.Logger) *SubmissionHandler {
	return &SubmissionHandler{
		submissionSvc: submissionSvc,
		log:           log,
	}
}

func (h *SubmissionHandler) Register(r *gin.Engine) {
	r.POST(constants.SubmitSolutionPath, gintool.WrapHandler(h.SubmitSolution, h.log))
	r.GET(constants.GetMySubmissionListPath, gintool.WrapQueryHandler(h.GetMySubmissionList, h.log))
}

func (h *SubmissionHandler) SubmitSolution(c *gin.Context, param *model.SubmitSolutionParam) {
	start := time.Now()
	ctx := loggerv2.ContextWithFields(c.Request.Context(),
		logger.String("problem_id", param.ProblemID),
		logger.String("language", param.Language))

	resp, err := h.submissionSvc.SubmitSolution(ctx, param)
	if err != nil {
		code := http.StatusInternalServerError
		var appErr *errs.AppError
		if errors.As(err, &appErr) {
			code = appErr.HTTPStatus()
		}
		observeSubmit(code, "", param.Language, start)
		gintool.ErrorResponse(c, h.log, "SubmitSolution failed", err)
		return
	}

	observeSubmit(http.StatusOK, string(resp.Status), param.Language, start)
	gintool.GinResponse(c, &gintool.Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    resp,
	})
}

func observeSubmit(code int, status, language string, start time.Time) {
	labels := []string{strconv.Itoa(code), status, language}
	submitSolutionRequestsTotal.WithLabelValues(labels...).Inc()
	submitSolutionDurationSeconds.WithLabelValues(labels...).Observe(time.Since(start).Seconds())
}

func (h *SubmissionHandler) GetMySubmissionList(c *gin.Context, param *model.GetMySubmissionListParam) {
	ctx := loggerv2.ContextWithFields(c.Request.Context(), logger.String("problem_id", param.ProblemID))

	list, err := h.submissionSvc.GetMySubmissionList(ctx, param.Operator, param.ProblemID)
	if err != nil {
		getMySubmissionListRequestsTotal.WithLabelValues(strconv.Itoa(http.StatusInternalServerError)).Inc()
		gintool.ErrorResponse(c, h.log, "GetMySubmissionList failed", err)
		return
	}

	getMySubmissionListRequestsTotal.WithLabelValues(strconv.Itoa(http.StatusOK)).Inc()
	gintool.GinResponse(c, &gintool.Response{
		Code:    http.StatusOK,
		Message: "success",
		Data: model.GetMySubmissionListResponse{
			List:  list,
			Total: len(list),
		},
	})
}
