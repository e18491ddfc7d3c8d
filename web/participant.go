package web

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/to404hanga/online_judge_arena/constants"
	"github.com/to404hanga/online_judge_arena/errs"
	"github.com/to404hanga/online_judge_arena/model"
	"github.com/to404hanga/online_judge_arena/pkg/gintool"
	"github.com/to404hanga/online_judge_arena/service"
	"github.com/to404hanga/online_judge_arena/web/jwt"
	"github.com/to404hanga/pkg404/logger"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
)

type ParticipantHandler struct {
	participantSvc service.ParticipantService
	rankingSvc     service.RankingService
	jwtHandler     jwt.Handler
	log            loggerv2.Logger
}

var _ Handler = (*ParticipantHandler)(nil)

func NewParticipantHandler(participantSvc service.ParticipantService, rankingSvc service.RankingService, jwtHandler jwt.Handler, log loggerv2.Logger) *ParticipantHandler {
	return &ParticipantHandler{
		participantSvc: participantSvc,
		rankingSvc:     rankingSvc,
		jwtHandler:     jwtHandler,
		log:            log,
	}
}

func (h *ParticipantHandler) Register(r *gin.Engine) {
	r.POST(constants.RegisterPath, gintool.WrapHandler(h.RegisterParticipant, h.log))
	r.POST(constants.LoginPath, gintool.WrapHandler(h.Login, h.log))
	r.POST(constants.LogoutPath, gintool.WrapWithoutBodyHandler(h.Logout, h.log))
	r.POST(constants.RefreshTokenPath, gintool.WrapWithoutBodyHandler(h.RefreshToken, h.log))
	r.GET(constants.GetProfilePath, gintool.WrapWithoutBodyHandler(h.GetProfile, h.log))
	r.POST(constants.UpdateProfilePath, gintool.WrapHandler(h.UpdateProfile, h.log))
}

func (h *ParticipantHandler) RegisterParticipant(c *gin.Context, param *model.RegisterParam) {
	ctx := loggerv2.ContextWithFields(c.Request.Context(), logger.String("student_number", param.StudentNumber))

	p, err := h.participantSvc.Register(ctx, param)
	if err != nil {
		gintool.ErrorResponse(c, h.log, "Register failed", err)
		return
	}
	// 注册成功后直接登录
	if err = h.jwtHandler.SetLoginToken(c, p.ID); err != nil {
		gintool.ErrorResponse(c, h.log, "SetLoginToken failed", err)
		return
	}

	gintool.GinResponse(c, &gintool.Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    p,
	})
}

func (h *ParticipantHandler) Login(c *gin.Context, param *model.LoginParam) {
	ctx := c.Request.Context()

	p, err := h.participantSvc.Login(ctx, param)
	if err != nil {
		gintool.ErrorResponse(c, h.log, "Login failed", err)
		return
	}
	if err = h.jwtHandler.SetLoginToken(c, p.ID); err != nil {
		gintool.ErrorResponse(c, h.log, "SetLoginToken failed", err)
		return
	}

	gintool.GinResponse(c, &gintool.Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    p,
	})
}

func (h *ParticipantHandler) Logout(c *gin.Context, param *model.LogoutParam) {
	if err := h.jwtHandler.ClearToken(c); err != nil {
		gintool.ErrorResponse(c, h.log, "Logout failed", err)
		return
	}
	gintool.GinResponse(c, &gintool.Response{
		Code:    http.StatusOK,
		Message: "success",
	})
}

func (h *ParticipantHandler) RefreshToken(c *gin.Context, param *model.RefreshTokenParam) {
	if err := h.jwtHandler.Refresh(c); err != nil {
		if errors.Is(err, jwt.ErrTokenInvalid) || errors.Is(err, jwt.ErrSessionRevoked) {
			err = errs.NewUnauthenticatedError(errs.CodeUnauthenticated, err.Error())
		}
		gintool.ErrorResponse(c, h.log, "RefreshToken failed", err)
		return
	}
	gintool.GinResponse(c, &gintool.Response{
		Code:    http.StatusOK,
		Message: "success",
	})
}

func (h *ParticipantHandler) GetProfile(c *gin.Context, param *model.GetProfileParam) {
	ctx := c.Request.Context()

	p, err := h.participantSvc.GetParticipant(ctx, param.Operator)
	if err != nil {
		gintool.ErrorResponse(c, h.log, "GetProfile failed", err)
		return
	}
	rank, err := h.rankingSvc.RankOf(ctx, p.ID)
	if err != nil {
		gintool.ErrorResponse(c, h.log, "GetProfile failed at rank", err)
		return
	}

	gintool.GinResponse(c, &gintool.Response{
		Code:    http.StatusOK,
		Message: "success",
		Data: model.ProfileResponse{
			Participant: *p,
			Rank:        rank,
		},
	})
}

func (h *ParticipantHandler) UpdateProfile(c *gin.Context, param *model.UpdateProfileParam) {
	ctx := loggerv2.ContextWithFields(c.Request.Context(), logger.String("participant_id", param.Operator))

	p, err := h.participantSvc.UpdateProfile(ctx, param.Operator, param)
	if err != nil {
		gintool.ErrorResponse(c, h.log, "UpdateProfile failed", err)
		return
	}
	// 姓名与学校参与排行榜过滤, 修改后需要刷新缓存
	if err = h.rankingSvc.Invalidate(ctx); err != nil {
		h.log.WarnContext(ctx, "invalidate leaderboard failed", logger.Error(err))
	}

	gintool.GinResponse(c, &gintool.Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    p,
	})
}
