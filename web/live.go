package web

import (
	"context"
	"errors"
	"time"

	json "github.com/bytedance/sonic"
	"github.com/coder/websocket"
	"github.com/gin-gonic/gin"
	"github.com/to404hanga/online_judge_arena/model"
	"github.com/to404hanga/pkg404/logger"
)

// liveFrame 推送给客户端的排行榜帧
type liveFrame struct {
	Type string                        `json:"t"`
	Data *model.GetLeaderboardResponse `json:"data"`
}

const liveWriteTimeout = 5 * time.Second

// LiveLeaderboard 建立 websocket 连接后先推送一次完整榜单, 之后每次变更推送一次
func (h *LeaderboardHandler) LiveLeaderboard(c *gin.Context) {
	conn, err := websocket.Accept(c.Writer, c.Request, nil)
	if err != nil {
		h.log.WarnContext(c.Request.Context(), "LiveLeaderboard accept failed", logger.Error(err))
		return
	}
	defer conn.CloseNow()

	liveLeaderboardConnections.Inc()
	defer liveLeaderboardConnections.Dec()

	// 客户端不发送消息, CloseRead 负责处理关闭帧
	ctx := conn.CloseRead(c.Request.Context())
	changes, err := h.rankingSvc.Subscribe(ctx)
	if err != nil {
		h.log.ErrorContext(ctx, "LiveLeaderboard subscribe failed", logger.Error(err))
		conn.Close(websocket.StatusInternalError, "subscribe failed")
		return
	}

	if err = h.pushLeaderboard(ctx, conn); err != nil {
		return
	}
	for {
		select {
		case <-ctx.Done():
			conn.Close(websocket.StatusNormalClosure, "")
			return
		case _, ok := <-changes:
			if !ok {
				conn.Close(websocket.StatusGoingAway, "")
				return
			}
			if err = h.pushLeaderboard(ctx, conn); err != nil {
				return
			}
		}
	}
}

func (h *LeaderboardHandler) pushLeaderboard(ctx context.Context, conn *websocket.Conn) error {
	resp, err := h.rankingSvc.GetLeaderboard(ctx, &model.GetLeaderboardParam{
		PageParam: model.PageParam{Page: 1, PageSize: h.liveSize},
	})
	if err != nil {
		h.log.ErrorContext(ctx, "LiveLeaderboard get leaderboard failed", logger.Error(err))
		return err
	}
	val, err := json.Marshal(liveFrame{Type: "leaderboard", Data: resp})
	if err != nil {
		return err
	}

	writeCtx, cancel := context.WithTimeout(ctx, liveWriteTimeout)
	defer cancel()
	if err = conn.Write(writeCtx, websocket.MessageText, val); err != nil {
		if !errors.Is(err, context.Canceled) {
			h.log.WarnContext(ctx, "LiveLeaderboard write failed", logger.Error(err))
		}
		return err
	}
	return nil
}
