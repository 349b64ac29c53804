package handler

import (
	"context"
	"log/slog"

	"sudooom.game.mahjong/internal/proto"
	"sudooom.game.mahjong/internal/service"
)

// GameHandler 上行事件分发器
// 把接入层转发的事件路由到牌桌服务。出牌被拒绝 (时序违例) 时不回发
// 错误，状态广播缺席本身就是信号
type GameHandler struct {
	tableService *service.TableService
	logger       *slog.Logger
}

// NewGameHandler 创建上行事件分发器
func NewGameHandler(tableService *service.TableService) *GameHandler {
	return &GameHandler{
		tableService: tableService,
		logger:       slog.Default().With("component", "GameHandler"),
	}
}

// Handle 分发单个上行事件
func (h *GameHandler) Handle(ctx context.Context, event *proto.UpstreamEvent) {
	roomId := event.RoomId
	if roomId == "" {
		roomId = proto.DefaultRoomId
	}

	switch {
	case event.Payload.Join != nil:
		username := event.Payload.Join.Username
		if username == "" {
			h.logger.Warn("Join event missing username", "connToken", event.ConnToken)
			return
		}
		if err := h.tableService.Join(ctx, roomId, username, event.ConnToken, event.AccessNodeId); err != nil {
			h.logger.Error("Failed to handle join", "roomId", roomId, "username", username, "error", err)
		}

	case event.Payload.FillWithBots != nil:
		if err := h.tableService.FillWithBots(ctx, roomId); err != nil {
			h.logger.Error("Failed to handle fillWithBots", "roomId", roomId, "error", err)
		}

	case event.Payload.StartGame != nil:
		if err := h.tableService.StartGame(ctx, roomId, event.ConnToken); err != nil {
			h.logger.Error("Failed to handle startGame", "roomId", roomId, "error", err)
		}

	case event.Payload.Discard != nil:
		if err := h.tableService.Discard(ctx, roomId, event.ConnToken, event.Payload.Discard.TileIndex); err != nil {
			h.logger.Debug("Discard not applied", "roomId", roomId, "error", err)
		}

	default:
		h.logger.Warn("Upstream event has no recognizable payload", "roomId", roomId)
	}
}
