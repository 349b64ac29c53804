package service

import (
	"context"
	"encoding/json"
	"log/slog"

	imNats "sudooom.game.mahjong/internal/nats"
	"sudooom.game.mahjong/internal/proto"
)

// PushService 下行推送服务 (编排层)
// 区分两类推送: 房间广播 (所有人收到相同载荷) 和定向推送 (只发给
// 单个连接，私有手牌只允许走这条路)
type PushService struct {
	presence  *PresenceService
	publisher *imNats.EventPublisher
	logger    *slog.Logger
}

// NewPushService 创建下行推送服务
func NewPushService(presence *PresenceService, publisher *imNats.EventPublisher) *PushService {
	return &PushService{
		presence:  presence,
		publisher: publisher,
		logger:    slog.Default(),
	}
}

// BroadcastToRoom 广播事件给房间所有参与者
func (s *PushService) BroadcastToRoom(ctx context.Context, roomId, event string, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		s.logger.Error("Failed to marshal broadcast data", "event", event, "error", err)
		return err
	}

	return s.publisher.Broadcast(&proto.DownstreamEvent{
		RoomId: roomId,
		Event:  event,
		Data:   payload,
	})
}

// SendToConn 定向推送事件到单个连接
// 机器人令牌和已离线的连接没有位置记录，静默跳过
func (s *PushService) SendToConn(ctx context.Context, roomId, connToken, event string, data interface{}) error {
	nodeId, ok := s.presence.Locate(ctx, connToken)
	if !ok {
		s.logger.Debug("Conn has no location, skipping direct push", "connToken", connToken, "event", event)
		return nil
	}

	payload, err := json.Marshal(data)
	if err != nil {
		s.logger.Error("Failed to marshal direct push data", "event", event, "error", err)
		return err
	}

	return s.publisher.PublishToAccess(nodeId, &proto.DownstreamEvent{
		RoomId:    roomId,
		ConnToken: connToken,
		Event:     event,
		Data:      payload,
	})
}
