package nats

import (
	"encoding/json"
	"log/slog"

	"github.com/nats-io/nats.go"

	"sudooom.game.mahjong/internal/proto"
)

// EventPublisher 下行事件发布器
type EventPublisher struct {
	nc     *nats.Conn
	logger *slog.Logger
}

// NewEventPublisher 创建下行事件发布器
func NewEventPublisher(nc *nats.Conn) *EventPublisher {
	return &EventPublisher{
		nc:     nc,
		logger: slog.Default(),
	}
}

// PublishToAccess 推送事件到指定 Access 节点 (定向消息)
func (p *EventPublisher) PublishToAccess(accessNodeId string, event *proto.DownstreamEvent) error {
	subject := BuildAccessDownstreamSubject(accessNodeId)
	data, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("Failed to marshal downstream event", "error", err)
		return err
	}

	if err := p.nc.Publish(subject, data); err != nil {
		p.logger.Error("Failed to publish to access", "accessNodeId", accessNodeId, "error", err)
		return err
	}

	p.logger.Debug("Published event to access node",
		"accessNodeId", accessNodeId,
		"event", event.Event,
		"roomId", event.RoomId)
	return nil
}

// Broadcast 广播事件到所有 Access 节点 (房间广播)
func (p *EventPublisher) Broadcast(event *proto.DownstreamEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("Failed to marshal broadcast event", "error", err)
		return err
	}

	if err := p.nc.Publish(SubjectAccessBroadcast, data); err != nil {
		p.logger.Error("Failed to broadcast event", "error", err)
		return err
	}

	p.logger.Debug("Broadcasted event to all access nodes", "event", event.Event, "roomId", event.RoomId)
	return nil
}
