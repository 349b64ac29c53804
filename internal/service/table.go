package service

import (
	"context"
	"log/slog"

	"sudooom.game.mahjong/internal/mahjong"
	"sudooom.game.mahjong/internal/proto"
	"sudooom.game.mahjong/internal/session"
	"sudooom.game.mahjong/internal/task"
)

// Pusher 下行推送端口
// 牌桌服务只关心"广播给房间"和"定向到连接"两个动作，具体走哪条
// 传输由实现决定
type Pusher interface {
	BroadcastToRoom(ctx context.Context, roomId, event string, data interface{}) error
	SendToConn(ctx context.Context, roomId, connToken, event string, data interface{}) error
}

// TableService 牌桌服务 (编排层)
// 入座/补位/开局/出牌的完整流水线: 解析房间，经牌桌的单一变更入口
// 推进状态，再把公开/私有投影推送出去。下一个行牌座位是机器人时，
// 通过调度器排定其延迟回合，形成只在人类座位或荒牌处停下的链条
type TableService struct {
	registry  *session.Registry
	push      Pusher
	presence  *PresenceService
	scheduler *task.Scheduler

	botDealerDelay int // 庄家是机器人时的首回合延迟 (秒)
	botThinkDelay  int // 机器人普通回合的思考延迟 (秒)

	logger *slog.Logger
}

// NewTableService 创建牌桌服务
func NewTableService(
	registry *session.Registry,
	push Pusher,
	presence *PresenceService,
	scheduler *task.Scheduler,
	botDealerDelay int,
	botThinkDelay int,
) *TableService {
	if botDealerDelay <= 0 {
		botDealerDelay = 4
	}
	if botThinkDelay <= 0 {
		botThinkDelay = 1
	}

	return &TableService{
		registry:       registry,
		push:           push,
		presence:       presence,
		scheduler:      scheduler,
		botDealerDelay: botDealerDelay,
		botThinkDelay:  botThinkDelay,
		logger:         slog.Default().With("component", "TableService"),
	}
}

// Join 入座或重连
func (s *TableService) Join(ctx context.Context, roomId, username, connToken, accessNodeId string) error {
	if err := s.presence.Register(ctx, connToken, accessNodeId); err != nil {
		// 位置登记失败只影响定向推送，不阻断入座
		s.logger.Warn("Presence registration failed", "username", username, "error", err)
	}

	table := s.registry.GetOrCreate(roomId)
	result := table.JoinOrReconnect(username, connToken)

	switch result.Outcome {
	case mahjong.JoinReconnected:
		s.logger.Info("Player reconnected", "roomId", roomId, "username", username)

		// 旧令牌已被覆盖,失效其路由记录
		if result.PreviousToken != "" && result.PreviousToken != connToken {
			s.presence.Forget(ctx, result.PreviousToken)
		}

		// 只向重连的连接补发公开状态和私有手牌
		view := proto.PublicStateFromView(table.PublicView())
		if err := s.push.SendToConn(ctx, roomId, connToken, proto.EventPublicStateUpdate, view); err != nil {
			return err
		}
		if table.HasStarted() {
			return s.sendPrivateHand(ctx, roomId, table, username, connToken, nil)
		}
		return nil

	case mahjong.JoinSeated:
		s.logger.Info("Player seated", "roomId", roomId, "username", username, "seatCount", result.SeatCount)

		joined := &proto.PlayerJoinedData{Username: username, CurrentPlayerCount: result.SeatCount}
		if err := s.push.BroadcastToRoom(ctx, roomId, proto.EventPlayerJoined, joined); err != nil {
			return err
		}
		// 立即广播公开状态，等待中的座位能看到牌桌坐满的过程
		return s.broadcastPublicState(ctx, roomId, table)

	default: // JoinRejected
		s.logger.Info("Join rejected, table full", "roomId", roomId, "username", username)
		return s.push.SendToConn(ctx, roomId, connToken, proto.EventErrorMessage,
			&proto.ErrorMessageData{Msg: "Table is full."})
	}
}

// FillWithBots 用机器人补满剩余座位
// 每个补入的座位触发与人类入座相同的广播
func (s *TableService) FillWithBots(ctx context.Context, roomId string) error {
	table, ok := s.registry.Get(roomId)
	if !ok {
		return nil
	}

	for _, seat := range table.FillWithBots() {
		joined := &proto.PlayerJoinedData{Username: seat.Name(), CurrentPlayerCount: table.SeatCount()}
		if err := s.push.BroadcastToRoom(ctx, roomId, proto.EventPlayerJoined, joined); err != nil {
			return err
		}
		if err := s.broadcastPublicState(ctx, roomId, table); err != nil {
			return err
		}
	}

	return nil
}

// StartGame 定庄并开局
// 只在恰好四个座位且未开局时有效，时序错误回给发起者 errorMessage。
// 定庄和发牌是牌桌上的一次原子变更，并发的开局请求只有一个会成功
func (s *TableService) StartGame(ctx context.Context, roomId, connToken string) error {
	table, ok := s.registry.Get(roomId)
	if !ok {
		return s.push.SendToConn(ctx, roomId, connToken, proto.EventErrorMessage,
			&proto.ErrorMessageData{Msg: "Game session not found. Please reload."})
	}

	selection, err := table.Start()
	if err != nil {
		s.logger.Info("Start rejected", "roomId", roomId, "error", err)
		return s.push.SendToConn(ctx, roomId, connToken, proto.EventErrorMessage,
			&proto.ErrorMessageData{Msg: "Game cannot start yet."})
	}

	if err := s.push.BroadcastToRoom(ctx, roomId, proto.EventDealerSelectionResult,
		proto.DealerSelectionFromResult(selection)); err != nil {
		return err
	}

	s.logger.Info("Round started",
		"roomId", roomId,
		"dealerIndex", selection.DealerIndex,
		"dealerName", selection.DealerName)

	if err := s.broadcastPublicState(ctx, roomId, table); err != nil {
		return err
	}

	// 给每个人类座位发各自的私有手牌
	for _, seatView := range table.PublicView().Seats {
		if seatView.IsBot {
			continue
		}
		snap, ok := table.SeatByName(seatView.Name)
		if !ok {
			continue
		}
		if err := s.sendPrivateHand(ctx, roomId, table, snap.Name, snap.ConnToken, nil); err != nil {
			s.logger.Warn("Failed to send initial hand", "username", snap.Name, "error", err)
		}
	}

	// 庄家是机器人时延迟更久，让客户端有时间播掷骰动画
	if snap, ok := table.SeatByName(selection.DealerName); ok && snap.IsBot {
		s.scheduleBotTurn(roomId, snap.Name, s.botDealerDelay)
	}

	return nil
}

// Discard 处理一次出牌 (人类事件和机器人回合共用的入口)
// 时序违例 (非当前回合、下标越界、令牌无座位) 是静默拒绝: 状态不变，
// 记日志后把错误交还调用方
func (s *TableService) Discard(ctx context.Context, roomId, connToken string, tileIndex int) error {
	table, ok := s.registry.Get(roomId)
	if !ok {
		return nil
	}

	result, err := table.Discard(connToken, tileIndex)
	if err != nil {
		s.logger.Debug("Discard rejected", "roomId", roomId, "error", err)
		return err
	}

	s.logger.Debug("Tile discarded",
		"roomId", roomId,
		"tile", result.Discarded.String(),
		"nextSeat", result.NextSeatName,
		"wallRemaining", result.WallRemaining)

	if err := s.broadcastPublicState(ctx, roomId, table); err != nil {
		return err
	}

	if result.DrawnTile == nil {
		// 牌墙摸空，荒牌。流局结算由上层规则引擎处理，这里只停住回合链
		s.logger.Info("Wall exhausted", "roomId", roomId)
	}

	// 出牌者的手牌已重新整理,把 13 张的新手牌推回给它
	if !result.SeatIsBot {
		if err := s.sendPrivateHand(ctx, roomId, table, result.SeatName, connToken, nil); err != nil {
			s.logger.Warn("Failed to send hand update", "username", result.SeatName, "error", err)
		}
	}

	if !result.NextIsBot {
		if err := s.sendPrivateHand(ctx, roomId, table, result.NextSeatName, result.NextConnToken, result.DrawnTile); err != nil {
			s.logger.Warn("Failed to send hand update", "username", result.NextSeatName, "error", err)
		}
	} else if result.DrawnTile != nil {
		s.scheduleBotTurn(roomId, result.NextSeatName, s.botThinkDelay)
	}

	return nil
}

// scheduleBotTurn 排定一个机器人回合
func (s *TableService) scheduleBotTurn(roomId, seatName string, delay int) {
	turn := task.NewBotTurn(roomId, seatName, delay, s.runBotTurn)
	if err := s.scheduler.Schedule(turn); err != nil {
		s.logger.Error("Failed to schedule bot turn", "roomId", roomId, "seatName", seatName, "error", err)
	}
}

// runBotTurn 执行到期的机器人回合
// 按房间ID和座位名重新解析目标，房间被清理或座位已非行牌状态则
// 静默放弃。策略是摸切: 永远打出手牌末位那张刚摸的牌
func (s *TableService) runBotTurn(ctx context.Context, roomId, seatName string) error {
	table, ok := s.registry.Get(roomId)
	if !ok {
		s.logger.Debug("Bot turn dropped, room gone", "roomId", roomId, "seatName", seatName)
		return nil
	}

	snap, ok := table.SeatByName(seatName)
	if !ok || !snap.IsBot || !snap.IsActive || snap.HandSize == 0 {
		s.logger.Debug("Bot turn dropped, seat not actionable", "roomId", roomId, "seatName", seatName)
		return nil
	}

	return s.Discard(ctx, roomId, snap.ConnToken, snap.HandSize-1)
}

// broadcastPublicState 广播当前公开状态
func (s *TableService) broadcastPublicState(ctx context.Context, roomId string, table *mahjong.Table) error {
	view := proto.PublicStateFromView(table.PublicView())
	return s.push.BroadcastToRoom(ctx, roomId, proto.EventPublicStateUpdate, view)
}

// sendPrivateHand 定向推送座位的私有手牌
func (s *TableService) sendPrivateHand(ctx context.Context, roomId string, table *mahjong.Table, seatName, connToken string, drawn *mahjong.Tile) error {
	view, err := table.PrivateView(seatName)
	if err != nil {
		return err
	}
	return s.push.SendToConn(ctx, roomId, connToken, proto.EventPrivateHandUpdate,
		proto.PrivateHandFromView(view, drawn))
}
