package task

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"
)

// TurnFunc 机器人回合执行函数类型
// 触发时按房间ID和座位名重新解析目标，绝不持有跨延迟的对象引用
type TurnFunc func(ctx context.Context, roomId string, seatName string) error

var taskSeq atomic.Int64

// BotTurn 延迟的机器人回合任务
type BotTurn struct {
	ID        string    // 任务唯一ID
	RoomId    string    // 目标房间
	SeatName  string    // 目标座位显示名 (稳定标识)
	Delay     int       // 思考延迟秒数 (1-60)
	Fn        TurnFunc  `json:"-"` // 执行函数
	CreatedAt time.Time // 创建时间
}

// NewBotTurn 创建机器人回合任务
func NewBotTurn(roomId, seatName string, delay int, fn TurnFunc) *BotTurn {
	return &BotTurn{
		ID:        fmt.Sprintf("bot-turn-%s-%s-%d", roomId, seatName, taskSeq.Add(1)),
		RoomId:    roomId,
		SeatName:  seatName,
		Delay:     delay,
		Fn:        fn,
		CreatedAt: time.Now(),
	}
}

// Execute 执行任务
func (t *BotTurn) Execute(ctx context.Context) error {
	if t.Fn == nil {
		return nil
	}
	return t.Fn(ctx, t.RoomId, t.SeatName)
}
