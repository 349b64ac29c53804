package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"sudooom.game.mahjong/internal/mahjong"
)

// Registry 会话注册表
// 房间ID到牌桌的进程内映射，首次入座时懒创建。注册表对象显式创建并
// 注入各处，便于测试隔离；同时提供淘汰与移除钩子供外层系统调用
type Registry struct {
	tables sync.Map // roomId -> *mahjong.Table

	evictTimeout time.Duration
	evictTicker  *time.Ticker
	stopChan     chan struct{}

	logger *slog.Logger
}

// NewRegistry 创建会话注册表
func NewRegistry(evictTimeout, evictCheckInterval time.Duration) *Registry {
	r := &Registry{
		evictTimeout: evictTimeout,
		evictTicker:  time.NewTicker(evictCheckInterval),
		stopChan:     make(chan struct{}),
		logger:       slog.Default().With("component", "Registry"),
	}

	go r.evictLoop()

	return r
}

// GetOrCreate 获取或创建牌桌
func (r *Registry) GetOrCreate(roomId string) *mahjong.Table {
	if val, ok := r.tables.Load(roomId); ok {
		return val.(*mahjong.Table)
	}

	table := mahjong.NewTable()
	actual, loaded := r.tables.LoadOrStore(roomId, table)
	if !loaded {
		r.logger.Info("Created table", "roomId", roomId)
	}
	return actual.(*mahjong.Table)
}

// Get 获取牌桌
func (r *Registry) Get(roomId string) (*mahjong.Table, bool) {
	val, ok := r.tables.Load(roomId)
	if !ok {
		return nil, false
	}
	return val.(*mahjong.Table), true
}

// Remove 移除牌桌
// 已排定的机器人回合任务触发时会按房间ID重新查找，查不到则静默放弃
func (r *Registry) Remove(roomId string) {
	r.tables.Delete(roomId)
	r.logger.Info("Removed table", "roomId", roomId)
}

// Count 返回当前牌桌数
func (r *Registry) Count() int {
	count := 0
	r.tables.Range(func(key, value interface{}) bool {
		count++
		return true
	})
	return count
}

// evictLoop 淘汰循环
func (r *Registry) evictLoop() {
	for {
		select {
		case <-r.evictTicker.C:
			r.evictInactive()
		case <-r.stopChan:
			r.logger.Info("Evict loop stopped")
			return
		}
	}
}

// evictInactive 淘汰不活跃的牌桌
func (r *Registry) evictInactive() {
	now := time.Now()
	toEvict := []string{}

	r.tables.Range(func(key, value interface{}) bool {
		roomId := key.(string)
		table := value.(*mahjong.Table)

		if now.Sub(table.LastActiveTime()) > r.evictTimeout {
			toEvict = append(toEvict, roomId)
		}

		return true
	})

	for _, roomId := range toEvict {
		r.Remove(roomId)
		r.logger.Info("Evicted inactive table", "roomId", roomId)
	}
}

// Shutdown 关闭注册表
func (r *Registry) Shutdown(ctx context.Context) error {
	close(r.stopChan)
	r.evictTicker.Stop()

	r.logger.Info("Registry shutdown complete")
	return nil
}
