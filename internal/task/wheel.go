package task

import (
	"sync"
	"time"
)

const (
	// SlotCount 时间轮槽位数量 (60秒)
	SlotCount = 60
)

// Slot 时间轮槽位
type Slot struct {
	mu    sync.Mutex
	turns map[string]*BotTurn // key: 任务ID
}

// NewSlot 创建新槽位
func NewSlot() *Slot {
	return &Slot{
		turns: make(map[string]*BotTurn),
	}
}

// Add 添加任务到槽位
func (s *Slot) Add(turn *BotTurn) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.turns[turn.ID] = turn
}

// Remove 从槽位删除任务
func (s *Slot) Remove(taskID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.turns[taskID]; exists {
		delete(s.turns, taskID)
		return true
	}
	return false
}

// GetAndClear 获取所有任务并清空槽位
func (s *Slot) GetAndClear() []*BotTurn {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.turns) == 0 {
		return nil
	}

	turns := make([]*BotTurn, 0, len(s.turns))
	for _, turn := range s.turns {
		turns = append(turns, turn)
	}

	s.turns = make(map[string]*BotTurn)

	return turns
}

// Count 获取槽位任务数量
func (s *Slot) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.turns)
}

// TimeWheel 时间轮 (秒级精度，覆盖 1-60 秒的思考延迟)
type TimeWheel struct {
	slots       [SlotCount]*Slot
	currentSlot int
	slotMu      sync.RWMutex
	ticker      *time.Ticker
}

// NewTimeWheel 创建时间轮
func NewTimeWheel() *TimeWheel {
	tw := &TimeWheel{
		currentSlot: 0,
		ticker:      time.NewTicker(time.Second),
	}

	for i := 0; i < SlotCount; i++ {
		tw.slots[i] = NewSlot()
	}

	return tw
}

// Add 添加任务到时间轮
func (tw *TimeWheel) Add(turn *BotTurn) {
	if turn.Delay < 1 || turn.Delay > SlotCount {
		turn.Delay = 1 // 默认1秒
	}

	tw.slotMu.RLock()
	targetSlot := (tw.currentSlot + turn.Delay) % SlotCount
	tw.slotMu.RUnlock()

	tw.slots[targetSlot].Add(turn)
}

// Tick 推进时间轮 (由调度器调用)
func (tw *TimeWheel) Tick() []*BotTurn {
	tw.slotMu.Lock()
	tw.currentSlot = (tw.currentSlot + 1) % SlotCount
	currentSlot := tw.currentSlot
	tw.slotMu.Unlock()

	return tw.slots[currentSlot].GetAndClear()
}

// Stop 停止时间轮
func (tw *TimeWheel) Stop() {
	tw.ticker.Stop()
}

// GetTicker 获取定时器
func (tw *TimeWheel) GetTicker() *time.Ticker {
	return tw.ticker
}

// TotalCount 获取所有槽位的任务总数
func (tw *TimeWheel) TotalCount() int {
	total := 0
	for i := 0; i < SlotCount; i++ {
		total += tw.slots[i].Count()
	}
	return total
}
