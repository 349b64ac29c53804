package task

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// Scheduler 机器人回合调度器
// 时间轮推进到期任务，工作池执行。人类事件和到期的机器人回合最终
// 都经由同一把牌桌写锁串行化，调度器只负责"何时"，不负责互斥
type Scheduler struct {
	wheel      *TimeWheel
	workerPool *WorkerPool
	ctx        context.Context
	cancel     context.CancelFunc
	wg         sync.WaitGroup
	logger     *slog.Logger
	running    bool
	runningMu  sync.RWMutex
}

// NewScheduler 创建调度器
func NewScheduler(workerCount int) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())

	return &Scheduler{
		wheel:      NewTimeWheel(),
		workerPool: NewWorkerPool(workerCount),
		ctx:        ctx,
		cancel:     cancel,
		logger:     slog.Default(),
		running:    false,
	}
}

// Start 启动调度器
func (s *Scheduler) Start() error {
	s.runningMu.Lock()
	if s.running {
		s.runningMu.Unlock()
		return fmt.Errorf("调度器已经在运行中")
	}
	s.running = true
	s.runningMu.Unlock()

	s.workerPool.Start()

	s.wg.Add(1)
	go s.tickLoop()

	s.logger.Info("机器人回合调度器已启动")

	return nil
}

// tickLoop 时钟循环协程
func (s *Scheduler) tickLoop() {
	defer s.wg.Done()

	ticker := s.wheel.GetTicker()

	for {
		select {
		case <-s.ctx.Done():
			return

		case <-ticker.C:
			turns := s.wheel.Tick()
			if len(turns) == 0 {
				continue
			}

			s.logger.Debug("时钟触发", "turnCount", len(turns))
			s.workerPool.SubmitBatch(turns)
		}
	}
}

// Stop 停止调度器
func (s *Scheduler) Stop() {
	s.runningMu.Lock()
	if !s.running {
		s.runningMu.Unlock()
		return
	}
	s.running = false
	s.runningMu.Unlock()

	s.cancel()
	s.wg.Wait()
	s.wheel.Stop()
	s.workerPool.Stop()

	s.logger.Info("机器人回合调度器已停止")
}

// Schedule 排定一个机器人回合
func (s *Scheduler) Schedule(turn *BotTurn) error {
	s.runningMu.RLock()
	defer s.runningMu.RUnlock()

	if !s.running {
		return fmt.Errorf("调度器未运行")
	}

	if turn == nil {
		return fmt.Errorf("任务不能为空")
	}

	s.logger.Debug("排定机器人回合",
		"taskID", turn.ID,
		"roomId", turn.RoomId,
		"seatName", turn.SeatName,
		"delay", turn.Delay)

	s.wheel.Add(turn)
	return nil
}

// IsRunning 检查调度器是否运行中
func (s *Scheduler) IsRunning() bool {
	s.runningMu.RLock()
	defer s.runningMu.RUnlock()

	return s.running
}

// PendingCount 当前待执行的任务总数
func (s *Scheduler) PendingCount() int {
	return s.wheel.TotalCount()
}
