package task

import (
	"context"
	"log/slog"
	"sync"
)

// WorkerPool 工作协程池
// 执行到期的机器人回合，panic 在 worker 内恢复，不影响其他任务
type WorkerPool struct {
	workerCount int
	turnChan    chan *BotTurn
	ctx         context.Context
	cancel      context.CancelFunc
	wg          sync.WaitGroup
	logger      *slog.Logger
}

// NewWorkerPool 创建工作协程池
func NewWorkerPool(workerCount int) *WorkerPool {
	if workerCount <= 0 {
		workerCount = 10 // 默认10个工作协程
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &WorkerPool{
		workerCount: workerCount,
		turnChan:    make(chan *BotTurn, workerCount*2),
		ctx:         ctx,
		cancel:      cancel,
		logger:      slog.Default(),
	}
}

// Start 启动工作协程池
func (wp *WorkerPool) Start() {
	for i := 0; i < wp.workerCount; i++ {
		wp.wg.Add(1)
		go wp.worker(i)
	}

	wp.logger.Info("工作协程池已启动", "workerCount", wp.workerCount)
}

// worker 工作协程
func (wp *WorkerPool) worker(id int) {
	defer wp.wg.Done()

	for {
		select {
		case <-wp.ctx.Done():
			return

		case turn := <-wp.turnChan:
			if turn == nil {
				continue
			}
			wp.executeTurn(id, turn)
		}
	}
}

// executeTurn 执行机器人回合
func (wp *WorkerPool) executeTurn(workerID int, turn *BotTurn) {
	defer func() {
		if r := recover(); r != nil {
			wp.logger.Error("机器人回合 panic",
				"workerID", workerID,
				"taskID", turn.ID,
				"roomId", turn.RoomId,
				"seatName", turn.SeatName,
				"panic", r)
		}
	}()

	if err := turn.Execute(wp.ctx); err != nil {
		wp.logger.Error("机器人回合执行失败",
			"workerID", workerID,
			"taskID", turn.ID,
			"roomId", turn.RoomId,
			"seatName", turn.SeatName,
			"error", err)
	}
}

// Submit 提交任务
func (wp *WorkerPool) Submit(turn *BotTurn) {
	select {
	case wp.turnChan <- turn:
		// 任务已提交
	case <-wp.ctx.Done():
		wp.logger.Warn("工作池已关闭,任务提交失败", "taskID", turn.ID)
	default:
		// 通道已满,阻塞等待
		wp.logger.Warn("任务通道已满,任务可能延迟执行", "taskID", turn.ID)
		select {
		case wp.turnChan <- turn:
		case <-wp.ctx.Done():
		}
	}
}

// SubmitBatch 批量提交任务
func (wp *WorkerPool) SubmitBatch(turns []*BotTurn) {
	for _, turn := range turns {
		wp.Submit(turn)
	}
}

// Stop 停止工作协程池
func (wp *WorkerPool) Stop() {
	wp.cancel()
	wp.wg.Wait()
	close(wp.turnChan)

	wp.logger.Info("工作协程池已停止")
}
