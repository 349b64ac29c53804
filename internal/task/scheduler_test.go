package task

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// TestNewBotTurn 测试创建机器人回合任务
func TestNewBotTurn(t *testing.T) {
	fn := func(ctx context.Context, roomId, seatName string) error {
		return nil
	}

	turn := NewBotTurn("room-1", "CPU-2", 4, fn)

	if turn.RoomId != "room-1" {
		t.Errorf("期望 RoomId = room-1, 实际 = %s", turn.RoomId)
	}

	if turn.SeatName != "CPU-2" {
		t.Errorf("期望 SeatName = CPU-2, 实际 = %s", turn.SeatName)
	}

	if turn.Delay != 4 {
		t.Errorf("期望 Delay = 4, 实际 = %d", turn.Delay)
	}

	// 同一座位的连续回合ID不能重复
	other := NewBotTurn("room-1", "CPU-2", 1, fn)
	if turn.ID == other.ID {
		t.Errorf("期望任务ID唯一, 实际重复 = %s", turn.ID)
	}
}

// TestSlotAddAndRemove 测试槽位添加和删除
func TestSlotAddAndRemove(t *testing.T) {
	slot := NewSlot()

	turn1 := NewBotTurn("room-1", "CPU-1", 5, nil)
	turn2 := NewBotTurn("room-1", "CPU-2", 5, nil)

	// 添加任务
	slot.Add(turn1)
	slot.Add(turn2)

	if slot.Count() != 2 {
		t.Errorf("期望任务数 = 2, 实际 = %d", slot.Count())
	}

	// 删除任务
	removed := slot.Remove(turn1.ID)
	if !removed {
		t.Error("期望删除成功")
	}

	if slot.Count() != 1 {
		t.Errorf("期望任务数 = 1, 实际 = %d", slot.Count())
	}

	// 删除不存在的任务
	removed = slot.Remove("turn-not-exist")
	if removed {
		t.Error("期望删除失败")
	}
}

// TestSlotGetAndClear 测试获取并清空
func TestSlotGetAndClear(t *testing.T) {
	slot := NewSlot()

	slot.Add(NewBotTurn("room-1", "CPU-1", 5, nil))
	slot.Add(NewBotTurn("room-1", "CPU-2", 5, nil))

	// 获取并清空
	turns := slot.GetAndClear()

	if len(turns) != 2 {
		t.Errorf("期望获取2个任务, 实际 = %d", len(turns))
	}

	if slot.Count() != 0 {
		t.Errorf("期望槽位已清空, 实际任务数 = %d", slot.Count())
	}

	// 再次获取应该为空
	turns = slot.GetAndClear()
	if turns != nil {
		t.Errorf("期望 nil, 实际 = %v", turns)
	}
}

// TestTimeWheelAdd 测试时间轮添加任务
func TestTimeWheelAdd(t *testing.T) {
	wheel := NewTimeWheel()
	defer wheel.Stop()

	wheel.Add(NewBotTurn("room-1", "CPU-1", 5, nil))

	// 检查总任务数
	if wheel.TotalCount() != 1 {
		t.Errorf("期望总任务数 = 1, 实际 = %d", wheel.TotalCount())
	}

	// 越界延迟被钳到默认1秒
	clamped := NewBotTurn("room-1", "CPU-2", 999, nil)
	wheel.Add(clamped)
	if clamped.Delay != 1 {
		t.Errorf("期望越界延迟被钳为1, 实际 = %d", clamped.Delay)
	}
}

// TestTimeWheelTick 测试时间轮推进
func TestTimeWheelTick(t *testing.T) {
	wheel := NewTimeWheel()
	defer wheel.Stop()

	// 添加延迟1秒的任务
	turn := NewBotTurn("room-1", "CPU-1", 1, nil)
	wheel.Add(turn)

	// 推进1次
	turns := wheel.Tick()

	// 第一次推进应该获取到任务
	if len(turns) != 1 {
		t.Errorf("期望获取1个任务, 实际 = %d", len(turns))
	}

	if turns[0].ID != turn.ID {
		t.Errorf("期望任务ID = %s, 实际 = %s", turn.ID, turns[0].ID)
	}
}

// TestSchedulerStartStop 测试调度器启动和停止
func TestSchedulerStartStop(t *testing.T) {
	scheduler := NewScheduler(5)

	// 启动
	err := scheduler.Start()
	if err != nil {
		t.Fatalf("启动调度器失败: %v", err)
	}

	if !scheduler.IsRunning() {
		t.Error("期望调度器运行中")
	}

	// 重复启动应该失败
	err = scheduler.Start()
	if err == nil {
		t.Error("期望重复启动失败")
	}

	// 停止
	scheduler.Stop()

	if scheduler.IsRunning() {
		t.Error("期望调度器已停止")
	}

	// 停止后排定应该失败
	if err := scheduler.Schedule(NewBotTurn("room-1", "CPU-1", 1, nil)); err == nil {
		t.Error("期望停止后排定失败")
	}
}

// TestSchedulerTurnExecution 测试到期回合被执行
func TestSchedulerTurnExecution(t *testing.T) {
	scheduler := NewScheduler(5)
	scheduler.Start()
	defer scheduler.Stop()

	var executed atomic.Int32
	var mu sync.Mutex
	var seats []string

	fn := func(ctx context.Context, roomId, seatName string) error {
		mu.Lock()
		seats = append(seats, seatName)
		mu.Unlock()
		executed.Add(1)
		return nil
	}

	// 添加多个回合,延迟1秒
	for i := 1; i <= 5; i++ {
		turn := NewBotTurn("room-1", fmt.Sprintf("CPU-%d", i), 1, fn)
		if err := scheduler.Schedule(turn); err != nil {
			t.Fatalf("排定失败: %v", err)
		}
	}

	// 等待执行 (2秒足够)
	time.Sleep(2 * time.Second)

	if executed.Load() != 5 {
		t.Errorf("期望执行5个回合, 实际 = %d", executed.Load())
	}

	mu.Lock()
	defer mu.Unlock()
	if len(seats) != 5 {
		t.Errorf("期望5个结果, 实际 = %d", len(seats))
	}
}

// TestSchedulerConcurrent 测试并发排定
func TestSchedulerConcurrent(t *testing.T) {
	scheduler := NewScheduler(10)
	scheduler.Start()
	defer scheduler.Stop()

	var executed atomic.Int32

	fn := func(ctx context.Context, roomId, seatName string) error {
		executed.Add(1)
		return nil
	}

	// 并发排定
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			turn := NewBotTurn(fmt.Sprintf("room-%d", id), "CPU-1", 1, fn)
			scheduler.Schedule(turn)
		}(i)
	}

	wg.Wait()

	// 等待执行
	time.Sleep(2 * time.Second)

	if executed.Load() != 100 {
		t.Errorf("期望执行100个回合, 实际 = %d", executed.Load())
	}
}

// TestWorkerPoolPanicRecover 测试 panic 恢复
func TestWorkerPoolPanicRecover(t *testing.T) {
	scheduler := NewScheduler(5)
	scheduler.Start()
	defer scheduler.Stop()

	var executed atomic.Int32

	panicFn := func(ctx context.Context, roomId, seatName string) error {
		executed.Add(1)
		panic("测试 panic")
	}

	normalFn := func(ctx context.Context, roomId, seatName string) error {
		executed.Add(1)
		return nil
	}

	// 添加会 panic 的回合
	scheduler.Schedule(NewBotTurn("room-1", "CPU-1", 1, panicFn))

	// 添加正常回合
	scheduler.Schedule(NewBotTurn("room-1", "CPU-2", 1, normalFn))

	// 等待执行
	time.Sleep(2 * time.Second)

	// 两个回合都应该被执行 (panic 被恢复)
	if executed.Load() != 2 {
		t.Errorf("期望执行2个回合, 实际 = %d", executed.Load())
	}
}

// BenchmarkSchedulerSchedule 性能测试: 排定回合
func BenchmarkSchedulerSchedule(b *testing.B) {
	scheduler := NewScheduler(10)
	scheduler.Start()
	defer scheduler.Stop()

	fn := func(ctx context.Context, roomId, seatName string) error {
		return nil
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		scheduler.Schedule(NewBotTurn("room-1", "CPU-1", 1, fn))
	}
}

// BenchmarkTimeWheelTick 性能测试: 时间轮推进
func BenchmarkTimeWheelTick(b *testing.B) {
	wheel := NewTimeWheel()
	defer wheel.Stop()

	for i := 0; i < 100; i++ {
		wheel.Add(NewBotTurn("room-1", "CPU-1", 1, nil))
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		wheel.Tick()
	}
}
