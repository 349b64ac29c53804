package session

import (
	"context"
	"testing"
	"time"
)

// TestRegistryGetOrCreate 测试懒创建: 同一房间ID返回同一张牌桌
func TestRegistryGetOrCreate(t *testing.T) {
	registry := NewRegistry(time.Hour, time.Hour)
	defer registry.Shutdown(context.Background())

	table1 := registry.GetOrCreate("room-1")
	table2 := registry.GetOrCreate("room-1")

	if table1 != table2 {
		t.Error("期望同一房间ID返回同一张牌桌")
	}

	if registry.Count() != 1 {
		t.Errorf("期望牌桌数 = 1, 实际 = %d", registry.Count())
	}

	registry.GetOrCreate("room-2")
	if registry.Count() != 2 {
		t.Errorf("期望牌桌数 = 2, 实际 = %d", registry.Count())
	}
}

// TestRegistryGet 测试只读查找不创建
func TestRegistryGet(t *testing.T) {
	registry := NewRegistry(time.Hour, time.Hour)
	defer registry.Shutdown(context.Background())

	if _, ok := registry.Get("room-missing"); ok {
		t.Error("期望查找不存在的房间返回 false")
	}
	if registry.Count() != 0 {
		t.Errorf("期望 Get 不创建牌桌, 实际牌桌数 = %d", registry.Count())
	}

	created := registry.GetOrCreate("room-1")
	got, ok := registry.Get("room-1")
	if !ok || got != created {
		t.Error("期望查到已创建的牌桌")
	}
}

// TestRegistryRemove 测试移除后按房间ID查不到
// 已排定的机器人回合依赖这一点静默放弃
func TestRegistryRemove(t *testing.T) {
	registry := NewRegistry(time.Hour, time.Hour)
	defer registry.Shutdown(context.Background())

	registry.GetOrCreate("room-1")
	registry.Remove("room-1")

	if _, ok := registry.Get("room-1"); ok {
		t.Error("期望移除后查不到牌桌")
	}
	if registry.Count() != 0 {
		t.Errorf("期望牌桌数 = 0, 实际 = %d", registry.Count())
	}

	// 移除不存在的房间是空操作
	registry.Remove("room-missing")
}

// TestRegistryEvictInactive 测试不活跃牌桌被淘汰
func TestRegistryEvictInactive(t *testing.T) {
	registry := NewRegistry(50*time.Millisecond, time.Hour)
	defer registry.Shutdown(context.Background())

	registry.GetOrCreate("room-idle")
	time.Sleep(100 * time.Millisecond)

	// 活跃的牌桌刚创建,不该被淘汰
	registry.GetOrCreate("room-fresh")

	registry.evictInactive()

	if _, ok := registry.Get("room-idle"); ok {
		t.Error("期望不活跃牌桌被淘汰")
	}
	if _, ok := registry.Get("room-fresh"); !ok {
		t.Error("期望活跃牌桌保留")
	}
}
