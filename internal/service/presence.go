package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// connLocationKeyPrefix 连接位置 Redis Key 前缀
	// Key: mahjong:conn:location:{connToken}
	connLocationKeyPrefix = "mahjong:conn:location:"

	// connLocationTTL 连接位置 TTL
	connLocationTTL = 24 * time.Hour
)

// buildConnLocationKey 构建连接位置 Key
func buildConnLocationKey(connToken string) string {
	return connLocationKeyPrefix + connToken
}

// PresenceService 连接位置管理服务
// 记录连接令牌落在哪个 Access 节点，定向推送 (私有手牌等) 依赖它
// 路由。令牌在重连时会更换，旧令牌随 TTL 过期
type PresenceService struct {
	redisClient   *redis.Client
	logger        *slog.Logger
	locationCache sync.Map // connToken -> accessNodeId
}

// NewPresenceService 创建连接位置服务
func NewPresenceService(redisClient *redis.Client) *PresenceService {
	return &PresenceService{
		redisClient: redisClient,
		logger:      slog.Default(),
	}
}

// Register 登记连接所在的 Access 节点
func (s *PresenceService) Register(ctx context.Context, connToken, accessNodeId string) error {
	if connToken == "" || accessNodeId == "" {
		return nil
	}

	key := buildConnLocationKey(connToken)
	if err := s.redisClient.Set(ctx, key, accessNodeId, connLocationTTL).Err(); err != nil {
		s.logger.Warn("Failed to register conn location", "connToken", connToken, "error", err)
		return err
	}

	s.locationCache.Store(connToken, accessNodeId)
	return nil
}

// Locate 查询连接所在的 Access 节点 (带缓存)
func (s *PresenceService) Locate(ctx context.Context, connToken string) (string, bool) {
	if cached, ok := s.locationCache.Load(connToken); ok {
		return cached.(string), true
	}

	key := buildConnLocationKey(connToken)
	nodeId, err := s.redisClient.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			s.logger.Warn("Failed to locate conn", "connToken", connToken, "error", err)
		}
		return "", false
	}

	s.locationCache.Store(connToken, nodeId)
	return nodeId, true
}

// Forget 失效连接位置 (连接断开或令牌被覆盖时调用)
func (s *PresenceService) Forget(ctx context.Context, connToken string) {
	s.locationCache.Delete(connToken)
	if err := s.redisClient.Del(ctx, buildConnLocationKey(connToken)).Err(); err != nil {
		s.logger.Warn("Failed to delete conn location", "connToken", connToken, "error", err)
	}
}
