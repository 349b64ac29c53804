package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App   AppConfig   `mapstructure:"app"`
	NATS  NATSConfig  `mapstructure:"nats"`
	Redis RedisConfig `mapstructure:"redis"`
	Game  GameConfig  `mapstructure:"game"`
}

type AppConfig struct {
	Name     string `mapstructure:"name"`
	LogLevel string `mapstructure:"log_level"`
}

type NATSConfig struct {
	URL           string        `mapstructure:"url"`
	MaxReconnects int           `mapstructure:"max_reconnects"`
	ReconnectWait time.Duration `mapstructure:"reconnect_wait"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

type GameConfig struct {
	BotDealerDelay     int           `mapstructure:"bot_dealer_delay"`     // 庄家是机器人时的首回合延迟 (秒)
	BotThinkDelay      int           `mapstructure:"bot_think_delay"`      // 机器人普通回合的思考延迟 (秒)
	WorkerCount        int           `mapstructure:"worker_count"`         // 调度器工作协程数
	EvictTimeout       time.Duration `mapstructure:"evict_timeout"`        // 牌桌不活跃淘汰时间
	EvictCheckInterval time.Duration `mapstructure:"evict_check_interval"` // 淘汰检查间隔
}

// Load 从指定路径加载配置
func Load(configPath string) (*Config, error) {
	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
