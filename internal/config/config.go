package config

import (
	"log"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	viper "github.com/spf13/viper"
)

/*
把init config跟read config分開
init : 需要設置viper watch 與 onConfigChange
read config : 一般讀取 需要使用讀寫鎖
*/
var config_singleton *ConfigSingleTon
var muonce sync.Once

type ConfigSingleTon struct {
	Config *Config
	mu     sync.RWMutex
}

type Config struct {
	ModulerName     string `mapstructure:"MODULER_NAME"`
	ServerPort      string `mapstructure:"SERVER_PORT"`
	DbName          string `mapstructure:"POSTGRES_DB"`
	DbHost          string `mapstructure:"POSTGRES_HOST"`
	DbPort          string `mapstructure:"POSTGRES_PORT"`
	DbUser          string `mapstructure:"POSTGRES_USER"`
	DbPas           string `mapstructure:"POSTGRES_PASSWORD"`
	RedisHost       string `mapstructure:"REDIS_HOST"`
	RedisPort       string `mapstructure:"REDIS_PORT"`
	RedisPassword   string `mapstructure:"REDIS_PASSWORD"`
	KafkaBrokers    string `mapstructure:"KAFKA_BROKERS"`
	KafkaOrderTopic string `mapstructure:"KAFKA_ORDER_TOPIC"`
	AuthTokenKey    string `mapstructure:"AUTH_TOKEN_KEY"`

	// 下單交易時間上限 毫秒
	OrderTxTimeoutMs  int `mapstructure:"ORDER_TX_TIMEOUT_MS"`
	OrderTxLockWaitMs int `mapstructure:"ORDER_TX_LOCK_WAIT_MS"`

	// 限流設定
	RateLimitCapacity int `mapstructure:"RATE_LIMIT_CAPACITY"`
	RateLimitPerSec   int `mapstructure:"RATE_LIMIT_PER_SEC"`
}

// OrderTxTimeout 下單交易整體執行時間上限 預設10秒
func (c *Config) OrderTxTimeout() time.Duration {
	if c.OrderTxTimeoutMs <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.OrderTxTimeoutMs) * time.Millisecond
}

// OrderTxLockWait 下單交易鎖等待時間上限 預設5秒
func (c *Config) OrderTxLockWait() time.Duration {
	if c.OrderTxLockWaitMs <= 0 {
		return 5 * time.Second
	}
	return time.Duration(c.OrderTxLockWaitMs) * time.Millisecond
}

func GetConfig() *Config {
	initConfig()
	config_singleton.mu.RLock()
	defer config_singleton.mu.RUnlock()
	return config_singleton.Config
}

func initConfig() {
	if config_singleton == nil {
		muonce.Do(func() {
			config_singleton = &ConfigSingleTon{}
			if cf, err := loadConfig(); err == nil {
				config_singleton.Config = cf
			} else {
				log.Fatal("error read config")
			}
			viper.WatchConfig()
			viper.OnConfigChange(func(e fsnotify.Event) {
				if cf, err := loadConfig(); err == nil {
					config_singleton.Config = cf
				} else {
					log.Panic("failed to reload config file")
				}
			})
		})
	}
}

/*
單純回傳錯誤 由外部決定要不要Fatal 畢竟有可能有替代方案
*/
func loadConfig() (cf *Config, err error) {
	config_singleton.mu.Lock()
	defer config_singleton.mu.Unlock()

	cf = &Config{}
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")
	viper.AutomaticEnv()

	err = viper.ReadInConfig()
	if err != nil {
		return
	}

	err = viper.Unmarshal(cf)
	if err != nil {
		return
	}
	return
}
