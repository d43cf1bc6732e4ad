package limiter

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// ILimiter key層級限流 key通常為client IP
type ILimiter interface {
	Allow(ctx context.Context, key string) bool
}

type Config struct {
	Capacity int // bucket容量
	RatePS   int // tokens/秒
}

func GetDefaultConfig() Config {
	return Config{
		Capacity: 100,
		RatePS:   10,
	}
}

// RedisClient 介面定義
type RedisClient interface {
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd
}

// RedisTokenBucket 以redis hash儲存bucket狀態 Lua腳本確保原子性
// 多實例部署時限流狀態共享
type RedisTokenBucket struct {
	Config
	client RedisClient
	prefix string
}

func NewRedisTokenBucket(client RedisClient, prefix string, config *Config) *RedisTokenBucket {
	rb := &RedisTokenBucket{
		client: client,
		prefix: prefix,
	}

	if config != nil {
		rb.Config = *config
	} else {
		rb.Config = GetDefaultConfig()
	}

	return rb
}

const tokenBucketScript = `
	local key = KEYS[1]
	local capacity = tonumber(ARGV[1])
	local rate = tonumber(ARGV[2])
	local now = tonumber(ARGV[3])
	local initTokens = tonumber(ARGV[4])

	-- 取得或初始化 bucket 狀態
	local bucket = redis.call('HMGET', key, 'tokens', 'last_refill')
	local currentTokens = tonumber(bucket[1])
	local lastRefill = tonumber(bucket[2])

	-- 如果 key 不存在，進行初始化
	if currentTokens == nil then
		currentTokens = initTokens
		lastRefill = now
		redis.call('HMSET', key, 'tokens', currentTokens, 'last_refill', lastRefill)
		redis.call('EXPIRE', key, 60) -- 設置 60 秒過期，避免佔用太多記憶體
	end

	-- 計算需要補充的 tokens
	local elapsedSeconds = (now - lastRefill) / 1000000000 -- 轉換為秒
	local tokensToAdd = elapsedSeconds * rate

	-- 更新 tokens
	currentTokens = math.min(capacity, currentTokens + tokensToAdd)

	-- 如果沒有足夠的 tokens，返回 false
	if currentTokens < 1 then
		redis.call('HMSET', key, 'tokens', currentTokens, 'last_refill', now)
		return 0
	end

	-- 扣減一個 token 並更新狀態
	currentTokens = currentTokens - 1
	redis.call('HMSET', key, 'tokens', currentTokens, 'last_refill', now)

	return 1
`

func (r *RedisTokenBucket) Allow(ctx context.Context, key string) bool {
	result, err := r.client.Eval(
		ctx,
		tokenBucketScript,
		[]string{r.prefix + ":" + key},
		r.Capacity,
		r.RatePS,
		time.Now().UnixNano(),
		r.Capacity, // 初始 tokens 設為最大容量
	).Int64()

	// redis異常時放行 限流屬於保護機制不該阻斷服務
	if err != nil {
		return true
	}

	return result == 1
}
