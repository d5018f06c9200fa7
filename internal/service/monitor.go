package service

import (
	"sync"
	"time"
)

// Monitor 监控服务，统计店面侧的错误与业务指标
type Monitor struct {
	mu sync.RWMutex

	// 错误统计
	RedisErrors  int64
	MQErrors     int64
	DBErrors     int64
	AuthFailures int64

	// 业务统计
	CartMutations   int64
	WishlistToggles int64
	OrdersPlaced    int64
	OrdersProcessed int64
	OrdersFailed    int64

	// 时间统计
	LastRedisError time.Time
	LastMQError    time.Time
	LastDBError    time.Time
	LastOrderTime  time.Time
}

var globalMonitor = &Monitor{}

// GetMonitor 获取全局监控实例
func GetMonitor() *Monitor {
	return globalMonitor
}

// RecordRedisError 记录Redis错误
func (m *Monitor) RecordRedisError() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RedisErrors++
	m.LastRedisError = time.Now()
}

// RecordMQError 记录MQ错误
func (m *Monitor) RecordMQError() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.MQErrors++
	m.LastMQError = time.Now()
}

// RecordDBError 记录数据库错误
func (m *Monitor) RecordDBError() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DBErrors++
	m.LastDBError = time.Now()
}

// RecordAuthFailure 记录登录失败
func (m *Monitor) RecordAuthFailure() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AuthFailures++
}

// RecordCartMutation 记录购物车变更
func (m *Monitor) RecordCartMutation() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CartMutations++
}

// RecordWishlistToggle 记录收藏切换
func (m *Monitor) RecordWishlistToggle() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.WishlistToggles++
}

// RecordOrderPlaced 记录下单
func (m *Monitor) RecordOrderPlaced() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.OrdersPlaced++
	m.LastOrderTime = time.Now()
}

// RecordOrderProcessed 记录订单处理成功
func (m *Monitor) RecordOrderProcessed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.OrdersProcessed++
}

// RecordOrderFailed 记录订单处理失败
func (m *Monitor) RecordOrderFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.OrdersFailed++
}

// GetStats 获取统计信息
func (m *Monitor) GetStats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	processRate := float64(0)
	if m.OrdersPlaced > 0 {
		processRate = float64(m.OrdersProcessed) / float64(m.OrdersPlaced) * 100
	}

	return map[string]interface{}{
		"errors": map[string]interface{}{
			"redis": m.RedisErrors,
			"mq":    m.MQErrors,
			"db":    m.DBErrors,
			"auth":  m.AuthFailures,
		},
		"business": map[string]interface{}{
			"cart_mutations":     m.CartMutations,
			"wishlist_toggles":   m.WishlistToggles,
			"orders_placed":      m.OrdersPlaced,
			"orders_processed":   m.OrdersProcessed,
			"orders_failed":      m.OrdersFailed,
			"order_process_rate": processRate,
		},
		"last_events": map[string]interface{}{
			"redis_error": m.LastRedisError,
			"mq_error":    m.LastMQError,
			"db_error":    m.LastDBError,
			"last_order":  m.LastOrderTime,
		},
	}
}

// Reset 重置统计（用于测试或定期清理）
func (m *Monitor) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RedisErrors = 0
	m.MQErrors = 0
	m.DBErrors = 0
	m.AuthFailures = 0
	m.CartMutations = 0
	m.WishlistToggles = 0
	m.OrdersPlaced = 0
	m.OrdersProcessed = 0
	m.OrdersFailed = 0
}
