package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Scope 限流范围
type Scope string

const (
	ScopeQuotation Scope = "quotation"
	ScopeInquiry   Scope = "inquiry"
	ScopeMigrate   Scope = "migrate"
	ScopeSnapshot  Scope = "snapshot"
)

// CooldownKey 按范围 + 客户端 IP 生成 key
func CooldownKey(scope Scope, clientIP string) string {
	return fmt.Sprintf("%s:%s", scope, clientIP)
}

// Cooldown 冷却限流中间件，interval <= 0 时不限流
//
// 使用示例:
//
//	api.POST("/quotations", middleware.Cooldown(limiter, middleware.ScopeQuotation, 10*time.Second), ctl.Issue)
func Cooldown(limiter *CooldownLimiter, scope Scope, interval time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if interval <= 0 || limiter == nil {
			c.Next()
			return
		}

		result := limiter.Check(CooldownKey(scope, c.ClientIP()), interval)
		if !result.Allowed {
			c.Header("Retry-After", fmt.Sprintf("%d", retrySeconds(result.RetryAfter)))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"code":    http.StatusTooManyRequests,
				"message": formatRetryMessage(result.RetryAfter),
				"data": gin.H{
					"retry_after": retrySeconds(result.RetryAfter),
					"scope":       scope,
				},
			})
			return
		}

		c.Next()
	}
}

// ==================== 辅助函数 ====================

// retrySeconds 向上取整，至少 1 秒
func retrySeconds(d time.Duration) int {
	s := int((d + time.Second - 1) / time.Second)
	if s < 1 {
		s = 1
	}
	return s
}

// formatRetryMessage 格式化重试提示
func formatRetryMessage(d time.Duration) string {
	seconds := retrySeconds(d)
	if seconds < 60 {
		return fmt.Sprintf("잠시 후 다시 시도해 주세요 (%d초)", seconds)
	}

	minutes := seconds / 60
	remaining := seconds % 60
	if remaining == 0 {
		return fmt.Sprintf("잠시 후 다시 시도해 주세요 (%d분)", minutes)
	}
	return fmt.Sprintf("잠시 후 다시 시도해 주세요 (%d분 %d초)", minutes, remaining)
}
