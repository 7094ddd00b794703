package limits

import (
	"net"
	"net/http"
	"strings"
	"sync"
)

// ConnectionLimiter caps concurrent live connections per client address.
type ConnectionLimiter struct {
	max      int
	onReject func(reason string)

	mu    sync.Mutex
	conns map[string]int
}

// NewConnectionLimiter creates a limiter allowing max connections per IP.
// A max <= 0 disables the limit.
func NewConnectionLimiter(max int, onReject func(reason string)) *ConnectionLimiter {
	return &ConnectionLimiter{max: max, onReject: onReject, conns: make(map[string]int)}
}

// Acquire takes a slot for ip and reports whether one was free.
func (l *ConnectionLimiter) Acquire(ip string) bool {
	if l.max <= 0 {
		return true
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.conns[ip] >= l.max {
		return false
	}
	l.conns[ip]++
	return true
}

// Release returns a slot taken by Acquire.
func (l *ConnectionLimiter) Release(ip string) {
	if l.max <= 0 {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if n := l.conns[ip]; n <= 1 {
		delete(l.conns, ip)
	} else {
		l.conns[ip] = n - 1
	}
}

// Count returns the open connections of ip.
func (l *ConnectionLimiter) Count(ip string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.conns[ip]
}

// Middleware holds a slot for the lifetime of each WebSocket upgrade.
// Plain requests pass through.
func (l *ConnectionLimiter) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !isUpgrade(r) {
				next.ServeHTTP(w, r)
				return
			}
			ip := ClientIP(r)
			if !l.Acquire(ip) {
				if l.onReject != nil {
					l.onReject(ReasonConnections)
				}
				http.Error(w, "Too Many Connections", http.StatusTooManyRequests)
				return
			}
			defer l.Release(ip)
			next.ServeHTTP(w, r)
		})
	}
}

// ClientIP returns the first X-Forwarded-For address, X-Real-IP, or the
// host of RemoteAddr.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
		return xri
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func isUpgrade(r *http.Request) bool {
	return strings.EqualFold(r.Header.Get("Upgrade"), "websocket")
}
