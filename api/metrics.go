package api

import (
	"sort"
	"sync"
	"time"
)

// RouteMetrics aggregates request counts and timing for a single route.
type RouteMetrics struct {
	Method      string        `json:"method"`
	Path        string        `json:"path"`
	Count       int64         `json:"count"`
	ErrorCount  int64         `json:"errorCount"`
	TotalTime   time.Duration `json:"totalTime"`
	AvgTime     time.Duration `json:"avgTime"`
	MinTime     time.Duration `json:"minTime"`
	MaxTime     time.Duration `json:"maxTime"`
	LastRequest time.Time     `json:"lastRequest"`
}

// MetricsCollector collects per-route metrics. Recording is a brief
// lock-guarded map update; nothing here blocks the request path for long.
type MetricsCollector struct {
	mu            sync.RWMutex
	routeMetrics  map[string]*RouteMetrics
	windowStart   time.Time
	totalRequests int64
	totalErrors   int64
}

var globalMetrics *MetricsCollector
var metricsOnce sync.Once

// GetMetrics returns the global metrics collector.
func GetMetrics() *MetricsCollector {
	metricsOnce.Do(func() {
		globalMetrics = &MetricsCollector{
			routeMetrics: make(map[string]*RouteMetrics),
			windowStart:  time.Now(),
		}
	})
	return globalMetrics
}

// Record folds one request into the route aggregates. The path should be the
// mux route template so ids don't fan out into distinct routes.
func (mc *MetricsCollector) Record(method, path string, status int, dur time.Duration) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	key := method + " " + path
	m, ok := mc.routeMetrics[key]
	if !ok {
		m = &RouteMetrics{Method: method, Path: path, MinTime: dur}
		mc.routeMetrics[key] = m
	}

	m.Count++
	m.TotalTime += dur
	m.AvgTime = m.TotalTime / time.Duration(m.Count)
	m.LastRequest = time.Now()
	if dur < m.MinTime {
		m.MinTime = dur
	}
	if dur > m.MaxTime {
		m.MaxTime = dur
	}

	mc.totalRequests++
	if status >= 400 {
		m.ErrorCount++
		mc.totalErrors++
	}
}

// Summary returns overall counters plus the routes sorted slowest-first.
func (mc *MetricsCollector) Summary() map[string]interface{} {
	mc.mu.RLock()
	defer mc.mu.RUnlock()

	routes := make([]*RouteMetrics, 0, len(mc.routeMetrics))
	for _, m := range mc.routeMetrics {
		cp := *m
		routes = append(routes, &cp)
	}
	sort.Slice(routes, func(i, j int) bool { return routes[i].AvgTime > routes[j].AvgTime })

	var errorRate float64
	if mc.totalRequests > 0 {
		errorRate = float64(mc.totalErrors) / float64(mc.totalRequests)
	}

	return map[string]interface{}{
		"totalRequests": mc.totalRequests,
		"totalErrors":   mc.totalErrors,
		"errorRate":     errorRate,
		"windowStart":   mc.windowStart,
		"routeCount":    len(routes),
		"routes":        routes,
	}
}
