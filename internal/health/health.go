package health

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"
)

// Status описывает состояние компонента сервиса заказов.
type Status string

const (
	StatusUp   Status = "up"
	StatusDown Status = "down"
)

// Result — результат одной проверки.
type Result struct {
	Component  string `json:"component"`
	Status     Status `json:"status"`
	Error      string `json:"error,omitempty"`
	DurationMs int64  `json:"duration_ms"`
}

// Report — агрегированный ответ health-эндпоинта.
type Report struct {
	Status        Status    `json:"status"`
	Timestamp     time.Time `json:"timestamp"`
	Components    []Result  `json:"components,omitempty"`
	Version       string    `json:"version,omitempty"`
	UptimeSeconds int64     `json:"uptime_seconds"`
}

// PingFunc проверяет доступность зависимости; nil означает, что она жива.
type PingFunc func() error

type probe struct {
	component string
	ping      PingFunc
}

// Handler отдаёт состояние сервиса и его зависимостей по HTTP.
type Handler struct {
	mu        sync.RWMutex
	probes    []probe
	version   string
	startTime time.Time
}

// NewHandler создаёт handler без зарегистрированных проверок.
func NewHandler(version string) *Handler {
	return &Handler{
		version:   version,
		startTime: time.Now(),
	}
}

// Register добавляет проверку зависимости. Порядок регистрации сохраняется в отчёте.
func (h *Handler) Register(component string, ping PingFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.probes = append(h.probes, probe{component: component, ping: ping})
}

func (h *Handler) snapshot() []probe {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]probe, len(h.probes))
	copy(out, h.probes)
	return out
}

func run(p probe) Result {
	start := time.Now()
	err := p.ping()
	result := Result{
		Component:  p.component,
		Status:     StatusUp,
		DurationMs: time.Since(start).Milliseconds(),
	}
	if err != nil {
		result.Status = StatusDown
		result.Error = err.Error()
	}
	return result
}

// ServeHTTP выполняет все проверки и возвращает полный отчёт.
// 503 отдаётся, если хотя бы одна зависимость недоступна.
func (h *Handler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	report := Report{
		Status:        StatusUp,
		Timestamp:     time.Now(),
		Version:       h.version,
		UptimeSeconds: int64(time.Since(h.startTime).Seconds()),
	}

	for _, p := range h.snapshot() {
		result := run(p)
		report.Components = append(report.Components, result)
		if result.Status == StatusDown {
			report.Status = StatusDown
		}
	}

	statusCode := http.StatusOK
	if report.Status == StatusDown {
		statusCode = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(report)
}

// LivenessHandler отвечает 200, пока процесс жив.
func LivenessHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// ReadinessHandler возвращает 503 при первой же недоступной зависимости.
func (h *Handler) ReadinessHandler(w http.ResponseWriter, _ *http.Request) {
	for _, p := range h.snapshot() {
		if result := run(p); result.Status == StatusDown {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("not ready"))
			return
		}
	}

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
