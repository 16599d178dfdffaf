// Package metrics API 서버의 요청 지표를 Prometheus 형식으로 수집하고 노출합니다.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	namespace = "fastnext"

	// unmatchedRoute 등록된 라우트와 일치하지 않은 요청(404 등)의 path 레이블 값
	unmatchedRoute = "unmatched"

	// otherMethod 표준이 아닌 HTTP 메서드의 method 레이블 값
	otherMethod = "other"
)

var standardMethods = map[string]struct{}{
	http.MethodGet:     {},
	http.MethodHead:    {},
	http.MethodPost:    {},
	http.MethodPut:     {},
	http.MethodPatch:   {},
	http.MethodDelete:  {},
	http.MethodConnect: {},
	http.MethodOptions: {},
	http.MethodTrace:   {},
}

// Metrics 서버 인스턴스 전용 레지스트리에 등록된 요청 지표입니다.
// 서버마다 별도 레지스트리를 사용하므로 테스트에서 여러 인스턴스를 만들어도 중복 등록되지 않습니다.
type Metrics struct {
	registry *prometheus.Registry

	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// New Go 런타임 및 프로세스 수집기가 포함된 Metrics를 생성합니다.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		requestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
			},
			[]string{"method", "path"},
		),
	}
}

// Registry 지표가 등록된 레지스트리를 반환합니다.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Middleware 요청 수와 처리 시간을 기록하는 미들웨어를 반환합니다.
//
// path 레이블은 실제 URL이 아니라 매칭된 라우트 패턴이며, 매칭되지 않은 요청은 "unmatched",
// 표준이 아닌 메서드는 "other"로 기록됩니다. 핸들러 에러는 c.Error로 렌더링한 뒤 최종 상태 코드를 기록하고,
// 패닉이 발생한 요청은 500으로 기록한 뒤 패닉을 그대로 전파합니다.
func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			panicked := true

			defer func() {
				code := c.Response().Status
				if panicked {
					code = http.StatusInternalServerError
				}

				method := methodLabel(c.Request().Method)
				path := routeLabel(c)

				m.requestsTotal.WithLabelValues(method, path, strconv.Itoa(code)).Inc()
				m.requestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
			}()

			if err := next(c); err != nil {
				c.Error(err)
			}
			panicked = false

			return nil
		}
	}
}

// Handler /metrics 엔드포인트 핸들러를 반환합니다.
func (m *Metrics) Handler() echo.HandlerFunc {
	return echo.WrapHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}

func routeLabel(c echo.Context) string {
	p := c.Path()
	if p == "" || p == "/*" {
		return unmatchedRoute
	}
	return p
}

func methodLabel(method string) string {
	if _, ok := standardMethods[method]; ok {
		return method
	}
	return otherMethod
}
