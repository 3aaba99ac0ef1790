package mymetrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "soar"

const (
	ResultSuccess = "success"
	ResultFailure = "failure"
	ResultSkipped = "skipped"
)

// Collector owns the process metrics on a private registry so tests can build as many as they need.
type Collector struct {
	registry *prometheus.Registry

	StatementWrites *prometheus.CounterVec
	SyncItems       *prometheus.CounterVec
	ChatMessages    *prometheus.CounterVec
}

func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		StatementWrites: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "statement_writes_total",
				Help:      "Background memory writes of user statements by result",
			},
			[]string{"result"},
		),
		SyncItems: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "sync_items_total",
				Help:      "Trips, flight bookings and preferences synchronized into memory by result",
			},
			[]string{"kind", "result"},
		),
		ChatMessages: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "chat_messages_total",
				Help:      "Chat messages handled by classified type",
			},
			[]string{"type"},
		),
	}

	c.registry.MustRegister(c.StatementWrites, c.SyncItems, c.ChatMessages)
	return c
}

func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

func (c *Collector) ObserveStatementWrite(ok bool) {
	if c == nil {
		return
	}
	c.StatementWrites.WithLabelValues(result(ok)).Inc()
}

func (c *Collector) ObserveSyncItem(kind string, res string) {
	if c == nil {
		return
	}
	c.SyncItems.WithLabelValues(kind, res).Inc()
}

func (c *Collector) ObserveChatMessage(messageType string) {
	if c == nil {
		return
	}
	c.ChatMessages.WithLabelValues(messageType).Inc()
}

func result(ok bool) string {
	if ok {
		return ResultSuccess
	}
	return ResultFailure
}
