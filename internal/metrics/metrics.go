package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	CheckoutResultCompleted = "completed"
	CheckoutResultRejected  = "rejected"
)

// Metrics holds the order workflow and HTTP collectors. A nil *Metrics is a no-op.
type Metrics struct {
	itemsAdded        prometheus.Counter
	itemsRemoved      prometheus.Counter
	insufficientStock prometheus.Counter
	checkouts         *prometheus.CounterVec
	requestDuration   *prometheus.HistogramVec
}

func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

func NewWithRegisterer(registerer prometheus.Registerer) *Metrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &Metrics{
		itemsAdded: register(registerer, prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bakery_order_items_added_total",
			Help: "Units added to orders through add_item",
		})),
		itemsRemoved: register(registerer, prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bakery_order_items_removed_total",
			Help: "Units removed from orders through remove_item",
		})),
		insufficientStock: register(registerer, prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bakery_insufficient_stock_total",
			Help: "add_item calls rejected because of insufficient stock",
		})),
		checkouts: register(registerer, prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bakery_checkouts_total",
			Help: "Checkout attempts by result",
		}, []string{"result"})),
		requestDuration: register(registerer, prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "bakery_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "status"})),
	}
}

func register[T prometheus.Collector](registerer prometheus.Registerer, collector T) T {
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(T)
			if !ok {
				panic(fmt.Sprintf("collector %T already registered with unexpected type", collector))
			}
			return existing
		}
		panic(fmt.Sprintf("register collector %T: %v", collector, err))
	}
	return collector
}

func (m *Metrics) RecordItemsAdded(quantity int) {
	if m == nil {
		return
	}
	m.itemsAdded.Add(float64(quantity))
}

func (m *Metrics) RecordItemsRemoved(quantity int) {
	if m == nil {
		return
	}
	m.itemsRemoved.Add(float64(quantity))
}

func (m *Metrics) RecordInsufficientStock() {
	if m == nil {
		return
	}
	m.insufficientStock.Inc()
}

func (m *Metrics) RecordCheckout(result string) {
	if m == nil {
		return
	}
	m.checkouts.WithLabelValues(result).Inc()
}

func (m *Metrics) RecordRequest(method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.requestDuration.WithLabelValues(method, fmt.Sprint(status)).Observe(duration.Seconds())
}

type Timer struct {
	start time.Time
}

func StartTimer() *Timer {
	return &Timer{start: time.Now()}
}

func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}
