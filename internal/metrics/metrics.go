// Package metrics содержит Prometheus-метрики обновления ленты.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"

	// OtherPublisher метка для издателей вне каталога.
	OtherPublisher = "other"
)

var (
	// RefreshTotal считает обновления ленты по результату.
	RefreshTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tamilnews",
			Name:      "refresh_total",
			Help:      "Total number of feed refreshes",
		},
		[]string{"outcome"},
	)

	RefreshDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "tamilnews",
			Name:      "refresh_duration_seconds",
			Help:      "Duration of feed refreshes in seconds",
			Buckets:   prometheus.DefBuckets,
		},
	)

	// Articles текущее количество статей в последнем снимке.
	Articles = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "tamilnews",
			Name:      "articles",
			Help:      "Number of articles in the current snapshot",
		},
	)

	// PublisherMatches считает статьи по определенному издателю.
	PublisherMatches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tamilnews",
			Name:      "publisher_matches_total",
			Help:      "Enriched articles by inferred publisher",
		},
		[]string{"publisher"},
	)
)

// RecordRefresh фиксирует результат одного обновления.
func RecordRefresh(outcome string, durationSeconds float64, articles int) {
	RefreshTotal.WithLabelValues(outcome).Inc()
	RefreshDuration.Observe(durationSeconds)
	Articles.Set(float64(articles))
}

// RecordPublisher увеличивает счетчик статей издателя.
// Издатели вне каталога учитываются под меткой OtherPublisher.
func RecordPublisher(publisher string, known bool) {
	if !known {
		publisher = OtherPublisher
	}
	PublisherMatches.WithLabelValues(publisher).Inc()
}
