package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var QueryDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name: "sql_query_duration_seconds",
	Help: "Duration of sql queries in seconds",
}, []string{"query"})

var EventMutationsCounter = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "eventmi_event_mutations_total",
	Help: "The total number of successful event mutations by action",
}, []string{"action"})

var ChangePublishErrorCounter = promauto.NewCounter(prometheus.CounterOpts{
	Name: "eventmi_change_publish_errors_total",
	Help: "Number of event change notifications that could not be published",
})
