// Package metrics holds the process-wide Prometheus collectors.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var LinksIssued = prometheus.NewCounterVec(prometheus.CounterOpts{
	Name: "fdl_links_issued_total",
	Help: "Link sets issued, by media kind.",
}, []string{"kind"})
var IssueFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
	Name: "fdl_issue_failures_total",
	Help: "Failed issuances, by the step that failed.",
}, []string{"stage"})
var Redemptions = prometheus.NewCounterVec(prometheus.CounterOpts{
	Name: "fdl_redemptions_total",
	Help: "Link redemptions, by route and result.",
}, []string{"route", "result"})
var BytesServed = prometheus.NewCounterVec(prometheus.CounterOpts{
	Name: "fdl_bytes_served_total",
	Help: "Media bytes written to clients, by route.",
}, []string{"route"})
var ArchiveOperations = prometheus.NewCounterVec(prometheus.CounterOpts{
	Name: "fdl_archive_operations_total",
	Help: "Log channel calls, by operation and result.",
}, []string{"operation", "result"})
var RecordsReaped = prometheus.NewCounter(prometheus.CounterOpts{
	Name: "fdl_records_reaped_total",
	Help: "Expired link records deleted by the reaper.",
})

func init() {
	prometheus.MustRegister(LinksIssued)
	prometheus.MustRegister(IssueFailures)
	prometheus.MustRegister(Redemptions)
	prometheus.MustRegister(BytesServed)
	prometheus.MustRegister(ArchiveOperations)
	prometheus.MustRegister(RecordsReaped)
}

// Handler exposes the default registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Result turns an error into the "ok"/"error" label value.
func Result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
