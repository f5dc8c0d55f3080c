// Package metrics holds the prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "realestate_http_requests_total",
		Help: "HTTP requests by method, route and status.",
	}, []string{"method", "route", "status"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "realestate_http_request_duration_seconds",
		Help:    "HTTP request latency by method and route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	MediaUploads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "realestate_media_uploads_total",
		Help: "Object storage uploads by media category and result.",
	}, []string{"category", "result"})

	MediaRollbacks = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "realestate_media_rollback_objects_total",
		Help: "Stored objects removed after a failed upload or a deleted listing, by result.",
	}, []string{"result"})

	CMSRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "realestate_cms_requests_total",
		Help: "Headless CMS calls by kind and result.",
	}, []string{"kind", "result"})
)
