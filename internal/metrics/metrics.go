// Package metrics owns the Prometheus registry for trailnav and the
// HTTP listener exposing it.
package metrics

import (
	"net/http"

	"github.com/go-kit/log"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector registers every trailnav metric on its own registry.
type Collector struct {
	reg *prometheus.Registry

	BlobsProcessed prometheus.Counter
	NodesDecoded   prometheus.Counter
	NodesKept      prometheus.Counter
	WaysKept       prometheus.Counter
	WaysRejected   prometheus.Counter
	ParseIssues    prometheus.Counter
	ParseDuration  prometheus.Histogram

	FixesProcessed  prometheus.Counter
	GuidanceEvents  *prometheus.CounterVec // kind label
	NATSPublished   prometheus.Counter
	NATSPublishErrs prometheus.Counter
}

func NewCollector() *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		reg: reg,
		BlobsProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "trailnav_pbf_blobs_processed_total",
			Help: "Total PBF blobs consumed.",
		}),
		NodesDecoded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "trailnav_pbf_nodes_decoded_total",
			Help: "Total dense nodes decoded, including those outside the bounding box.",
		}),
		NodesKept: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "trailnav_pbf_nodes_kept_total",
			Help: "Total nodes kept after the bounding-box filter.",
		}),
		WaysKept: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "trailnav_pbf_ways_kept_total",
			Help: "Total ways accepted by the routability filter.",
		}),
		WaysRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "trailnav_pbf_ways_rejected_total",
			Help: "Total ways rejected by the routability filter.",
		}),
		ParseIssues: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "trailnav_pbf_parse_issues_total",
			Help: "Total recoverable malformations skipped during parsing.",
		}),
		ParseDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "trailnav_pbf_parse_duration_seconds",
			Help:    "Wall time of whole-file parses.",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
		}),
		FixesProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "trailnav_guidance_fixes_processed_total",
			Help: "Total GPS fixes fed to the tracker.",
		}),
		GuidanceEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "trailnav_guidance_events_total",
			Help: "Guidance events emitted, by kind.",
		}, []string{"kind"}),
		NATSPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "trailnav_nats_published_total",
			Help: "Guidance events published to NATS.",
		}),
		NATSPublishErrs: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "trailnav_nats_publish_errors_total",
			Help: "Failed NATS publishes.",
		}),
	}

	reg.MustRegister(
		c.BlobsProcessed, c.NodesDecoded, c.NodesKept,
		c.WaysKept, c.WaysRejected, c.ParseIssues, c.ParseDuration,
		c.FixesProcessed, c.GuidanceEvents,
		c.NATSPublished, c.NATSPublishErrs,
	)
	return c
}

// Parser hooks (osmpbf.Metrics).

func (c *Collector) BlobProcessed() { c.BlobsProcessed.Inc() }
func (c *Collector) NodeDecoded()   { c.NodesDecoded.Inc() }
func (c *Collector) NodeKept()      { c.NodesKept.Inc() }
func (c *Collector) WayKept()       { c.WaysKept.Inc() }
func (c *Collector) WayRejected()   { c.WaysRejected.Inc() }
func (c *Collector) IssueRecorded() { c.ParseIssues.Inc() }

// Publisher hooks (publisher.Metrics).

func (c *Collector) EventPublished() { c.NATSPublished.Inc() }
func (c *Collector) PublishFailed()  { c.NATSPublishErrs.Inc() }

func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{})
}

// Serve starts an HTTP server exposing /metrics and /health on addr and
// returns it so the caller can shut it down.
func (c *Collector) Serve(addr string, logger log.Logger) *http.Server {
	r := mux.NewRouter()
	r.Handle("/metrics", c.Handler()).Methods(http.MethodGet)
	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}).Methods(http.MethodGet)

	srv := &http.Server{Addr: addr, Handler: r}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			_ = logger.Log("during", "metrics.Serve", "err", err)
		}
	}()
	_ = logger.Log("metrics", addr)
	return srv
}
