// Package metrics exposes scheduler activity as Prometheus metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Recorder implements scheduler.Recorder on top of Prometheus collectors.
type Recorder struct {
	hits    *prometheus.CounterVec
	stops   *prometheus.CounterVec
	running prometheus.Gauge
}

// NewRecorder creates the collectors and registers them with reg.
func NewRecorder(reg prometheus.Registerer) (*Recorder, error) {
	r := &Recorder{
		hits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hitpulse",
			Name:      "hits_total",
			Help:      "Simulated visits attempted, by result.",
		}, []string{"result"}),
		stops: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hitpulse",
			Name:      "campaign_stops_total",
			Help:      "Campaigns that stopped running, by reason.",
		}, []string{"reason"}),
		running: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "hitpulse",
			Name:      "campaigns_running",
			Help:      "Campaigns with a live scheduling task.",
		}),
	}
	for _, c := range []prometheus.Collector{r.hits, r.stops, r.running} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *Recorder) HitSucceeded() { r.hits.WithLabelValues("success").Inc() }

func (r *Recorder) HitFailed() { r.hits.WithLabelValues("failure").Inc() }

func (r *Recorder) CampaignStopped(reason string) { r.stops.WithLabelValues(reason).Inc() }

func (r *Recorder) RunningCampaigns(n int) { r.running.Set(float64(n)) }
