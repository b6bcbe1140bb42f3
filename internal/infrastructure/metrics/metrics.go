package metrics

import (
	"errors"
	"net/http"

	"pricebot/internal/application"
	"pricebot/internal/domain"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ application.CycleObserver = (*Recorder)(nil)

// Recorder turns cycle reports into Prometheus series on its own registry.
type Recorder struct {
	registry *prometheus.Registry

	Cycles     *prometheus.CounterVec
	Failures   *prometheus.CounterVec
	MessageAge prometheus.Gauge
	LastCycle  prometheus.Gauge
}

var failureKinds = []struct {
	kind string
	err  error
}{
	{"fetch", domain.ErrFetch},
	{"send", domain.ErrSend},
	{"edit", domain.ErrEdit},
	{"delete", domain.ErrDelete},
}

func New() *Recorder {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	f := promauto.With(reg)

	return &Recorder{
		registry: reg,
		Cycles: f.NewCounterVec(prometheus.CounterOpts{
			Name: "pricebot_cycles_total",
			Help: "Poll cycles by outcome",
		}, []string{"outcome"}),
		Failures: f.NewCounterVec(prometheus.CounterOpts{
			Name: "pricebot_failures_total",
			Help: "Failed external calls by kind",
		}, []string{"kind"}),
		MessageAge: f.NewGauge(prometheus.GaugeOpts{
			Name: "pricebot_live_message_age_seconds",
			Help: "Age of the live message at the end of the last cycle, 0 when there is none",
		}),
		LastCycle: f.NewGauge(prometheus.GaugeOpts{
			Name: "pricebot_last_cycle_timestamp_seconds",
			Help: "Unix time the last cycle finished",
		}),
	}
}

func (r *Recorder) ObserveCycle(rep application.CycleReport) {
	r.Cycles.WithLabelValues(string(rep.Outcome)).Inc()
	for _, fk := range failureKinds {
		if errors.Is(rep.Err, fk.err) {
			r.Failures.WithLabelValues(fk.kind).Inc()
		}
	}
	if rep.State.Live != nil {
		r.MessageAge.Set(rep.State.Live.Age(rep.FinishedAt).Seconds())
	} else {
		r.MessageAge.Set(0)
	}
	r.LastCycle.Set(float64(rep.FinishedAt.Unix()))
}

func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
