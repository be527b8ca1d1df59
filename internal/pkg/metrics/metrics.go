package metrics

import "github.com/prometheus/client_golang/prometheus"

// BookingMetrics exposes counters/histograms for the booking flows.
type BookingMetrics struct {
	createdTotal   *prometheus.CounterVec
	cancelledTotal *prometheus.CounterVec
	slotsOffered   prometheus.Histogram
}

func NewBookingMetrics(reg prometheus.Registerer) *BookingMetrics {
	m := &BookingMetrics{
		createdTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "swarv",
			Subsystem: "booking",
			Name:      "created_total",
			Help:      "Total booking creation attempts by outcome",
		}, []string{"outcome"}),
		cancelledTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "swarv",
			Subsystem: "booking",
			Name:      "cancelled_total",
			Help:      "Total bookings moved to cancelled, by actor",
		}, []string{"actor"}),
		slotsOffered: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "swarv",
			Subsystem: "booking",
			Name:      "slots_offered",
			Help:      "Number of free slots returned per availability query",
			Buckets:   []float64{0, 1, 2, 4, 8, 12, 16, 18},
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.createdTotal, m.cancelledTotal, m.slotsOffered)
	return m
}

func (m *BookingMetrics) ObserveCreated(outcome string) {
	if m == nil {
		return
	}
	m.createdTotal.WithLabelValues(outcome).Inc()
}

func (m *BookingMetrics) ObserveCancelled(actor string) {
	if m == nil {
		return
	}
	m.cancelledTotal.WithLabelValues(actor).Inc()
}

func (m *BookingMetrics) ObserveSlotsOffered(n int) {
	if m == nil {
		return
	}
	m.slotsOffered.Observe(float64(n))
}

// CampaignMetrics counts outbound campaign emails.
type CampaignMetrics struct {
	emailsTotal *prometheus.CounterVec
}

func NewCampaignMetrics(reg prometheus.Registerer) *CampaignMetrics {
	m := &CampaignMetrics{
		emailsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "swarv",
			Subsystem: "campaign",
			Name:      "emails_total",
			Help:      "Total campaign emails by kind and status",
		}, []string{"kind", "status"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.emailsTotal)
	return m
}

func (m *CampaignMetrics) ObserveEmail(kind string, ok bool) {
	if m == nil {
		return
	}
	status := "sent"
	if !ok {
		status = "failed"
	}
	m.emailsTotal.WithLabelValues(kind, status).Inc()
}
