package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the registry module.
type Metrics struct {
	GroupsRegistered     prometheus.Counter
	IndividualsCreated   prometheus.Counter
	ReferencesResolved   *prometheus.CounterVec
	RelationshipsLinked  prometheus.Counter
	RelationshipsSkipped prometheus.Counter
	RegistrationDuration prometheus.Histogram
}

// New registers the registry metrics on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		GroupsRegistered: factory.NewCounter(prometheus.CounterOpts{
			Name: "registry_groups_registered_total",
			Help: "Total number of groups registered",
		}),
		IndividualsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "registry_individuals_created_total",
			Help: "Total number of individuals created as group members",
		}),
		ReferencesResolved: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "registry_references_resolved_total",
			Help: "Reference lookups by kind and outcome (existing or created)",
		}, []string{"kind", "outcome"}),
		RelationshipsLinked: factory.NewCounter(prometheus.CounterOpts{
			Name: "registry_relationships_linked_total",
			Help: "Total number of relationship edges written",
		}),
		RelationshipsSkipped: factory.NewCounter(prometheus.CounterOpts{
			Name: "registry_relationships_skipped_total",
			Help: "Relationship entries skipped because the counterpart does not exist",
		}),
		RegistrationDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "registry_group_registration_duration_seconds",
			Help:    "Duration of composite group registrations",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),
	}
}

func (m *Metrics) IncrementGroupsRegistered() {
	m.GroupsRegistered.Inc()
}

func (m *Metrics) IncrementIndividualsCreated() {
	m.IndividualsCreated.Inc()
}

// IncrementReferenceResolved records one resolution; created selects the
// outcome label.
func (m *Metrics) IncrementReferenceResolved(kind string, created bool) {
	outcome := "existing"
	if created {
		outcome = "created"
	}
	m.ReferencesResolved.WithLabelValues(kind, outcome).Inc()
}

func (m *Metrics) IncrementRelationshipsLinked() {
	m.RelationshipsLinked.Inc()
}

func (m *Metrics) IncrementRelationshipsSkipped() {
	m.RelationshipsSkipped.Inc()
}

// ObserveRegistration records the duration of a registration.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveRegistration(start time.Time) {
	m.RegistrationDuration.Observe(time.Since(start).Seconds())
}
