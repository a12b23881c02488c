package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics agrupa los contadores de la app. Todos los métodos aceptan receptor nil.
type Metrics struct {
	Transitions         *prometheus.CounterVec
	IdentityResolutions *prometheus.CounterVec
	UsersRegistered     prometheus.Counter
}

// New registra las métricas en reg. Con reg nil se usa el registry global.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)

	return &Metrics{
		Transitions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "pet_adoption_transitions_total",
			Help: "Adoption lifecycle transitions by name and outcome reason",
		}, []string{"transition", "outcome"}),
		IdentityResolutions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "pet_adoption_identity_resolutions_total",
			Help: "Credential resolutions by outcome reason",
		}, []string{"outcome"}),
		UsersRegistered: f.NewCounter(prometheus.CounterOpts{
			Name: "pet_adoption_users_registered_total",
			Help: "Total number of users registered",
		}),
	}
}

func (m *Metrics) ObserveTransition(transition, outcome string) {
	if m == nil {
		return
	}
	m.Transitions.WithLabelValues(transition, outcome).Inc()
}

func (m *Metrics) ObserveIdentityResolution(outcome string) {
	if m == nil {
		return
	}
	m.IdentityResolutions.WithLabelValues(outcome).Inc()
}

func (m *Metrics) IncrementUsersRegistered() {
	if m == nil {
		return
	}
	m.UsersRegistered.Inc()
}
