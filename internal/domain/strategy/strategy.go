package strategy

import (
	"math"
	"sort"
	"time"

	"github.com/alejandrodnm/botarena/internal/domain"
)

// Strategy define el contrato de una variante de trading. Propose es una
// función pura: evalúa el universo y devuelve propuestas ordenadas por edge.
// Los caps de posiciones y el dedup se aplican aguas abajo, nunca aquí.
type Strategy interface {
	// Tag es el identificador de la variante en los perfiles de agente.
	Tag() string

	// RequiredVenues lista los venues cuyos datos deben estar disponibles
	// para que la variante pueda operar este ciclo. Vacío = sin requisito.
	RequiredVenues() []domain.Venue

	// Propose evalúa (perfil, universo, estado) y devuelve propuestas
	// advisory. Devuelve error solo ante un fallo interno de la variante;
	// el engine lo aísla al agente afectado.
	Propose(profile domain.Profile, u domain.Universe, state *domain.State, now time.Time) ([]domain.Proposal, error)
}

// ReferenceSource resuelve un título de mercado a una estimación de
// probabilidad de referencia. La primera coincidencia gana.
type ReferenceSource interface {
	Lookup(title string) (domain.Estimate, bool)
}

// Registry mapea tags de estrategia a sus implementaciones. El set de
// producción es cerrado; Register existe para inyectar variantes en tests.
type Registry struct {
	byTag map[string]Strategy
}

// NewRegistry construye el registry con las seis variantes de producción.
func NewRegistry(refs ReferenceSource) *Registry {
	r := &Registry{byTag: make(map[string]Strategy)}
	for _, s := range []Strategy{
		NewValueContrarian(refs),
		NewCrossPlatformArb(),
		NewMomentumNarrative(refs),
		NewStatisticalValue(refs),
		NewHighConviction(refs),
		NewTailRisk(refs),
	} {
		r.Register(s)
	}
	return r
}

// Register añade o reemplaza una variante.
func (r *Registry) Register(s Strategy) {
	r.byTag[s.Tag()] = s
}

// Get devuelve la variante registrada bajo el tag.
func (r *Registry) Get(tag string) (Strategy, bool) {
	s, ok := r.byTag[tag]
	return s, ok
}

// Tags devuelve los tags registrados, ordenados.
func (r *Registry) Tags() []string {
	tags := make([]string, 0, len(r.byTag))
	for tag := range r.byTag {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// rankAndTruncate ordena por edge descendente y corta a max propuestas.
func rankAndTruncate(ps []domain.Proposal, max int) []domain.Proposal {
	sort.SliceStable(ps, func(i, j int) bool {
		return ps[i].EdgePP > ps[j].EdgePP
	})
	if max >= 0 && len(ps) > max {
		ps = ps[:max]
	}
	return ps
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
