package pets

import (
	"context"
	"errors"
	"strings"
	"time"

	"pet-adoption/internal/domain/identity"
	"pet-adoption/internal/platform/fault"
	"pet-adoption/internal/platform/logger"
	"pet-adoption/internal/platform/metrics"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

type Options struct {
	// RequireScheduledVisit: ConcludeAdoption exige estado VisitScheduled.
	RequireScheduledVisit bool

	Locker  Locker // puede ser nil
	Metrics *metrics.Metrics
	Logger  logger.Logger
}

type Service struct {
	repo         Repository
	now          func() time.Time
	requireVisit bool
	locker       Locker
	metrics      *metrics.Metrics
	log          logger.Logger
	tracer       trace.Tracer
}

func NewService(repo Repository, opts Options) *Service {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		repo:         repo,
		now:          time.Now,
		requireVisit: opts.RequireScheduledVisit,
		locker:       opts.Locker,
		metrics:      opts.Metrics,
		log:          log.With(map[string]any{"component": "pets"}),
		tracer:       otel.Tracer("pet-adoption/pets"),
	}
}

type CreateInput struct {
	Name   string
	Age    int
	Weight float64
	Color  string
	Images []string
}

// Create publica una mascota en estado Listed.
func (s *Service) Create(ctx context.Context, owner identity.Identity, in CreateInput) (Pet, error) {
	if strings.TrimSpace(owner.ID) == "" {
		return Pet{}, identity.ErrMissingCredential
	}
	if err := validateListing(in.Name, in.Age, in.Weight, in.Color); err != nil {
		return Pet{}, err
	}
	images := cleanImages(in.Images)
	if len(images) == 0 {
		return Pet{}, ErrInvalidInput.WithMsg("at least one image is required")
	}

	now := s.now()
	p := Pet{
		ID:        uuid.NewString(),
		Owner:     ContactOf(owner),
		Name:      strings.TrimSpace(in.Name),
		Age:       in.Age,
		Weight:    in.Weight,
		Color:     strings.TrimSpace(in.Color),
		Images:    images,
		Available: true,
		Adopter:   NoAdopter(),
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Pet{}, fault.Storage(err)
	}
	s.log.Info("pet listed", map[string]any{"pet_id": p.ID, "owner_id": p.Owner.UserID})
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Pet{}, ErrPetNotFound
	}
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrRecordNotFound) {
			return Pet{}, ErrPetNotFound
		}
		return Pet{}, fault.Storage(err)
	}
	return p, nil
}

// ListAll devuelve todas las mascotas, más nuevas primero.
func (s *Service) ListAll(ctx context.Context) ([]Pet, error) {
	items, err := s.repo.List(ctx)
	return items, fault.Storage(err)
}

func (s *Service) ListByOwner(ctx context.Context, ownerUserID string) ([]Pet, error) {
	items, err := s.repo.ListByOwner(ctx, strings.TrimSpace(ownerUserID))
	return items, fault.Storage(err)
}

// ListByAdopter son las "mis adopciones" del usuario (visitas agendadas o concluidas).
func (s *Service) ListByAdopter(ctx context.Context, adopterUserID string) ([]Pet, error) {
	items, err := s.repo.ListByAdopter(ctx, strings.TrimSpace(adopterUserID))
	return items, fault.Storage(err)
}

type UpdateListingInput struct {
	Name   string
	Age    int
	Weight float64
	Color  string
	// nil/vacío = mantener las imágenes actuales.
	Images []string
}

// UpdateListing edita los datos publicados. Solo owner; no toca adopter ni available.
func (s *Service) UpdateListing(ctx context.Context, caller identity.Identity, petID string, in UpdateListingInput) (Pet, error) {
	return s.mutate(ctx, petID, func(p *Pet) error {
		if !p.IsOwnedBy(caller.ID) {
			return ErrNotOwner
		}
		if err := validateListing(in.Name, in.Age, in.Weight, in.Color); err != nil {
			return err
		}
		p.Name = strings.TrimSpace(in.Name)
		p.Age = in.Age
		p.Weight = in.Weight
		p.Color = strings.TrimSpace(in.Color)
		if images := cleanImages(in.Images); len(images) > 0 {
			p.Images = images
		}
		return nil
	})
}

// Remove borra la mascota. Acción administrativa del owner, fuera del ciclo de adopción.
func (s *Service) Remove(ctx context.Context, caller identity.Identity, petID string) error {
	p, err := s.GetByID(ctx, petID)
	if err != nil {
		return err
	}
	if !p.IsOwnedBy(caller.ID) {
		return ErrNotOwner
	}
	if err := s.repo.Delete(ctx, p.ID); err != nil {
		if errors.Is(err, ErrRecordNotFound) {
			return ErrPetNotFound
		}
		return fault.Storage(err)
	}
	s.log.Info("pet removed", map[string]any{"pet_id": p.ID, "owner_id": caller.ID})
	return nil
}

// PropagateContact copia los datos de perfil editados a todas las mascotas
// donde el usuario es owner o adopter.
func (s *Service) PropagateContact(ctx context.Context, id identity.Identity) (int, error) {
	if strings.TrimSpace(id.ID) == "" {
		return 0, ErrInvalidInput.WithMsg("user id required")
	}
	n, err := s.repo.UpdateContact(ctx, ContactOf(id), s.now())
	if err != nil {
		return 0, fault.Storage(err)
	}
	s.log.Debug("contact propagated", map[string]any{"user_id": id.ID, "pets": n})
	return n, nil
}

// mutate: load -> apply -> save condicional. Si apply falla no se escribe nada.
func (s *Service) mutate(ctx context.Context, petID string, apply func(p *Pet) error) (Pet, error) {
	if s.locker != nil {
		unlock, err := s.locker.Lock(ctx, petID)
		if err != nil {
			if errors.Is(err, ErrLockBusy) {
				return Pet{}, ErrConcurrentUpdate
			}
			return Pet{}, fault.Storage(err)
		}
		defer unlock()
	}

	p, err := s.GetByID(ctx, petID)
	if err != nil {
		return Pet{}, err
	}
	if err := apply(&p); err != nil {
		return Pet{}, err
	}
	p.UpdatedAt = s.now()

	saved, err := s.repo.Save(ctx, p)
	if err != nil {
		switch {
		case errors.Is(err, ErrStaleVersion):
			return Pet{}, ErrConcurrentUpdate
		case errors.Is(err, ErrRecordNotFound):
			return Pet{}, ErrPetNotFound
		default:
			return Pet{}, fault.Storage(err)
		}
	}
	return saved, nil
}

func validateListing(name string, age int, weight float64, color string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return ErrInvalidInput.WithMsg("name is required")
	case age <= 0:
		return ErrInvalidInput.WithMsg("age is required")
	case weight <= 0:
		return ErrInvalidInput.WithMsg("weight is required")
	case strings.TrimSpace(color) == "":
		return ErrInvalidInput.WithMsg("color is required")
	}
	return nil
}

func cleanImages(in []string) []string {
	out := make([]string, 0, len(in))
	for _, img := range in {
		if img = strings.TrimSpace(img); img != "" {
			out = append(out, img)
		}
	}
	return out
}
