package pets

import (
	"context"
	"strings"

	"pet-adoption/internal/domain/identity"
	"pet-adoption/internal/platform/fault"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	TransitionScheduleVisit    = "schedule_visit"
	TransitionRemoveAdopter    = "remove_adopter"
	TransitionConcludeAdoption = "conclude_adoption"
)

var errAlreadyAdopted = ErrInvalidStateTransition.WithMsg("pet has already been adopted")

// Orden de chequeos en todas las transiciones:
// pet existe -> rol del caller -> estado terminal -> reglas del estado actual.

// ScheduleVisit ocupa el slot de adoptante con el caller (Listed -> VisitScheduled).
func (s *Service) ScheduleVisit(ctx context.Context, caller identity.Identity, petID string) (Pet, error) {
	return s.transition(ctx, TransitionScheduleVisit, caller, petID, func(p *Pet) error {
		if p.IsOwnedBy(caller.ID) {
			return ErrOwnerCannotAdopt
		}
		if p.State() == StateAdopted {
			return errAlreadyAdopted
		}
		if cur, ok := p.Adopter.Get(); ok {
			if cur.UserID == caller.ID {
				return ErrAlreadyScheduled
			}
			return ErrAdopterSlotTaken
		}
		p.Adopter = AdopterOf(ContactOf(caller))
		return nil
	})
}

// RemoveAdopter libera el slot (VisitScheduled -> Listed). Lo puede hacer el owner o el adopter.
func (s *Service) RemoveAdopter(ctx context.Context, caller identity.Identity, petID string) (Pet, error) {
	return s.transition(ctx, TransitionRemoveAdopter, caller, petID, func(p *Pet) error {
		if !p.IsOwnedBy(caller.ID) && !p.Adopter.Is(caller.ID) {
			return ErrNotAuthorizedForRemoval
		}
		if p.State() == StateAdopted {
			return errAlreadyAdopted
		}
		if !p.Adopter.Present() {
			return ErrNoAdopter
		}
		p.Adopter = NoAdopter()
		return nil
	})
}

// ConcludeAdoption marca la mascota como adoptada (estado terminal). Solo owner.
// El adopter, si existe, se conserva como registro de quién adoptó.
func (s *Service) ConcludeAdoption(ctx context.Context, caller identity.Identity, petID string) (Pet, error) {
	return s.transition(ctx, TransitionConcludeAdoption, caller, petID, func(p *Pet) error {
		if !p.IsOwnedBy(caller.ID) {
			return ErrNotOwner
		}
		if p.State() == StateAdopted {
			return errAlreadyAdopted
		}
		if s.requireVisit && p.State() != StateVisitScheduled {
			return ErrInvalidStateTransition.WithMsg("a visit must be scheduled before concluding the adoption")
		}
		p.Available = false
		return nil
	})
}

func (s *Service) transition(ctx context.Context, name string, caller identity.Identity, petID string, apply func(p *Pet) error) (Pet, error) {
	ctx, span := s.tracer.Start(ctx, "pets."+name, trace.WithAttributes(
		attribute.String("pet.id", petID),
		attribute.String("caller.id", caller.ID),
	))
	defer span.End()

	var (
		p   Pet
		err error
	)
	if strings.TrimSpace(caller.ID) == "" {
		err = identity.ErrMissingCredential
	} else {
		p, err = s.mutate(ctx, petID, apply)
	}

	fields := map[string]any{"transition": name, "pet_id": petID, "caller_id": caller.ID}
	if err != nil {
		reason := fault.ReasonOf(err)
		s.metrics.ObserveTransition(name, reason)
		span.RecordError(err)
		span.SetStatus(codes.Error, reason)

		fields["reason"] = reason
		if fault.KindOf(err) == fault.KindStorage {
			fields["error"] = err.Error()
			s.log.Error("transition failed", fields)
		} else {
			s.log.Info("transition rejected", fields)
		}
		return Pet{}, err
	}

	s.metrics.ObserveTransition(name, "ok")
	span.SetAttributes(attribute.String("pet.state", string(p.State())))
	fields["state"] = string(p.State())
	s.log.Info("transition applied", fields)
	return p, nil
}
