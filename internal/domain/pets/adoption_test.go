package pets_test

import (
	"context"
	"sync"
	"testing"

	"pet-adoption/internal/adapters/storage/memory"
	"pet-adoption/internal/domain/identity"
	"pet-adoption/internal/domain/pets"
	"pet-adoption/internal/platform/fault"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

var (
	owner    = identity.Identity{ID: "u1", Name: "Owner", Phone: "111"}
	adopter  = identity.Identity{ID: "u2", Name: "Adopter", Phone: "222"}
	stranger = identity.Identity{ID: "u3", Name: "Stranger", Phone: "333"}
)

type AdoptionSuite struct {
	suite.Suite
	ctx  context.Context
	repo pets.Repository
	svc  *pets.Service
	pet  pets.Pet
}

func TestAdoptionSuite(t *testing.T) {
	suite.Run(t, new(AdoptionSuite))
}

func (s *AdoptionSuite) SetupTest() {
	s.ctx = context.Background()
	s.repo = memory.NewPetRepo()
	s.svc = pets.NewService(s.repo, pets.Options{})
	s.pet = s.listPet(s.svc)
}

func (s *AdoptionSuite) listPet(svc *pets.Service) pets.Pet {
	p, err := svc.Create(s.ctx, owner, pets.CreateInput{
		Name: "Milo", Age: 2, Weight: 8, Color: "brown", Images: []string{"milo.jpg"},
	})
	s.Require().NoError(err)
	s.Require().Equal(pets.StateListed, p.State())
	return p
}

func (s *AdoptionSuite) reload() pets.Pet {
	p, err := s.svc.GetByID(s.ctx, s.pet.ID)
	s.Require().NoError(err)
	return p
}

func (s *AdoptionSuite) schedule(caller identity.Identity) pets.Pet {
	p, err := s.svc.ScheduleVisit(s.ctx, caller, s.pet.ID)
	s.Require().NoError(err)
	return p
}

func (s *AdoptionSuite) TestScheduleVisit_FromListed() {
	p := s.schedule(adopter)

	s.Equal(pets.StateVisitScheduled, p.State())
	s.True(p.Available)
	c, ok := p.Adopter.Get()
	s.Require().True(ok)
	s.Equal(pets.ContactOf(adopter), c)
	s.Equal(owner.ID, p.Owner.UserID)
	s.Greater(p.Version, s.pet.Version)
}

func (s *AdoptionSuite) TestScheduleVisit_OwnerAlwaysRejected() {
	_, err := s.svc.ScheduleVisit(s.ctx, owner, s.pet.ID)
	s.ErrorIs(err, pets.ErrOwnerCannotAdopt)
	s.Equal(pets.StateListed, s.reload().State())

	s.schedule(adopter)
	_, err = s.svc.ScheduleVisit(s.ctx, owner, s.pet.ID)
	s.ErrorIs(err, pets.ErrOwnerCannotAdopt)

	_, err = s.svc.ConcludeAdoption(s.ctx, owner, s.pet.ID)
	s.Require().NoError(err)
	_, err = s.svc.ScheduleVisit(s.ctx, owner, s.pet.ID)
	s.ErrorIs(err, pets.ErrOwnerCannotAdopt)
}

func (s *AdoptionSuite) TestScheduleVisit_SameAdopterTwice() {
	before := s.schedule(adopter)

	_, err := s.svc.ScheduleVisit(s.ctx, adopter, s.pet.ID)
	s.ErrorIs(err, pets.ErrAlreadyScheduled)
	s.Equal(fault.KindConflict, fault.KindOf(err))
	s.Equal(before, s.reload())
}

func (s *AdoptionSuite) TestScheduleVisit_SlotHeldByAnother() {
	before := s.schedule(adopter)

	_, err := s.svc.ScheduleVisit(s.ctx, stranger, s.pet.ID)
	s.ErrorIs(err, pets.ErrAdopterSlotTaken)
	s.Equal(fault.KindConflict, fault.KindOf(err))
	s.Equal(before, s.reload())
}

func (s *AdoptionSuite) TestRemoveAdopter_ByAdopterOrOwner() {
	for _, caller := range []identity.Identity{adopter, owner} {
		s.schedule(adopter)

		p, err := s.svc.RemoveAdopter(s.ctx, caller, s.pet.ID)
		s.Require().NoError(err, caller.ID)
		s.Equal(pets.StateListed, p.State())
		s.False(p.Adopter.Present())
		s.True(p.Available)
	}
}

func (s *AdoptionSuite) TestRemoveAdopter_ThirdPartyRejected() {
	before := s.schedule(adopter)

	_, err := s.svc.RemoveAdopter(s.ctx, stranger, s.pet.ID)
	s.ErrorIs(err, pets.ErrNotAuthorizedForRemoval)
	s.Equal(fault.KindAuthorization, fault.KindOf(err))
	s.Equal(before, s.reload())
}

func (s *AdoptionSuite) TestRemoveAdopter_NoAdopter() {
	_, err := s.svc.RemoveAdopter(s.ctx, owner, s.pet.ID)
	s.ErrorIs(err, pets.ErrNoAdopter)

	_, err = s.svc.RemoveAdopter(s.ctx, stranger, s.pet.ID)
	s.ErrorIs(err, pets.ErrNotAuthorizedForRemoval)
}

func (s *AdoptionSuite) TestConcludeAdoption_OwnerOnly() {
	s.schedule(adopter)

	for _, caller := range []identity.Identity{adopter, stranger} {
		_, err := s.svc.ConcludeAdoption(s.ctx, caller, s.pet.ID)
		s.ErrorIs(err, pets.ErrNotOwner, caller.ID)
	}

	p, err := s.svc.ConcludeAdoption(s.ctx, owner, s.pet.ID)
	s.Require().NoError(err)
	s.Equal(pets.StateAdopted, p.State())
	s.False(p.Available)
	s.True(p.Adopter.Is(adopter.ID))
}

func (s *AdoptionSuite) TestConcludeAdoption_FromListedAllowedByDefault() {
	p, err := s.svc.ConcludeAdoption(s.ctx, owner, s.pet.ID)
	s.Require().NoError(err)
	s.Equal(pets.StateAdopted, p.State())
	s.False(p.Adopter.Present())
}

func (s *AdoptionSuite) TestConcludeAdoption_RequireScheduledVisit() {
	svc := pets.NewService(s.repo, pets.Options{RequireScheduledVisit: true})
	p := s.listPet(svc)

	_, err := svc.ConcludeAdoption(s.ctx, owner, p.ID)
	s.ErrorIs(err, pets.ErrInvalidStateTransition)

	_, err = svc.ScheduleVisit(s.ctx, adopter, p.ID)
	s.Require().NoError(err)
	done, err := svc.ConcludeAdoption(s.ctx, owner, p.ID)
	s.Require().NoError(err)
	s.Equal(pets.StateAdopted, done.State())
}

func (s *AdoptionSuite) TestAdopted_IsTerminal() {
	s.schedule(adopter)
	adopted, err := s.svc.ConcludeAdoption(s.ctx, owner, s.pet.ID)
	s.Require().NoError(err)

	_, err = s.svc.ScheduleVisit(s.ctx, stranger, s.pet.ID)
	s.ErrorIs(err, pets.ErrInvalidStateTransition)
	_, err = s.svc.ScheduleVisit(s.ctx, adopter, s.pet.ID)
	s.ErrorIs(err, pets.ErrInvalidStateTransition)
	_, err = s.svc.RemoveAdopter(s.ctx, adopter, s.pet.ID)
	s.ErrorIs(err, pets.ErrInvalidStateTransition)
	_, err = s.svc.RemoveAdopter(s.ctx, owner, s.pet.ID)
	s.ErrorIs(err, pets.ErrInvalidStateTransition)
	_, err = s.svc.ConcludeAdoption(s.ctx, owner, s.pet.ID)
	s.ErrorIs(err, pets.ErrInvalidStateTransition)

	// un tercero sigue sin estar autorizado: el rol se chequea antes que el estado
	_, err = s.svc.RemoveAdopter(s.ctx, stranger, s.pet.ID)
	s.ErrorIs(err, pets.ErrNotAuthorizedForRemoval)

	s.Equal(adopted, s.reload())
}

func (s *AdoptionSuite) TestTransitions_PetNotFound() {
	_, err := s.svc.ScheduleVisit(s.ctx, adopter, "missing")
	s.ErrorIs(err, pets.ErrPetNotFound)
	_, err = s.svc.RemoveAdopter(s.ctx, owner, "missing")
	s.ErrorIs(err, pets.ErrPetNotFound)
	_, err = s.svc.ConcludeAdoption(s.ctx, owner, "missing")
	s.ErrorIs(err, pets.ErrPetNotFound)
	s.Equal(fault.KindNotFound, fault.KindOf(err))
}

func (s *AdoptionSuite) TestTransitions_MissingCaller() {
	_, err := s.svc.ScheduleVisit(s.ctx, identity.Identity{}, s.pet.ID)
	s.ErrorIs(err, identity.ErrMissingCredential)
	s.Equal(s.pet, s.reload())
}

func (s *AdoptionSuite) TestEndToEnd_AdoptThenAdopterCannotRemove() {
	p := s.schedule(adopter)
	s.Equal(pets.StateVisitScheduled, p.State())

	p, err := s.svc.ConcludeAdoption(s.ctx, owner, s.pet.ID)
	s.Require().NoError(err)
	s.False(p.Available)

	_, err = s.svc.RemoveAdopter(s.ctx, adopter, s.pet.ID)
	s.ErrorIs(err, pets.ErrInvalidStateTransition)
}

func TestScheduleVisit_ConcurrentCallersExactlyOneWins(t *testing.T) {
	ctx := context.Background()
	svc := pets.NewService(memory.NewPetRepo(), pets.Options{})

	for i := 0; i < 50; i++ {
		p, err := svc.Create(ctx, owner, pets.CreateInput{
			Name: "Race", Age: 1, Weight: 1, Color: "white", Images: []string{"r.jpg"},
		})
		require.NoError(t, err)

		callers := []identity.Identity{adopter, stranger}
		errs := make([]error, len(callers))
		start := make(chan struct{})
		var wg sync.WaitGroup
		for j, c := range callers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				<-start
				_, errs[j] = svc.ScheduleVisit(ctx, c, p.ID)
			}()
		}
		close(start)
		wg.Wait()

		winners := 0
		var winner identity.Identity
		for j, err := range errs {
			if err == nil {
				winners++
				winner = callers[j]
				continue
			}
			assert.Equal(t, fault.KindConflict, fault.KindOf(err), "loser must get a conflict: %v", err)
		}
		require.Equal(t, 1, winners)

		got, err := svc.GetByID(ctx, p.ID)
		require.NoError(t, err)
		assert.True(t, got.Adopter.Is(winner.ID))
		assert.Equal(t, pets.StateVisitScheduled, got.State())
	}
}
