package identity

import (
	"context"
	"errors"
	"testing"

	"pet-adoption/internal/platform/fault"
	"pet-adoption/internal/platform/metrics"
	"pet-adoption/internal/ports/auth"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
)

type fakeVerifier struct {
	tokens map[string]string
	err    error
}

func (f fakeVerifier) Verify(_ context.Context, token string) (auth.Claims, error) {
	if f.err != nil {
		return auth.Claims{}, f.err
	}
	uid, ok := f.tokens[token]
	if !ok {
		return auth.Claims{}, auth.ErrInvalidToken
	}
	return auth.Claims{UserID: uid}, nil
}

type fakeProfiles struct {
	byID map[string]Identity
	err  error
}

func (f fakeProfiles) FindByID(_ context.Context, userID string) (Identity, error) {
	if f.err != nil {
		return Identity{}, f.err
	}
	p, ok := f.byID[userID]
	if !ok {
		return Identity{}, ErrProfileNotFound
	}
	return p, nil
}

type ResolverSuite struct {
	suite.Suite
	metrics  *metrics.Metrics
	resolver *Resolver
}

func TestResolverSuite(t *testing.T) {
	suite.Run(t, new(ResolverSuite))
}

func (s *ResolverSuite) SetupTest() {
	s.metrics = metrics.New(prometheus.NewRegistry())
	s.resolver = NewResolver(
		fakeVerifier{tokens: map[string]string{"tok-ana": "u-ana", "tok-ghost": "u-ghost"}},
		fakeProfiles{byID: map[string]Identity{"u-ana": {ID: "u-ana", Name: "Ana", Image: "ana.png", Phone: "555"}}},
		s.metrics,
	)
}

func (s *ResolverSuite) TestResolvesKnownUser() {
	id, err := s.resolver.Resolve(context.Background(), " tok-ana ")
	s.Require().NoError(err)
	s.Equal(Identity{ID: "u-ana", Name: "Ana", Image: "ana.png", Phone: "555"}, id)
	s.Equal(1.0, testutil.ToFloat64(s.metrics.IdentityResolutions.WithLabelValues("ok")))
}

func (s *ResolverSuite) TestMissingCredential() {
	_, err := s.resolver.Resolve(context.Background(), "")
	s.ErrorIs(err, ErrMissingCredential)
	s.Equal(fault.KindIdentity, fault.KindOf(err))
}

func (s *ResolverSuite) TestInvalidCredential() {
	s.Run("unverifiable token", func() {
		_, err := s.resolver.Resolve(context.Background(), "forged")
		s.ErrorIs(err, ErrInvalidCredential)
	})
	s.Run("verified user without profile", func() {
		_, err := s.resolver.Resolve(context.Background(), "tok-ghost")
		s.ErrorIs(err, ErrInvalidCredential)
	})
	s.Equal(2.0, testutil.ToFloat64(s.metrics.IdentityResolutions.WithLabelValues("invalid_credential")))
}

func (s *ResolverSuite) TestInfrastructureFailuresAreStorageErrors() {
	down := errors.New("upstream down")

	r := NewResolver(fakeVerifier{err: down}, fakeProfiles{}, nil)
	_, err := r.Resolve(context.Background(), "tok")
	s.ErrorIs(err, fault.ErrStorage)
	s.ErrorIs(err, down)

	r = NewResolver(fakeVerifier{tokens: map[string]string{"tok": "u"}}, fakeProfiles{err: down}, nil)
	_, err = r.Resolve(context.Background(), "tok")
	s.ErrorIs(err, fault.ErrStorage)
}
