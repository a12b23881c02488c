package users

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"pet-adoption/internal/domain/identity"
	"pet-adoption/internal/platform/fault"
	"pet-adoption/internal/platform/logger"
	"pet-adoption/internal/platform/metrics"
	"pet-adoption/internal/ports/auth"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidInput = fault.New(fault.KindInvalidInput, "invalid_input", "invalid input")
	ErrEmailTaken   = fault.New(fault.KindConflict, "email_taken", "email already registered")
	ErrInvalidLogin = fault.New(fault.KindIdentity, "invalid_login", "invalid email or password")
	ErrUserNotFound = fault.New(fault.KindNotFound, "user_not_found", "user not found")
)

const defaultBcryptCost = 12

// ContactPropagator lo implementa pets.Service (evita importar pets acá).
type ContactPropagator interface {
	PropagateContact(ctx context.Context, id identity.Identity) (int, error)
}

type Service struct {
	repo       Repository
	tokens     auth.TokenIssuer
	contacts   ContactPropagator
	metrics    *metrics.Metrics
	log        logger.Logger
	now        func() time.Time
	bcryptCost int
}

func NewService(repo Repository, tokens auth.TokenIssuer, contacts ContactPropagator, m *metrics.Metrics, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		repo:       repo,
		tokens:     tokens,
		contacts:   contacts,
		metrics:    m,
		log:        log.With(map[string]any{"component": "users"}),
		now:        time.Now,
		bcryptCost: defaultBcryptCost,
	}
}

type RegisterInput struct {
	Name            string
	Email           string
	Phone           string
	Password        string
	ConfirmPassword string
}

// Session es lo que recibe el cliente después de registrarse o loguearse.
type Session struct {
	UserID string
	Token  string
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (Session, error) {
	name, email, phone := strings.TrimSpace(in.Name), normalizeEmail(in.Email), strings.TrimSpace(in.Phone)
	if err := validateProfile(name, email, phone); err != nil {
		return Session{}, err
	}
	if in.Password == "" || in.ConfirmPassword == "" {
		return Session{}, ErrInvalidInput.WithMsg("password and confirmation are required")
	}
	if in.Password != in.ConfirmPassword {
		return Session{}, ErrInvalidInput.WithMsg("password and confirmation must match")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return Session{}, ErrInvalidInput.WithMsg("password cannot be used")
	}

	now := s.now()
	u := User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		Phone:        phone,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		if errors.Is(err, ErrDuplicateEmail) {
			return Session{}, ErrEmailTaken
		}
		return Session{}, fault.Storage(err)
	}

	s.metrics.IncrementUsersRegistered()
	s.log.Info("user registered", map[string]any{"user_id": u.ID})
	return s.session(ctx, u.ID)
}

func (s *Service) Login(ctx context.Context, email, password string) (Session, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return Session{}, ErrInvalidInput.WithMsg("email and password are required")
	}

	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrRecordNotFound) {
			return Session{}, ErrInvalidLogin
		}
		return Session{}, fault.Storage(err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return Session{}, ErrInvalidLogin
	}
	return s.session(ctx, u.ID)
}

func (s *Service) GetByID(ctx context.Context, id string) (User, error) {
	u, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, ErrRecordNotFound) {
			return User{}, ErrUserNotFound
		}
		return User{}, fault.Storage(err)
	}
	return u, nil
}

type EditProfileInput struct {
	Name  string
	Email string
	Phone string
	// nil = mantener.
	Image *string
	// vacíos = no cambiar password.
	Password        string
	ConfirmPassword string
}

// EditProfile actualiza el perfil del caller y propaga nombre/imagen/teléfono
// a las mascotas donde figura como owner o adopter.
func (s *Service) EditProfile(ctx context.Context, caller identity.Identity, in EditProfileInput) (User, error) {
	u, err := s.GetByID(ctx, caller.ID)
	if err != nil {
		return User{}, err
	}

	name, email, phone := strings.TrimSpace(in.Name), normalizeEmail(in.Email), strings.TrimSpace(in.Phone)
	if err := validateProfile(name, email, phone); err != nil {
		return User{}, err
	}
	if email != u.Email {
		other, err := s.repo.GetByEmail(ctx, email)
		switch {
		case err == nil && other.ID != u.ID:
			return User{}, ErrEmailTaken
		case err != nil && !errors.Is(err, ErrRecordNotFound):
			return User{}, fault.Storage(err)
		}
	}
	if in.Password != in.ConfirmPassword {
		return User{}, ErrInvalidInput.WithMsg("password and confirmation must match")
	}
	if in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
		if err != nil {
			return User{}, ErrInvalidInput.WithMsg("password cannot be used")
		}
		u.PasswordHash = string(hash)
	}

	u.Name, u.Email, u.Phone = name, email, phone
	if in.Image != nil {
		u.Image = strings.TrimSpace(*in.Image)
	}
	u.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, u); err != nil {
		switch {
		case errors.Is(err, ErrDuplicateEmail):
			return User{}, ErrEmailTaken
		case errors.Is(err, ErrRecordNotFound):
			return User{}, ErrUserNotFound
		default:
			return User{}, fault.Storage(err)
		}
	}

	if s.contacts == nil {
		return u, nil
	}
	// el perfil ya quedó guardado: una falla acá solo deja snapshots viejos en las
	// mascotas, se loguea y la próxima edición del perfil los vuelve a copiar
	n, err := s.contacts.PropagateContact(ctx, u.Identity())
	if err != nil {
		s.log.Error("profile saved but contact propagation failed", map[string]any{
			"user_id": u.ID,
			"error":   err.Error(),
		})
		return u, nil
	}
	s.log.Info("profile updated", map[string]any{"user_id": u.ID, "pets_updated": n})
	return u, nil
}

func (s *Service) session(ctx context.Context, userID string) (Session, error) {
	tok, err := s.tokens.Issue(ctx, userID)
	if err != nil {
		return Session{}, fault.Storage(err)
	}
	return Session{UserID: userID, Token: tok}, nil
}

func validateProfile(name, email, phone string) error {
	if name == "" || email == "" || phone == "" {
		return ErrInvalidInput.WithMsg("name, email and phone are required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return ErrInvalidInput.WithMsg("email is not valid")
	}
	return nil
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
