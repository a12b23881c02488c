package users

import (
	"encoding/json"
	"net/http"
	"time"

	"pet-adoption/internal/middleware"
	"pet-adoption/internal/platform/fault"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes monta /users. authLimit se aplica a registro y login.
func RegisterRoutes(r chi.Router, svc *Service, authLimit func(http.Handler) http.Handler) {
	r.Route("/users", func(ur chi.Router) {
		ur.Group(func(lr chi.Router) {
			if authLimit != nil {
				lr.Use(authLimit)
			}
			lr.Post("/register", registerHandler(svc))
			lr.Post("/login", loginHandler(svc))
		})

		ur.Get("/me", checkUserHandler(svc))
		ur.Patch("/me", editUserHandler(svc))
		ur.Get("/{userID}", getUserHandler(svc))
	})
}

type registerRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmpassword"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type editUserRequest struct {
	Name            string  `json:"name"`
	Email           string  `json:"email"`
	Phone           string  `json:"phone"`
	Image           *string `json:"image"`
	Password        string  `json:"password"`
	ConfirmPassword string  `json:"confirmpassword"`
}

type sessionResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
	UserID  string `json:"user_id"`
}

type userResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Image     string    `json:"image,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// registerHandler godoc
// @Summary  Register a user and return a bearer token
// @Tags     users
// @Accept   json
// @Produce  json
// @Param    body body registerRequest true "user"
// @Success  201 {object} sessionResponse
// @Failure  409 {object} errorResponse
// @Failure  422 {object} errorResponse
// @Router   /users/register [post]
func registerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, ErrInvalidInput.WithMsg("invalid json"))
			return
		}

		sess, err := svc.Register(r.Context(), RegisterInput(req))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, sessionResponse{Message: "you are authenticated", Token: sess.Token, UserID: sess.UserID})
	}
}

// loginHandler godoc
// @Summary  Exchange email and password for a bearer token
// @Tags     users
// @Accept   json
// @Produce  json
// @Param    body body loginRequest true "credentials"
// @Success  200 {object} sessionResponse
// @Failure  401 {object} errorResponse
// @Router   /users/login [post]
func loginHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, ErrInvalidInput.WithMsg("invalid json"))
			return
		}

		sess, err := svc.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, sessionResponse{Message: "you are authenticated", Token: sess.Token, UserID: sess.UserID})
	}
}

func checkUserHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, err := middleware.RequireIdentity(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		u, err := svc.GetByID(r.Context(), caller.ID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toUserResponse(u))
	}
}

func getUserHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, err := svc.GetByID(r.Context(), chi.URLParam(r, "userID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toUserResponse(u))
	}
}

func editUserHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, err := middleware.RequireIdentity(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}

		var req editUserRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, ErrInvalidInput.WithMsg("invalid json"))
			return
		}

		u, err := svc.EditProfile(r.Context(), caller, EditProfileInput(req))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toUserResponse(u))
	}
}

func toUserResponse(u User) userResponse {
	return userResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Phone:     u.Phone,
		Image:     u.Image,
		CreatedAt: u.CreatedAt,
	}
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, fault.HTTPStatus(err), errorResponse{
		Error:   fault.ReasonOf(err),
		Message: fault.Message(err),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
