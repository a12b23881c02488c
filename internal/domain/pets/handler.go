package pets

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"pet-adoption/internal/middleware"
	"pet-adoption/internal/platform/fault"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/pets", func(pr chi.Router) {
		pr.Get("/", listPetsHandler(svc))
		pr.Post("/", createPetHandler(svc))

		// del usuario autenticado
		pr.Get("/mine", listMyPetsHandler(svc))
		pr.Get("/adoptions", listMyAdoptionsHandler(svc))

		pr.Get("/{petID}", getPetHandler(svc))
		pr.Patch("/{petID}", updatePetHandler(svc))
		pr.Delete("/{petID}", removePetHandler(svc))

		// ciclo de adopción
		pr.Patch("/{petID}/schedule", scheduleVisitHandler(svc))
		pr.Patch("/{petID}/remove-adopter", removeAdopterHandler(svc))
		pr.Patch("/{petID}/conclude", concludeAdoptionHandler(svc))
	})
}

type petRequest struct {
	Name   string   `json:"name"`
	Age    int      `json:"age"`
	Weight float64  `json:"weight"`
	Color  string   `json:"color"`
	Images []string `json:"images"`
}

type contactResponse struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Image  string `json:"image,omitempty"`
	Phone  string `json:"phone,omitempty"`
}

type petResponse struct {
	ID        string           `json:"id"`
	Owner     contactResponse  `json:"owner"`
	Name      string           `json:"name"`
	Age       int              `json:"age"`
	Weight    float64          `json:"weight"`
	Color     string           `json:"color"`
	Images    []string         `json:"images"`
	Available bool             `json:"available"`
	State     State            `json:"state"`
	Adopter   *contactResponse `json:"adopter,omitempty"`
	Version   int64            `json:"version"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

type transitionResponse struct {
	Message string      `json:"message"`
	Pet     petResponse `json:"pet"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// listPetsHandler godoc
// @Summary  List every pet, newest first
// @Tags     pets
// @Produce  json
// @Success  200 {array} petResponse
// @Router   /pets [get]
func listPetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListAll(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toPetResponses(items))
	}
}

// createPetHandler godoc
// @Summary  List a pet for adoption
// @Tags     pets
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    body body petRequest true "pet"
// @Success  201 {object} petResponse
// @Failure  401 {object} errorResponse
// @Failure  422 {object} errorResponse
// @Router   /pets [post]
func createPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, err := middleware.RequireIdentity(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}

		var req petRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, ErrInvalidInput.WithMsg("invalid json"))
			return
		}

		p, err := svc.Create(r.Context(), caller, CreateInput{
			Name:   req.Name,
			Age:    req.Age,
			Weight: req.Weight,
			Color:  req.Color,
			Images: req.Images,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toPetResponse(p))
	}
}

func listMyPetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, err := middleware.RequireIdentity(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		items, err := svc.ListByOwner(r.Context(), caller.ID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toPetResponses(items))
	}
}

func listMyAdoptionsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, err := middleware.RequireIdentity(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		items, err := svc.ListByAdopter(r.Context(), caller.ID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toPetResponses(items))
	}
}

func getPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.GetByID(r.Context(), chi.URLParam(r, "petID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toPetResponse(p))
	}
}

func updatePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, err := middleware.RequireIdentity(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}

		var req petRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, ErrInvalidInput.WithMsg("invalid json"))
			return
		}

		p, err := svc.UpdateListing(r.Context(), caller, chi.URLParam(r, "petID"), UpdateListingInput{
			Name:   req.Name,
			Age:    req.Age,
			Weight: req.Weight,
			Color:  req.Color,
			Images: req.Images,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toPetResponse(p))
	}
}

func removePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, err := middleware.RequireIdentity(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		if err := svc.Remove(r.Context(), caller, chi.URLParam(r, "petID")); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "pet removed"})
	}
}

// scheduleVisitHandler godoc
// @Summary  Schedule a visit (take the adopter slot)
// @Tags     adoption
// @Produce  json
// @Security BearerAuth
// @Param    petID path string true "pet id"
// @Success  200 {object} transitionResponse
// @Failure  403 {object} errorResponse
// @Failure  404 {object} errorResponse
// @Failure  409 {object} errorResponse
// @Router   /pets/{petID}/schedule [patch]
func scheduleVisitHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, err := middleware.RequireIdentity(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		p, err := svc.ScheduleVisit(r.Context(), caller, chi.URLParam(r, "petID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, transitionResponse{
			Message: fmt.Sprintf("visit scheduled, contact %s at %s", p.Owner.Name, p.Owner.Phone),
			Pet:     toPetResponse(p),
		})
	}
}

// removeAdopterHandler godoc
// @Summary  Cancel a scheduled visit (owner or adopter)
// @Tags     adoption
// @Produce  json
// @Security BearerAuth
// @Param    petID path string true "pet id"
// @Success  200 {object} transitionResponse
// @Failure  403 {object} errorResponse
// @Failure  409 {object} errorResponse
// @Router   /pets/{petID}/remove-adopter [patch]
func removeAdopterHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, err := middleware.RequireIdentity(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		p, err := svc.RemoveAdopter(r.Context(), caller, chi.URLParam(r, "petID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, transitionResponse{Message: "adopter removed", Pet: toPetResponse(p)})
	}
}

// concludeAdoptionHandler godoc
// @Summary  Conclude the adoption (owner only, terminal)
// @Tags     adoption
// @Produce  json
// @Security BearerAuth
// @Param    petID path string true "pet id"
// @Success  200 {object} transitionResponse
// @Failure  403 {object} errorResponse
// @Failure  409 {object} errorResponse
// @Router   /pets/{petID}/conclude [patch]
func concludeAdoptionHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, err := middleware.RequireIdentity(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		p, err := svc.ConcludeAdoption(r.Context(), caller, chi.URLParam(r, "petID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, transitionResponse{Message: "congratulations, your pet was adopted", Pet: toPetResponse(p)})
	}
}

func toContactResponse(c Contact) contactResponse {
	return contactResponse{UserID: c.UserID, Name: c.Name, Image: c.Image, Phone: c.Phone}
}

func toPetResponse(p Pet) petResponse {
	out := petResponse{
		ID:        p.ID,
		Owner:     toContactResponse(p.Owner),
		Name:      p.Name,
		Age:       p.Age,
		Weight:    p.Weight,
		Color:     p.Color,
		Images:    p.Images,
		Available: p.Available,
		State:     p.State(),
		Version:   p.Version,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	if out.Images == nil {
		out.Images = []string{}
	}
	if c, ok := p.Adopter.Get(); ok {
		a := toContactResponse(c)
		out.Adopter = &a
	}
	return out
}

func toPetResponses(items []Pet) []petResponse {
	out := make([]petResponse, 0, len(items))
	for _, p := range items {
		out = append(out, toPetResponse(p))
	}
	return out
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, fault.HTTPStatus(err), errorResponse{
		Error:   fault.ReasonOf(err),
		Message: fault.Message(err),
	})
}

// writeJSON se repite en users; todavía no vale la pena un paquete compartido.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
