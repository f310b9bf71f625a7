package activities

import (
	"errors"
	"net/http"
	"time"

	"guidedog-records/internal/middleware"
	"guidedog-records/internal/platform/httpx"
	"guidedog-records/internal/platform/validation"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/activities", func(ar chi.Router) {
		ar.Post("/", saveActivityHandler(svc))
		ar.Get("/", listActivitiesHandler(svc))
		ar.Get("/{activityID}", getActivityHandler(svc))
		ar.Put("/{activityID}", saveActivityHandler(svc))
		ar.Delete("/{activityID}", deleteActivityHandler(svc))
	})
}

type saveActivityRequest struct {
	ID      string `json:"id"`
	DogID   string `json:"dog_id"`
	DogName string `json:"dog_name"`
	Date    string `json:"date" validate:"required,datetime=2006-01-02"`
	Title   string `json:"title" validate:"required"`
	Content string `json:"content"`
}

type activityResponse struct {
	ID         string    `json:"id"`
	DogID      string    `json:"dog_id,omitempty"`
	DogName    string    `json:"dog_name"`
	AuthorID   string    `json:"author_id"`
	AuthorName string    `json:"author_name"`
	Date       string    `json:"date"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// saveActivityHandler godoc
// @Summary Crear o editar entrada del diario
// @Description Las altas notifican por push a los administradores suscriptos.
// @Tags activities
// @Accept json
// @Produce json
// @Param payload body saveActivityRequest true "Entrada; date en formato YYYY-MM-DD"
// @Success 201 {object} activityResponse
// @Failure 400 {string} string "validación"
// @Router /activities [post]
func saveActivityHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		var req saveActivityRequest
		if err := httpx.DecodeJSON(w, r, &req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if err := validation.Struct(req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		id := req.ID
		status := http.StatusCreated
		if pathID := chi.URLParam(r, "activityID"); pathID != "" {
			id = pathID
			status = http.StatusOK
		}

		a, err := svc.Save(r.Context(), SaveInput{
			ID:         id,
			DogID:      req.DogID,
			DogName:    req.DogName,
			AuthorID:   claims.UserID,
			AuthorName: claims.Name,
			Date:       req.Date,
			Title:      req.Title,
			Content:    req.Content,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		httpx.WriteJSON(w, status, toActivityResponse(a))
	}
}

func listActivitiesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		year, okYear := httpx.QueryInt(r, "year", 0)
		month, okMonth := httpx.QueryInt(r, "month", 0)
		if !okYear || !okMonth {
			http.Error(w, "year/month must be integers", http.StatusBadRequest)
			return
		}

		items, err := svc.List(r.Context(), ListFilter{
			DogID:    r.URL.Query().Get("dog_id"),
			AuthorID: r.URL.Query().Get("author_id"),
			Year:     year,
			Month:    month,
		})
		if err != nil {
			writeError(w, err)
			return
		}

		out := make([]activityResponse, 0, len(items))
		for _, a := range items {
			out = append(out, toActivityResponse(a))
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

func getActivityHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := svc.GetByID(r.Context(), chi.URLParam(r, "activityID"))
		if err != nil {
			writeError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toActivityResponse(a))
	}
}

func deleteActivityHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "activityID")); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "activity not found", http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toActivityResponse(a Activity) activityResponse {
	return activityResponse{
		ID:         a.ID,
		DogID:      a.DogID,
		DogName:    a.DogName,
		AuthorID:   a.AuthorID,
		AuthorName: a.AuthorName,
		Date:       a.Date,
		Title:      a.Title,
		Content:    a.Content,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
}
