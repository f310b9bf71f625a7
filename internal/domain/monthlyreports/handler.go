package monthlyreports

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
	r.Route("/monthly-reports", func(mr chi.Router) {
		mr.Post("/", saveReportHandler(svc))
		mr.Get("/", listReportsHandler(svc))
		mr.Get("/{reportID}", getReportHandler(svc))
		mr.Put("/{reportID}", saveReportHandler(svc))
		mr.Delete("/{reportID}", deleteReportHandler(svc))
	})
}

type saveReportRequest struct {
	ID            string `json:"id"`
	DogID         string `json:"dog_id"`
	DogName       string `json:"dog_name"`
	Year          int    `json:"year" validate:"required,min=2000,max=2100"`
	Month         int    `json:"month" validate:"required,min=1,max=12"`
	Summary       string `json:"summary"`
	HealthNotes   string `json:"health_notes"`
	BehaviorNotes string `json:"behavior_notes"`
}

type reportResponse struct {
	ID            string    `json:"id"`
	DogID         string    `json:"dog_id,omitempty"`
	DogName       string    `json:"dog_name"`
	AuthorID      string    `json:"author_id"`
	AuthorName    string    `json:"author_name"`
	Year          int       `json:"year"`
	Month         int       `json:"month"`
	Summary       string    `json:"summary"`
	HealthNotes   string    `json:"health_notes"`
	BehaviorNotes string    `json:"behavior_notes"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func saveReportHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		var req saveReportRequest
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
		if pathID := chi.URLParam(r, "reportID"); pathID != "" {
			id = pathID
			status = http.StatusOK
		}

		rep, err := svc.Save(r.Context(), SaveInput{
			ID:            id,
			DogID:         req.DogID,
			DogName:       req.DogName,
			AuthorID:      claims.UserID,
			AuthorName:    claims.Name,
			Year:          req.Year,
			Month:         req.Month,
			Summary:       req.Summary,
			HealthNotes:   req.HealthNotes,
			BehaviorNotes: req.BehaviorNotes,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		httpx.WriteJSON(w, status, toReportResponse(rep))
	}
}

func listReportsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		year, okYear := httpx.QueryInt(r, "year", 0)
		month, okMonth := httpx.QueryInt(r, "month", 0)
		if !okYear || !okMonth {
			http.Error(w, "year/month must be integers", http.StatusBadRequest)
			return
		}

		items, err := svc.List(r.Context(), ListFilter{
			DogID: r.URL.Query().Get("dog_id"),
			Year:  year,
			Month: month,
		})
		if err != nil {
			writeError(w, err)
			return
		}

		out := make([]reportResponse, 0, len(items))
		for _, rep := range items {
			out = append(out, toReportResponse(rep))
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

func getReportHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rep, err := svc.GetByID(r.Context(), chi.URLParam(r, "reportID"))
		if err != nil {
			writeError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toReportResponse(rep))
	}
}

func deleteReportHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "reportID")); err != nil {
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
		http.Error(w, "monthly report not found", http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toReportResponse(r Report) reportResponse {
	return reportResponse{
		ID:            r.ID,
		DogID:         r.DogID,
		DogName:       r.DogName,
		AuthorID:      r.AuthorID,
		AuthorName:    r.AuthorName,
		Year:          r.Year,
		Month:         r.Month,
		Summary:       r.Summary,
		HealthNotes:   r.HealthNotes,
		BehaviorNotes: r.BehaviorNotes,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}
