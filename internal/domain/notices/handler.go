package notices

import (
	"errors"
	"net/http"
	"time"

	"guidedog-records/internal/middleware"
	"guidedog-records/internal/platform/httpx"
	"guidedog-records/internal/platform/validation"
	"guidedog-records/internal/ports/capabilities"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, resolver capabilities.CapabilitiesResolver) {
	canWrite := middleware.RequireCapability(resolver, capabilities.NoticesWrite)

	r.Route("/notices", func(nr chi.Router) {
		nr.Get("/", listNoticesHandler(svc))
		nr.Get("/{noticeID}", getNoticeHandler(svc))

		nr.With(canWrite).Post("/", saveNoticeHandler(svc))
		nr.With(canWrite).Put("/{noticeID}", saveNoticeHandler(svc))
		nr.With(canWrite).Delete("/{noticeID}", deleteNoticeHandler(svc))
	})
}

type saveNoticeRequest struct {
	ID       string   `json:"id"`
	Title    string   `json:"title" validate:"required"`
	Content  string   `json:"content"`
	Audience []string `json:"audience"`
	Pinned   bool     `json:"pinned"`
}

type noticeResponse struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	AuthorID   string    `json:"author_id"`
	AuthorName string    `json:"author_name"`
	Audience   []string  `json:"audience"`
	Pinned     bool      `json:"pinned"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func saveNoticeHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		var req saveNoticeRequest
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
		if pathID := chi.URLParam(r, "noticeID"); pathID != "" {
			id = pathID
			status = http.StatusOK
		}

		n, err := svc.Save(r.Context(), SaveInput{
			ID:         id,
			Title:      req.Title,
			Content:    req.Content,
			AuthorID:   claims.UserID,
			AuthorName: claims.Name,
			Audience:   req.Audience,
			Pinned:     req.Pinned,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		httpx.WriteJSON(w, status, toNoticeResponse(n))
	}
}

// listNoticesHandler godoc
// @Summary Avisos visibles para el usuario
// @Description Filtra por el rol del usuario autenticado (admin ve todos). Fijados primero, después más nuevos.
// @Tags notices
// @Produce json
// @Success 200 {array} noticeResponse
// @Router /notices [get]
func listNoticesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		items, err := svc.ListFor(r.Context(), claims.Role)
		if err != nil {
			writeError(w, err)
			return
		}

		out := make([]noticeResponse, 0, len(items))
		for _, n := range items {
			out = append(out, toNoticeResponse(n))
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

func getNoticeHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		n, err := svc.GetByID(r.Context(), chi.URLParam(r, "noticeID"))
		if err != nil {
			writeError(w, err)
			return
		}
		if !n.VisibleTo(claims.Role) {
			// no revelar avisos de otra audiencia
			writeError(w, ErrNotFound)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toNoticeResponse(n))
	}
}

func deleteNoticeHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "noticeID")); err != nil {
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
		http.Error(w, "notice not found", http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toNoticeResponse(n Notice) noticeResponse {
	return noticeResponse{
		ID:         n.ID,
		Title:      n.Title,
		Content:    n.Content,
		AuthorID:   n.AuthorID,
		AuthorName: n.AuthorName,
		Audience:   n.Audience,
		Pinned:     n.Pinned,
		CreatedAt:  n.CreatedAt,
		UpdatedAt:  n.UpdatedAt,
	}
}
