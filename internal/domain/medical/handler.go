package medical

import (
	"errors"
	"io"
	"net/http"
	"time"

	"guidedog-records/internal/middleware"
	"guidedog-records/internal/platform/httpx"
	"guidedog-records/internal/platform/logger"
	"guidedog-records/internal/platform/validation"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/medical-records", func(mr chi.Router) {
		mr.Post("/", saveRecordHandler(svc))
		mr.Get("/", listRecordsHandler(svc))
		mr.Get("/{recordID}", getRecordHandler(svc))
		mr.Put("/{recordID}", saveRecordHandler(svc))
		mr.Delete("/{recordID}", deleteRecordHandler(svc))

		mr.Post("/{recordID}/photos", addPhotoHandler(svc))
		mr.Get("/{recordID}/photos/{photoID}", getPhotoHandler(svc))
		mr.Delete("/{recordID}/photos/{photoID}", deletePhotoHandler(svc))
	})
}

// saveRecordRequest es el cuerpo para registrar o editar una visita veterinaria.
type saveRecordRequest struct {
	ID        string   `json:"id"`
	DogID     string   `json:"dog_id"`
	DogName   string   `json:"dog_name"` // solo registros sin dog_id
	Category  string   `json:"category" validate:"required,oneof=general vaccination" enums:"general,vaccination"`
	VisitDate string   `json:"visit_date" validate:"required,datetime=2006-01-02"`
	Hospital  string   `json:"hospital"`
	Diagnosis string   `json:"diagnosis"`
	Treatment string   `json:"treatment"`
	Cost      *int     `json:"cost" validate:"omitempty,min=0"`
	Vaccines  []string `json:"vaccines" validate:"omitempty,dive,oneof=rabies dhpp leptospirosis bordetella coronavirus"`
}

type photoResponse struct {
	ID          string `json:"id"`
	ContentType string `json:"content_type"`
	URL         string `json:"url"`
}

// recordResponse representa un registro médico devuelto por la API.
type recordResponse struct {
	ID         string          `json:"id"`
	DogID      string          `json:"dog_id,omitempty"`
	DogName    string          `json:"dog_name"`
	ReporterID string          `json:"reporter_id"`
	Category   Category        `json:"category"`
	VisitDate  string          `json:"visit_date"`
	Hospital   string          `json:"hospital"`
	Diagnosis  string          `json:"diagnosis"`
	Treatment  string          `json:"treatment"`
	Cost       *int            `json:"cost,omitempty"`
	Vaccines   []VaccineType   `json:"vaccines"`
	Photos     []photoResponse `json:"photos"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// uploadPhotoRequest acepta la codificación inline de la app original:
// data URL completo o base64 + content_type.
type uploadPhotoRequest struct {
	Image       string `json:"image" validate:"required"`
	ContentType string `json:"content_type"`
}

// saveRecordHandler godoc
// @Summary Crear o actualizar registro médico
// @Description Upsert de un registro médico. POST crea (o reemplaza si el body trae un id existente); PUT reemplaza el registro del path. Los registros de vacunación deben listar al menos una vacuna. Autenticación: `X-Debug-User-ID` (dev) o `Authorization: Bearer <token>` (prod).
// @Tags medical
// @Accept json
// @Produce json
// @Param Authorization header string false "Bearer token en producción"
// @Param recordID path string false "ID del registro (solo PUT)"
// @Param payload body saveRecordRequest true "Datos de la visita; visit_date en formato YYYY-MM-DD"
// @Success 201 {object} recordResponse
// @Success 200 {object} recordResponse
// @Failure 400 {string} string "invalid json / validación"
// @Failure 401 {string} string "unauthorized"
// @Router /medical-records [post]
// @Router /medical-records/{recordID} [put]
func saveRecordHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		var req saveRecordRequest
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
		if pathID := chi.URLParam(r, "recordID"); pathID != "" {
			id = pathID
			status = http.StatusOK
		}

		vaccines := make([]VaccineType, 0, len(req.Vaccines))
		for _, v := range req.Vaccines {
			vaccines = append(vaccines, VaccineType(v))
		}

		rec, err := svc.Save(r.Context(), SaveInput{
			ID:         id,
			DogID:      req.DogID,
			DogName:    req.DogName,
			ReporterID: claims.UserID,
			Category:   Category(req.Category),
			VisitDate:  req.VisitDate,
			Hospital:   req.Hospital,
			Diagnosis:  req.Diagnosis,
			Treatment:  req.Treatment,
			Cost:       req.Cost,
			Vaccines:   vaccines,
		})
		if err != nil {
			writeError(w, r, err)
			return
		}
		httpx.WriteJSON(w, status, toRecordResponse(rec))
	}
}

// listRecordsHandler godoc
// @Summary Listar registros médicos
// @Description Lista en orden de carga, con filtros opcionales.
// @Tags medical
// @Produce json
// @Param dog_id query string false "ID del perro"
// @Param category query string false "general | vaccination"
// @Param year query int false "Año de la visita"
// @Success 200 {array} recordResponse
// @Failure 400 {string} string "filtro inválido"
// @Router /medical-records [get]
func listRecordsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		year, ok := httpx.QueryInt(r, "year", 0)
		if !ok {
			http.Error(w, "year must be an integer", http.StatusBadRequest)
			return
		}
		f := ListFilter{
			DogID:    r.URL.Query().Get("dog_id"),
			Category: Category(r.URL.Query().Get("category")),
			Year:     year,
		}
		if f.Category != "" && !f.Category.Valid() {
			http.Error(w, "unknown category", http.StatusBadRequest)
			return
		}

		items, err := svc.List(r.Context(), f)
		if err != nil {
			writeError(w, r, err)
			return
		}

		out := make([]recordResponse, 0, len(items))
		for _, rec := range items {
			out = append(out, toRecordResponse(rec))
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

func getRecordHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, err := svc.GetByID(r.Context(), chi.URLParam(r, "recordID"))
		if err != nil {
			writeError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toRecordResponse(rec))
	}
}

func deleteRecordHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "recordID")); err != nil {
			writeError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// addPhotoHandler godoc
// @Summary Adjuntar foto a un registro médico
// @Description Recibe la imagen en base64 (o data URL) y la guarda en el blob store configurado.
// @Tags medical
// @Accept json
// @Produce json
// @Param recordID path string true "ID del registro"
// @Param payload body uploadPhotoRequest true "Imagen"
// @Success 201 {object} photoResponse
// @Failure 400 {string} string "imagen inválida"
// @Failure 404 {string} string "medical record not found"
// @Failure 503 {string} string "photo storage not configured"
// @Router /medical-records/{recordID}/photos [post]
func addPhotoHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req uploadPhotoRequest
		if err := httpx.DecodeJSON(w, r, &req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if err := validation.Struct(req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		data, ct, err := DecodeImage(req.Image, req.ContentType)
		if err != nil {
			http.Error(w, "image must be a base64 jpeg/png/gif/webp up to 5MB", http.StatusBadRequest)
			return
		}

		recordID := chi.URLParam(r, "recordID")
		p, err := svc.AddPhoto(r.Context(), recordID, data, ct)
		if err != nil {
			writeError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, toPhotoResponse(recordID, p))
	}
}

func getPhotoHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, rc, err := svc.OpenPhoto(r.Context(), chi.URLParam(r, "recordID"), chi.URLParam(r, "photoID"))
		if err != nil {
			writeError(w, r, err)
			return
		}
		defer rc.Close()

		w.Header().Set("Content-Type", p.ContentType)
		w.Header().Set("Cache-Control", "private, max-age=3600")
		w.WriteHeader(http.StatusOK)
		_, _ = io.Copy(w, rc)
	}
}

func deletePhotoHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := svc.DeletePhoto(r.Context(), chi.URLParam(r, "recordID"), chi.URLParam(r, "photoID"))
		if err != nil {
			writeError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "medical record not found", http.StatusNotFound)
	case errors.Is(err, ErrPhotoNotFound):
		http.Error(w, "photo not found", http.StatusNotFound)
	case errors.Is(err, ErrNoBlobStore):
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
	case errors.Is(err, ErrPhotoCleanup):
		// el registro/foto ya se quitó; solo queda basura en el blob store
		logger.FromContext(r.Context(), nil).Warn("photo cleanup failed", logger.Fields{"err": err})
		w.WriteHeader(http.StatusNoContent)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toPhotoResponse(recordID string, p Photo) photoResponse {
	return photoResponse{
		ID:          p.ID,
		ContentType: p.ContentType,
		URL:         "/medical-records/" + recordID + "/photos/" + p.ID,
	}
}

func toRecordResponse(rec Record) recordResponse {
	vaccines := rec.Vaccines
	if vaccines == nil {
		vaccines = []VaccineType{}
	}
	photos := make([]photoResponse, 0, len(rec.Photos))
	for _, p := range rec.Photos {
		photos = append(photos, toPhotoResponse(rec.ID, p))
	}

	return recordResponse{
		ID:         rec.ID,
		DogID:      rec.DogID,
		DogName:    rec.DogName,
		ReporterID: rec.ReporterID,
		Category:   rec.Category,
		VisitDate:  rec.VisitDate,
		Hospital:   rec.Hospital,
		Diagnosis:  rec.Diagnosis,
		Treatment:  rec.Treatment,
		Cost:       rec.Cost,
		Vaccines:   vaccines,
		Photos:     photos,
		CreatedAt:  rec.CreatedAt,
		UpdatedAt:  rec.UpdatedAt,
	}
}
