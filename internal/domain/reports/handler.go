package reports

import (
	"net/http"
	"time"

	"guidedog-records/internal/domain/dogs"
	"guidedog-records/internal/middleware"
	"guidedog-records/internal/platform/httpx"
	"guidedog-records/internal/platform/logger"
	"guidedog-records/internal/ports/capabilities"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, resolver capabilities.CapabilitiesResolver) {
	r.Route("/reports", func(rr chi.Router) {
		rr.Use(middleware.RequireCapability(resolver, capabilities.ReportsRead))

		rr.Get("/vaccines", vaccinesHandler(svc, time.Now))
		rr.Get("/medications", medicationsHandler(svc, time.Now))
		rr.Get("/costs", costsHandler(svc, time.Now))
	})
}

// vaccinesHandler godoc
// @Summary Matriz de vacunas por perro
// @Description Una fila por perro de la categoría (orden de carga) y una columna por vacuna. Una categoría desconocida devuelve filas vacías.
// @Tags reports
// @Produce json
// @Param category query string true "guide_dog | puppy_in_training | retired | breeding_parent"
// @Param year query int false "Año (default: año actual)"
// @Success 200 {object} Matrix
// @Failure 400 {string} string "year inválido"
// @Failure 403 {string} string "forbidden"
// @Router /reports/vaccines [get]
func vaccinesHandler(svc *Service, now func() time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		year, ok := httpx.QueryInt(r, "year", now().Year())
		if !ok {
			http.Error(w, "year must be an integer", http.StatusBadRequest)
			return
		}

		m, err := svc.Vaccines(r.Context(), dogs.Category(r.URL.Query().Get("category")), year)
		if err != nil {
			internalError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, m)
	}
}

// medicationsHandler godoc
// @Summary Matriz de medicación preventiva por perro
// @Tags reports
// @Produce json
// @Param category query string true "Categoría del perro"
// @Param year query int false "Año (default: actual)"
// @Param month query int false "Mes 1-12 (default: actual)"
// @Success 200 {object} Matrix
// @Router /reports/medications [get]
func medicationsHandler(svc *Service, now func() time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t := now()
		year, okYear := httpx.QueryInt(r, "year", t.Year())
		month, okMonth := httpx.QueryInt(r, "month", int(t.Month()))
		if !okYear || !okMonth || month < 1 || month > 12 {
			http.Error(w, "year/month must be integers (month 1-12)", http.StatusBadRequest)
			return
		}

		m, err := svc.Medications(r.Context(), dogs.Category(r.URL.Query().Get("category")), year, month)
		if err != nil {
			internalError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, m)
	}
}

func costsHandler(svc *Service, now func() time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		year, ok := httpx.QueryInt(r, "year", now().Year())
		if !ok {
			http.Error(w, "year must be an integer", http.StatusBadRequest)
			return
		}

		rep, err := svc.Costs(r.Context(), dogs.Category(r.URL.Query().Get("category")), year)
		if err != nil {
			internalError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, rep)
	}
}

func internalError(w http.ResponseWriter, r *http.Request, err error) {
	logger.FromContext(r.Context(), nil).Error("report failed", logger.Fields{"path": r.URL.Path, "err": err})
	http.Error(w, "internal error", http.StatusInternalServerError)
}
