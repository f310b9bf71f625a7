package router

import (
	"context"
	"net/http"

	_ "guidedog-records/docs"
	blobmem "guidedog-records/internal/adapters/blob/memory"
	"guidedog-records/internal/adapters/capabilities/roles"
	mem "guidedog-records/internal/adapters/storage/memory"
	"guidedog-records/internal/domain/activities"
	"guidedog-records/internal/domain/boarding"
	"guidedog-records/internal/domain/dogs"
	"guidedog-records/internal/domain/medical"
	"guidedog-records/internal/domain/medication"
	"guidedog-records/internal/domain/monthlyreports"
	"guidedog-records/internal/domain/notices"
	"guidedog-records/internal/domain/partners"
	"guidedog-records/internal/domain/reports"
	"guidedog-records/internal/domain/subscriptions"
	"guidedog-records/internal/domain/users"
	"guidedog-records/internal/middleware"
	"guidedog-records/internal/platform/httpx"
	"guidedog-records/internal/platform/logger"
	"guidedog-records/internal/platform/metrics"
	"guidedog-records/internal/ports/auth"
	"guidedog-records/internal/ports/blob"
	"guidedog-records/internal/ports/capabilities"
	"guidedog-records/internal/ports/events"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Repositories lo cumplen los stores memory, sqlite y postgres.
type Repositories interface {
	Dogs() dogs.Repository
	Partners() partners.Repository
	Activities() activities.Repository
	Users() users.Repository
	MonthlyReports() monthlyreports.Repository
	BoardingForms() boarding.Repository
	MedicalRecords() medical.Repository
	MedicationChecks() medication.Repository
	Notices() notices.Repository
	Subscriptions() subscriptions.Repository
}

type Options struct {
	Log     logger.Logger
	Metrics *metrics.Metrics

	// Repos nil => store en memoria.
	Repos Repositories
	// Blobs nil => blob store en memoria.
	Blobs blob.Store
	// Publisher nil => no se notifica nada.
	Publisher events.Publisher

	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)
	TokenIssuer  auth.TokenIssuer  // nil => /auth/login responde 503
	TokenRevoker auth.TokenRevoker
	Resolver     capabilities.CapabilitiesResolver

	BootstrapAdminID       string
	BootstrapAdminPassword string

	// Pending opcional: eventos en cola, se muestra en /health.
	Pending func() int
}

// Services expone los servicios que main necesita además del handler (dispatcher de push).
type Services struct {
	Subscriptions *subscriptions.Service
}

func NewRouter(opts Options) (http.Handler, Services, error) {
	log := opts.Log
	if log == nil {
		log = logger.Nop()
	}
	m := opts.Metrics
	if m == nil {
		m = metrics.New()
	}
	repos := opts.Repos
	if repos == nil {
		repos = mem.New()
	}
	blobs := opts.Blobs
	if blobs == nil {
		blobs = blobmem.New()
	}
	publisher := opts.Publisher
	if publisher == nil {
		publisher = events.Nop()
	}
	resolver := opts.Resolver
	if resolver == nil {
		resolver = roles.NewResolver(roles.Options{})
	}

	// Services por módulo
	dogsSvc := dogs.NewService(repos.Dogs())
	partnersSvc := partners.NewService(repos.Partners())
	usersSvc := users.NewService(repos.Users())
	medicalSvc := medical.NewService(repos.MedicalRecords(), dogsSvc, blobs)
	medicationSvc := medication.NewService(repos.MedicationChecks(), dogsSvc)
	noticesSvc := notices.NewService(repos.Notices())
	activitiesSvc := activities.NewService(repos.Activities(), dogsSvc, publisher)
	monthlySvc := monthlyreports.NewService(repos.MonthlyReports(), dogsSvc, publisher)
	boardingSvc := boarding.NewService(repos.BoardingForms(), dogsSvc, publisher)
	subsSvc := subscriptions.NewService(repos.Subscriptions())
	reportsSvc := reports.NewService(dogsSvc, medicalSvc, medicationSvc)

	created, err := usersSvc.EnsureBootstrapAdmin(context.Background(), opts.BootstrapAdminID, opts.BootstrapAdminPassword)
	if err != nil {
		return nil, Services{}, err
	}
	if created {
		log.Info("bootstrap admin created", logger.Fields{"user_id": opts.BootstrapAdminID})
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.AuthContext(opts.AuthVerifier))
	r.Use(middleware.AccessLog(log))
	r.Use(middleware.Recover(log))
	r.Use(m.Middleware)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		resp := map[string]any{"status": "ok"}
		if opts.Pending != nil {
			resp["notify_pending"] = opts.Pending()
		}
		httpx.WriteJSON(w, http.StatusOK, resp)
	})
	r.Method(http.MethodGet, "/metrics", m.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	users.RegisterAuthRoutes(r, usersSvc, opts.TokenIssuer, opts.TokenRevoker)

	// Rutas por módulo; todas requieren usuario
	r.Group(func(pr chi.Router) {
		pr.Use(middleware.RequireUser)

		users.RegisterRoutes(pr, usersSvc, resolver)
		// dogs antes que partners: /dogs/{dogID}/partners se agrega sobre el mount de /dogs
		dogs.RegisterRoutes(pr, dogsSvc, resolver)
		partners.RegisterRoutes(pr, partnersSvc, resolver)
		medical.RegisterRoutes(pr, medicalSvc)
		medication.RegisterRoutes(pr, medicationSvc)
		notices.RegisterRoutes(pr, noticesSvc, resolver)
		activities.RegisterRoutes(pr, activitiesSvc)
		monthlyreports.RegisterRoutes(pr, monthlySvc)
		boarding.RegisterRoutes(pr, boardingSvc, resolver)
		subscriptions.RegisterRoutes(pr, subsSvc, resolver)
		reports.RegisterRoutes(pr, reportsSvc, resolver)
	})

	return r, Services{Subscriptions: subsSvc}, nil
}
