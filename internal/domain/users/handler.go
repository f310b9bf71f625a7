package users

import (
	"errors"
	"net/http"
	"time"

	"guidedog-records/internal/middleware"
	"guidedog-records/internal/platform/httpx"
	"guidedog-records/internal/platform/validation"
	"guidedog-records/internal/ports/auth"
	"guidedog-records/internal/ports/capabilities"

	"github.com/go-chi/chi/v5"
)

// RegisterAuthRoutes monta login/logout; van fuera del grupo autenticado.
func RegisterAuthRoutes(r chi.Router, svc *Service, issuer auth.TokenIssuer, revoker auth.TokenRevoker) {
	r.Route("/auth", func(ar chi.Router) {
		ar.Post("/login", loginHandler(svc, issuer))
		ar.Post("/logout", logoutHandler(revoker))
	})
}

func RegisterRoutes(r chi.Router, svc *Service, resolver capabilities.CapabilitiesResolver) {
	canManage := middleware.RequireCapability(resolver, capabilities.UsersManage)

	r.Get("/me", meHandler(svc, resolver))
	r.Put("/me/password", changePasswordHandler(svc))

	r.Route("/users", func(ur chi.Router) {
		ur.Get("/", listUsersHandler(svc))

		ur.With(canManage).Post("/", createUserHandler(svc))
		ur.With(canManage).Get("/{userID}", getUserHandler(svc))
		ur.With(canManage).Put("/{userID}", updateUserHandler(svc))
		ur.With(canManage).Delete("/{userID}", deleteUserHandler(svc))
	})
}

type loginRequest struct {
	ID       string `json:"id" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      userResponse `json:"user"`
}

type createUserRequest struct {
	ID       string `json:"id" validate:"required"`
	Password string `json:"password" validate:"required,min=4"`
	Role     string `json:"role" validate:"required,oneof=admin trainer guide_dog_user puppy_raiser adopter breeding_caretaker veterinarian"`
	Name     string `json:"name" validate:"required"`
	DogName  string `json:"dog_name"`
}

type updateUserRequest struct {
	// Punteros: nil = no tocar.
	Role     *string `json:"role" validate:"omitempty,oneof=admin trainer guide_dog_user puppy_raiser adopter breeding_caretaker veterinarian"`
	Name     *string `json:"name"`
	DogName  *string `json:"dog_name"`
	Password *string `json:"password" validate:"omitempty,min=4"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=4"`
}

type userResponse struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Name      string    `json:"name"`
	DogName   string    `json:"dog_name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func loginHandler(svc *Service, issuer auth.TokenIssuer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if issuer == nil {
			http.Error(w, "login disabled", http.StatusServiceUnavailable)
			return
		}

		var req loginRequest
		if err := httpx.DecodeJSON(w, r, &req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if err := validation.Struct(req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		u, err := svc.Authenticate(r.Context(), req.ID, req.Password)
		if err != nil {
			writeError(w, err)
			return
		}

		token, exp, err := issuer.Issue(auth.Claims{UserID: u.ID, Role: string(u.Role), Name: u.Name})
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		httpx.WriteJSON(w, http.StatusOK, loginResponse{Token: token, ExpiresAt: exp, User: toUserResponse(u)})
	}
}

func logoutHandler(revoker auth.TokenRevoker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := middleware.BearerToken(r.Header.Get("Authorization"))
		if token == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		if revoker != nil {
			if err := revoker.Revoke(r.Context(), token); err != nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

type meResponse struct {
	userResponse
	Capabilities []capabilities.Capability `json:"capabilities"`
}

func meHandler(svc *Service, resolver capabilities.CapabilitiesResolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		var resp meResponse
		u, err := svc.GetByID(r.Context(), claims.UserID)
		switch {
		case errors.Is(err, ErrNotFound):
			// modo dev: el header no necesita una cuenta real
			resp.userResponse = userResponse{ID: claims.UserID, Role: Role(claims.Role), Name: claims.Name}
		case err != nil:
			writeError(w, err)
			return
		default:
			resp.userResponse = toUserResponse(u)
		}

		resp.Capabilities = make([]capabilities.Capability, 0, len(capabilities.All))
		for _, c := range capabilities.All {
			ok, err := resolver.HasFeature(r.Context(), capabilities.CapabilityCheck{
				UserID:     resp.ID,
				Role:       string(resp.Role),
				Capability: c,
			})
			if err != nil {
				writeError(w, err)
				return
			}
			if ok {
				resp.Capabilities = append(resp.Capabilities, c)
			}
		}
		httpx.WriteJSON(w, http.StatusOK, resp)
	}
}

func changePasswordHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		var req changePasswordRequest
		if err := httpx.DecodeJSON(w, r, &req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if err := validation.Struct(req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		if err := svc.ChangePassword(r.Context(), claims.UserID, req.CurrentPassword, req.NewPassword); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func createUserHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createUserRequest
		if err := httpx.DecodeJSON(w, r, &req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if err := validation.Struct(req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		u, err := svc.Create(r.Context(), CreateInput{
			ID:       req.ID,
			Password: req.Password,
			Role:     Role(req.Role),
			Name:     req.Name,
			DogName:  req.DogName,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, toUserResponse(u))
	}
}

func listUsersHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}

		role := Role(r.URL.Query().Get("role"))
		out := make([]userResponse, 0, len(items))
		for _, u := range items {
			if role != "" && u.Role != role {
				continue
			}
			out = append(out, toUserResponse(u))
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

func getUserHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, err := svc.GetByID(r.Context(), chi.URLParam(r, "userID"))
		if err != nil {
			writeError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toUserResponse(u))
	}
}

func updateUserHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateUserRequest
		if err := httpx.DecodeJSON(w, r, &req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if err := validation.Struct(req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		in := UpdateInput{Name: req.Name, DogName: req.DogName, Password: req.Password}
		if req.Role != nil {
			role := Role(*req.Role)
			in.Role = &role
		}

		u, err := svc.Update(r.Context(), chi.URLParam(r, "userID"), in)
		if err != nil {
			writeError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toUserResponse(u))
	}
}

func deleteUserHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "userID")); err != nil {
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
	case errors.Is(err, ErrInvalidCredentials):
		http.Error(w, err.Error(), http.StatusUnauthorized)
	case errors.Is(err, ErrDuplicateID):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "user not found", http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toUserResponse(u User) userResponse {
	return userResponse{
		ID:        u.ID,
		Role:      u.Role,
		Name:      u.Name,
		DogName:   u.DogName,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
