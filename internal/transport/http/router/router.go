package router

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sitewatch/sitewatch-backend/internal/metrics"
	"github.com/sitewatch/sitewatch-backend/internal/transport/http/middleware"
)

type HealthHandler interface {
	Healthz(w http.ResponseWriter, r *http.Request)
	Readyz(w http.ResponseWriter, r *http.Request)
}

type AuthHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
	Logout(w http.ResponseWriter, r *http.Request)
	Me(w http.ResponseWriter, r *http.Request)

	VerifyEmail(w http.ResponseWriter, r *http.Request)
	ForgotPassword(w http.ResponseWriter, r *http.Request)
	ResetPassword(w http.ResponseWriter, r *http.Request)

	SetUserActive(w http.ResponseWriter, r *http.Request)
}

type FacilityHandler interface {
	CreateBuilding(w http.ResponseWriter, r *http.Request)
	GetBuilding(w http.ResponseWriter, r *http.Request)
	ListBuildings(w http.ResponseWriter, r *http.Request)
	UpdateBuilding(w http.ResponseWriter, r *http.Request)
	DeleteBuilding(w http.ResponseWriter, r *http.Request)

	CreateRoom(w http.ResponseWriter, r *http.Request)
	ListRooms(w http.ResponseWriter, r *http.Request)
	GetRoom(w http.ResponseWriter, r *http.Request)
	UpdateRoom(w http.ResponseWriter, r *http.Request)
	DeleteRoom(w http.ResponseWriter, r *http.Request)

	CreateCamera(w http.ResponseWriter, r *http.Request)
	ListCameras(w http.ResponseWriter, r *http.Request)
	GetCamera(w http.ResponseWriter, r *http.Request)
	UpdateCamera(w http.ResponseWriter, r *http.Request)
	SetCameraStatus(w http.ResponseWriter, r *http.Request)
	DeleteCamera(w http.ResponseWriter, r *http.Request)
}

type MessagingHandler interface {
	CreateContact(w http.ResponseWriter, r *http.Request)
	ListContacts(w http.ResponseWriter, r *http.Request)
	GetContact(w http.ResponseWriter, r *http.Request)
	UpdateContact(w http.ResponseWriter, r *http.Request)
	DeleteContact(w http.ResponseWriter, r *http.Request)

	CreateMessage(w http.ResponseWriter, r *http.Request)
	ListMessages(w http.ResponseWriter, r *http.Request)
	DeleteMessage(w http.ResponseWriter, r *http.Request)

	ListMyNotifications(w http.ResponseWriter, r *http.Request)
	MarkNotificationRead(w http.ResponseWriter, r *http.Request)
	DeleteNotification(w http.ResponseWriter, r *http.Request)
	CreateNotification(w http.ResponseWriter, r *http.Request)
}

type DashboardHandler interface {
	Summary(w http.ResponseWriter, r *http.Request)
}

type Deps struct {
	Health    HealthHandler
	Auth      AuthHandler
	Facility  FacilityHandler
	Messaging MessagingHandler
	Dashboard DashboardHandler

	AuthMW  func(http.Handler) http.Handler
	AdminMW func(http.Handler) http.Handler

	// Per-route rate limits; nil disables them.
	LoginLimitMW  func(http.Handler) http.Handler
	ForgotLimitMW func(http.Handler) http.Handler
}

func New(deps Deps) (http.Handler, error) {
	if deps.Health == nil {
		return nil, fmt.Errorf("nil Health handler")
	}
	if deps.Auth == nil {
		return nil, fmt.Errorf("nil Auth handler")
	}
	if deps.Facility == nil {
		return nil, fmt.Errorf("nil Facility handler")
	}
	if deps.Messaging == nil {
		return nil, fmt.Errorf("nil Messaging handler")
	}
	if deps.Dashboard == nil {
		return nil, fmt.Errorf("nil Dashboard handler")
	}
	if deps.AuthMW == nil {
		return nil, fmt.Errorf("nil Auth middleware")
	}
	if deps.AdminMW == nil {
		return nil, fmt.Errorf("nil Admin middleware")
	}

	noop := func(next http.Handler) http.Handler { return next }
	if deps.LoginLimitMW == nil {
		deps.LoginLimitMW = noop
	}
	if deps.ForgotLimitMW == nil {
		deps.ForgotLimitMW = noop
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Metrics)

	r.Get("/healthz", deps.Health.Healthz)
	r.Get("/readyz", deps.Health.Readyz)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		// --- Auth (public) ---
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", deps.Auth.Register)
			r.With(deps.LoginLimitMW).Post("/login", deps.Auth.Login)
			r.Post("/logout", deps.Auth.Logout)

			r.Get("/verify-email", deps.Auth.VerifyEmail) // ?token=...
			r.Post("/verify-email", deps.Auth.VerifyEmail)

			r.With(deps.ForgotLimitMW).Post("/forgot-password", deps.Auth.ForgotPassword)
			r.Post("/reset-password", deps.Auth.ResetPassword)

			r.With(deps.AuthMW).Get("/me", deps.Auth.Me)
		})

		// --- Facility topology (authenticated) ---
		r.Route("/buildings", func(r chi.Router) {
			r.Use(deps.AuthMW)

			r.Post("/", deps.Facility.CreateBuilding)
			r.Get("/", deps.Facility.ListBuildings)
			r.Get("/{id}", deps.Facility.GetBuilding)
			r.Put("/{id}", deps.Facility.UpdateBuilding)
			r.Delete("/{id}", deps.Facility.DeleteBuilding)

			r.Post("/{buildingID}/rooms", deps.Facility.CreateRoom)
			r.Get("/{buildingID}/rooms", deps.Facility.ListRooms)
		})

		r.Route("/rooms", func(r chi.Router) {
			r.Use(deps.AuthMW)

			r.Get("/{id}", deps.Facility.GetRoom)
			r.Put("/{id}", deps.Facility.UpdateRoom)
			r.Delete("/{id}", deps.Facility.DeleteRoom)

			r.Post("/{roomID}/cameras", deps.Facility.CreateCamera)
			r.Get("/{roomID}/cameras", deps.Facility.ListCameras)
		})

		r.Route("/cameras", func(r chi.Router) {
			r.Use(deps.AuthMW)

			r.Get("/{id}", deps.Facility.GetCamera)
			r.Put("/{id}", deps.Facility.UpdateCamera)
			r.Patch("/{id}/status", deps.Facility.SetCameraStatus)
			r.Delete("/{id}", deps.Facility.DeleteCamera)
		})

		// --- Contacts & messages (authenticated) ---
		r.Route("/contacts", func(r chi.Router) {
			r.Use(deps.AuthMW)

			r.Post("/", deps.Messaging.CreateContact)
			r.Get("/", deps.Messaging.ListContacts)
			r.Get("/{id}", deps.Messaging.GetContact)
			r.Put("/{id}", deps.Messaging.UpdateContact)
			r.Delete("/{id}", deps.Messaging.DeleteContact)

			r.Post("/{contactID}/messages", deps.Messaging.CreateMessage)
			r.Get("/{contactID}/messages", deps.Messaging.ListMessages)
		})

		r.With(deps.AuthMW).Delete("/messages/{id}", deps.Messaging.DeleteMessage)

		// --- Notifications (authenticated, owner-scoped) ---
		r.Route("/notifications", func(r chi.Router) {
			r.Use(deps.AuthMW)

			r.Get("/", deps.Messaging.ListMyNotifications)
			r.Post("/{id}/read", deps.Messaging.MarkNotificationRead)
			r.Delete("/{id}", deps.Messaging.DeleteNotification)
		})

		// --- Dashboard (authenticated) ---
		r.With(deps.AuthMW).Get("/dashboard/summary", deps.Dashboard.Summary)

		// --- Admin ---
		r.Route("/admin", func(r chi.Router) {
			r.Use(deps.AuthMW)
			r.Use(deps.AdminMW)

			r.Patch("/users/{id}/status", deps.Auth.SetUserActive)
			r.Post("/notifications", deps.Messaging.CreateNotification)
		})
	})

	return r, nil
}
