package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/oliverbanks/rotaboard-backend/api/controllers"
	"github.com/oliverbanks/rotaboard-backend/api/middleware"
	authsvc "github.com/oliverbanks/rotaboard-backend/internal/auth"
	availabilitysvc "github.com/oliverbanks/rotaboard-backend/internal/availability"
	peoplesvc "github.com/oliverbanks/rotaboard-backend/internal/people"
	rolessvc "github.com/oliverbanks/rotaboard-backend/internal/roles"
	rotassvc "github.com/oliverbanks/rotaboard-backend/internal/rotas"
	venuessvc "github.com/oliverbanks/rotaboard-backend/internal/venues"
	"github.com/oliverbanks/rotaboard-backend/pkg/auth/session"
	"github.com/oliverbanks/rotaboard-backend/pkg/config"
	"github.com/oliverbanks/rotaboard-backend/pkg/db"
	"github.com/oliverbanks/rotaboard-backend/pkg/logger"
	"github.com/oliverbanks/rotaboard-backend/pkg/metrics"
	"github.com/oliverbanks/rotaboard-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	sessionResolver session.Resolver,
	httpMetrics *metrics.HTTPMetrics,
	authService authsvc.Service,
	rolesService rolessvc.Service,
	peopleService peoplesvc.Service,
	availabilityService availabilitysvc.Service,
	venuesService venuessvc.Service,
	rotasService rotassvc.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, map[string]db.Pinger{
			"database": dbP,
			"redis":    redisClient,
		}))
	})

	if httpMetrics != nil {
		r.Get("/metrics", httpMetrics.Handler().ServeHTTP)
	}

	r.With(middleware.AuthRateLimit(loginPolicy, redisClient, logg)).
		Post("/login", controllers.Login(authService, cfg.Session, logg))
	r.With(middleware.AuthRateLimit(registerPolicy, redisClient, logg)).
		Post("/register", controllers.Register(authService, cfg.Session, logg))
	r.Post("/logout", controllers.Logout(authService, cfg.Session, logg))

	// Fill links go out to participants without accounts; the row id in the
	// path is the whole capability.
	r.Post("/fill/{id}", controllers.Fill(availabilityService, logg))

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.Session, sessionResolver, logg))

		r.Route("/roles", func(r chi.Router) {
			r.Get("/", controllers.RolesList(rolesService, logg))
			r.Post("/", controllers.RoleCreate(rolesService, logg))
			r.Patch("/", controllers.RoleUpdate(rolesService, logg))
			r.Delete("/", controllers.RoleDelete(rolesService, logg))
		})

		r.Route("/people", func(r chi.Router) {
			r.Get("/", controllers.PeopleList(peopleService, logg))
			r.Post("/", controllers.PersonCreate(peopleService, logg))
			r.Patch("/", controllers.PersonUpdate(peopleService, logg))
			r.Delete("/", controllers.PersonDelete(peopleService, logg))
		})

		r.Route("/availability", func(r chi.Router) {
			r.Get("/", controllers.AvailabilityList(availabilityService, logg))
			r.Post("/", controllers.AvailabilityCreate(availabilityService, logg))
			r.Patch("/", controllers.AvailabilityUpdate(availabilityService, logg))
			r.Delete("/", controllers.AvailabilityDelete(availabilityService, logg))
		})
		r.Get("/user_availability", controllers.UserAvailability(availabilityService, logg))

		r.Route("/venues", func(r chi.Router) {
			r.Get("/", controllers.VenuesList(venuesService, logg))
			r.Post("/", controllers.VenueCreate(venuesService, logg))
			r.Patch("/", controllers.VenueUpdate(venuesService, logg))
			r.Delete("/", controllers.VenueDelete(venuesService, logg))
		})

		r.Route("/rotas", func(r chi.Router) {
			r.Get("/", controllers.RotasList(rotasService, logg))
			r.Post("/", controllers.RotaCreate(rotasService, logg))
			r.Get("/{rota_id}", controllers.RotaGet(rotasService, logg))
			r.Put("/{rota_id}", controllers.RotaReplace(rotasService, logg))
			r.Get("/{rota_id}/venues", controllers.RotaVenues(rotasService, logg))
		})
	})

	return r
}
