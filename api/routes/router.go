package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kamaukinuthia/irrigo-backend/api/controllers"
	"github.com/kamaukinuthia/irrigo-backend/api/middleware"
	analyticssvc "github.com/kamaukinuthia/irrigo-backend/internal/analytics"
	authsvc "github.com/kamaukinuthia/irrigo-backend/internal/auth"
	blogsvc "github.com/kamaukinuthia/irrigo-backend/internal/blog"
	contactsvc "github.com/kamaukinuthia/irrigo-backend/internal/contacts"
	productsvc "github.com/kamaukinuthia/irrigo-backend/internal/products"
	projectsvc "github.com/kamaukinuthia/irrigo-backend/internal/projects"
	quotesvc "github.com/kamaukinuthia/irrigo-backend/internal/quotes"
	storysvc "github.com/kamaukinuthia/irrigo-backend/internal/stories"
	teamsvc "github.com/kamaukinuthia/irrigo-backend/internal/team"
	usersvc "github.com/kamaukinuthia/irrigo-backend/internal/users"
	"github.com/kamaukinuthia/irrigo-backend/pkg/auth/session"
	"github.com/kamaukinuthia/irrigo-backend/pkg/config"
	"github.com/kamaukinuthia/irrigo-backend/pkg/logger"
	"github.com/kamaukinuthia/irrigo-backend/pkg/metrics"
	pkgredis "github.com/kamaukinuthia/irrigo-backend/pkg/redis"
)

type pinger interface {
	Ping(ctx context.Context) error
}

// Deps bundles everything the router wires into handlers.
type Deps struct {
	Cfg          *config.Config
	Logg         *logger.Logger
	DB           pinger
	Redis        *pkgredis.Client
	Sessions     session.AccessSessionChecker
	HTTPMetrics  *metrics.HTTPMetrics
	PromRegistry *prometheus.Registry

	Auth      authsvc.Service
	Quotes    quotesvc.Service
	Products  productsvc.Service
	Blog      blogsvc.Service
	Team      teamsvc.Service
	Stories   storysvc.Service
	Projects  projectsvc.Service
	Contacts  contactsvc.Service
	Users     usersvc.Service
	Analytics analyticssvc.Service
}

// NewRouter assembles the public, auth, and admin route trees.
func NewRouter(deps Deps) http.Handler {
	cfg := deps.Cfg
	logg := deps.Logg

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.App.ExtraCORSOrigins...),
	)
	if deps.HTTPMetrics != nil {
		r.Use(middleware.Metrics(deps.HTTPMetrics))
	}

	// A typed-nil *redis.Client would slip past the middlewares' nil
	// checks once boxed in their interface params, so convert here.
	var idemStore pkgredis.IdempotencyStore
	var rlStore middleware.RateLimiterStore
	if deps.Redis != nil {
		idemStore = deps.Redis
		rlStore = deps.Redis
	}

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	quotePolicy := middleware.NewAuthRateLimitPolicy(
		"quote",
		cfg.AuthRateLimit.QuoteWindow,
		cfg.AuthRateLimit.QuoteIPLimit,
		0,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, deps.DB, deps.Redis, logg))
	})

	if deps.PromRegistry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.PromRegistry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Idempotency(idemStore, logg))

		r.With(middleware.AuthRateLimit(quotePolicy, rlStore, logg)).
			Post("/quotes", controllers.RequestQuote(deps.Quotes, logg))

		r.Get("/products", controllers.ListProducts(deps.Products, logg))
		r.Get("/products/{slug}", controllers.GetProductBySlug(deps.Products, logg))
		r.Get("/blog", controllers.ListPosts(deps.Blog, logg))
		r.Get("/blog/{slug}", controllers.GetPostBySlug(deps.Blog, logg))
		r.Get("/team", controllers.ListTeam(deps.Team, logg))
		r.Get("/stories", controllers.ListStories(deps.Stories, logg))
		r.Get("/projects", controllers.ListProjects(deps.Projects, logg))
		r.Post("/contact", controllers.SubmitContact(deps.Contacts, logg))
		r.Post("/pageviews", controllers.RecordPageView(deps.Analytics, logg))
	})

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, rlStore, logg)).
			Post("/login", controllers.Login(deps.Auth, logg))
		r.Post("/logout", controllers.Logout(deps.Auth, cfg.JWT, logg))
		r.Post("/refresh", controllers.Refresh(deps.Auth, logg))
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.Sessions, logg))
		r.Use(middleware.RequireAdmin(logg))
		r.Use(middleware.Idempotency(idemStore, logg))

		r.Route("/quotes", func(r chi.Router) {
			r.Get("/", controllers.ListQuotes(deps.Quotes, logg))
			r.Get("/materials", controllers.QuoteMaterials())
			r.Get("/{id}", controllers.GetQuote(deps.Quotes, logg))
			r.Put("/{id}", controllers.UpdateQuote(deps.Quotes, logg))
			r.Patch("/{id}/status", controllers.UpdateQuoteStatus(deps.Quotes, logg))
			r.Post("/{id}/assign", controllers.AssignQuote(deps.Quotes, logg))
			r.Delete("/{id}", controllers.DeleteQuote(deps.Quotes, logg))
			r.Post("/{id}/send", controllers.SendQuote(deps.Quotes, logg))
			r.Get("/{id}/document", controllers.QuoteDocument(deps.Quotes, logg))
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ListProducts(deps.Products, logg))
			r.Post("/", controllers.CreateProduct(deps.Products, logg))
			r.Put("/{id}", controllers.UpdateProduct(deps.Products, logg))
			r.Delete("/{id}", controllers.DeleteProduct(deps.Products, logg))
		})

		r.Route("/blog", func(r chi.Router) {
			r.Get("/", controllers.ListAllPosts(deps.Blog, logg))
			r.Post("/", controllers.CreatePost(deps.Blog, logg))
			r.Put("/{id}", controllers.UpdatePost(deps.Blog, logg))
			r.Delete("/{id}", controllers.DeletePost(deps.Blog, logg))
		})

		r.Route("/team", func(r chi.Router) {
			r.Get("/", controllers.ListTeam(deps.Team, logg))
			r.Post("/", controllers.CreateTeamMember(deps.Team, logg))
			r.Put("/{id}", controllers.UpdateTeamMember(deps.Team, logg))
			r.Delete("/{id}", controllers.DeleteTeamMember(deps.Team, logg))
		})

		r.Route("/stories", func(r chi.Router) {
			r.Get("/", controllers.ListStories(deps.Stories, logg))
			r.Post("/", controllers.CreateStory(deps.Stories, logg))
			r.Put("/{id}", controllers.UpdateStory(deps.Stories, logg))
			r.Delete("/{id}", controllers.DeleteStory(deps.Stories, logg))
		})

		r.Route("/projects", func(r chi.Router) {
			r.Get("/", controllers.ListProjects(deps.Projects, logg))
			r.Post("/", controllers.CreateProject(deps.Projects, logg))
			r.Put("/{id}", controllers.UpdateProject(deps.Projects, logg))
			r.Delete("/{id}", controllers.DeleteProject(deps.Projects, logg))
		})

		r.Route("/contacts", func(r chi.Router) {
			r.Get("/", controllers.ListContacts(deps.Contacts, logg))
			r.Patch("/{id}/resolve", controllers.ResolveContact(deps.Contacts, logg))
			r.Delete("/{id}", controllers.DeleteContact(deps.Contacts, logg))
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/", controllers.ListUsers(deps.Users, logg))
			r.Post("/", controllers.CreateUser(deps.Users, logg))
			r.Put("/{id}", controllers.UpdateUser(deps.Users, logg))
			r.Delete("/{id}", controllers.DeactivateUser(deps.Users, logg))
		})

		r.Get("/dashboard", controllers.Dashboard(deps.Analytics, logg))
	})

	return r
}
