package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/stallcraft/backend/api/controllers"
	"github.com/stallcraft/backend/api/middleware"
	authsvc "github.com/stallcraft/backend/internal/auth"
	blogsvc "github.com/stallcraft/backend/internal/blogs"
	leadsvc "github.com/stallcraft/backend/internal/leads"
	mediasvc "github.com/stallcraft/backend/internal/media"
	productsvc "github.com/stallcraft/backend/internal/products"
	rashifalsvc "github.com/stallcraft/backend/internal/rashifal"
	testimonialsvc "github.com/stallcraft/backend/internal/testimonials"
	"github.com/stallcraft/backend/pkg/config"
	"github.com/stallcraft/backend/pkg/logger"
	"github.com/stallcraft/backend/pkg/metrics"
	"github.com/stallcraft/backend/pkg/redis"
)

// Services bundles everything the router hands to its controllers.
type Services struct {
	Auth         authsvc.Service
	Blogs        blogsvc.Service
	Products     productsvc.Service
	Testimonials testimonialsvc.Service
	Leads        leadsvc.Service
	Rashifal     rashifalsvc.Service
	Media        mediasvc.Service
}

// NewRouter assembles the public site and admin dashboard API.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	httpMetrics *metrics.HTTPMetrics,
	redisClient *redis.Client,
	readiness map[string]controllers.Pinger,
	svcs Services,
) http.Handler {
	r := chi.NewRouter()

	// upload limit plus some slack for the multipart framing
	maxBody := int64(cfg.Media.MaxUploadMB)<<20 + 1<<20

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS),
		middleware.Metrics(httpMetrics),
		middleware.BodyLimit(maxBody),
	)

	loginPolicy := middleware.NewRateLimitPolicy(
		"login",
		cfg.RateLimit.LoginWindow,
		cfg.RateLimit.LoginIPLimit,
	)
	contactPolicy := middleware.NewRateLimitPolicy(
		"contact",
		cfg.RateLimit.ContactWindow,
		cfg.RateLimit.ContactIPLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.Live())
		r.Get("/ready", controllers.Ready(logg, readiness))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/blogs", controllers.ListBlogs(svcs.Blogs, logg))
		r.Get("/blogs/{slug}", controllers.GetBlogBySlug(svcs.Blogs, logg))
		r.Get("/products", controllers.ListProducts(svcs.Products, logg))
		r.Get("/products/{id}", controllers.GetProduct(svcs.Products, logg))
		r.Get("/testimonials", controllers.ListTestimonials(svcs.Testimonials, logg))
		r.Get("/rashifal", controllers.ListRashifal(svcs.Rashifal, logg))
		r.Get("/rashifal/{sign}", controllers.GetRashifalBySign(svcs.Rashifal, logg))
		r.With(middleware.RateLimit(contactPolicy, redisClient, logg)).
			Post("/contact", controllers.SubmitContact(svcs.Leads, logg))
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.With(middleware.RateLimit(loginPolicy, redisClient, logg)).
			Post("/auth/login", controllers.Login(svcs.Auth, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, logg))

			r.Route("/blogs", func(r chi.Router) {
				r.Get("/", controllers.ListBlogs(svcs.Blogs, logg))
				r.Post("/", controllers.AdminCreateBlog(svcs.Blogs, svcs.Media, logg))
				r.Get("/{id}", controllers.AdminGetBlog(svcs.Blogs, logg))
				r.Put("/{id}", controllers.AdminUpdateBlog(svcs.Blogs, svcs.Media, logg))
				r.Delete("/{id}", controllers.AdminDeleteBlog(svcs.Blogs, logg))
			})

			r.Route("/products", func(r chi.Router) {
				r.Get("/", controllers.ListProducts(svcs.Products, logg))
				r.Post("/", controllers.AdminCreateProduct(svcs.Products, svcs.Media, logg))
				r.Get("/{id}", controllers.GetProduct(svcs.Products, logg))
				r.Put("/{id}", controllers.AdminUpdateProduct(svcs.Products, svcs.Media, logg))
				r.Delete("/{id}", controllers.AdminDeleteProduct(svcs.Products, logg))
			})

			r.Route("/testimonials", func(r chi.Router) {
				r.Get("/", controllers.ListTestimonials(svcs.Testimonials, logg))
				r.Post("/", controllers.AdminCreateTestimonial(svcs.Testimonials, svcs.Media, logg))
				r.Get("/{id}", controllers.GetTestimonial(svcs.Testimonials, logg))
				r.Put("/{id}", controllers.AdminUpdateTestimonial(svcs.Testimonials, svcs.Media, logg))
				r.Delete("/{id}", controllers.AdminDeleteTestimonial(svcs.Testimonials, logg))
			})

			r.Route("/leads", func(r chi.Router) {
				r.Get("/", controllers.AdminListLeads(svcs.Leads, logg))
				r.Post("/", controllers.AdminCreateLead(svcs.Leads, logg))
				r.Get("/{id}", controllers.AdminGetLead(svcs.Leads, logg))
				r.Put("/{id}", controllers.AdminUpdateLead(svcs.Leads, logg))
				r.Delete("/{id}", controllers.AdminDeleteLead(svcs.Leads, logg))
			})

			r.Route("/rashifal", func(r chi.Router) {
				r.Get("/", controllers.ListRashifal(svcs.Rashifal, logg))
				r.Post("/", controllers.AdminUpsertRashifal(svcs.Rashifal, logg))
				r.Put("/", controllers.AdminUpsertRashifal(svcs.Rashifal, logg))
				r.Get("/{sign}", controllers.GetRashifalBySign(svcs.Rashifal, logg))
				r.Put("/{sign}", controllers.AdminUpdateRashifalBySign(svcs.Rashifal, logg))
			})
			r.Post("/media/upload", controllers.UploadMedia(svcs.Media, logg))
		})
	})

	return r
}
