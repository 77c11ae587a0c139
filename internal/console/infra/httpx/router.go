package httpx

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/csrf"

	"github.com/erfansky/Dressmaking/internal/console/infra/httpx/middlewares"
	"github.com/erfansky/Dressmaking/internal/console/session"
)

// RouterConfig carries the security material the router needs.
type RouterConfig struct {
	CSRFKey      []byte
	CookieSecure bool
}

// NewRouter assembles the console's HTTP surface. Everything except login
// and the session probe sits behind the login guard; the whole tree sits
// behind CSRF protection since the browser authenticates with a cookie.
func NewRouter(handler *Handler, store *session.Store, cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middlewares.Trace)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewares.AttachSession(store))
	r.Use(exposeCSRFToken)

	r.Post("/login", handler.Login)
	r.Post("/logout", handler.Logout)
	r.Get("/session", handler.SessionStatus)

	r.Group(func(r chi.Router) {
		r.Use(middlewares.RequireLogin)

		r.Route("/customers", func(r chi.Router) {
			r.Get("/", handler.ListCustomers)
			r.Post("/", handler.CreateCustomer)
			r.Get("/{id}", handler.GetCustomer)
			r.Put("/{id}", handler.UpdateCustomer)
			r.Delete("/{id}", handler.DeleteCustomer)
			r.Get("/{id}/products/{productID}/assignment", handler.GetAssignmentForm)
			r.Put("/{id}/products/{productID}/assignment", handler.SaveAssignmentForm)
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", handler.ListProducts)
			r.Post("/", handler.CreateProduct)
			r.Get("/{id}", handler.GetProduct)
			r.Put("/{id}", handler.UpdateProduct)
			r.Delete("/{id}", handler.DeleteProduct)
			r.Get("/{id}/properties", handler.ListProductProperties)
		})

		r.Route("/properties", func(r chi.Router) {
			r.Post("/", handler.CreateProperty)
			r.Put("/{id}", handler.UpdateProperty)
			r.Delete("/{id}", handler.DeleteProperty)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", handler.ListOrders)
			r.Post("/", handler.CreateOrder)
			r.Get("/seed", handler.SeedOrderItem)
			r.Get("/{id}", handler.GetOrder)
			r.Put("/{id}", handler.UpdateOrder)
		})

		r.Get("/sagas/{id}", handler.GetSagaStatus)
	})

	protect := csrf.Protect(
		cfg.CSRFKey,
		csrf.Secure(cfg.CookieSecure),
		csrf.Path("/"),
	)
	return protect(r)
}

// exposeCSRFToken hands the per-request CSRF token to the frontend on every
// response; the frontend echoes it back in the X-CSRF-Token request header
// on mutations.
func exposeCSRFToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-CSRF-Token", csrf.Token(r))
		next.ServeHTTP(w, r)
	})
}
