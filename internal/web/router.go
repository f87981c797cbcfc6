package web

import (
	"embed"
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/lojf/regform/internal/handlers"
)

//go:embed templates
var templateFS embed.FS

// Options configures the router beyond the handler dependencies.
type Options struct {
	AllowedOrigins []string
}

func Router(app *handlers.App, opts Options) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	base := mustParseLayouts()
	registerView := page(base, "templates/pages/register.tmpl")
	loginView := page(base, "templates/pages/admin/login.tmpl")
	studentsView := page(base, "templates/pages/admin/students.tmpl")

	// Registration form
	r.Get("/", handlers.RegisterForm(registerView, app))
	r.Post("/register", handlers.RegisterSubmit(registerView, app))
	r.Post("/clear", handlers.ClearForm)
	r.Get("/healthz", handlers.Health)
	r.Get("/students/{id}/qr.png", handlers.QR(app))

	// JSON endpoints (day list for the picker, scripted submissions)
	r.Group(func(api chi.Router) {
		origins := opts.AllowedOrigins
		if len(origins) == 0 {
			origins = []string{"*"}
		}
		api.Use(cors.Handler(cors.Options{
			AllowedOrigins:   origins,
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type"},
			AllowCredentials: false,
			MaxAge:           300,
		}))
		api.Get("/days", handlers.Days)
		api.Post("/api/students", handlers.APISubmit(app))
	})

	r.Route("/admin", func(ar chi.Router) {
		ar.Get("/login", handlers.AdminLoginForm(loginView))
		ar.Post("/login", handlers.AdminLoginSubmit(app))
		ar.Post("/logout", handlers.AdminLogout(app))

		ar.Group(func(ag chi.Router) {
			ag.Use(handlers.RequireAdmin(app))
			ag.Get("/students", handlers.AdminStudents(studentsView, app))
			ag.Get("/students.csv", handlers.AdminStudentsCSV(app))
		})
	})

	return r
}

func mustParseLayouts() *template.Template {
	funcs := template.FuncMap{
		"year": func() string { return time.Now().Format("2006") },
	}
	p := template.New("").Funcs(funcs)
	return template.Must(p.ParseFS(templateFS, "templates/layouts/*.tmpl"))
}

// page clones the layouts and adds one page template.
func page(base *template.Template, file string) *template.Template {
	view := template.Must(base.Clone())
	return template.Must(view.ParseFS(templateFS, file))
}
