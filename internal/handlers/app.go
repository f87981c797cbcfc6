package handlers

import (
	"context"
	"net/http"

	"github.com/lojf/regform/internal/models"
	svc "github.com/lojf/regform/internal/services"
)

// Roster reads stored students for the admin pages and ID slips.
type Roster interface {
	List(ctx context.Context) ([]models.Student, error)
	Get(ctx context.Context, id string) (models.Student, error)
}

// App bundles what the handlers need.
type App struct {
	Reg           *svc.Registration
	Logs          *svc.LogBook
	Roster        Roster
	Admins        *AdminSessions
	MinBirthYear  int
	AdminPassword string
}

func Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}
