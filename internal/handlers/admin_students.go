package handlers

import (
	"encoding/csv"
	"html/template"
	"net/http"
	"strings"

	"github.com/lojf/regform/internal/logger"
	"github.com/lojf/regform/internal/models"
)

type studentRow struct {
	ID         string
	Name       string
	Gender     string
	Department string
	DOB        string
	Email      string
	Registered string
}

func toRows(list []models.Student, q string) []studentRow {
	q = strings.ToLower(strings.TrimSpace(q))
	out := make([]studentRow, 0, len(list))
	for _, s := range list {
		name := s.FirstName + " " + s.LastName
		if q != "" &&
			!strings.Contains(strings.ToLower(name), q) &&
			!strings.Contains(strings.ToLower(s.Email), q) &&
			!strings.Contains(strings.ToLower(s.ID), q) &&
			!strings.EqualFold(s.Department, q) {
			continue
		}
		out = append(out, studentRow{
			ID:         s.ID,
			Name:       name,
			Gender:     s.Gender,
			Department: s.Department,
			DOB:        fmtISODate(s.DOB),
			Email:      s.Email,
			Registered: fmtDateTime(s.CreatedAt),
		})
	}
	return out
}

// GET /admin/students?q=
func AdminStudents(view *template.Template, app *App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query().Get("q")
		list, err := app.Roster.List(r.Context())
		if err != nil {
			logger.Error().Err(err).Msg("roster list failed")
			http.Error(w, "db error", http.StatusInternalServerError)
			return
		}
		render(w, view, "admin/students.tmpl", http.StatusOK, map[string]any{
			"Title": "Admin • Students",
			"Rows":  toRows(list, q),
			"Q":     q,
			"Total": len(list),
		})
	}
}

// GET /admin/students.csv?q=  (passwords are never exported)
func AdminStudentsCSV(app *App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := app.Roster.List(r.Context())
		if err != nil {
			logger.Error().Err(err).Msg("roster list failed")
			http.Error(w, "db error", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="students.csv"`)

		cw := csv.NewWriter(w)
		_ = cw.Write([]string{"ID", "Name", "Gender", "Department", "DOB", "Email", "Registered"})
		for _, row := range toRows(list, r.URL.Query().Get("q")) {
			_ = cw.Write([]string{row.ID, row.Name, row.Gender, row.Department, row.DOB, row.Email, row.Registered})
		}
		cw.Flush()
		if err := cw.Error(); err != nil {
			logger.Error().Err(err).Msg("csv write failed")
		}
	}
}
