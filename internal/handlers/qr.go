package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/lojf/regform/internal/apperrors"
)

// GET /students/{id}/qr.png renders the student id as a QR code for the ID slip.
func QR(app *App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if id == "" {
			http.NotFound(w, r)
			return
		}
		st, err := app.Roster.Get(r.Context(), id)
		if errors.Is(err, apperrors.ErrStudentNotFound) {
			http.NotFound(w, r)
			return
		}
		if err != nil {
			http.Error(w, "db error", http.StatusInternalServerError)
			return
		}

		png, err := qrcode.Encode(st.ID, qrcode.Medium, 256)
		if err != nil {
			http.Error(w, "failed to generate qr", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(png)
	}
}
