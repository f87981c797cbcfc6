package handlers

import (
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"github.com/lojf/regform/internal/apperrors"
	"github.com/lojf/regform/internal/logger"
	"github.com/lojf/regform/internal/models"
	svc "github.com/lojf/regform/internal/services"
)

type option struct {
	Value    string
	Label    string
	Selected bool
}

type formView struct {
	Title string
	Flash *Flash

	// Passwords are never echoed back into the page.
	FirstName    string
	LastName     string
	Email        string
	ConfirmEmail string

	Years       []option
	Months      []option
	Days        []option
	Genders     []option
	Departments []option

	Log    []string
	LastID string
}

func intOptions(vals []int, sel *int) []option {
	out := make([]option, 0, len(vals))
	for _, v := range vals {
		s := strconv.Itoa(v)
		out = append(out, option{Value: s, Label: s, Selected: sel != nil && *sel == v})
	}
	return out
}

func strOptions(vals []string, sel string) []option {
	out := make([]option, 0, len(vals))
	for _, v := range vals {
		out = append(out, option{Value: v, Label: v, Selected: v == sel})
	}
	return out
}

func (app *App) buildForm(in svc.RegistrationInput, log []string) formView {
	months := make([]int, 12)
	for i := range months {
		months[i] = i + 1
	}
	return formView{
		Title:        "New Student Registration Form",
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		ConfirmEmail: in.ConfirmEmail,
		Years:        intOptions(svc.YearOptions(app.MinBirthYear, app.Reg.Now()), in.Year),
		Months:       intOptions(months, in.Month),
		Days:         intOptions(svc.DayOptions(in.Year, in.Month), in.Day),
		Genders:      strOptions(models.Genders, in.Gender),
		Departments:  strOptions(models.Departments, in.Department),
		Log:          log,
	}
}

// optInt parses a selection; empty or malformed means unset.
func optInt(s string) *int {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &n
}

func inputFromForm(r *http.Request) svc.RegistrationInput {
	return svc.RegistrationInput{
		FirstName:       r.FormValue("first_name"),
		LastName:        r.FormValue("last_name"),
		Email:           r.FormValue("email"),
		ConfirmEmail:    r.FormValue("confirm_email"),
		Password:        r.FormValue("password"),
		ConfirmPassword: r.FormValue("confirm_password"),
		Year:            optInt(r.FormValue("year")),
		Month:           optInt(r.FormValue("month")),
		Day:             optInt(r.FormValue("day")),
		Gender:          r.FormValue("gender"),
		Department:      r.FormValue("department"),
	}
}

func render(w http.ResponseWriter, view *template.Template, name string, status int, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := view.ExecuteTemplate(w, name, data); err != nil {
		logger.Error().Err(err).Str("template", name).Msg("render failed")
	}
}

// GET /
func RegisterForm(view *template.Template, app *App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vm := app.buildForm(svc.RegistrationInput{}, app.Logs.Lines(sessionID(w, r)))
		vm.Flash = MakeFlash(r, "", "")
		render(w, view, "pages/register.tmpl", http.StatusOK, vm)
	}
}

// POST /register
func RegisterSubmit(view *template.Template, app *App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		sid := sessionID(w, r)
		in := inputFromForm(r)

		res, err := app.Reg.Submit(r.Context(), app.Logs.Writer(sid), in)

		// The form keeps its values after every outcome.
		vm := app.buildForm(in, app.Logs.Lines(sid))
		switch {
		case err == nil:
			vm.LastID = res.Record.ID
			vm.Flash = &Flash{Kind: "ok", Text: "Registered " + res.Record.ID + "."}
			render(w, view, "pages/register.tmpl", http.StatusOK, vm)
		case apperrors.IsInputError(err):
			vm.Flash = &Flash{Kind: "error", Text: apperrors.UserMessage(err)}
			render(w, view, "pages/register.tmpl", http.StatusUnprocessableEntity, vm)
		default:
			vm.Flash = &Flash{Kind: "error", Text: apperrors.UserMessage(err)}
			render(w, view, "pages/register.tmpl", http.StatusOK, vm)
		}
	}
}

// POST /clear resets every field. The output log and the store are untouched.
func ClearForm(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/?ok=cleared", http.StatusSeeOther)
}

// GET /days?year=2024&month=2
func Days(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	days := svc.DayOptions(optInt(q.Get("year")), optInt(q.Get("month")))
	writeJSON(w, http.StatusOK, days)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// POST /api/students
func APISubmit(app *App) http.HandlerFunc {
	type response struct {
		ID      string `json:"id,omitempty"`
		Summary string `json:"summary,omitempty"`
		Saved   bool   `json:"saved"`
		Error   string `json:"error,omitempty"`
		Message string `json:"message,omitempty"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var in svc.RegistrationInput
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&in); err != nil {
			writeJSON(w, http.StatusBadRequest, response{Error: "BadRequest", Message: "invalid json"})
			return
		}
		res, err := app.Reg.Submit(r.Context(), app.Logs.Writer(sessionID(w, r)), in)
		switch {
		case err == nil:
			writeJSON(w, http.StatusCreated, response{ID: res.Record.ID, Summary: res.LogLine, Saved: true})
		case apperrors.IsInputError(err):
			writeJSON(w, http.StatusUnprocessableEntity, response{Error: apperrors.Kind(err), Message: apperrors.UserMessage(err)})
		case errors.Is(err, apperrors.ErrSaveFailed):
			writeJSON(w, http.StatusInternalServerError, response{
				ID: res.Record.ID, Summary: res.LogLine, Error: apperrors.Kind(err), Message: apperrors.UserMessage(err),
			})
		default:
			writeJSON(w, http.StatusInternalServerError, response{Error: "Internal", Message: err.Error()})
		}
	}
}
