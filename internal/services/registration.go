package services

import (
	"context"
	"fmt"
	"time"

	"github.com/lojf/regform/internal/apperrors"
	"github.com/lojf/regform/internal/events"
	"github.com/lojf/regform/internal/logger"
	"github.com/lojf/regform/internal/models"
)

// Registration runs a form submission: validate, number, echo, store.
type Registration struct {
	store Store
	now   func() time.Time
	hash  PasswordHasher
}

type Option func(*Registration)

// WithClock replaces time.Now, e.g. to pin "today" in a time zone.
func WithClock(now func() time.Time) Option {
	return func(r *Registration) { r.now = now }
}

// WithHasher sets how passwords are stored. Default is Plaintext.
func WithHasher(h PasswordHasher) Option {
	return func(r *Registration) { r.hash = h }
}

func NewRegistration(store Store, opts ...Option) *Registration {
	r := &Registration{store: store, now: time.Now, hash: Plaintext}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Result describes an accepted submission.
type Result struct {
	Record  models.StudentRecord // as validated, password as entered
	LogLine string
	Saved   bool
}

// Now returns the service's idea of the current time.
func (r *Registration) Now() time.Time { return r.now() }

// Submit validates in and, when it passes, assigns the next id, appends the
// summary line to out and inserts the record. Validation failures return
// the input error and touch neither out nor the store. A failed insert
// returns ErrSaveFailed; the log line has already been appended by then.
func (r *Registration) Submit(ctx context.Context, out LineWriter, in RegistrationInput) (Result, error) {
	now := r.now()

	rec, err := Validate(in, now)
	if err != nil {
		logger.Debug().Err(err).Msg("registration rejected")
		return Result{}, err
	}

	rec.ID = GenerateID(ctx, r.store, now.Year(), func(err error) {
		logger.Error().Err(err).Int("year", now.Year()).Msg("count failed, numbering from 1")
	})

	res := Result{Record: rec, LogLine: rec.Summary()}
	if out != nil {
		out.Append(res.LogLine)
	}

	stored := rec
	if stored.Password, err = r.hash(rec.Password); err != nil {
		logger.Error().Err(err).Str("id", rec.ID).Msg("password hashing failed")
		return res, fmt.Errorf("%w: %w", apperrors.ErrSaveFailed, err)
	}
	if err := r.store.Insert(ctx, stored); err != nil {
		logger.Error().Err(err).Str("id", rec.ID).Msg("student insert failed")
		return res, fmt.Errorf("%w: %w", apperrors.ErrSaveFailed, err)
	}

	res.Saved = true
	logger.Info().Str("id", rec.ID).Str("department", rec.Department).Msg("student registered")
	if events.OnRegistered != nil {
		events.OnRegistered(stored)
	}
	return res, nil
}
