package notify

import (
	"context"
	"fmt"
	"html"
	"sort"
	"strings"
	"time"

	"github.com/lojf/regform/internal/logger"
	"github.com/lojf/regform/internal/models"
)

// Lister reads stored students.
type Lister interface {
	List(ctx context.Context) ([]models.Student, error)
}

// StartDigestLoop sends a daily summary of the last 24h of registrations at
// the wall-clock time at ("HH:MM") in loc. It returns when ctx is done.
func StartDigestLoop(ctx context.Context, c *Client, src Lister, at string, loc *time.Location) error {
	clock, err := time.Parse("15:04", at)
	if err != nil {
		return fmt.Errorf("digest time %q: %w", at, err)
	}
	go func() {
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				tick := now.In(loc).Truncate(time.Minute)
				if !dueAt(tick, clock.Hour(), clock.Minute()) {
					continue
				}
				if err := sendDigest(ctx, c, src, tick); err != nil {
					logger.Warn().Err(err).Msg("telegram digest failed")
				}
			}
		}
	}()
	return nil
}

// dueAt reports whether tick falls on hh:mm. One tick per minute, so each
// day matches exactly once.
func dueAt(tick time.Time, hh, mm int) bool {
	return tick.Hour() == hh && tick.Minute() == mm
}

func sendDigest(ctx context.Context, c *Client, src Lister, to time.Time) error {
	list, err := src.List(ctx)
	if err != nil {
		return err
	}
	return c.SendMessage(DigestText(list, to.Add(-24*time.Hour), to))
}

// DigestText summarises the students created in [from, to), per department.
func DigestText(list []models.Student, from, to time.Time) string {
	perDept := map[string]int{}
	total := 0
	for _, s := range list {
		if s.CreatedAt.Before(from) || !s.CreatedAt.Before(to) {
			continue
		}
		perDept[s.Department]++
		total++
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📋 Registrations until %s: <b>%d</b>", to.Format("Mon, 02 Jan 2006 15:04"), total)
	depts := make([]string, 0, len(perDept))
	for d := range perDept {
		depts = append(depts, d)
	}
	sort.Strings(depts)
	for _, d := range depts {
		fmt.Fprintf(&b, "\n%s: %d", html.EscapeString(d), perDept[d])
	}
	return b.String()
}
