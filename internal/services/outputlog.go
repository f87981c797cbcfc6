package services

import (
	"sync"
	"time"
)

// LineWriter receives the summary line of each accepted submission.
type LineWriter interface {
	Append(line string)
}

// OutputLog is the append-only list of accepted records shown under the form.
type OutputLog struct {
	mu    sync.Mutex
	lines []string
}

func (l *OutputLog) Append(line string) {
	l.mu.Lock()
	l.lines = append(l.lines, line)
	l.mu.Unlock()
}

// Lines returns a copy of the log in append order.
func (l *OutputLog) Lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.lines...)
}

const (
	DefaultMaxSessions = 1000
	DefaultSessionTTL  = 24 * time.Hour
)

// LogBook keeps one OutputLog per browser session. A session gets a log only
// once a line is written to it. Logs idle longer than the TTL are dropped,
// and past the size limit the least recently used one goes first.
type LogBook struct {
	mu   sync.Mutex
	logs map[string]*bookEntry
	max  int
	ttl  time.Duration
	now  func() time.Time
}

type bookEntry struct {
	log  *OutputLog
	used time.Time
}

type LogBookOption func(*LogBook)

func WithMaxSessions(n int) LogBookOption {
	return func(b *LogBook) { b.max = n }
}

func WithSessionTTL(d time.Duration) LogBookOption {
	return func(b *LogBook) { b.ttl = d }
}

// WithBookClock replaces time.Now for expiry.
func WithBookClock(now func() time.Time) LogBookOption {
	return func(b *LogBook) { b.now = now }
}

func NewLogBook(opts ...LogBookOption) *LogBook {
	b := &LogBook{
		logs: map[string]*bookEntry{},
		max:  DefaultMaxSessions,
		ttl:  DefaultSessionTTL,
		now:  time.Now,
	}
	for _, o := range opts {
		o(b)
	}
	return b
}

// Lines returns the session's lines, or nil when it has none.
func (b *LogBook) Lines(id string) []string {
	b.mu.Lock()
	e, ok := b.logs[id]
	if ok && b.expired(e, b.now()) {
		delete(b.logs, id)
		ok = false
	}
	if ok {
		e.used = b.now()
	}
	b.mu.Unlock()
	if !ok {
		return nil
	}
	return e.log.Lines()
}

// Writer returns a LineWriter for the session that creates its log on the
// first Append.
func (b *LogBook) Writer(id string) LineWriter {
	return sessionWriter{book: b, id: id}
}

// Len reports how many sessions currently hold a log.
func (b *LogBook) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.logs)
}

type sessionWriter struct {
	book *LogBook
	id   string
}

func (w sessionWriter) Append(line string) {
	w.book.session(w.id).Append(line)
}

func (b *LogBook) session(id string) *OutputLog {
	b.mu.Lock()
	defer b.mu.Unlock()
	now := b.now()
	if e, ok := b.logs[id]; ok && !b.expired(e, now) {
		e.used = now
		return e.log
	}
	b.evict(now)
	e := &bookEntry{log: &OutputLog{}, used: now}
	b.logs[id] = e
	return e.log
}

func (b *LogBook) expired(e *bookEntry, now time.Time) bool {
	return b.ttl > 0 && now.Sub(e.used) > b.ttl
}

// evict drops expired logs, then the least recently used ones until there
// is room for one more. Caller holds b.mu.
func (b *LogBook) evict(now time.Time) {
	for id, e := range b.logs {
		if b.expired(e, now) {
			delete(b.logs, id)
		}
	}
	for b.max > 0 && len(b.logs) >= b.max {
		var oldest string
		var at time.Time
		first := true
		for id, e := range b.logs {
			if first || e.used.Before(at) {
				oldest, at, first = id, e.used, false
			}
		}
		delete(b.logs, oldest)
	}
}
