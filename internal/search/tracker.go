// Package search tracks in-flight searches so that a late response can never
// overwrite the output of a newer search of the same kind.
package search

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Kind names a search flow
type Kind string

// Search kinds
const (
	KindNutrition    Kind = "nutrition"
	KindAutocomplete Kind = "autocomplete"
	KindRecommend    Kind = "recommend"
	KindFilter       Kind = "filter"
)

// Headers exchanged with the browser. The client numbers its searches with
// SeqHeader within the page load named by PageHeader; a superseded response is
// marked with SupersededHeader.
const (
	SeqHeader        = "X-Search-Seq"
	PageHeader       = "X-Search-Page"
	SupersededHeader = "X-Search-Superseded"
)

// DefaultRetention is how long an idle search entry is kept. It must outlast the
// upstream timeout so a late, older request of the same page is still rejected.
const DefaultRetention = 5 * time.Minute

// ErrStale is returned when a search was superseded by a newer one
var ErrStale = errors.New("search superseded")

type key struct {
	session string
	page    string
	kind    Kind
}

type inflight struct {
	token   string
	seq     int64
	cancel  context.CancelFunc
	touched time.Time
}

// Token identifies one started search
type Token struct {
	ID      string
	Session string
	Page    string
	Kind    Kind
	Seq     int64
}

func (tok Token) key() key {
	return key{session: tok.Session, page: tok.Page, kind: tok.Kind}
}

// Tracker holds the current search per (session, page load, kind). Entries idle
// for longer than the retention period are dropped.
type Tracker struct {
	mu        sync.Mutex
	current   map[key]*inflight
	retain    time.Duration
	now       func() time.Time
	lastSweep time.Time
}

// NewTracker creates an empty tracker keeping idle entries for DefaultRetention
func NewTracker() *Tracker {
	return &Tracker{
		current: make(map[key]*inflight),
		retain:  DefaultRetention,
		now:     time.Now,
	}
}

// Begin starts a search and cancels the previous one of the same kind for the
// session's page load. seq is the client's sequence number within that page
// load, 0 when the client sent none; a seq lower than the newest one already
// seen is rejected with ErrStale. The returned context must be used for the
// upstream call.
func (t *Tracker) Begin(ctx context.Context, session, page string, kind Kind, seq int64) (context.Context, Token, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	t.sweep(now)

	k := key{session: session, page: page, kind: kind}
	prev := t.current[k]

	if prev != nil && seq > 0 && seq < prev.seq {
		return nil, Token{}, ErrStale
	}
	if prev != nil {
		prev.cancel()
		if seq == 0 {
			seq = prev.seq
		}
	}

	searchCtx, cancel := context.WithCancel(ctx)
	tok := Token{
		ID:      uuid.NewString(),
		Session: session,
		Page:    page,
		Kind:    kind,
		Seq:     seq,
	}
	t.current[k] = &inflight{token: tok.ID, seq: seq, cancel: cancel, touched: now}

	return searchCtx, tok, nil
}

// IsCurrent reports whether tok is still the newest search of its kind
func (t *Tracker) IsCurrent(tok Token) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	cur := t.current[tok.key()]
	return cur != nil && cur.token == tok.ID
}

// Finish releases tok's context. It returns ErrStale when a newer search of the
// same kind started meanwhile, in which case the result must be discarded.
// The newest seq is remembered after Finish, until the entry expires, so older
// client requests of the same page load stay rejected.
func (t *Tracker) Finish(tok Token) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	cur := t.current[tok.key()]
	if cur == nil || cur.token != tok.ID {
		return ErrStale
	}
	cur.cancel()
	cur.cancel = func() {}
	cur.touched = t.now()
	return nil
}

// sweep drops entries idle for longer than the retention period. It walks the
// map at most once per period.
func (t *Tracker) sweep(now time.Time) {
	if t.retain <= 0 || now.Sub(t.lastSweep) < t.retain {
		return
	}
	t.lastSweep = now

	for k, cur := range t.current {
		if now.Sub(cur.touched) >= t.retain {
			cur.cancel()
			delete(t.current, k)
		}
	}
}

// Len returns the number of tracked entries
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.current)
}
