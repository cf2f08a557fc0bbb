package site

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/csheth/buildvision/internal/atlas"
	"github.com/csheth/buildvision/internal/conversation"
)

// errSessionsFull is returned when every slot holds a session with a turn
// in flight, so none can be evicted for a new visitor.
var errSessionsFull = errors.New("site: demo session limit reached")

// session is one visitor's demo conversation.
type session struct {
	id       string
	ctrl     *conversation.Controller
	lastSeen time.Time
	cancel   func()
}

// sessionStore keeps a controller per visitor. Sessions are only created by
// visitors who chat. Idle sessions are swept at most once per sweepEvery and
// evicted oldest-first once the store is full; a session with a request in
// flight is never dropped.
type sessionStore struct {
	client     atlas.Client
	ttl        time.Duration
	limit      int
	sweepEvery time.Duration
	now        func() time.Time
	log        *zap.Logger

	mu        sync.Mutex
	sessions  map[string]*session
	lastSweep time.Time
}

func newSessionStore(client atlas.Client, ttl time.Duration, limit int, log *zap.Logger) *sessionStore {
	sweepEvery := ttl / 2
	if sweepEvery > time.Minute {
		sweepEvery = time.Minute
	}
	return &sessionStore{
		client:     client,
		ttl:        ttl,
		limit:      limit,
		sweepEvery: sweepEvery,
		now:        time.Now,
		log:        log,
		sessions:   map[string]*session{},
	}
}

// lookup returns the live session for id without creating one.
func (s *sessionStore) lookup(id string) (*session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.maybeSweepLocked()
	sess, ok := s.liveLocked(id)
	if ok {
		sess.lastSeen = s.now()
	}
	return sess, ok
}

// get returns the session for id, creating one under a fresh id when it is
// unknown or expired. The bool reports whether a new session was made.
func (s *sessionStore) get(id string) (*session, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.maybeSweepLocked()
	if sess, ok := s.liveLocked(id); ok {
		sess.lastSeen = s.now()
		return sess, false, nil
	}
	sess, err := s.createLocked()
	if err != nil {
		return nil, false, err
	}
	return sess, true, nil
}

// drop discards the session for id, if any.
func (s *sessionStore) drop(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[id]; ok {
		s.removeLocked(sess)
	}
}

func (s *sessionStore) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// liveLocked finds id and drops it on the spot when it has gone idle past
// the ttl, so expiry does not depend on the sweep cadence.
func (s *sessionStore) liveLocked(id string) (*session, bool) {
	sess, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	if s.expiredLocked(sess, s.now()) {
		s.removeLocked(sess)
		return nil, false
	}
	return sess, true
}

func (s *sessionStore) createLocked() (*session, error) {
	if s.limit > 0 && len(s.sessions) >= s.limit {
		s.sweepLocked()
		if len(s.sessions) >= s.limit && !s.evictOldestLocked() {
			return nil, errSessionsFull
		}
	}
	id := uuid.NewString()
	log := s.log.With(zap.String("session", id))
	sess := &session{
		id:       id,
		ctrl:     conversation.New(s.client, conversation.WithLogger(log)),
		lastSeen: s.now(),
	}
	// Activity on the conversation itself keeps the session alive, so a
	// slow answer does not expire the visitor mid-turn.
	sess.cancel = sess.ctrl.Subscribe(func(conversation.State) {
		s.touch(id)
	})
	s.sessions[id] = sess
	log.Debug("demo session created")
	return sess, nil
}

func (s *sessionStore) touch(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[id]; ok {
		sess.lastSeen = s.now()
	}
}

func (s *sessionStore) expiredLocked(sess *session, now time.Time) bool {
	return s.ttl > 0 && now.Sub(sess.lastSeen) >= s.ttl && !sess.ctrl.Pending()
}

func (s *sessionStore) removeLocked(sess *session) {
	sess.cancel()
	delete(s.sessions, sess.id)
}

func (s *sessionStore) maybeSweepLocked() {
	if s.now().Sub(s.lastSweep) < s.sweepEvery {
		return
	}
	s.sweepLocked()
}

func (s *sessionStore) sweepLocked() {
	now := s.now()
	s.lastSweep = now
	for _, sess := range s.sessions {
		if !s.expiredLocked(sess, now) {
			continue
		}
		s.removeLocked(sess)
		s.log.Debug("demo session expired", zap.String("session", sess.id))
	}
}

// evictOldestLocked drops the least recently seen idle session.
func (s *sessionStore) evictOldestLocked() bool {
	var oldest *session
	for _, sess := range s.sessions {
		if sess.ctrl.Pending() {
			continue
		}
		if oldest == nil || sess.lastSeen.Before(oldest.lastSeen) {
			oldest = sess
		}
	}
	if oldest == nil {
		return false
	}
	s.removeLocked(oldest)
	s.log.Debug("demo session evicted", zap.String("session", oldest.id))
	return true
}
