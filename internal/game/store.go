package game

import "sync"

// Store holds every currently-active session, keyed by room id. A room id is
// present at most once at any instant: sessions are registered on challenge
// acceptance and removed atomically when a game ends.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

// NewStore returns an empty in-memory session directory.
func NewStore() *Store {
	return &Store{
		sessions: make(map[string]*Session),
	}
}

// Register stores the session under its room id.
func (s *Store) Register(sess *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.RoomID] = sess
}

// Remove deletes the session for roomID, if present.
func (s *Store) Remove(roomID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, roomID)
}

// Get retrieves a session if it exists.
func (s *Store) Get(roomID string) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[roomID]
	return sess, ok
}

// FindByParticipant returns the session userID plays in, if any. Linear scan;
// the directory holds at most a handful of concurrent games. A user should
// never participate in more than one session, but if that invariant is ever
// broken elsewhere the first match wins.
func (s *Store) FindByParticipant(userID int64) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sess := range s.sessions {
		if sess.HasParticipant(userID) {
			return sess, true
		}
	}
	return nil, false
}

// Occupancy returns a userID -> roomID view of every participant in every
// live session, used to annotate presence snapshots.
func (s *Store) Occupancy() map[int64]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	occ := make(map[int64]string, len(s.sessions)*2)
	for rid, sess := range s.sessions {
		occ[sess.BlackID] = rid
		occ[sess.WhiteID] = rid
	}
	return occ
}
