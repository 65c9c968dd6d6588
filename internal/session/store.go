package session

import (
	"sync"
	"unicode/utf8"

	"github.com/google/uuid"

	"nexprep/interview/internal/models"
)

// Store is the process-wide session registry. Sessions live for the process
// lifetime; persistence is deliberately out of scope. A user drives one
// session serially, so the store only guards the map itself; per-session
// mutation is single-writer by contract with the client.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewStore() *Store {
	return &Store{
		sessions: make(map[string]*Session),
	}
}

// Create registers a fresh session and returns its id.
func (st *Store) Create(cfg Config) *Session {
	resume := cfg.ResumeText
	if len(resume) > models.MaxResumeContextChars {
		// Back off to a rune boundary so the prompt never sees a split
		// multi-byte character.
		cut := models.MaxResumeContextChars
		for cut > 0 && !utf8.RuneStart(resume[cut]) {
			cut--
		}
		resume = resume[:cut]
	}

	sess := &Session{
		ID:             uuid.New().String(),
		TrackID:        cfg.TrackID,
		RoleID:         cfg.RoleID,
		QuinnMode:      cfg.QuinnMode,
		CompanyName:    cfg.CompanyName,
		IndustryID:     cfg.IndustryID,
		CompanySizeID:  cfg.CompanySizeID,
		ResumeContext:  resume,
		Policy:         cfg.Policy,
		TotalQuestions: cfg.Total,
		Bank:           cfg.Bank,
	}

	st.mu.Lock()
	st.sessions[sess.ID] = sess
	st.mu.Unlock()

	return sess
}

// Get looks up a session by id. Absence is a client error, never retried.
func (st *Store) Get(id string) (*Session, error) {
	st.mu.RLock()
	sess, ok := st.sessions[id]
	st.mu.RUnlock()

	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

// Size returns the number of live sessions.
func (st *Store) Size() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}
