package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/cricket-live/internal/domain/session"
)

type sessionRecord struct {
	ID       string    `json:"id,omitempty"`
	Username string    `json:"username"`
	Role     string    `json:"role"`
	SavedAt  time.Time `json:"savedAt"`
}

// SessionStore keeps the signed-in user in a small JSON file, so a terminal
// session survives restarts the way a browser tab keeps local storage.
type SessionStore struct {
	path string
	mu   sync.Mutex
	now  func() time.Time
}

func NewSessionStore(path string) (*SessionStore, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, crerr.New("session file path is required")
	}
	return &SessionStore{path: filepath.Clean(path), now: time.Now}, nil
}

func (s *SessionStore) Path() string {
	return s.path
}

func (s *SessionStore) Load(_ context.Context) (session.User, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return session.User{}, false, nil
		}
		return session.User{}, false, fmt.Errorf("read session file: %w", err)
	}
	if len(strings.TrimSpace(string(raw))) == 0 {
		return session.User{}, false, nil
	}

	var record sessionRecord
	if err := sonic.Unmarshal(raw, &record); err != nil {
		return session.User{}, false, fmt.Errorf("decode session file %s: %w", s.path, err)
	}
	if strings.TrimSpace(record.Username) == "" {
		return session.User{}, false, nil
	}

	return session.User{
		ID:       record.ID,
		Username: record.Username,
		Role:     session.NormalizeRole(record.Role),
	}, true, nil
}

func (s *SessionStore) Save(_ context.Context, user session.User) error {
	raw, err := sonic.Marshal(sessionRecord{
		ID:       user.ID,
		Username: user.Username,
		Role:     string(user.Role),
		SavedAt:  s.now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".session-*.json")
	if err != nil {
		return fmt.Errorf("create temp session file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(raw); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write session file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close session file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("replace session file: %w", err)
	}
	return nil
}

func (s *SessionStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove session file: %w", err)
	}
	return nil
}
