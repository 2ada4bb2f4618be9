// Package auth keeps user accounts and the current session in a bbolt file.
//
// Passwords are stored and compared as given. The session record never
// carries a password.
package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	bolt "go.etcd.io/bbolt"
	"go.uber.org/zap"
)

// MinPasswordLength is the shortest password Register accepts.
const MinPasswordLength = 6

var (
	ErrMissingFields      = errors.New("all fields are required")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrPasswordTooShort   = fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	ErrUsernameTaken      = errors.New("username is already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

var (
	bucketUsers   = []byte("users")
	bucketSession = []byte("session")
	keyCurrent    = []byte("current")
)

// User is an account as stored in the users bucket.
type User struct {
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Password string `json:"password"`
}

// Session is the logged-in user.
type Session struct {
	Username string    `json:"username"`
	FullName string    `json:"full_name"`
	Since    time.Time `json:"since"`
}

// Registration is the register form as entered.
type Registration struct {
	Username        string
	FullName        string
	Password        string
	ConfirmPassword string
}

// Validate applies the form rules in the order the user sees them.
func (r Registration) Validate() error {
	if strings.TrimSpace(r.Username) == "" || strings.TrimSpace(r.FullName) == "" ||
		r.Password == "" || r.ConfirmPassword == "" {
		return ErrMissingFields
	}
	if r.Password != r.ConfirmPassword {
		return ErrPasswordMismatch
	}
	if len([]rune(r.Password)) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	return nil
}

type Store struct {
	db  *bolt.DB
	log *zap.Logger
}

// Open opens or creates the auth database at path.
func Open(path string, log *zap.Logger) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create auth directory: %w", err)
		}
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("open auth database: %w", err)
	}

	if err := db.Update(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{bucketUsers, bucketSession} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return fmt.Errorf("create bucket %s: %w", name, err)
			}
		}
		return nil
	}); err != nil {
		db.Close()
		return nil, err
	}

	if log == nil {
		log = zap.NewNop()
	}
	return &Store{db: db, log: log}, nil
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Register creates an account and logs it in.
func (s *Store) Register(r Registration) (*Session, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	u := User{
		Username: strings.TrimSpace(r.Username),
		FullName: strings.TrimSpace(r.FullName),
		Password: r.Password,
	}

	var sess *Session
	err := s.db.Update(func(tx *bolt.Tx) error {
		users := tx.Bucket(bucketUsers)
		if users.Get([]byte(u.Username)) != nil {
			return ErrUsernameTaken
		}
		data, err := json.Marshal(u)
		if err != nil {
			return fmt.Errorf("marshal user: %w", err)
		}
		if err := users.Put([]byte(u.Username), data); err != nil {
			return fmt.Errorf("store user: %w", err)
		}
		sess, err = putSession(tx, u)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("user registered", zap.String("username", u.Username))
	return sess, nil
}

// Login checks the credentials and records the session.
func (s *Store) Login(username, password string) (*Session, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrMissingFields
	}

	var sess *Session
	err := s.db.Update(func(tx *bolt.Tx) error {
		data := tx.Bucket(bucketUsers).Get([]byte(username))
		if data == nil {
			return ErrInvalidCredentials
		}
		var u User
		if err := json.Unmarshal(data, &u); err != nil {
			return fmt.Errorf("unmarshal user: %w", err)
		}
		if u.Password != password {
			return ErrInvalidCredentials
		}
		var err error
		sess, err = putSession(tx, u)
		return err
	})
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			s.log.Warn("login failed", zap.String("username", username))
		}
		return nil, err
	}
	s.log.Info("user logged in", zap.String("username", username))
	return sess, nil
}

// Logout clears the session. Logging out without a session is not an error.
func (s *Store) Logout() error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketSession).Delete(keyCurrent)
	})
	if err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	s.log.Info("user logged out")
	return nil
}

// Current returns the stored session, or nil when nobody is logged in.
func (s *Store) Current() (*Session, error) {
	var sess *Session
	err := s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(bucketSession).Get(keyCurrent)
		if data == nil {
			return nil
		}
		sess = &Session{}
		return json.Unmarshal(data, sess)
	})
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}
	return sess, nil
}

func putSession(tx *bolt.Tx, u User) (*Session, error) {
	sess := &Session{Username: u.Username, FullName: u.FullName, Since: time.Now().UTC()}
	data, err := json.Marshal(sess)
	if err != nil {
		return nil, fmt.Errorf("marshal session: %w", err)
	}
	if err := tx.Bucket(bucketSession).Put(keyCurrent, data); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}
	return sess, nil
}
