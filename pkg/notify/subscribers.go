// Package notify delivers digests to email subscribers and chat webhooks and keeps the subscriber list.
package notify

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/go-pkgz/lgr"
	"github.com/go-playground/validator/v10"
)

var emailValidator = validator.New()

// SubscriberStore is a set of subscriber emails persisted as a line-delimited file.
// Every mutation and its save happen under one lock.
type SubscriberStore struct {
	path string

	mu     sync.Mutex
	emails map[string]struct{}
}

// NewSubscriberStore loads subscribers from path. A missing file means no subscribers,
// an empty path keeps the list in memory only.
func NewSubscriberStore(path string) (*SubscriberStore, error) {
	res := &SubscriberStore{path: path, emails: map[string]struct{}{}}
	if path == "" {
		return res, nil
	}

	fh, err := os.Open(path) //nolint:gosec // path comes from config
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			lgr.Printf("[INFO] no subscribers file %s, starting with empty list", path)
			return res, nil
		}
		return nil, fmt.Errorf("open subscribers file: %w", err)
	}
	defer fh.Close()

	scanner := bufio.NewScanner(fh)
	for line := 1; scanner.Scan(); line++ {
		if strings.TrimSpace(scanner.Text()) == "" {
			continue
		}
		email, err := ValidateEmail(scanner.Text())
		if err != nil {
			lgr.Printf("[WARN] skip subscriber at %s:%d, %v", path, line, err)
			continue
		}
		res.emails[email] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read subscribers file: %w", err)
	}
	lgr.Printf("[INFO] loaded %d subscribers", len(res.emails))
	return res, nil
}

// Add subscribes email, false means it was already subscribed
func (s *SubscriberStore) Add(_ context.Context, email string) (bool, error) {
	email, err := ValidateEmail(email)
	if err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.emails[email]; ok {
		return false, nil
	}
	s.emails[email] = struct{}{}
	if err := s.save(); err != nil {
		delete(s.emails, email)
		return false, err
	}
	return true, nil
}

// Remove unsubscribes email, false means it wasn't subscribed
func (s *SubscriberStore) Remove(_ context.Context, email string) (bool, error) {
	email = NormalizeEmail(email)

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.emails[email]; !ok {
		return false, nil
	}
	delete(s.emails, email)
	if err := s.save(); err != nil {
		s.emails[email] = struct{}{}
		return false, err
	}
	return true, nil
}

// List returns subscribers sorted
func (s *SubscriberStore) List(context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sorted(), nil
}

// Count returns the number of subscribers
func (s *SubscriberStore) Count(context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.emails), nil
}

func (s *SubscriberStore) sorted() []string {
	res := make([]string, 0, len(s.emails))
	for email := range s.emails {
		res = append(res, email)
	}
	sort.Strings(res)
	return res
}

// save writes all subscribers to a temp file and renames it over the list, caller holds the lock
func (s *SubscriberStore) save() error {
	if s.path == "" {
		return nil
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create subscribers temp file: %w", err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck // no-op after rename

	w := bufio.NewWriter(tmp)
	for _, email := range s.sorted() {
		if _, err := w.WriteString(email + "\n"); err != nil {
			_ = tmp.Close()
			return fmt.Errorf("write subscribers: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("flush subscribers: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close subscribers temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("save subscribers: %w", err)
	}
	return nil
}

// NormalizeEmail trims and lowercases an address, stores keep emails in this form
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateEmail normalizes email and checks it is a well-formed address
func ValidateEmail(email string) (string, error) {
	email = NormalizeEmail(email)
	if err := emailValidator.Var(email, "required,email"); err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidEmail, email)
	}
	return email, nil
}
