// Package tracker implements the user-facing operations on habits, todos,
// journal entries and daily health logs. Every mutation reads the whole
// collection, changes it, and writes it back in one call.
package tracker

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/julianstephens/girassol/internal/calendar"
	"github.com/julianstephens/girassol/internal/kvstore"
	"github.com/julianstephens/girassol/internal/utils"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrAmbiguous     = errors.New("ambiguous reference")
	ErrEmptyText     = errors.New("text cannot be empty")
	ErrInvalidDate   = errors.New("invalid date")
	ErrInvalidWeight = errors.New("weight must be positive")
)

// Service is the tracker's entry point. It is safe to share between the CLI
// and the reminder loop because every call is a single read-modify-write.
type Service struct {
	store *kvstore.Store
	cal   *calendar.Engine
	newID func() string
}

func New(store *kvstore.Store, cal *calendar.Engine) *Service {
	return &Service{
		store: store,
		cal:   cal,
		newID: func() string { return uuid.New().String() },
	}
}

// SetIDFunc overrides record id generation
func (s *Service) SetIDFunc(fn func() string) {
	s.newID = fn
}

func (s *Service) Store() *kvstore.Store { return s.store }

func (s *Service) Calendar() *calendar.Engine { return s.cal }

// resolve finds the index of the item ref names: an exact id, then a
// case-insensitive name, then a unique id prefix.
func resolve[T any](items []T, ref string, id, name func(T) string) (int, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return -1, fmt.Errorf("%w: empty reference", ErrNotFound)
	}
	for i, it := range items {
		if id(it) == ref {
			return i, nil
		}
	}

	match := -1
	for i, it := range items {
		if name != nil && strings.EqualFold(name(it), ref) {
			if match >= 0 {
				return -1, fmt.Errorf("%w: %q matches more than one item", ErrAmbiguous, ref)
			}
			match = i
		}
	}
	if match >= 0 {
		return match, nil
	}

	for i, it := range items {
		if strings.HasPrefix(id(it), ref) {
			if match >= 0 {
				return -1, fmt.Errorf("%w: %q matches more than one id", ErrAmbiguous, ref)
			}
			match = i
		}
	}
	if match < 0 {
		return -1, fmt.Errorf("%w: %q", ErrNotFound, ref)
	}
	return match, nil
}

// day returns today for an empty string and validates anything else
func (s *Service) day(d string) (string, error) {
	d = strings.TrimSpace(d)
	if d == "" {
		return s.cal.Today(), nil
	}
	if !utils.ValidateDate(d) {
		return "", fmt.Errorf("%w %q: expected YYYY-MM-DD", ErrInvalidDate, d)
	}
	return d, nil
}

// loadList reads a collection, never returning nil
func loadList[T any](s *Service, key kvstore.Key) []T {
	list := kvstore.Load(s.store, key, []T{})
	if list == nil {
		return []T{}
	}
	return list
}

func saveList[T any](s *Service, key kvstore.Key, list []T) {
	if list == nil {
		list = []T{}
	}
	kvstore.Save(s.store, key, list)
}
