package session

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/th3funto/ninja-store/internal/pricing"
)

// Manager applies calculator edits to stored sessions. Every setter is a
// read-modify-write of the whole session.
type Manager struct {
	store    Store
	defaults Defaults
}

func NewManager(store Store, defaults Defaults) *Manager {
	return &Manager{store: store, defaults: defaults}
}

// Get returns the chat's session, or a fresh one when none is live.
func (m *Manager) Get(ctx context.Context, chatID int64) (Session, error) {
	sess, err := m.store.Get(ctx, chatID)
	if errors.Is(err, ErrNotFound) {
		return m.defaults.New(), nil
	}
	if err != nil {
		return Session{}, fmt.Errorf("store.Get failed: %w", err)
	}
	return sess, nil
}

func (m *Manager) update(ctx context.Context, chatID int64, apply func(*Session)) (Session, error) {
	sess, err := m.Get(ctx, chatID)
	if err != nil {
		return Session{}, err
	}
	apply(&sess)
	if err := m.store.Save(ctx, chatID, sess); err != nil {
		return Session{}, fmt.Errorf("store.Save failed: %w", err)
	}
	return sess, nil
}

// Reset replaces the chat's session with defaults.
func (m *Manager) Reset(ctx context.Context, chatID int64) (Session, error) {
	sess := m.defaults.New()
	if err := m.store.Save(ctx, chatID, sess); err != nil {
		return Session{}, fmt.Errorf("store.Save failed: %w", err)
	}
	return sess, nil
}

func (m *Manager) Clear(ctx context.Context, chatID int64) error {
	return m.store.Clear(ctx, chatID)
}

func (m *Manager) SetStep(ctx context.Context, chatID int64, step Step) (Session, error) {
	return m.update(ctx, chatID, func(s *Session) { s.Step = step })
}

// SetField stores text into the field step asks for and returns the
// chat to idle. Numeric text is kept verbatim; an unparsable value simply
// computes as zero.
func (m *Manager) SetField(ctx context.Context, chatID int64, step Step, text string) (Session, error) {
	text = strings.TrimSpace(text)
	return m.update(ctx, chatID, func(s *Session) {
		switch step {
		case StepProductName:
			s.ProductName = text
		case StepUSDPrice:
			s.Inputs.ForeignPrice = text
		case StepExchangeRate:
			s.Inputs.ExchangeRate = text
		case StepImportFee:
			s.Inputs.ImportFeePct = text
		case StepMargin:
			s.Inputs.MarginPct = text
		}
		s.Step = StepIdle
	})
}

func (m *Manager) ToggleRounding(ctx context.Context, chatID int64) (Session, error) {
	return m.update(ctx, chatID, func(s *Session) {
		s.Inputs.SmartRounding = !s.Inputs.SmartRounding
	})
}

// SetProfile selects a card profile; unknown ids are rejected before
// anything is stored.
func (m *Manager) SetProfile(ctx context.Context, chatID int64, id pricing.ProfileID) (Session, error) {
	if _, err := pricing.Profile(id); err != nil {
		return Session{}, err
	}
	return m.update(ctx, chatID, func(s *Session) { s.Profile = id })
}
