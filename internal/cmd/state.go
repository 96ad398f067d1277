package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"gator/domain"
	"gator/internal/config"
)

// State is the session handed to every command: the loaded config, which
// also carries the current user, and a store opened on first use.
type State struct {
	Ctx    context.Context
	Config *config.Config
	Out    io.Writer

	open  func(ctx context.Context, cfg *config.Config) (domain.Store, error)
	store domain.Store
}

func (s *State) Store() (domain.Store, error) {
	if s.store != nil {
		return s.store, nil
	}
	st, err := s.open(s.Ctx, s.Config)
	if err != nil {
		return nil, err
	}
	s.store = st
	return st, nil
}

func (s *State) Close() error {
	if s.store == nil {
		return nil
	}
	err := s.store.Close()
	s.store = nil
	return err
}

// loggedIn resolves the current user and passes it to fn.
func (s *State) loggedIn(fn func(st domain.Store, user domain.User) error) error {
	name := s.Config.CurrentUserName
	if name == "" {
		return errors.New("no user is logged in; run `gator login <name>` first")
	}
	st, err := s.Store()
	if err != nil {
		return err
	}
	user, err := st.GetUserByName(s.Ctx, name)
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("current user %q not found; register or log in again", name)
	}
	if err != nil {
		return fmt.Errorf("could not load current user: %w", err)
	}
	return fn(st, user)
}
