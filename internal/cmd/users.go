package cmd

import (
	"errors"
	"fmt"

	"gator/domain"
)

type RegisterCmd struct {
	Name string `arg:"" help:"User name."`
}

func (c *RegisterCmd) Run(s *State) error {
	st, err := s.Store()
	if err != nil {
		return err
	}
	user, err := st.CreateUser(s.Ctx, c.Name)
	if errors.Is(err, domain.ErrAlreadyExists) {
		return fmt.Errorf("user %q already exists", c.Name)
	}
	if err != nil {
		return fmt.Errorf("could not create user: %w", err)
	}
	if err := s.Config.SetUser(user.Name); err != nil {
		return err
	}

	fmt.Fprintf(s.Out, "User %q created\n", user.Name)
	fmt.Fprintf(s.Out, "* ID:      %s\n", user.ID)
	fmt.Fprintf(s.Out, "* Created: %s\n", user.CreatedAt.Format("2006-01-02 15:04"))
	return nil
}

type LoginCmd struct {
	Name string `arg:"" help:"User name."`
}

func (c *LoginCmd) Run(s *State) error {
	st, err := s.Store()
	if err != nil {
		return err
	}
	if _, err := st.GetUserByName(s.Ctx, c.Name); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("user %q does not exist", c.Name)
		}
		return fmt.Errorf("could not look up user: %w", err)
	}
	if err := s.Config.SetUser(c.Name); err != nil {
		return err
	}
	fmt.Fprintf(s.Out, "User set to %s\n", c.Name)
	return nil
}

type ResetCmd struct{}

func (c *ResetCmd) Run(s *State) error {
	st, err := s.Store()
	if err != nil {
		return err
	}
	n, err := st.DeleteAllUsers(s.Ctx)
	if err != nil {
		return fmt.Errorf("could not reset database: %w", err)
	}
	fmt.Fprintf(s.Out, "Database reset: %d users deleted\n", n)
	return nil
}

type UsersCmd struct{}

func (c *UsersCmd) Run(s *State) error {
	st, err := s.Store()
	if err != nil {
		return err
	}
	users, err := st.ListUsers(s.Ctx)
	if err != nil {
		return fmt.Errorf("could not list users: %w", err)
	}
	if len(users) == 0 {
		fmt.Fprintln(s.Out, "No users registered")
		return nil
	}
	for _, u := range users {
		if u.Name == s.Config.CurrentUserName {
			fmt.Fprintf(s.Out, "* %s (current)\n", u.Name)
			continue
		}
		fmt.Fprintf(s.Out, "* %s\n", u.Name)
	}
	return nil
}
