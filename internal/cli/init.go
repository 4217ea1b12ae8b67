package cli

import (
	"errors"
	"fmt"
	"os"
)

var errNoActiveHabit = errors.New("no active habit; add one with 'habitflow habit add'")

type InitCmd struct {
	Force bool `help:"Force reset by deleting existing storage before initialization."`
}

func (c *InitCmd) Run(ctx *Context) error {
	if c.Force {
		path := ctx.Store.Path()
		if _, err := os.Stat(path); err == nil {
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing storage: %w", err)
			}
			if err := os.Remove(path); err != nil {
				return fmt.Errorf("failed to delete existing storage: %w", err)
			}
			fmt.Printf("Deleted existing storage at: %s\n", path)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing storage: %w", err)
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}

	// First-run seeding is an explicit startup step, never a read side effect
	if err := ctx.Registry.EnsureDefaults(); err != nil {
		return err
	}

	fmt.Printf("Initialized habitflow storage at: %s\n", ctx.Store.Path())
	return nil
}
