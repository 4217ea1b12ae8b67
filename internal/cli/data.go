package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
)

type ExportCmd struct {
	Output string `short:"o" help:"Write the export to a file instead of stdout."`
}

func (c *ExportCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	data, err := ctx.Service.ExportHabits()
	if err != nil {
		return err
	}

	if c.Output == "" {
		fmt.Println(data)
		return nil
	}

	if err := os.WriteFile(c.Output, []byte(data), 0600); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}
	fmt.Printf("Exported habits to: %s\n", c.Output)
	return nil
}

type ImportCmd struct {
	File string `arg:"" help:"JSON file of habits to merge in." type:"existingfile"`
}

func (c *ImportCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	data, err := os.ReadFile(c.File)
	if err != nil {
		return fmt.Errorf("failed to read import file: %w", err)
	}

	if err := ctx.Service.ImportHabits(string(data)); err != nil {
		return err
	}

	fmt.Println("Import complete. Existing habits were kept; colliding names were skipped.")
	return nil
}

type ResetAllCmd struct {
	Yes bool `help:"Skip confirmation."`
}

func (c *ResetAllCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	if !c.Yes {
		confirmed := false
		prompt := huh.NewConfirm().
			Title("Delete every habit and every day entry?").
			Description("The storage file itself is kept. This cannot be undone.").
			Value(&confirmed)
		if err := prompt.Run(); err != nil {
			return err
		}
		if !confirmed {
			fmt.Println("Aborted.")
			return nil
		}
	}

	if err := ctx.Service.ResetAllData(); err != nil {
		return err
	}

	fmt.Println("All habit data cleared.")
	return nil
}
