package cli

import (
	"errors"
	"fmt"

	"github.com/julianstephens/roster/internal/storage"
	"github.com/julianstephens/roster/internal/validation"
)

type ValidateCmd struct {
	Strict bool `help:"Exit with an error when problems are found."`
}

func (cmd *ValidateCmd) Run(ctx *Context) error {
	snapshot, err := ctx.Store.Load()
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return errors.New("no roster stored yet, run 'roster init' first")
		}
		return fmt.Errorf("failed to load storage: %w", err)
	}

	ctx.println("Validating roster...")
	result := validation.ValidateSnapshot(snapshot)
	result.Conflicts = append(result.Conflicts, validation.DetectConflicts(snapshot.Cells)...)

	ctx.println()
	ctx.println(result.FormatReport())

	if cmd.Strict && result.HasConflicts() {
		return fmt.Errorf("%d problem(s) found", len(result.Conflicts))
	}
	return nil
}
