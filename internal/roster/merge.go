package roster

import (
	"github.com/julianstephens/roster/internal/models"
	"github.com/julianstephens/roster/internal/validation"
)

// MergeImported overlays imported cells onto the current grid as one undo
// step. Conflicting duplicates inside the import are reported, never
// blocking; the last imported value at an address wins. Addresses the grid
// does not hold yet are added when they name a loaded employee and week,
// anything else is dropped. Imported values that land on locked holidays
// are overwritten by the lock afterwards.
func (r *Roster) MergeImported(imported []models.Cell) []validation.Conflict {
	conflicts := validation.DetectConflicts(imported)
	if len(imported) == 0 {
		return conflicts
	}

	merged := append(r.grid.Cells(), imported...)
	r.ReplaceAllCells(merged)
	return conflicts
}
