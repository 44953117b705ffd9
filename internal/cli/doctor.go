package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/julianstephens/roster/internal/constants"
	"github.com/julianstephens/roster/internal/holidays"
	"github.com/julianstephens/roster/internal/models"
	"github.com/julianstephens/roster/internal/storage/sqlite"
	"github.com/julianstephens/roster/internal/validation"
)

type DoctorCmd struct{}

type schemaVersioner interface {
	SchemaVersion() (current, latest int, err error)
}

func (cmd *DoctorCmd) Run(ctx *Context) error {
	ctx.println("Running diagnostics...")
	ctx.println()

	hasError := false
	fail := func(name string, err error) {
		ctx.printf("❌ %s: FAIL\n", name)
		ctx.printf("   Error: %v\n", err)
		hasError = true
	}

	snapshot, loadErr := checkDBReachable(ctx)
	if loadErr != nil {
		fail("Database reachable", loadErr)
	} else {
		ctx.println("✓ Database reachable: OK")
	}

	if err := checkSchemaVersion(ctx); err != nil {
		fail("Schema version", err)
	} else {
		ctx.println("✓ Schema version: OK")
	}

	if err := checkBackupsPresent(ctx); err != nil {
		ctx.println("⚠ Backups present: WARNING")
		ctx.printf("   %v\n", err)
	} else {
		ctx.println("✓ Backups present: OK")
	}

	if loadErr == nil {
		result := validation.ValidateSnapshot(snapshot)
		if result.HasConflicts() {
			fail("Data validation", fmt.Errorf("%d problem(s), run 'roster validate' for details", len(result.Conflicts)))
		} else {
			ctx.println("✓ Data validation: OK")
		}
	} else {
		ctx.println("⊘ Data validation: SKIPPED (database not reachable)")
	}

	if err := checkHolidayProvider(ctx, snapshot); err != nil {
		ctx.println("⚠ Holiday source: WARNING")
		ctx.printf("   %v\n", err)
	} else {
		ctx.println("✓ Holiday source: OK")
	}

	if err := checkClockTimezone(ctx); err != nil {
		fail("Clock/timezone", err)
	} else {
		ctx.println("✓ Clock/timezone: OK")
	}

	ctx.println()
	if hasError {
		ctx.println("Diagnostics completed with errors.")
		return errors.New("one or more health checks failed")
	}
	ctx.println("All diagnostics passed!")
	return nil
}

func checkDBReachable(ctx *Context) (models.Snapshot, error) {
	if s, ok := ctx.Store.(*sqlite.Store); ok {
		if _, err := os.Stat(s.GetConfigPath()); err != nil {
			return models.Snapshot{}, fmt.Errorf("database file missing: %w", err)
		}
	}
	snapshot, err := ctx.Store.Load()
	if err != nil {
		return models.Snapshot{}, fmt.Errorf("failed to load database: %w", err)
	}
	if s, ok := ctx.Store.(*sqlite.Store); ok {
		db := s.GetDB()
		if db == nil {
			return models.Snapshot{}, errors.New("database connection is nil")
		}
		var result int
		if err := db.QueryRow("SELECT 1").Scan(&result); err != nil {
			return models.Snapshot{}, fmt.Errorf("failed to query database: %w", err)
		}
	}
	return snapshot, nil
}

func checkSchemaVersion(ctx *Context) error {
	v, ok := ctx.Store.(schemaVersioner)
	if !ok {
		// JSON files carry their own envelope version.
		return nil
	}
	current, latest, err := v.SchemaVersion()
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if current > latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", current, latest)
	}
	if current < latest {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d (run 'roster migrate')", current, latest)
	}
	return nil
}

func checkBackupsPresent(ctx *Context) error {
	mgr, err := ctx.BackupManager()
	if err != nil {
		return err
	}
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return errors.New("no backups found - consider creating one with 'roster backup create'")
	}
	return nil
}

func checkHolidayProvider(ctx *Context, snapshot models.Snapshot) error {
	if ctx.Holidays == nil {
		return errors.New("no holiday source configured")
	}
	region := snapshot.Settings.Region
	if region == "" {
		region = constants.DefaultRegion
	}
	if !holidays.IsRegion(region) {
		return fmt.Errorf("%w: %q", holidays.ErrUnknownRegion, region)
	}
	c, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	list, err := ctx.Holidays.Holidays(c, region, []int{time.Now().Year()})
	if err != nil {
		return err
	}
	if len(list) == 0 {
		return fmt.Errorf("no holidays returned for %s", region)
	}
	return nil
}

func checkClockTimezone(ctx *Context) error {
	now := time.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	if _, offset := now.Zone(); offset == 0 && now.Location() == time.UTC {
		ctx.println("   Note: timezone is UTC")
	}
	return nil
}
