package storage

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/roster/internal/calendar"
	"github.com/julianstephens/roster/internal/constants"
	"github.com/julianstephens/roster/internal/models"
)

// Dialect selects the placeholder style of a SQL backend.
type Dialect int

const (
	DialectSQLite Dialect = iota
	DialectPostgres
)

const (
	metaStartMonday = "start_monday_iso"
	metaUpdatedAt   = "updated_at"
)

// Rebind rewrites ? placeholders into $n for PostgreSQL.
func (d Dialect) Rebind(query string) string {
	if d != DialectPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// LoadSnapshot reads the roster tables shared by the SQL backends.
func LoadSnapshot(db *sql.DB, d Dialect) (models.Snapshot, error) {
	if db == nil {
		return models.Snapshot{}, ErrNotLoaded
	}

	var s models.Snapshot
	var err error

	if s.Employees, err = loadEmployees(db); err != nil {
		return models.Snapshot{}, err
	}
	if s.Weeks, err = loadWeeks(db); err != nil {
		return models.Snapshot{}, err
	}
	if s.Cells, err = loadCells(db); err != nil {
		return models.Snapshot{}, err
	}
	if s.Settings, err = loadSettings(db); err != nil {
		return models.Snapshot{}, err
	}

	meta, err := loadKeyValues(db, "roster_meta")
	if err != nil {
		return models.Snapshot{}, err
	}
	if len(s.Employees) == 0 && len(s.Weeks) == 0 && len(meta) == 0 {
		return models.Snapshot{}, ErrNotFound
	}

	s.CalendarBase.StartMondayISO = meta[metaStartMonday]
	if raw := meta[metaUpdatedAt]; raw != "" {
		if s.UpdatedAt, err = time.Parse(time.RFC3339Nano, raw); err != nil {
			return models.Snapshot{}, fmt.Errorf("%w: updated_at: %v", ErrMalformed, err)
		}
	}

	return s, nil
}

func loadEmployees(db *sql.DB) ([]models.Employee, error) {
	rows, err := db.Query("SELECT id, name FROM employees ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("failed to query employees: %w", err)
	}
	defer rows.Close()

	var out []models.Employee
	for rows.Next() {
		var e models.Employee
		if err := rows.Scan(&e.ID, &e.Name); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func loadWeeks(db *sql.DB) ([]models.Week, error) {
	rows, err := db.Query("SELECT id, iso_week, iso_year, start_date, end_date FROM weeks ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("failed to query weeks: %w", err)
	}
	defer rows.Close()

	var out []models.Week
	for rows.Next() {
		var w models.Week
		if err := rows.Scan(&w.ID, &w.ISOWeek, &w.ISOYear, &w.Start, &w.End); err != nil {
			return nil, fmt.Errorf("failed to scan week: %w", err)
		}
		start, err := calendar.ParseDate(w.Start)
		if err != nil {
			return nil, fmt.Errorf("%w: week %s: %v", ErrMalformed, w.ID, err)
		}
		w.Days = make([]models.WeekDay, 0, len(models.WeekdayLabels))
		for i, label := range models.WeekdayLabels {
			w.Days = append(w.Days, models.WeekDay{
				Label: label,
				Date:  calendar.FormatISO(start.AddDate(0, 0, i)),
			})
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

func loadCells(db *sql.DB) ([]models.Cell, error) {
	rows, err := db.Query("SELECT employee_id, week_id, day_index, value FROM cells ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("failed to query cells: %w", err)
	}
	defer rows.Close()

	var out []models.Cell
	for rows.Next() {
		var c models.Cell
		var value string
		if err := rows.Scan(&c.EmployeeID, &c.WeekID, &c.DayIndex, &value); err != nil {
			return nil, fmt.Errorf("failed to scan cell: %w", err)
		}
		c.Value = models.Assignment(value)
		out = append(out, c)
	}
	return out, rows.Err()
}

func loadKeyValues(db *sql.DB, table string) (map[string]string, error) {
	rows, err := db.Query("SELECT key, value FROM " + table)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", table, err)
	}
	defer rows.Close()

	out := map[string]string{}
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", table, err)
		}
		out[key] = value
	}
	return out, rows.Err()
}

func loadSettings(db *sql.DB) (models.Settings, error) {
	kv, err := loadKeyValues(db, "settings")
	if err != nil {
		return models.Settings{}, err
	}

	settings := models.Settings{}
	for key, value := range kv {
		switch key {
		case constants.SettingHighContrast:
			settings.HighContrast = value == "true"
		case constants.SettingFontScale:
			f, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return models.Settings{}, fmt.Errorf("%w: parsing %s: %v", ErrMalformed, key, err)
			}
			settings.FontScale = f
		case constants.SettingDateFormat:
			settings.DateFormat = value
		case constants.SettingAutoHolidayMarking:
			settings.AutoHolidayMarking = value == "true"
		case constants.SettingRegion:
			settings.Region = value
		}
	}
	return settings, nil
}

// SaveSnapshot replaces every roster table in a single transaction.
func SaveSnapshot(db *sql.DB, d Dialect, s models.Snapshot) error {
	if db == nil {
		return ErrNotLoaded
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"cells", "weeks", "employees", "settings", "roster_meta"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	if err := insertEach(tx, d, "INSERT INTO employees (id, name, position) VALUES (?, ?, ?)", len(s.Employees), func(i int) []any {
		return []any{s.Employees[i].ID, s.Employees[i].Name, i}
	}); err != nil {
		return fmt.Errorf("failed to save employees: %w", err)
	}

	if err := insertEach(tx, d, "INSERT INTO weeks (id, position, iso_week, iso_year, start_date, end_date) VALUES (?, ?, ?, ?, ?, ?)", len(s.Weeks), func(i int) []any {
		w := s.Weeks[i]
		return []any{w.ID, i, w.ISOWeek, w.ISOYear, w.Start, w.End}
	}); err != nil {
		return fmt.Errorf("failed to save weeks: %w", err)
	}

	// Later duplicates of an address overwrite the earlier value.
	if err := insertEach(tx, d, `INSERT INTO cells (employee_id, week_id, day_index, value, position) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (employee_id, week_id, day_index) DO UPDATE SET value = excluded.value`, len(s.Cells), func(i int) []any {
		c := s.Cells[i]
		return []any{c.EmployeeID, c.WeekID, c.DayIndex, string(c.Value), i}
	}); err != nil {
		return fmt.Errorf("failed to save cells: %w", err)
	}

	settings := [][2]string{
		{constants.SettingHighContrast, strconv.FormatBool(s.Settings.HighContrast)},
		{constants.SettingFontScale, strconv.FormatFloat(s.Settings.FontScale, 'f', -1, 64)},
		{constants.SettingDateFormat, s.Settings.DateFormat},
		{constants.SettingAutoHolidayMarking, strconv.FormatBool(s.Settings.AutoHolidayMarking)},
		{constants.SettingRegion, s.Settings.Region},
	}
	if err := insertEach(tx, d, "INSERT INTO settings (key, value) VALUES (?, ?)", len(settings), func(i int) []any {
		return []any{settings[i][0], settings[i][1]}
	}); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	updatedAt := s.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now().UTC()
	}
	meta := [][2]string{
		{metaStartMonday, s.CalendarBase.StartMondayISO},
		{metaUpdatedAt, updatedAt.Format(time.RFC3339Nano)},
	}
	if err := insertEach(tx, d, "INSERT INTO roster_meta (key, value) VALUES (?, ?)", len(meta), func(i int) []any {
		return []any{meta[i][0], meta[i][1]}
	}); err != nil {
		return fmt.Errorf("failed to save metadata: %w", err)
	}

	return tx.Commit()
}

func insertEach(tx *sql.Tx, d Dialect, query string, n int, args func(int) []any) error {
	if n == 0 {
		return nil
	}
	stmt, err := tx.Prepare(d.Rebind(query))
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i := 0; i < n; i++ {
		if _, err := stmt.Exec(args(i)...); err != nil {
			return err
		}
	}
	return nil
}
