package cli

import (
	"fmt"

	"github.com/julianstephens/roster/internal/models"
	"github.com/julianstephens/roster/internal/roster"
)

type EmployeeCmd struct {
	Add    EmployeeAddCmd    `cmd:"" help:"Add an employee."`
	Rename EmployeeRenameCmd `cmd:"" help:"Rename an employee."`
	Remove EmployeeRemoveCmd `cmd:"" help:"Remove an employee and their cells."`
	Move   EmployeeMoveCmd   `cmd:"" help:"Move an employee to another position."`
	List   EmployeeListCmd   `cmd:"" help:"List employees." default:"1"`
}

type EmployeeAddCmd struct {
	Name string `arg:"" help:"Display name."`
}

func (c *EmployeeAddCmd) Run(ctx *Context) error {
	s, err := ctx.open()
	if err != nil {
		return err
	}
	var e models.Employee
	s.Update(func(r *roster.Roster) {
		e, err = r.AddEmployee(c.Name)
	})
	if err != nil {
		return err
	}
	ctx.printf("✓ Added %s (%s)\n", e.Name, e.ID)
	return nil
}

type EmployeeRenameCmd struct {
	Employee string `arg:"" help:"Employee id or name."`
	Name     string `arg:"" help:"New display name."`
}

func (c *EmployeeRenameCmd) Run(ctx *Context) error {
	s, err := ctx.open()
	if err != nil {
		return err
	}
	var old models.Employee
	s.Update(func(r *roster.Roster) {
		if old, err = ResolveEmployee(r, c.Employee); err != nil {
			return
		}
		err = r.RenameEmployee(old.ID, c.Name)
	})
	if err != nil {
		return err
	}
	ctx.printf("✓ Renamed %s to %s\n", old.Name, c.Name)
	return nil
}

type EmployeeRemoveCmd struct {
	Employee string `arg:"" help:"Employee id or name."`
	Yes      bool   `help:"Do not ask for confirmation." short:"y"`
}

func (c *EmployeeRemoveCmd) Run(ctx *Context) error {
	s, err := ctx.open()
	if err != nil {
		return err
	}
	var e models.Employee
	s.View(func(r *roster.Roster) {
		e, err = ResolveEmployee(r, c.Employee)
	})
	if err != nil {
		return err
	}

	if !c.Yes {
		ok, err := confirm(fmt.Sprintf("Remove %s and all of their assignments?", e.Name))
		if err != nil {
			return err
		}
		if !ok {
			ctx.println("Cancelled.")
			return nil
		}
	}

	s.Update(func(r *roster.Roster) {
		err = r.RemoveEmployee(e.ID)
	})
	if err != nil {
		return err
	}
	ctx.printf("✓ Removed %s\n", e.Name)
	return nil
}

type EmployeeMoveCmd struct {
	Employee string `arg:"" help:"Employee id or name."`
	Position int    `arg:"" help:"New 1-based position."`
}

func (c *EmployeeMoveCmd) Run(ctx *Context) error {
	s, err := ctx.open()
	if err != nil {
		return err
	}
	var moved bool
	var e models.Employee
	s.Update(func(r *roster.Roster) {
		if e, err = ResolveEmployee(r, c.Employee); err != nil {
			return
		}
		from := -1
		for i, other := range r.Employees() {
			if other.ID == e.ID {
				from = i
				break
			}
		}
		moved = r.MoveEmployee(from, c.Position-1)
	})
	if err != nil {
		return err
	}
	if !moved {
		return fmt.Errorf("cannot move %s to position %d", e.Name, c.Position)
	}
	ctx.printf("✓ Moved %s to position %d\n", e.Name, c.Position)
	return nil
}

type EmployeeListCmd struct {
	Filter string `help:"Only list employees whose name contains this text." short:"f"`
	Value  string `help:"Only list employees with at least one cell of this assignment."`
}

func (c *EmployeeListCmd) Run(ctx *Context) error {
	filter := models.Filter{EmployeeQuery: c.Filter}
	if c.Value != "" {
		v, err := ParseValue(c.Value)
		if err != nil {
			return err
		}
		filter.Assignment = v
	}

	s, err := ctx.open()
	if err != nil {
		return err
	}
	var employees []models.Employee
	s.View(func(r *roster.Roster) {
		employees = r.FilterEmployees(filter)
	})

	if len(employees) == 0 {
		ctx.println("No employees found.")
		return nil
	}
	for i, e := range employees {
		ctx.printf("%2d. %-24s %s\n", i+1, e.Name, e.ID)
	}
	return nil
}
