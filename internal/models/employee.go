package models

// Employee is a row of the roster. Order of the employee slice is display order.
type Employee struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
