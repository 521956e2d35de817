package types

// SectorInput carries create and partial-update fields. Nil pointers are left untouched on update.
type SectorInput struct {
	ID                string
	Name              *string
	Description       *string
	ManagerID         *string
	EmployeeIDs       *[]string
	ProductCategories *[]string
}
