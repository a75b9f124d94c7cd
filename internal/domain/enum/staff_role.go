package enum

import "encoding/json"

// StaffRole is the part a staff member played in a transaction
type StaffRole int

const (
	StaffRoleSalesPerson StaffRole = iota
	StaffRolePicker
)

func (r StaffRole) String() string {
	if r == StaffRolePicker {
		return "picker"
	}
	return "sales-person"
}

func (r StaffRole) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}
