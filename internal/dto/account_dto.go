package dto

// AdminAccountUpdateRequest is the admin-side account mutation payload. Roll
// component changes trigger roll-number re-derivation on save.
type AdminAccountUpdateRequest struct {
	Name       *string `json:"name" validate:"omitempty,min=1,max=200"`
	Email      *string `json:"email" validate:"omitempty,email"`
	Role       *string `json:"role" validate:"omitempty,oneof=student teacher admin"`
	RollYear   *string `json:"roll_year" validate:"omitempty,min=1,max=16"`
	RollDept   *string `json:"roll_dept" validate:"omitempty,min=1,max=16"`
	RollSerial *string `json:"roll_serial" validate:"omitempty,min=1,max=16"`
	Section    *string `json:"section" validate:"omitempty,oneof=A B C D E F"`
}
