package dto

import (
	"encoding/json"

	"github.com/noah-isme/vclass-go-api/internal/models"
)

// SignupRequest carries the registration payload for students and teachers.
type SignupRequest struct {
	FirstName    string   `json:"first_name" validate:"required,min=1,max=100"`
	LastName     string   `json:"last_name" validate:"required,min=1,max=100"`
	Email        string   `json:"email" validate:"required,email"`
	Password     string   `json:"password" validate:"required,min=6"`
	Role         string   `json:"role" validate:"omitempty,oneof=student teacher"`
	RollYear     string   `json:"roll_year"`
	RollDept     string   `json:"roll_dept"`
	RollSerial   string   `json:"roll_serial"`
	Section      string   `json:"section"`
	Classes      []string `json:"classes"`
	ProfileImage string   `json:"profile_image"`
}

// SigninRequest authenticates by email or, for students, bare roll number.
type SigninRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

// AdminLoginRequest authenticates the out-of-band admin credential pair.
type AdminLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// CheckEmailRequest asks whether an email is still free to register.
type CheckEmailRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ProfileUpdateRequest lets an authenticated account change its own profile.
type ProfileUpdateRequest struct {
	Name         *string `json:"name" validate:"omitempty,min=1,max=200"`
	Email        *string `json:"email" validate:"omitempty,email"`
	ProfileImage *string `json:"profile_image" validate:"omitempty,url"`
}

// AccountResponse is the role-shaped public view of an account.
type AccountResponse struct {
	ID           uint     `json:"id"`
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	Role         string   `json:"role"`
	ProfileImage string   `json:"profile_image"`
	RollNumber   string   `json:"roll_number,omitempty"`
	RollYear     string   `json:"roll_year,omitempty"`
	RollDept     string   `json:"roll_dept,omitempty"`
	RollSerial   string   `json:"roll_serial,omitempty"`
	Section      string   `json:"section,omitempty"`
	Classes      []string `json:"classes,omitempty"`
}

// AuthResponse pairs a signed token with the authenticated account view.
type AuthResponse struct {
	Token string          `json:"token"`
	User  AccountResponse `json:"user"`
}

// NewAccountResponse converts an account model into its public view. Roll
// fields appear only for students, class codes only for teachers.
func NewAccountResponse(account models.Account) AccountResponse {
	response := AccountResponse{
		ID:           account.ID,
		Name:         account.Name,
		Email:        account.Email,
		Role:         account.Role,
		ProfileImage: account.ProfileImageURL,
	}

	if account.RollNumber != nil {
		response.RollNumber = *account.RollNumber
		response.RollYear = account.RollYear
		response.RollDept = account.RollDept
		response.RollSerial = account.RollSerial
		response.Section = account.Section
	}

	if len(account.Classes) > 0 {
		var classes []string
		if err := json.Unmarshal(account.Classes, &classes); err == nil {
			response.Classes = classes
		}
	}

	return response
}

// NewAccountResponseSlice converts account models into public views.
func NewAccountResponseSlice(accounts []models.Account) []AccountResponse {
	responses := make([]AccountResponse, 0, len(accounts))
	for _, account := range accounts {
		responses = append(responses, NewAccountResponse(account))
	}

	return responses
}
