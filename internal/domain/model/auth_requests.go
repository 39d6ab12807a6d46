//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"strings"
)

// LoginRequest is the POST /auth/login payload.
type LoginRequest struct {
	EmployeeCode string `json:"employeeCode"`
	Password     string `json:"password"`
}

// Normalize trims the employee code. Passwords are sent as typed.
func (r *LoginRequest) Normalize() {
	r.EmployeeCode = strings.TrimSpace(r.EmployeeCode)
}

// Validate validates the LoginRequest fields.
func (r *LoginRequest) Validate() error {
	if r.EmployeeCode == "" {
		return errors.New("employeeCode is required")
	}
	if r.Password == "" {
		return errors.New("password is required")
	}
	return nil
}

// ForgotPasswordRequest starts the password-reset flow.
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// Normalize lowercases and trims the email.
func (r *ForgotPasswordRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

// Validate validates the ForgotPasswordRequest fields.
func (r *ForgotPasswordRequest) Validate() error { return validateEmail(r.Email) }

// VerifyOTPRequest exchanges an emailed one-time code for a reset token.
type VerifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

// Normalize trims the VerifyOTPRequest fields.
func (r *VerifyOTPRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.OTP = strings.TrimSpace(r.OTP)
}

// Validate validates the VerifyOTPRequest fields.
func (r *VerifyOTPRequest) Validate() error {
	if err := validateEmail(r.Email); err != nil {
		return err
	}
	if r.OTP == "" {
		return errors.New("otp is required")
	}
	return nil
}

// VerifyOTPResponse carries the reset token.
type VerifyOTPResponse struct {
	Token string `json:"token"`
}

// Validate ensures the backend returned a token.
func (r *VerifyOTPResponse) Validate() error {
	if r.Token == "" {
		return errors.New("token is missing")
	}
	return nil
}

// ResetPasswordRequest completes the password-reset flow. ConfirmPassword is
// checked locally and never sent to the backend.
type ResetPasswordRequest struct {
	Token           string `json:"token"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"-"`
}

// ErrPasswordMismatch is returned when the confirmation does not match.
var ErrPasswordMismatch = errors.New("passwords do not match")

// Validate validates the ResetPasswordRequest fields.
func (r *ResetPasswordRequest) Validate() error {
	if strings.TrimSpace(r.Token) == "" {
		return errors.New("token is required")
	}
	if len(r.NewPassword) < minPasswordLen {
		return errors.New("password must be at least 6 characters")
	}
	if r.NewPassword != r.ConfirmPassword {
		return ErrPasswordMismatch
	}
	return nil
}
