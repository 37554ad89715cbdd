package main

import (
	"github.com/avoronov/cadscreen/internal/model"
	"github.com/avoronov/cadscreen/internal/validator"
)

// Validation rules

func validateUsername(v *validator.Validator, username string) {
	v.CheckField(validator.NotBlank(username), "username", "cannot be blank")
	v.CheckField(validator.MinRunes(username, 3), "username", "must be at least 3 characters")
	v.CheckField(validator.MaxRunes(username, 64), "username", "must be at most 64 characters")
}

func validateEmail(v *validator.Validator, email string) {
	v.CheckField(validator.NotBlank(email), "email", "cannot be blank")
	v.CheckField(validator.Matches(email, validator.RgxEmail), "email", "must be a valid email address")
}

func validatePassword(v *validator.Validator, password, confirm string) {
	v.CheckField(validator.NotBlank(password), "password", "cannot be blank")
	v.CheckField(validator.MinRunes(password, 6), "password", "must be at least 6 characters")
	v.CheckField(password == confirm, "confirm_password", "passwords do not match")
}

func validateRole(v *validator.Validator, role string) {
	_, ok := model.ParseRole(role)
	v.CheckField(ok, "role", "must be 'patient' or 'doctor'")
}

func validateRiskCategory(v *validator.Validator, risk string) {
	_, ok := model.ParseRiskCategory(risk)
	v.CheckField(ok, "risk", "must be one of LOW, MEDIUM, HIGH")
}
