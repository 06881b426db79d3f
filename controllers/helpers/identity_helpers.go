package helpers

import (
	"github.com/volatiletech/null"
)

var PasswordMismatch = "identity.user.password_mismatch"

type SignUpParams struct {
	Email                string      `json:"email" form:"email" validate:"required|email"`
	Password             string      `json:"password" form:"password" validate:"required|minLen:8"`
	PasswordConfirmation string      `json:"password_confirmation" form:"password_confirmation" validate:"required"`
	Username             null.String `json:"username" form:"username"`
}

func (p SignUpParams) Messages() map[string]string {
	return VaildateMessage("identity.user")
}

// CheckPasswords adds a mismatch error unless both passwords are equal.
func (p SignUpParams) CheckPasswords(err_src *Errors) {
	if p.Password != p.PasswordConfirmation {
		err_src.Errors = append(err_src.Errors, PasswordMismatch)
	}
}

type SignInParams struct {
	Email    string `json:"email" form:"email" validate:"required|email"`
	Password string `json:"password" form:"password" validate:"required"`
}

func (p SignInParams) Messages() map[string]string {
	return VaildateMessage("identity.session")
}
