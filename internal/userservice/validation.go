package userservice

import (
	"fmt"

	"github.com/sushihentaime/bloglist/internal/common"
)

func validateUser(v *common.Validator, u *User) {
	v.Struct(u)
}

// validatePassword runs on the plain password because only its hash is stored.
func validatePassword(v *common.Validator, password string) {
	v.Check(len(password) >= PasswordMinLength, "password", common.MinLengthMessage("password", nil, PasswordMinLength))
	v.Check(len(password) <= PasswordMaxBytes, "password", fmt.Sprintf("Path `password` is longer than the maximum allowed length (%d).", PasswordMaxBytes))
}
