// Package validation 实现表单的字段级校验。
// 规则与提示语和前端表单一一对应，提交前先过这里，
// 校验不通过的请求不会发往任何下游。
package validation

import (
	"regexp"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// LoginForm 登录表单
type LoginForm struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// RegisterForm 注册表单
type RegisterForm struct {
	FirstName string `json:"first_name" validate:"required,lettersonly,min=2"`
	LastName  string `json:"last_name" validate:"required,lettersonly,min=2"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6,passwordchars"`
}

// VerifyEmailForm 邮箱验证表单
type VerifyEmailForm struct {
	Email string `json:"email" validate:"required,email"`
	OTP   string `json:"otp" validate:"required,len=6,numeric"`
}

// ForgotPasswordForm 找回密码表单
type ForgotPasswordForm struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordForm 重置密码表单
type ResetPasswordForm struct {
	Token           string `json:"token" validate:"required"`
	Password        string `json:"password" validate:"required,min=6,passwordchars"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
}

// ProfileForm 个人资料表单
type ProfileForm struct {
	FirstName string `json:"first_name" validate:"required,lettersonly,min=2"`
	LastName  string `json:"last_name" validate:"required,lettersonly,min=2"`
	Email     string `json:"email" validate:"required,email"`
}

// ChangePasswordForm 修改密码表单
type ChangePasswordForm struct {
	CurrentPassword string `json:"current_password" validate:"required,min=6"`
	NewPassword     string `json:"new_password" validate:"required,min=6,passwordchars,nefield=CurrentPassword"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=NewPassword"`
}

var (
	validate    = validator.New()
	lettersOnly = regexp.MustCompile(`^[a-zA-Z\s]*$`)
)

func init() {
	_ = validate.RegisterValidation("lettersonly", func(fl validator.FieldLevel) bool {
		return lettersOnly.MatchString(fl.Field().String())
	})
	_ = validate.RegisterValidation("passwordchars", func(fl validator.FieldLevel) bool {
		var hasLower, hasUpper, hasDigit bool
		for _, r := range fl.Field().String() {
			switch {
			case unicode.IsLower(r):
				hasLower = true
			case unicode.IsUpper(r):
				hasUpper = true
			case unicode.IsDigit(r):
				hasDigit = true
			}
		}
		return hasLower && hasUpper && hasDigit
	})
}

// 提示语按 字段.规则 索引，和前端表单保持逐字一致
var messages = map[string]string{
	"Email.required":         "Email is required",
	"Email.email":            "Invalid email format",
	"Password.required":      "Password is required",
	"Password.min":           "Password must be at least 6 characters",
	"Password.passwordchars": "Password must contain uppercase, lowercase and number",

	"FirstName.required":    "First name is required",
	"FirstName.lettersonly": "First name can only contain letters",
	"FirstName.min":         "First name must be at least 2 characters",
	"LastName.required":     "Last name is required",
	"LastName.lettersonly":  "Last name can only contain letters",
	"LastName.min":          "Last name must be at least 2 characters",

	"OTP.required": "OTP is required",
	"OTP.len":      "OTP must be 6 digits",
	"OTP.numeric":  "OTP must be 6 digits",

	"Token.required": "Reset token is required",

	"CurrentPassword.required":     "Current password is required",
	"CurrentPassword.min":          "Password must be at least 6 characters",
	"NewPassword.required":         "New password is required",
	"NewPassword.min":              "Password must be at least 6 characters",
	"NewPassword.passwordchars":    "Password must contain uppercase, lowercase and number",
	"NewPassword.nefield":          "New password must be different",
	"ConfirmPassword.required":     "Please confirm your password",
	"ConfirmPassword.eqfield":      "Passwords must match",
}

// Check 校验表单，返回 字段名 -> 提示语。全部通过时返回 nil。
func Check(form interface{}) map[string]string {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}
	out := make(map[string]string)
	if errs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range errs {
			if _, dup := out[fe.Field()]; dup {
				continue // 每个字段只报第一条
			}
			if msg, ok := messages[fe.Field()+"."+fe.Tag()]; ok {
				out[fe.Field()] = msg
			} else {
				out[fe.Field()] = "Invalid value"
			}
		}
	} else {
		out["_form"] = err.Error()
	}
	return out
}
