package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginFormInvalidEmail(t *testing.T) {
	errs := Check(LoginForm{Email: "not-an-email", Password: "Secret12"})
	require.NotNil(t, errs)
	assert.Equal(t, "Invalid email format", errs["Email"])
}

func TestLoginFormValid(t *testing.T) {
	assert.Nil(t, Check(LoginForm{Email: "john.doe@example.com", Password: "Secret12"}))
}

func TestRegisterFormFieldMessages(t *testing.T) {
	tests := []struct {
		name  string
		form  RegisterForm
		field string
		want  string
	}{
		{
			"missing first name",
			RegisterForm{LastName: "Doe", Email: "a@b.com", Password: "Secret12"},
			"FirstName", "First name is required",
		},
		{
			"first name with digits",
			RegisterForm{FirstName: "J0hn", LastName: "Doe", Email: "a@b.com", Password: "Secret12"},
			"FirstName", "First name can only contain letters",
		},
		{
			"short last name",
			RegisterForm{FirstName: "John", LastName: "D", Email: "a@b.com", Password: "Secret12"},
			"LastName", "Last name must be at least 2 characters",
		},
		{
			"password without uppercase",
			RegisterForm{FirstName: "John", LastName: "Doe", Email: "a@b.com", Password: "secret12"},
			"Password", "Password must contain uppercase, lowercase and number",
		},
		{
			"short password",
			RegisterForm{FirstName: "John", LastName: "Doe", Email: "a@b.com", Password: "S1a"},
			"Password", "Password must be at least 6 characters",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := Check(tt.form)
			require.NotNil(t, errs)
			assert.Equal(t, tt.want, errs[tt.field])
		})
	}
}

func TestVerifyEmailFormOTP(t *testing.T) {
	errs := Check(VerifyEmailForm{Email: "a@b.com", OTP: "12ab56"})
	require.NotNil(t, errs)
	assert.Equal(t, "OTP must be 6 digits", errs["OTP"])

	assert.Nil(t, Check(VerifyEmailForm{Email: "a@b.com", OTP: "123456"}))
}

func TestResetPasswordFormMismatch(t *testing.T) {
	errs := Check(ResetPasswordForm{Token: "tok", Password: "Secret12", ConfirmPassword: "Secret13"})
	require.NotNil(t, errs)
	assert.Equal(t, "Passwords must match", errs["ConfirmPassword"])
}

func TestChangePasswordFormSamePassword(t *testing.T) {
	errs := Check(ChangePasswordForm{
		CurrentPassword: "Secret12",
		NewPassword:     "Secret12",
		ConfirmPassword: "Secret12",
	})
	require.NotNil(t, errs)
	assert.Equal(t, "New password must be different", errs["NewPassword"])
}
