package customerr

import "fmt"

// MissingCredentialsError means username or password was blank at login.
type MissingCredentialsError struct{}

func (e *MissingCredentialsError) Error() string {
	return "please enter both username and password"
}

// InvalidPasswordError means the password digest did not match for a known user.
type InvalidPasswordError struct {
	User string
}

func (e *InvalidPasswordError) Error() string {
	return fmt.Sprintf("invalid password for user %s", e.User)
}

// RegistrationDeclinedError means the user refused to register an unknown
// username. It carries no user-facing message: the login flow treats it as
// a silent no-op.
type RegistrationDeclinedError struct {
	User string
}

func (e *RegistrationDeclinedError) Error() string {
	return fmt.Sprintf("registration declined for user %s", e.User)
}

// InvalidAmountError means the amount field did not parse as a number.
type InvalidAmountError struct {
	Input string
}

func (e *InvalidAmountError) Error() string {
	return fmt.Sprintf("%q is not a valid amount", e.Input)
}
