package user

import "time"

// User is a registered account keyed by phone number.
type User struct {
	PhoneNumber    string
	CallingCode    string
	FirstName      string
	MiddleName     string
	LastName       string
	Email          string
	CurrencyCode   string
	CurrencyName   string
	CurrencySymbol string
	ProfileImage   string
	PaymentAddress string
	CreatedAt      time.Time
}

// Existence pairs a queried phone number with whether a user holds it.
type Existence struct {
	PhoneNumber string
	Exists      bool
}

// DisplayName joins the populated name fragments.
func (u User) DisplayName() string {
	name := u.FirstName
	if u.MiddleName != "" {
		name += " " + u.MiddleName
	}
	if u.LastName != "" {
		name += " " + u.LastName
	}
	return name
}
