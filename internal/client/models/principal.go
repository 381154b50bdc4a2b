package models

import "fmt"

// Principal is an authenticated identity: a shopper or an administrator.
type Principal struct {
	ID             string    `json:"_id"`
	Name           string    `json:"name,omitempty"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone,omitempty"`
	ProfilePicture string    `json:"profilePicture,omitempty"`
	Addresses      []Address `json:"addresses,omitempty"`
}

func (p Principal) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("%w: principal without _id", ErrInvalidPayload)
	}
	for _, a := range p.Addresses {
		if err := a.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Clone returns a deep copy.
func (p Principal) Clone() Principal {
	p.Addresses = append([]Address(nil), p.Addresses...)
	return p
}

// DefaultAddress returns the address flagged as default, falling back to the
// first one.
func (p Principal) DefaultAddress() (Address, bool) {
	for _, a := range p.Addresses {
		if a.IsDefault {
			return a, true
		}
	}
	if len(p.Addresses) > 0 {
		return p.Addresses[0], true
	}
	return Address{}, false
}

// Address looks up an address by id.
func (p Principal) Address(id string) (Address, bool) {
	for _, a := range p.Addresses {
		if a.ID == id {
			return a, true
		}
	}
	return Address{}, false
}

// Address is a delivery address kept on the shopper's profile.
type Address struct {
	ID          string `json:"_id,omitempty"`
	FullName    string `json:"fullName"`
	Phone       string `json:"phone"`
	Pincode     string `json:"pincode"`
	AddressLine string `json:"addressLine"`
	City        string `json:"city"`
	State       string `json:"state"`
	Country     string `json:"country"`
	IsDefault   bool   `json:"isDefault"`
}

func (a Address) Validate() error {
	if a.ID == "" {
		return fmt.Errorf("%w: address without _id", ErrInvalidPayload)
	}
	return nil
}

// Credentials is the login request body.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration is the sign-up request body. Name is omitted for admins.
type Registration struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ProfileUpdate is the body of PUT /users/me.
type ProfileUpdate struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	ProfilePicture string `json:"profilePicture"`
}
