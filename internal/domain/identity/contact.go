package identity

import (
	"regexp"
	"strings"

	"github.com/shopapi/backend/internal/domain/shared"
)

// PhonePattern is the accepted contact phone format: +7 followed by 10 digits
var PhonePattern = regexp.MustCompile(`^\+7\d{10}$`)

// Contact is a delivery address and phone belonging to a user
type Contact struct {
	shared.BaseEntity
	UserID    uint64
	City      string
	Street    string
	House     string
	Building  string
	Apartment string
	Phone     string
}

// Address groups the editable contact attributes
type Address struct {
	City      string
	Street    string
	House     string
	Building  string
	Apartment string
	Phone     string
}

// NewContact creates a contact for the given user
func NewContact(userID uint64, addr Address) (*Contact, error) {
	if userID == 0 {
		return nil, shared.NewValidationError("user", "User is required")
	}
	c := &Contact{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     userID,
	}
	if err := c.Update(addr); err != nil {
		return nil, err
	}
	return c, nil
}

// Update replaces the address and phone
func (c *Contact) Update(addr Address) error {
	addr = trimAddress(addr)
	if err := validateAddress(addr); err != nil {
		return err
	}

	c.City = addr.City
	c.Street = addr.Street
	c.House = addr.House
	c.Building = addr.Building
	c.Apartment = addr.Apartment
	c.Phone = addr.Phone
	c.Touch()
	return nil
}

func trimAddress(a Address) Address {
	return Address{
		City:      strings.TrimSpace(a.City),
		Street:    strings.TrimSpace(a.Street),
		House:     strings.TrimSpace(a.House),
		Building:  strings.TrimSpace(a.Building),
		Apartment: strings.TrimSpace(a.Apartment),
		Phone:     strings.TrimSpace(a.Phone),
	}
}

func validateAddress(a Address) error {
	var details []shared.FieldError
	required := []struct {
		field, value string
		max          int
	}{
		{"city", a.City, 50},
		{"street", a.Street, 100},
	}
	for _, r := range required {
		if r.value == "" {
			details = append(details, shared.FieldError{Field: r.field, Message: "This field is required"})
		} else if len(r.value) > r.max {
			details = append(details, shared.FieldError{Field: r.field, Message: "Value is too long"})
		}
	}
	optional := map[string]string{"house": a.House, "building": a.Building, "apartment": a.Apartment}
	for field, value := range optional {
		if len(value) > 15 {
			details = append(details, shared.FieldError{Field: field, Message: "Value is too long"})
		}
	}
	if !PhonePattern.MatchString(a.Phone) {
		details = append(details, shared.FieldError{Field: "phone", Message: "Phone must be +7 followed by 10 digits"})
	}

	if len(details) > 0 {
		return shared.ErrValidation.WithDetails(details...)
	}
	return nil
}
