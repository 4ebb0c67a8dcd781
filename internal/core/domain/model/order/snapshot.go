package order

import (
	"strings"

	"orderflow/internal/pkg/errs"
)

// PartySnapshot is a denormalized copy of a party's identity and address,
// captured once when the order is created. Orders keep their own buyer,
// shipping and billing snapshots so that later edits to the user's profile
// or address book never alter past orders.
//
// In memory the snapshot is a concrete immutable value object; only the
// persistence boundary serializes it to an opaque blob.
type PartySnapshot struct {
	name        string
	company     string
	email       string
	phone       string
	addressLine string
	city        string
	province    string
	postalCode  string
	country     string
}

// PartySnapshotFields carries the raw field values for constructing a
// PartySnapshot. Loose struct on purpose: nine positional strings would be
// unreadable at call sites.
type PartySnapshotFields struct {
	Name        string
	Company     string
	Email       string
	Phone       string
	AddressLine string
	City        string
	Province    string
	PostalCode  string
	Country     string
}

// NewPartySnapshot creates an immutable snapshot from the given fields.
// Only the party name is mandatory; industrial buyers frequently leave
// secondary contact fields blank.
func NewPartySnapshot(fields PartySnapshotFields) (PartySnapshot, error) {
	if strings.TrimSpace(fields.Name) == "" {
		return PartySnapshot{}, errs.NewValueIsRequiredError("party name")
	}

	return PartySnapshot{
		name:        fields.Name,
		company:     fields.Company,
		email:       fields.Email,
		phone:       fields.Phone,
		addressLine: fields.AddressLine,
		city:        fields.City,
		province:    fields.Province,
		postalCode:  fields.PostalCode,
		country:     fields.Country,
	}, nil
}

// Name returns the party's display name.
func (p PartySnapshot) Name() string { return p.name }

// Company returns the buyer's company name, if any.
func (p PartySnapshot) Company() string { return p.company }

// Email returns the contact email, if any.
func (p PartySnapshot) Email() string { return p.email }

// Phone returns the contact phone number, if any.
func (p PartySnapshot) Phone() string { return p.phone }

// AddressLine returns the street address, if any.
func (p PartySnapshot) AddressLine() string { return p.addressLine }

// City returns the city, if any.
func (p PartySnapshot) City() string { return p.city }

// Province returns the province or state, if any.
func (p PartySnapshot) Province() string { return p.province }

// PostalCode returns the postal code, if any.
func (p PartySnapshot) PostalCode() string { return p.postalCode }

// Country returns the country, if any.
func (p PartySnapshot) Country() string { return p.country }

// Fields returns the snapshot's values as a PartySnapshotFields struct.
// Used by the persistence layer to serialize the snapshot.
func (p PartySnapshot) Fields() PartySnapshotFields {
	return PartySnapshotFields{
		Name:        p.name,
		Company:     p.company,
		Email:       p.email,
		Phone:       p.phone,
		AddressLine: p.addressLine,
		City:        p.city,
		Province:    p.province,
		PostalCode:  p.postalCode,
		Country:     p.country,
	}
}

// Validate returns an error for the zero value.
func (p PartySnapshot) Validate() error {
	if p.name == "" {
		return errs.NewValueIsRequiredError("party snapshot must be created via NewPartySnapshot")
	}
	return nil
}
