package entity

import (
	"time"
)

// Tenant is the isolation boundary: every appointment query and mutation
// is scoped by its ID. Timezone holds an explicit IANA zone name; business
// hours are wall-clock in that zone.
type Tenant struct {
	Base
	Name         string `db:"name"`
	Slug         string `db:"slug"`
	Timezone     string `db:"timezone"`
	LogoURL      string `db:"logo_url"`
	PrimaryColor string `db:"primary_color"`
}

// Location resolves the tenant's IANA zone, falling back to UTC when the
// stored name is empty or invalid.
func (t *Tenant) Location() *time.Location {
	if t.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(t.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
