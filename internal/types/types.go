// Package types holds the data structures shared by the client, the
// backend handlers and the storage layer. Keeping them in one place
// prevents import cycles: every other package imports types, types imports
// nothing from this module.
package types

import (
	"strconv"
	"strings"
	"time"
)

// Record is what the list view needs from a row, whichever backend
// variant produced it.
type Record interface {
	// Key is the backend-assigned identifier.
	Key() int64
	// Matches reports whether the search term occurs, case-insensitively,
	// in one of the record's name fields.
	Matches(term string) bool
	// Cells returns the display values for one table row.
	Cells() []string
}

// Student is the record shape served by the /api/students resource.
//
// ID carries omitempty so that a create body never sends an id: the
// backend assigns it.
type Student struct {
	ID      int64  `json:"id,omitempty"`
	Name    string `json:"name"    validate:"required"`
	Email   string `json:"email"   validate:"required"`
	Phone   string `json:"phone"   validate:"required"`
	Address string `json:"address" validate:"required"`
}

func (s Student) Key() int64 { return s.ID }

func (s Student) Matches(term string) bool {
	return containsFold(s.Name, term)
}

func (s Student) Cells() []string {
	return []string{s.Name, s.Email, s.Phone, s.Address}
}

// Eleve is the record shape served by the flat /api/all, /api/save and
// /api/delete/{id} endpoints.
//
// DateNaissance is a date string, "2006-01-02", sometimes followed by a
// time part ("2006-01-02T15:04:05").
type Eleve struct {
	ID            int64  `json:"id,omitempty"`
	Nom           string `json:"nom"           validate:"required"`
	Prenom        string `json:"prenom"        validate:"required"`
	DateNaissance string `json:"dateNaissance" validate:"required"`
}

func (e Eleve) Key() int64 { return e.ID }

func (e Eleve) Matches(term string) bool {
	return containsFold(e.Nom, term) || containsFold(e.Prenom, term)
}

// Cells renders placeholders for empty values.
func (e Eleve) Cells() []string {
	nom := e.Nom
	if nom == "" {
		nom = "(No name)"
	}
	prenom := e.Prenom
	if prenom == "" {
		prenom = "(No surname)"
	}
	date := "(No date)"
	if e.DateNaissance != "" {
		date = DisplayDate(e.DateNaissance)
	}
	return []string{nom, prenom, date}
}

// Page is one page of records plus the paging metadata the backend
// reported for it.
type Page[T any] struct {
	Items         []T
	Size          int
	TotalElements int
	TotalPages    int
	Number        int
}

// HALPage is the paging envelope of GET /api/students:
//
//	{"_embedded": {"students": [...]}, "page": {"size": 10, ...}}
//
// A page past the end carries no _embedded object at all.
type HALPage struct {
	Embedded *HALEmbedded `json:"_embedded,omitempty"`
	Page     PageMeta     `json:"page"`
}

// HALEmbedded holds the records of a HALPage.
type HALEmbedded struct {
	Students []Student `json:"students"`
}

// PageMeta is the "page" object of a HALPage.
type PageMeta struct {
	Size          int `json:"size"`
	TotalElements int `json:"totalElements"`
	TotalPages    int `json:"totalPages"`
	Number        int `json:"number"`
}

// DateLayout is the wire format of date-only fields.
const DateLayout = "2006-01-02"

// DateOnly strips a trailing time part, so "2000-01-01T00:00:00" becomes
// "2000-01-01". It is what an edit form shows in its date input.
func DateOnly(value string) string {
	date, _, _ := strings.Cut(value, "T")
	return date
}

// DisplayDate formats a wire date as month/day/year without zero padding,
// e.g. "2000-01-01" becomes "1/1/2000". Values that do not parse are
// returned unchanged.
func DisplayDate(value string) string {
	t, err := time.Parse(DateLayout, DateOnly(value))
	if err != nil {
		return value
	}
	return strconv.Itoa(int(t.Month())) + "/" + strconv.Itoa(t.Day()) + "/" + strconv.Itoa(t.Year())
}

func containsFold(s, term string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(term))
}
