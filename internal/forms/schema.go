// Package forms holds the create form and the edit form of the student
// list. Both work on a flat map of field values so that a terminal (or
// any other front-end) can bind inputs by field name; a Schema converts
// between those values and a record.
package forms

import (
	"github.com/aanand-mishra/student-manager/internal/types"
)

// Values maps a field name to its current input.
type Values map[string]string

func (v Values) clone() Values {
	out := make(Values, len(v))
	for k, val := range v {
		out[k] = val
	}
	return out
}

// Field describes one input.
type Field struct {
	Name        string
	Label       string
	Placeholder string
}

// Schema binds form values to a record type.
type Schema[T types.Record] struct {
	Fields []Field
	// Decode builds a record with the given id from values.
	Decode func(id int64, v Values) T
	// Encode returns the values an edit form starts from.
	Encode func(record T) Values
}

// Empty returns a value for every field, all blank.
func (s Schema[T]) Empty() Values {
	v := make(Values, len(s.Fields))
	for _, f := range s.Fields {
		v[f.Name] = ""
	}
	return v
}

func (s Schema[T]) has(name string) bool {
	for _, f := range s.Fields {
		if f.Name == name {
			return true
		}
	}
	return false
}

// EleveSchema is the form of the flat endpoint family. The date input
// holds the date part only.
func EleveSchema() Schema[types.Eleve] {
	return Schema[types.Eleve]{
		Fields: []Field{
			{Name: "nom", Label: "Nom", Placeholder: "Doe"},
			{Name: "prenom", Label: "Prénom", Placeholder: "John"},
			{Name: "dateNaissance", Label: "Date de Naissance", Placeholder: types.DateLayout},
		},
		Decode: func(id int64, v Values) types.Eleve {
			return types.Eleve{
				ID:            id,
				Nom:           v["nom"],
				Prenom:        v["prenom"],
				DateNaissance: v["dateNaissance"],
			}
		},
		Encode: func(e types.Eleve) Values {
			return Values{
				"nom":           e.Nom,
				"prenom":        e.Prenom,
				"dateNaissance": types.DateOnly(e.DateNaissance),
			}
		},
	}
}

// StudentSchema is the form of the /api/students resource.
func StudentSchema() Schema[types.Student] {
	return Schema[types.Student]{
		Fields: []Field{
			{Name: "name", Label: "Name", Placeholder: "John Doe"},
			{Name: "email", Label: "Email", Placeholder: "john@example.com"},
			{Name: "phone", Label: "Phone", Placeholder: "+1 (555) 000-0000"},
			{Name: "address", Label: "Address", Placeholder: "123 Main St, City"},
		},
		Decode: func(id int64, v Values) types.Student {
			return types.Student{
				ID:      id,
				Name:    v["name"],
				Email:   v["email"],
				Phone:   v["phone"],
				Address: v["address"],
			}
		},
		Encode: func(s types.Student) Values {
			return Values{
				"name":    s.Name,
				"email":   s.Email,
				"phone":   s.Phone,
				"address": s.Address,
			}
		},
	}
}
