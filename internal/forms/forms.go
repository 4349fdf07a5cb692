// Package forms holds the declarative form schemas. Each schema trims and
// checks the submitted fields and collects field-level error messages; a
// failed form is re-rendered by the handler, never partially persisted.
package forms

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/asaskevich/govalidator"
)

type Form struct {
	Values url.Values
	Errors map[string]string
}

func New(values url.Values) *Form {
	return &Form{Values: values, Errors: map[string]string{}}
}

func (f *Form) Valid() bool {
	return len(f.Errors) == 0
}

// Get returns the trimmed value of a field.
func (f *Form) Get(field string) string {
	return strings.TrimSpace(f.Values.Get(field))
}

// Fail records the first error message for a field.
func (f *Form) Fail(field, message string) {
	if _, taken := f.Errors[field]; !taken {
		f.Errors[field] = message
	}
}

func (f *Form) Required(fields ...string) {
	for _, field := range fields {
		if f.Get(field) == "" {
			f.Fail(field, "This field is required")
		}
	}
}

func (f *Form) Email(field string) {
	if v := f.Get(field); v != "" && !govalidator.IsEmail(v) {
		f.Fail(field, "Enter a valid email address")
	}
}

func (f *Form) URL(field string) {
	if v := f.Get(field); v != "" && !govalidator.IsURL(v) {
		f.Fail(field, "Enter a valid URL")
	}
}

func (f *Form) MinLength(field string, n int) {
	if v := f.Get(field); v != "" && len(v) < n {
		f.Fail(field, "Must be at least "+strconv.Itoa(n)+" characters")
	}
}

// --- route schemas ---

func Login(values url.Values) *Form {
	f := New(values)
	f.Required("email", "password")
	f.Email("email")
	return f
}

func Register(values url.Values) *Form {
	f := New(values)
	f.Required("email", "password", "name")
	f.Email("email")
	f.MinLength("password", 8)
	return f
}

func Post(values url.Values) *Form {
	f := New(values)
	f.Required("title", "subtitle", "img_url", "body")
	f.URL("img_url")
	return f
}

func Comment(values url.Values) *Form {
	f := New(values)
	f.Required("comment")
	return f
}

func Contact(values url.Values) *Form {
	f := New(values)
	f.Required("name", "email", "message")
	f.Email("email")
	return f
}
