package api

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Book is a single catalog entry. The ID is externally assigned and unique
// within the catalog; Owner is the username recorded at creation time and
// never changes afterwards.
type Book struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Author    string `json:"author"`
	Publisher string `json:"publisher"`
	Year      int    `json:"year"`
	Genre     string `json:"genre"`
	Stock     int    `json:"stock"`
	Owner     string `json:"owner"`
}

// Clone returns a copy of the book. Stores hand out clones so callers
// cannot mutate shared state behind the store's lock.
func (b *Book) Clone() *Book {
	c := *b
	return &c
}

// Integer is an int that also accepts JSON strings holding an integer and
// JSON floats (truncated). Failed coercion yields a CoercionError.
type Integer int

// UnmarshalJSON implements json.Unmarshaler with permissive coercion.
func (n *Integer) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		return &CoercionError{Value: s}
	}
	if len(s) > 0 && s[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return &CoercionError{Value: s}
		}
		v, err := strconv.Atoi(strings.TrimSpace(str))
		if err != nil {
			return &CoercionError{Value: str}
		}
		*n = Integer(v)
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return &CoercionError{Value: s}
	}
	*n = Integer(int(f))
	return nil
}

// CoercionError reports a value that could not be coerced to an integer.
// Param names the offending field when known.
type CoercionError struct {
	Param string
	Value string
}

func (e *CoercionError) Error() string {
	if e.Param != "" {
		return fmt.Sprintf("%s must be an integer", e.Param)
	}
	return fmt.Sprintf("value %q is not an integer", e.Value)
}

// CreateBookRequest is the body of POST /books. Fields are pointers so the
// handler can distinguish "absent" from the zero value; validation checks
// key presence, not emptiness. Owner is never part of the request; it is
// stamped from the authenticated identity.
type CreateBookRequest struct {
	ID        *string  `json:"id"`
	Title     *string  `json:"title"`
	Author    *string  `json:"author"`
	Publisher *string  `json:"publisher"`
	Year      *Integer `json:"year"`
	Genre     *string  `json:"genre"`
	Stock     *Integer `json:"stock"`
}

// UnmarshalJSON decodes the request, coercing year and stock through the
// shadow so an explicit JSON null is a coercion failure rather than an
// absent field (null into a pointer field would otherwise bypass Integer's
// unmarshaler). The error carries no field name: the create path reports
// both numeric fields collectively.
func (r *CreateBookRequest) UnmarshalJSON(data []byte) error {
	var shadow struct {
		ID        *string         `json:"id"`
		Title     *string         `json:"title"`
		Author    *string         `json:"author"`
		Publisher *string         `json:"publisher"`
		Year      json.RawMessage `json:"year"`
		Genre     *string         `json:"genre"`
		Stock     json.RawMessage `json:"stock"`
	}
	if err := json.Unmarshal(data, &shadow); err != nil {
		return err
	}

	r.ID = shadow.ID
	r.Title = shadow.Title
	r.Author = shadow.Author
	r.Publisher = shadow.Publisher
	r.Genre = shadow.Genre

	if shadow.Year != nil {
		var n Integer
		if err := n.UnmarshalJSON(shadow.Year); err != nil {
			return err
		}
		r.Year = &n
	}
	if shadow.Stock != nil {
		var n Integer
		if err := n.UnmarshalJSON(shadow.Stock); err != nil {
			return err
		}
		r.Stock = &n
	}
	return nil
}

// Book materializes the request into a Book owned by the given identity.
// Call only after ValidateCreateBook has passed.
func (r *CreateBookRequest) Book(owner string) *Book {
	return &Book{
		ID:        *r.ID,
		Title:     *r.Title,
		Author:    *r.Author,
		Publisher: *r.Publisher,
		Year:      int(*r.Year),
		Genre:     *r.Genre,
		Stock:     int(*r.Stock),
		Owner:     owner,
	}
}

// BookPatch is the body of PUT /books/{id}. Only the mutable fields of a
// book are representable; id and owner sent by the client are silently
// discarded because no field exists to carry them. Unknown JSON keys are
// ignored.
type BookPatch struct {
	Title     *string  `json:"title"`
	Author    *string  `json:"author"`
	Publisher *string  `json:"publisher"`
	Year      *Integer `json:"year"`
	Genre     *string  `json:"genre"`
	Stock     *Integer `json:"stock"`
}

// UnmarshalJSON decodes the patch, coercing year and stock individually so
// a failure names the field. The whole payload is validated here, before
// Apply runs, which makes updates all-or-nothing.
func (p *BookPatch) UnmarshalJSON(data []byte) error {
	var shadow struct {
		Title     *string         `json:"title"`
		Author    *string         `json:"author"`
		Publisher *string         `json:"publisher"`
		Year      json.RawMessage `json:"year"`
		Genre     *string         `json:"genre"`
		Stock     json.RawMessage `json:"stock"`
	}
	if err := json.Unmarshal(data, &shadow); err != nil {
		return err
	}

	p.Title = shadow.Title
	p.Author = shadow.Author
	p.Publisher = shadow.Publisher
	p.Genre = shadow.Genre

	if shadow.Year != nil {
		var n Integer
		if err := n.UnmarshalJSON(shadow.Year); err != nil {
			return &CoercionError{Param: "year", Value: string(shadow.Year)}
		}
		p.Year = &n
	}
	if shadow.Stock != nil {
		var n Integer
		if err := n.UnmarshalJSON(shadow.Stock); err != nil {
			return &CoercionError{Param: "stock", Value: string(shadow.Stock)}
		}
		p.Stock = &n
	}
	return nil
}

// Apply copies the set fields of the patch onto the book. The patch was
// fully decoded and validated before this point, so application is
// all-or-nothing with respect to numeric validation.
func (p *BookPatch) Apply(b *Book) {
	if p.Title != nil {
		b.Title = *p.Title
	}
	if p.Author != nil {
		b.Author = *p.Author
	}
	if p.Publisher != nil {
		b.Publisher = *p.Publisher
	}
	if p.Year != nil {
		b.Year = int(*p.Year)
	}
	if p.Genre != nil {
		b.Genre = *p.Genre
	}
	if p.Stock != nil {
		b.Stock = int(*p.Stock)
	}
}

// RegisterRequest is the body of POST /register.
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// MessageResponse is the generic `{message}` success envelope.
type MessageResponse struct {
	Message string `json:"message"`
}

// BookResponse is the `{message, book}` envelope returned by create and update.
type BookResponse struct {
	Message string `json:"message"`
	Book    *Book  `json:"book"`
}

// IdentityResponse is the body of GET /me.
type IdentityResponse struct {
	Username string `json:"username"`
}
