package api

import "strings"

// ValidateCreateBook checks a CreateBookRequest for validity. It returns an
// *APIError describing the first validation failure, or nil if the request
// is valid. Field presence is checked, not emptiness; an empty title is
// accepted, matching the permissiveness of the HTTP contract.
func ValidateCreateBook(req *CreateBookRequest) *APIError {
	if req.ID == nil || *req.ID == "" {
		return NewInvalidRequestError("id", "Field 'id' is required")
	}

	required := []struct {
		name    string
		present bool
	}{
		{"title", req.Title != nil},
		{"author", req.Author != nil},
		{"publisher", req.Publisher != nil},
		{"year", req.Year != nil},
		{"genre", req.Genre != nil},
		{"stock", req.Stock != nil},
	}

	var missing []string
	for _, f := range required {
		if !f.present {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return NewInvalidRequestError(missing[0], "Missing fields: "+strings.Join(missing, ", "))
	}

	return nil
}

// ValidateUsername checks a registration username. Usernames are
// case-sensitive; only length is constrained.
func ValidateUsername(username string) *APIError {
	if len(username) < 3 {
		return NewInvalidRequestError("username", "username must be at least 3 characters")
	}
	return nil
}
