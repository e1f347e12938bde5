// Package api defines the core wire types for the shelfd book catalog service.
//
// This package provides the data model (books, users), request/response
// envelopes, input validation, and the structured error taxonomy shared by
// the transport and storage layers.
//
// The package has zero external dependencies (Go standard library only) and
// performs no I/O.
//
// Core types:
//   - [Book]: A catalog entry tagged with the username that owns it
//   - [CreateBookRequest]: Client request to add a book to the catalog
//   - [BookPatch]: Partial update limited to the mutable fields of a book
//   - [RegisterRequest]: Client request to create a user account
//   - [APIError]: Structured error with type, param, and message
//
// Integer coercion:
//
// Clients may send year and stock as JSON numbers or as numeric strings.
// [Integer] preserves that permissiveness; a value that cannot be coerced
// surfaces as a [CoercionError] recognizable with errors.As.
package api
