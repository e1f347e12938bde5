// Package transport defines the store interfaces and shared HTTP plumbing
// for the shelfd transport layer.
//
// The transport layer bridges external clients and the stores. It
// deserializes incoming requests into the types defined in pkg/api,
// dispatches them, and serializes results back to the client as JSON.
//
// # Store Interfaces
//
// Two interfaces define the contract between the transport layer and the
// state it operates on:
//
//   - CatalogStore covers the book catalog: get, list, insert, update and
//     remove, with sentinel errors from pkg/storage.
//   - UserRegistry covers account creation for the registration endpoint.
//
// # Error Funnel
//
// Every operation converts its errors to an *api.APIError at the handler
// boundary; WriteAPIError derives the HTTP status from the error type.
// Nothing propagates as an uncaught failure.
//
// # Middleware
//
// RequestID assigns an X-Request-ID to each request (honoring one sent by
// the client) and exposes it via the context for log correlation.
package transport
