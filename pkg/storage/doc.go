// Package storage provides utilities shared across catalog store
// implementations, currently sentinel errors.
//
// Catalog stores (memory) implement the transport.CatalogStore interface
// defined in pkg/transport/handler.go. This package contains only shared
// types and helpers, not the interface itself.
package storage
