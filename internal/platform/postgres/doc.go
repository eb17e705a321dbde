// Package postgres provides the PostgreSQL implementations of the storage
// interfaces defined in the internal/store package. Entities are mapped with
// gorm on top of the pgx driver; the schema itself is owned by the goose
// migrations embedded in this package.
//
// The stores only rely on SQL that SQLite also understands, so unit tests run
// them against an in-memory SQLite database (see internal/testdb).
package postgres
