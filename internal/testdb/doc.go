// Package testdb opens databases for tests.
//
// NewSQLite gives every test its own in-memory database with the full schema
// migrated from the domain models, so store and service tests run without
// external services:
//
//	func TestResolve(t *testing.T) {
//	    db := testdb.NewSQLite(t)
//	    records := postgres.NewRecords(db, nil)
//	    ...
//	}
//
// Count wraps a handle so a test can assert how many statements an operation
// issued. OpenPostgres, available under the integration build tag, connects to
// the database named by MINTY_TEST_DB_URL or DATABASE_URL, applies the goose
// migrations and skips the test when neither variable is set.
package testdb
