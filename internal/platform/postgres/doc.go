// Package postgres implements the store interfaces on top of PostgreSQL,
// accessed through database/sql with the pgx stdlib driver. Driver errors
// are translated into the store package's sentinel errors by MapError.
package postgres
