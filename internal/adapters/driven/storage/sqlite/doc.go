// Package sqlite implements the document store on SQLite via
// database/sql and the modernc.org/sqlite driver. The schema lives in
// embedded migrations; candidate retrieval is plain LIKE substring
// matching over a precomputed lowercase content column.
package sqlite
