package query

/*
	Description:
		Package `query` wraps https://github.com/mongodb/mongo-go-driver with
		the handful of operations the stores need, slow query logging and an
		optional COLLSCAN guard.
*/

import (
	"fmt"

	"github.com/x-xyz/escrow/base/ctx"
	"github.com/x-xyz/escrow/domain"
)

var (
	// ErrNotFound is mongo document not found error
	ErrNotFound = fmt.Errorf("document not found")

	// ErrDuplicateKey is an error when violating unique index
	ErrDuplicateKey = fmt.Errorf("duplicate key")

	// ErrCollScan is error for unindexed query
	ErrCollScan = fmt.Errorf("COLLSCAN is not allowed")
)

// Index describes one index to ensure on a table
type Index struct {
	// Keys in order, prefix "-" for descending
	Keys   []string
	Unique bool
}

// Mongo abstract the mongo layer.
type Mongo interface {
	domain.Transactor

	// Insert inserts a new document to the table, ErrDuplicateKey on unique index violation
	Insert(context ctx.Ctx, table domain.Table, insert interface{}) error

	// FindOne get data from the table, ErrNotFound if nothing matches
	FindOne(context ctx.Ctx, table domain.Table, query, result interface{}) error

	// Count return counting for matched entry in the table
	Count(context ctx.Ctx, table domain.Table, selector interface{}) (n int, err error)

	// Upsert replaces the entry matched by selector, inserting it when absent
	Upsert(context ctx.Ctx, table domain.Table, selector, update interface{}) error

	// Replace replaces the entry matched by selector, ErrNotFound if nothing matches
	Replace(context ctx.Ctx, table domain.Table, selector, update interface{}) error

	// Search sorts by `sortFields` (ex "createdAt" ascending, "-createdAt" descending).
	// Empty sort fields leave the order to MongoDB. limit 0 means no limit.
	Search(context ctx.Ctx, table domain.Table, offset, limit int, sortFields []string, query, results interface{}) error

	// Remove remove an entry from the table
	// Return ErrNotFound if selector does not match any documents
	Remove(context ctx.Ctx, table domain.Table, selector interface{}) error

	// Patch sets the fields of update on the entry matched by selector
	// Return ErrNotFound if selector does not match any documents
	Patch(context ctx.Ctx, table domain.Table, selector, update interface{}) error

	EnsureIndexes(context ctx.Ctx, table domain.Table, indexes ...Index) error
}
