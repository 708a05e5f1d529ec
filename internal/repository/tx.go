package repository

import (
	"context"
)

// TxFunc is the body of a scoped transaction. Returning an error rolls
// back every write made through tx; returning nil commits.
type TxFunc func(tx UserTx) error

// Transactor runs closures inside one atomic unit.
// Implementations acquire a connection, begin, run fn, commit or roll back,
// and release the connection on every exit path.
type Transactor interface {
	WithTx(ctx context.Context, fn TxFunc) error
}
