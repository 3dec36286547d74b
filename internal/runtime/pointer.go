package runtime

import (
	"math/big"

	"github.com/dnek/mines/internal/operation"
)

// OperationPointer is a circular index over a program's operation list.
type OperationPointer struct {
	operationList []operation.Operation
	index         int
}

// NewOperationPointer wraps operationList, which must be non-empty.
func NewOperationPointer(operationList []operation.Operation) *OperationPointer {
	return &OperationPointer{operationList: operationList}
}

// Advance moves the index forward by n (mod the list length); n may be
// negative. n comes from the skip command's stack-popped offset, which can
// be arbitrarily large, so the reduction happens in big.Int arithmetic
// before the (now always small) result is converted to a machine int.
func (p *OperationPointer) Advance(n *big.Int) {
	length := len(p.operationList)
	idx := new(big.Int).Mod(n, big.NewInt(int64(length)))
	p.index = (p.index + int(idx.Int64())) % length
}

// advanceInt is Advance for callers (RequestOperation's internal +1 step)
// that already hold a small, known-safe int.
func (p *OperationPointer) advanceInt(n int) {
	p.Advance(big.NewInt(int64(n)))
}

// RequestOperation returns the operation at the current index, then
// advances by one.
func (p *OperationPointer) RequestOperation() operation.Operation {
	op := p.operationList[p.index]
	p.advanceInt(1)
	return op
}
