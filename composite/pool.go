package composite

import (
	"sync"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

// ObjectPool recycles the fr.Element scratch slice msmG1 builds on every
// call, generalizing bbs/pool.go's ObjectPool from BBS+'s fixed
// message-vector shapes to CompressionCore's variable-length, per-round
// multi-scalar multiplications: a range proof over a w-bit value runs
// log2(w+1)-1 rounds, each converting a fresh scalar slice to fr.Element form.
type ObjectPool struct {
	frElementSlicePool sync.Pool
}

// NewObjectPool creates an empty pool; GetFrElementSlice falls back to a
// fresh allocation whenever the pooled slice it draws is too small.
func NewObjectPool() *ObjectPool {
	return &ObjectPool{
		frElementSlicePool: sync.Pool{
			New: func() any { return make([]fr.Element, 0, 8) },
		},
	}
}

// GetFrElementSlice returns a zero-length slice with at least capacity room.
func (p *ObjectPool) GetFrElementSlice(capacity int) []fr.Element {
	s := p.frElementSlicePool.Get().([]fr.Element)
	if cap(s) < capacity {
		return make([]fr.Element, 0, capacity)
	}
	return s[:0]
}

// PutFrElementSlice returns a slice obtained from GetFrElementSlice to the
// pool.
func (p *ObjectPool) PutFrElementSlice(s []fr.Element) {
	if s != nil {
		p.frElementSlicePool.Put(s[:0])
	}
}

// defaultPool is the package-wide pool msmG1 draws its fr.Element scratch
// slice from.
var defaultPool = NewObjectPool()

// g1JacFromAffine is a small helper addG1 uses for its Jacobian conversion.
func g1JacFromAffine(a *G1) bls12381.G1Jac {
	var j bls12381.G1Jac
	j.FromAffine(a)
	return j
}
