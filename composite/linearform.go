package composite

import (
	"math/big"
)

// LinearForm is a public linear map over a vector of scalars, L(x) = Σ wᵢxᵢ,
// used by CompressionCore to prove a Pedersen opening additionally satisfies
// a public linear constraint (SPEC_FULL.md §4.3), ported from the shape of
// original_source/compressed_sigma/src/compressed_linear_form.rs's
// LinearForm trait.
type LinearForm interface {
	// Eval computes L(x) for a vector x of the form's declared size.
	Eval(x []Scalar) Scalar
	// Size is the number of scalars this form accepts.
	Size() int
	// SplitInHalf returns the left and right halves of the form
	// (each of size Size()/2, rounded so the halves sum to Size()).
	SplitInHalf() (left, right LinearForm)
	// Scale returns a new form computing c·L(x).
	Scale(c Scalar) LinearForm
	// FoldWith returns c·L + other, the folding rule CompressionCore applies
	// to the two linear-form halves at each halving round.
	FoldWith(c Scalar, other LinearForm) LinearForm
}

// WeightedSumLinearForm is the concrete linear form used by range
// statements: L(x) = Σ weights[i]·x[i]. A bit-decomposition range proof sets
// weights[i] = 2^i so that L(bits) recovers the committed value
// (SPEC_FULL.md §4.4 "RangeStatement").
type WeightedSumLinearForm struct {
	weights []Scalar
}

// NewWeightedSumLinearForm builds a linear form from an explicit weight
// vector.
func NewWeightedSumLinearForm(weights []Scalar) *WeightedSumLinearForm {
	return &WeightedSumLinearForm{weights: weights}
}

// PowersOfTwoLinearForm builds the weight vector (1, 2, 4, ..., 2^(n-1)) used
// to recover a value from its bit decomposition.
func PowersOfTwoLinearForm(n int) *WeightedSumLinearForm {
	weights := make([]Scalar, n)
	pow := big.NewInt(1)
	for i := 0; i < n; i++ {
		weights[i] = new(big.Int).Set(pow)
		pow = new(big.Int).Lsh(pow, 1)
	}
	return &WeightedSumLinearForm{weights: weights}
}

func (f *WeightedSumLinearForm) Size() int { return len(f.weights) }

func (f *WeightedSumLinearForm) Eval(x []Scalar) Scalar {
	acc := new(big.Int)
	tmp := new(big.Int)
	for i, w := range f.weights {
		tmp.Mul(w, x[i])
		acc.Add(acc, tmp)
	}
	acc.Mod(acc, Order)
	return acc
}

func (f *WeightedSumLinearForm) SplitInHalf() (LinearForm, LinearForm) {
	mid := (len(f.weights) + 1) / 2
	left := &WeightedSumLinearForm{weights: append([]Scalar(nil), f.weights[:mid]...)}
	right := &WeightedSumLinearForm{weights: append([]Scalar(nil), f.weights[mid:]...)}
	return left, right
}

func (f *WeightedSumLinearForm) Scale(c Scalar) LinearForm {
	scaled := make([]Scalar, len(f.weights))
	for i, w := range f.weights {
		s := new(big.Int).Mul(w, c)
		s.Mod(s, Order)
		scaled[i] = s
	}
	return &WeightedSumLinearForm{weights: scaled}
}

// FoldWith computes c·f + other, matching other's length (the two halves of
// a split are always equal length or differ by at most one, per Size()'s
// power-of-two precondition).
func (f *WeightedSumLinearForm) FoldWith(c Scalar, other LinearForm) LinearForm {
	o, ok := other.(*WeightedSumLinearForm)
	if !ok {
		// The right half of a padded form's split is itself padded; its
		// trailing coordinate has weight zero, so folding against the inner
		// weights (the missing slot counted as zero below) gives the same form.
		o = other.(*paddedLinearForm).inner.(*WeightedSumLinearForm)
	}
	n := len(f.weights)
	if len(o.weights) > n {
		n = len(o.weights)
	}
	folded := make([]Scalar, n)
	tmp := new(big.Int)
	for i := 0; i < n; i++ {
		v := new(big.Int)
		if i < len(f.weights) {
			tmp.Mul(c, f.weights[i])
			v.Add(v, tmp)
		}
		if i < len(o.weights) {
			v.Add(v, o.weights[i])
		}
		v.Mod(v, Order)
		folded[i] = v
	}
	return &WeightedSumLinearForm{weights: folded}
}

// paddedLinearForm extends an inner form with one extra trailing coordinate
// of weight zero, so it can be evaluated against a vector one longer than
// the inner form's declared size. CompressionCore uses this to fold the
// Pedersen blinding response (which the linear form must ignore) into the
// same halving recursion as the witness responses.
type paddedLinearForm struct {
	inner LinearForm
}

func padLinearForm(form LinearForm) LinearForm {
	return &paddedLinearForm{inner: form}
}

func (p *paddedLinearForm) Size() int { return p.inner.Size() + 1 }

func (p *paddedLinearForm) Eval(x []Scalar) Scalar {
	return p.inner.Eval(x[:p.inner.Size()])
}

func (p *paddedLinearForm) SplitInHalf() (LinearForm, LinearForm) {
	l, r := p.inner.SplitInHalf()
	return l, &paddedLinearForm{inner: r}
}

func (p *paddedLinearForm) Scale(c Scalar) LinearForm {
	return &paddedLinearForm{inner: p.inner.Scale(c)}
}

func (p *paddedLinearForm) FoldWith(c Scalar, other LinearForm) LinearForm {
	o, ok := other.(*paddedLinearForm)
	if !ok {
		return &paddedLinearForm{inner: p.inner.FoldWith(c, other)}
	}
	return &paddedLinearForm{inner: p.inner.FoldWith(c, o.inner)}
}
