package composite

import "math/big"

// PublicKey is an issuer's signature verification key: a BLS12-381 G2
// element W = g2^x plus a per-message generator vector (Q1 for the
// blinding factor, H[i] for message i), generalizing bbs/types.go's
// PublicKey to drop the domain/header binding that is specific to
// credential issuance and is out of this engine's scope.
type PublicKey struct {
	W            G2
	G1           G1
	G2           G2
	Q1           G1
	H            []G1
	MessageCount int
}

// Signature is a BBS+-style signature: A = (g1·Q1^s·∏H_i^{m_i})^{1/(x+e)}.
type Signature struct {
	A    G1
	E, S Scalar
}

// PrivateKey holds the issuer secret x.
type PrivateKey struct {
	X Scalar
}

// KeyPair bundles a PrivateKey with its PublicKey.
type KeyPair struct {
	Private *PrivateKey
	Public  *PublicKey
}

func scalarNeg(s Scalar) Scalar {
	n := new(big.Int).Neg(s)
	n.Mod(n, Order)
	return n
}

func addMod(a, b Scalar) Scalar {
	sum := new(big.Int).Add(a, b)
	sum.Mod(sum, Order)
	return sum
}

func scalarInverse(s Scalar) Scalar {
	return new(big.Int).ModInverse(s, Order)
}
