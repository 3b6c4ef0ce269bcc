package composite

import (
	"crypto/rand"
	"io"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
)

// GenerateKeyPair creates a new signature key pair able to sign messageCount
// messages, generalizing bbs/keygen.go's GenerateKeyPair: W = g2^x plus a
// generator vector big enough for one blinding factor (Q1) and one
// generator per message.
func GenerateKeyPair(messageCount int, rng io.Reader) (*KeyPair, error) {
	if rng == nil {
		rng = rand.Reader
	}

	x, err := randomScalar(rng)
	if err != nil {
		return nil, err
	}

	_, _, g1, g2 := bls12381.Generators()

	var g2Jac bls12381.G2Jac
	g2Jac.FromAffine(&g2)
	g2Jac.ScalarMultiplication(&g2Jac, x)
	var w bls12381.G2Affine
	w.FromJacobian(&g2Jac)

	gens, err := GenerateGenerators([]byte("composite/signature-generators"), messageCount+1, rng)
	if err != nil {
		return nil, err
	}

	pk := &PublicKey{
		W:            w,
		G1:           g1,
		G2:           g2,
		Q1:           gens.G[0],
		H:            gens.G[1:],
		MessageCount: messageCount,
	}

	return &KeyPair{
		Private: &PrivateKey{X: x},
		Public:  pk,
	}, nil
}

// Sign produces a signature over messages under kp, following the BBS+
// relation A = (g1 · Q1^s · ∏H_i^{m_i})^{1/(x+e)} from bbs/signature.go's
// CreateSignature, specialized to this engine's PublicKey/Signature shapes.
func Sign(kp *KeyPair, messages []Scalar, rng io.Reader) (*Signature, error) {
	if rng == nil {
		rng = rand.Reader
	}
	if len(messages) != kp.Public.MessageCount {
		return nil, newErr(ErrInvalidStatement, "message count does not match public key")
	}

	e, err := randomScalar(rng)
	if err != nil {
		return nil, err
	}
	s, err := randomScalar(rng)
	if err != nil {
		return nil, err
	}

	var acc bls12381.G1Jac
	acc.FromAffine(&kp.Public.G1)

	var q1Jac bls12381.G1Jac
	q1Jac.FromAffine(&kp.Public.Q1)
	q1Jac.ScalarMultiplication(&q1Jac, s)
	acc.AddAssign(&q1Jac)

	for i, m := range messages {
		var hJac bls12381.G1Jac
		hJac.FromAffine(&kp.Public.H[i])
		hJac.ScalarMultiplication(&hJac, m)
		acc.AddAssign(&hJac)
	}

	exponent := scalarInverse(addMod(kp.Private.X, e))

	acc.ScalarMultiplication(&acc, exponent)
	var a bls12381.G1Affine
	a.FromJacobian(&acc)

	return &Signature{A: a, E: e, S: s}, nil
}
