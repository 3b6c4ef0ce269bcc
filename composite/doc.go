/*
Package composite implements a composite zero-knowledge proof engine: it
combines heterogeneous ZK sub-proofs (signature possession, Pedersen
openings, range proofs, accumulator membership, verifiable encryption,
Groth16 possession) into a single non-interactive proof over one shared
Fiat-Shamir transcript, tied together by declared witness-equality
constraints.

The engine is built over the BLS12-381 pairing-friendly curve via
github.com/consensys/gnark-crypto, the same curve the teacher signature
library uses.

Usage sketch:

	params := composite.NewSetupParams()
	pkIdx := params.Add(pk)
	gensIdx := params.Add(gens)

	spec := composite.NewProofSpec(params)
	spec.AddStatement(composite.Statement{Kind: composite.KindSignaturePoK, Signature: &composite.SignatureStatement{
		PublicKeyParamsIdx: pkIdx, MessageCount: len(messages), Disclosed: revealed,
	}})
	spec.AddStatement(composite.Statement{Kind: composite.KindPedersenCommitment, Pedersen: &composite.PedersenStatement{
		GensParamsIdx: gensIdx, Commitment: commitment, WitnessCount: 1,
	}})
	spec.MetaStatements.AddEqualWitnesses(composite.EqualWitnesses{
		{StatementIndex: 0, WitnessIndex: 2},
		{StatementIndex: 1, WitnessIndex: 0},
	})

	proof, err := composite.Prove(spec, witnesses, nonce, rand.Reader)
	err = composite.Verify(spec, proof, nonce, composite.VerifierConfig{}, rand.Reader)

See SPEC_FULL.md at the repository root for the full design.
*/
package composite
