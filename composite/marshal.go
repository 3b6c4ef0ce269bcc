package composite

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math/big"
)

// Wire encoding follows bbs/proof_marshal.go's convention: every variable-
// length field is a big-endian uint32 length prefix followed by its raw
// bytes (G1/G2 points via Marshal, scalars via Bytes()).

func writeLenPrefixed(w *bytes.Buffer, data []byte) error {
	if err := binary.Write(w, binary.BigEndian, uint32(len(data))); err != nil {
		return err
	}
	_, err := w.Write(data)
	return err
}

func readLenPrefixed(r *bytes.Reader) ([]byte, error) {
	var n uint32
	if err := binary.Read(r, binary.BigEndian, &n); err != nil {
		return nil, err
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

func writeScalar(w *bytes.Buffer, s Scalar) error { return writeLenPrefixed(w, s.Bytes()) }

func readScalar(r *bytes.Reader) (Scalar, error) {
	b, err := readLenPrefixed(r)
	if err != nil {
		return nil, err
	}
	return new(big.Int).SetBytes(b), nil
}

func writeG1(w *bytes.Buffer, p *G1) error { return writeLenPrefixed(w, p.Marshal()) }

func readG1(r *bytes.Reader) (G1, error) {
	b, err := readLenPrefixed(r)
	if err != nil {
		return G1{}, err
	}
	var p G1
	if err := p.Unmarshal(b); err != nil {
		return G1{}, err
	}
	return p, nil
}

// gtBytes serializes a GT value component-wise: its twelve fp.Element field
// components, in a fixed order, so gtBytes/gtFromBytes round-trip
// deterministically.
func gtBytes(g *GT) []byte {
	out := make([]byte, 0, 12*48)
	components := [12]*big.Int{
		new(big.Int), new(big.Int), new(big.Int), new(big.Int),
		new(big.Int), new(big.Int), new(big.Int), new(big.Int),
		new(big.Int), new(big.Int), new(big.Int), new(big.Int),
	}
	g.C0.B0.A0.ToBigIntRegular(components[0])
	g.C0.B0.A1.ToBigIntRegular(components[1])
	g.C0.B1.A0.ToBigIntRegular(components[2])
	g.C0.B1.A1.ToBigIntRegular(components[3])
	g.C0.B2.A0.ToBigIntRegular(components[4])
	g.C0.B2.A1.ToBigIntRegular(components[5])
	g.C1.B0.A0.ToBigIntRegular(components[6])
	g.C1.B0.A1.ToBigIntRegular(components[7])
	g.C1.B1.A0.ToBigIntRegular(components[8])
	g.C1.B1.A1.ToBigIntRegular(components[9])
	g.C1.B2.A0.ToBigIntRegular(components[10])
	g.C1.B2.A1.ToBigIntRegular(components[11])
	for _, c := range components {
		buf := make([]byte, 48)
		c.FillBytes(buf)
		out = append(out, buf...)
	}
	return out
}

func gtFromBytes(b []byte) (GT, error) {
	if len(b) != 12*48 {
		return GT{}, fmt.Errorf("composite: GT encoding must be %d bytes, got %d", 12*48, len(b))
	}
	var g GT
	targets := [12]*big.Int{}
	for i := range targets {
		targets[i] = new(big.Int).SetBytes(b[i*48 : (i+1)*48])
	}
	g.C0.B0.A0.SetBigInt(targets[0])
	g.C0.B0.A1.SetBigInt(targets[1])
	g.C0.B1.A0.SetBigInt(targets[2])
	g.C0.B1.A1.SetBigInt(targets[3])
	g.C0.B2.A0.SetBigInt(targets[4])
	g.C0.B2.A1.SetBigInt(targets[5])
	g.C1.B0.A0.SetBigInt(targets[6])
	g.C1.B0.A1.SetBigInt(targets[7])
	g.C1.B1.A0.SetBigInt(targets[8])
	g.C1.B1.A1.SetBigInt(targets[9])
	g.C1.B2.A0.SetBigInt(targets[10])
	g.C1.B2.A1.SetBigInt(targets[11])
	return g, nil
}

func writeGT(w *bytes.Buffer, g *GT) error {
	return writeLenPrefixed(w, gtBytes(g))
}

func readGT(r *bytes.Reader) (GT, error) {
	b, err := readLenPrefixed(r)
	if err != nil {
		return GT{}, err
	}
	return gtFromBytes(b)
}

// MarshalBinary serializes a Proof in statement order, one tagged record
// per statement, following bbs/proof_marshal.go's length-prefixed encoding.
func (p *Proof) MarshalBinary() ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := binary.Write(buf, binary.BigEndian, uint32(len(p.Statements))); err != nil {
		return nil, err
	}
	for i := range p.Statements {
		if err := marshalStatementProof(buf, &p.Statements[i]); err != nil {
			return nil, newStmtErr(ErrSerializationError, i, err)
		}
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary decodes a Proof previously produced by MarshalBinary.
func (p *Proof) UnmarshalBinary(data []byte) error {
	r := bytes.NewReader(data)
	var n uint32
	if err := binary.Read(r, binary.BigEndian, &n); err != nil {
		return newErr(ErrSerializationError, err.Error())
	}
	stmts := make([]StatementProof, n)
	for i := range stmts {
		sp, err := unmarshalStatementProof(r)
		if err != nil {
			return newStmtErr(ErrSerializationError, i, err)
		}
		stmts[i] = *sp
	}
	p.Statements = stmts
	return nil
}

func marshalStatementProof(buf *bytes.Buffer, sp *StatementProof) error {
	if err := binary.Write(buf, binary.BigEndian, uint32(sp.Kind)); err != nil {
		return err
	}
	switch sp.Kind {
	case KindSignaturePoK:
		pr := sp.Signature
		for _, p := range []*G1{&pr.APrime, &pr.ABar, &pr.D} {
			if err := writeG1(buf, p); err != nil {
				return err
			}
		}
		if err := writeScalar(buf, pr.SHat); err != nil {
			return err
		}
		if err := binary.Write(buf, binary.BigEndian, uint32(len(pr.MHat))); err != nil {
			return err
		}
		for idx, v := range pr.MHat {
			if err := binary.Write(buf, binary.BigEndian, int32(idx)); err != nil {
				return err
			}
			if err := writeScalar(buf, v); err != nil {
				return err
			}
		}
	case KindPedersenCommitment:
		pr := sp.Pedersen
		if err := writeG1(buf, &pr.T); err != nil {
			return err
		}
		if err := binary.Write(buf, binary.BigEndian, uint32(len(pr.XHat))); err != nil {
			return err
		}
		for _, v := range pr.XHat {
			if err := writeScalar(buf, v); err != nil {
				return err
			}
		}
		if err := writeScalar(buf, pr.RHat); err != nil {
			return err
		}
	case KindRange:
		pr := sp.Range
		if err := writeG1(buf, &pr.Commitment.A); err != nil {
			return err
		}
		if err := binary.Write(buf, binary.BigEndian, uint32(len(pr.Commitment.R))); err != nil {
			return err
		}
		for _, v := range pr.Commitment.R {
			if err := writeScalar(buf, v); err != nil {
				return err
			}
		}
		if err := writeScalar(buf, pr.Commitment.Rho); err != nil {
			return err
		}
		if err := writeScalar(buf, pr.Commitment.T); err != nil {
			return err
		}
		if err := binary.Write(buf, binary.BigEndian, uint32(len(pr.Response.Rounds))); err != nil {
			return err
		}
		for _, round := range pr.Response.Rounds {
			if err := writeG1(buf, &round.A); err != nil {
				return err
			}
			if err := writeG1(buf, &round.B); err != nil {
				return err
			}
		}
		if err := writeScalar(buf, pr.Response.Z0); err != nil {
			return err
		}
		if err := writeScalar(buf, pr.Response.Z1); err != nil {
			return err
		}
		if err := writeG1(buf, &pr.ValueT); err != nil {
			return err
		}
		if err := writeScalar(buf, pr.ValueHat); err != nil {
			return err
		}
		if err := writeScalar(buf, pr.ValueBlindHat); err != nil {
			return err
		}
	case KindAccumulatorMembership:
		pr := sp.Accumulator
		if err := writeG1(buf, &pr.T1); err != nil {
			return err
		}
		if err := writeScalar(buf, pr.Rho); err != nil {
			return err
		}
		if err := writeGT(buf, &pr.Commitment); err != nil {
			return err
		}
		if err := writeScalar(buf, pr.Hat); err != nil {
			return err
		}
	case KindVerifiableEncryption:
		pr := sp.VerEnc
		for _, p := range []*G1{&pr.T1, &pr.T2, &pr.T3} {
			if err := writeG1(buf, p); err != nil {
				return err
			}
		}
		for _, s := range []Scalar{pr.XHat, pr.RHat, pr.SHat} {
			if err := writeScalar(buf, s); err != nil {
				return err
			}
		}
	case KindR1CSGroth16:
		if err := writeLenPrefixed(buf, sp.R1CS.ProofBytes); err != nil {
			return err
		}
	default:
		return fmt.Errorf("composite: cannot marshal unknown statement kind %d", sp.Kind)
	}
	return nil
}

func unmarshalStatementProof(r *bytes.Reader) (*StatementProof, error) {
	var kindRaw uint32
	if err := binary.Read(r, binary.BigEndian, &kindRaw); err != nil {
		return nil, err
	}
	kind := StatementKind(kindRaw)
	sp := &StatementProof{Kind: kind}

	switch kind {
	case KindSignaturePoK:
		pr := &SignatureProof{MHat: map[int]Scalar{}}
		var err error
		if pr.APrime, err = readG1(r); err != nil {
			return nil, err
		}
		if pr.ABar, err = readG1(r); err != nil {
			return nil, err
		}
		if pr.D, err = readG1(r); err != nil {
			return nil, err
		}
		if pr.SHat, err = readScalar(r); err != nil {
			return nil, err
		}
		var n uint32
		if err := binary.Read(r, binary.BigEndian, &n); err != nil {
			return nil, err
		}
		for i := uint32(0); i < n; i++ {
			var idx int32
			if err := binary.Read(r, binary.BigEndian, &idx); err != nil {
				return nil, err
			}
			v, err := readScalar(r)
			if err != nil {
				return nil, err
			}
			pr.MHat[int(idx)] = v
		}
		sp.Signature = pr

	case KindPedersenCommitment:
		pr := &PedersenProof{}
		var err error
		if pr.T, err = readG1(r); err != nil {
			return nil, err
		}
		var n uint32
		if err := binary.Read(r, binary.BigEndian, &n); err != nil {
			return nil, err
		}
		pr.XHat = make([]Scalar, n)
		for i := range pr.XHat {
			if pr.XHat[i], err = readScalar(r); err != nil {
				return nil, err
			}
		}
		if pr.RHat, err = readScalar(r); err != nil {
			return nil, err
		}
		sp.Pedersen = pr

	case KindRange:
		pr := &RangeProof{Commitment: &RandomCommitment{}, Response: &CompressedResponse{}}
		var err error
		if pr.Commitment.A, err = readG1(r); err != nil {
			return nil, err
		}
		var nr uint32
		if err := binary.Read(r, binary.BigEndian, &nr); err != nil {
			return nil, err
		}
		pr.Commitment.R = make([]Scalar, nr)
		for i := range pr.Commitment.R {
			if pr.Commitment.R[i], err = readScalar(r); err != nil {
				return nil, err
			}
		}
		if pr.Commitment.Rho, err = readScalar(r); err != nil {
			return nil, err
		}
		if pr.Commitment.T, err = readScalar(r); err != nil {
			return nil, err
		}
		var nRounds uint32
		if err := binary.Read(r, binary.BigEndian, &nRounds); err != nil {
			return nil, err
		}
		pr.Response.Rounds = make([]CompressionRound, nRounds)
		for i := range pr.Response.Rounds {
			if pr.Response.Rounds[i].A, err = readG1(r); err != nil {
				return nil, err
			}
			if pr.Response.Rounds[i].B, err = readG1(r); err != nil {
				return nil, err
			}
		}
		if pr.Response.Z0, err = readScalar(r); err != nil {
			return nil, err
		}
		if pr.Response.Z1, err = readScalar(r); err != nil {
			return nil, err
		}
		if pr.ValueT, err = readG1(r); err != nil {
			return nil, err
		}
		if pr.ValueHat, err = readScalar(r); err != nil {
			return nil, err
		}
		if pr.ValueBlindHat, err = readScalar(r); err != nil {
			return nil, err
		}
		sp.Range = pr

	case KindAccumulatorMembership:
		pr := &AccumulatorProof{}
		var err error
		if pr.T1, err = readG1(r); err != nil {
			return nil, err
		}
		if pr.Rho, err = readScalar(r); err != nil {
			return nil, err
		}
		if pr.Commitment, err = readGT(r); err != nil {
			return nil, err
		}
		if pr.Hat, err = readScalar(r); err != nil {
			return nil, err
		}
		sp.Accumulator = pr

	case KindVerifiableEncryption:
		pr := &VerEncProof{}
		var err error
		if pr.T1, err = readG1(r); err != nil {
			return nil, err
		}
		if pr.T2, err = readG1(r); err != nil {
			return nil, err
		}
		if pr.T3, err = readG1(r); err != nil {
			return nil, err
		}
		if pr.XHat, err = readScalar(r); err != nil {
			return nil, err
		}
		if pr.RHat, err = readScalar(r); err != nil {
			return nil, err
		}
		if pr.SHat, err = readScalar(r); err != nil {
			return nil, err
		}
		sp.VerEnc = pr

	case KindR1CSGroth16:
		b, err := readLenPrefixed(r)
		if err != nil {
			return nil, err
		}
		sp.R1CS = &R1CSProof{ProofBytes: b}

	default:
		return nil, fmt.Errorf("composite: cannot unmarshal unknown statement kind %d", kind)
	}
	return sp, nil
}
