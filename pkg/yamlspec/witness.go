package yamlspec

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"

	"github.com/anupsv/composite-zkp/composite"
)

// WitnessEntry is one statement's secret input in a witnesses JSON file,
// supplied alongside a YAML ProofSpec to cmd/prove. Exactly the fields
// matching the statement's kind at the same index are populated.
type WitnessEntry struct {
	// signaturePoK
	SignatureA string   `json:"signatureA,omitempty"`
	SignatureE string   `json:"signatureE,omitempty"`
	SignatureS string   `json:"signatureS,omitempty"`
	Messages   []string `json:"messages,omitempty"`

	// pedersenCommitment (values, blinding) and range (value, blinding)
	// share these names
	Values   []string `json:"values,omitempty"`
	Blinding string   `json:"blinding,omitempty"`
	Value    string   `json:"value,omitempty"`

	// range: blinding for the separate value commitment used to bind the
	// range's hidden value into cross-statement witness equality.
	ValueBlinding string `json:"valueBlinding,omitempty"`

	// verifiableEncryption
	M string `json:"m,omitempty"`
	S string `json:"s,omitempty"`
	K string `json:"k,omitempty"`

	// accumulatorMembership
	C             string `json:"c,omitempty"`
	MemberValue   string `json:"memberValue,omitempty"`

	// r1csGroth16
	ProofBytes string `json:"proofBytes,omitempty"`
}

// LoadWitnesses reads a JSON array of WitnessEntry, one per statement in
// the matching ProofSpec, and decodes each into the concrete
// composite.Witness shape named by kinds.
func LoadWitnesses(path string, kinds []string) ([]*composite.Witness, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("yamlspec: reading %s: %w", path, err)
	}
	var entries []WitnessEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("yamlspec: parsing %s: %w", path, err)
	}
	if len(entries) != len(kinds) {
		return nil, fmt.Errorf("yamlspec: %d witnesses for %d statements", len(entries), len(kinds))
	}
	out := make([]*composite.Witness, len(entries))
	for i, e := range entries {
		w, err := decodeWitnessEntry(kinds[i], e)
		if err != nil {
			return nil, fmt.Errorf("yamlspec: witness %d: %w", i, err)
		}
		out[i] = w
	}
	return out, nil
}

func decodeScalars(ss []string) ([]composite.Scalar, error) {
	out := make([]composite.Scalar, len(ss))
	for i, s := range ss {
		v, err := decodeScalar(s)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func decodeWitnessEntry(kind string, e WitnessEntry) (*composite.Witness, error) {
	switch kind {
	case "signaturePoK":
		a, err := decodeG1(e.SignatureA)
		if err != nil {
			return nil, err
		}
		sigE, err := decodeScalar(e.SignatureE)
		if err != nil {
			return nil, err
		}
		sigS, err := decodeScalar(e.SignatureS)
		if err != nil {
			return nil, err
		}
		messages, err := decodeScalars(e.Messages)
		if err != nil {
			return nil, err
		}
		return &composite.Witness{Signature: &composite.SignatureWitness{
			Signature: &composite.Signature{A: a, E: sigE, S: sigS},
			Messages:  messages,
		}}, nil

	case "pedersenCommitment":
		values, err := decodeScalars(e.Values)
		if err != nil {
			return nil, err
		}
		blinding, err := decodeScalar(e.Blinding)
		if err != nil {
			return nil, err
		}
		return &composite.Witness{Pedersen: &composite.PedersenWitness{Values: values, Blinding: blinding}}, nil

	case "range":
		value, err := decodeScalar(e.Value)
		if err != nil {
			return nil, err
		}
		blinding, err := decodeScalar(e.Blinding)
		if err != nil {
			return nil, err
		}
		valueBlinding, err := decodeScalar(e.ValueBlinding)
		if err != nil {
			return nil, err
		}
		return &composite.Witness{Range: &composite.RangeWitness{
			Value:         value,
			Blinding:      blinding,
			ValueBlinding: valueBlinding,
		}}, nil

	case "accumulatorMembership":
		c, err := decodeG1(e.C)
		if err != nil {
			return nil, err
		}
		value, err := decodeScalar(e.MemberValue)
		if err != nil {
			return nil, err
		}
		return &composite.Witness{Accumulator: &composite.AccumulatorWitness{C: c, Value: value}}, nil

	case "verifiableEncryption":
		m, err := decodeScalar(e.M)
		if err != nil {
			return nil, err
		}
		s, err := decodeScalar(e.S)
		if err != nil {
			return nil, err
		}
		k, err := decodeScalar(e.K)
		if err != nil {
			return nil, err
		}
		return &composite.Witness{VerEnc: &composite.VerEncWitness{M: m, S: s, K: k}}, nil

	case "r1csGroth16":
		b, err := hex.DecodeString(e.ProofBytes)
		if err != nil {
			return nil, err
		}
		return &composite.Witness{R1CS: &composite.R1CSWitness{ProofBytes: b}}, nil

	default:
		return nil, fmt.Errorf("unknown statement kind %q", kind)
	}
}
