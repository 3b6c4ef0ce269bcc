package yamlspec

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"os"

	"github.com/holiman/uint256"
	"gopkg.in/yaml.v2"

	"github.com/anupsv/composite-zkp/composite"
)

// Document is the top-level YAML shape for a ProofSpec.
type Document struct {
	Context        string           `yaml:"context,omitempty"`
	Statements     []StatementYAML  `yaml:"statements"`
	EqualWitnesses [][]WitnessRefYAML `yaml:"equalWitnesses,omitempty"`
}

// WitnessRefYAML addresses one statement's local witness by index.
type WitnessRefYAML struct {
	Statement int `yaml:"statement"`
	Witness   int `yaml:"witness"`
}

// StatementYAML is one statement entry. Kind selects which of the
// kind-specific fields below apply; unused fields are left zero.
type StatementYAML struct {
	Kind string `yaml:"kind"`

	// SetupParam is the string key this statement's primary setup
	// parameter (public key, generator vector, or verifying key) is
	// registered under in the Compile parameter bag.
	SetupParam string `yaml:"setupParam,omitempty"`
	// EncryptionKey is a second setup-parameter key, used only by
	// verifiableEncryption statements (the ElGamal public key, distinct
	// from the commitment generators named by SetupParam).
	EncryptionKey string `yaml:"encryptionKey,omitempty"`

	MessageCount int         `yaml:"messageCount,omitempty"`
	Disclosed    map[int]string `yaml:"disclosed,omitempty"`

	WitnessCount int    `yaml:"witnessCount,omitempty"`
	Commitment   string `yaml:"commitment,omitempty"`

	BitLength       int    `yaml:"bitLength,omitempty"`
	Min             string `yaml:"min,omitempty"`
	Max             string `yaml:"max,omitempty"`
	// ValueCommitment is range statements' separate Pedersen commitment to
	// the raw value (over the dedicated generator gens.G[BitLength]), used
	// to bind the value into cross-statement witness equality.
	ValueCommitment string `yaml:"valueCommitment,omitempty"`

	Accumulator   string `yaml:"accumulator,omitempty"`
	NonMembership bool   `yaml:"nonMembership,omitempty"`

	Ciphertext1 string `yaml:"ciphertext1,omitempty"`
	Ciphertext2 string `yaml:"ciphertext2,omitempty"`

	PublicInputs []string `yaml:"publicInputs,omitempty"`
}

// Load reads and parses a Document from a YAML file.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("yamlspec: reading %s: %w", path, err)
	}
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("yamlspec: parsing %s: %w", path, err)
	}
	return &doc, nil
}

func decodeG1(s string) (composite.G1, error) {
	var g composite.G1
	if s == "" {
		return g, nil
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return g, fmt.Errorf("yamlspec: invalid hex point: %w", err)
	}
	if err := g.Unmarshal(b); err != nil {
		return g, fmt.Errorf("yamlspec: invalid G1 point: %w", err)
	}
	return g, nil
}

func decodeScalar(s string) (composite.Scalar, error) {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("yamlspec: invalid decimal scalar %q", s)
	}
	return v, nil
}

func decodeUint256(s string) (uint256.Int, error) {
	var v uint256.Int
	if err := v.SetFromDecimal(s); err != nil {
		return v, fmt.Errorf("yamlspec: invalid decimal bound %q: %w", s, err)
	}
	return v, nil
}

// Compile turns the Document into a composite.ProofSpec, registering every
// named setup parameter the statements reference into a fresh
// composite.SetupParams pool. params maps the string keys used by
// SetupParam/EncryptionKey fields to the actual parameter
// object (a *composite.PublicKey, *composite.PedersenGens,
// *composite.AccumulatorPublicKey, *composite.G1, or
// *composite.R1CSVerifyingKey).
func Compile(doc *Document, params map[string]any) (*composite.ProofSpec, error) {
	setup := composite.NewSetupParams()
	paramIdx := map[string]int{}
	resolve := func(key string) (int, error) {
		if idx, ok := paramIdx[key]; ok {
			return idx, nil
		}
		v, ok := params[key]
		if !ok {
			return 0, fmt.Errorf("yamlspec: setup parameter %q not supplied", key)
		}
		idx := setup.Add(v)
		paramIdx[key] = idx
		return idx, nil
	}

	spec := composite.NewProofSpec(setup)
	if doc.Context != "" {
		ctx, err := hex.DecodeString(doc.Context)
		if err != nil {
			return nil, fmt.Errorf("yamlspec: invalid context hex: %w", err)
		}
		spec.Context = ctx
	}

	for i, st := range doc.Statements {
		stmt, err := compileStatement(st, resolve)
		if err != nil {
			return nil, fmt.Errorf("yamlspec: statement %d: %w", i, err)
		}
		spec.AddStatement(stmt)
	}

	for _, eq := range doc.EqualWitnesses {
		set := make(composite.EqualWitnesses, len(eq))
		for i, r := range eq {
			set[i] = composite.WitnessRef{StatementIndex: r.Statement, WitnessIndex: r.Witness}
		}
		spec.MetaStatements.AddEqualWitnesses(set)
	}

	return spec, nil
}

func compileStatement(st StatementYAML, resolve func(string) (int, error)) (composite.Statement, error) {
	switch st.Kind {
	case "signaturePoK":
		idx, err := resolve(st.SetupParam)
		if err != nil {
			return composite.Statement{}, err
		}
		disclosed := make(map[int]composite.Scalar, len(st.Disclosed))
		for i, v := range st.Disclosed {
			s, err := decodeScalar(v)
			if err != nil {
				return composite.Statement{}, err
			}
			disclosed[i] = s
		}
		return composite.Statement{
			Kind: composite.KindSignaturePoK,
			Signature: &composite.SignatureStatement{
				PublicKeyParamsIdx: idx,
				MessageCount:       st.MessageCount,
				Disclosed:          disclosed,
			},
		}, nil

	case "pedersenCommitment":
		idx, err := resolve(st.SetupParam)
		if err != nil {
			return composite.Statement{}, err
		}
		commitment, err := decodeG1(st.Commitment)
		if err != nil {
			return composite.Statement{}, err
		}
		return composite.Statement{
			Kind: composite.KindPedersenCommitment,
			Pedersen: &composite.PedersenStatement{
				GensParamsIdx: idx,
				Commitment:    commitment,
				WitnessCount:  st.WitnessCount,
			},
		}, nil

	case "range":
		idx, err := resolve(st.SetupParam)
		if err != nil {
			return composite.Statement{}, err
		}
		commitment, err := decodeG1(st.Commitment)
		if err != nil {
			return composite.Statement{}, err
		}
		valueCommitment, err := decodeG1(st.ValueCommitment)
		if err != nil {
			return composite.Statement{}, err
		}
		min, err := decodeUint256(st.Min)
		if err != nil {
			return composite.Statement{}, err
		}
		max, err := decodeUint256(st.Max)
		if err != nil {
			return composite.Statement{}, err
		}
		return composite.Statement{
			Kind: composite.KindRange,
			Range: &composite.RangeStatement{
				GensParamsIdx:   idx,
				Commitment:      commitment,
				ValueCommitment: valueCommitment,
				BitLength:       st.BitLength,
				Min:             min,
				Max:             max,
			},
		}, nil

	case "accumulatorMembership":
		idx, err := resolve(st.SetupParam)
		if err != nil {
			return composite.Statement{}, err
		}
		acc, err := decodeG1(st.Accumulator)
		if err != nil {
			return composite.Statement{}, err
		}
		return composite.Statement{
			Kind: composite.KindAccumulatorMembership,
			Accumulator: &composite.AccumulatorStatement{
				PublicKeyParamsIdx: idx,
				Accumulator:        acc,
				NonMembership:      st.NonMembership,
			},
		}, nil

	case "verifiableEncryption":
		gensIdx, err := resolve(st.SetupParam)
		if err != nil {
			return composite.Statement{}, err
		}
		pubIdx, err := resolve(st.EncryptionKey)
		if err != nil {
			return composite.Statement{}, err
		}
		c1, err := decodeG1(st.Ciphertext1)
		if err != nil {
			return composite.Statement{}, err
		}
		c2, err := decodeG1(st.Ciphertext2)
		if err != nil {
			return composite.Statement{}, err
		}
		commitment, err := decodeG1(st.Commitment)
		if err != nil {
			return composite.Statement{}, err
		}
		return composite.Statement{
			Kind: composite.KindVerifiableEncryption,
			VerEnc: &composite.VerEncStatement{
				GensParamsIdx:   gensIdx,
				PubKeyParamsIdx: pubIdx,
				Ciphertext1:     c1,
				Ciphertext2:     c2,
				Commitment:      commitment,
			},
		}, nil

	case "r1csGroth16":
		idx, err := resolve(st.SetupParam)
		if err != nil {
			return composite.Statement{}, err
		}
		inputs := make([]composite.Scalar, len(st.PublicInputs))
		for i, v := range st.PublicInputs {
			s, err := decodeScalar(v)
			if err != nil {
				return composite.Statement{}, err
			}
			inputs[i] = s
		}
		return composite.Statement{
			Kind: composite.KindR1CSGroth16,
			R1CS: &composite.R1CSStatement{
				VerifyingKeyParamsIdx: idx,
				PublicInputs:          inputs,
			},
		}, nil

	default:
		return composite.Statement{}, fmt.Errorf("yamlspec: unknown statement kind %q", st.Kind)
	}
}
