package yamlspec

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/groth16"

	"github.com/anupsv/composite-zkp/composite"
)

// ParamEntry is one named setup-parameter entry in a params JSON file
// (the binary material Compile's params bag needs, keyed the same way
// statements reference it via setupParam/encryptionKey in the YAML spec).
type ParamEntry struct {
	Type string `json:"type"`
	// Hex-encoded fields, populated according to Type.
	W     string   `json:"w,omitempty"`     // publicKey: G2 W, accumulatorPublicKey: G2 W
	G2    string   `json:"g2,omitempty"`    // publicKey / accumulatorPublicKey: G2 generator
	G1    string   `json:"g1,omitempty"`    // publicKey: G1 generator; g1Point: the point itself
	Q1    string   `json:"q1,omitempty"`    // publicKey: blinding-factor generator
	H     []string `json:"h,omitempty"`     // publicKey: per-message generators; pedersenGens: G vector
	HBlind string  `json:"hBlind,omitempty"` // pedersenGens: blinding generator
	MessageCount int `json:"messageCount,omitempty"`
	VerifyingKey string `json:"verifyingKey,omitempty"` // r1csVerifyingKey: gnark groth16.VerifyingKey encoding
}

// LoadParams reads a JSON file of named ParamEntry values and decodes each
// into the concrete Go type Compile expects in its params bag.
func LoadParams(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("yamlspec: reading %s: %w", path, err)
	}
	var raw map[string]ParamEntry
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("yamlspec: parsing %s: %w", path, err)
	}
	out := make(map[string]any, len(raw))
	for key, e := range raw {
		v, err := decodeParamEntry(e)
		if err != nil {
			return nil, fmt.Errorf("yamlspec: param %q: %w", key, err)
		}
		out[key] = v
	}
	return out, nil
}

func hexG1(s string) (composite.G1, error) { return decodeG1(s) }

func hexG2(s string) (composite.G2, error) {
	var g composite.G2
	if s == "" {
		return g, nil
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return g, err
	}
	if err := g.Unmarshal(b); err != nil {
		return g, err
	}
	return g, nil
}

func decodeParamEntry(e ParamEntry) (any, error) {
	switch e.Type {
	case "publicKey":
		w, err := hexG2(e.W)
		if err != nil {
			return nil, err
		}
		g1, err := hexG1(e.G1)
		if err != nil {
			return nil, err
		}
		g2, err := hexG2(e.G2)
		if err != nil {
			return nil, err
		}
		q1, err := hexG1(e.Q1)
		if err != nil {
			return nil, err
		}
		h := make([]composite.G1, len(e.H))
		for i, hs := range e.H {
			hv, err := hexG1(hs)
			if err != nil {
				return nil, err
			}
			h[i] = hv
		}
		return &composite.PublicKey{W: w, G1: g1, G2: g2, Q1: q1, H: h, MessageCount: e.MessageCount}, nil

	case "pedersenGens":
		g := make([]composite.G1, len(e.H))
		for i, hs := range e.H {
			hv, err := hexG1(hs)
			if err != nil {
				return nil, err
			}
			g[i] = hv
		}
		hBlind, err := hexG1(e.HBlind)
		if err != nil {
			return nil, err
		}
		return &composite.PedersenGens{G: g, H: hBlind}, nil

	case "accumulatorPublicKey":
		w, err := hexG2(e.W)
		if err != nil {
			return nil, err
		}
		g2, err := hexG2(e.G2)
		if err != nil {
			return nil, err
		}
		return &composite.AccumulatorPublicKey{W: w, G2: g2}, nil

	case "g1Point":
		g, err := hexG1(e.G1)
		if err != nil {
			return nil, err
		}
		return &g, nil

	case "r1csVerifyingKey":
		b, err := hex.DecodeString(e.VerifyingKey)
		if err != nil {
			return nil, err
		}
		vk := groth16.NewVerifyingKey(ecc.BLS12_381)
		if _, err := vk.ReadFrom(bytes.NewReader(b)); err != nil {
			return nil, fmt.Errorf("decoding groth16 verifying key: %w", err)
		}
		return &composite.R1CSVerifyingKey{VK: vk}, nil

	default:
		return nil, fmt.Errorf("unknown setup parameter type %q", e.Type)
	}
}
