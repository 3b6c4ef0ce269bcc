// Command verify checks a composite zero-knowledge proof against a YAML
// ProofSpec and setup-parameters file, following the flag-based CLI shape
// of cmd/credgen's verify-proof subcommand.
package main

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/anupsv/composite-zkp/composite"
	"github.com/anupsv/composite-zkp/pkg/yamlspec"
)

type proofBody struct {
	RequestID string `json:"requestId,omitempty"`
	Proof     string `json:"proof"`
}

type verifyResponse struct {
	RequestID string `json:"requestId"`
	Valid     bool   `json:"valid"`
	Error     string `json:"error,omitempty"`
}

func main() {
	specPath := flag.String("spec", "", "path to the YAML ProofSpec")
	paramsPath := flag.String("params", "", "path to the setup-parameters JSON file")
	proofPath := flag.String("proof", "", "path to the proof JSON body produced by cmd/prove")
	noncePath := flag.String("nonce", "", "hex-encoded Fiat-Shamir nonce")
	lazy := flag.Bool("lazy-pairing", false, "defer every staged pairing claim to one batched check")
	flag.Parse()

	if *specPath == "" || *paramsPath == "" || *proofPath == "" {
		fmt.Fprintln(os.Stderr, "Usage: verify -spec spec.yaml -params params.json -proof proof.json [-nonce hex] [-lazy-pairing]")
		os.Exit(1)
	}

	requestID := uuid.New().String()
	resp := verifyResponse{RequestID: requestID}

	if err := run(specPath, paramsPath, proofPath, *noncePath, *lazy, &resp); err != nil {
		resp.Error = err.Error()
	}

	out, _ := json.MarshalIndent(resp, "", "  ")
	fmt.Println(string(out))
	if !resp.Valid {
		os.Exit(1)
	}
}

func run(specPath, paramsPath, proofPath *string, noncePath string, lazy bool, resp *verifyResponse) error {
	doc, err := yamlspec.Load(*specPath)
	if err != nil {
		return err
	}
	params, err := yamlspec.LoadParams(*paramsPath)
	if err != nil {
		return err
	}
	spec, err := yamlspec.Compile(doc, params)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(*proofPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", *proofPath, err)
	}
	var body proofBody
	if err := json.Unmarshal(data, &body); err != nil {
		return fmt.Errorf("parsing %s: %w", *proofPath, err)
	}
	encoded, err := hex.DecodeString(body.Proof)
	if err != nil {
		return fmt.Errorf("invalid proof hex: %w", err)
	}
	var proof composite.Proof
	if err := proof.UnmarshalBinary(encoded); err != nil {
		return fmt.Errorf("unmarshaling proof: %w", err)
	}

	var nonce []byte
	if noncePath != "" {
		nonce, err = hex.DecodeString(noncePath)
		if err != nil {
			return fmt.Errorf("invalid -nonce hex: %w", err)
		}
	}

	if resp.RequestID == "" && body.RequestID != "" {
		resp.RequestID = body.RequestID
	}

	err = composite.Verify(spec, &proof, nonce, composite.VerifierConfig{LazyPairingChecks: lazy}, rand.Reader)
	if err != nil {
		return err
	}
	resp.Valid = true
	return nil
}
