// Command prove builds a composite zero-knowledge proof from a YAML
// ProofSpec, a setup-parameters file, and a witnesses file, following the
// flag-based, JSON-bodied CLI shape of cmd/credgen.
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

// proofResponse is the JSON body written to -out, tagged with a
// correlation ID so a caller can match a prove invocation's output back to
// its request in logs (an operational concern, unrelated to proof
// soundness).
type proofResponse struct {
	RequestID string `json:"requestId"`
	Proof     string `json:"proof"`
}

func main() {
	specPath := flag.String("spec", "", "path to the YAML ProofSpec")
	paramsPath := flag.String("params", "", "path to the setup-parameters JSON file")
	witnessesPath := flag.String("witnesses", "", "path to the witnesses JSON file")
	noncePath := flag.String("nonce", "", "hex-encoded Fiat-Shamir nonce")
	outPath := flag.String("out", "", "output path for the proof JSON body (stdout if empty)")
	flag.Parse()

	if *specPath == "" || *paramsPath == "" || *witnessesPath == "" {
		fmt.Fprintln(os.Stderr, "Usage: prove -spec spec.yaml -params params.json -witnesses witnesses.json [-nonce hex] [-out proof.json]")
		os.Exit(1)
	}

	requestID := uuid.New().String()
	fmt.Fprintf(os.Stderr, "[%s] proving...\n", requestID)

	if err := run(requestID, *specPath, *paramsPath, *witnessesPath, *noncePath, *outPath); err != nil {
		fmt.Fprintf(os.Stderr, "[%s] error: %v\n", requestID, err)
		os.Exit(1)
	}
}

func run(requestID, specPath, paramsPath, witnessesPath, noncePath, outPath string) error {
	doc, err := yamlspec.Load(specPath)
	if err != nil {
		return err
	}
	params, err := yamlspec.LoadParams(paramsPath)
	if err != nil {
		return err
	}
	kinds := make([]string, len(doc.Statements))
	for i, s := range doc.Statements {
		kinds[i] = s.Kind
	}
	witnesses, err := yamlspec.LoadWitnesses(witnessesPath, kinds)
	if err != nil {
		return err
	}

	spec, err := yamlspec.Compile(doc, params)
	if err != nil {
		return err
	}

	var nonce []byte
	if noncePath != "" {
		nonce, err = hex.DecodeString(noncePath)
		if err != nil {
			return fmt.Errorf("invalid -nonce hex: %w", err)
		}
	}

	proof, err := composite.Prove(spec, witnesses, nonce, rand.Reader)
	if err != nil {
		return fmt.Errorf("prove: %w", err)
	}

	encoded, err := proof.MarshalBinary()
	if err != nil {
		return fmt.Errorf("marshaling proof: %w", err)
	}

	resp := proofResponse{RequestID: requestID, Proof: hex.EncodeToString(encoded)}
	out, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return err
	}

	if outPath == "" {
		fmt.Println(string(out))
		return nil
	}
	if err := os.WriteFile(outPath, out, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", outPath, err)
	}
	fmt.Fprintf(os.Stderr, "[%s] wrote %s\n", requestID, outPath)
	return nil
}
