// Command bench measures Prove/Verify latency for the composite engine
// across varying statement counts, following the flag-based CLI shape and
// chart output of the teacher's bench command.
package main

import (
	"crypto/rand"
	"flag"
	"fmt"
	"os"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/anupsv/composite-zkp/composite"
)

func main() {
	minStatements := flag.Int("min-statements", 1, "smallest number of Pedersen statements to benchmark")
	maxStatements := flag.Int("max-statements", 8, "largest number of Pedersen statements to benchmark")
	iterations := flag.Int("iterations", 20, "iterations averaged per data point")
	chartOut := flag.String("chart", "", "PNG output path for a latency chart (empty skips chart output)")
	flag.Parse()

	if *minStatements < 1 || *maxStatements < *minStatements {
		fmt.Fprintln(os.Stderr, "Error: require 1 <= min-statements <= max-statements")
		os.Exit(1)
	}
	if *iterations < 1 {
		fmt.Fprintln(os.Stderr, "Error: iterations must be at least 1")
		os.Exit(1)
	}

	fmt.Println("Running composite-proof benchmarks...")
	var xCounts, proveMs, verifyMs []float64
	for n := *minStatements; n <= *maxStatements; n++ {
		pAvg, vAvg, err := benchmarkStatementCount(n, *iterations)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error at %d statements: %v\n", n, err)
			os.Exit(1)
		}
		fmt.Printf("  statements=%-3d prove=%-10s verify=%-10s\n", n, pAvg, vAvg)
		xCounts = append(xCounts, float64(n))
		proveMs = append(proveMs, float64(pAvg.Microseconds())/1000.0)
		verifyMs = append(verifyMs, float64(vAvg.Microseconds())/1000.0)
	}

	if *chartOut != "" {
		if err := renderChart(*chartOut, xCounts, proveMs, verifyMs); err != nil {
			fmt.Fprintf(os.Stderr, "Error rendering chart: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote latency chart to %s\n", *chartOut)
	}

	fmt.Println("Benchmarks completed successfully!")
}

// benchmarkStatementCount builds a proof spec with n independent Pedersen
// commitment statements (no cross-statement witness equalities - isolating
// how per-statement Commit/Respond cost scales) and times Prove/Verify
// averaged over iterations runs.
func benchmarkStatementCount(n, iterations int) (prove, verify time.Duration, err error) {
	gens, err := composite.GenerateGenerators([]byte("cmd/bench"), 1, rand.Reader)
	if err != nil {
		return 0, 0, err
	}
	params := composite.NewSetupParams()
	gensIdx := params.Add(gens)

	spec := composite.NewProofSpec(params)
	witnesses := make([]*composite.Witness, n)
	for i := 0; i < n; i++ {
		value, cErr := randomScalar()
		if cErr != nil {
			return 0, 0, cErr
		}
		blinding, cErr := randomScalar()
		if cErr != nil {
			return 0, 0, cErr
		}
		commitment := composite.CommitPedersenOpening(gens, []composite.Scalar{value}, blinding)
		spec.AddStatement(composite.Statement{
			Kind: composite.KindPedersenCommitment,
			Pedersen: &composite.PedersenStatement{
				GensParamsIdx: gensIdx,
				Commitment:    commitment,
				WitnessCount:  1,
			},
		})
		witnesses[i] = &composite.Witness{Pedersen: &composite.PedersenWitness{
			Values:   []composite.Scalar{value},
			Blinding: blinding,
		}}
	}

	var proveTotal, verifyTotal time.Duration
	for i := 0; i < iterations; i++ {
		start := time.Now()
		proof, pErr := composite.Prove(spec, witnesses, []byte("bench-nonce"), rand.Reader)
		proveTotal += time.Since(start)
		if pErr != nil {
			return 0, 0, pErr
		}

		start = time.Now()
		vErr := composite.Verify(spec, proof, []byte("bench-nonce"), composite.VerifierConfig{}, rand.Reader)
		verifyTotal += time.Since(start)
		if vErr != nil {
			return 0, 0, vErr
		}
	}
	return proveTotal / time.Duration(iterations), verifyTotal / time.Duration(iterations), nil
}

func randomScalar() (composite.Scalar, error) {
	return composite.RandomScalar(rand.Reader)
}

func renderChart(path string, x, prove, verify []float64) error {
	graph := chart.Chart{
		Title: "Composite Proof Latency vs Statement Count",
		XAxis: chart.XAxis{Name: "Pedersen statements"},
		YAxis: chart.YAxis{Name: "Latency (ms)"},
		Series: []chart.Series{
			chart.ContinuousSeries{Name: "Prove", XValues: x, YValues: prove},
			chart.ContinuousSeries{Name: "Verify", XValues: x, YValues: verify},
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return graph.Render(chart.PNG, f)
}
