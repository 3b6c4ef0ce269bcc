package composite

import (
	"bytes"
	"sync"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/groth16"
)

// SnarkAggregatorEntry is one Groth16 proof to be checked as part of a
// batch, paired with the verifying key and public inputs it must satisfy.
type SnarkAggregatorEntry struct {
	ProofBytes   []byte
	VK           *R1CSVerifyingKey
	PublicInputs []Scalar
}

// SnarkAggregator runs a group of independent Groth16 verifications
// concurrently over a bounded worker pool, generalizing the
// job-channel/result-channel worker pool pflow's Prover.ProveParallel uses
// for batched proving to batched verification instead. gnark's public
// groth16 API verifies one proof at a time and does not expose the
// curve-specific pairing terms a single folded multi-proof check would
// need, so this aggregator batches at the call level rather than the
// pairing-equation level.
type SnarkAggregator struct {
	MaxWorkers int
}

// NewSnarkAggregator returns an aggregator bounded to maxWorkers concurrent
// verifications; maxWorkers <= 0 defaults to 4.
func NewSnarkAggregator(maxWorkers int) *SnarkAggregator {
	if maxWorkers <= 0 {
		maxWorkers = 4
	}
	return &SnarkAggregator{MaxWorkers: maxWorkers}
}

type snarkAggregatorJob struct {
	id    int
	entry SnarkAggregatorEntry
}

type snarkAggregatorResult struct {
	id  int
	err error
}

// VerifyBatch checks every entry and returns the first failure encountered,
// identified by its index in entries; all entries are still verified even
// after a failure is found, so every worker runs to completion.
func (a *SnarkAggregator) VerifyBatch(entries []SnarkAggregatorEntry) error {
	if len(entries) == 0 {
		return nil
	}

	jobs := make(chan snarkAggregatorJob, len(entries))
	results := make(chan snarkAggregatorResult, len(entries))

	var wg sync.WaitGroup
	for i := 0; i < a.MaxWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				results <- snarkAggregatorResult{id: job.id, err: verifySnarkAggregatorEntry(job.entry)}
			}
		}()
	}

	for i, e := range entries {
		jobs <- snarkAggregatorJob{id: i, entry: e}
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	errs := make([]error, len(entries))
	for r := range results {
		errs[r.id] = r.err
	}

	for i, err := range errs {
		if err != nil {
			return newWitErr(ErrAggregationFailed, i, -1)
		}
	}
	return nil
}

func verifySnarkAggregatorEntry(e SnarkAggregatorEntry) error {
	proof := groth16.NewProof(ecc.BLS12_381)
	if _, err := proof.ReadFrom(bytes.NewReader(e.ProofBytes)); err != nil {
		return err
	}
	publicWitness, err := r1csPublicWitness(e.PublicInputs)
	if err != nil {
		return err
	}
	return groth16.Verify(proof, e.VK.VK, publicWitness)
}
