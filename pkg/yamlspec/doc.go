// Package yamlspec compiles a human-authorable YAML description of a
// composite proof into a composite.ProofSpec.
//
// The on-disk format names statements by kind and references setup
// parameters (public keys, generator vectors, verifying keys) by a short
// string key rather than embedding their binary encoding inline: those
// come from wherever the caller's deployment keeps them (a file, a KMS, a
// registry service) and are supplied to Compile as a parameter bag.
// Witness-equality constraints and statement bounds that are pure data,
// not key material, are authored directly in the YAML document.
//
// cmd/prove and cmd/verify both read this format from the path given by
// their -spec flag.
package yamlspec
