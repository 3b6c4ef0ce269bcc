package composite

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

// Domain-separation labels used on the shared transcript. These must match
// exactly across every conforming implementation of this protocol (see
// SPEC_FULL.md §6); a new sub-protocol requires a fresh, unique label.
const (
	LabelCompositeProof          = "COMPOSITE_PROOF"
	LabelNonce                   = "NONCE"
	LabelContext                 = "CONTEXT"
	LabelCompositeProofChallenge = "COMPOSITE_PROOF_CHALLENGE"

	LabelBBSPlus            = "BBS_PLUS"
	LabelBBS23              = "BBS_23"
	LabelBBDT16KVAC          = "BBDT16_KVAC"
	LabelPS                 = "PS"
	LabelVBAccumMem         = "VB_ACCUM_MEM"
	LabelVBAccumNonMem      = "VB_ACCUM_NON_MEM"
	LabelVBAccumCDHMem      = "VB_ACCUM_CDH_MEM"
	LabelVBAccumCDHNonMem   = "VB_ACCUM_CDH_NON_MEM"
	LabelKBUniAccumMem      = "KB_UNI_ACCUM_MEM"
	LabelKBUniAccumNonMem   = "KB_UNI_ACCUM_NON_MEM"
	LabelKBUniAccumCDHMem   = "KB_UNI_ACCUM_CDH_MEM"
	LabelKBUniAccumCDHNonMem = "KB_UNI_ACCUM_CDH_NON_MEM"
	LabelKBPosAccumMem      = "KB_POS_ACCUM_MEM"
	LabelKBPosAccumCDHMem   = "KB_POS_ACCUM_CDH_MEM"
	LabelVETZ21             = "VE_TZ_21"
	LabelVETZ21Robust       = "VE_TZ_21_ROBUST"

	// LabelPedersen and LabelRange are additional sub-protocol labels this
	// engine introduces beyond the ones named in SPEC_FULL.md §6, following
	// that section's "new sub-protocols require a fresh unique label" rule.
	LabelPedersen        = "PEDERSEN_COMMITMENT"
	LabelRange           = "BULLETPROOFS_RANGE"
	LabelR1CS            = "R1CS_GROTH16"
	LabelR1CSProof        = "R1CS_GROTH16_PROOF"
	LabelR1CSPublicInput  = "R1CS_GROTH16_PUBLIC_INPUT"
	LabelCompressionRound = "COMPRESSION_ROUND"
)

// Order is the order of the BLS12-381 scalar field (the group order of G1,
// G2 and GT). Mirrors the teacher's bbs.Order constant.
var Order *big.Int

func init() {
	Order = fr.Modulus()
}
