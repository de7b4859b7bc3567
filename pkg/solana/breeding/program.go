// Package breeding provides a client for an anchor-based NFT breeding
// program. Two parent NFTs are locked in escrow under a breed data
// account, and after the configured breeding time has elapsed they are
// unlocked (returned or burned) in exchange for a whitelist token.
package breeding

import (
	"errors"

	"github.com/hatchery-labs/breed-client/pkg/solana"
)

var (
	ErrInvalidProgram         = errors.New("invalid program id")
	ErrInvalidAccountData     = errors.New("unexpected account data")
	ErrInvalidInstructionData = errors.New("unexpected instruction data")
)

// Custom error codes reported by the program. Anchor offsets user error
// enums by 6000.
const (
	ErrorStillInProgress solana.CustomError = 6000 + iota
	ErrorArithmetic
)

// GetProgramErrorCode extracts the program's custom error code from a
// failed transaction, if one is present.
func GetProgramErrorCode(txErr *solana.TransactionError) (solana.CustomError, bool) {
	if txErr == nil {
		return 0, false
	}

	instructionErr := txErr.InstructionError()
	if instructionErr == nil {
		return 0, false
	}

	customErr := instructionErr.CustomError()
	if customErr == nil {
		return 0, false
	}

	return *customErr, true
}
