package breeding

import (
	"crypto/ed25519"

	"github.com/hatchery-labs/breed-client/pkg/solana"
	"github.com/hatchery-labs/breed-client/pkg/solana/system"
	"github.com/hatchery-labs/breed-client/pkg/solana/token"
)

var initializeBreedingInstructionDiscriminator = []byte{
	0x56, 0x43, 0xb9, 0x41, 0x17, 0x25, 0x8b, 0x72,
}

type InitializeBreedingInstructionAccounts struct {
	BreedingMachine ed25519.PublicKey
	BreedData       ed25519.PublicKey

	MintParentA     ed25519.PublicKey
	UserAtaParentA  ed25519.PublicKey
	VaultAtaParentA ed25519.PublicKey

	MintParentB     ed25519.PublicKey
	UserAtaParentB  ed25519.PublicKey
	VaultAtaParentB ed25519.PublicKey

	FeeToken          ed25519.PublicKey
	FeePayerAta       ed25519.PublicKey
	FeeIncineratorAta ed25519.PublicKey

	UserWallet ed25519.PublicKey
}

// NewInitializeBreedingInstruction locks the two parents in escrow under
// the breed data account and charges the initialization fee. The breed
// data account and both vault token accounts are created by the program.
func NewInitializeBreedingInstruction(
	program ed25519.PublicKey,
	accounts *InitializeBreedingInstructionAccounts,
) solana.Instruction {
	var offset int

	data := make([]byte, 8)
	putDiscriminator(data, initializeBreedingInstructionDiscriminator, &offset)

	return solana.NewInstruction(
		program,
		data,
		solana.NewAccountMeta(accounts.BreedingMachine, false),
		solana.NewAccountMeta(accounts.BreedData, false),
		solana.NewReadonlyAccountMeta(accounts.MintParentA, false),
		solana.NewAccountMeta(accounts.UserAtaParentA, false),
		solana.NewAccountMeta(accounts.VaultAtaParentA, false),
		solana.NewReadonlyAccountMeta(accounts.MintParentB, false),
		solana.NewAccountMeta(accounts.UserAtaParentB, false),
		solana.NewAccountMeta(accounts.VaultAtaParentB, false),
		solana.NewReadonlyAccountMeta(accounts.FeeToken, false),
		solana.NewAccountMeta(accounts.FeePayerAta, false),
		solana.NewAccountMeta(accounts.FeeIncineratorAta, false),
		solana.NewAccountMeta(accounts.UserWallet, true),
		solana.NewReadonlyAccountMeta(system.RentSysVar, false),
		solana.NewReadonlyAccountMeta(token.ProgramKey, false),
		solana.NewReadonlyAccountMeta(token.AssociatedTokenAccountProgramKey, false),
		solana.NewReadonlyAccountMeta(system.SystemAccount, false),
	)
}
