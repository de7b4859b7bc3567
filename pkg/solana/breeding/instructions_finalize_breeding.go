package breeding

import (
	"crypto/ed25519"

	"github.com/hatchery-labs/breed-client/pkg/solana"
	"github.com/hatchery-labs/breed-client/pkg/solana/system"
	"github.com/hatchery-labs/breed-client/pkg/solana/token"
)

var finalizeBreedingInstructionDiscriminator = []byte{
	0x93, 0xa1, 0xf3, 0x13, 0xea, 0x40, 0xc2, 0x19,
}

type FinalizeBreedingInstructionAccounts struct {
	BreedingMachine ed25519.PublicKey
	BreedData       ed25519.PublicKey

	MintParentA ed25519.PublicKey
	MintParentB ed25519.PublicKey

	UserAtaParentA ed25519.PublicKey
	UserAtaParentB ed25519.PublicKey

	VaultAtaParentA ed25519.PublicKey
	VaultAtaParentB ed25519.PublicKey

	WhitelistToken   ed25519.PublicKey
	WhitelistVault   ed25519.PublicKey
	UserWhitelistAta ed25519.PublicKey

	UserWallet ed25519.PublicKey
}

// NewFinalizeBreedingInstruction unlocks the parents after the breeding
// time has elapsed, closes the breed data account, and pays out one
// whitelist token to the user.
func NewFinalizeBreedingInstruction(
	program ed25519.PublicKey,
	accounts *FinalizeBreedingInstructionAccounts,
) solana.Instruction {
	var offset int

	data := make([]byte, 8)
	putDiscriminator(data, finalizeBreedingInstructionDiscriminator, &offset)

	return solana.NewInstruction(
		program,
		data,
		solana.NewAccountMeta(accounts.BreedingMachine, false),
		solana.NewAccountMeta(accounts.BreedData, false),
		solana.NewReadonlyAccountMeta(accounts.MintParentA, false),
		solana.NewReadonlyAccountMeta(accounts.MintParentB, false),
		solana.NewAccountMeta(accounts.UserAtaParentA, false),
		solana.NewAccountMeta(accounts.UserAtaParentB, false),
		solana.NewAccountMeta(accounts.VaultAtaParentA, false),
		solana.NewAccountMeta(accounts.VaultAtaParentB, false),
		solana.NewAccountMeta(accounts.WhitelistToken, false),
		solana.NewAccountMeta(accounts.WhitelistVault, false),
		solana.NewAccountMeta(accounts.UserWhitelistAta, false),
		solana.NewAccountMeta(accounts.UserWallet, true),
		solana.NewReadonlyAccountMeta(system.RentSysVar, false),
		solana.NewReadonlyAccountMeta(token.ProgramKey, false),
		solana.NewReadonlyAccountMeta(token.AssociatedTokenAccountProgramKey, false),
		solana.NewReadonlyAccountMeta(system.SystemAccount, false),
	)
}
