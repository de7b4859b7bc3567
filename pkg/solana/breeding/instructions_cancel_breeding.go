package breeding

import (
	"crypto/ed25519"

	"github.com/hatchery-labs/breed-client/pkg/solana"
	"github.com/hatchery-labs/breed-client/pkg/solana/token"
)

var cancelBreedingInstructionDiscriminator = []byte{
	0x8e, 0x80, 0x2b, 0x76, 0xa1, 0xe4, 0xe9, 0x06,
}

type CancelBreedingInstructionAccounts struct {
	BreedingMachine ed25519.PublicKey
	BreedData       ed25519.PublicKey

	MintParentA ed25519.PublicKey
	MintParentB ed25519.PublicKey

	UserAtaParentA ed25519.PublicKey
	UserAtaParentB ed25519.PublicKey

	VaultAtaParentA ed25519.PublicKey
	VaultAtaParentB ed25519.PublicKey

	UserWallet ed25519.PublicKey
}

// NewCancelBreedingInstruction aborts an in-flight breeding, returning
// the parents to the user and closing the breed data account. No
// whitelist token is paid out.
func NewCancelBreedingInstruction(
	program ed25519.PublicKey,
	accounts *CancelBreedingInstructionAccounts,
) solana.Instruction {
	var offset int

	data := make([]byte, 8)
	putDiscriminator(data, cancelBreedingInstructionDiscriminator, &offset)

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
		solana.NewAccountMeta(accounts.UserWallet, true),
		solana.NewReadonlyAccountMeta(token.ProgramKey, false),
	)
}
