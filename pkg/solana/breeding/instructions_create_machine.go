package breeding

import (
	"bytes"
	"crypto/ed25519"

	"github.com/hatchery-labs/breed-client/pkg/solana"
	"github.com/hatchery-labs/breed-client/pkg/solana/system"
)

var createMachineInstructionDiscriminator = []byte{
	0x44, 0x18, 0xd9, 0xfe, 0x77, 0xb5, 0xd7, 0x39,
}

const CreateMachineInstructionSize = (8 + // discriminator
	BreedConfigSize) // config

type CreateMachineInstructionAccounts struct {
	Machine   ed25519.PublicKey
	Authority ed25519.PublicKey
}

func NewCreateMachineInstruction(
	program ed25519.PublicKey,
	accounts *CreateMachineInstructionAccounts,
	config *BreedConfig,
) solana.Instruction {
	var offset int

	data := make([]byte, CreateMachineInstructionSize)
	putDiscriminator(data, createMachineInstructionDiscriminator, &offset)
	putBreedConfig(data, config, &offset)

	return solana.NewInstruction(
		program,
		data,
		solana.NewAccountMeta(accounts.Machine, false),
		solana.NewAccountMeta(accounts.Authority, true),
		solana.NewReadonlyAccountMeta(system.SystemAccount, false),
	)
}

func CreateMachineInstructionFromBinary(data []byte) (*BreedConfig, error) {
	if len(data) < CreateMachineInstructionSize {
		return nil, ErrInvalidInstructionData
	}

	var offset int
	var discriminator []byte
	getDiscriminator(data, &discriminator, &offset)
	if !bytes.Equal(discriminator, createMachineInstructionDiscriminator) {
		return nil, ErrInvalidInstructionData
	}

	var config BreedConfig
	getBreedConfig(data, &config, &offset)

	return &config, nil
}
