package breeding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hatchery-labs/breed-client/pkg/solana/token"
)

func TestNewInitializeBreedingInstruction(t *testing.T) {
	accounts := &InitializeBreedingInstructionAccounts{
		BreedingMachine:   mustBase58Decode("CjyUsHrCf4Qb71pZcGYQR4saAkySAizJbjxFMCuQYSvM"),
		BreedData:         mustBase58Decode("6HWMc21gioakkaqTsB3phj6gNX82tWoStNGz8a1bPQWj"),
		MintParentA:       testMintA,
		UserAtaParentA:    mustBase58Decode("AkRocXQqE2L8xXDmWw5zm5iVcYE3cNshfxLpXmT4mFFE"),
		VaultAtaParentA:   mustBase58Decode("FYgXZT7ncavXGTYHGmmSt9MiPaLWwqBJy4FjzrfxcNdH"),
		MintParentB:       testMintB,
		UserAtaParentB:    mustBase58Decode("E97goZ2mie4EWeoBxq8cUurKnxkxAhx2DFXS4vbWqQev"),
		VaultAtaParentB:   mustBase58Decode("6Tn8xG7Lqoep7c9Vhy4nH9K4owq23WWCM59Bi7Xh2MeF"),
		FeeToken:          mustBase58Decode("6PCYef4LDWsFooniF1h2cQtKiB5BPzMobnWDTUkanHpk"),
		FeePayerAta:       mustBase58Decode("ASyCB6F54i76moBS9thSpYer9ttnAHqFDTiq83QmqFds"),
		FeeIncineratorAta: mustBase58Decode("7MtvnJnYMYDR3bJF1MsaSXQpWwNzNdwUmvwhjKrVQHc4"),
		UserWallet:        testAuthority,
	}

	instruction := NewInitializeBreedingInstruction(testProgram, accounts)

	assert.EqualValues(t, testProgram, instruction.Program)
	assert.Equal(t, initializeBreedingInstructionDiscriminator, instruction.Data)
	require.Len(t, instruction.Accounts, 16)

	// Machine and breed data are mutated by the program.
	assert.EqualValues(t, accounts.BreedingMachine, instruction.Accounts[0].PublicKey)
	assert.True(t, instruction.Accounts[0].IsWritable)
	assert.EqualValues(t, accounts.BreedData, instruction.Accounts[1].PublicKey)
	assert.True(t, instruction.Accounts[1].IsWritable)

	// Mints are read-only, their token accounts are debited/credited.
	assert.False(t, instruction.Accounts[2].IsWritable)
	assert.True(t, instruction.Accounts[3].IsWritable)
	assert.True(t, instruction.Accounts[4].IsWritable)
	assert.False(t, instruction.Accounts[5].IsWritable)

	// The user wallet is the only signer.
	for i, account := range instruction.Accounts {
		assert.Equal(t, i == 11, account.IsSigner)
	}
}

func TestNewFinalizeBreedingInstruction(t *testing.T) {
	accounts := &FinalizeBreedingInstructionAccounts{
		BreedingMachine:  mustBase58Decode("CjyUsHrCf4Qb71pZcGYQR4saAkySAizJbjxFMCuQYSvM"),
		BreedData:        mustBase58Decode("6HWMc21gioakkaqTsB3phj6gNX82tWoStNGz8a1bPQWj"),
		MintParentA:      testMintA,
		MintParentB:      testMintB,
		UserAtaParentA:   mustBase58Decode("AkRocXQqE2L8xXDmWw5zm5iVcYE3cNshfxLpXmT4mFFE"),
		UserAtaParentB:   mustBase58Decode("E97goZ2mie4EWeoBxq8cUurKnxkxAhx2DFXS4vbWqQev"),
		VaultAtaParentA:  mustBase58Decode("FYgXZT7ncavXGTYHGmmSt9MiPaLWwqBJy4FjzrfxcNdH"),
		VaultAtaParentB:  mustBase58Decode("6Tn8xG7Lqoep7c9Vhy4nH9K4owq23WWCM59Bi7Xh2MeF"),
		WhitelistToken:   mustBase58Decode("Hwtm2Yg49B9Pu5jXaNnKdof75VQMtpzu7Dh6Dkm9UfYn"),
		WhitelistVault:   mustBase58Decode("GsKC2PoRYM7CLzrMFpCsgXnB7F4EoviVTQ2TdzucNAVm"),
		UserWhitelistAta: mustBase58Decode("9cdjyoVHbZGAJe2iGxs7eTi1cnoAPN7tw5YrAKokiqHA"),
		UserWallet:       testAuthority,
	}

	instruction := NewFinalizeBreedingInstruction(testProgram, accounts)

	assert.Equal(t, finalizeBreedingInstructionDiscriminator, instruction.Data)
	require.Len(t, instruction.Accounts, 16)
	assert.EqualValues(t, accounts.UserWallet, instruction.Accounts[11].PublicKey)
	assert.True(t, instruction.Accounts[11].IsSigner)
	assert.EqualValues(t, token.ProgramKey, instruction.Accounts[13].PublicKey)
}

func TestNewCancelBreedingInstruction(t *testing.T) {
	accounts := &CancelBreedingInstructionAccounts{
		BreedingMachine: mustBase58Decode("CjyUsHrCf4Qb71pZcGYQR4saAkySAizJbjxFMCuQYSvM"),
		BreedData:       mustBase58Decode("6HWMc21gioakkaqTsB3phj6gNX82tWoStNGz8a1bPQWj"),
		MintParentA:     testMintA,
		MintParentB:     testMintB,
		UserAtaParentA:  mustBase58Decode("AkRocXQqE2L8xXDmWw5zm5iVcYE3cNshfxLpXmT4mFFE"),
		UserAtaParentB:  mustBase58Decode("E97goZ2mie4EWeoBxq8cUurKnxkxAhx2DFXS4vbWqQev"),
		VaultAtaParentA: mustBase58Decode("FYgXZT7ncavXGTYHGmmSt9MiPaLWwqBJy4FjzrfxcNdH"),
		VaultAtaParentB: mustBase58Decode("6Tn8xG7Lqoep7c9Vhy4nH9K4owq23WWCM59Bi7Xh2MeF"),
		UserWallet:      testAuthority,
	}

	instruction := NewCancelBreedingInstruction(testProgram, accounts)

	assert.Equal(t, cancelBreedingInstructionDiscriminator, instruction.Data)
	require.Len(t, instruction.Accounts, 10)
	assert.True(t, instruction.Accounts[8].IsSigner)
}

func TestCreateMachineInstruction_RoundTrip(t *testing.T) {
	config := &BreedConfig{
		BreedingTime:           3600,
		BurnParents:            true,
		ParentsCandyMachine:    testParentsCollection,
		ChildrenCandyMachine:   testRewardCollection,
		InitializationFeeToken: testMintB,
		InitializationFeePrice: 2,
	}

	instruction := NewCreateMachineInstruction(
		testProgram,
		&CreateMachineInstructionAccounts{
			Machine:   mustBase58Decode("CjyUsHrCf4Qb71pZcGYQR4saAkySAizJbjxFMCuQYSvM"),
			Authority: testAuthority,
		},
		config,
	)

	require.Len(t, instruction.Data, CreateMachineInstructionSize)

	actual, err := CreateMachineInstructionFromBinary(instruction.Data)
	require.NoError(t, err)
	assert.Equal(t, config, actual)

	_, err = CreateMachineInstructionFromBinary(instruction.Data[:8])
	assert.Equal(t, ErrInvalidInstructionData, err)
}
