package token

import (
	"testing"

	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetAssociatedAccount(t *testing.T) {
	wallet, err := base58.Decode("3hBWdLsxogSitaU7q2xzCtWvDVcA7G63HomM2zU3Tjo3")
	require.NoError(t, err)
	mint, err := base58.Decode("So11111111111111111111111111111111111111112")
	require.NoError(t, err)

	addr, err := GetAssociatedAccount(wallet, mint)
	require.NoError(t, err)
	assert.Equal(t, "AkRocXQqE2L8xXDmWw5zm5iVcYE3cNshfxLpXmT4mFFE", base58.Encode(addr))
}

func TestCreateAssociatedTokenAccount(t *testing.T) {
	wallet, err := base58.Decode("3hBWdLsxogSitaU7q2xzCtWvDVcA7G63HomM2zU3Tjo3")
	require.NoError(t, err)
	mint, err := base58.Decode("6PCYef4LDWsFooniF1h2cQtKiB5BPzMobnWDTUkanHpk")
	require.NoError(t, err)

	instruction, addr, err := CreateAssociatedTokenAccount(wallet, wallet, mint)
	require.NoError(t, err)

	assert.Equal(t, "ASyCB6F54i76moBS9thSpYer9ttnAHqFDTiq83QmqFds", base58.Encode(addr))
	assert.EqualValues(t, AssociatedTokenAccountProgramKey, instruction.Program)
	assert.Empty(t, instruction.Data)
	require.Len(t, instruction.Accounts, 7)

	assert.True(t, instruction.Accounts[0].IsSigner)
	assert.True(t, instruction.Accounts[0].IsWritable)
	assert.EqualValues(t, addr, instruction.Accounts[1].PublicKey)
	assert.True(t, instruction.Accounts[1].IsWritable)
	for _, meta := range instruction.Accounts[2:] {
		assert.False(t, meta.IsSigner)
		assert.False(t, meta.IsWritable)
	}
}
