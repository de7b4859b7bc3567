package breeding

import (
	"testing"

	"github.com/mr-tron/base58/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testProgram           = mustBase58Decode("9zjxuHUgiVpB8Ex7QYLgYBTqEZaLR92dKxgPmdcXktrK")
	testParentsCollection = mustBase58Decode("CikztTpnE9wiNzafzTCSzE4tXKFi5iHcGKzBhpNTiP7p")
	testRewardCollection  = mustBase58Decode("FHK5bsRAFPbj7tDYeEeKpkztuz49zG33ZbpaDAxJ7Mcf")
	testAuthority         = mustBase58Decode("3hBWdLsxogSitaU7q2xzCtWvDVcA7G63HomM2zU3Tjo3")
	testMintA             = mustBase58Decode("So11111111111111111111111111111111111111112")
	testMintB             = mustBase58Decode("EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v")
)

func mustBase58Decode(value string) []byte {
	decoded, err := base58.Decode(value)
	if err != nil {
		panic(err)
	}
	return decoded
}

func TestGetBreedMachineAddress(t *testing.T) {
	address, bump, err := GetBreedMachineAddress(&GetBreedMachineAddressArgs{
		Program:           testProgram,
		ParentsCollection: testParentsCollection,
		RewardCollection:  testRewardCollection,
		Authority:         testAuthority,
	})
	require.NoError(t, err)
	assert.Equal(t, "CjyUsHrCf4Qb71pZcGYQR4saAkySAizJbjxFMCuQYSvM", base58.Encode(address))
	assert.EqualValues(t, 254, bump)
}

func TestGetBreedMachineAddress_SeedOrder(t *testing.T) {
	// Swapping the collections produces a different machine.
	address, _, err := GetBreedMachineAddress(&GetBreedMachineAddressArgs{
		Program:           testProgram,
		ParentsCollection: testRewardCollection,
		RewardCollection:  testParentsCollection,
		Authority:         testAuthority,
	})
	require.NoError(t, err)
	assert.Equal(t, "5txFirvrYtUrDNHYXfCAkreEFkLKWuQswphz7YWCSiJL", base58.Encode(address))
}

func TestGetBreedDataAddress(t *testing.T) {
	address, bump, err := GetBreedDataAddress(&GetBreedDataAddressArgs{
		Program: testProgram,
		Machine: mustBase58Decode("CjyUsHrCf4Qb71pZcGYQR4saAkySAizJbjxFMCuQYSvM"),
		MintA:   testMintA,
		MintB:   testMintB,
	})
	require.NoError(t, err)
	assert.Equal(t, "6HWMc21gioakkaqTsB3phj6gNX82tWoStNGz8a1bPQWj", base58.Encode(address))
	assert.EqualValues(t, 253, bump)
}

func TestGetBreedDataAddress_MintOrder(t *testing.T) {
	// The mint pair is not canonicalized, so (b, a) is a distinct session.
	address, _, err := GetBreedDataAddress(&GetBreedDataAddressArgs{
		Program: testProgram,
		Machine: mustBase58Decode("CjyUsHrCf4Qb71pZcGYQR4saAkySAizJbjxFMCuQYSvM"),
		MintA:   testMintB,
		MintB:   testMintA,
	})
	require.NoError(t, err)
	assert.Equal(t, "CkmZsvCv1jDhKNQHurMbFx4ksj4Q2WJqHFdPbSezzPPL", base58.Encode(address))
}

func TestGetWhitelistTokenAddress(t *testing.T) {
	address, bump, err := GetWhitelistTokenAddress(&GetWhitelistTokenAddressArgs{
		Program: testProgram,
		Machine: mustBase58Decode("CjyUsHrCf4Qb71pZcGYQR4saAkySAizJbjxFMCuQYSvM"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Hwtm2Yg49B9Pu5jXaNnKdof75VQMtpzu7Dh6Dkm9UfYn", base58.Encode(address))
	assert.EqualValues(t, 253, bump)
}
