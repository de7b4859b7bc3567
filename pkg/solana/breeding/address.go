package breeding

import (
	"crypto/ed25519"

	"github.com/hatchery-labs/breed-client/pkg/solana"
)

var (
	breedMachinePrefix   = []byte("breed_machine")
	breedAccountPrefix   = []byte("breed_account")
	whitelistTokenPrefix = []byte("whitelist_token")
)

type GetBreedMachineAddressArgs struct {
	Program           ed25519.PublicKey
	ParentsCollection ed25519.PublicKey
	RewardCollection  ed25519.PublicKey
	Authority         ed25519.PublicKey
}

type GetBreedDataAddressArgs struct {
	Program ed25519.PublicKey
	Machine ed25519.PublicKey
	MintA   ed25519.PublicKey
	MintB   ed25519.PublicKey
}

type GetWhitelistTokenAddressArgs struct {
	Program ed25519.PublicKey
	Machine ed25519.PublicKey
}

// GetBreedMachineAddress derives the machine state address for a
// (parents collection, reward collection, authority) triple. There is
// at most one machine per triple.
func GetBreedMachineAddress(args *GetBreedMachineAddressArgs) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		args.Program,
		breedMachinePrefix,
		args.ParentsCollection,
		args.RewardCollection,
		args.Authority,
	)
}

// GetBreedDataAddress derives the per-session state address. The mint
// pair is not canonicalized, so (a, b) and (b, a) are distinct sessions.
func GetBreedDataAddress(args *GetBreedDataAddressArgs) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		args.Program,
		breedAccountPrefix,
		args.Machine,
		args.MintA,
		args.MintB,
	)
}

// GetWhitelistTokenAddress derives the mint address of the whitelist
// token paid out when a breeding completes.
func GetWhitelistTokenAddress(args *GetWhitelistTokenAddressArgs) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		args.Program,
		whitelistTokenPrefix,
		args.Machine,
	)
}
