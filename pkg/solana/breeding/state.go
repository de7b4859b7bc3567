package breeding

import (
	"bytes"
	"crypto/ed25519"
	"fmt"

	"github.com/mr-tron/base58"
)

const (
	BreedConfigSize = (8 + // breeding_time
		1 + // burn_parents
		32 + // parents_candy_machine
		32 + // children_candy_machine
		32 + // initialization_fee_token
		8) // initialization_fee_price

	BreedMachineAccountSize = (8 + // discriminator
		32 + // authority
		8 + // bred
		8 + // born
		BreedConfigSize) // config

	BreedDataAccountSize = (8 + // discriminator
		32 + // owner
		32 + // authority
		8 + // timestamp
		32 + // mint_a
		32) // mint_b
)

var BreedMachineAccountDiscriminator = []byte{0x43, 0xac, 0xd0, 0xd4, 0xd1, 0x90, 0x59, 0xf0}
var BreedDataAccountDiscriminator = []byte{0xc3, 0x47, 0x0f, 0x20, 0xaf, 0xab, 0xeb, 0x5e}

// BreedConfig is the static configuration embedded in a machine account.
type BreedConfig struct {
	// Time the parents stay locked before the breeding can be finalized,
	// in seconds.
	BreedingTime uint64
	// Whether the parents are burned on finalize, instead of returned.
	BurnParents bool
	// Candy machine the parent NFTs must come from.
	ParentsCandyMachine ed25519.PublicKey
	// Candy machine the children NFTs are minted from.
	ChildrenCandyMachine ed25519.PublicKey
	// Mint of the token charged on breeding initialization.
	InitializationFeeToken ed25519.PublicKey
	// How much to charge on breeding initialization.
	InitializationFeePrice uint64
}

type BreedMachineAccount struct {
	Authority ed25519.PublicKey
	// How many NFTs were fed into the machine.
	Bred uint64
	// How many NFTs were generated.
	Born   uint64
	Config BreedConfig
}

// BreedDataAccount tracks one in-flight breeding. It owns the escrow
// token accounts holding the parents, and is closed on finalize or cancel.
type BreedDataAccount struct {
	Owner     ed25519.PublicKey
	Authority ed25519.PublicKey
	Timestamp int64
	MintA     ed25519.PublicKey
	MintB     ed25519.PublicKey
}

func putBreedConfig(dst []byte, v *BreedConfig, offset *int) {
	putUint64(dst, v.BreedingTime, offset)
	putBool(dst, v.BurnParents, offset)
	putKey(dst, v.ParentsCandyMachine, offset)
	putKey(dst, v.ChildrenCandyMachine, offset)
	putKey(dst, v.InitializationFeeToken, offset)
	putUint64(dst, v.InitializationFeePrice, offset)
}

func getBreedConfig(src []byte, dst *BreedConfig, offset *int) {
	getUint64(src, &dst.BreedingTime, offset)
	getBool(src, &dst.BurnParents, offset)
	getKey(src, &dst.ParentsCandyMachine, offset)
	getKey(src, &dst.ChildrenCandyMachine, offset)
	getKey(src, &dst.InitializationFeeToken, offset)
	getUint64(src, &dst.InitializationFeePrice, offset)
}

func (obj *BreedMachineAccount) Marshal() []byte {
	data := make([]byte, BreedMachineAccountSize)

	var offset int
	putDiscriminator(data, BreedMachineAccountDiscriminator, &offset)
	putKey(data, obj.Authority, &offset)
	putUint64(data, obj.Bred, &offset)
	putUint64(data, obj.Born, &offset)
	putBreedConfig(data, &obj.Config, &offset)

	return data
}

func (obj *BreedMachineAccount) Unmarshal(data []byte) error {
	if len(data) < BreedMachineAccountSize {
		return ErrInvalidAccountData
	}

	var offset int

	var discriminator []byte
	getDiscriminator(data, &discriminator, &offset)
	if !bytes.Equal(discriminator, BreedMachineAccountDiscriminator) {
		return ErrInvalidAccountData
	}

	getKey(data, &obj.Authority, &offset)
	getUint64(data, &obj.Bred, &offset)
	getUint64(data, &obj.Born, &offset)
	getBreedConfig(data, &obj.Config, &offset)

	return nil
}

func (obj *BreedMachineAccount) String() string {
	return fmt.Sprintf(
		"BreedMachine{authority=%s,bred=%d,born=%d,breeding_time=%d,burn_parents=%t,fee_token=%s,fee_price=%d}",
		base58.Encode(obj.Authority),
		obj.Bred,
		obj.Born,
		obj.Config.BreedingTime,
		obj.Config.BurnParents,
		base58.Encode(obj.Config.InitializationFeeToken),
		obj.Config.InitializationFeePrice,
	)
}

func (obj *BreedDataAccount) Marshal() []byte {
	data := make([]byte, BreedDataAccountSize)

	var offset int
	putDiscriminator(data, BreedDataAccountDiscriminator, &offset)
	putKey(data, obj.Owner, &offset)
	putKey(data, obj.Authority, &offset)
	putInt64(data, obj.Timestamp, &offset)
	putKey(data, obj.MintA, &offset)
	putKey(data, obj.MintB, &offset)

	return data
}

func (obj *BreedDataAccount) Unmarshal(data []byte) error {
	if len(data) < BreedDataAccountSize {
		return ErrInvalidAccountData
	}

	var offset int

	var discriminator []byte
	getDiscriminator(data, &discriminator, &offset)
	if !bytes.Equal(discriminator, BreedDataAccountDiscriminator) {
		return ErrInvalidAccountData
	}

	getKey(data, &obj.Owner, &offset)
	getKey(data, &obj.Authority, &offset)
	getInt64(data, &obj.Timestamp, &offset)
	getKey(data, &obj.MintA, &offset)
	getKey(data, &obj.MintB, &offset)

	return nil
}

func (obj *BreedDataAccount) String() string {
	return fmt.Sprintf(
		"BreedData{owner=%s,authority=%s,timestamp=%d,mint_a=%s,mint_b=%s}",
		base58.Encode(obj.Owner),
		base58.Encode(obj.Authority),
		obj.Timestamp,
		base58.Encode(obj.MintA),
		base58.Encode(obj.MintB),
	)
}
