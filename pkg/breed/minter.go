package breed

import (
	"context"
	"crypto/ed25519"

	"github.com/hatchery-labs/breed-client/pkg/solana"
)

// RewardMinter mints the reward NFT to a wallet after a breeding
// session has been finalized on chain. The production implementation
// lives with the candy machine authority; a noop is provided for
// deployments that handle minting out of band.
type RewardMinter interface {
	MintReward(ctx context.Context, wallet ed25519.PublicKey) (solana.Signature, error)
}

// RewardMinterFunc adapts a function to the RewardMinter interface.
type RewardMinterFunc func(ctx context.Context, wallet ed25519.PublicKey) (solana.Signature, error)

func (f RewardMinterFunc) MintReward(ctx context.Context, wallet ed25519.PublicKey) (solana.Signature, error) {
	return f(ctx, wallet)
}

// NewNoopRewardMinter returns a minter that does nothing.
func NewNoopRewardMinter() RewardMinter {
	return RewardMinterFunc(func(context.Context, ed25519.PublicKey) (solana.Signature, error) {
		return solana.Signature{}, nil
	})
}
