package breed

import (
	"bytes"
	"context"
	"crypto/ed25519"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/hatchery-labs/breed-client/pkg/metrics"
	"github.com/hatchery-labs/breed-client/pkg/solana"
	"github.com/hatchery-labs/breed-client/pkg/solana/binary"
)

// TokenMetadataProgramKey is the address of the token metadata program.
//
// Current key: metaqbxxUerdq28cj1RbAWkYQm3ybzjb6a8bt518x1s
var TokenMetadataProgramKey = mustPublicKey("metaqbxxUerdq28cj1RbAWkYQm3ybzjb6a8bt518x1s")

var metadataSeedPrefix = []byte("metadata")

// ErrNoMetadata indicates an NFT has no metadata account on chain.
var ErrNoMetadata = errors.New("metadata account not found")

func mustPublicKey(value string) ed25519.PublicKey {
	decoded, err := base58.Decode(value)
	if err != nil {
		panic(err)
	}
	return decoded
}

// GetMetadataAddress derives the token metadata address for a mint.
func GetMetadataAddress(mint ed25519.PublicKey) (ed25519.PublicKey, error) {
	return solana.FindProgramAddress(
		TokenMetadataProgramKey,
		metadataSeedPrefix,
		TokenMetadataProgramKey,
		mint,
	)
}

// NFTClient resolves on-chain NFT metadata into renderable documents and
// answers which candidate mints a wallet holds.
type NFTClient struct {
	log     *logrus.Entry
	sc      solana.Client
	fetcher MetadataFetcher
}

func NewNFTClient(sc solana.Client, fetcher MetadataFetcher) *NFTClient {
	return &NFTClient{
		log:     logrus.StandardLogger().WithField("type", "breed/nft_client"),
		sc:      sc,
		fetcher: fetcher,
	}
}

// GetNFT loads the metadata account for a mint, extracts its off-chain
// URI, and fetches the metadata document.
func (c *NFTClient) GetNFT(ctx context.Context, mint ed25519.PublicKey) (*NFTMetadata, error) {
	tracer := metrics.TraceMethodCall(ctx, "breed/nft_client", "GetNFT")
	defer tracer.End()

	address, err := GetMetadataAddress(mint)
	if err != nil {
		return nil, errors.Wrap(err, "failed to derive metadata address")
	}

	info, err := c.sc.GetAccountInfo(address, solana.CommitmentConfirmed)
	if err == solana.ErrNoAccountInfo {
		return nil, ErrNoMetadata
	} else if err != nil {
		tracer.OnError(err)
		return nil, errors.Wrap(err, "failed to get metadata account")
	}

	uri, err := getMetadataURI(info.Data)
	if err != nil {
		return nil, err
	}

	return c.fetcher.GetMetadata(ctx, uri)
}

// OwnedMints reports which of the candidate mints the owner holds a
// token account for.
func (c *NFTClient) OwnedMints(ctx context.Context, owner ed25519.PublicKey, candidates []ed25519.PublicKey) ([]ed25519.PublicKey, error) {
	tracer := metrics.TraceMethodCall(ctx, "breed/nft_client", "OwnedMints")
	defer tracer.End()

	var owned []ed25519.PublicKey
	for _, mint := range candidates {
		accounts, err := c.sc.GetTokenAccountsByOwner(owner, mint)
		if err != nil {
			tracer.OnError(err)
			return nil, errors.Wrap(err, "failed to get token accounts")
		}
		if len(accounts) > 0 {
			owned = append(owned, mint)
		}
	}

	return owned, nil
}

// getMetadataURI pulls the off-chain URI out of a raw metadata account.
// Layout: key u8, update authority, mint, then borsh strings for name,
// symbol and uri. The strings are zero padded to their reserved size.
func getMetadataURI(data []byte) (string, error) {
	offset := 1 + ed25519.PublicKeySize + ed25519.PublicKeySize

	// name, symbol
	for i := 0; i < 2; i++ {
		if _, err := getBorshString(data, &offset); err != nil {
			return "", err
		}
	}

	return getBorshString(data, &offset)
}

func getBorshString(data []byte, offset *int) (string, error) {
	if *offset+4 > len(data) {
		return "", errors.New("metadata account truncated")
	}

	var size uint32
	binary.GetUint32(data[*offset:], &size, offset)

	if *offset+int(size) > len(data) {
		return "", errors.New("metadata account truncated")
	}

	value := data[*offset : *offset+int(size)]
	*offset += int(size)

	return string(bytes.TrimRight(value, "\x00")), nil
}
