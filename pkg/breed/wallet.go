package breed

import (
	"context"
	"crypto/ed25519"
	"sync"

	"github.com/pkg/errors"

	"github.com/hatchery-labs/breed-client/pkg/solana"
)

// ErrNoWallet indicates no wallet is connected. Every entry point treats
// this as a precondition failure rather than a crash.
var ErrNoWallet = errors.New("no wallet connected")

// Wallet exposes the user's public identity and signs prepared
// transactions. Implementations must serialize signature requests; only
// one may be outstanding at a time.
type Wallet interface {
	PublicKey() ed25519.PublicKey
	SignTransaction(ctx context.Context, txn *solana.Transaction) error
}

// LocalWallet signs with an in-memory private key.
type LocalWallet struct {
	signMu sync.Mutex
	key    ed25519.PrivateKey
}

func NewLocalWallet(key ed25519.PrivateKey) *LocalWallet {
	return &LocalWallet{
		key: key,
	}
}

func (w *LocalWallet) PublicKey() ed25519.PublicKey {
	if w == nil || len(w.key) != ed25519.PrivateKeySize {
		return nil
	}

	return w.key.Public().(ed25519.PublicKey)
}

func (w *LocalWallet) SignTransaction(ctx context.Context, txn *solana.Transaction) error {
	if w == nil || len(w.key) != ed25519.PrivateKeySize {
		return ErrNoWallet
	}

	w.signMu.Lock()
	defer w.signMu.Unlock()

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	return txn.Sign(w.key)
}
