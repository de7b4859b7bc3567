package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/mr-tron/base58"
	"github.com/sirupsen/logrus"

	"github.com/hatchery-labs/breed-client/pkg/breed"
	"github.com/hatchery-labs/breed-client/pkg/solana"
)

const walletKeyEnvName = "BREED_CLIENT_WALLET_KEY"

func main() {
	log := logrus.StandardLogger().WithField("type", "breedd")

	conf, err := breed.WithEnvConfigs()()
	if err != nil {
		log.WithError(err).Fatal("failed to load configuration")
	}

	walletKey, err := base58.Decode(os.Getenv(walletKeyEnvName))
	if err != nil || len(walletKey) != 64 {
		log.Fatalf("%s must be a base58 encoded private key", walletKeyEnvName)
	}
	wallet := breed.NewLocalWallet(walletKey)

	sc := solana.New(conf.RPCEndpoint)
	builder := breed.NewBuilder(conf, breed.NewAccountExistenceChecker(sc))
	orchestrator := breed.NewOrchestrator(conf, sc, wallet, builder, breed.NewNoopRewardMinter())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		cancel()
	}()

	log.WithField("endpoint", conf.RPCEndpoint).Info("starting machine refresh loop")

	refresher := breed.NewRefreshService(orchestrator)
	if err := refresher.Start(ctx, conf.RefreshInterval); err != nil && err != context.Canceled {
		log.WithError(err).Fatal("refresh loop terminated")
	}
}
