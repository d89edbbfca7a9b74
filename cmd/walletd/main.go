package main

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"mcwallet/internal/api"
	"mcwallet/internal/client"
	"mcwallet/internal/config"
	"mcwallet/internal/keycodec"
	"mcwallet/internal/keymanager"
	"mcwallet/internal/store"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if err := config.Init(); err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}
	cfg := config.Get()

	password, err := config.PromptForPassword("Wallet password")
	if err != nil {
		logger.Fatal("failed to read password", zap.Error(err))
	}

	walletStore, err := store.NewSqliteStore(cfg.DBPath, cfg.MaxWallets)
	if err != nil {
		logger.Fatal("failed to open wallet store", zap.Error(err))
	}
	defer walletStore.Close()

	manager, err := keymanager.New(keymanager.Options{
		Password: password,
		Lookups: map[keycodec.Network]keymanager.BalanceLookup{
			keycodec.BSC:    client.NewBSCClient(cfg.BSCRPCURL),
			keycodec.Solana: client.NewSolanaClient(cfg.SolanaRPCURL),
		},
		BalanceTimeout: time.Duration(cfg.BalanceTimeoutSeconds) * time.Second,
	})
	if err != nil {
		logger.Fatal("failed to initialize key manager", zap.Error(err))
	}

	router := api.SetupRouter(manager, walletStore, logger)

	logger.Info("starting wallet server",
		zap.String("port", cfg.Port),
		zap.String("db", cfg.DBPath),
	)
	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
