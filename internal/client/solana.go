package client

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"

	"mcwallet/internal/common"
)

// SolanaClient looks up native SOL balances over a Solana RPC endpoint.
type SolanaClient struct {
	rpcClient *rpc.Client
}

// NewSolanaClient creates a new Solana balance client for the given RPC URL.
func NewSolanaClient(rpcURL string) *SolanaClient {
	return &SolanaClient{rpcClient: rpc.New(rpcURL)}
}

// Symbol returns the native-currency ticker.
func (c *SolanaClient) Symbol() string {
	return "SOL"
}

// NativeBalance returns the SOL balance of address as a decimal string in
// whole SOL.
func (c *SolanaClient) NativeBalance(ctx context.Context, address string) (string, error) {
	pubkey, err := solana.PublicKeyFromBase58(address)
	if err != nil {
		return "", fmt.Errorf("invalid Solana address: %w", err)
	}

	balance, err := c.rpcClient.GetBalance(ctx, pubkey, rpc.CommitmentConfirmed)
	if err != nil {
		return "", fmt.Errorf("failed to get SOL balance: %w", err)
	}

	return common.LamportsToSOL(balance.Value), nil
}
