// Package client implements the per-network balance-lookup collaborators.
package client

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"

	mccommon "mcwallet/internal/common"
)

// BSCClient looks up native BNB balances over a BSC JSON-RPC endpoint.
type BSCClient struct {
	rpcURL string
}

// NewBSCClient creates a new BSC balance client for the given RPC URL.
func NewBSCClient(rpcURL string) *BSCClient {
	return &BSCClient{rpcURL: rpcURL}
}

// Symbol returns the native-currency ticker.
func (c *BSCClient) Symbol() string {
	return "BNB"
}

// NativeBalance returns the BNB balance of address as a decimal string in
// whole BNB. The context deadline bounds the whole dial-and-query exchange.
func (c *BSCClient) NativeBalance(ctx context.Context, address string) (string, error) {
	eth, err := ethclient.DialContext(ctx, c.rpcURL)
	if err != nil {
		return "", fmt.Errorf("failed to connect to BSC RPC: %w", err)
	}
	defer eth.Close()

	wei, err := eth.BalanceAt(ctx, common.HexToAddress(address), nil)
	if err != nil {
		return "", fmt.Errorf("failed to get BNB balance: %w", err)
	}

	return mccommon.WeiToBNB(wei), nil
}
