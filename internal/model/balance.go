package model

// BalanceResult represents one native-currency balance lookup.
// NativeBalance is a decimal string in the network's native unit
// (BNB or SOL, not wei/lamports) to avoid float precision loss.
type BalanceResult struct {
	Address       string `json:"address"`
	Network       string `json:"network"`
	NativeBalance string `json:"native_balance"`
	NativeSymbol  string `json:"native_symbol"`
}

// BalanceQuery identifies one address to look up in a batch.
type BalanceQuery struct {
	Address string `json:"address"`
	Network string `json:"network"`
}

// BalancesRequest represents request body for POST /wallets/balances
type BalancesRequest struct {
	Queries []BalanceQuery `json:"queries"`
}

// BalancesResponse represents response for POST /wallets/balances
type BalancesResponse struct {
	Results []BalanceResult `json:"results"`
}
