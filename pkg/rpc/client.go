package rpc

import (
	"context"

	"github.com/coinbridge/noderpc/pkg/jsonval"
)

// Client is the typed method surface over a node's RPC port. Every
// method is a thin wrapper: it encodes its typed parameters into
// positional JSON values, dispatches through the Caller, and decodes
// the result into the method's declared return type.
type Client struct {
	caller *Caller
}

// NewClient creates a typed client over the given transport.
func NewClient(transport Transport, opts ...CallerOption) *Client {
	return &Client{caller: NewCaller(transport, opts...)}
}

// Caller exposes the underlying dispatcher for methods the typed
// surface does not cover.
func (c *Client) Caller() *Caller {
	return c.caller
}

// GetBestBlockHash returns the hash of the best block in the longest chain.
func (c *Client) GetBestBlockHash(ctx context.Context) (string, error) {
	var hash string
	err := c.caller.CallInto(ctx, &hash, GetBestBlockHashMethod.String())
	return hash, err
}

// GetBlockCount returns the number of blocks in the longest chain.
func (c *Client) GetBlockCount(ctx context.Context) (int64, error) {
	var count int64
	err := c.caller.CallInto(ctx, &count, GetBlockCountMethod.String())
	return count, err
}

// GetBlockHash returns the hash of the block at the given height.
func (c *Client) GetBlockHash(ctx context.Context, height int64) (string, error) {
	var hash string
	err := c.caller.CallInto(ctx, &hash, GetBlockHashMethod.String(), jsonval.Int(height))
	return hash, err
}

// GetBlock returns the decoded block with the given header hash.
func (c *Client) GetBlock(ctx context.Context, hash string) (Block, error) {
	var block Block
	err := c.caller.CallInto(ctx, &block, GetBlockMethod.String(), jsonval.String(hash), jsonval.Bool(true))
	return block, err
}

// GetBlockRaw returns the serialized, hex-encoded block with the given
// header hash.
func (c *Client) GetBlockRaw(ctx context.Context, hash string) (string, error) {
	var raw string
	err := c.caller.CallInto(ctx, &raw, GetBlockMethod.String(), jsonval.String(hash), jsonval.Bool(false))
	return raw, err
}

// GetBlockchainInfo returns state info regarding blockchain processing.
func (c *Client) GetBlockchainInfo(ctx context.Context) (BlockchainInfo, error) {
	var info BlockchainInfo
	err := c.caller.CallInto(ctx, &info, GetBlockchainInfoMethod.String())
	return info, err
}

// GetChainTips returns information about all known chain tips,
// including the main chain and orphaned branches.
func (c *Client) GetChainTips(ctx context.Context) ([]ChainTip, error) {
	var tips []ChainTip
	err := c.caller.CallInto(ctx, &tips, GetChainTipsMethod.String())
	return tips, err
}

// GetDifficulty returns the proof-of-work difficulty as a multiple of
// the minimum difficulty.
func (c *Client) GetDifficulty(ctx context.Context) (float64, error) {
	var difficulty float64
	err := c.caller.CallInto(ctx, &difficulty, GetDifficultyMethod.String())
	return difficulty, err
}

// GetMempoolInfo returns details on the active state of the memory pool.
func (c *Client) GetMempoolInfo(ctx context.Context) (MempoolInfo, error) {
	var info MempoolInfo
	err := c.caller.CallInto(ctx, &info, GetMempoolInfoMethod.String())
	return info, err
}

// GetRawMempool returns the txids of all transactions in the memory pool.
func (c *Client) GetRawMempool(ctx context.Context) ([]string, error) {
	var txids []string
	err := c.caller.CallInto(ctx, &txids, GetRawMempoolMethod.String(), jsonval.Bool(false))
	return txids, err
}

// GetRawMempoolVerbose returns every memory pool transaction keyed by
// txid, with fee and ancestry details.
func (c *Client) GetRawMempoolVerbose(ctx context.Context) (map[string]MempoolEntry, error) {
	var entries map[string]MempoolEntry
	err := c.caller.CallInto(ctx, &entries, GetRawMempoolMethod.String(), jsonval.Bool(true))
	return entries, err
}

// GetTxOut returns details about an unspent transaction output.
// includeMempool also considers outputs created by unconfirmed
// transactions.
func (c *Client) GetTxOut(ctx context.Context, txid string, vout uint32, includeMempool bool) (TxOut, error) {
	var out TxOut
	err := c.caller.CallInto(ctx, &out, GetTxOutMethod.String(),
		jsonval.String(txid), jsonval.Uint(uint64(vout)), jsonval.Bool(includeMempool))
	return out, err
}

// GetTxOutSetInfo returns statistics about the unspent transaction
// output set. This call may take some time on the node side.
func (c *Client) GetTxOutSetInfo(ctx context.Context) (TxOutSetInfo, error) {
	var info TxOutSetInfo
	err := c.caller.CallInto(ctx, &info, GetTxOutSetInfoMethod.String())
	return info, err
}

// GetNetworkInfo returns state info regarding p2p networking.
func (c *Client) GetNetworkInfo(ctx context.Context) (NetworkInfo, error) {
	var info NetworkInfo
	err := c.caller.CallInto(ctx, &info, GetNetworkInfoMethod.String())
	return info, err
}

// GetPeerInfo returns data about each connected network peer.
func (c *Client) GetPeerInfo(ctx context.Context) ([]PeerInfo, error) {
	var peers []PeerInfo
	err := c.caller.CallInto(ctx, &peers, GetPeerInfoMethod.String())
	return peers, err
}

// EstimateSmartFee estimates the fee rate needed for a transaction to
// begin confirmation within confTarget blocks.
func (c *Client) EstimateSmartFee(ctx context.Context, confTarget int64, mode EstimateMode) (EstimateSmartFee, error) {
	params := []jsonval.Value{jsonval.Int(confTarget)}
	if mode != "" && mode != EstimateModeUnset {
		params = append(params, jsonval.String(string(mode)))
	}
	var estimate EstimateSmartFee
	err := c.caller.CallInto(ctx, &estimate, EstimateSmartFeeMethod.String(), params...)
	return estimate, err
}

// WaitForNewBlock blocks until a new block arrives or timeoutMS
// elapses on the node side, then returns the current tip.
func (c *Client) WaitForNewBlock(ctx context.Context, timeoutMS int64) (BlockRef, error) {
	var ref BlockRef
	err := c.caller.CallInto(ctx, &ref, WaitForNewBlockMethod.String(), jsonval.Int(timeoutMS))
	return ref, err
}
