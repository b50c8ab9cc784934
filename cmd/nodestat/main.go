// Command nodestat connects to a node's RPC port and prints a short
// status report: chain tip, mempool state, and peer count. It doubles
// as a self-test of the client against a live node.
//
// Configuration comes from the environment (optionally via a .env
// file):
//
//	NODE_RPC_URL      http://127.0.0.1:8332 (required)
//	NODE_RPC_USER     RPC username
//	NODE_RPC_PASS     RPC password
//	NODE_RPC_TIMEOUT  per-call timeout, default 30s
//	LOG_FORMAT        console, logfmt or json
//	LOG_LEVEL         debug, info, warn, error
package main

import (
	"context"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"

	"github.com/coinbridge/noderpc/pkg/log"
	"github.com/coinbridge/noderpc/pkg/rpc"
)

type config struct {
	Node rpc.HTTPTransportConfig
	Log  log.Config
}

func loadConfig(lg log.Logger) (config, error) {
	if err := godotenv.Load(); err != nil {
		lg.Warn(".env file not found")
	}

	var conf config
	if err := cleanenv.ReadEnv(&conf); err != nil {
		return config{}, err
	}
	return conf, nil
}

func main() {
	lg := log.NewZapLogger(log.Config{}).WithName("nodestat")

	conf, err := loadConfig(lg)
	if err != nil {
		lg.Fatal("failed to read configuration", "error", err)
	}
	lg = log.NewZapLogger(conf.Log).WithName("nodestat")

	transport, err := rpc.NewHTTPTransport(conf.Node)
	if err != nil {
		lg.Fatal("failed to build transport", "error", err)
	}
	client := rpc.NewClient(transport)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	ctx = log.SetContextLogger(ctx, lg)

	bestHash, err := client.GetBestBlockHash(ctx)
	if err != nil {
		lg.Fatal("getbestblockhash failed", "error", err)
	}
	height, err := client.GetBlockCount(ctx)
	if err != nil {
		lg.Fatal("getblockcount failed", "error", err)
	}
	hashAtTip, err := client.GetBlockHash(ctx, height)
	if err != nil {
		lg.Fatal("getblockhash failed", "error", err)
	}
	if hashAtTip != bestHash {
		lg.Warn("tip moved between calls", "bestblockhash", bestHash, "hash_at_height", hashAtTip)
	}
	lg.Info("chain tip", "height", height, "hash", bestHash)

	info, err := client.GetBlockchainInfo(ctx)
	if err != nil {
		lg.Fatal("getblockchaininfo failed", "error", err)
	}
	lg.Info("chain state",
		"chain", info.Chain,
		"headers", info.Headers,
		"difficulty", info.Difficulty,
		"verification_progress", info.VerificationProgress,
		"pruned", info.Pruned,
	)

	mempool, err := client.GetMempoolInfo(ctx)
	if err != nil {
		lg.Fatal("getmempoolinfo failed", "error", err)
	}
	lg.Info("mempool",
		"transactions", mempool.Size,
		"bytes", mempool.Bytes,
		"min_fee", mempool.MempoolMinFee.String(),
	)

	netInfo, err := client.GetNetworkInfo(ctx)
	if err != nil {
		lg.Fatal("getnetworkinfo failed", "error", err)
	}
	lg.Info("network",
		"subversion", netInfo.Subversion,
		"connections", netInfo.Connections,
		"relay_fee", netInfo.RelayFee.String(),
	)

	estimate, err := client.EstimateSmartFee(ctx, 6, rpc.EstimateModeConservative)
	if err != nil {
		lg.Warn("estimatesmartfee failed", "error", err)
	} else if estimate.FeeRate != nil {
		lg.Info("fee estimate", "target_blocks", 6, "fee_rate", estimate.FeeRate.String())
	} else {
		lg.Info("fee estimate unavailable", "errors", estimate.Errors)
	}
}
