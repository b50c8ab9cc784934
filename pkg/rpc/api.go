package rpc

import (
	"encoding/json"
	"fmt"
)

// Method identifies a node RPC method by its wire name.
type Method string

// String returns the wire name of the method.
func (m Method) String() string {
	return string(m)
}

// Node methods covered by the typed client surface.
const (
	GetBestBlockHashMethod  Method = "getbestblockhash"
	GetBlockMethod          Method = "getblock"
	GetBlockchainInfoMethod Method = "getblockchaininfo"
	GetBlockCountMethod     Method = "getblockcount"
	GetBlockHashMethod      Method = "getblockhash"
	GetChainTipsMethod      Method = "getchaintips"
	GetDifficultyMethod     Method = "getdifficulty"
	GetMempoolInfoMethod    Method = "getmempoolinfo"
	GetRawMempoolMethod     Method = "getrawmempool"
	GetTxOutMethod          Method = "gettxout"
	GetTxOutSetInfoMethod   Method = "gettxoutsetinfo"
	GetNetworkInfoMethod    Method = "getnetworkinfo"
	GetPeerInfoMethod       Method = "getpeerinfo"
	EstimateSmartFeeMethod  Method = "estimatesmartfee"
	WaitForNewBlockMethod   Method = "waitfornewblock"
)

// Enforce reports block-version enforcement progress for a softfork.
type Enforce struct {
	Status   bool  `json:"status"`
	Found    int64 `json:"found"`
	Required int64 `json:"required"`
	Window   int64 `json:"window"`
}

// Reject reports block-version rejection progress for a softfork.
type Reject struct {
	Status   bool  `json:"status"`
	Found    int64 `json:"found"`
	Required int64 `json:"required"`
	Window   int64 `json:"window"`
}

// Softfork describes one softfork deployment known to the node.
type Softfork struct {
	ID      string  `json:"id"`
	Version int64   `json:"version"`
	Enforce Enforce `json:"enforce"`
	Reject  Reject  `json:"reject"`
}

// BlockchainInfo models the result of "getblockchaininfo".
type BlockchainInfo struct {
	Chain                string     `json:"chain"`
	Blocks               int64      `json:"blocks"`
	Headers              int64      `json:"headers"`
	BestBlockHash        string     `json:"bestblockhash"`
	Difficulty           float64    `json:"difficulty"`
	MedianTime           int64      `json:"mediantime"`
	VerificationProgress float64    `json:"verificationprogress"`
	ChainWork            string     `json:"chainwork"`
	Pruned               bool       `json:"pruned"`
	Softforks            []Softfork `json:"softforks"`
}

// ChainTip models one entry of the "getchaintips" result.
type ChainTip struct {
	Height    uint64 `json:"height"`
	Hash      string `json:"hash"`
	BranchLen uint64 `json:"branchlen"`
	Status    string `json:"status"`
}

// MempoolInfo models the result of "getmempoolinfo".
type MempoolInfo struct {
	Size          int64  `json:"size"`
	Bytes         int64  `json:"bytes"`
	Usage         int64  `json:"usage"`
	MaxMempool    int64  `json:"maxmempool"`
	MempoolMinFee Amount `json:"mempoolminfee"`
}

// MempoolEntry models one entry of the verbose "getrawmempool" result.
type MempoolEntry struct {
	Size             int64    `json:"size"`
	Fee              Amount   `json:"fee"`
	Time             int64    `json:"time"`
	Height           int64    `json:"height"`
	StartingPriority float64  `json:"startingpriority"`
	CurrentPriority  float64  `json:"currentpriority"`
	Depends          []string `json:"depends"`
}

// Block models the decoded result of "getblock".
type Block struct {
	Hash              string   `json:"hash"`
	Confirmations     int64    `json:"confirmations"`
	Size              int64    `json:"size"`
	Height            int64    `json:"height"`
	Version           int64    `json:"version"`
	MerkleRoot        string   `json:"merkleroot"`
	Tx                []string `json:"tx"`
	Time              int64    `json:"time"`
	Nonce             int64    `json:"nonce"`
	Bits              string   `json:"bits"`
	ChainWork         string   `json:"chainwork"`
	PreviousBlockHash string   `json:"previousblockhash"`
	NextBlockHash     string   `json:"nextblockhash"`
}

// ScriptPubKey describes the locking script of a transaction output.
type ScriptPubKey struct {
	Asm       string   `json:"asm"`
	Hex       string   `json:"hex"`
	ReqSigs   int64    `json:"reqSigs"`
	Type      string   `json:"type"`
	Addresses []string `json:"addresses"`
}

// TxOut models the result of "gettxout".
type TxOut struct {
	BestBlock     string       `json:"bestblock"`
	Confirmations int64        `json:"confirmations"`
	Value         Amount       `json:"value"`
	ScriptPubKey  ScriptPubKey `json:"scriptPubKey"`
	Version       int64        `json:"version"`
	Coinbase      bool         `json:"coinbase"`
}

// TxOutSetInfo models the result of "gettxoutsetinfo".
type TxOutSetInfo struct {
	Height          int64  `json:"height"`
	BestBlock       string `json:"bestblock"`
	Transactions    int64  `json:"transactions"`
	TxOuts          int64  `json:"txouts"`
	BytesSerialized int64  `json:"bytes_serialized"`
	HashSerialized  string `json:"hash_serialized"`
	TotalAmount     Amount `json:"total_amount"`
}

// NetworkName identifies one of the node's peer networks.
type NetworkName string

// Peer networks reported by "getnetworkinfo".
const (
	NetworkIPv4  NetworkName = "ipv4"
	NetworkIPv6  NetworkName = "ipv6"
	NetworkOnion NetworkName = "onion"
)

// UnmarshalJSON implements the json.Unmarshaler interface for NetworkName.
func (n *NetworkName) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("invalid network name: %w", err)
	}
	switch NetworkName(s) {
	case NetworkIPv4, NetworkIPv6, NetworkOnion:
		*n = NetworkName(s)
		return nil
	}
	return fmt.Errorf("unknown network name %q", s)
}

// Network describes the node's reachability on one peer network.
type Network struct {
	Name                      NetworkName `json:"name"`
	Limited                   bool        `json:"limited"`
	Reachable                 bool        `json:"reachable"`
	Proxy                     string      `json:"proxy"`
	ProxyRandomizeCredentials bool        `json:"proxy_randomize_credentials"`
}

// LocalAddress is one of the node's advertised addresses.
type LocalAddress struct {
	Address string `json:"address"`
	Port    uint16 `json:"port"`
	Score   int64  `json:"score"`
}

// NetworkInfo models the result of "getnetworkinfo".
type NetworkInfo struct {
	Version         int64          `json:"version"`
	Subversion      string         `json:"subversion"`
	ProtocolVersion int64          `json:"protocolversion"`
	LocalServices   string         `json:"localservices"`
	LocalRelay      bool           `json:"localrelay"`
	TimeOffset      int64          `json:"timeoffset"`
	NetworkActive   bool           `json:"networkactive"`
	Connections     int64          `json:"connections"`
	Networks        []Network      `json:"networks"`
	RelayFee        Amount         `json:"relayfee"`
	IncrementalFee  Amount         `json:"incrementalfee"`
	LocalAddresses  []LocalAddress `json:"localaddresses"`
	Warnings        string         `json:"warnings"`
}

// PeerInfo models one entry of the "getpeerinfo" result.
type PeerInfo struct {
	ID             uint64   `json:"id"`
	Addr           string   `json:"addr"`
	AddrBind       string   `json:"addrbind"`
	AddrLocal      string   `json:"addrlocal"`
	Services       string   `json:"services"`
	RelayTxes      bool     `json:"relaytxes"`
	LastSend       int64    `json:"lastsend"`
	LastRecv       int64    `json:"lastrecv"`
	BytesSent      uint64   `json:"bytessent"`
	BytesRecv      uint64   `json:"bytesrecv"`
	ConnTime       int64    `json:"conntime"`
	TimeOffset     int64    `json:"timeoffset"`
	PingTime       float64  `json:"pingtime"`
	MinPing        float64  `json:"minping"`
	PingWait       float64  `json:"pingwait"`
	Version        uint64   `json:"version"`
	Subver         string   `json:"subver"`
	Inbound        bool     `json:"inbound"`
	AddNode        bool     `json:"addnode"`
	StartingHeight int64    `json:"startingheight"`
	BanScore       int64    `json:"banscore"`
	SyncedHeaders  int64    `json:"synced_headers"`
	SyncedBlocks   int64    `json:"synced_blocks"`
	Inflight       []uint64 `json:"inflight"`
	Whitelisted    bool     `json:"whitelisted"`
}

// EstimateMode selects the fee estimation strategy for "estimatesmartfee".
type EstimateMode string

// Fee estimation modes accepted by the node.
const (
	EstimateModeUnset        EstimateMode = "UNSET"
	EstimateModeEconomical   EstimateMode = "ECONOMICAL"
	EstimateModeConservative EstimateMode = "CONSERVATIVE"
)

// UnmarshalJSON implements the json.Unmarshaler interface for EstimateMode.
func (m *EstimateMode) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("invalid estimate mode: %w", err)
	}
	switch EstimateMode(s) {
	case EstimateModeUnset, EstimateModeEconomical, EstimateModeConservative:
		*m = EstimateMode(s)
		return nil
	}
	return fmt.Errorf("unknown estimate mode %q", s)
}

// EstimateSmartFee models the result of "estimatesmartfee". FeeRate is
// nil when the node had no estimate for the requested target; Errors
// then describes why.
type EstimateSmartFee struct {
	FeeRate *Amount  `json:"feerate,omitempty"`
	Errors  []string `json:"errors,omitempty"`
	Blocks  int64    `json:"blocks"`
}

// BlockRef models the result of "waitfornewblock" and "waitforblock".
type BlockRef struct {
	Hash   string `json:"hash"`
	Height uint64 `json:"height"`
}
