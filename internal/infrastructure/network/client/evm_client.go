package client

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"

	"cosmic_gateway/internal/app/port"
	"cosmic_gateway/internal/domain/entity"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
)

// EVMGameReader implements port.GameReader against the Cosmic Signature game
// contract on an EVM chain. Only view functions are called here; writes are
// signed by the user's wallet and never pass through the gateway.
type EVMGameReader struct {
	ethClient      *ethclient.Client
	netDef         entity.NetworkDefinition
	gameAddr       common.Address
	rpcCallTimeout time.Duration
}

// Minimal game ABI covering the view functions the gateway reads.
const gameABI = `[
{"inputs":[],"name":"roundNum","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
{"inputs":[],"name":"getBidPrice","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
{"inputs":[],"name":"getCurrentBidPriceCST","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
{"inputs":[],"name":"lastBidder","outputs":[{"name":"","type":"address"}],"stateMutability":"view","type":"function"},
{"inputs":[],"name":"mainPrizeAmount","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
{"inputs":[],"name":"prizeTime","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"}
]`

var (
	parsedGameABI  abi.ABI
	parsedGameOnce sync.Once
)

func initParsedGameABI() {
	parsedGameOnce.Do(func() {
		var err error
		parsedGameABI, err = abi.JSON(strings.NewReader(gameABI))
		if err != nil {
			// This is a critical error during initialization, panic is appropriate
			panic(fmt.Sprintf("failed to parse game ABI: %v", err))
		}
	})
}

// NewEVMGameReader dials the network's RPC endpoints in order and returns a
// reader bound to the first endpoint that accepts a connection.
func NewEVMGameReader(netDef entity.NetworkDefinition, gameAddress string, connectionTimeout, rpcCallTimeout time.Duration) (port.GameReader, error) {
	initParsedGameABI()

	var lastErr error
	for _, rpcURL := range netDef.RPCURLs {
		ctx, cancel := context.WithTimeout(context.Background(), connectionTimeout)
		ethClient, err := ethclient.DialContext(ctx, rpcURL)
		cancel()
		if err == nil {
			return &EVMGameReader{
				ethClient:      ethClient,
				netDef:         netDef,
				gameAddr:       common.HexToAddress(gameAddress),
				rpcCallTimeout: rpcCallTimeout,
			}, nil
		}
		lastErr = fmt.Errorf("failed to connect to RPC %s: %w", rpcURL, err)
	}
	return nil, fmt.Errorf("all RPC connection attempts failed for network %s: %w", netDef.Name, lastErr)
}

// ReadGameState fetches the current round state in a single JSON-RPC batch.
func (r *EVMGameReader) ReadGameState(ctx context.Context) (port.GameState, error) {
	methods := []string{"roundNum", "getBidPrice", "getCurrentBidPriceCST", "lastBidder", "mainPrizeAmount", "prizeTime"}

	batchElems := make([]rpc.BatchElem, len(methods))
	for i, method := range methods {
		callData, err := parsedGameABI.Pack(method)
		if err != nil {
			return port.GameState{}, fmt.Errorf("failed to pack call data for %s: %w", method, err)
		}
		callArgs := map[string]interface{}{
			"to":   r.gameAddr,
			"data": hexutil.Bytes(callData),
		}
		batchElems[i] = rpc.BatchElem{
			Method: "eth_call",
			Args:   []interface{}{callArgs, "latest"},
			Result: new(hexutil.Bytes),
		}
	}

	rpcCallCtx, cancel := context.WithTimeout(ctx, r.rpcCallTimeout)
	defer cancel()
	if err := r.ethClient.Client().BatchCallContext(rpcCallCtx, batchElems); err != nil {
		return port.GameState{}, fmt.Errorf("RPC batch call failed: %w", err)
	}

	var state port.GameState
	for i, elem := range batchElems {
		if elem.Error != nil {
			return port.GameState{}, fmt.Errorf("eth_call %s failed: %w", methods[i], elem.Error)
		}
		raw, ok := elem.Result.(*hexutil.Bytes)
		if !ok || raw == nil {
			return port.GameState{}, fmt.Errorf("unexpected result type for %s", methods[i])
		}

		unpacked, err := parsedGameABI.Unpack(methods[i], *raw)
		if err != nil {
			return port.GameState{}, fmt.Errorf("failed to unpack %s result: %w. Raw: %s", methods[i], err, hexutil.Encode(*raw))
		}
		if len(unpacked) == 0 {
			return port.GameState{}, fmt.Errorf("%s unpack returned no data", methods[i])
		}

		switch methods[i] {
		case "roundNum":
			v, ok := unpacked[0].(*big.Int)
			if !ok {
				return port.GameState{}, fmt.Errorf("roundNum: expected *big.Int, got %T", unpacked[0])
			}
			state.RoundNum = v.Uint64()
		case "getBidPrice":
			state.BidPriceWei, ok = unpacked[0].(*big.Int)
		case "getCurrentBidPriceCST":
			state.CstBidPriceWei, ok = unpacked[0].(*big.Int)
		case "lastBidder":
			addr, addrOK := unpacked[0].(common.Address)
			if !addrOK {
				return port.GameState{}, fmt.Errorf("lastBidder: expected address, got %T", unpacked[0])
			}
			state.LastBidderAddr = addr.Hex()
		case "mainPrizeAmount":
			state.PrizeAmountWei, ok = unpacked[0].(*big.Int)
		case "prizeTime":
			v, tOK := unpacked[0].(*big.Int)
			if !tOK {
				return port.GameState{}, fmt.Errorf("prizeTime: expected *big.Int, got %T", unpacked[0])
			}
			state.PrizeTimeSec = v.Int64()
		}
		if !ok {
			return port.GameState{}, fmt.Errorf("failed to assert %s result to its expected type", methods[i])
		}
	}
	return state, nil
}

// Definition returns the network definition this reader is bound to.
func (r *EVMGameReader) Definition() entity.NetworkDefinition {
	return r.netDef
}
