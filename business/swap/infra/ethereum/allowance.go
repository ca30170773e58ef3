// Package ethereum reads ERC-20 allowances over JSON-RPC.
package ethereum

import (
	"context"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/fd1az/oneinch-nodes/business/swap/app"
	"github.com/fd1az/oneinch-nodes/internal/apperror"
	"github.com/fd1az/oneinch-nodes/internal/circuitbreaker"
	"github.com/fd1az/oneinch-nodes/internal/erc20"
	"github.com/fd1az/oneinch-nodes/internal/logger"
	"github.com/fd1az/oneinch-nodes/internal/network"
)

const tracerName = "ethereum.allowance"

// Ensure AllowanceChecker implements AllowanceReader.
var _ app.AllowanceReader = (*AllowanceChecker)(nil)

// Dialer opens a contract caller for an RPC endpoint.
type Dialer func(ctx context.Context, rpcURL string) (ethereum.ContractCaller, error)

// DialEthClient dials with ethclient.
func DialEthClient(ctx context.Context, rpcURL string) (ethereum.ContractCaller, error) {
	return ethclient.DialContext(ctx, rpcURL)
}

// AllowanceChecker calls allowance(owner, spender) on token contracts. One
// caller is kept per RPC endpoint.
type AllowanceChecker struct {
	dial        Dialer
	rpcOverride string

	mu      sync.Mutex
	callers map[string]ethereum.ContractCaller

	cb     *circuitbreaker.CircuitBreaker[[]byte]
	logger logger.LoggerInterface
	tracer trace.Tracer
}

// NewAllowanceChecker creates a checker. A non-empty rpcOverride is used
// instead of the network's own RPC endpoint.
func NewAllowanceChecker(dial Dialer, rpcOverride string, cbCfg circuitbreaker.Config, log logger.LoggerInterface) *AllowanceChecker {
	if dial == nil {
		dial = DialEthClient
	}
	return &AllowanceChecker{
		dial:        dial,
		rpcOverride: rpcOverride,
		callers:     make(map[string]ethereum.ContractCaller),
		cb:          circuitbreaker.New[[]byte](cbCfg),
		logger:      log,
		tracer:      otel.Tracer(tracerName),
	}
}

// Allowance returns token.allowance(owner, spender) at the latest block.
func (c *AllowanceChecker) Allowance(ctx context.Context, net network.Network, token, owner, spender common.Address) (*big.Int, error) {
	ctx, span := c.tracer.Start(ctx, "ethereum.allowance",
		trace.WithAttributes(
			attribute.Int64("chain_id", int64(net.ChainID)),
			attribute.String("token", token.Hex()),
			attribute.String("owner", owner.Hex()),
			attribute.String("spender", spender.Hex()),
		),
	)
	defer span.End()

	caller, err := c.caller(ctx, net)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "dial failed")
		return nil, err
	}

	callData, err := erc20.PackAllowance(owner, spender)
	if err != nil {
		return nil, apperror.Internal(apperror.CodeContractCallFailed, "pack allowance", err)
	}

	result, err := c.cb.Execute(func() ([]byte, error) {
		return caller.CallContract(ctx, ethereum.CallMsg{
			To:   &token,
			Data: callData,
		}, nil)
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "call failed")
		// an open breaker keeps its own code
		return nil, apperror.Wrap(err, apperror.CodeContractCallFailed, err.Error())
	}

	allowance, err := erc20.UnpackAllowance(result)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "unpack failed")
		return nil, apperror.New(apperror.CodeContractCallFailed,
			apperror.WithCause(err),
			apperror.WithContext("token did not return a uint256 allowance"))
	}

	span.SetAttributes(attribute.String("allowance", allowance.String()))
	span.SetStatus(codes.Ok, "allowance read")

	c.logger.Debug(ctx, "allowance read",
		"chain_id", net.ChainID,
		"token", token.Hex(),
		"owner", owner.Hex(),
		"spender", spender.Hex(),
		"allowance", allowance.String(),
	)
	return allowance, nil
}

func (c *AllowanceChecker) caller(ctx context.Context, net network.Network) (ethereum.ContractCaller, error) {
	rpcURL := c.rpcOverride
	if rpcURL == "" {
		rpcURL = net.RPCURL()
	}
	if rpcURL == "" {
		return nil, apperror.New(apperror.CodeEthereumConnectionFailed,
			apperror.WithContext("no RPC endpoint for "+net.Name))
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if existing, ok := c.callers[rpcURL]; ok {
		return existing, nil
	}
	caller, err := c.dial(ctx, rpcURL)
	if err != nil {
		return nil, apperror.External(apperror.CodeEthereumConnectionFailed, err.Error(), err)
	}
	c.callers[rpcURL] = caller
	return caller, nil
}

// Close releases dialed clients.
func (c *AllowanceChecker) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for url, caller := range c.callers {
		if closer, ok := caller.(interface{ Close() }); ok {
			closer.Close()
		}
		delete(c.callers, url)
	}
}
