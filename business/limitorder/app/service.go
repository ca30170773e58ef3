package app

import (
	"context"
	"crypto/ecdsa"
	"io"
	"math/big"
	"regexp"

	"github.com/ethereum/go-ethereum/common"

	"github.com/fd1az/oneinch-nodes/business/limitorder/domain"
	"github.com/fd1az/oneinch-nodes/internal/apperror"
	"github.com/fd1az/oneinch-nodes/internal/asset"
	"github.com/fd1az/oneinch-nodes/internal/logger"
	"github.com/fd1az/oneinch-nodes/internal/network"
)

const defaultDecimals = 18

var orderHashPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{64}$`)

// LimitOrderService builds, signs and submits limit orders and reads the orderbook.
type LimitOrderService struct {
	api      OrderbookAPI
	registry *asset.Registry
	key      *ecdsa.PrivateKey
	rand     io.Reader
	logger   logger.LoggerInterface
}

// NewLimitOrderService creates a LimitOrderService. key may be nil, in which
// case orders are built unsigned and submissions need a signature.
func NewLimitOrderService(api OrderbookAPI, registry *asset.Registry, key *ecdsa.PrivateKey, log logger.LoggerInterface) *LimitOrderService {
	if registry == nil {
		registry = asset.DefaultRegistry()
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &LimitOrderService{api: api, registry: registry, key: key, logger: log}
}

// WithRand replaces the salt source. Tests use it for deterministic salts.
func (s *LimitOrderService) WithRand(r io.Reader) *LimitOrderService {
	s.rand = r
	return s
}

// BuildOrder assembles an order, hashes it for the chain's protocol contract
// and signs it when a key is configured and matches the maker.
func (s *LimitOrderService) BuildOrder(net network.Network, p domain.BuildParams) (*BuildOrderResult, error) {
	order, err := domain.BuildLimitOrder(p, s.rand)
	if err != nil {
		return nil, err
	}

	contract := net.Contracts.LimitOrderProtocol
	res := &BuildOrderResult{
		Ref:               net.Ref(),
		Order:             order,
		VerifyingContract: contract,
		Expiry:            p.Expiry,
	}

	if s.key != nil && s.ownsMaker(order.Maker) {
		h, sig, err := domain.Sign(order, net.ChainID, contract, s.key)
		if err != nil {
			return nil, err
		}
		res.OrderHash, res.Signature, res.Signed = h.Hex(), sig, true
	} else {
		h, err := domain.Hash(order, net.ChainID, contract)
		if err != nil {
			return nil, err
		}
		res.OrderHash = h.Hex()
	}

	making, _ := new(big.Int).SetString(order.MakingAmount, 10)
	taking, _ := new(big.Int).SetString(order.TakingAmount, 10)
	mDec := s.registry.Decimals(net.ChainID, order.MakerAsset, defaultDecimals)
	tDec := s.registry.Decimals(net.ChainID, order.TakerAsset, defaultDecimals)
	rate := domain.CalculateOrderRate(making, taking, mDec, tDec)

	res.MakingAmountFormatted = asset.ToHumanUnit(making, mDec)
	res.TakingAmountFormatted = asset.ToHumanUnit(taking, tDec)
	res.MakerRate = rate.MakerRate.String()
	res.TakerRate = rate.TakerRate.String()
	return res, nil
}

func (s *LimitOrderService) ownsMaker(maker string) bool {
	return common.IsHexAddress(maker) && s.signer() == common.HexToAddress(maker)
}

func (s *LimitOrderService) signer() common.Address {
	if s.key == nil {
		return common.Address{}
	}
	return addressOf(s.key)
}

// CreateOrder submits a built order. Without a signature the order is signed
// with the configured key.
func (s *LimitOrderService) CreateOrder(ctx context.Context, net network.Network, order domain.Order, signature string) (*CreateOrderResult, error) {
	if err := validateOrder(order); err != nil {
		return nil, err
	}
	contract := net.Contracts.LimitOrderProtocol

	var hash common.Hash
	var err error
	if signature == "" {
		hash, signature, err = domain.Sign(order, net.ChainID, contract, s.key)
	} else {
		hash, err = domain.Hash(order, net.ChainID, contract)
	}
	if err != nil {
		return nil, err
	}

	resp, err := s.api.CreateOrder(ctx, net.ChainID, domain.CreateOrderRequest{
		OrderHash: hash.Hex(),
		Signature: signature,
		Data:      order,
	})
	if err != nil {
		return nil, err
	}

	out := &CreateOrderResult{Ref: net.Ref(), Success: resp.Success, OrderHash: resp.OrderHash, Error: resp.Error}
	if out.OrderHash == "" {
		out.OrderHash = hash.Hex()
	}
	s.logger.Info(ctx, "limit order submitted", "chainId", net.ChainID, "orderHash", out.OrderHash, "success", out.Success)
	return out, nil
}

func validateOrder(o domain.Order) error {
	return domain.BuildParams{
		MakerAsset:   o.MakerAsset,
		TakerAsset:   o.TakerAsset,
		Maker:        o.Maker,
		Receiver:     o.Receiver,
		MakingAmount: o.MakingAmount,
		TakingAmount: o.TakingAmount,
	}.Validate()
}

// AllOrders lists orders on the chain.
func (s *LimitOrderService) AllOrders(ctx context.Context, net network.Network, p domain.ListParams) (*OrdersResult, error) {
	page, err := s.api.AllOrders(ctx, net.ChainID, p)
	if err != nil {
		return nil, err
	}
	return ordersResult(net, page), nil
}

// OrdersByAddress lists orders of one maker.
func (s *LimitOrderService) OrdersByAddress(ctx context.Context, net network.Network, address string, p domain.ListParams) (*OrdersResult, error) {
	if !common.IsHexAddress(address) {
		return nil, apperror.Validation(apperror.CodeInvalidAddress, address)
	}
	page, err := s.api.OrdersByAddress(ctx, net.ChainID, address, p)
	if err != nil {
		return nil, err
	}
	return ordersResult(net, page), nil
}

func ordersResult(net network.Network, page *domain.OrdersPage) *OrdersResult {
	views := make([]OrderView, 0, len(page.Items))
	for _, o := range page.Items {
		views = append(views, OrderView{OrderRecord: o, FilledPercent: o.FilledPercent().String()})
	}
	return &OrdersResult{Ref: net.Ref(), Count: len(views), Meta: page.Meta, Orders: views}
}

// OrderCount counts orders, optionally filtered by status list.
func (s *LimitOrderService) OrderCount(ctx context.Context, net network.Network, statuses string) (*OrderCountResult, error) {
	n, err := s.api.OrderCount(ctx, net.ChainID, statuses)
	if err != nil {
		return nil, err
	}
	return &OrderCountResult{Ref: net.Ref(), Statuses: statuses, Count: n}, nil
}

// Events lists the latest order events.
func (s *LimitOrderService) Events(ctx context.Context, net network.Network, limit int) (*EventsResult, error) {
	events, err := s.api.Events(ctx, net.ChainID, limit)
	if err != nil {
		return nil, err
	}
	return eventsResult(net, "", events), nil
}

// EventsByHash lists the events of one order.
func (s *LimitOrderService) EventsByHash(ctx context.Context, net network.Network, orderHash string) (*EventsResult, error) {
	if !orderHashPattern.MatchString(orderHash) {
		return nil, apperror.Validation(apperror.CodeInvalidInput, "invalid order hash "+orderHash)
	}
	events, err := s.api.EventsByHash(ctx, net.ChainID, orderHash)
	if err != nil {
		return nil, err
	}
	return eventsResult(net, orderHash, events), nil
}

func eventsResult(net network.Network, hash string, events []domain.Event) *EventsResult {
	if events == nil {
		events = []domain.Event{}
	}
	return &EventsResult{Ref: net.Ref(), OrderHash: hash, Count: len(events), Events: events}
}

// HasActiveOrdersWithPermit reports whether wallet has live orders that
// spend token through a permit.
func (s *LimitOrderService) HasActiveOrdersWithPermit(ctx context.Context, net network.Network, wallet, token string) (*ActiveOrdersResult, error) {
	for _, a := range []string{wallet, token} {
		if !common.IsHexAddress(a) {
			return nil, apperror.Validation(apperror.CodeInvalidAddress, a)
		}
	}
	has, err := s.api.HasActiveOrdersWithPermit(ctx, net.ChainID, wallet, token)
	if err != nil {
		return nil, err
	}
	return &ActiveOrdersResult{Ref: net.Ref(), WalletAddress: wallet, TokenAddress: token, HasActiveOrders: has}, nil
}
