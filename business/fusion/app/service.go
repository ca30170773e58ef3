package app

import (
	"context"
	"crypto/ecdsa"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/fd1az/oneinch-nodes/business/fusion/domain"
	limitorder "github.com/fd1az/oneinch-nodes/business/limitorder/domain"
	"github.com/fd1az/oneinch-nodes/internal/apperror"
	"github.com/fd1az/oneinch-nodes/internal/asset"
	"github.com/fd1az/oneinch-nodes/internal/logger"
	"github.com/fd1az/oneinch-nodes/internal/network"
)

const defaultDecimals = 18

// Credential modes.
const (
	ModeUser     = "user"
	ModeResolver = "resolver"
)

// FusionService quotes, submits and tracks Fusion and Fusion+ orders.
type FusionService struct {
	api      FusionAPI
	cross    CrossChainAPI
	registry *asset.Registry
	key      *ecdsa.PrivateKey
	mode     string
	logger   logger.LoggerInterface
}

// NewFusionService creates a FusionService. key signs orders submitted
// without a signature and may be nil.
func NewFusionService(api FusionAPI, cross CrossChainAPI, registry *asset.Registry, key *ecdsa.PrivateKey, mode string, log logger.LoggerInterface) *FusionService {
	if registry == nil {
		registry = asset.DefaultRegistry()
	}
	if log == nil {
		log = logger.NewNop()
	}
	if mode == "" {
		mode = ModeUser
	}
	return &FusionService{api: api, cross: cross, registry: registry, key: key, mode: mode, logger: log}
}

func requireFusion(net network.Network) error {
	if !net.SupportsFusion() {
		return apperror.Validation(apperror.CodeUnsupportedNetwork, "Fusion is not available on "+net.Name)
	}
	return nil
}

// Quote asks the quoter for a Fusion quote.
func (s *FusionService) Quote(ctx context.Context, net network.Network, p domain.QuoteParams) (*QuoteResult, error) {
	if err := s.checkQuote(net, p); err != nil {
		return nil, err
	}
	q, err := s.api.Quote(ctx, net.ChainID, p)
	if err != nil {
		return nil, err
	}
	res := s.quoteResult(net, p, *q)
	return &res, nil
}

// AllQuotes returns every quote the quoter offers for the pair.
func (s *FusionService) AllQuotes(ctx context.Context, net network.Network, p domain.QuoteParams) (*QuotesResult, error) {
	if err := s.checkQuote(net, p); err != nil {
		return nil, err
	}
	quotes, err := s.api.AllQuotes(ctx, net.ChainID, p)
	if err != nil {
		return nil, err
	}
	out := &QuotesResult{Ref: net.Ref(), Quotes: make([]QuoteResult, 0, len(quotes))}
	for _, q := range quotes {
		out.Quotes = append(out.Quotes, s.quoteResult(net, p, q))
	}
	out.Count = len(out.Quotes)
	return out, nil
}

// ReadyToAccept reports whether a quote for the pair can be accepted now.
func (s *FusionService) ReadyToAccept(ctx context.Context, net network.Network, p domain.QuoteParams) (*ReadyResult, error) {
	if err := s.checkQuote(net, p); err != nil {
		return nil, err
	}
	r, err := s.api.ReadyToAccept(ctx, net.ChainID, p)
	if err != nil {
		return nil, err
	}
	return &ReadyResult{Ref: net.Ref(), Ready: r.Ready, Reason: r.Reason}, nil
}

func (s *FusionService) checkQuote(net network.Network, p domain.QuoteParams) error {
	if err := requireFusion(net); err != nil {
		return err
	}
	return p.Validate()
}

func (s *FusionService) quoteResult(net network.Network, p domain.QuoteParams, q domain.Quote) QuoteResult {
	fromDec := s.registry.Decimals(net.ChainID, p.FromTokenAddress, defaultDecimals)
	toDec := s.registry.Decimals(net.ChainID, p.ToTokenAddress, defaultDecimals)

	res := QuoteResult{
		Ref:                      net.Ref(),
		QuoteID:                  q.QuoteID,
		FromTokenAmount:          q.FromTokenAmount,
		FromTokenAmountFormatted: formatAmount(q.FromTokenAmount, fromDec),
		ToTokenAmount:            q.ToTokenAmount,
		ToTokenAmountFormatted:   formatAmount(q.ToTokenAmount, toDec),
		FeeToken:                 q.FeeToken,
		EstimatedGas:             q.EstimatedGas,
		Presets:                  q.Presets,
		RecommendedPreset:        q.RecommendedPreset,
		SettlementAddress:        q.SettlementAddress,
		Whitelist:                q.Whitelist,
	}
	if res.Whitelist == nil {
		res.Whitelist = []string{}
	}
	if preset, ok := q.Recommended(); ok {
		res.Auction = &Auction{
			Preset:                      q.RecommendedPreset,
			AuctionDuration:             preset.AuctionDuration,
			StartAuctionIn:              preset.StartAuctionIn,
			InitialRateBump:             preset.InitialRateBump,
			AuctionStartAmount:          preset.AuctionStartAmount,
			AuctionStartAmountFormatted: formatAmount(preset.AuctionStartAmount, toDec),
			AuctionEndAmount:            preset.AuctionEndAmount,
			AuctionEndAmountFormatted:   formatAmount(preset.AuctionEndAmount, toDec),
		}
	}
	return res
}

// formatAmount renders a raw amount in token units, or "" when the
// upstream value is not an integer.
func formatAmount(raw string, decimals uint8) string {
	v, err := asset.ParseRaw(raw)
	if err != nil || raw == "" {
		return ""
	}
	return asset.ToHumanUnit(v, decimals)
}

// SubmitOrder sends a signed order to the relayer. Without a signature the
// order is signed with the configured key.
func (s *FusionService) SubmitOrder(ctx context.Context, net network.Network, order limitorder.Order, signature, quoteID string) (*SubmitResult, error) {
	if err := requireFusion(net); err != nil {
		return nil, err
	}
	signed, err := s.prepare(net, order, signature, quoteID)
	if err != nil {
		return nil, err
	}

	resp, err := s.api.SubmitOrder(ctx, net.ChainID, signed.SignedOrder)
	if err != nil {
		return nil, err
	}

	out := &SubmitResult{Ref: net.Ref(), OrderHash: resp.OrderHash, QuoteID: quoteID, Signed: signed.local, Order: order}
	if out.OrderHash == "" {
		out.OrderHash = signed.hash
	}
	s.logger.Info(ctx, "fusion order submitted", "chainId", net.ChainID, "orderHash", out.OrderHash)
	return out, nil
}

type preparedOrder struct {
	domain.SignedOrder
	hash  string
	local bool
}

// prepare validates the order and produces its signature. A supplied
// signature must recover to the maker.
func (s *FusionService) prepare(net network.Network, order limitorder.Order, signature, quoteID string) (*preparedOrder, error) {
	if s.mode == ModeResolver {
		return nil, apperror.Validation(apperror.CodeUnsupportedOperation, "resolver credentials fill orders and cannot submit them")
	}
	if strings.TrimSpace(quoteID) == "" {
		return nil, apperror.Validation(apperror.CodeMissingParameter, "quoteId")
	}
	if err := validateOrder(order); err != nil {
		return nil, err
	}

	contract := net.Contracts.LimitOrderProtocol
	out := &preparedOrder{SignedOrder: domain.SignedOrder{Order: order, Signature: signature, QuoteID: quoteID}}

	if signature == "" {
		h, sig, err := limitorder.Sign(order, net.ChainID, contract, s.key)
		if err != nil {
			return nil, err
		}
		out.Signature, out.hash, out.local = sig, h.Hex(), true
		return out, nil
	}

	h, err := limitorder.Hash(order, net.ChainID, contract)
	if err != nil {
		return nil, err
	}
	signer, err := limitorder.RecoverSigner(h, signature)
	if err != nil {
		return nil, err
	}
	if signer != common.HexToAddress(order.Maker) {
		return nil, apperror.Validation(apperror.CodeInvalidInput, "signature does not belong to maker "+order.Maker)
	}
	out.hash = h.Hex()
	return out, nil
}

func validateOrder(o limitorder.Order) error {
	return limitorder.BuildParams{
		MakerAsset:   o.MakerAsset,
		TakerAsset:   o.TakerAsset,
		Maker:        o.Maker,
		Receiver:     o.Receiver,
		MakingAmount: o.MakingAmount,
		TakingAmount: o.TakingAmount,
	}.Validate()
}

// OrderStatus looks up one order on the relayer.
func (s *FusionService) OrderStatus(ctx context.Context, net network.Network, orderHash string) (*OrderStatusResult, error) {
	if err := requireHash(orderHash); err != nil {
		return nil, err
	}
	st, err := s.api.OrderStatus(ctx, net.ChainID, orderHash)
	if err != nil {
		return nil, err
	}
	if st.Fills == nil {
		st.Fills = []domain.Fill{}
	}
	out := &OrderStatusResult{
		Ref:                net.Ref(),
		OrderHash:          orderHash,
		OrderStatus:        *st,
		FilledMakingAmount: st.FilledMakingAmount().String(),
		FilledPercent:      st.FilledPercent().String(),
		Final:              st.Status.IsFinal(),
	}
	if end := st.AuctionEnd(); !end.IsZero() {
		out.AuctionEndTime = end.Format(time.RFC3339)
	}
	return out, nil
}

func requireHash(h string) error {
	if !domain.ValidOrderHash(h) {
		return apperror.Validation(apperror.CodeInvalidInput, "invalid order hash "+h)
	}
	return nil
}

// OrdersByMaker lists the Fusion orders of one maker.
func (s *FusionService) OrdersByMaker(ctx context.Context, net network.Network, maker string, p domain.PageParams) (*OrdersResult, error) {
	if !common.IsHexAddress(maker) {
		return nil, apperror.Validation(apperror.CodeInvalidAddress, maker)
	}
	page, err := s.api.OrdersByMaker(ctx, net.ChainID, maker, p)
	if err != nil {
		return nil, err
	}
	return ordersResult(net, page), nil
}

// ActiveOrders lists the orders currently in auction.
func (s *FusionService) ActiveOrders(ctx context.Context, net network.Network, p domain.PageParams) (*OrdersResult, error) {
	page, err := s.api.ActiveOrders(ctx, net.ChainID, p)
	if err != nil {
		return nil, err
	}
	return ordersResult(net, page), nil
}

func ordersResult(net network.Network, page *domain.OrdersPage) *OrdersResult {
	orders := page.Orders
	if orders == nil {
		orders = []domain.OrderStatus{}
	}
	return &OrdersResult{Ref: net.Ref(), Count: len(orders), Meta: page.Meta, Orders: orders}
}

// Resolvers lists the whitelisted resolvers of the chain.
func (s *FusionService) Resolvers(ctx context.Context, net network.Network) (*ResolversResult, error) {
	resolvers, err := s.api.Resolvers(ctx, net.ChainID)
	if err != nil {
		return nil, err
	}
	if resolvers == nil {
		resolvers = []domain.Resolver{}
	}
	return &ResolversResult{Ref: net.Ref(), Count: len(resolvers), Resolvers: resolvers}, nil
}

// CrossChainQuote asks the Fusion+ quoter for a cross-chain quote.
func (s *FusionService) CrossChainQuote(ctx context.Context, p domain.CrossChainQuoteParams) (*CrossChainQuoteResult, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	src, err := network.LookupByChainID(p.SrcChain)
	if err != nil {
		return nil, err
	}
	dst, err := network.LookupByChainID(p.DstChain)
	if err != nil {
		return nil, err
	}

	q, err := s.cross.Quote(ctx, p)
	if err != nil {
		return nil, err
	}
	srcDec := s.registry.Decimals(src.ChainID, p.SrcTokenAddress, defaultDecimals)
	dstDec := s.registry.Decimals(dst.ChainID, p.DstTokenAddress, defaultDecimals)
	return &CrossChainQuoteResult{
		QuoteID:                 q.QuoteID,
		SrcChainID:              src.ChainID,
		SrcNetwork:              src.Name,
		DstChainID:              dst.ChainID,
		DstNetwork:              dst.Name,
		SrcTokenAmount:          q.SrcTokenAmount,
		SrcTokenAmountFormatted: formatAmount(q.SrcTokenAmount, srcDec),
		DstTokenAmount:          q.DstTokenAmount,
		DstTokenAmountFormatted: formatAmount(q.DstTokenAmount, dstDec),
		EstimatedTime:           q.EstimatedTime,
		BridgeFee:               q.BridgeFee,
	}, nil
}

// SubmitCrossChainOrder sends the source-chain order of a Fusion+ swap.
func (s *FusionService) SubmitCrossChainOrder(ctx context.Context, src network.Network, dstChainID uint64, order limitorder.Order, signature, quoteID string) (*CrossChainSubmitResult, error) {
	if dstChainID == 0 || dstChainID == src.ChainID {
		return nil, apperror.Validation(apperror.CodeInvalidInput, "destination chain must differ from source chain")
	}
	if _, err := network.LookupByChainID(dstChainID); err != nil {
		return nil, err
	}
	signed, err := s.prepare(src, order, signature, quoteID)
	if err != nil {
		return nil, err
	}

	resp, err := s.cross.SubmitOrder(ctx, domain.CrossChainOrderRequest{SrcOrder: signed.SignedOrder, DstChainID: dstChainID})
	if err != nil {
		return nil, err
	}
	out := &CrossChainSubmitResult{
		Ref:          src.Ref(),
		DstChainID:   dstChainID,
		OrderHash:    resp.OrderHash,
		SrcOrderHash: resp.SrcOrderHash,
		QuoteID:      quoteID,
		Signed:       signed.local,
	}
	if out.SrcOrderHash == "" {
		out.SrcOrderHash = signed.hash
	}
	s.logger.Info(ctx, "cross-chain order submitted", "srcChainId", src.ChainID, "dstChainId", dstChainID, "orderHash", out.OrderHash)
	return out, nil
}

// CrossChainOrderStatus looks up a Fusion+ order.
func (s *FusionService) CrossChainOrderStatus(ctx context.Context, orderHash string) (*CrossChainStatusResult, error) {
	if err := requireHash(orderHash); err != nil {
		return nil, err
	}
	st, err := s.cross.OrderStatus(ctx, orderHash)
	if err != nil {
		return nil, err
	}
	return &CrossChainStatusResult{OrderHash: orderHash, CrossChainStatus: *st, IsSettled: st.Settled()}, nil
}

