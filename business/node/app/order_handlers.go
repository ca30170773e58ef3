package app

import (
	"context"
	"strings"

	fusion "github.com/fd1az/oneinch-nodes/business/fusion/domain"
	limitorder "github.com/fd1az/oneinch-nodes/business/limitorder/domain"
	"github.com/fd1az/oneinch-nodes/business/node/domain"
	"github.com/fd1az/oneinch-nodes/internal/network"
)

func (e *Executor) fusionHandlers() map[string]handler {
	return map[string]handler{
		"getQuote":         {fusionService, e.fusionQuote},
		"getAllQuotes":     {fusionService, e.fusionAllQuotes},
		"getReadyToAccept": {fusionService, e.fusionReady},
		"getOrderStatus":   {fusionService, e.fusionOrderStatus},
		"getActiveOrders":  {fusionService, e.fusionActiveOrders},
		"getOrdersByMaker": {fusionService, e.fusionOrdersByMaker},
		"getResolvers":     {fusionService, e.fusionResolvers},
		"submitOrder":      {fusionService, e.fusionSubmit},
	}
}

func (e *Executor) crossChainHandlers() map[string]handler {
	return map[string]handler{
		"getQuote":       {fusionService, e.crossChainQuote},
		"submitOrder":    {fusionService, e.crossChainSubmit},
		"getOrderStatus": {fusionService, e.crossChainStatus},
	}
}

func (e *Executor) limitOrderHandlers() map[string]handler {
	return map[string]handler{
		"buildOrder":                {limitOrderService, e.buildOrder},
		"createOrder":               {limitOrderService, e.createOrder},
		"getAllOrders":              {limitOrderService, e.allOrders},
		"getOrderCount":             {limitOrderService, e.orderCount},
		"getOrdersByAddress":        {limitOrderService, e.ordersByAddress},
		"getOrderEvents":            {limitOrderService, e.orderEvents},
		"getOrderEventsByHash":      {limitOrderService, e.orderEventsByHash},
		"hasActiveOrdersWithPermit": {limitOrderService, e.activeOrdersWithPermit},
	}
}

func fusionQuoteParams(p domain.Params) (fusion.QuoteParams, error) {
	in := read(p)
	q := fusion.QuoteParams{
		FromTokenAddress: in.str("fromTokenAddress"),
		ToTokenAddress:   in.str("toTokenAddress"),
		Amount:           in.str("amount"),
		WalletAddress:    in.str("walletAddress"),
		EnableEstimate:   in.bool("enableEstimate", false),
		Fee:              in.int("fee", 0),
		IsPermit2:        in.bool("isPermit2", false),
	}
	return q, in.err
}

func pageParams(p domain.Params) (fusion.PageParams, error) {
	in := read(p)
	pp := fusion.PageParams{Page: in.int("page", 0), Limit: in.int("limit", 0)}
	return pp, in.err
}

func (e *Executor) fusionQuote(ctx context.Context, net network.Network, p domain.Params) (any, error) {
	q, err := fusionQuoteParams(p)
	if err != nil {
		return nil, err
	}
	return e.services.Fusion.Quote(ctx, net, q)
}

func (e *Executor) fusionAllQuotes(ctx context.Context, net network.Network, p domain.Params) (any, error) {
	q, err := fusionQuoteParams(p)
	if err != nil {
		return nil, err
	}
	return e.services.Fusion.AllQuotes(ctx, net, q)
}

func (e *Executor) fusionReady(ctx context.Context, net network.Network, p domain.Params) (any, error) {
	q, err := fusionQuoteParams(p)
	if err != nil {
		return nil, err
	}
	return e.services.Fusion.ReadyToAccept(ctx, net, q)
}

func (e *Executor) fusionOrderStatus(ctx context.Context, net network.Network, p domain.Params) (any, error) {
	return e.services.Fusion.OrderStatus(ctx, net, p.String("orderHash"))
}

func (e *Executor) fusionActiveOrders(ctx context.Context, net network.Network, p domain.Params) (any, error) {
	pp, err := pageParams(p)
	if err != nil {
		return nil, err
	}
	return e.services.Fusion.ActiveOrders(ctx, net, pp)
}

func (e *Executor) fusionOrdersByMaker(ctx context.Context, net network.Network, p domain.Params) (any, error) {
	pp, err := pageParams(p)
	if err != nil {
		return nil, err
	}
	return e.services.Fusion.OrdersByMaker(ctx, net, p.String("makerAddress"), pp)
}

func (e *Executor) fusionResolvers(ctx context.Context, net network.Network, _ domain.Params) (any, error) {
	return e.services.Fusion.Resolvers(ctx, net)
}

func (e *Executor) fusionSubmit(ctx context.Context, net network.Network, p domain.Params) (any, error) {
	var order limitorder.Order
	if err := p.Decode("order", &order); err != nil {
		return nil, err
	}
	return e.services.Fusion.SubmitOrder(ctx, net, order, p.String("signature"), p.String("quoteId"))
}

func (e *Executor) crossChainQuote(ctx context.Context, net network.Network, p domain.Params) (any, error) {
	dst, err := network.Resolve(p.String("dstNetwork"))
	if err != nil {
		return nil, err
	}
	return e.services.Fusion.CrossChainQuote(ctx, fusion.CrossChainQuoteParams{
		SrcChain:        net.ChainID,
		DstChain:        dst.ChainID,
		SrcTokenAddress: p.String("srcTokenAddress"),
		DstTokenAddress: p.String("dstTokenAddress"),
		Amount:          p.String("amount"),
		WalletAddress:   p.String("walletAddress"),
	})
}

func (e *Executor) crossChainSubmit(ctx context.Context, net network.Network, p domain.Params) (any, error) {
	dst, err := network.Resolve(p.String("dstNetwork"))
	if err != nil {
		return nil, err
	}
	var order limitorder.Order
	if err := p.Decode("order", &order); err != nil {
		return nil, err
	}
	return e.services.Fusion.SubmitCrossChainOrder(ctx, net, dst.ChainID, order, p.String("signature"), p.String("quoteId"))
}

func (e *Executor) crossChainStatus(ctx context.Context, _ network.Network, p domain.Params) (any, error) {
	return e.services.Fusion.CrossChainOrderStatus(ctx, p.String("orderHash"))
}

func listParams(p domain.Params) (limitorder.ListParams, error) {
	in := read(p)
	lp := limitorder.ListParams{
		Page:       in.int("page", 0),
		Limit:      in.int("limit", 0),
		SortBy:     in.str("sortBy"),
		MakerAsset: in.str("makerAsset"),
		TakerAsset: in.str("takerAsset"),
		Statuses:   strings.Join(p.List("statuses"), ","),
	}
	return lp, in.err
}

func (e *Executor) buildOrder(_ context.Context, net network.Network, p domain.Params) (any, error) {
	in := read(p)
	bp := limitorder.BuildParams{
		MakerAsset:   in.str("makerAsset"),
		TakerAsset:   in.str("takerAsset"),
		Maker:        in.str("maker"),
		Receiver:     in.str("receiver"),
		MakingAmount: in.str("makingAmount"),
		TakingAmount: in.str("takingAmount"),
		Expiry:       int64(in.uint("expiry", 0)),
	}
	if in.err != nil {
		return nil, in.err
	}
	return e.services.LimitOrder.BuildOrder(net, bp)
}

func (e *Executor) createOrder(ctx context.Context, net network.Network, p domain.Params) (any, error) {
	var order limitorder.Order
	if err := p.Decode("order", &order); err != nil {
		return nil, err
	}
	return e.services.LimitOrder.CreateOrder(ctx, net, order, p.String("signature"))
}

func (e *Executor) allOrders(ctx context.Context, net network.Network, p domain.Params) (any, error) {
	lp, err := listParams(p)
	if err != nil {
		return nil, err
	}
	return e.services.LimitOrder.AllOrders(ctx, net, lp)
}

func (e *Executor) orderCount(ctx context.Context, net network.Network, p domain.Params) (any, error) {
	return e.services.LimitOrder.OrderCount(ctx, net, strings.Join(p.List("statuses"), ","))
}

func (e *Executor) ordersByAddress(ctx context.Context, net network.Network, p domain.Params) (any, error) {
	lp, err := listParams(p)
	if err != nil {
		return nil, err
	}
	return e.services.LimitOrder.OrdersByAddress(ctx, net, p.String("address"), lp)
}

func (e *Executor) orderEvents(ctx context.Context, net network.Network, p domain.Params) (any, error) {
	limit, err := p.Int("limit", 0)
	if err != nil {
		return nil, err
	}
	return e.services.LimitOrder.Events(ctx, net, limit)
}

func (e *Executor) orderEventsByHash(ctx context.Context, net network.Network, p domain.Params) (any, error) {
	return e.services.LimitOrder.EventsByHash(ctx, net, p.String("orderHash"))
}

func (e *Executor) activeOrdersWithPermit(ctx context.Context, net network.Network, p domain.Params) (any, error) {
	return e.services.LimitOrder.HasActiveOrdersWithPermit(ctx, net, p.String("walletAddress"), p.String("tokenAddress"))
}
