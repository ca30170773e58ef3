package app

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/fd1az/oneinch-nodes/business/node/domain"
	swap "github.com/fd1az/oneinch-nodes/business/swap/domain"
	"github.com/fd1az/oneinch-nodes/internal/network"
)

func (e *Executor) swapHandlers() map[string]handler {
	return map[string]handler{
		"getQuote":            {swapService, e.swapQuote},
		"getSwapCalldata":     {swapService, e.swapCalldata},
		"getSupportedTokens":  {swapService, e.supportedTokens},
		"getLiquiditySources": {swapService, e.apiLiquiditySources},
		"checkAllowance":      {swapService, e.checkAllowance},
		"getApprovalCalldata": {swapService, e.approvalCalldata},
		"getSpender":          {swapService, e.spender},
		"analyzeRoute":        {swapService, e.analyzeRoute},
	}
}

func (e *Executor) approveHandlers() map[string]handler {
	return map[string]handler{
		"buildApproval":         {swapService, e.buildApproval},
		"buildRevoke":           {swapService, e.buildRevoke},
		"checkOnChainAllowance": {swapService, e.onChainAllowance},
	}
}

func quoteOptions(in *input) swap.QuoteOptions {
	var q swap.QuoteOptions
	if in.p.Has("fee") {
		q.Fee = decimal.NewNullDecimal(in.decimal("fee", decimal.Zero))
	}
	q.Protocols = strings.Join(in.p.List("protocols"), ",")
	q.GasPrice = in.str("gasPrice")
	q.ComplexityLevel = in.optInt("complexityLevel")
	q.ConnectorTokens = strings.Join(in.p.List("connectorTokens"), ",")
	q.GasLimit = in.optUint("gasLimit")
	q.IncludeTokensInfo = in.optBool("includeTokensInfo")
	q.IncludeProtocols = in.optBool("includeProtocols")
	q.IncludeGas = in.optBool("includeGas")
	return q
}

func (e *Executor) swapQuote(ctx context.Context, net network.Network, p domain.Params) (any, error) {
	opts := read(p.Object("additionalOptions"))
	req := swap.QuoteRequest{
		ChainID:      net.ChainID,
		Src:          p.String("srcToken"),
		Dst:          p.String("dstToken"),
		Amount:       p.String("amount"),
		QuoteOptions: quoteOptions(opts),
	}
	if opts.err != nil {
		return nil, opts.err
	}
	return e.services.Swap.Quote(ctx, net, req)
}

func (e *Executor) swapCalldata(ctx context.Context, net network.Network, p domain.Params) (any, error) {
	in := read(p)
	opts := read(p.Object("additionalOptions"))
	req := swap.SwapRequest{
		ChainID:         net.ChainID,
		Src:             in.str("srcToken"),
		Dst:             in.str("dstToken"),
		Amount:          in.str("amount"),
		From:            in.str("fromAddress"),
		Slippage:        in.decimal("slippage", decimal.NewFromInt(1)),
		Receiver:        opts.str("receiver"),
		Referrer:        opts.str("referrer"),
		Permit:          opts.str("permit"),
		DisableEstimate: opts.bool("disableEstimate", false),
		AllowPartial:    opts.bool("allowPartialFill", false),
		QuoteOptions:    quoteOptions(opts),
	}
	if in.err != nil {
		return nil, in.err
	}
	if opts.err != nil {
		return nil, opts.err
	}
	return e.services.Swap.Swap(ctx, net, req)
}

func (e *Executor) supportedTokens(ctx context.Context, net network.Network, _ domain.Params) (any, error) {
	return e.services.Swap.SupportedTokens(ctx, net)
}

func (e *Executor) apiLiquiditySources(ctx context.Context, net network.Network, _ domain.Params) (any, error) {
	return e.services.Swap.LiquiditySources(ctx, net)
}

func (e *Executor) checkAllowance(ctx context.Context, net network.Network, p domain.Params) (any, error) {
	return e.services.Swap.CheckAllowance(ctx, net, p.String("tokenAddress"), p.String("walletAddress"), p.String("requiredAmount"))
}

func (e *Executor) approvalCalldata(ctx context.Context, net network.Network, p domain.Params) (any, error) {
	return e.services.Swap.ApprovalCalldata(ctx, net, p.String("tokenAddress"), p.String("amount"))
}

func (e *Executor) spender(ctx context.Context, net network.Network, _ domain.Params) (any, error) {
	return e.services.Swap.Spender(ctx, net)
}

func (e *Executor) analyzeRoute(_ context.Context, net network.Network, p domain.Params) (any, error) {
	protocols, err := p.Raw("protocols")
	if err != nil {
		return nil, err
	}
	return e.services.Swap.AnalyzeRoute(net, protocols, p.String("srcToken"), p.String("dstToken"))
}

func (e *Executor) buildApproval(_ context.Context, net network.Network, p domain.Params) (any, error) {
	strategy, err := swap.ParseStrategy(p.String("strategy"))
	if err != nil {
		return nil, err
	}
	return e.services.Swap.BuildApproval(net, p.String("tokenAddress"), p.String("spender"), p.String("requiredAmount"), strategy)
}

func (e *Executor) buildRevoke(_ context.Context, net network.Network, p domain.Params) (any, error) {
	return e.services.Swap.BuildRevoke(net, p.String("tokenAddress"), p.String("spender"))
}

func (e *Executor) onChainAllowance(ctx context.Context, net network.Network, p domain.Params) (any, error) {
	return e.services.Swap.OnChainAllowance(ctx, net, p.String("tokenAddress"), p.String("ownerAddress"), p.String("spender"), p.String("requiredAmount"))
}
