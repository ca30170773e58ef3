// Package domain describes the 1inch workflow nodes: their resources,
// operations and parameters, the credential types they accept and the
// trigger events they poll for.
package domain

import (
	"fmt"
	"strings"

	"github.com/fd1az/oneinch-nodes/internal/apperror"
	"github.com/fd1az/oneinch-nodes/internal/network"
)

// ParamType is the input kind of a parameter.
type ParamType string

const (
	TypeString     ParamType = "string"
	TypeAddress    ParamType = "address"
	TypeAmount     ParamType = "amount"
	TypeNumber     ParamType = "number"
	TypeBoolean    ParamType = "boolean"
	TypeOptions    ParamType = "options"
	TypeJSON       ParamType = "json"
	TypeCollection ParamType = "collection"
)

// Param is one operation parameter.
type Param struct {
	Name        string    `json:"name"`
	Type        ParamType `json:"type"`
	Required    bool      `json:"required,omitempty"`
	Default     any       `json:"default,omitempty"`
	Options     []string  `json:"options,omitempty"`
	Description string    `json:"description,omitempty"`
	// Fields are the members of a collection parameter.
	Fields []Param `json:"fields,omitempty"`
}

// Operation is one action of a resource.
type Operation struct {
	Name        string  `json:"name"`
	DisplayName string  `json:"displayName"`
	Params      []Param `json:"params,omitempty"`
}

// Resource groups the operations of one API family.
type Resource struct {
	Name        string      `json:"name"`
	DisplayName string      `json:"displayName"`
	Operations  []Operation `json:"operations"`
}

// CredentialRef names a credential type a node accepts.
type CredentialRef struct {
	Name     string `json:"name"`
	Required bool   `json:"required"`
	// Resources limits the credential to some resources; empty means all.
	Resources []string `json:"resources,omitempty"`
}

// Node is the description of a node type.
type Node struct {
	Name        string          `json:"name"`
	DisplayName string          `json:"displayName"`
	Description string          `json:"description"`
	Group       string          `json:"group"`
	Version     int             `json:"version"`
	Credentials []CredentialRef `json:"credentials"`
	Networks    []string        `json:"networks"`
	Resources   []Resource      `json:"resources,omitempty"`
	Params      []Param         `json:"params,omitempty"`
}

// Resource returns the named resource.
func (n Node) Resource(name string) (Resource, error) {
	for _, r := range n.Resources {
		if r.Name == name {
			return r, nil
		}
	}
	return Resource{}, apperror.New(apperror.CodeUnsupportedOperation,
		apperror.WithMessage(fmt.Sprintf("Resource %q is not supported", name)))
}

// Operation returns the named operation of a resource.
func (n Node) Operation(resource, operation string) (Operation, error) {
	r, err := n.Resource(resource)
	if err != nil {
		return Operation{}, err
	}
	for _, op := range r.Operations {
		if op.Name == operation {
			return op, nil
		}
	}
	return Operation{}, apperror.New(apperror.CodeUnsupportedOperation,
		apperror.WithMessage(fmt.Sprintf("Operation %q is not supported for resource %q", operation, resource)))
}

// Bind checks the required parameters and option values of p and returns
// a copy with defaults filled in.
func (o Operation) Bind(p Params) (Params, error) {
	out := make(Params, len(p)+len(o.Params))
	for k, v := range p {
		out[k] = v
	}

	var missing []string
	for _, param := range o.Params {
		if !out.Has(param.Name) {
			if param.Required {
				missing = append(missing, param.Name)
				continue
			}
			if param.Default != nil {
				out[param.Name] = param.Default
			}
			continue
		}
		if param.Type == TypeOptions && !contains(param.Options, out.String(param.Name)) {
			return nil, apperror.Validation(apperror.CodeInvalidInput, fmt.Sprintf(
				"%s must be one of %s, got %q", param.Name, strings.Join(param.Options, ", "), out.String(param.Name)))
		}
	}
	if len(missing) > 0 {
		return nil, apperror.Validation(apperror.CodeMissingParameter, strings.Join(missing, ", "))
	}
	return out, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}

func req(name string, t ParamType, desc string) Param {
	return Param{Name: name, Type: t, Required: true, Description: desc}
}

func opt(name string, t ParamType, def any, desc string) Param {
	return Param{Name: name, Type: t, Default: def, Description: desc}
}

func options(name string, def string, values ...string) Param {
	return Param{Name: name, Type: TypeOptions, Default: def, Options: values}
}

func op(name, display string, params ...Param) Operation {
	return Operation{Name: name, DisplayName: display, Params: params}
}

// Networks lists the selectable network names of the nodes, custom last.
func Networks() []string {
	return append(network.Names(), network.CustomName)
}

var (
	quoteOptions = Param{Name: "additionalOptions", Type: TypeCollection, Fields: []Param{
		opt("fee", TypeNumber, nil, "Partner fee percentage, 0 to 3"),
		opt("protocols", TypeString, nil, "Comma separated liquidity sources to route through"),
		opt("gasPrice", TypeAmount, nil, "Gas price in wei"),
		opt("complexityLevel", TypeNumber, nil, "Route complexity, 0 to 3"),
		opt("connectorTokens", TypeString, nil, "Comma separated connector token addresses"),
		opt("gasLimit", TypeNumber, nil, "Gas limit of the route"),
		opt("includeTokensInfo", TypeBoolean, nil, "Return token metadata"),
		opt("includeProtocols", TypeBoolean, nil, "Return the routing protocols"),
		opt("includeGas", TypeBoolean, nil, "Return the gas estimate"),
	}}

	swapOptions = Param{Name: "additionalOptions", Type: TypeCollection, Fields: append([]Param{
		opt("receiver", TypeAddress, nil, "Recipient of the destination token"),
		opt("referrer", TypeAddress, nil, "Referrer address for the partner fee"),
		opt("permit", TypeString, nil, "EIP-2612 permit calldata"),
		opt("disableEstimate", TypeBoolean, nil, "Skip the on-chain simulation"),
		opt("allowPartialFill", TypeBoolean, nil, "Allow the swap to fill partially"),
	}, quoteOptions.Fields...)}

	fusionQuoteParams = []Param{
		req("fromTokenAddress", TypeAddress, "Token to swap from, must be ERC20 not native"),
		req("toTokenAddress", TypeAddress, "Token to receive"),
		req("amount", TypeAmount, "Amount of the source token in its smallest unit"),
		req("walletAddress", TypeAddress, "Wallet that signs the order"),
		opt("enableEstimate", TypeBoolean, false, "Ask the quoter to simulate"),
		opt("fee", TypeNumber, nil, "Integrator fee in basis points"),
		opt("isPermit2", TypeBoolean, false, "Source token is approved through Permit2"),
	}

	pageParams = []Param{
		opt("page", TypeNumber, nil, "Page number"),
		opt("limit", TypeNumber, nil, "Items per page"),
	}

	walletsParams = []Param{
		req("addresses", TypeString, "Comma separated wallet addresses"),
		opt("allChains", TypeBoolean, false, "Aggregate over every indexed chain instead of the selected network"),
	}
)

// OneInch describes the action node.
func OneInch() Node {
	return Node{
		Name:        "oneInch",
		DisplayName: "1inch",
		Description: "Interact with 1inch Network DEX aggregator, Fusion, and limit orders",
		Group:       "transform",
		Version:     1,
		Credentials: []CredentialRef{
			{Name: CredentialNetwork},
			{Name: CredentialAPI},
			{Name: CredentialFusion, Resources: []string{"fusion", "crossChain"}},
		},
		Networks: Networks(),
		Resources: []Resource{
			{Name: "swap", DisplayName: "Swap", Operations: []Operation{
				op("getQuote", "Get Quote",
					req("srcToken", TypeAddress, "Token to swap from"),
					req("dstToken", TypeAddress, "Token to swap to"),
					req("amount", TypeAmount, "Amount in the source token's smallest unit"),
					quoteOptions),
				op("getSwapCalldata", "Get Swap Calldata",
					req("srcToken", TypeAddress, "Token to swap from"),
					req("dstToken", TypeAddress, "Token to swap to"),
					req("amount", TypeAmount, "Amount in the source token's smallest unit"),
					req("fromAddress", TypeAddress, "Wallet that sends the swap"),
					opt("slippage", TypeNumber, 1, "Maximum slippage percentage, 0 to 50"),
					swapOptions),
				op("getSupportedTokens", "Get Supported Tokens"),
				op("getLiquiditySources", "Get Liquidity Sources"),
				op("checkAllowance", "Check Allowance",
					req("tokenAddress", TypeAddress, "ERC20 token"),
					req("walletAddress", TypeAddress, "Token owner"),
					opt("requiredAmount", TypeAmount, nil, "Amount the swap needs")),
				op("getApprovalCalldata", "Get Approval Calldata",
					req("tokenAddress", TypeAddress, "ERC20 token"),
					opt("amount", TypeAmount, nil, "Amount to approve, empty for unlimited")),
				op("getSpender", "Get Spender"),
				op("analyzeRoute", "Analyze Route",
					req("protocols", TypeJSON, "Protocols field of a quote or swap response"),
					req("srcToken", TypeAddress, "Token the route starts from"),
					req("dstToken", TypeAddress, "Token the route ends in")),
			}},
			{Name: "approve", DisplayName: "Approve", Operations: []Operation{
				op("buildApproval", "Build Approval",
					req("tokenAddress", TypeAddress, "ERC20 token"),
					req("requiredAmount", TypeAmount, "Amount the swap needs"),
					opt("spender", TypeAddress, nil, "Spender, the aggregation router when empty"),
					options("strategy", "exact", "exact", "double", "infinite")),
				op("buildRevoke", "Build Revoke",
					req("tokenAddress", TypeAddress, "ERC20 token"),
					opt("spender", TypeAddress, nil, "Spender, the aggregation router when empty")),
				op("checkOnChainAllowance", "Check On-Chain Allowance",
					req("tokenAddress", TypeAddress, "ERC20 token"),
					req("ownerAddress", TypeAddress, "Token owner"),
					opt("spender", TypeAddress, nil, "Spender, the aggregation router when empty"),
					opt("requiredAmount", TypeAmount, nil, "Amount the swap needs")),
			}},
			{Name: "fusion", DisplayName: "Fusion (Gasless)", Operations: []Operation{
				op("getQuote", "Get Quote", fusionQuoteParams...),
				op("getAllQuotes", "Get All Quotes", fusionQuoteParams...),
				op("getReadyToAccept", "Get Ready To Accept", fusionQuoteParams...),
				op("getOrderStatus", "Get Order Status", req("orderHash", TypeString, "Order hash")),
				op("getActiveOrders", "Get Active Orders", pageParams...),
				op("getOrdersByMaker", "Get Orders By Maker",
					append([]Param{req("makerAddress", TypeAddress, "Order maker")}, pageParams...)...),
				op("getResolvers", "Get Resolvers"),
				op("submitOrder", "Submit Order",
					req("order", TypeJSON, "Limit order protocol v4 order"),
					req("quoteId", TypeString, "Quote the order was built from"),
					opt("signature", TypeString, nil, "EIP-712 signature, signed with the Fusion key when empty")),
			}},
			{Name: "crossChain", DisplayName: "Cross-Chain (Fusion+)", Operations: []Operation{
				op("getQuote", "Get Quote",
					req("dstNetwork", TypeString, "Destination network name or chain id"),
					req("srcTokenAddress", TypeAddress, "Token on the source chain"),
					req("dstTokenAddress", TypeAddress, "Token on the destination chain"),
					req("amount", TypeAmount, "Amount of the source token in its smallest unit"),
					req("walletAddress", TypeAddress, "Wallet that signs the order")),
				op("submitOrder", "Submit Order",
					req("dstNetwork", TypeString, "Destination network name or chain id"),
					req("order", TypeJSON, "Source chain order"),
					req("quoteId", TypeString, "Quote the order was built from"),
					opt("signature", TypeString, nil, "EIP-712 signature, signed with the Fusion key when empty")),
				op("getOrderStatus", "Get Order Status", req("orderHash", TypeString, "Order hash")),
			}},
			{Name: "limitOrder", DisplayName: "Limit Order", Operations: []Operation{
				op("buildOrder", "Build Order",
					req("makerAsset", TypeAddress, "Token the maker sells"),
					req("takerAsset", TypeAddress, "Token the maker buys"),
					req("maker", TypeAddress, "Maker wallet"),
					req("makingAmount", TypeAmount, "Amount of the maker asset"),
					req("takingAmount", TypeAmount, "Amount of the taker asset"),
					opt("receiver", TypeAddress, nil, "Receiver, the maker when empty"),
					opt("expiry", TypeNumber, 0, "Unix expiry, 0 for none")),
				op("createOrder", "Create Order",
					req("order", TypeJSON, "Built order"),
					opt("signature", TypeString, nil, "EIP-712 signature, signed with the network key when empty")),
				op("getAllOrders", "Get All Orders", append(pageParams,
					options("sortBy", "", "", "createDateTime", "takerRate", "makerRate", "makerAmount", "takerAmount"),
					opt("makerAsset", TypeAddress, nil, "Filter by maker asset"),
					opt("takerAsset", TypeAddress, nil, "Filter by taker asset"),
					opt("statuses", TypeString, nil, "Comma separated status codes"))...),
				op("getOrderCount", "Get Order Count", opt("statuses", TypeString, nil, "Comma separated status codes")),
				op("getOrdersByAddress", "Get Orders By Address", append([]Param{req("address", TypeAddress, "Maker wallet")},
					append(pageParams, opt("statuses", TypeString, nil, "Comma separated status codes"))...)...),
				op("getOrderEvents", "Get Order Events", opt("limit", TypeNumber, nil, "Number of events")),
				op("getOrderEventsByHash", "Get Order Events By Hash", req("orderHash", TypeString, "Order hash")),
				op("hasActiveOrdersWithPermit", "Has Active Orders With Permit",
					req("walletAddress", TypeAddress, "Maker wallet"),
					req("tokenAddress", TypeAddress, "Token spent through a permit")),
			}},
			{Name: "token", DisplayName: "Token", Operations: []Operation{
				op("getTokenInfo", "Get Token Info", req("tokenAddress", TypeAddress, "Token")),
				op("searchTokens", "Search Tokens",
					req("query", TypeString, "Symbol, name or address"),
					opt("limit", TypeNumber, 10, "Maximum results")),
				op("getTokenList", "Get Token List"),
				op("getCustomTokens", "Get Custom Tokens", req("addresses", TypeString, "Comma separated token addresses")),
			}},
			{Name: "price", DisplayName: "Price", Operations: []Operation{
				op("getSpotPrice", "Get Spot Price",
					req("tokenAddress", TypeAddress, "Token"),
					opt("currency", TypeString, "USD", "Quote currency")),
				op("getMultiplePrices", "Get Multiple Prices",
					req("tokenAddresses", TypeString, "Comma separated token addresses"),
					opt("currency", TypeString, "USD", "Quote currency")),
			}},
			{Name: "gas", DisplayName: "Gas", Operations: []Operation{
				op("getGasPrice", "Get Gas Price",
					opt("nativePriceUsd", TypeNumber, nil, "Native coin price, adds a transfer cost estimate")),
			}},
			{Name: "balance", DisplayName: "Balance", Operations: []Operation{
				op("getTokenBalance", "Get Token Balance",
					req("walletAddress", TypeAddress, "Wallet"),
					req("tokenAddress", TypeAddress, "Token")),
				op("getAllBalances", "Get All Balances",
					req("walletAddress", TypeAddress, "Wallet"),
					opt("includeZero", TypeBoolean, false, "Keep zero balances")),
			}},
			{Name: "portfolio", DisplayName: "Portfolio", Operations: []Operation{
				op("getProfitAndLoss", "Get Profit And Loss", walletsParams...),
				op("getDetails", "Get Details", walletsParams...),
				op("getCurrentValue", "Get Current Value", walletsParams...),
				op("getSupportedChains", "Get Supported Chains"),
				op("getMetrics", "Get Metrics", walletsParams...),
			}},
			{Name: "liquiditySources", DisplayName: "Liquidity Sources", Operations: []Operation{
				op("list", "List"),
			}},
			{Name: "healthCheck", DisplayName: "Health Check", Operations: []Operation{
				op("check", "Check"),
			}},
		},
	}
}
