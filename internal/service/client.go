package service

import (
	"context"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/splitledger/pkg/api"
)

// Client calls the ledger and auth services of a server.
// Token, when set, is sent as a bearer token on every call.
type Client struct {
	Token string

	createBill *connect.Client[api.CreateBillRequest, api.CreateBillResponse]
	payBill    *connect.Client[api.PayBillRequest, api.PayBillResponse]
	getBill    *connect.Client[api.GetBillRequest, api.GetBillResponse]
	listBills  *connect.Client[api.ListBillsRequest, api.ListBillsResponse]
	balances   *connect.Client[api.GetBalancesRequest, api.GetBalancesResponse]
	register   *connect.Client[api.RegisterRequest, api.Session]
	login      *connect.Client[api.LoginRequest, api.Session]
}

// NewClient creates a client for the server at baseURL using the JSON codec.
// Pass connect.WithCodec(CBORCodec{}) to switch to CBOR.
func NewClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *Client {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(JSONCodec{})}, opts...)
	return &Client{
		createBill: connect.NewClient[api.CreateBillRequest, api.CreateBillResponse](httpClient, baseURL+api.LedgerCreateBillProcedure, opts...),
		payBill:    connect.NewClient[api.PayBillRequest, api.PayBillResponse](httpClient, baseURL+api.LedgerPayBillProcedure, opts...),
		getBill:    connect.NewClient[api.GetBillRequest, api.GetBillResponse](httpClient, baseURL+api.LedgerGetBillProcedure, opts...),
		listBills:  connect.NewClient[api.ListBillsRequest, api.ListBillsResponse](httpClient, baseURL+api.LedgerListBillsProcedure, opts...),
		balances:   connect.NewClient[api.GetBalancesRequest, api.GetBalancesResponse](httpClient, baseURL+api.LedgerGetBalancesProcedure, opts...),
		register:   connect.NewClient[api.RegisterRequest, api.Session](httpClient, baseURL+api.AuthRegisterProcedure, opts...),
		login:      connect.NewClient[api.LoginRequest, api.Session](httpClient, baseURL+api.AuthLoginProcedure, opts...),
	}
}

func call[Req, Res any](ctx context.Context, c *connect.Client[Req, Res], token string, msg *Req) (*Res, error) {
	req := connect.NewRequest(msg)
	if token != "" {
		req.Header().Set("Authorization", "Bearer "+token)
	}
	resp, err := c.CallUnary(ctx, req)
	if err != nil {
		return nil, err
	}
	return resp.Msg, nil
}

func (c *Client) CreateBill(ctx context.Context, req *api.CreateBillRequest) (*api.CreateBillResponse, error) {
	return call(ctx, c.createBill, c.Token, req)
}

func (c *Client) PayBill(ctx context.Context, req *api.PayBillRequest) (*api.PayBillResponse, error) {
	return call(ctx, c.payBill, c.Token, req)
}

func (c *Client) GetBill(ctx context.Context, req *api.GetBillRequest) (*api.GetBillResponse, error) {
	return call(ctx, c.getBill, c.Token, req)
}

func (c *Client) ListBills(ctx context.Context, req *api.ListBillsRequest) (*api.ListBillsResponse, error) {
	return call(ctx, c.listBills, c.Token, req)
}

func (c *Client) GetBalances(ctx context.Context, req *api.GetBalancesRequest) (*api.GetBalancesResponse, error) {
	return call(ctx, c.balances, c.Token, req)
}

func (c *Client) Register(ctx context.Context, req *api.RegisterRequest) (*api.Session, error) {
	return call(ctx, c.register, c.Token, req)
}

func (c *Client) Login(ctx context.Context, req *api.LoginRequest) (*api.Session, error) {
	return call(ctx, c.login, c.Token, req)
}
