// Package apiconnect wires the friendledger.v1.LedgerService messages to
// Connect handlers and clients, using api.JSONCodec on both ends.
package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/friendledger/pkg/api"
)

// LedgerServiceName is the fully-qualified name of the LedgerService service.
const LedgerServiceName = "friendledger.v1.LedgerService"

// Procedure paths, relative to the server base URL.
const (
	LedgerServiceAddFriendProcedure      = "/friendledger.v1.LedgerService/AddFriend"
	LedgerServiceRemoveFriendProcedure   = "/friendledger.v1.LedgerService/RemoveFriend"
	LedgerServiceListFriendsProcedure    = "/friendledger.v1.LedgerService/ListFriends"
	LedgerServiceAddExpenseProcedure     = "/friendledger.v1.LedgerService/AddExpense"
	LedgerServiceDeleteExpenseProcedure  = "/friendledger.v1.LedgerService/DeleteExpense"
	LedgerServiceListExpensesProcedure   = "/friendledger.v1.LedgerService/ListExpenses"
	LedgerServiceGetBalancesProcedure    = "/friendledger.v1.LedgerService/GetBalances"
	LedgerServiceListCategoriesProcedure = "/friendledger.v1.LedgerService/ListCategories"
)

// LedgerServiceHandler is implemented by the server side of the service.
type LedgerServiceHandler interface {
	AddFriend(context.Context, *connect.Request[api.AddFriendRequest]) (*connect.Response[api.AddFriendResponse], error)
	RemoveFriend(context.Context, *connect.Request[api.RemoveFriendRequest]) (*connect.Response[api.RemoveFriendResponse], error)
	ListFriends(context.Context, *connect.Request[api.ListFriendsRequest]) (*connect.Response[api.ListFriendsResponse], error)
	AddExpense(context.Context, *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.AddExpenseResponse], error)
	DeleteExpense(context.Context, *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error)
	ListExpenses(context.Context, *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error)
	GetBalances(context.Context, *connect.Request[api.GetBalancesRequest]) (*connect.Response[api.GetBalancesResponse], error)
	ListCategories(context.Context, *connect.Request[api.ListCategoriesRequest]) (*connect.Response[api.ListCategoriesResponse], error)
}

// NewLedgerServiceHandler builds an HTTP handler from the service
// implementation. It returns the path on which to mount the handler and the
// handler itself.
func NewLedgerServiceHandler(svc LedgerServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(api.JSONCodec{})}, opts...)

	routes := map[string]http.Handler{
		LedgerServiceAddFriendProcedure:      connect.NewUnaryHandler(LedgerServiceAddFriendProcedure, svc.AddFriend, opts...),
		LedgerServiceRemoveFriendProcedure:   connect.NewUnaryHandler(LedgerServiceRemoveFriendProcedure, svc.RemoveFriend, opts...),
		LedgerServiceListFriendsProcedure:    connect.NewUnaryHandler(LedgerServiceListFriendsProcedure, svc.ListFriends, opts...),
		LedgerServiceAddExpenseProcedure:     connect.NewUnaryHandler(LedgerServiceAddExpenseProcedure, svc.AddExpense, opts...),
		LedgerServiceDeleteExpenseProcedure:  connect.NewUnaryHandler(LedgerServiceDeleteExpenseProcedure, svc.DeleteExpense, opts...),
		LedgerServiceListExpensesProcedure:   connect.NewUnaryHandler(LedgerServiceListExpensesProcedure, svc.ListExpenses, opts...),
		LedgerServiceGetBalancesProcedure:    connect.NewUnaryHandler(LedgerServiceGetBalancesProcedure, svc.GetBalances, opts...),
		LedgerServiceListCategoriesProcedure: connect.NewUnaryHandler(LedgerServiceListCategoriesProcedure, svc.ListCategories, opts...),
	}

	return "/" + LedgerServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h, ok := routes[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		h.ServeHTTP(w, r)
	})
}

// LedgerServiceClient is a client for the friendledger.v1.LedgerService service.
type LedgerServiceClient interface {
	AddFriend(context.Context, *connect.Request[api.AddFriendRequest]) (*connect.Response[api.AddFriendResponse], error)
	RemoveFriend(context.Context, *connect.Request[api.RemoveFriendRequest]) (*connect.Response[api.RemoveFriendResponse], error)
	ListFriends(context.Context, *connect.Request[api.ListFriendsRequest]) (*connect.Response[api.ListFriendsResponse], error)
	AddExpense(context.Context, *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.AddExpenseResponse], error)
	DeleteExpense(context.Context, *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error)
	ListExpenses(context.Context, *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error)
	GetBalances(context.Context, *connect.Request[api.GetBalancesRequest]) (*connect.Response[api.GetBalancesResponse], error)
	ListCategories(context.Context, *connect.Request[api.ListCategoriesRequest]) (*connect.Response[api.ListCategoriesResponse], error)
}

// NewLedgerServiceClient constructs a client for the service at baseURL
// (for example, http://localhost:8080).
func NewLedgerServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) LedgerServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(api.JSONCodec{})}, opts...)

	return &ledgerServiceClient{
		addFriend:      connect.NewClient[api.AddFriendRequest, api.AddFriendResponse](httpClient, baseURL+LedgerServiceAddFriendProcedure, opts...),
		removeFriend:   connect.NewClient[api.RemoveFriendRequest, api.RemoveFriendResponse](httpClient, baseURL+LedgerServiceRemoveFriendProcedure, opts...),
		listFriends:    connect.NewClient[api.ListFriendsRequest, api.ListFriendsResponse](httpClient, baseURL+LedgerServiceListFriendsProcedure, opts...),
		addExpense:     connect.NewClient[api.AddExpenseRequest, api.AddExpenseResponse](httpClient, baseURL+LedgerServiceAddExpenseProcedure, opts...),
		deleteExpense:  connect.NewClient[api.DeleteExpenseRequest, api.DeleteExpenseResponse](httpClient, baseURL+LedgerServiceDeleteExpenseProcedure, opts...),
		listExpenses:   connect.NewClient[api.ListExpensesRequest, api.ListExpensesResponse](httpClient, baseURL+LedgerServiceListExpensesProcedure, opts...),
		getBalances:    connect.NewClient[api.GetBalancesRequest, api.GetBalancesResponse](httpClient, baseURL+LedgerServiceGetBalancesProcedure, opts...),
		listCategories: connect.NewClient[api.ListCategoriesRequest, api.ListCategoriesResponse](httpClient, baseURL+LedgerServiceListCategoriesProcedure, opts...),
	}
}

type ledgerServiceClient struct {
	addFriend      *connect.Client[api.AddFriendRequest, api.AddFriendResponse]
	removeFriend   *connect.Client[api.RemoveFriendRequest, api.RemoveFriendResponse]
	listFriends    *connect.Client[api.ListFriendsRequest, api.ListFriendsResponse]
	addExpense     *connect.Client[api.AddExpenseRequest, api.AddExpenseResponse]
	deleteExpense  *connect.Client[api.DeleteExpenseRequest, api.DeleteExpenseResponse]
	listExpenses   *connect.Client[api.ListExpensesRequest, api.ListExpensesResponse]
	getBalances    *connect.Client[api.GetBalancesRequest, api.GetBalancesResponse]
	listCategories *connect.Client[api.ListCategoriesRequest, api.ListCategoriesResponse]
}

func (c *ledgerServiceClient) AddFriend(ctx context.Context, req *connect.Request[api.AddFriendRequest]) (*connect.Response[api.AddFriendResponse], error) {
	return c.addFriend.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) RemoveFriend(ctx context.Context, req *connect.Request[api.RemoveFriendRequest]) (*connect.Response[api.RemoveFriendResponse], error) {
	return c.removeFriend.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) ListFriends(ctx context.Context, req *connect.Request[api.ListFriendsRequest]) (*connect.Response[api.ListFriendsResponse], error) {
	return c.listFriends.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) AddExpense(ctx context.Context, req *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.AddExpenseResponse], error) {
	return c.addExpense.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) DeleteExpense(ctx context.Context, req *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error) {
	return c.deleteExpense.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) ListExpenses(ctx context.Context, req *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error) {
	return c.listExpenses.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) GetBalances(ctx context.Context, req *connect.Request[api.GetBalancesRequest]) (*connect.Response[api.GetBalancesResponse], error) {
	return c.getBalances.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) ListCategories(ctx context.Context, req *connect.Request[api.ListCategoriesRequest]) (*connect.Response[api.ListCategoriesResponse], error) {
	return c.listCategories.CallUnary(ctx, req)
}
