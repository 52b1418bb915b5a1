package main

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"connectrpc.com/connect"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/friendledger/internal/metrics"
	"github.com/mmynk/friendledger/internal/service"
	"github.com/mmynk/friendledger/internal/storage/sqlite"
	"github.com/mmynk/friendledger/pkg/api"
	"github.com/mmynk/friendledger/pkg/api/apiconnect"
)

// execute runs the CLI against db and returns its stdout.
func execute(t *testing.T, db string, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(append([]string{"--db", db, "--log-level", "error"}, args...))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRootCmd_Subcommands(t *testing.T) {
	root := newRootCmd()

	names := make(map[string]*cobra.Command)
	for _, c := range root.Commands() {
		names[c.Name()] = c
	}
	for _, want := range []string{"serve", "friends", "expenses", "balances", "categories"} {
		assert.Contains(t, names, want)
	}

	addr := names["serve"].Flag("addr")
	require.NotNil(t, addr, "serve should have an --addr flag")

	add, _, err := root.Find([]string{"expenses", "add"})
	require.NoError(t, err)
	assert.Equal(t, "other", add.Flag("category").DefValue)
}

func TestCLI_Workflow(t *testing.T) {
	db := filepath.Join(t.TempDir(), "cli.db")

	_, err := execute(t, db, "friends", "add", "Alice", "Bob", "Charlie")
	require.NoError(t, err)

	out, err := execute(t, db, "friends", "list")
	require.NoError(t, err)
	assert.Less(t, strings.Index(out, "Alice"), strings.Index(out, "Bob"))
	assert.Less(t, strings.Index(out, "Bob"), strings.Index(out, "Charlie"))

	out, err = execute(t, db, "expenses", "add", "Dinner", "30",
		"--paid-by", "alice", "--with", "Alice,Bob,Charlie", "--category", "food")
	require.NoError(t, err)
	assert.Contains(t, out, "Added Dinner ($30.00)")

	out, err = execute(t, db, "balances")
	require.NoError(t, err)
	assert.Contains(t, out, "Bob owes Alice $10.00")
	assert.Contains(t, out, "Charlie owes Alice $10.00")

	_, err = execute(t, db, "friends", "remove", "Bob")
	require.Error(t, err)
	assert.Equal(t, connect.CodeFailedPrecondition, connect.CodeOf(err))

	out, err = execute(t, db, "expenses", "list", "--category", "rent")
	require.NoError(t, err)
	assert.Contains(t, out, "No expenses found.")
}

func TestCLI_CustomShares(t *testing.T) {
	db := filepath.Join(t.TempDir(), "cli.db")

	_, err := execute(t, db, "friends", "add", "Alice", "Bob")
	require.NoError(t, err)

	_, err = execute(t, db, "expenses", "add", "Groceries", "50",
		"--paid-by", "Alice", "--share", "Alice=20", "--share", "Bob=30")
	require.NoError(t, err)

	out, err := execute(t, db, "balances")
	require.NoError(t, err)
	assert.Contains(t, out, "Bob owes Alice $30.00")

	_, err = execute(t, db, "expenses", "add", "Oops", "10",
		"--paid-by", "Alice", "--share", "Alice=5", "--with", "Bob")
	assert.Error(t, err)

	_, err = execute(t, db, "expenses", "add", "Oops", "10", "--paid-by", "Zed", "--with", "Bob")
	assert.ErrorContains(t, err, "no friend named")
}

func TestCLI_DeleteUnknownExpense(t *testing.T) {
	db := filepath.Join(t.TempDir(), "cli.db")

	_, err := execute(t, db, "expenses", "delete", "missing")
	require.Error(t, err)
	assert.Equal(t, connect.CodeNotFound, connect.CodeOf(err))
}

func TestCLI_Categories(t *testing.T) {
	out, err := execute(t, filepath.Join(t.TempDir(), "cli.db"), "categories")
	require.NoError(t, err)
	for _, id := range []string{"food", "rent", "transport", "entertainment", "shopping", "utilities", "travel", "other"} {
		assert.Contains(t, out, id)
	}
}

func TestResolveFriend(t *testing.T) {
	friends := []api.Friend{
		{Id: "1", Name: "Alice"},
		{Id: "2", Name: "Sam"},
		{Id: "3", Name: "sam"},
	}

	f, err := resolveFriend(friends, "ALICE")
	require.NoError(t, err)
	assert.Equal(t, "1", f.Id)

	f, err = resolveFriend(friends, "3")
	require.NoError(t, err)
	assert.Equal(t, "sam", f.Name)

	_, err = resolveFriend(friends, "Sam")
	assert.ErrorContains(t, err, "use the ID")

	_, err = resolveFriend(friends, "Zed")
	assert.Error(t, err)
}

func TestMoney(t *testing.T) {
	assert.Equal(t, "$10.00", money("10"))
	assert.Equal(t, "-$3.50", money("-3.5"))
	assert.Equal(t, "n/a", money("n/a"))
}

func TestNewHandler(t *testing.T) {
	store, err := sqlite.New(filepath.Join(t.TempDir(), "serve.db"))
	require.NoError(t, err)
	defer store.Close()

	m := metrics.New()
	svc, err := service.NewLedgerService(context.Background(), store, service.WithBalanceGauge(m))
	require.NoError(t, err)

	server := httptest.NewServer(newHandler(svc, m))
	defer server.Close()

	client := apiconnect.NewLedgerServiceClient(http.DefaultClient, server.URL)
	_, err = client.AddFriend(context.Background(), connect.NewRequest(&api.AddFriendRequest{Name: "Alice"}))
	require.NoError(t, err)

	resp, err := http.Get(server.URL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))

	resp, err = http.Get(server.URL + "/metrics")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Contains(t, string(body), `friendledger_rpc_requests_total{code="ok",procedure="/friendledger.v1.LedgerService/AddFriend"} 1`)
	assert.Contains(t, string(body), "friendledger_open_balances 0")
}
