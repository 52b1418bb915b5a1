package main

import (
	"context"
	"fmt"
	"strings"

	"connectrpc.com/connect"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/mmynk/friendledger/internal/ledger"
	"github.com/mmynk/friendledger/internal/metrics"
	"github.com/mmynk/friendledger/internal/service"
	"github.com/mmynk/friendledger/internal/storage/sqlite"
	"github.com/mmynk/friendledger/pkg/api"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	owedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	owesStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

// openLedger opens the configured database and hosts a ledger on it.
// m may be nil for one-shot commands.
func openLedger(ctx context.Context, m *metrics.Metrics) (*service.LedgerService, func() error, error) {
	store, err := sqlite.New(cfg.Database.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	notifier := ledger.Notifiers{service.LogNotifier{}}
	opts := []service.Option{service.WithSeedFriends(cfg.Ledger.SeedFriends)}
	if m != nil {
		notifier = append(notifier, m)
		opts = append(opts, service.WithBalanceGauge(m))
	}
	opts = append(opts,
		service.WithNotifier(notifier),
		service.WithLedgerOptions(ledger.WithStrictSplits(cfg.Ledger.StrictSplits)),
	)

	svc, err := service.NewLedgerService(ctx, store, opts...)
	if err != nil {
		store.Close()
		return nil, nil, err
	}
	return svc, store.Close, nil
}

// resolveFriend finds a friend by ID or, case-insensitively, by name.
func resolveFriend(friends []api.Friend, ref string) (api.Friend, error) {
	var matches []api.Friend
	for _, f := range friends {
		if f.Id == ref {
			return f, nil
		}
		if strings.EqualFold(f.Name, ref) {
			matches = append(matches, f)
		}
	}
	switch len(matches) {
	case 0:
		return api.Friend{}, fmt.Errorf("no friend named %q", ref)
	case 1:
		return matches[0], nil
	default:
		return api.Friend{}, fmt.Errorf("%d friends are named %q, use the ID instead", len(matches), ref)
	}
}

func listFriends(ctx context.Context, svc *service.LedgerService) ([]api.Friend, error) {
	resp, err := svc.ListFriends(ctx, connect.NewRequest(&api.ListFriendsRequest{}))
	if err != nil {
		return nil, err
	}
	return resp.Msg.Friends, nil
}

// money formats a decimal wire amount as dollars and cents.
func money(amount string) string {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return amount
	}
	if d.IsNegative() {
		return "-$" + d.Neg().StringFixed(2)
	}
	return "$" + d.StringFixed(2)
}

func swatch(color string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("●")
}
