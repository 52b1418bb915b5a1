package service

import (
	"github.com/mmynk/friendledger/internal/models"
	"github.com/mmynk/friendledger/pkg/api"
)

func toAPIFriend(f models.Friend) api.Friend {
	return api.Friend{
		Id:          f.ID,
		Name:        f.Name,
		AvatarColor: f.AvatarColor,
	}
}

func toAPIFriends(friends []models.Friend) []api.Friend {
	out := make([]api.Friend, len(friends))
	for i, f := range friends {
		out[i] = toAPIFriend(f)
	}
	return out
}

func toAPIExpense(e models.Expense) api.Expense {
	participants := make([]api.Participant, len(e.Participants))
	for i, p := range e.Participants {
		participants[i] = api.Participant{
			FriendId: p.FriendID,
			Amount:   p.Amount.String(),
		}
	}
	return api.Expense{
		Id:           e.ID,
		CreatedAt:    e.CreatedAt,
		Title:        e.Title,
		Amount:       e.Amount.String(),
		PaidBy:       e.PaidBy,
		Participants: participants,
		Category:     e.Category,
	}
}

func toAPIExpenses(expenses []models.Expense) []api.Expense {
	out := make([]api.Expense, len(expenses))
	for i, e := range expenses {
		out[i] = toAPIExpense(e)
	}
	return out
}

func toAPIBalances(balances []models.Balance) []api.Balance {
	out := make([]api.Balance, len(balances))
	for i, b := range balances {
		out[i] = api.Balance{
			From:   toAPIFriend(b.From),
			To:     toAPIFriend(b.To),
			Amount: b.Amount.String(),
		}
	}
	return out
}

func toAPIFriendBalances(totals []models.FriendBalance) []api.FriendBalance {
	out := make([]api.FriendBalance, len(totals))
	for i, t := range totals {
		out[i] = api.FriendBalance{
			Friend: toAPIFriend(t.Friend),
			Net:    t.Net.String(),
		}
	}
	return out
}

func toAPICategories(categories []models.Category) []api.Category {
	out := make([]api.Category, len(categories))
	for i, c := range categories {
		out[i] = api.Category{
			Id:          c.ID,
			DisplayName: c.DisplayName,
			Icon:        c.Icon,
		}
	}
	return out
}
