package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONCodec_WireNames(t *testing.T) {
	data, err := JSONCodec{}.Marshal(&AddExpenseRequest{
		Title:          "Dinner",
		Amount:         "30.00",
		PaidBy:         "f1",
		Category:       "food",
		ParticipantIds: []string{"f1", "f2"},
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"Dinner","amount":"30.00","paidBy":"f1","category":"food","participantIds":["f1","f2"]}`, string(data))
}

func TestJSONCodec_EmptyBody(t *testing.T) {
	var req ListFriendsRequest
	assert.NoError(t, JSONCodec{}.Unmarshal(nil, &req))
}

func TestJSONCodec_Unmarshal(t *testing.T) {
	var req RemoveFriendRequest
	require.NoError(t, JSONCodec{}.Unmarshal([]byte(`{"friendId":"abc"}`), &req))
	assert.Equal(t, "abc", req.FriendId)
	assert.Equal(t, "json", JSONCodec{}.Name())
}
