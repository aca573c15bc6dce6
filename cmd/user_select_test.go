package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"placebrowser/internal/model"
)

var selectUsers = []model.User{
	{ID: 1, Name: "Leanne Graham", Username: "Bret", Email: "Sincere@april.biz"},
	{ID: 2, Name: "Ervin Howell", Username: "Antonette", Email: "Shanna@melissa.tv"},
	{ID: 3, Name: "Clementine Bauch", Username: "Samantha", Email: "Nathan@yesenia.net"},
	{ID: 4, Name: "Patricia Lebsack", Username: "Karianne", Email: "Julianne.OConner@kory.org"},
	{ID: 5, Name: "Kari Sun", Username: "Kari", Email: "kari@april.biz"},
}

func ids(users []model.User) []int {
	out := make([]int, 0, len(users))
	for _, u := range users {
		out = append(out, u.ID)
	}
	return out
}

func TestMatchUsers(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []int
	}{
		{name: "mixed terms keep query order", query: "2, bret ,clementine", want: []int{2, 1, 3}},
		{name: "all wins", query: "bret,ALL", want: []int{1, 2, 3, 4, 5}},
		{name: "repeats collapse", query: "1,Bret,leanne graham,sincere@april.biz", want: []int{1}},
		{name: "exact email", query: "SHANNA@melissa.tv", want: []int{2}},
		{name: "exact username beats partial", query: "kari", want: []int{5}},
		{name: "partial email", query: "kory.org", want: []int{4}},
		{name: "id beats partial", query: "4", want: []int{4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := matchUsers(selectUsers, tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestMatchUsersAmbiguousListsIDs(t *testing.T) {
	_, err := matchUsers(selectUsers, "april.biz")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "matches 2 users")
	assert.Contains(t, err.Error(), "#1 Bret")
	assert.Contains(t, err.Error(), "#5 Kari")
}

func TestMatchUsersErrors(t *testing.T) {
	for _, query := range []string{"99", "nobody", " , "} {
		_, err := matchUsers(selectUsers, query)
		assert.Error(t, err, query)
	}
}

func TestUsersFromIndexes(t *testing.T) {
	got, err := usersFromIndexes(selectUsers, []int{3, 0, 3})
	require.NoError(t, err)
	assert.Equal(t, []int{4, 1}, ids(got))

	_, err = usersFromIndexes(selectUsers, []int{9})
	assert.Error(t, err)
	_, err = usersFromIndexes(selectUsers, nil)
	assert.Error(t, err)
}

func TestChooseUsersWithoutUsers(t *testing.T) {
	got, err := chooseUsers("bret", nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}
