package chat

import (
	"testing"

	"github.com/stretchr/testify/require"

	"linechat/internal/pkg/errs"
)

func TestUserRegistry_RegisterAndLookup(t *testing.T) {
	req := require.New(t)
	users := NewUserRegistry()

	req.Nil(users.Register("peer-a", "User_abc123"))

	nickname, customErr := users.Lookup("peer-a")
	req.Nil(customErr)
	req.Equal("User_abc123", nickname)
	req.Equal(1, users.Count())
}

func TestUserRegistry_Rename(t *testing.T) {
	req := require.New(t)
	users := NewUserRegistry()

	req.Nil(users.Register("peer-a", "User_abc123"))
	req.Nil(users.Rename("peer-a", "alice"))

	nickname, customErr := users.Lookup("peer-a")
	req.Nil(customErr)
	req.Equal("alice", nickname)
}

func TestUserRegistry_Rename_UnknownUser(t *testing.T) {
	customErr := NewUserRegistry().Rename("peer-a", "alice")

	require.NotNil(t, customErr)
	require.Equal(t, errs.ErrUnknownUser, customErr.Code)
}

func TestUserRegistry_Rename_RejectsEmpty(t *testing.T) {
	req := require.New(t)
	users := NewUserRegistry()

	req.Nil(users.Register("peer-a", "User_abc123"))

	customErr := users.Rename("peer-a", "")
	req.NotNil(customErr)
	req.Equal(errs.ErrInvalidNickname, customErr.Code)

	// Failed rename leaves the nickname untouched
	nickname, _ := users.Lookup("peer-a")
	req.Equal("User_abc123", nickname)
}

func TestUserRegistry_NicknameUniquenessNotEnforced(t *testing.T) {
	req := require.New(t)
	users := NewUserRegistry()

	req.Nil(users.Register("peer-a", "dup"))
	req.Nil(users.Register("peer-b", "other"))
	req.Nil(users.Rename("peer-b", "dup"))

	nickA, _ := users.Lookup("peer-a")
	nickB, _ := users.Lookup("peer-b")
	req.Equal(nickA, nickB)
}

func TestUserRegistry_Unregister(t *testing.T) {
	req := require.New(t)
	users := NewUserRegistry()

	req.Nil(users.Register("peer-a", "alice"))
	req.Nil(users.Unregister("peer-a"))

	_, customErr := users.Lookup("peer-a")
	req.NotNil(customErr)
	req.Equal(errs.ErrUnknownUser, customErr.Code)

	unregErr := users.Unregister("peer-a")
	req.NotNil(unregErr)
	req.Equal(errs.ErrUnknownUser, unregErr.Code)
}
