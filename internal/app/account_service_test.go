package app

import (
	"testing"

	"github.com/stretchr/testify/require"

	"microblog/internal/model"
)

func TestAccountService_Register(t *testing.T) {
	req := require.New(t)
	svc := NewAccountService(&memAccountStore{})

	// shape failures
	req.Nil(svc.Register(model.Account{Username: "", Password: "abcd"}))
	req.Nil(svc.Register(model.Account{Username: "bob", Password: "ab"}))

	created := svc.Register(model.Account{Username: "bob", Password: "abcd"})
	req.NotNil(created)
	req.GreaterOrEqual(created.ID, uint(1))
	req.Equal("bob", created.Username)
	req.Equal("abcd", created.Password)

	// same username declines regardless of password
	req.Nil(svc.Register(model.Account{Username: "bob", Password: "wxyz"}))

	// a different username is unaffected
	other := svc.Register(model.Account{Username: "eve", Password: "wxyz"})
	req.NotNil(other)
	req.NotEqual(created.ID, other.ID)
}

func TestAccountService_Authenticate(t *testing.T) {
	req := require.New(t)
	svc := NewAccountService(&memAccountStore{})

	req.Nil(svc.Authenticate(model.Account{Username: "ghost", Password: "abcd"}))

	created := svc.Register(model.Account{Username: "bob", Password: "abcd"})
	req.NotNil(created)

	found := svc.Authenticate(model.Account{Username: "bob", Password: "abcd"})
	req.NotNil(found)
	req.Equal(*created, *found)

	// correct username, wrong password
	req.Nil(svc.Authenticate(model.Account{Username: "bob", Password: "dcba"}))
}

func TestAccountService_ListAll(t *testing.T) {
	req := require.New(t)
	svc := NewAccountService(&memAccountStore{})

	req.Empty(svc.ListAll())

	svc.Register(model.Account{Username: "bob", Password: "abcd"})
	svc.Register(model.Account{Username: "eve", Password: "wxyz"})

	accounts := svc.ListAll()
	req.Len(accounts, 2)
	req.Equal("bob", accounts[0].Username)
	req.Equal("eve", accounts[1].Username)
}
