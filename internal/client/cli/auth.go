package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/voicenotes/internal/common"
)

// getSimpleText and getPassword point at the interactive input helpers and
// are swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

func (a *App) credentials() (string, []byte, error) {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return "", nil, err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return "", nil, err
	}
	return email, password, nil
}

// Signup creates an account. The user logs in separately afterwards.
func (a *App) Signup(ctx context.Context) error {
	email, password, err := a.credentials()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	user, err := a.api.Signup(ctx, email, string(password))
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Account %s created, you can login now\n", user.Email)
	return nil
}

func (a *App) Login(ctx context.Context) error {
	email, password, err := a.credentials()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.api.Login(ctx, email, string(password)); err != nil {
		return err
	}

	a.email = strings.ToLower(strings.TrimSpace(email))
	a.logger.Debug(ctx, "logged in", "email", a.email)
	fmt.Fprintln(a.out, "Logged in as", a.email)
	return nil
}

// Logout forgets the session token.
func (a *App) Logout(ctx context.Context) error {
	a.api.Logout()
	a.email = ""
	fmt.Fprintln(a.out, "Logged out")
	return nil
}
