package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/cycleshop/internal/client/credentials"
	"github.com/dmitrijs2005/cycleshop/internal/client/models"
	"github.com/dmitrijs2005/cycleshop/internal/client/stores"
	"github.com/dmitrijs2005/cycleshop/internal/common"
)

// promptCredentials asks for an email and a password. The password is wiped
// from the read buffer before returning.
func (s *Shell) promptCredentials() (models.Credentials, error) {
	email, err := getSimpleText(s.reader, "Enter email", s.out)
	if err != nil {
		return models.Credentials{}, err
	}

	password, err := getPassword(s.out)
	if err != nil {
		return models.Credentials{}, err
	}
	defer common.WipeByteArray(password)

	return models.Credentials{Email: email, Password: string(password)}, nil
}

// register prompts for a name and credentials and creates a shopper account,
// which also logs the shopper in.
func (s *Shell) register(ctx context.Context, _ []string) error {
	name, err := getSimpleText(s.reader, "Enter name", s.out)
	if err != nil {
		return err
	}
	creds, err := s.promptCredentials()
	if err != nil {
		return err
	}

	p, err := s.app.User.Register(ctx, models.Registration{Name: name, Email: creds.Email, Password: creds.Password})
	if err != nil {
		return err
	}
	s.printf("Welcome, %s!\n", p.Name)
	return s.app.SyncAfterLogin(ctx)
}

// login authenticates the shopper and loads the cart and wishlist.
func (s *Shell) login(ctx context.Context, _ []string) error {
	creds, err := s.promptCredentials()
	if err != nil {
		return err
	}

	p, err := s.app.User.Login(ctx, creds)
	if err != nil {
		return err
	}
	s.printf("Logged in as %s\n", p.Email)

	if err := s.app.SyncAfterLogin(ctx); err != nil {
		return err
	}
	s.printf("Cart: %d item(s), wishlist: %d item(s)\n",
		s.app.Cart.Snapshot().Count(), len(s.app.Wishlist.Snapshot().Items))
	return nil
}

func (s *Shell) logout(ctx context.Context, _ []string) error {
	s.app.LogoutUser(ctx)
	s.println("Logged out")
	return nil
}

// principal returns the shopper, fetching the profile when the session was
// restored from a stored token.
func (s *Shell) principal(ctx context.Context) (models.Principal, error) {
	snap := s.app.User.Snapshot()
	if !snap.Authenticated {
		return models.Principal{}, stores.ErrNotAuthenticated
	}
	if snap.Principal != nil {
		return *snap.Principal, nil
	}
	return s.app.User.FetchProfile(ctx)
}

func (s *Shell) whoami(ctx context.Context, _ []string) error {
	p, err := s.principal(ctx)
	if err != nil {
		return err
	}
	s.printf("%s <%s>\n", p.Name, p.Email)
	if p.Phone != "" {
		s.printf("Phone: %s\n", p.Phone)
	}
	for _, scope := range []credentials.Scope{credentials.ScopeUser, credentials.ScopeAdmin} {
		info, ok, err := s.app.Vault.Inspect(ctx, scope)
		if err != nil {
			return err
		}
		if ok {
			s.printf("%s token: %s\n", scope, formatToken(info))
		}
	}
	return nil
}

func (s *Shell) addresses(ctx context.Context, _ []string) error {
	p, err := s.principal(ctx)
	if err != nil {
		return err
	}
	if len(p.Addresses) == 0 {
		s.println("No addresses yet, use 'address add'")
		return nil
	}
	for _, a := range p.Addresses {
		s.println(formatAddress(a))
	}
	return nil
}

func (s *Shell) address(ctx context.Context, args []string) error {
	switch args[0] {
	case "add":
		addr, err := s.promptAddress()
		if err != nil {
			return err
		}
		p, err := s.app.User.AddAddress(ctx, addr)
		if err != nil {
			return err
		}
		s.printf("Saved, you have %d address(es)\n", len(p.Addresses))
		return nil

	case "rm", "default":
		if len(args) < 2 {
			return fmt.Errorf("usage: address %s <id>", args[0])
		}
		var err error
		if args[0] == "rm" {
			_, err = s.app.User.DeleteAddress(ctx, args[1])
		} else {
			_, err = s.app.User.SetDefaultAddress(ctx, args[1])
		}
		if err != nil {
			return err
		}
		s.println("Done")
		return nil

	default:
		return fmt.Errorf("unknown address action %q", args[0])
	}
}

func (s *Shell) promptAddress() (models.Address, error) {
	var a models.Address
	fields := []struct {
		prompt string
		dst    *string
	}{
		{"Full name", &a.FullName},
		{"Phone", &a.Phone},
		{"Address line", &a.AddressLine},
		{"City", &a.City},
		{"State", &a.State},
		{"Postal code", &a.Pincode},
		{"Country", &a.Country},
	}
	for _, f := range fields {
		v, err := getSimpleText(s.reader, f.prompt, s.out)
		if err != nil {
			return models.Address{}, err
		}
		*f.dst = v
	}

	def, err := confirm(s.reader, "Make default?", s.out)
	if err != nil {
		return models.Address{}, err
	}
	a.IsDefault = def
	return a, nil
}
