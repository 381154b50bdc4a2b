package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/cycleshop/internal/client/models"
	"github.com/dmitrijs2005/cycleshop/internal/client/stores"
)

// admin dispatches the admin sub-commands. The admin session is independent
// of the shopper session; both can be active at once.
func (s *Shell) admin(ctx context.Context, args []string) error {
	switch args[0] {
	case "signup":
		creds, err := s.promptCredentials()
		if err != nil {
			return err
		}
		if _, err := s.app.Admin.Register(ctx, models.Registration{Email: creds.Email, Password: creds.Password}); err != nil {
			return err
		}
		s.println("Admin account created, use 'admin login'")
		return nil

	case "login":
		creds, err := s.promptCredentials()
		if err != nil {
			return err
		}
		p, err := s.app.Admin.Login(ctx, creds)
		if err != nil {
			return err
		}
		s.printf("Admin %s logged in\n", p.Email)
		return nil

	case "logout":
		s.app.LogoutAdmin(ctx)
		s.println("Admin logged out")
		return nil
	}

	if !s.app.Admin.Authenticated() {
		return stores.ErrNotAuthenticated
	}

	switch args[0] {
	case "orders":
		orders, err := s.app.AdminOrders.FetchAll(ctx)
		if err != nil {
			return err
		}
		for _, o := range orders {
			s.println(formatOrder(o))
		}
		return nil

	case "status":
		if len(args) < 3 {
			return fmt.Errorf("usage: admin status <orderId> <status>")
		}
		status, ok := models.ParseOrderStatus(args[2])
		if !ok {
			return stores.ErrInvalidStatus
		}
		o, err := s.app.AdminOrders.UpdateStatus(ctx, args[1], status)
		if err != nil {
			return err
		}
		s.printf("Order %s is now %s\n", o.ID, o.Status)
		return nil

	case "contacts":
		contacts, err := s.app.AdminContacts.FetchAll(ctx)
		if err != nil {
			return err
		}
		if len(contacts) == 0 {
			s.println("No messages")
		}
		for _, c := range contacts {
			s.printf("%s %s <%s>: %s\n", c.CreatedAt.Format("2006-01-02"), c.Name, c.Email, c.Message)
		}
		return nil

	default:
		return fmt.Errorf("unknown admin action %q", args[0])
	}
}
