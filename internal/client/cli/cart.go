package cli

import (
	"context"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/cycleshop/internal/client/stores"
)

func (s *Shell) cart(context.Context, []string) error {
	snap := s.app.Cart.Snapshot()
	if len(snap.Items) == 0 {
		s.println("Your cart is empty")
		return nil
	}
	for _, it := range snap.Items {
		pending := ""
		if stores.IsTempID(it.ID) {
			pending = " (saving...)"
		}
		s.printf("%-38s %-24s x%-3d %10s%s\n", it.ID, it.Product.Label(), it.Quantity,
			formatPrice(it.Product.Price()*float64(it.Quantity)), pending)
	}
	s.printf("Subtotal: %s\n", formatPrice(snap.Subtotal()))
	if snap.LastError != "" {
		s.println("Last error:", snap.LastError)
	}
	return nil
}

func (s *Shell) add(ctx context.Context, args []string) error {
	qty := 1
	if len(args) > 1 {
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return stores.ErrInvalidQuantity
		}
		qty = n
	}

	item, err := s.app.Cart.AddItem(ctx, args[0], qty)
	if err != nil {
		return err
	}
	s.printf("%s x%d in cart\n", item.Product.Label(), item.Quantity)
	return nil
}

func (s *Shell) qty(ctx context.Context, args []string) error {
	n, err := strconv.Atoi(args[1])
	if err != nil {
		return stores.ErrInvalidQuantity
	}

	item, err := s.app.Cart.UpdateQuantity(ctx, args[0], n)
	if err != nil {
		return err
	}
	s.printf("%s x%d\n", item.Product.Label(), item.Quantity)
	return nil
}

func (s *Shell) rm(ctx context.Context, args []string) error {
	if err := s.app.Cart.RemoveItem(ctx, args[0]); err != nil {
		return err
	}
	s.println("Removed")
	return nil
}

func (s *Shell) clear(ctx context.Context, _ []string) error {
	if err := s.app.Cart.Clear(ctx); err != nil {
		return err
	}
	s.println("Cart cleared")
	return nil
}

func (s *Shell) checkout(ctx context.Context, args []string) error {
	order, err := s.app.Checkout(ctx, args[0], strings.Join(args[1:], " "))
	if order.ID != "" {
		s.printf("Order %s placed: %s, %s\n", order.ID, formatPrice(order.TotalAmount), order.PaymentMethod)
	}
	return err
}

func (s *Shell) orders(ctx context.Context, _ []string) error {
	orders, err := s.app.Orders.FetchAll(ctx)
	if err != nil {
		return err
	}
	if len(orders) == 0 {
		s.println("No orders yet")
	}
	for _, o := range orders {
		s.println(formatOrder(o))
	}
	return nil
}

func (s *Shell) cancel(ctx context.Context, args []string) error {
	if err := s.app.Orders.Cancel(ctx, args[0]); err != nil {
		return err
	}
	s.println("Order cancelled")
	return nil
}
