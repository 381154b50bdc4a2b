package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/cycleshop/internal/client/app"
)

// Interactive input goes through these so tests can swap them.
var getSimpleText = GetSimpleText
var getPassword = GetPassword
var confirm = Confirm

// Shell is the terminal storefront.
type Shell struct {
	app    *app.App
	reader *bufio.Reader
	out    io.Writer
}

// NewShell reads commands from in and writes to out.
func NewShell(a *app.App, in io.Reader, out io.Writer) *Shell {
	return &Shell{app: a, reader: bufio.NewReader(in), out: out}
}

// Run prints a greeting, refreshes the cart and wishlist of a restored
// session and blocks in the REPL until the user exits.
func (s *Shell) Run(ctx context.Context) {
	fmt.Fprintln(s.out, "Welcome to cycleshop (type 'help' for commands)")

	if s.app.User.Authenticated() {
		if err := s.app.SyncAfterLogin(ctx); err != nil {
			fmt.Fprintln(s.out, "Could not load your cart:", err)
		}
	}

	runREPL(ctx, s, s.status, s.reader, s.out)
}

// status renders the prompt suffix, e.g. " (ann@example.com, admin)".
func (s *Shell) status() string {
	var parts []string
	if snap := s.app.User.Snapshot(); snap.Authenticated {
		who := "shopper"
		if snap.Principal != nil {
			who = snap.Principal.Email
		}
		parts = append(parts, who)
	}
	if s.app.Admin.Authenticated() {
		parts = append(parts, "admin")
	}
	if len(parts) == 0 {
		return " "
	}
	return " (" + strings.Join(parts, ", ") + ") "
}

func (s *Shell) commands() map[string]command {
	return map[string]command{
		"register":  {usage: "register", run: s.register},
		"login":     {usage: "login", run: s.login},
		"logout":    {usage: "logout", run: s.logout},
		"whoami":    {usage: "whoami", run: s.whoami},
		"addresses": {usage: "addresses", run: s.addresses},
		"address":   {usage: "address add | address rm <id> | address default <id>", minArgs: 1, run: s.address},

		"shop":    {usage: "shop [query] [brand=..] [model=..] [year=..] [max=..]", run: s.shop},
		"product": {usage: "product <id>", minArgs: 1, run: s.product},
		"review":  {usage: "review <productId> <rating 1-5> <text>", minArgs: 3, run: s.review},

		"cart":     {usage: "cart", run: s.cart},
		"add":      {usage: "add <productId> [qty]", minArgs: 1, run: s.add},
		"qty":      {usage: "qty <itemId> <n>", minArgs: 2, run: s.qty},
		"rm":       {usage: "rm <itemId>", minArgs: 1, run: s.rm},
		"clear":    {usage: "clear", run: s.clear},
		"checkout": {usage: "checkout <addressId> [payment method]", minArgs: 1, run: s.checkout},

		"wish":    {usage: "wish", run: s.wish},
		"wishadd": {usage: "wishadd <productId>", minArgs: 1, run: s.wishAdd},
		"wishrm":  {usage: "wishrm <productId>", minArgs: 1, run: s.wishRemove},

		"orders": {usage: "orders", run: s.orders},
		"cancel": {usage: "cancel <orderId>", minArgs: 1, run: s.cancel},

		"admin": {usage: "admin login | signup | orders | status <orderId> <status> | contacts | logout", minArgs: 1, run: s.admin},
	}
}

func (s *Shell) helpText() string {
	if !s.app.User.Authenticated() {
		return "Available commands: register, login, shop, product, admin, exit"
	}
	return "Available commands: shop, product, review, cart, add, qty, rm, clear, checkout, " +
		"wish, wishadd, wishrm, orders, cancel, addresses, address, whoami, logout, admin, exit"
}

func (s *Shell) println(a ...any) {
	fmt.Fprintln(s.out, a...)
}

func (s *Shell) printf(format string, a ...any) {
	fmt.Fprintf(s.out, format, a...)
}
