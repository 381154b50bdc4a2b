// Package cli provides the interactive cycleshop storefront for the terminal.
//
// It is a thin view over app.App: every command reads store snapshots or
// calls a store operation and prints the outcome. Decisions such as cart
// merging, order status rules and session handling stay in the stores.
//
// Commands:
//   - register / login / logout / whoami
//   - shop [query] [brand=..] [model=..] [year=..] [max=..] / product / review
//   - cart / add / qty / rm / clear / checkout
//   - wish / wishadd / wishrm
//   - orders / cancel / addresses / address add|rm|default
//   - admin login|signup|orders|status|contacts|logout
//
// The REPL is started via Shell.Run(ctx), which blocks until the user exits.
package cli
