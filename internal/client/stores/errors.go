package stores

import "errors"

var (
	ErrInvalidQuantity  = errors.New("quantity must be at least 1")
	ErrMissingID        = errors.New("identifier is required")
	ErrItemPending      = errors.New("item is not confirmed by the server yet")
	ErrInvalidStatus    = errors.New("unknown order status")
	ErrTerminalStatus   = errors.New("order is in a terminal status")
	ErrNotCancellable   = errors.New("only pending orders can be cancelled")
	ErrInvalidReview    = errors.New("review needs a rating from 1 to 5 and some text")
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrMissingToken     = errors.New("authentication response carried no token")
	ErrNoProfile        = errors.New("session has no profile endpoint")
	ErrEmptyCart        = errors.New("cart is empty")
	ErrUnknownAddress   = errors.New("address is not on the profile")
)
