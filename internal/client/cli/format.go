package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/cycleshop/internal/client/credentials"
	"github.com/dmitrijs2005/cycleshop/internal/client/models"
)

func formatPrice(p float64) string {
	return fmt.Sprintf("$%.2f", p)
}

func formatToken(info credentials.TokenInfo) string {
	if !info.IsJWT {
		return "opaque"
	}
	subject := info.Subject
	if subject == "" {
		subject = "unknown subject"
	}
	if info.ExpiresAt.IsZero() {
		return subject + ", no expiry"
	}
	return fmt.Sprintf("%s, expires %s", subject, info.ExpiresAt.UTC().Format(time.RFC3339))
}

func stars(n int) string {
	n = min(max(n, 0), 5)
	return strings.Repeat("*", n) + strings.Repeat(".", 5-n)
}

func joinInts(xs []int) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = strconv.Itoa(x)
	}
	return strings.Join(parts, ", ")
}

func formatAddress(a models.Address) string {
	def := ""
	if a.IsDefault {
		def = " [default]"
	}
	return fmt.Sprintf("%s: %s, %s, %s %s%s", a.ID, a.FullName, a.AddressLine, a.City, a.Country, def)
}

func formatOrder(o models.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s  %-10s %10s  %s", o.ID, o.CreatedAt.Format("2006-01-02 15:04"), o.Status,
		formatPrice(o.TotalAmount), o.PaymentMethod)
	for _, l := range o.Items {
		fmt.Fprintf(&b, "\n    %s x%d @ %s", l.Product.Label(), l.Quantity, formatPrice(l.Price))
	}
	return b.String()
}
