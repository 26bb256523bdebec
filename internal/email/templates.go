package email

import (
	"fmt"
	"strings"

	"otakumart/internal/models"
)

func welcomeText(user models.User) string {
	return fmt.Sprintf(`Hi %s,

Welcome to Otakumart! Your account is ready.

Browse the catalog, save figures to your wishlist, and leave reviews on
the merch you love.

The Otakumart team
`, user.Username)
}

func welcomeHTML(user models.User) string {
	return fmt.Sprintf(`<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <h2>Welcome to Otakumart, %s!</h2>
  <p>Your account is ready.</p>
  <p>Browse the catalog, save figures to your wishlist, and leave reviews on the merch you love.</p>
  <p>The Otakumart team</p>
</body>
</html>`, user.Username)
}

func orderText(user models.User, order models.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\nThanks for your order! Here is your summary:\n\n", user.Username)
	for _, item := range order.Items {
		fmt.Fprintf(&b, "  %dx %s - $%.2f\n", item.Quantity, item.Name, item.Price)
	}
	fmt.Fprintf(&b, "\nSubtotal: $%.2f\nTax: $%.2f\nShipping: $%.2f\nTotal: $%.2f\n",
		order.Total, order.Tax, order.Shipping, order.GrandTotal)
	fmt.Fprintf(&b, "\nOrder ID: %s\nStatus: %s\n\nThe Otakumart team\n", order.ID, order.Status)
	return b.String()
}

func orderHTML(user models.User, order models.Order) string {
	var rows strings.Builder
	for _, item := range order.Items {
		fmt.Fprintf(&rows,
			`<tr><td>%s</td><td align="center">%d</td><td align="right">$%.2f</td></tr>`,
			item.Name, item.Quantity, item.Price)
	}

	return fmt.Sprintf(`<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <h2>Thanks for your order, %s!</h2>
  <p>Order <strong>%s</strong> is %s.</p>
  <table width="100%%" cellpadding="6" style="border-collapse: collapse;">
    <tr style="border-bottom: 1px solid #ddd;"><th align="left">Item</th><th>Qty</th><th align="right">Price</th></tr>
    %s
  </table>
  <p>
    Subtotal: $%.2f<br>
    Tax: $%.2f<br>
    Shipping: $%.2f<br>
    <strong>Total: $%.2f</strong>
  </p>
  <p>The Otakumart team</p>
</body>
</html>`, user.Username, order.ID, order.Status, rows.String(),
		order.Total, order.Tax, order.Shipping, order.GrandTotal)
}
