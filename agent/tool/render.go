package tool

import (
	"fmt"
	"strings"

	orderx "github.com/boterol/ecomarket-assistant/agent/order"
	policyx "github.com/boterol/ecomarket-assistant/agent/policy"
	returnsx "github.com/boterol/ecomarket-assistant/agent/returns"
)

// All user-visible text is rendered here from outcome kinds, never from raw
// error strings. The agent layer forwards these messages verbatim.

func renderOrderNotFound(orderID string) string {
	return fmt.Sprintf("❌ No se encontró el pedido %s en el sistema.", strings.ToUpper(strings.TrimSpace(orderID)))
}

func renderNoOrders(customerID string) string {
	return fmt.Sprintf("❌ No se encontraron pedidos para el cliente %s.", strings.ToUpper(strings.TrimSpace(customerID)))
}

func renderVerdict(v policyx.Verdict, windowDays int) string {
	rec := v.Order

	switch v.Outcome {
	case policyx.OutcomeAlreadyReturned:
		return fmt.Sprintf("❌ El pedido %s ya fue devuelto anteriormente.", rec.OrderID)

	case policyx.OutcomeNotShipped:
		return fmt.Sprintf(
			"⚠️ El pedido %s aún no ha sido enviado. Puedes cancelarlo sin iniciar una devolución.",
			rec.OrderID,
		)

	case policyx.OutcomeInTransit:
		return fmt.Sprintf(
			"⚠️ El pedido %s está en tránsito. Espera a recibirlo para iniciar una devolución si es necesario.",
			rec.OrderID,
		)

	case policyx.OutcomeCategoryExcluded:
		return fmt.Sprintf(
			"❌ El producto '%s' pertenece a la categoría '%s', que no admite devoluciones por política de la tienda.",
			rec.Product, rec.Category,
		)

	case policyx.OutcomeWindowExpired:
		return fmt.Sprintf(
			"❌ Han pasado %d días desde la compra (fecha: %s). Solo se admiten devoluciones dentro de %d días.",
			v.DaysSinceOrder, rec.OrderDate.Format("2006-01-02"), windowDays,
		)

	case policyx.OutcomePersonalizedReview:
		return fmt.Sprintf(
			"⚠️ El producto '%s' es personalizado. La devolución requiere revisión manual del equipo. "+
				"Tiempo desde compra: %d días.",
			rec.Product, v.DaysSinceOrder,
		)

	case policyx.OutcomeCashPaymentReview:
		return fmt.Sprintf(
			"✅ Pedido %s elegible para devolución, pero requiere revisión manual por haber sido pagado en efectivo. "+
				"Producto: '%s'. Tiempo desde compra: %d días. Total a reembolsar: %s.",
			rec.OrderID, rec.Product, v.DaysSinceOrder, orderx.FormatCOP(v.Total),
		)

	default:
		return fmt.Sprintf(
			"✅ El pedido %s con producto '%s' es elegible para devolución. "+
				"Tiempo desde compra: %d días. Método de pago: %s. Total a reembolsar: %s.",
			rec.OrderID, rec.Product, v.DaysSinceOrder, rec.PaymentMethod, orderx.FormatCOP(v.Total),
		)
	}
}

func renderSummaries(customerID string, summaries []orderx.Summary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📦 Pedidos del cliente %s:\n\n", strings.ToUpper(strings.TrimSpace(customerID)))

	for _, s := range summaries {
		fmt.Fprintf(&b,
			"• Order ID: %s\n  Producto: %s\n  Estado: %s\n  Total: %s\n  Fecha: %s (hace %d días)\n\n",
			s.OrderID,
			s.Product,
			s.Status,
			orderx.FormatCOP(s.Total),
			s.OrderDate.Format("2006-01-02"),
			s.DaysSinceOrder,
		)
	}
	return b.String()
}

func renderOutcome(o returnsx.Outcome, windowDays int) string {
	switch o.Kind {
	case returnsx.OutcomeRejected:
		switch o.Reason {
		case returnsx.ReasonInvalidStatus:
			return fmt.Sprintf(
				"❌ El pedido %s no está en estado 'recibido'. Estado actual: %s. No se puede iniciar devolución.",
				o.Order.OrderID, o.Order.Status,
			)
		case returnsx.ReasonCategoryExcluded:
			return fmt.Sprintf(
				"❌ El producto pertenece a la categoría '%s' que no admite devoluciones.",
				o.Order.Category,
			)
		default:
			return fmt.Sprintf(
				"❌ Han pasado %d días desde la compra. Fuera del plazo de %d días.",
				o.DaysSinceOrder, windowDays,
			)
		}

	case returnsx.OutcomeSentNotificationFailed:
		if o.AuthFailure {
			return "⚠️ Error de autenticación de email. La solicitud fue registrada pero no se pudo enviar " +
				"el email de confirmación. Nuestro equipo se pondrá en contacto contigo."
		}
		return fmt.Sprintf(
			"⚠️ La solicitud fue registrada pero hubo un problema al enviar el email de confirmación. "+
				"Pedido %s marcado para revisión. Te contactaremos a %s en las próximas horas.",
			o.Order.OrderID, o.Email,
		)

	default:
		return fmt.Sprintf(
			"✅ Solicitud de devolución iniciada exitosamente!\n\n"+
				"📧 Se ha enviado un email de confirmación a: %s\n"+
				"📦 Pedido: %s\n"+
				"🛍️ Producto: %s\n"+
				"💰 Monto a reembolsar: %s\n\n"+
				"Nuestro equipo revisará tu solicitud en 24-48 horas.",
			o.Email, o.Request.OrderID, o.Request.Product, orderx.FormatCOP(o.Request.Total),
		)
	}
}
