package returns

import (
	"fmt"

	orderx "github.com/boterol/ecomarket-assistant/agent/order"
)

func renderConfirmationEmail(rec orderx.Record, req *Request) string {
	return fmt.Sprintf(confirmationTemplate,
		rec.OrderID,
		rec.DisplayProduct(),
		req.Quantity,
		orderx.FormatCOP(req.Total),
		req.OrderDate.Format("2006-01-02"),
		req.Reason,
	)
}

const confirmationTemplate = `<html>
  <body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px; background-color: #f4f4f4;">
      <div style="background-color: #2e7d32; color: white; padding: 20px; text-align: center;">
        <h1>🌱 ECOMARKET</h1>
      </div>
      <div style="background-color: white; padding: 30px; margin-top: 20px;">
        <h2 style="color: #2e7d32;">Solicitud de Devolución Recibida</h2>
        <p>Hemos recibido tu solicitud de devolución para el siguiente pedido:</p>
        <div style="background-color: #f9f9f9; padding: 15px; border-left: 4px solid #2e7d32; margin: 20px 0;">
          <p><strong>Número de Pedido:</strong> %s</p>
          <p><strong>Producto:</strong> %s</p>
          <p><strong>Cantidad:</strong> %d</p>
          <p><strong>Total:</strong> %s</p>
          <p><strong>Fecha de compra:</strong> %s</p>
          <p><strong>Motivo:</strong> %s</p>
        </div>
        <h3 style="color: #2e7d32;">Próximos pasos:</h3>
        <ol>
          <li>Nuestro equipo revisará tu solicitud en las próximas 24-48 horas</li>
          <li>Recibirás un email con las instrucciones de envío</li>
          <li>Una vez recibamos el producto, procesaremos tu reembolso</li>
        </ol>
        <p style="margin-top: 30px;">Si tienes alguna pregunta, responde a este email o contacta con nuestro servicio al cliente.</p>
        <p style="margin-top: 20px; color: #666; font-size: 14px;">
          <strong>Nota:</strong> El producto debe estar sin usar y en su empaque original.
        </p>
      </div>
      <div style="text-align: center; padding: 20px; color: #666; font-size: 12px;">
        <p>© 2025 EcoMarket - Comprometidos con el planeta 🌍</p>
      </div>
    </div>
  </body>
</html>`
