// Package knowledge builds the retrieval documents fed to the external
// vector index. Indexing and similarity search themselves live behind the
// contract.Retriever collaborator and are not implemented here.
package knowledge

import (
	"fmt"
	"strconv"
	"strings"

	contractx "github.com/boterol/ecomarket-assistant/agent/contract"
	orderx "github.com/boterol/ecomarket-assistant/agent/order"
)

// Collection names in the external index.
const (
	CollectionOrders = "pedidos"
	CollectionFAQ    = "faq"
)

// OrderDocuments renders one retrievable document per order, carrying the
// full record as metadata so the lookup agent can answer from a hit without
// touching the store again.
func OrderDocuments(st *orderx.Store) []contractx.Document {
	records := st.All()
	docs := make([]contractx.Document, 0, len(records))

	for _, rec := range records {
		text := fmt.Sprintf(
			"El id del pedido es %s, Cliente ID: %s, Producto: %s, Categoría: %s, "+
				"Cantidad: %d, Precio: %s, Fecha: %s, Estado: %s",
			rec.OrderID, rec.CustomerID, rec.Product, rec.Category,
			rec.Quantity, rec.Price.String(), rec.OrderDate.Format("2006-01-02"), rec.Status,
		)

		docs = append(docs, contractx.Document{
			Text: text,
			Metadata: map[string]string{
				"order_id":       rec.OrderID,
				"customer_id":    rec.CustomerID,
				"product":        rec.Product,
				"category":       rec.Category,
				"price":          rec.Price.String(),
				"quantity":       strconv.Itoa(rec.Quantity),
				"order_date":     rec.OrderDate.Format("2006-01-02"),
				"payment_method": rec.PaymentMethod,
				"estado":         rec.Status,
			},
		})
	}
	return docs
}

// FormatOrderHit renders a retrieved order document's metadata as the
// lookup agent's answer.
func FormatOrderHit(doc contractx.Document) string {
	var b strings.Builder
	b.WriteString("📦 Información del pedido:\n")

	// Fixed field order keeps answers stable across calls.
	for _, key := range []string{
		"order_id", "customer_id", "product", "category",
		"price", "quantity", "order_date", "payment_method", "estado",
	} {
		if v, ok := doc.Metadata[key]; ok {
			fmt.Fprintf(&b, "• %s: %s\n", key, v)
		}
	}
	return b.String()
}
