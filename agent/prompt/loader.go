package prompt

import (
	_ "embed"
	"strings"
)

var (
	//go:embed template/devoluciones.txt
	devolucionesRaw string

	//go:embed template/pedidos.txt
	pedidosRaw string

	//go:embed template/faq.txt
	faqRaw string
)

// PromptSet holds the system prompts for the three agents.
type PromptSet struct {
	Devoluciones string
	Pedidos      string
	FAQ          string
}

// LoadPromptSet returns the embedded prompts, trimmed. Safe to call
// concurrently; the embed is compile-time.
func LoadPromptSet() PromptSet {
	return PromptSet{
		Devoluciones: strings.TrimSpace(devolucionesRaw),
		Pedidos:      strings.TrimSpace(pedidosRaw),
		FAQ:          strings.TrimSpace(faqRaw),
	}
}
