package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	assistantx "github.com/boterol/ecomarket-assistant/agent/agents/assistant"
	contractx "github.com/boterol/ecomarket-assistant/agent/contract"
	"github.com/boterol/ecomarket-assistant/agent/knowledge"
	llmx "github.com/boterol/ecomarket-assistant/agent/llm"
	orderx "github.com/boterol/ecomarket-assistant/agent/order"
	policyx "github.com/boterol/ecomarket-assistant/agent/policy"
	returnsx "github.com/boterol/ecomarket-assistant/agent/returns"
	toolx "github.com/boterol/ecomarket-assistant/agent/tool"
	configx "github.com/boterol/ecomarket-assistant/pkg/config"
	_ "github.com/boterol/ecomarket-assistant/pkg/logger/autoload"
	resendx "github.com/boterol/ecomarket-assistant/pkg/resend"
)

type AppConfig struct {
	OrdersPath string `envconfig:"ORDERS_PATH" split_words:"true" default:"data/pedidos.csv"`
	FAQPath    string `envconfig:"FAQ_PATH" split_words:"true" default:"data/faq.json"`
}

func main() {
	appCfg := configx.MustNew[AppConfig]("")

	store := loadOrders(appCfg.OrdersPath)
	faqDocs := loadFAQ(appCfg.FAQPath)
	orderDocs := knowledge.OrderDocuments(store)

	index := knowledge.NewIndex()
	index.Add(knowledge.CollectionOrders, orderDocs...)
	index.Add(knowledge.CollectionFAQ, faqDocs...)
	log.Info().
		Int("orders", store.Len()).
		Int("order_documents", len(orderDocs)).
		Int("faq_documents", len(faqDocs)).
		Msg("data loaded and indexed")

	engine := policyx.NewEngine(*configx.MustNew[policyx.Config]("POLICY"))
	mailer := resendx.MustNew(*configx.MustNew[resendx.Config]("RESEND"))

	initiator, err := returnsx.NewInitiator(store, engine, emailNotifier{client: mailer}, *configx.MustNew[returnsx.Config]("RETURNS"))
	if err != nil {
		log.Fatal().Err(err).Msg("build return initiator")
	}

	deps := toolx.Deps{
		Store:     store,
		Policy:    engine,
		Initiator: initiator,
		Now:       time.Now,
	}
	gateway, err := toolx.NewGateway(deps)
	if err != nil {
		log.Fatal().Err(err).Msg("build tool gateway")
	}

	ctx := context.Background()
	llmCfg := configx.MustNew[llmx.Config]("LLM")
	registry, err := assistantx.NewRegistry(ctx, *llmCfg, toolx.InfosForAgent(contractx.AgentTypeReturns), gateway, index)
	if err != nil {
		log.Fatal().Err(err).Msg("build assistant registry")
	}

	runChatLoop(ctx, registry)
}

func loadOrders(path string) *orderx.Store {
	f, err := os.Open(path)
	if err != nil {
		log.Fatal().Err(err).Str("path", path).Msg("open orders file")
	}
	defer f.Close()

	store, err := orderx.LoadCSV(f)
	if err != nil {
		log.Fatal().Err(err).Str("path", path).Msg("load order store")
	}
	return store
}

func loadFAQ(path string) []contractx.Document {
	f, err := os.Open(path)
	if err != nil {
		log.Fatal().Err(err).Str("path", path).Msg("open faq file")
	}
	defer f.Close()

	docs, err := knowledge.LoadFAQ(f)
	if err != nil {
		log.Fatal().Err(err).Str("path", path).Msg("load faq documents")
	}
	return docs
}

// emailNotifier adapts the resend client to the initiator's Notifier
// contract, translating credential rejections into the auth sentinel the
// initiator distinguishes.
type emailNotifier struct {
	client *resendx.Client
}

func (n emailNotifier) Send(ctx context.Context, to, subject, html string) error {
	err := n.client.Send(ctx, to, subject, html)
	if errors.Is(err, resendx.ErrAuthentication) {
		return fmt.Errorf("%w: %v", returnsx.ErrAuthentication, err)
	}
	return err
}

func runChatLoop(ctx context.Context, registry *assistantx.Registry) {
	fmt.Println("🌱 EcoMarket - Asistente de atención al cliente")
	printAgentMenu()

	current := contractx.AgentTypeReturns
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Printf("[%s] Tú: ", current)
		if !scanner.Scan() {
			break
		}

		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		if strings.EqualFold(input, "exit") {
			fmt.Println("👋 ¡Hasta pronto!")
			return
		}
		if strings.EqualFold(input, "menu") {
			printAgentMenu()
			continue
		}
		if agentType, ok := agentForChoice(input); ok {
			current = agentType
			fmt.Printf("Ahora hablas con el agente de %s.\n\n", agentType)
			continue
		}

		agent, ok := registry.ForType(current)
		if !ok {
			log.Error().Str("agent", string(current)).Msg("unknown agent selected")
			current = contractx.AgentTypeReturns
			continue
		}

		reply, err := agent.Handle(ctx, input)
		if err != nil {
			log.Error().Err(err).Str("agent", string(current)).Msg("assistant turn failed")
			fmt.Println("❌ Hubo un problema procesando tu mensaje. Intenta reformularlo.")
			continue
		}
		fmt.Printf("EcoAsistente: %s\n\n", reply)
	}
}

func printAgentMenu() {
	fmt.Println("Agentes disponibles:")
	fmt.Println("  1) devoluciones - evaluar e iniciar devoluciones de pedidos")
	fmt.Println("  2) pedidos      - consultar la información de tus pedidos")
	fmt.Println("  3) faq          - preguntas frecuentes de la tienda")
	fmt.Println("Escribe el número o el nombre para cambiar de agente,")
	fmt.Println("'menu' para ver esta lista y 'exit' para salir.")
	fmt.Println()
}

func agentForChoice(input string) (contractx.AgentType, bool) {
	switch strings.ToLower(input) {
	case "1", "devoluciones":
		return contractx.AgentTypeReturns, true
	case "2", "pedidos":
		return contractx.AgentTypeOrders, true
	case "3", "faq":
		return contractx.AgentTypeFAQ, true
	}
	return "", false
}
