package llm

import (
	"fmt"
	"strings"
	"time"

	contractx "github.com/boterol/ecomarket-assistant/agent/contract"
	openrouterx "github.com/boterol/ecomarket-assistant/pkg/openrouter"
)

// Config is the LLM configuration for all agents: one default model with
// optional per-agent overrides. A negative temperature override means "use
// the default".
type Config struct {
	BaseURL            string        `envconfig:"BASE_URL" split_words:"true" default:"https://openrouter.ai/api/v1"`
	APIKey             string        `envconfig:"API_KEY" split_words:"true" required:"true"`
	Model              string        `envconfig:"MODEL" split_words:"true" required:"true"`
	MaxCompletionToken int           `envconfig:"MAX_COMPLETION_TOKEN" split_words:"true" default:"2000"`
	Temperature        float32       `envconfig:"TEMPERATURE" split_words:"true" default:"0.3"`
	Timeout            time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"30s"`
	SiteURL            string        `envconfig:"SITE_URL" split_words:"true"`
	SiteName           string        `envconfig:"SITE_NAME" split_words:"true"`

	DevolucionesModel       string  `envconfig:"DEVOLUCIONES_MODEL" split_words:"true"`
	PedidosModel            string  `envconfig:"PEDIDOS_MODEL" split_words:"true"`
	FAQModel                string  `envconfig:"FAQ_MODEL" split_words:"true"`
	DevolucionesTemperature float32 `envconfig:"DEVOLUCIONES_TEMPERATURE" split_words:"true" default:"-1"`
	PedidosTemperature      float32 `envconfig:"PEDIDOS_TEMPERATURE" split_words:"true" default:"-1"`
	FAQTemperature          float32 `envconfig:"FAQ_TEMPERATURE" split_words:"true" default:"-1"`
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return fmt.Errorf("%w: llm api key is required", contractx.ErrValidation)
	}
	if strings.TrimSpace(c.Model) == "" {
		return fmt.Errorf("%w: default model is required", contractx.ErrValidation)
	}
	return nil
}

// OpenRouterFor resolves the effective model configuration for one agent.
func (c Config) OpenRouterFor(agentType contractx.AgentType) openrouterx.Config {
	modelName := strings.TrimSpace(c.Model)
	temp := c.Temperature

	switch agentType {
	case contractx.AgentTypeReturns:
		if v := strings.TrimSpace(c.DevolucionesModel); v != "" {
			modelName = v
		}
		if c.DevolucionesTemperature >= 0 {
			temp = c.DevolucionesTemperature
		}
	case contractx.AgentTypeOrders:
		if v := strings.TrimSpace(c.PedidosModel); v != "" {
			modelName = v
		}
		if c.PedidosTemperature >= 0 {
			temp = c.PedidosTemperature
		}
	case contractx.AgentTypeFAQ:
		if v := strings.TrimSpace(c.FAQModel); v != "" {
			modelName = v
		}
		if c.FAQTemperature >= 0 {
			temp = c.FAQTemperature
		}
	}

	maxCompletionToken := c.MaxCompletionToken
	return openrouterx.Config{
		BaseURL:            strings.TrimSpace(c.BaseURL),
		APIKey:             strings.TrimSpace(c.APIKey),
		Model:              modelName,
		MaxCompletionToken: &maxCompletionToken,
		Temperature:        temp,
		Timeout:            c.Timeout,
		SiteURL:            strings.TrimSpace(c.SiteURL),
		SiteName:           strings.TrimSpace(c.SiteName),
	}
}
