package catalog

import "github.com/custodia-labs/connect-cli/internal/core/domain"

// builtinConnectors is the static registry: every connector the catalog
// knows about, installed or not. Identity fields here are read-only;
// install state and documentation come from the connectors directory.
func builtinConnectors() []domain.Connector {
	return []domain.Connector{
		{
			Name:        "openai",
			DisplayName: "OpenAI",
			Description: "GPT models, embeddings, and the assistants API",
			Category:    "llm",
		},
		{
			Name:        "anthropic",
			DisplayName: "Anthropic",
			Description: "Claude models via the Anthropic API",
			Category:    "llm",
		},
		{
			Name:        "github",
			DisplayName: "GitHub",
			Description: "Repositories, issues, and actions",
			Category:    "devtools",
		},
		{
			Name:        "digitalocean",
			DisplayName: "DigitalOcean",
			Description: "Droplets, spaces, and managed databases",
			Category:    "cloud",
		},
		{
			Name:        "cloudflare",
			DisplayName: "Cloudflare",
			Description: "DNS, workers, and zone management",
			Category:    "cloud",
		},
		{
			Name:        "namecheap",
			DisplayName: "Namecheap",
			Description: "Domain registration and DNS",
			Category:    "domains",
		},
		{
			Name:        "godaddy",
			DisplayName: "GoDaddy",
			Description: "Domain marketplace and registration",
			Category:    "domains",
		},
		{
			Name:        "stripe",
			DisplayName: "Stripe",
			Description: "Payments, subscriptions, and invoicing",
			Category:    "payments",
		},
	}
}
