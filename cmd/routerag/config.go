package main

import (
	"fmt"

	"github.com/poiesic/routerag"
	"github.com/poiesic/routerag/ai"
	"github.com/poiesic/routerag/contextstore"
	"github.com/poiesic/routerag/retrieval/elastic"
	"github.com/urfave/cli/v2"
)

// engineFactory builds the engine for a command from its flags.
type engineFactory func(c *cli.Context) (*routerag.Engine, error)

func engineFlags() []cli.Flag {
	defaults := ai.DefaultConfig()
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			Aliases: []string{"d"},
			Usage:   "Path to BadgerDB database directory (context is kept in memory when empty)",
			EnvVars: []string{"ROUTERAG_DB"},
		},
		&cli.StringFlag{
			Name:    "ai-host",
			Usage:   "OpenAI-compatible service host URL for all models",
			EnvVars: []string{"ROUTERAG_AI_HOST"},
		},
		&cli.StringFlag{
			Name:    "classifier-host",
			Usage:   "Classifier service host URL (overrides ai-host)",
			EnvVars: []string{"ROUTERAG_CLASSIFIER_HOST"},
		},
		&cli.StringFlag{
			Name:    "embedding-host",
			Usage:   "Embedding service host URL (overrides ai-host)",
			EnvVars: []string{"ROUTERAG_EMBEDDING_HOST"},
		},
		&cli.StringFlag{
			Name:    "generation-host",
			Usage:   "Generation service host URL (overrides ai-host)",
			EnvVars: []string{"ROUTERAG_GENERATION_HOST"},
		},
		&cli.StringFlag{
			Name:    "classifier-model",
			Usage:   "Chat model used to classify queries",
			Value:   defaults.ClassifierModel,
			EnvVars: []string{"ROUTERAG_CLASSIFIER_MODEL"},
		},
		&cli.StringFlag{
			Name:    "embedding-model",
			Usage:   "Embedding model used to compare context",
			Value:   defaults.EmbeddingModel,
			EnvVars: []string{"ROUTERAG_EMBEDDING_MODEL"},
		},
		&cli.StringFlag{
			Name:    "generation-model",
			Usage:   "Chat model used to generate answers",
			Value:   defaults.GenerationModel,
			EnvVars: []string{"ROUTERAG_GENERATION_MODEL"},
		},
		&cli.StringFlag{
			Name:    "api-key",
			Usage:   "API key for the model services",
			EnvVars: []string{"OPENAI_API_KEY"},
		},
		&cli.Float64Flag{
			Name:    "temperature",
			Usage:   "Sampling temperature for answer generation",
			Value:   defaults.Temperature,
			EnvVars: []string{"ROUTERAG_TEMPERATURE"},
		},
		&cli.StringFlag{
			Name:    "es-host",
			Usage:   "Elasticsearch host",
			Value:   "localhost",
			EnvVars: []string{"ELASTICSEARCH_HOST"},
		},
		&cli.IntFlag{
			Name:    "es-port",
			Usage:   "Elasticsearch port",
			Value:   9200,
			EnvVars: []string{"ELASTICSEARCH_PORT"},
		},
		&cli.StringFlag{
			Name:    "es-index",
			Usage:   "Elasticsearch index holding the documents",
			Value:   elastic.DefaultIndex,
			EnvVars: []string{"ROUTERAG_ES_INDEX"},
		},
		&cli.IntFlag{
			Name:    "es-size",
			Usage:   "Maximum number of documents retrieved per query",
			Value:   elastic.DefaultSize,
			EnvVars: []string{"ROUTERAG_ES_SIZE"},
		},
		&cli.StringFlag{
			Name:    "es-username",
			Usage:   "Elasticsearch basic auth user",
			EnvVars: []string{"ELASTICSEARCH_USERNAME"},
		},
		&cli.StringFlag{
			Name:    "es-password",
			Usage:   "Elasticsearch basic auth password",
			EnvVars: []string{"ELASTICSEARCH_PASSWORD"},
		},
		&cli.IntFlag{
			Name:    "es-max-attempts",
			Usage:   "Maximum attempts per search",
			Value:   elastic.DefaultMaxAttempts,
			EnvVars: []string{"ROUTERAG_ES_MAX_ATTEMPTS"},
		},
		&cli.DurationFlag{
			Name:    "es-retry-delay",
			Usage:   "Base delay for exponential backoff between searches",
			Value:   elastic.DefaultRetryDelay,
			EnvVars: []string{"ROUTERAG_ES_RETRY_DELAY"},
		},
		&cli.IntFlag{
			Name:    "context-window",
			Usage:   "Compare only the N most recent context entries (0 = all)",
			EnvVars: []string{"ROUTERAG_CONTEXT_WINDOW"},
		},
		&cli.DurationFlag{
			Name:    "embedding-cache-ttl",
			Usage:   "How long embeddings stay cached (0 disables the cache)",
			Value:   contextstore.DefaultCacheTTL,
			EnvVars: []string{"ROUTERAG_EMBEDDING_CACHE_TTL"},
		},
	}
}

func aiConfigFromFlags(c *cli.Context) *ai.Config {
	opts := []ai.ConfigOption{
		ai.WithClassifierModel(c.String("classifier-model")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		ai.WithGenerationModel(c.String("generation-model")),
		ai.WithTemperature(c.Float64("temperature")),
	}
	if host := c.String("ai-host"); host != "" {
		opts = append(opts, ai.WithHost(host))
	}
	if host := c.String("classifier-host"); host != "" {
		opts = append(opts, ai.WithClassifierHost(host))
	}
	if host := c.String("embedding-host"); host != "" {
		opts = append(opts, ai.WithEmbeddingHost(host))
	}
	if host := c.String("generation-host"); host != "" {
		opts = append(opts, ai.WithGenerationHost(host))
	}
	if key := c.String("api-key"); key != "" {
		opts = append(opts, ai.WithAPIToken(key))
	}
	return ai.NewConfig(opts...)
}

func elasticConfigFromFlags(c *cli.Context) *elastic.Config {
	return &elastic.Config{
		Addresses:   []string{elastic.AddressFromHostPort(c.String("es-host"), c.Int("es-port"))},
		Index:       c.String("es-index"),
		Size:        c.Int("es-size"),
		Username:    c.String("es-username"),
		Password:    c.String("es-password"),
		MaxAttempts: c.Int("es-max-attempts"),
		RetryDelay:  c.Duration("es-retry-delay"),
	}
}

func contextOptionsFromFlags(c *cli.Context) []contextstore.Option {
	return []contextstore.Option{
		contextstore.WithWindow(c.Int("context-window")),
		contextstore.WithCacheTTL(c.Duration("embedding-cache-ttl")),
	}
}

// buildEngine validates every setting before any query runs.
func buildEngine(c *cli.Context) (*routerag.Engine, error) {
	aiConfig := aiConfigFromFlags(c)
	if err := aiConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid AI configuration: %w", err)
	}
	esConfig := elasticConfigFromFlags(c)
	if err := esConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid Elasticsearch configuration: %w", err)
	}

	engine, err := routerag.NewEngine(
		routerag.WithStoragePath(c.String("db")),
		routerag.WithAIConfig(aiConfig),
		routerag.WithElasticConfig(esConfig),
		routerag.WithContextOptions(contextOptionsFromFlags(c)...),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to open engine: %w", err)
	}
	return engine, nil
}
