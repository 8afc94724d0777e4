package main

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/KarthickAravind/AI-procurement-assistant-sub000/agent/agents/router"
	backofficex "github.com/KarthickAravind/AI-procurement-assistant-sub000/agent/backoffice"
	contractx "github.com/KarthickAravind/AI-procurement-assistant-sub000/agent/contract"
	credentialx "github.com/KarthickAravind/AI-procurement-assistant-sub000/agent/credential"
	intentx "github.com/KarthickAravind/AI-procurement-assistant-sub000/agent/intent"
	quotex "github.com/KarthickAravind/AI-procurement-assistant-sub000/agent/quote"
	respondx "github.com/KarthickAravind/AI-procurement-assistant-sub000/agent/respond"
	statex "github.com/KarthickAravind/AI-procurement-assistant-sub000/agent/state"
	configx "github.com/KarthickAravind/AI-procurement-assistant-sub000/pkg/config"
	geminix "github.com/KarthickAravind/AI-procurement-assistant-sub000/pkg/gemini"
	logx "github.com/KarthickAravind/AI-procurement-assistant-sub000/pkg/logger"
	openrouterx "github.com/KarthickAravind/AI-procurement-assistant-sub000/pkg/openrouter"
	serverx "github.com/KarthickAravind/AI-procurement-assistant-sub000/server"
)

type AppConfig struct {
	ListenAddr      string        `envconfig:"LISTEN_ADDR" split_words:"true" default:":8080"`
	CredCooldown    time.Duration `envconfig:"CRED_COOLDOWN" split_words:"true" default:"24h"`
	GenerateTimeout time.Duration `envconfig:"GENERATE_TIMEOUT" split_words:"true" default:"30s"`
}

func main() {
	logx.Init(*configx.MustLoad[logx.Config]("LOG"))

	appCfg := configx.MustLoad[AppConfig]("APP")

	openRouterCfg := configx.MustLoad[openrouterx.Config]("OPENROUTER")
	primary, err := openrouterx.NewClient(*openRouterCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize openrouter client")
	}

	creds, err := credentialx.NewManager(openRouterCfg.APIKeys,
		credentialx.WithCooldown(appCfg.CredCooldown))
	if err != nil {
		log.Fatal().Err(err).Msg("initialize credential manager")
	}

	ctx := context.Background()

	// The secondary provider is optional; without an API key the generator
	// falls straight through to the template tier when the primary fails.
	var secondary contractx.SecondaryProvider
	geminiCfg := configx.MustLoad[geminix.Config]("GEMINI")
	if strings.TrimSpace(geminiCfg.APIKey) != "" {
		geminiClient, gerr := geminix.New(ctx, *geminiCfg)
		if gerr != nil {
			log.Fatal().Err(gerr).Msg("initialize gemini client")
		}
		secondary = geminiClient
	} else {
		log.Info().Msg("no gemini api key configured, secondary provider disabled")
	}

	var store statex.Store
	redisCfg := configx.MustLoad[statex.RedisConfig]("REDIS")
	if strings.TrimSpace(redisCfg.Addr) != "" {
		redisStore, rerr := statex.NewRedisStore(*redisCfg)
		if rerr != nil {
			log.Fatal().Err(rerr).Msg("initialize redis session store")
		}
		if rerr := redisStore.Ping(ctx); rerr != nil {
			log.Fatal().Err(rerr).Msg("redis unreachable")
		}
		store = redisStore
		log.Info().Str("addr", redisCfg.Addr).Msg("using redis session store")
	} else {
		store = statex.NewMemoryStore()
		log.Info().Msg("using in-memory session store")
	}

	suppliers := backofficex.SeedSuppliers()
	directory := backofficex.NewDirectory(suppliers...)
	inventory := backofficex.NewInventory()
	orders := backofficex.NewOrders(inventory)
	semantic := backofficex.NewSemanticIndex()
	semantic.IndexSuppliers(suppliers)

	engine, err := quotex.NewEngine(directory, quotex.DefaultConfig())
	if err != nil {
		log.Fatal().Err(err).Msg("initialize quote engine")
	}

	generator := respondx.NewGenerator(primary, secondary, creds,
		respondx.WithTimeout(appCfg.GenerateTimeout))

	rt, err := router.New(store, intentx.NewClassifier(), engine, generator, router.Collaborators{
		Directory: directory,
		Inventory: inventory,
		Orders:    orders,
		Semantic:  semantic,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("initialize message router")
	}

	e := serverx.New(rt, store)
	log.Info().Str("addr", appCfg.ListenAddr).Msg("starting procurement agent")
	if err := e.Start(appCfg.ListenAddr); err != nil {
		log.Fatal().Err(err).Msg("http server stopped")
	}
}
