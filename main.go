package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	goredis "github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"

	"github.com/ruralplus/companion-api/alert"
	"github.com/ruralplus/companion-api/api"
	"github.com/ruralplus/companion-api/background"
	"github.com/ruralplus/companion-api/external/backend"
	"github.com/ruralplus/companion-api/store"
)

var (
	server      *api.Server
	redisClient *goredis.Client
)

func initLog() {
	logLevel, err := log.ParseLevel(viper.GetString("log.level"))
	if err != nil {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(logLevel)
	}

	log.SetOutput(os.Stdout)

	log.SetFormatter(&prefixed.TextFormatter{
		ForceFormatting: true,
		FullTimestamp:   true,
	})
}

func loadConfig(file string) {
	// Config from file
	viper.SetConfigType("yaml")
	if file != "" {
		viper.SetConfigFile(file)
	}

	viper.AddConfigPath("/.config/")
	viper.AddConfigPath(".")
	err := viper.ReadInConfig()
	if err != nil {
		fmt.Println("No config file. Read config from env.")
		viper.AllowEmptyEnv(false)
	}

	// Config from env if possible
	viper.AutomaticEnv()
	viper.SetEnvPrefix("companion")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
}

func main() {
	var configFile string

	initialCtx, cancelInitialization := context.WithCancel(context.Background())
	pollCtx, cancelPolling := context.WithCancel(context.Background())

	c := make(chan os.Signal, 2)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Info("Server is preparing to shutdown")

		if initialCtx != nil && cancelInitialization != nil {
			log.Info("Cancelling initialization")
			cancelInitialization()
			<-initialCtx.Done()
		}

		cancelPolling()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if server != nil {
			log.Info("Shutdown companion api server")
			if err := server.Shutdown(ctx); err != nil {
				log.Error("Server Shutdown:", err)
			}
		}

		if redisClient != nil {
			log.Info("Shutting down redis client")
			if err := redisClient.Close(); err != nil {
				log.Error(err)
			}
		}

		os.Exit(1)
	}()

	flag.StringVar(&configFile, "c", "./config.yaml", "[optional] path of configuration file")
	flag.Parse()

	loadConfig(configFile)

	initLog()

	// Sentry
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:              viper.GetString("sentry.dsn"),
		AttachStacktrace: true,
		Environment:      viper.GetString("sentry.environment"),
		Dist:             viper.GetString("sentry.dist"),
	}); err != nil {
		log.Error(err)
	}
	log.WithField("prefix", "init").Info("Initialized sentry")

	// Backend client and session
	client, err := backend.New(
		viper.GetString("backend.endpoint"),
		viper.GetDuration("backend.timeout"))
	if err != nil {
		log.Panic(err)
	}
	session := backend.NewSession(client)
	log.WithField("prefix", "init").Info("Initialized backend client: ", viper.GetString("backend.endpoint"))

	// Offline cache store, redis when configured
	var cacheStore store.Store
	if conn := viper.GetString("redis.conn"); conn != "" {
		opts, err := goredis.ParseURL(conn)
		if err != nil {
			log.Panic(err)
		}
		redisClient = goredis.NewClient(opts)
		cacheStore = store.NewRedisStore(redisClient)
		log.WithField("prefix", "init").Info("Initialized redis cache store")
	} else {
		cacheStore = store.NewMemoryStore()
		log.WithField("prefix", "init").Info("No redis configured, using in-memory cache store")
	}

	manager := store.NewManager(cacheStore, client, client)
	if err := manager.Initialize(initialCtx); err != nil {
		log.WithError(err).Error("plus code cache initialization failed")
	}

	// Engines
	engine := alert.NewEngine()
	weather := alert.NewWeatherMonitor(client)
	drafts := store.NewPropertyStore()

	// Occurrence poller
	poller := background.NewOccurrencePoller(client, engine)
	go poller.Run(pollCtx)
	log.WithField("prefix", "init").Info("Started occurrence poller")

	// Init http server
	server = api.NewServer(
		client,
		session,
		engine,
		weather,
		manager,
		drafts)
	log.WithField("prefix", "init").Info("Initialized http server")

	// Remove initial context
	initialCtx = nil
	cancelInitialization = nil

	log.Fatal(server.Run(":" + viper.GetString("server.port")))
}
