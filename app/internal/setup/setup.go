package setup

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"golang.org/x/xerrors"

	"github.com/x-xyz/escrow/base/ctx"
	"github.com/x-xyz/escrow/base/database/mongoclient"
	"github.com/x-xyz/escrow/base/database/redisclient"
	"github.com/x-xyz/escrow/base/env"
	"github.com/x-xyz/escrow/base/log"
	"github.com/x-xyz/escrow/base/metrics"
	"github.com/x-xyz/escrow/domain"
	"github.com/x-xyz/escrow/domain/fee"
	"github.com/x-xyz/escrow/domain/keys"
	"github.com/x-xyz/escrow/domain/listing"
	"github.com/x-xyz/escrow/service/cache"
	"github.com/x-xyz/escrow/service/cache/provider"
	"github.com/x-xyz/escrow/service/cache/provider/primitive"
	redis_provider "github.com/x-xyz/escrow/service/cache/provider/redis"
	"github.com/x-xyz/escrow/service/memtx"
	"github.com/x-xyz/escrow/service/notifier"
	"github.com/x-xyz/escrow/service/payment"
	"github.com/x-xyz/escrow/service/query"
	"github.com/x-xyz/escrow/service/redis"
	"github.com/x-xyz/escrow/service/registry"
	auth_usecase "github.com/x-xyz/escrow/stores/auth/usecase"
	event_repository "github.com/x-xyz/escrow/stores/event/repository"
	event_usecase "github.com/x-xyz/escrow/stores/event/usecase"
	fee_repository "github.com/x-xyz/escrow/stores/fee/repository"
	fee_usecase "github.com/x-xyz/escrow/stores/fee/usecase"
	listing_locker "github.com/x-xyz/escrow/stores/listing/locker"
	listing_repository "github.com/x-xyz/escrow/stores/listing/repository"
	listing_usecase "github.com/x-xyz/escrow/stores/listing/usecase"
	reconciliation_repository "github.com/x-xyz/escrow/stores/reconciliation/repository"
	reconciliation_usecase "github.com/x-xyz/escrow/stores/reconciliation/usecase"
)

const (
	DriverMongo  = "mongo"
	DriverMemory = "memory"
)

// LoadConfig reads .env, then the yaml file named by --config. Env vars such as
// MONGO_URI override the matching yaml key
func LoadConfig(args []string) error {
	if err := godotenv.Load(".env"); err != nil && !os.IsNotExist(err) {
		return xerrors.Errorf("failed to load .env: %w", err)
	}

	flags := pflag.NewFlagSet("config", pflag.ContinueOnError)
	flags.ParseErrorsWhitelist.UnknownFlags = true
	configFile := flags.String("config", env.ConfigFile(), "path of the yaml config")
	if err := flags.Parse(args); err != nil {
		return xerrors.Errorf("failed to parse flags: %w", err)
	}

	viper.SetConfigType("yaml")
	viper.SetConfigFile(*configFile)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	if err := viper.ReadInConfig(); err != nil {
		return xerrors.Errorf("failed to read config %s: %w", *configFile, err)
	}

	if viper.GetBool(`debug`) {
		log.Log().Info("Service RUN on DEBUG mode")
	}
	return nil
}

// Stores is everything a binary needs to serve the marketplace
type Stores struct {
	MongoClient *mongoclient.Client
	RedisCache  redis.Service

	Authorizer      domain.Authorizer
	Admins          []domain.Address
	FeeRecipient    domain.Address
	Auth            domain.AuthUsecase
	Fee             fee.UseCase
	Events          listing.EventUseCase
	Reconciliations listing.ReconciliationUseCase
	Listings        listing.UseCase
}

type backend struct {
	tx                 domain.Transactor
	locker             listing.Locker
	listingRepo        listing.Repo
	eventRepo          listing.EventRepo
	reconciliationRepo listing.ReconciliationRepo
	feeRepo            fee.Repo
	// shared by every instance on the mongo driver
	feeCache provider.Provider
}

func connectMongo(c ctx.Ctx, s *Stores, b *backend) error {
	c.Info("init mongo")
	uri := viper.GetString("mongo.uri")
	authDBName := viper.GetString("mongo.authDBName")
	dbName := viper.GetString("mongo.dbName")
	enableSSL := viper.GetBool("mongo.enableSSL")
	checkIndex := viper.GetBool("mongo.checkIndex")
	s.MongoClient = mongoclient.MustConnectMongoClient(uri, authDBName, dbName, enableSSL, true, 2)
	q := query.New(s.MongoClient, checkIndex)

	if err := listing_repository.EnsureIndexes(c, q); err != nil {
		return err
	}
	if err := event_repository.EnsureIndexes(c, q); err != nil {
		return err
	}
	if err := reconciliation_repository.EnsureIndexes(c, q); err != nil {
		return err
	}

	c.Info("init redis")
	redisName := viper.GetString("redis.name")
	redisPool := redisclient.MustConnectRedis(viper.GetString("redis.uri"), viper.GetString("redis.password"), redisclient.RedisParam{
		PoolMultiplier: viper.GetFloat64("redis.poolMultiplier"),
		Retry:          true,
	})
	s.RedisCache = redis.New(redisName, metrics.New(redisName), &redis.Pools{
		Src: redisPool,
	})

	b.tx = q
	b.locker = listing_locker.NewRedis(s.RedisCache, viper.GetDuration("listing.lockTtl"))
	b.listingRepo = listing_repository.New(q)
	b.eventRepo = event_repository.New(q)
	b.reconciliationRepo = reconciliation_repository.New(q)
	b.feeRepo = fee_repository.New(q)
	b.feeCache = redis_provider.NewRedis(s.RedisCache)
	return nil
}

func useMemory(c ctx.Ctx, b *backend) {
	c.Warn("using in-memory stores, nothing survives a restart")
	b.tx = memtx.New()
	b.locker = listing_locker.NewMemory()
	b.listingRepo = listing_repository.NewMemory()
	b.eventRepo = event_repository.NewMemory()
	b.reconciliationRepo = reconciliation_repository.NewMemory()
	b.feeRepo = fee_repository.NewMemory()
	b.feeCache = primitive.NewPrimitive(keys.PfxFeeRate, 1)
}

func collaborators(c ctx.Ctx) (domain.CustodyService, domain.FundService) {
	registryUrl := viper.GetString("registry.baseUrl")
	paymentUrl := viper.GetString("payment.baseUrl")
	if registryUrl == "" || paymentUrl == "" {
		c.Warn("registry or payment url is empty, using in-memory collaborators")
		return registry.NewMemory(), payment.NewMemory()
	}

	timeout := viper.GetDuration("http.timeout")
	retryMax := viper.GetInt("http.retryMax")
	custody := registry.NewClient(&registry.ClientCfg{
		BaseUrl:  registryUrl,
		Apikey:   viper.GetString("registry.apikey"),
		Timeout:  timeout,
		RetryMax: retryMax,
	})
	fund := payment.NewClient(&payment.ClientCfg{
		BaseUrl:  paymentUrl,
		Apikey:   viper.GetString("payment.apikey"),
		Timeout:  timeout,
		RetryMax: retryMax,
	})
	return custody, fund
}

func notifiers(c ctx.Ctx) ([]listing.Subscriber, listing.Alerter, error) {
	subscribers := []listing.Subscriber{notifier.NewMetricsSubscriber()}
	alerters := []listing.Alerter{notifier.NewLogAlerter()}

	botKey := viper.GetString("discord.botKey")
	if botKey == "" {
		c.Info("discord.botKey is empty, discord notifications disabled")
		return subscribers, notifier.Multi(alerters...), nil
	}
	discord, err := notifier.NewDiscord(notifier.Config{
		DiscordBotKey:  botKey,
		SalesChannelId: viper.GetString("discord.salesChannelId"),
		AlertChannelId: viper.GetString("discord.alertChannelId"),
		AssetUrl:       viper.GetString("discord.assetUrl"),
	})
	if err != nil {
		return nil, nil, xerrors.Errorf("failed to init discord: %w", err)
	}
	return append(subscribers, discord), notifier.Multi(append(alerters, discord)...), nil
}

func admins() ([]domain.Address, domain.Address) {
	res := []domain.Address{}
	for _, a := range viper.GetStringSlice("admin.addresses") {
		res = append(res, domain.Address(a).ToLower())
	}
	recipient := domain.Address(viper.GetString("admin.feeRecipient")).ToLower()
	if recipient == "" && len(res) > 0 {
		recipient = res[0]
	}
	return res, recipient
}

// New builds every usecase from the loaded config, store.driver picks mongo or memory
func New(c ctx.Ctx) (*Stores, error) {
	s := &Stores{}
	b := &backend{}

	switch driver := viper.GetString("store.driver"); driver {
	case DriverMongo, "":
		if err := connectMongo(c, s, b); err != nil {
			return nil, err
		}
	case DriverMemory:
		useMemory(c, b)
	default:
		return nil, xerrors.Errorf("unknown store.driver %s: %w", driver, domain.ErrInvalidConfiguration)
	}

	custody, fund := collaborators(c)
	subscribers, alerter, err := notifiers(c)
	if err != nil {
		return nil, err
	}

	marketplace := domain.Address(viper.GetString("marketplace.address")).ToLower()
	if marketplace == "" {
		return nil, xerrors.Errorf("marketplace.address is empty: %w", domain.ErrInvalidConfiguration)
	}

	s.Admins, s.FeeRecipient = admins()
	s.Authorizer = auth_usecase.NewAdminAuthorizer(s.Admins)

	defaultRate := fee.Rate(viper.GetInt64("fee.defaultRate"))
	if err := defaultRate.Validate(); err != nil {
		return nil, xerrors.Errorf("fee.defaultRate %d: %w", defaultRate, err)
	}
	s.Fee = fee_usecase.New(&fee_usecase.FeeUseCaseCfg{
		Repo:       b.feeRepo,
		Authorizer: s.Authorizer,
		Cache: cache.New(cache.ServiceConfig{
			Ttl:   viper.GetDuration("fee.cacheTtl"),
			Pfx:   keys.PfxFeeRate,
			Cache: b.feeCache,
		}),
		DefaultRate: defaultRate,
		Recipient:   s.FeeRecipient,
	})

	s.Events = event_usecase.New(&event_usecase.EventUseCaseCfg{
		Repo:            b.eventRepo,
		Workers:         viper.GetInt("events.workers"),
		ScheduleTimeout: viper.GetDuration("events.scheduleTimeout"),
	})
	for _, sub := range subscribers {
		s.Events.Subscribe(sub)
	}

	s.Reconciliations = reconciliation_usecase.New(&reconciliation_usecase.ReconciliationUseCaseCfg{
		Repo:        b.reconciliationRepo,
		Locker:      b.locker,
		Authorizer:  s.Authorizer,
		Custody:     custody,
		Fund:        fund,
		Marketplace: marketplace,
	})

	s.Listings = listing_usecase.New(&listing_usecase.ListingUseCaseCfg{
		Repo:            b.listingRepo,
		Locker:          b.locker,
		Transactor:      b.tx,
		Custody:         custody,
		Fund:            fund,
		Fee:             s.Fee,
		Events:          s.Events,
		Reconciliations: s.Reconciliations,
		Alerter:         alerter,
		Marketplace:     marketplace,
	})

	s.Auth = auth_usecase.New(&auth_usecase.AuthUsecaseCfg{
		JwtSecret:          viper.GetString("auth.jwtSecret"),
		SigningMsgTemplate: viper.GetString("auth.signatureMsg"),
		TokenTtl:           viper.GetDuration("auth.tokenTtl"),
		SignatureTtl:       viper.GetDuration("auth.signatureTtl"),
	})

	return s, nil
}

// Close drains pending deliveries, flushes metrics and disconnects mongo
func (s *Stores) Close(c ctx.Ctx) {
	s.Events.Close()
	metrics.Flush()
	if s.MongoClient != nil {
		if err := s.MongoClient.Disconnect(c); err != nil {
			c.WithField("err", err).Error("mongo disconnect failed")
		}
	}
}
