package appcontext

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/RoyceAzure/lab/pos/internal/config"
	"github.com/RoyceAzure/lab/pos/internal/constants"
	"github.com/RoyceAzure/lab/pos/internal/infra/producer"
	"github.com/RoyceAzure/lab/pos/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/pos/internal/infra/repository/redis_repo"
	"github.com/RoyceAzure/lab/pos/internal/service"
	"github.com/RoyceAzure/lab/pos/internal/token"
	"github.com/RoyceAzure/lab/pos/internal/util"
	"github.com/RoyceAzure/lab/pos/internal/worker"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

type ApplicationContext struct {
	Logger             *zerolog.Logger
	DbConn             *pgxpool.Pool
	DbDao              db.IStore
	RedisClient        *redis.Client
	Cf                 *config.Config
	TokenMaker         token.Maker
	OrderEventProducer *producer.OrderEventProducer
	CatalogService     service.ICatalogService
	InventoryService   service.IInventoryService
	OrderService       service.IOrderService
	AuthService        service.IAuthService
	RestockWorker      *worker.RestockWorker
}

func NewApplicationContext(cf *config.Config) (*ApplicationContext, error) {
	app := ApplicationContext{
		Cf: cf,
	}
	err := app.Init()

	if err != nil {
		return nil, err
	}

	return &app, nil
}

func (app *ApplicationContext) Init() error {
	app.setUpLogger()

	err := app.setUpdbConn()
	if err != nil {
		return err
	}
	err = app.setUpdbDao()
	if err != nil {
		return err
	}

	err = app.dbInit()
	if err != nil {
		return err
	}

	err = app.setUpRedis()
	if err != nil {
		return err
	}

	err = app.setUpProducer()
	if err != nil {
		return err
	}

	err = app.setTokenMaker()
	if err != nil {
		return err
	}

	err = app.setUpServices()
	if err != nil {
		return err
	}

	err = app.setUpRestockWorker()
	if err != nil {
		return err
	}

	return nil
}

func (app *ApplicationContext) setUpLogger() {
	logger := zerolog.New(os.Stdout).With().
		Timestamp().
		Str("module", app.Cf.ModulerName).
		Logger()
	app.Logger = &logger
}

func (app *ApplicationContext) setUpdbConn() error {
	log.Printf("Start setup database connection")
	conn, err := pgxpool.New(context.Background(),
		fmt.Sprintf("postgresql://%s:%s@%s:%s/%s", app.Cf.DbUser, app.Cf.DbPas, app.Cf.DbHost, app.Cf.DbPort, app.Cf.DbName))
	if err != nil {
		return err
	}
	app.DbConn = conn
	log.Printf("Finish setup database connection")
	return nil
}

func (app *ApplicationContext) setUpdbDao() error {
	log.Printf("Start setup database DAO")
	app.DbDao = db.NewStore(app.DbConn)
	log.Printf("Finish setup database DAO")
	return nil
}

func (app *ApplicationContext) setUpRedis() error {
	//redis未設定時不啟用快取
	if app.Cf.RedisAddr == "" {
		log.Printf("Redis address not set, product cache disabled")
		return nil
	}

	log.Printf("Start setup redis client")
	client := redis.NewClient(&redis.Options{
		Addr: app.Cf.RedisAddr,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	app.RedisClient = client
	log.Printf("Finish setup redis client")
	return nil
}

func (app *ApplicationContext) setUpProducer() error {
	//kafka未設定時不發佈事件
	brokers := app.Cf.KafkaBrokerList()
	if len(brokers) == 0 {
		log.Printf("Kafka brokers not set, order events disabled")
		return nil
	}

	log.Printf("Start setup order event producer")
	topic := app.Cf.KafkaOrderTopic
	if topic == "" {
		topic = "pos.order.events"
	}
	app.OrderEventProducer = producer.NewOrderEventProducer(brokers, topic, app.Logger)
	log.Printf("Finish setup order event producer")
	return nil
}

func (app *ApplicationContext) setTokenMaker() error {
	log.Printf("Start setup token maker")

	tokenMaker, err := token.NewJWTMaker(app.Cf.AuthTokenKey)
	if err != nil {
		return fmt.Errorf("無法創建 token maker: %w", err)
	}

	app.TokenMaker = tokenMaker
	log.Printf("Finish setup token maker")
	return nil
}

func (app *ApplicationContext) setUpServices() error {
	log.Printf("Start setup services")

	taxRateStr := app.Cf.TaxRate
	if taxRateStr == "" {
		taxRateStr = constants.DefaultTaxRate
	}
	taxRate, err := decimal.NewFromString(taxRateStr)
	if err != nil {
		return fmt.Errorf("invalid tax rate %q: %w", taxRateStr, err)
	}

	var productCache redis_repo.IProductCacheRepository
	if app.RedisClient != nil {
		productCache = redis_repo.NewProductCacheRepo(app.RedisClient)
	}

	var eventProducer producer.IOrderEventProducer
	if app.OrderEventProducer != nil {
		eventProducer = app.OrderEventProducer
	}

	app.CatalogService = service.NewCatalogService(app.DbDao, productCache, app.Logger)
	app.InventoryService = service.NewInventoryService(app.DbDao)
	app.OrderService = service.NewOrderService(
		app.DbDao,
		app.CatalogService,
		app.InventoryService,
		service.NewPricingCalculator(taxRate),
		eventProducer,
		app.Logger,
	)
	app.AuthService = service.NewAuthService(app.DbDao, app.TokenMaker)

	log.Printf("Finish setup services")
	return nil
}

func (app *ApplicationContext) setUpRestockWorker() error {
	log.Printf("Start setup restock worker")
	app.RestockWorker = worker.NewRestockWorker(
		app.DbDao,
		app.Logger,
		time.Duration(app.Cf.RestockIntervalSec)*time.Second,
		int32(app.Cf.RestockMaxAttempts),
	)
	log.Printf("Finish setup restock worker")
	return nil
}

func (app *ApplicationContext) Shutdown(ctx context.Context) error {
	log.Printf("Start application shutdown")

	done := make(chan error)
	go func() {
		defer close(done)

		if app.RestockWorker != nil {
			log.Printf("Stopping restock worker...")
			if err := app.RestockWorker.Stop(ctx); err != nil {
				//有錯誤不結束流程
				log.Printf("restock worker shutdown error: %v", err)
			}
		}

		if app.OrderEventProducer != nil {
			log.Printf("Closing order event producer...")
			if err := app.OrderEventProducer.Close(); err != nil {
				log.Printf("order event producer close error: %v", err)
			}
		}

		if app.RedisClient != nil {
			log.Printf("Closing redis client...")
			if err := app.RedisClient.Close(); err != nil {
				log.Printf("redis client close error: %v", err)
			}
		}

		// 關閉 DB
		if app.DbConn != nil {
			log.Printf("Closing database connection...")
			app.DbConn.Close()
		}

		log.Printf("Application shutdown complete")
		done <- nil
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return fmt.Errorf("shutdown timeout: %v", ctx.Err())
	}
}

func runDBMigration(migrationURL string, dbSource string) error {
	migrateion, err := migrate.New(migrationURL, dbSource)
	if err != nil {
		return err
	}

	return migrateion.Up()
}

// db migration
func (app *ApplicationContext) dbInit() error {
	log.Printf("Start setup db init")

	migrateDir := util.WindwosPathToURL(filepath.Join(util.GetProjectRoot("github.com/RoyceAzure/lab/pos"), "internal/infra/repository/db/migrations"))
	err := runDBMigration(
		fmt.Sprintf("file://%s", migrateDir),
		fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", app.Cf.DbUser, app.Cf.DbPas, app.Cf.DbHost, app.Cf.DbPort, app.Cf.DbName),
	)

	if err != nil && err != migrate.ErrNoChange {
		return err
	}

	log.Printf("Finish setup db init")
	return nil
}
