package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/beka-birhanu/minesweeper-api/api"
	gameapi "github.com/beka-birhanu/minesweeper-api/api/game"
	api_i "github.com/beka-birhanu/minesweeper-api/api/i"
	"github.com/beka-birhanu/minesweeper-api/api/identity"
	"github.com/beka-birhanu/minesweeper-api/config"
	"github.com/beka-birhanu/minesweeper-api/infrastruture/broadcast"
	"github.com/beka-birhanu/minesweeper-api/infrastruture/lock"
	logger "github.com/beka-birhanu/minesweeper-api/infrastruture/log"
	"github.com/beka-birhanu/minesweeper-api/infrastruture/repo"
	"github.com/beka-birhanu/minesweeper-api/infrastruture/sortedstorage"
	"github.com/beka-birhanu/minesweeper-api/infrastruture/token"
	"github.com/beka-birhanu/minesweeper-api/service"
	"github.com/beka-birhanu/minesweeper-api/service/i"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Global variables for dependencies
var (
	mongoClient    *mongo.Client
	redisClient    *redis.Client
	sqliteRepo     *repo.SQLiteGameRepo
	userRepo       i.UserRepo
	gameRepo       i.GameRepo
	gameLocker     i.Locker
	eventPublisher i.EventPublisher
	leaderboard    i.Leaderboard
	gameService    i.GameService
	gameController api_i.Controller
	jwtTokenizer   i.Tokenizer
	authService    i.Authenticator
	authController api_i.Controller
	router         *api.Router
	appLogger      *logger.Logger
)

func newLogger(prefix, color string) *logger.Logger {
	l, err := logger.New(prefix, color, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "creating %s logger: %v\n", prefix, err)
		os.Exit(1)
	}
	if config.Envs.GinMode == gin.DebugMode {
		_ = l.SetLevel("debug")
	}
	return l
}

func initMongo(ctx context.Context) {
	uri := fmt.Sprintf("mongodb://%s:%s@%s:%v", config.Envs.DBUser, config.Envs.DBPassword, config.Envs.DBHost, config.Envs.DBPort)

	clientOptions := options.Client().ApplyURI(uri)
	var err error
	mongoClient, err = mongo.Connect(ctx, clientOptions)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Failed to connect to MongoDB: %v", err))
		os.Exit(1)
	}
	if err = mongoClient.Ping(ctx, nil); err != nil {
		appLogger.Error(fmt.Sprintf("MongoDB ping failed: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Connected to MongoDB")
}

func initRedis(ctx context.Context) {
	redisClient = redis.NewClient(&redis.Options{
		Addr:     config.Envs.RedisAddr,
		Password: config.Envs.RedisPassword,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		appLogger.Error(fmt.Sprintf("Redis ping failed: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Connected to Redis")
}

func initUserRepo(ctx context.Context, client *mongo.Client) {
	r := repo.NewUserRepo(client, config.Envs.DBName, "users")
	if err := r.EnsureIndexes(ctx); err != nil {
		appLogger.Error(fmt.Sprintf("Creating user indexes: %v", err))
		os.Exit(1)
	}
	userRepo = r
	appLogger.Info("User repository initialized")
}

func initGameRepo(ctx context.Context, client *mongo.Client) {
	switch config.Envs.GameStore {
	case config.GameStoreSQLite:
		var err error
		sqliteRepo, err = repo.NewSQLiteGameRepo(config.Envs.SQLiteDir)
		if err != nil {
			appLogger.Error(fmt.Sprintf("Opening SQLite game store: %v", err))
			os.Exit(1)
		}
		gameRepo = sqliteRepo
	default:
		r := repo.NewGameRepo(client, config.Envs.DBName, "games")
		if err := r.EnsureIndexes(ctx); err != nil {
			appLogger.Error(fmt.Sprintf("Creating game indexes: %v", err))
			os.Exit(1)
		}
		gameRepo = r
	}
	appLogger.Info(fmt.Sprintf("Game repository initialized (%s)", config.Envs.GameStore))
}

func initRedisServices() {
	gameLocker = lock.NewRedisLocker(redisClient, config.Envs.LockTTLSeconds)
	eventPublisher = broadcast.NewRedisPublisher(redisClient)
	leaderboard = sortedstorage.NewRedisLeaderboard(redisClient, int64(config.Envs.LeaderboardSize))
	appLogger.Info("Locker, event publisher and leaderboard initialized")
}

func initGameService() {
	var err error
	gameService, err = service.NewGameService(&service.GameServiceConfig{
		Games:       gameRepo,
		Locker:      gameLocker,
		Publisher:   eventPublisher,
		Leaderboard: leaderboard,
		Logger:      newLogger("GAME", config.ColorCyan),
	})
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating game service: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Game service initialized")
}

func initGameController() {
	var err error
	gameController, err = gameapi.NewGameController(gameService)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating game controller: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Game controller initialized")
}

func initJWTTokenizer() {
	jwtTokenizer = token.NewJwtService(config.Envs.JWTSecret, config.Envs.JWTIssuer)
	appLogger.Info("JWT Tokenizer initialized")
}

func initAuthService() {
	var err error
	authService, err = service.NewAuthService(userRepo, jwtTokenizer, newLogger("AUTH", config.ColorPurple))
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating auth service: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Auth service initialized")
}

func initAuthController() {
	authController = identity.NewIdentityServer(authService)
	appLogger.Info("Auth controller initialized")
}

func initRouter(t i.Tokenizer) {
	router = api.NewRouter(api.Config{
		Addr:                    fmt.Sprintf("%s:%v", config.Envs.HostIP, config.Envs.RESTPort),
		BaseURL:                 "/api",
		Mode:                    config.Envs.GinMode,
		Controllers:             []api_i.Controller{authController, gameController},
		AuthorizationMiddleware: identity.Authoriz(t),
	})
	appLogger.Info("Router initialized")
}

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel() // Ensure the context is always canceled

	// Initialize dependencies
	appLogger = newLogger("APP", config.ColorGreen)

	initMongo(ctx)
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()

	initRedis(ctx)
	defer redisClient.Close()

	initUserRepo(ctx, mongoClient)
	initGameRepo(ctx, mongoClient)
	if sqliteRepo != nil {
		defer sqliteRepo.Close()
	}

	initRedisServices()
	initGameService()
	initGameController()
	initJWTTokenizer()
	initAuthService()
	initAuthController()
	initRouter(jwtTokenizer)

	// Run HTTP server
	if err := router.Run(); err != nil {
		appLogger.Error(fmt.Sprintf("Starting server: %v", err))
		os.Exit(1)
	}
}
