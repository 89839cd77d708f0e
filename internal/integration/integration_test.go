package integration

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"quiz-rooms-service/internal/app"
	"quiz-rooms-service/internal/domain"
	mongodir "quiz-rooms-service/internal/infra/mongo"
	pgloader "quiz-rooms-service/internal/infra/postgres"
	pgmigrations "quiz-rooms-service/internal/infra/postgres/migrations"
	infraredis "quiz-rooms-service/internal/infra/redis"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []app.Event
}

func (p *recordingPublisher) Broadcast(e app.Event)        { p.record(e) }
func (p *recordingPublisher) ToRoom(_ string, e app.Event) { p.record(e) }
func (p *recordingPublisher) ToConn(_ string, e app.Event) { p.record(e) }
func (p *recordingPublisher) Join(connID, roomID string)   {}
func (p *recordingPublisher) Leave(connID, roomID string)  {}

func (p *recordingPublisher) record(e app.Event) {
	p.mu.Lock()
	p.events = append(p.events, e)
	p.mu.Unlock()
}

func (p *recordingPublisher) last(t *testing.T, eventType string) app.Event {
	t.Helper()
	p.mu.Lock()
	defer p.mu.Unlock()
	for i := len(p.events) - 1; i >= 0; i-- {
		if p.events[i].Type == eventType {
			return p.events[i]
		}
	}
	t.Fatalf("no %s event published", eventType)
	return app.Event{}
}

func TestGameFlowEndToEnd(t *testing.T) {
	ctx := context.Background()
	requireDocker(t)

	pgURL, pgCleanup := startPostgres(t, ctx)
	defer pgCleanup()
	redisURL, redisCleanup := startRedis(t, ctx)
	defer redisCleanup()
	mongoURL, mongoCleanup := startMongo(t, ctx)
	defer mongoCleanup()

	seedQuestions(t, ctx, pgURL, sampleBank())

	pool, err := pgxpool.Connect(ctx, pgURL)
	if err != nil {
		t.Fatalf("connect pg: %v", err)
	}
	defer pool.Close()

	redisClient, err := redisClientFromURL(redisURL)
	if err != nil {
		t.Fatalf("redis client: %v", err)
	}
	defer redisClient.Close()

	mongoClient, err := mongodriver.Connect(ctx, options.Client().ApplyURI(mongoURL))
	if err != nil {
		t.Fatalf("connect mongo: %v", err)
	}
	defer func() { _ = mongoClient.Disconnect(ctx) }()

	loader := pgloader.NewCatalogLoader(pool)
	catalog := infraredis.NewCatalog(redisClient, loader, 5*time.Minute)
	rooms := infraredis.NewRoomStore(redisClient, 5*time.Minute)
	users := mongodir.NewUserDirectory(mongoClient, "quizrooms_test")

	pub := &recordingPublisher{}
	engine := app.NewGameService(rooms, catalog, users, pub,
		app.WithScheduler(func(time.Duration, func()) {})) // advance is driven by answers here

	// Directory round trip through Mongo.
	engine.Signup(ctx, "c1", "Ada", "Lovelace", "ada", "secret")
	auth := pub.last(t, app.EventAuthSuccess).Payload.(app.AuthSuccess)
	if auth.User.Name != "Ada Lovelace" {
		t.Fatalf("unexpected signup payload %+v", auth)
	}
	engine.Signup(ctx, "cx", "Other", "Ada", "ada", "hunter2")
	if msg := pub.last(t, app.EventAuthError).Payload.(app.Refusal).Message; msg != "User already exists" {
		t.Fatalf("expected duplicate refusal, got %q", msg)
	}
	engine.Login(ctx, "c2", "ada", "secret")
	if got := pub.last(t, app.EventAuthSuccess).Payload.(app.AuthSuccess); !got.SkipAvatar {
		t.Fatalf("unexpected login payload %+v", got)
	}

	// Catalog is served from Postgres through the Redis cache.
	engine.StartNormal("c1", domain.LevelEasy, []string{"Nature"})
	start := pub.last(t, app.EventQuizStart).Payload.(app.QuizStart)
	if start.IsMultiplayer || start.TimePerQuestion != 10 {
		t.Fatalf("unexpected quiz-start %+v", start)
	}
	question := pub.last(t, app.EventQuestion).Payload.(app.QuestionEvent)
	if question.Question != "What is the largest mammal?" {
		t.Fatalf("unexpected question %+v", question)
	}
	if cached, err := redisClient.Exists(ctx, "quiz:catalog").Result(); err != nil || cached != 1 {
		t.Fatalf("expected catalog cached in redis, got %d (%v)", cached, err)
	}
	if live, err := redisClient.Exists(ctx, "quiz:room:c1").Result(); err != nil || live != 1 {
		t.Fatalf("expected room liveness marker, got %d (%v)", live, err)
	}

	engine.SubmitAnswer(ctx, "c1", "c1", 0, question.QuestionID)
	result := pub.last(t, app.EventAnswerResult).Payload.(app.AnswerResult)
	if !result.Correct {
		t.Fatalf("unexpected answer-result %+v", result)
	}
	pairs := pub.last(t, app.EventScores).Payload.([]app.ScorePair)
	if len(pairs) != 1 || pairs[0][1] != 3 {
		t.Fatalf("unexpected scores %+v", pairs)
	}
}

func startPostgres(t *testing.T, ctx context.Context) (string, func()) {
	t.Helper()
	req := tc.ContainerRequest{
		Image:        "postgres:15-alpine",
		Env:          map[string]string{"POSTGRES_USER": "quiz", "POSTGRES_PASSWORD": "quizpass", "POSTGRES_DB": "quizdb"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForListeningPort("5432/tcp").WithStartupTimeout(60 * time.Second),
	}
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		if strings.Contains(err.Error(), "Cannot connect to the Docker daemon") {
			t.Skipf("docker not available: %v", err)
		}
		t.Fatalf("start postgres: %v", err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("port: %v", err)
	}
	dsn := fmt.Sprintf("postgres://quiz:quizpass@%s:%s/quizdb?sslmode=disable", host, port.Port())
	return dsn, func() {
		_ = container.Terminate(ctx)
	}
}

func startRedis(t *testing.T, ctx context.Context) (string, func()) {
	t.Helper()
	req := tc.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp").WithStartupTimeout(30 * time.Second),
	}
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		if strings.Contains(err.Error(), "Cannot connect to the Docker daemon") {
			t.Skipf("docker not available: %v", err)
		}
		t.Fatalf("start redis: %v", err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("redis host: %v", err)
	}
	port, err := container.MappedPort(ctx, "6379/tcp")
	if err != nil {
		t.Fatalf("redis port: %v", err)
	}
	url := fmt.Sprintf("redis://%s:%s", host, port.Port())
	return url, func() {
		_ = container.Terminate(ctx)
	}
}

func startMongo(t *testing.T, ctx context.Context) (string, func()) {
	t.Helper()
	req := tc.ContainerRequest{
		Image:        "mongo:6",
		ExposedPorts: []string{"27017/tcp"},
		WaitingFor:   wait.ForListeningPort("27017/tcp").WithStartupTimeout(60 * time.Second),
	}
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		if strings.Contains(err.Error(), "Cannot connect to the Docker daemon") {
			t.Skipf("docker not available: %v", err)
		}
		t.Fatalf("start mongo: %v", err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("mongo host: %v", err)
	}
	port, err := container.MappedPort(ctx, "27017/tcp")
	if err != nil {
		t.Fatalf("mongo port: %v", err)
	}
	url := fmt.Sprintf("mongodb://%s:%s", host, port.Port())
	return url, func() {
		_ = container.Terminate(ctx)
	}
}

func seedQuestions(t *testing.T, ctx context.Context, dsn string, bank []domain.Question) {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	db := bun.NewDB(sqldb, pgdialect.New())
	defer db.Close()

	migrator := migrate.NewMigrator(db, pgmigrations.Migrations)
	if err := migrator.Init(ctx); err != nil {
		t.Fatalf("migrator init: %v", err)
	}
	if _, err := migrator.Migrate(ctx); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	for _, q := range bank {
		data, err := json.Marshal(q)
		if err != nil {
			t.Fatalf("marshal question: %v", err)
		}
		if _, err := db.ExecContext(ctx, `INSERT INTO questions (id, data) VALUES (?, ?::jsonb) ON CONFLICT (id) DO UPDATE SET data=EXCLUDED.data`, q.ID, string(data)); err != nil {
			t.Fatalf("insert question: %v", err)
		}
	}
}

func sampleBank() []domain.Question {
	return []domain.Question{
		{
			ID:      "nature-1",
			Genre:   "Nature",
			Prompt:  "What is the largest mammal?",
			Options: []string{"Blue Whale", "Elephant", "Giraffe", "Lion"},
			Correct: 0,
			Level:   domain.LevelEasy,
			Hint:    "It lives in the ocean.",
		},
	}
}

func redisClientFromURL(url string) (*goredis.Client, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return goredis.NewClient(&goredis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	}), nil
}

func requireDocker(t *testing.T) {
	t.Helper()
	if _, err := tc.NewDockerProvider(); err != nil {
		t.Skipf("docker not available: %v", err)
	}
}
