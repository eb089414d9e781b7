package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-logger/glog"
	"github.com/goliatone/go-router"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	auth "github.com/dennis-kuruvilla/auth-docs-service"
)

func main() {
	lgr := glog.NewLogger(
		glog.WithLoggerTypePretty(),
		glog.WithLevel(glog.Debug),
		glog.WithName("auth"),
		glog.WithAddSource(false),
		glog.WithRichErrorHandler(errors.ToSlogAttributes),
	)

	cfg, err := LoadConfig()
	if err != nil {
		lgr.Error("configuration error", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	db, err := openDatabase(ctx, cfg.DatabaseDSN)
	if err != nil {
		lgr.Error("database error", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	repo := auth.NewRepositoryManager(db)
	repo.MustValidate()

	if err := repo.Roles().Seed(ctx, auth.AllRoles()...); err != nil {
		lgr.Error("role seed error", "error", err)
		os.Exit(1)
	}

	authCfg := auth.StaticConfig{
		SigningKey:      cfg.SigningKey,
		TokenExpiration: cfg.TokenExpiration,
		Issuer:          cfg.Issuer,
		Audience:        cfg.Audience,
	}

	auther := auth.NewAuthenticator(repo, authCfg).
		WithLogger(lgr.GetLogger("authn"))

	admin := auth.NewUserAdminService(repo).
		WithLogger(lgr.GetLogger("admin"))

	httpAuth, err := auth.NewHTTPAuthenticator(auther, authCfg)
	if err != nil {
		lgr.Error("http auth error", "error", err)
		os.Exit(1)
	}
	httpAuth.WithLogger(lgr.GetLogger("http"))

	controller := auth.NewAuthController(auther, admin, httpAuth,
		auth.WithAuthControllerLogger(lgr.GetLogger("ctrl")),
		auth.WithAuthControllerDebug(cfg.Debug),
	)

	srv := router.NewFiberAdapter(func(a *fiber.App) *fiber.App {
		return router.DefaultFiberOptions(fiber.New(fiber.Config{
			UnescapePath:  true,
			StrictRouting: false,
		}))
	})

	srv.Router().WithLogger(lgr.GetLogger("router"))

	auth.RegisterAuthRoutes(srv.Router(), controller)

	lgr.Info("listening", "addr", cfg.HTTPAddr)
	srv.Serve(cfg.HTTPAddr)

	WaitExitSignal()
}

func openDatabase(ctx context.Context, dsn string) (*bun.DB, error) {
	sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
	if err != nil {
		return nil, err
	}

	db := bun.NewDB(sqldb, sqlitedialect.New())

	if err := createTables(ctx, db); err != nil {
		return nil, err
	}

	return db, nil
}

func createTables(ctx context.Context, db *bun.DB) error {
	db.RegisterModel((*auth.UserRoleAssignment)(nil))

	models := []any{
		(*auth.User)(nil),
		(*auth.Role)(nil),
		(*auth.UserRoleAssignment)(nil),
		(*auth.Session)(nil),
	}

	for _, model := range models {
		if _, err := db.NewCreateTable().
			Model(model).
			IfNotExists().
			Exec(ctx); err != nil {
			return err
		}
	}

	return nil
}

func WaitExitSignal() os.Signal {
	ch := make(chan os.Signal, 3)
	signal.Notify(ch,
		syscall.SIGINT,
		syscall.SIGQUIT,
		syscall.SIGTERM,
	)
	return <-ch
}
