package cmd

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Rakhulsr/go-edumarket/app/configs"
	"github.com/Rakhulsr/go-edumarket/app/db/seeders"
	"github.com/Rakhulsr/go-edumarket/app/models/migrations"
	"github.com/Rakhulsr/go-edumarket/app/routes"
	"github.com/urfave/cli/v3"
)

func RunCli(env configs.ENV) {
	cmd := &cli.Command{
		Name:   "edumarket",
		Usage:  "Educational materials marketplace",
		Action: func(ctx context.Context, c *cli.Command) error { return serve(ctx, env) },
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "Run the HTTP API",
				Action: func(ctx context.Context, c *cli.Command) error {
					return serve(ctx, env)
				},
			},
			{
				Name:  "migrate",
				Usage: "Run database migration",
				Action: func(ctx context.Context, c *cli.Command) error {
					db, err := configs.OpenConnection(env)
					if err != nil {
						return err
					}
					if err := migrations.AutoMigrate(db); err != nil {
						return err
					}
					log.Println("✅ Migration complete")
					return nil
				},
			},
			{
				Name:  "seed",
				Usage: "Seed the built-in catalog and fake sellers",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "sellers", Value: 3, Usage: "number of fake sellers"},
					&cli.IntFlag{Name: "products", Value: 4, Usage: "fake products per seller"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					db, err := configs.OpenConnection(env)
					if err != nil {
						return err
					}
					if err := migrations.AutoMigrate(db); err != nil {
						return err
					}
					opts := seeders.Options{
						Sellers:           int(c.Int("sellers")),
						ProductsPerAuthor: int(c.Int("products")),
					}
					if err := seeders.DBSeed(db.WithContext(ctx), opts); err != nil {
						return err
					}
					log.Println("✅ Seeding complete")
					return nil
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func serve(ctx context.Context, env configs.ENV) error {
	db, err := configs.OpenConnection(env)
	if err != nil {
		if !env.CatalogFallback {
			return err
		}
		log.Printf("❌ Database unavailable, serving the fallback catalog: %v", err)
		if db, err = configs.OpenLazy(env); err != nil {
			return err
		}
	}

	server := &http.Server{
		Addr:              env.Port,
		Handler:           routes.NewRouter(db, env),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Printf("🚀 Server starting on %s", server.Addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		log.Println("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	}
}
