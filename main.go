package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"busbooking/internal/catalog"
	intconfig "busbooking/internal/config"
	"busbooking/internal/domain/models"
	router "busbooking/internal/http"
	"busbooking/internal/repositories"
	"busbooking/internal/services"
	"busbooking/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

func main() {
	env := intconfig.LoadEnv()
	utils.SetupLogger(env.LogJSON, env.Debug)

	app := &cli.App{
		Name:  "busbooking",
		Usage: "Bus route search and booking fare backend",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "source",
				Value: env.CatalogSource,
				Usage: "route dataset source: csv or mysql",
			},
			&cli.StringFlag{
				Name:  "catalog",
				Value: env.CatalogPath,
				Usage: "path of the CSV route dataset",
			},
		},
		Commands: []*cli.Command{
			serveCommand(env),
			searchCommand(env),
			quoteCommand(env),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Send()
	}
}

func loadCatalog(c *cli.Context, env intconfig.Env) (*catalog.Catalog, error) {
	var loader catalog.Loader
	switch source := strings.ToLower(c.String("source")); source {
	case "csv":
		loader = repositories.RouteCSV{Path: c.String("catalog")}
	case "mysql":
		db, err := intconfig.ConnectDB(env.MySQLDSN)
		if err != nil {
			return nil, err
		}
		loader = repositories.RouteRepository{DB: db, Table: env.CatalogTable}
	default:
		return nil, fmt.Errorf("unknown catalog source %q", source)
	}

	cat := catalog.New(loader, env.SearchCacheTTL)
	if _, err := cat.Reload(c.Context); err != nil {
		return nil, err
	}
	return cat, nil
}

func serveCommand(env intconfig.Env) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "run the web server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "listen",
				Value: env.AppAddr,
				Usage: "listen target for the web server",
			},
		},
		Action: func(c *cli.Context) error {
			if env.GinMode != "" {
				gin.SetMode(env.GinMode)
			}

			cat, err := loadCatalog(c, env)
			if err != nil {
				return err
			}
			defer intconfig.CloseDB()

			r := router.NewRouter(env, cat)

			srv := &http.Server{
				Addr:              c.String("listen"),
				Handler:           r,
				ReadHeaderTimeout: 10 * time.Second,
				ReadTimeout:       20 * time.Second,
				WriteTimeout:      20 * time.Second,
				IdleTimeout:       60 * time.Second,
			}

			go func() {
				log.Info().Str("addr", srv.Addr).Msg("Server listening")
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server failed")
				}
			}()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
			<-quit

			log.Info().Msg("Shutting down server")

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				return fmt.Errorf("shutdown: %w", err)
			}

			log.Info().Msg("Server stopped")
			return nil
		},
	}
}

func searchCommand(env intconfig.Env) *cli.Command {
	return &cli.Command{
		Name:  "search",
		Usage: "list buses for a route and type",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "from", Required: true},
			&cli.StringFlag{Name: "to", Required: true},
			&cli.StringFlag{Name: "type", Required: true},
		},
		Action: func(c *cli.Context) error {
			cat, err := loadCatalog(c, env)
			if err != nil {
				return err
			}
			defer intconfig.CloseDB()

			res, err := services.BookingService{Catalog: cat}.SearchBuses(c.Context, services.SearchQuery{
				From: c.String("from"),
				To:   c.String("to"),
				Type: c.String("type"),
			})
			if err != nil {
				return err
			}
			if len(res.Buses) == 0 {
				fmt.Fprintf(c.App.Writer, "No buses available from %s to %s\n", res.Query.From, res.Query.To)
				return nil
			}
			for _, b := range res.Buses {
				fmt.Fprintf(c.App.Writer, "%-8s %s -> %s  %-10s %s\n", b.RouteNo, b.From, b.To, b.Type, utils.FormatRupee(b.Fare))
			}
			return nil
		},
	}
}

func quoteCommand(env intconfig.Env) *cli.Command {
	return &cli.Command{
		Name:      "quote",
		Usage:     "price a booking without the web server",
		ArgsUsage: "NAME:AGE [NAME:AGE...]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "from", Required: true},
			&cli.StringFlag{Name: "to", Required: true},
			&cli.StringFlag{Name: "route", Required: true, Usage: "route number"},
			&cli.StringFlag{Name: "date"},
		},
		Action: func(c *cli.Context) error {
			passengers, err := parsePassengerArgs(c.Args().Slice())
			if err != nil {
				return err
			}

			cat, err := loadCatalog(c, env)
			if err != nil {
				return err
			}
			defer intconfig.CloseDB()

			res, err := services.BookingService{Catalog: cat}.SubmitBooking(c.Context, services.BookingRequest{
				From:       c.String("from"),
				To:         c.String("to"),
				RouteNo:    c.String("route"),
				Date:       c.String("date"),
				Passengers: passengers,
			})
			if err != nil {
				return err
			}

			w := c.App.Writer
			fmt.Fprintf(w, "Route %s: %s -> %s (%s)\n", res.RouteNo, res.From, res.To, res.BusType)
			fmt.Fprintf(w, "Base fare: %s\n", utils.FormatRupee(res.Summary.BaseFare))
			for i, p := range res.Summary.Passengers {
				fmt.Fprintf(w, "  %d. %s (Age: %d) - Fare: %s\n", i+1, p.Name, p.Age, utils.FormatRupee(p.Fare))
			}
			if res.Summary.Discount > 0 {
				fmt.Fprintf(w, "Group discount: -%s\n", utils.FormatRupee(res.Summary.Discount))
			}
			fmt.Fprintf(w, "TOTAL FARE: %s\n", utils.FormatRupee(res.Summary.TotalFare))
			return nil
		},
	}
}

func parsePassengerArgs(args []string) ([]models.Passenger, error) {
	out := make([]models.Passenger, 0, len(args))
	for _, a := range args {
		name, ageStr, ok := strings.Cut(a, ":")
		if !ok {
			return nil, fmt.Errorf("passenger %q: expected NAME:AGE", a)
		}
		age, err := strconv.Atoi(strings.TrimSpace(ageStr))
		if err != nil {
			return nil, fmt.Errorf("passenger %q: invalid age: %w", a, err)
		}
		out = append(out, models.Passenger{Name: name, Age: age})
	}
	return out, nil
}
