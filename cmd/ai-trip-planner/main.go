package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"ai-trip-planner/internal/app"
	"ai-trip-planner/internal/calendar"
	"ai-trip-planner/internal/config"
	"ai-trip-planner/internal/database"
	"ai-trip-planner/internal/logger"
	"ai-trip-planner/internal/metrics"
	"ai-trip-planner/internal/planner"

	"github.com/joho/godotenv"
)

const cliUserID = "cli"

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found or error loading:", err)
	}

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logg := logger.New(cfg.AppEnv)

	db, err := database.NewDB(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()
	metricsStore := metrics.NewStore(db.SQL)

	ctx := context.Background()

	switch os.Args[1] {
	case "plan":
		planCmd := flag.NewFlagSet("plan", flag.ExitOnError)
		seed := planCmd.Uint64("seed", cfg.PlannerSeed, "Seed for reproducible itineraries (0 = random)")
		icsPath := planCmd.String("ics", "", "Write the itinerary to this .ics file")
		gcal := planCmd.Bool("gcal", false, "Add the itinerary to Google Calendar")
		planCmd.Parse(os.Args[2:])

		text := strings.Join(planCmd.Args(), " ")
		if strings.TrimSpace(text) == "" {
			log.Fatal(`Usage: ai-trip-planner plan [-seed N] [-ics out.ics] [-gcal] "Москва, 15-16 июня, 5000"`)
		}

		application, closeLLM, err := app.Wire(ctx, cfg, app.Deps{
			MetricsStore: metricsStore,
			Synthesizer:  planner.NewSynthesizer(*seed),
			Logger:       logg,
		})
		if err != nil {
			log.Fatalf("Failed to initialize planner: %v", err)
		}
		defer closeLLM()

		planCtx, cancel := context.WithTimeout(ctx, cfg.PlanTimeout)
		defer cancel()

		it, err := application.PlanTrip(planCtx, text)
		if err != nil {
			log.Fatalf("Planning failed: %v", err)
		}
		fmt.Println(app.FormatItinerary(it))

		if *icsPath != "" {
			w := calendar.NewICSWriter()
			n, err := application.ExportCalendar(ctx, w, "ics", cliUserID, it)
			if err != nil {
				log.Fatalf("Calendar export failed: %v", err)
			}
			if err := os.WriteFile(*icsPath, w.Bytes(), 0o644); err != nil {
				log.Fatalf("Failed to write %s: %v", *icsPath, err)
			}
			fmt.Printf("Wrote %d events to %s\n", n, *icsPath)
		}

		if *gcal {
			if cfg.GoogleCalendarCredentials == "" {
				log.Fatal("GOOGLE_CALENDAR_CREDENTIALS environment variable not set")
			}
			sink, err := calendar.NewGoogleCalendar(ctx, cfg.GoogleCalendarCredentials, cfg.GoogleCalendarID)
			if err != nil {
				log.Fatalf("Failed to initialize Google Calendar: %v", err)
			}
			n, err := application.ExportCalendar(ctx, sink, "google", cliUserID, it)
			if err != nil {
				log.Fatalf("Google Calendar export failed after %d events: %v", n, err)
			}
			fmt.Printf("Added %d events to Google Calendar\n", n)
		}

	case "metrics-cleanup":
		cleanupCmd := flag.NewFlagSet("metrics-cleanup", flag.ExitOnError)
		days := cleanupCmd.Int("days", 30, "Keep records for the last N days")
		cleanupCmd.Parse(os.Args[2:])

		affected, err := metricsStore.Cleanup(ctx, *days)
		if err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
		fmt.Printf("Successfully removed %d old metric records.\n", affected)

	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage: ai-trip-planner <command> [arguments]")
	fmt.Println("\nCommands:")
	fmt.Println("  plan               Plan a trip from free text, e.g. \"Москва, 15-16 июня, 5000\"")
	fmt.Println("  metrics-cleanup    Remove old metric records")
}
