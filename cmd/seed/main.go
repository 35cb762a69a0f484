// Command seed fills the remote gateway with fake appointments through
// the same client the dashboard uses. Intended for demo and load-testing
// environments, never production.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/joho/godotenv"

	"github.com/postclinics/clinic-dashboard/internal/appointment"
	"github.com/postclinics/clinic-dashboard/internal/config"
	"github.com/postclinics/clinic-dashboard/internal/gateway"
	"github.com/postclinics/clinic-dashboard/internal/session"
	"github.com/postclinics/clinic-dashboard/pkg/logging"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	count := flag.Int("count", 25, "appointments to create")
	days := flag.Int("days", 14, "spread appointments across this many days from today")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.Load()

	username := os.Getenv("SEED_USERNAME")
	password := os.Getenv("SEED_PASSWORD")
	if username == "" || password == "" {
		log.Fatal("SEED_USERNAME and SEED_PASSWORD are required")
	}

	logger := logging.New(cfg.LogLevel)
	tokens := session.NewMemoryStore()
	client := gateway.NewClient(cfg.GatewayBaseURL, tokens, nil, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	token, err := client.Login(ctx, gateway.Credentials{Username: username, Password: password})
	if err != nil {
		log.Fatalf("login: %v", err)
	}
	if err := tokens.Set(token); err != nil {
		log.Fatalf("store token: %v", err)
	}

	gofakeit.Seed(time.Now().UnixNano())
	log.Printf("seeding %d appointments across %d days", *count, *days)

	for i := 0; i < *count; i++ {
		draft := fakeDraft(*days)
		created, err := client.CreateAppointment(ctx, draft)
		if err != nil {
			log.Fatalf("create appointment %d: %v", i+1, err)
		}
		log.Printf("created %s: %s at %s", created.ID, created.PatientName, created.DateTime)
	}

	log.Println("seed complete")
}

func fakeDraft(days int) appointment.Draft {
	day := time.Now().AddDate(0, 0, rand.Intn(days))
	// Clinic hours, half-hour slots.
	slot := time.Date(day.Year(), day.Month(), day.Day(), 8+rand.Intn(10), 30*rand.Intn(2), 0, 0, time.Local)

	return appointment.Draft{
		PatientName:  gofakeit.Name(),
		PatientPhone: fmt.Sprintf("5511%09d", gofakeit.Number(0, 999999999)),
		DateTime:     slot.Format("2006-01-02T15:04"),
		Service:      appointment.Services[rand.Intn(len(appointment.Services))],
		Professional: appointment.Professionals[rand.Intn(len(appointment.Professionals))],
	}
}
