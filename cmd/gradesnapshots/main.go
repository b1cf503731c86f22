package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"ibiassist-backend/lib/configutil"
	configlibsql "ibiassist-backend/lib/configutil/libsql"
	"ibiassist-backend/lib/gradestore"
	"ibiassist-backend/lib/scrapers/raspisan"
	"ibiassist-backend/lib/serviceutil"
	"ibiassist-backend/lib/telemetry"
	"ibiassist-backend/lib/timezone"
)

type Student struct {
	LastName string `json:"lastName"`
	Pin      string `json:"pin"`
}

type Config struct {
	Database      configlibsql.Struct `json:"database"`
	BaseUrl       string              `json:"baseUrl"`
	Students      []Student           `json:"students"`
	IntervalHours int                 `json:"intervalHours"`
}

func snapshotAll(ctx context.Context, client *raspisan.Client, store gradestore.Store, students []Student) {
	for _, student := range students {
		semesters, err := client.GetGrades(ctx, student.LastName, student.Pin)
		if err != nil {
			slog.Error("failed to fetch grades", "lastName", student.LastName, "err", err)
			continue
		}
		err = store.Push(ctx, gradestore.PushRequest{
			User:      student.LastName + ":" + student.Pin,
			Time:      timezone.Now(),
			Semesters: semesters,
		})
		if err != nil {
			slog.Error("failed to store snapshot", "lastName", student.LastName, "err", err)
			continue
		}
		slog.Info("stored grade snapshot", "lastName", student.LastName)
	}
}

func handlePull(store gradestore.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := r.URL.Query().Get("user")
		if user == "" {
			http.Error(w, "missing user parameter", http.StatusBadRequest)
			return
		}
		snapshot, ok, err := store.Pull(r.Context(), user)
		if err != nil {
			slog.Error("failed to pull snapshot", "user", user, "err", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		if !ok {
			http.Error(w, "no snapshot for user", http.StatusNotFound)
			return
		}
		w.Header().Set("content-type", "application/json")
		json.NewEncoder(w).Encode(snapshot)
	}
}

func main() {
	ctx := serviceutil.SignalContext()

	config, err := configutil.ReadConfig[Config]("config.json5")
	if err != nil {
		serviceutil.Fatal("failed to read config", err)
	}
	if config.BaseUrl == "" {
		config.BaseUrl = "https://inet.ibi.spb.ru"
	}
	if config.IntervalHours <= 0 {
		config.IntervalHours = 24
	}

	db, err := config.Database.OpenDB()
	if err != nil {
		serviceutil.Fatal("failed to open database", err)
	}
	_, err = db.Exec(gradestore.Schema)
	if err != nil {
		serviceutil.Fatal("failed to apply database schema", err)
	}

	t, err := telemetry.SetupFromEnv(ctx, "gradesnapshots")
	if err != nil {
		serviceutil.Fatal("failed to setup telemetry", err)
	}
	defer t.Shutdown(context.Background())
	telemetry.InstrumentPerfStats(ctx)

	client, err := raspisan.NewClient(config.BaseUrl)
	if err != nil {
		serviceutil.Fatal("failed to initialize portal client", err)
	}
	store := gradestore.NewStore(db)

	go func() {
		ticker := time.NewTicker(time.Hour * time.Duration(config.IntervalHours))
		defer ticker.Stop()

		snapshotAll(ctx, client, store, config.Students)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				snapshotAll(ctx, client, store, config.Students)
			}
		}
	}()

	mux := http.NewServeMux()
	mux.HandleFunc("/snapshot", handlePull(store))
	go serviceutil.StartHttpServer(8444, mux)

	<-ctx.Done()
}
