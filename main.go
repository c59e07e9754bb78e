package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strconv"
	"syscall"
	"time"

	rotatelogs "github.com/iproj/file-rotatelogs"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"wasteland-companion/internal"
	"wasteland-companion/internal/device"
	"wasteland-companion/web"
	"wasteland-companion/workers"
)

func main() {
	var err error

	log.SetFormatter(&log.TextFormatter{})

	// Load .env
	err = godotenv.Load()
	if err != nil {
		log.Error(err)
	}

	setupLogOutput()

	// connect to database
	database := internal.DatabaseConnection{
		URI:    os.Getenv("MONGO_URI"),
		DB:     os.Getenv("MAIN_DB"),
		Logger: log.New(),
	}

	database.Connect()

	store := &device.Store{DB: database.MongoDB}
	monitor := workers.NewMonitor(store, workers.PingProber{})
	if raw := os.Getenv("MONITOR_INTERVAL"); raw != "" {
		seconds, err := strconv.Atoi(raw)
		if err != nil || seconds <= 0 {
			log.Warnf("ignoring invalid MONITOR_INTERVAL %q", raw)
		} else {
			monitor.Interval = time.Duration(seconds) * time.Second
		}
	}
	monitor.Start()

	handleSignals(monitor, &database)

	r := web.NewRouter(database.MongoDB, monitor)
	r.Init()
	r.Listen(os.Getenv("LISTEN"))
}

// setupLogOutput tees logs to stdout and a rotating file so the dashboard
// host keeps a bounded history.
func setupLogOutput() {
	dir := os.Getenv("LOG_DIR")
	if dir == "" {
		dir = "logs"
	}

	writer, err := rotatelogs.New(
		filepath.Join(dir, "companion.%Y%m%d.log"),
		rotatelogs.WithLinkName(filepath.Join(dir, "companion.log")),
		rotatelogs.WithRotationTime(24*time.Hour),
		rotatelogs.WithMaxAge(7*24*time.Hour),
	)
	if err != nil {
		log.Error(err)
		return
	}

	log.SetOutput(io.MultiWriter(os.Stdout, writer))
}

func handleSignals(monitor *workers.Monitor, database *internal.DatabaseConnection) {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT)
	signal.Notify(signals, syscall.SIGTERM)
	go func() {
		for range signals {
			shutdown(monitor, database)
		}
	}()
}

func shutdown(monitor *workers.Monitor, database *internal.DatabaseConnection) {
	fmt.Println()
	monitor.Stop()
	database.Disconnect()
	log.Warnf("%d threads at exit.", runtime.NumGoroutine())
	log.Warn("Shutting down Wasteland Companion...")
	os.Exit(0)
}
