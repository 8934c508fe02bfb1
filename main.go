package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/beka-birhanu/mazebound/api"
	gameapi "github.com/beka-birhanu/mazebound/api/game"
	api_i "github.com/beka-birhanu/mazebound/api/i"
	"github.com/beka-birhanu/mazebound/config"
	"github.com/beka-birhanu/mazebound/service"
	"github.com/gin-gonic/gin"
)

// Global variables for dependencies
var (
	tuning            *config.Tuning
	sessionManager    *service.SessionManager
	sessionController api_i.Controller
	router            *api.Router
	appLogger         *log.Logger
)

func initTuning() {
	var err error
	tuning, err = config.LoadTuning(config.Envs.TuningFile)
	if err != nil {
		appLogger.Fatalf("%s[ERROR]%s Loading tuning file %q: %v", config.LogErrorColor, config.LogColorReset, config.Envs.TuningFile, err)
	}
	if config.Envs.TuningFile != "" {
		appLogger.Printf("%s[INFO]%s Loaded tuning overrides from %s", config.LogInfoColor, config.LogColorReset, config.Envs.TuningFile)
	}
	appLogger.Printf("%s[INFO]%s Tuning initialized", config.LogInfoColor, config.LogColorReset)
}

func initSessionManager() {
	simLogger := log.New(os.Stdout, fmt.Sprintf("%s[SIM]%s ", config.ColorCyan, config.ColorReset), log.LstdFlags)

	var err error
	sessionManager, err = service.NewSessionManager(&service.Config{
		TickRate: config.Envs.TickRate,
		Tuning:   tuning,
		Logger:   simLogger,
	})
	if err != nil {
		appLogger.Fatalf("%s[ERROR]%s Creating session manager: %v", config.LogErrorColor, config.LogColorReset, err)
	}
	appLogger.Printf("%s[INFO]%s Session manager initialized", config.LogInfoColor, config.LogColorReset)
}

func initSessionController() {
	var err error
	sessionController, err = gameapi.NewSessionController(sessionManager)
	if err != nil {
		appLogger.Fatalf("%s[ERROR]%s Creating session controller: %v", config.LogErrorColor, config.LogColorReset, err)
	}
	appLogger.Printf("%s[INFO]%s Session controller initialized", config.LogInfoColor, config.LogColorReset)
}

func initRouter() {
	router = api.NewRouter(api.Config{
		Addr:        fmt.Sprintf("%s:%v", config.Envs.HostIP, config.Envs.RESTPort),
		BaseURL:     "/api",
		Controllers: []api_i.Controller{sessionController},
	})
	appLogger.Printf("%s[INFO]%s Router initialized", config.LogInfoColor, config.LogColorReset)
}

func main() {
	appLogger = log.New(os.Stdout, fmt.Sprintf("%s[APP]%s ", config.ColorMagenta, config.ColorReset), log.LstdFlags)
	gin.SetMode(config.Envs.GinMode)

	// Initialize dependencies
	initTuning()
	initSessionManager()
	initSessionController()
	initRouter()

	// Stop every live simulation loop before the process exits.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-stop
		appLogger.Printf("%s[INFO]%s Shutting down, closing live sessions", config.LogInfoColor, config.LogColorReset)
		sessionManager.StopAll()
		os.Exit(0)
	}()

	// Run HTTP server
	if err := router.Run(); err != nil {
		appLogger.Fatalf("%s[ERROR]%s Starting server: %v", config.LogErrorColor, config.LogColorReset, err)
	}
}
