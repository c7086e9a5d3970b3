package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	pkg "github.com/teamorbit/chatsync/pkg/internal"
	"github.com/teamorbit/chatsync/pkg/internal/bridge"
	"github.com/teamorbit/chatsync/pkg/internal/datastore"
	"github.com/teamorbit/chatsync/pkg/internal/gateway"
	"github.com/teamorbit/chatsync/pkg/internal/services"
	"github.com/teamorbit/chatsync/pkg/internal/web"
)

func init() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})
}

func main() {
	// Configure settings
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.SetConfigName("settings")
	viper.SetConfigType("toml")
	viper.SetDefault("bind", "127.0.0.1:8445")
	viper.SetDefault("receipts.flush_interval", "@every 15s")
	viper.SetDefault("demo.workspace", "demo")
	viper.SetDefault("demo.channel", "general")

	// Load settings
	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("No settings file was found, using defaults...")
	}

	// Prepare the in-memory store
	if err := datastore.NewStore(); err != nil {
		log.Fatal().Err(err).Msg("An error occurred when initializing datastore.")
	}

	// Server
	web.NewServer()
	go web.Listen()

	// Attach a demo channel view against the freshly started backend
	bind := viper.GetString("bind")
	view := services.NewChannelView(services.ViewBinding{
		WorkspaceID: viper.GetString("demo.workspace"),
		ChannelID:   viper.GetString("demo.channel"),
		UserID:      "demo-operator",
		UserName:    "Demo Operator",
	}, gateway.NewREST("http://"+bind), bridge.NewWebsocket("ws://"+bind))

	var opened bool
	for attempt := 0; attempt < 5; attempt++ {
		time.Sleep(200 * time.Millisecond)
		if err := view.Open(); err == nil {
			opened = true
			break
		}
	}
	if !opened {
		log.Warn().Msg("Unable to open the demo channel view, receipts will not sync.")
	}
	defer view.Close()

	// Configure timed tasks
	quartz := cron.New(cron.WithLogger(cron.VerbosePrintfLogger(&log.Logger)))
	quartz.AddFunc(viper.GetString("receipts.flush_interval"), view.FlushReceipts)
	quartz.Start()

	fmt.Println(color.New(color.FgHiCyan, color.Bold).Sprint("ChatSync"))
	log.Info().Msgf("ChatSync v%s is started...", pkg.AppVersion)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msgf("ChatSync v%s is quitting...", pkg.AppVersion)

	quartz.Stop()
}
