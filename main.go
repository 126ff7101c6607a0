package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/anatoliyserebry/cryptowatchlive/internal/bot"
	"github.com/anatoliyserebry/cryptowatchlive/internal/repo"
	"github.com/anatoliyserebry/cryptowatchlive/internal/schedule"
	"github.com/anatoliyserebry/cryptowatchlive/internal/service/notification"
	"github.com/anatoliyserebry/cryptowatchlive/internal/service/watcher"
	"github.com/anatoliyserebry/cryptowatchlive/ioc"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

func initViper() {

	// --config=./config/xxx.yaml
	file := pflag.String("config", "./config/config.dev.yaml", "specify config file")
	pflag.Parse()

	viper.SetConfigFile(*file)
	err := viper.ReadInConfig()
	if err != nil {
		panic(fmt.Errorf("fatal error config file: %s \n", err))
	}
}

func main() {
	initViper()

	db := ioc.InitDB()
	if err := repo.InitTables(db); err != nil {
		panic(err)
	}
	userRepo := repo.NewUserRepo(db)
	subRepo := repo.NewSubscriptionRepo(db)

	bian := ioc.InitBinanceCli()
	resolver := ioc.InitResolver(bian)

	dispatcher := notification.NewDispatcher(ioc.InitNotifier(), 128)
	w := watcher.NewWatcher(subRepo, userRepo, resolver, watcher.WithSink(dispatcher))
	task := watcher.NewWatchTask(w)

	interval := viper.GetInt("watcher.interval_seconds")
	if interval <= 0 {
		interval = 60
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dispatcher.Start(ctx)

	handler := bot.NewHandler(userRepo, subRepo, resolver)
	go runConsole(ctx, handler)

	fmt.Println("cryptowatchlive started, Ctrl+C to stop")
	schedule.RunEvery(ctx, task, time.Duration(interval)*time.Second)
	dispatcher.Wait()
}

// runConsole 本地命令面, 聊天网关不在时直接从stdin收命令
func runConsole(ctx context.Context, handler *bot.Handler) {
	ownerId := viper.GetInt64("console.owner_id")
	if ownerId == 0 {
		ownerId = 1
	}

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		fmt.Println(handler.Handle(ctx, ownerId, line))
	}
}
