package main

import (
	"fmt"
	"log"
	"os"

	"github.com/trezcool/daftari/core"
	logsvc "github.com/trezcool/daftari/services/logger"
	"github.com/trezcool/daftari/storage/kv"
)

func main() {
	conf := core.NewConfig()

	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)

	// set up store
	store, err := kv.Open(conf, logger)
	if err != nil {
		logger.Fatal(fmt.Sprintf("opening store: %v", err), err)
	}

	// start CLI
	cli := commandLine{store: store, out: os.Stdout}
	err = cli.run(os.Args)
	if cErr := store.Close(); cErr != nil {
		logger.Error(fmt.Sprintf("closing store: %v", cErr), cErr)
	}
	if err != nil {
		if err != errHelp {
			logger.Error(fmt.Sprintf("error: %v", err), err)
		}
		os.Exit(1)
	}
}
