// main is the entry point of the hotelpulse CLI.
package main

import (
	"os"

	"github.com/huangsam/hotelpulse/cmd"
	"github.com/huangsam/hotelpulse/internal/contract"
	"github.com/huangsam/hotelpulse/internal/iocache"
)

func main() {
	cmd.SetStoreManager(iocache.Manager)

	err := cmd.Execute()
	iocache.CloseStores()
	_ = contract.Logger().Sync()
	if err != nil {
		contract.LogWarn("Command failed", err)
		os.Exit(1)
	}
}
