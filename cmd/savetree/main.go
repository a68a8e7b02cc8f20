package main

import (
	"context"
	"fmt"

	"github.com/tyemirov/projsnap/internal/cli"
	"github.com/tyemirov/projsnap/internal/utils"
)

// main is the entry point for the savetree command.
func main() {
	loggerInstance, loggerInitializationError := utils.NewApplicationLogger()
	if loggerInitializationError != nil {
		panic(fmt.Errorf(utils.LoggerInitializationFailedMessageFormat, loggerInitializationError))
	}
	defer loggerInstance.Sync()
	if applicationExecutionError := cli.ExecuteSaveTree(context.Background(), cli.Dependencies{Logger: loggerInstance}); applicationExecutionError != nil {
		loggerInstance.Fatal(utils.ApplicationExecutionFailedMessage + ": " + applicationExecutionError.Error())
	}
}
