package main

import (
	"context"
	"fmt"

	"github.com/tyemirov/projsnap/internal/cli"
	"github.com/tyemirov/projsnap/internal/utils"
)

func main() {
	loggerInstance, loggerInitializationError := utils.NewApplicationLogger()
	if loggerInitializationError != nil {
		panic(fmt.Errorf(utils.LoggerInitializationFailedMessageFormat, loggerInitializationError))
	}
	defer loggerInstance.Sync()
	if applicationExecutionError := cli.ExecuteZipProject(context.Background(), cli.Dependencies{Logger: loggerInstance}); applicationExecutionError != nil {
		loggerInstance.Fatal(utils.ApplicationExecutionFailedMessage + ": " + applicationExecutionError.Error())
	}
}
