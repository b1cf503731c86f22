package main

import (
	"context"

	"ibiassist-backend/cmd/raspisan-cli/commands"
	"ibiassist-backend/lib/telemetry"
)

func main() {
	telemetry.SetupFromEnv(context.Background(), "raspisan-cli")
	commands.ExecuteContext(context.Background())
}
