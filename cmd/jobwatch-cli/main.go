package main

import (
	"context"

	"jobwatch/cmd/jobwatch-cli/commands"
)

func main() {
	commands.ExecuteContext(context.Background())
}
