// Command roadgraph replays edit scripts into map snapshots, renders and
// inspects them.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"

	"github.com/voidshard/roadgraph"
	"github.com/voidshard/roadgraph/internal/logger"
)

// set with -ldflags "-X main.version=..."
var version = "dev"

type rootCmd struct {
	Version versionCmd `command:"version" description:"Show version information"`
	Replay  replayCmd  `command:"replay" description:"Apply an edit script and save the resulting map"`
	Render  renderCmd  `command:"render" description:"Render a saved map to PNG"`
	Stats   statsCmd   `command:"stats" description:"Print stats about a saved map"`
	Serve   serveCmd   `command:"serve" description:"Serve metrics, stats & renders of a saved map"`
}

func main() {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(filepath.Join("data", "env", ".env"))
	logger.Setup()

	var root rootCmd
	parser := flags.NewParser(&root, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if fe, ok := err.(*flags.Error); ok && fe.Type == flags.ErrHelp {
			return
		}
		os.Exit(1)
	}
}

type versionCmd struct{}

// Execute prints the version information.
func (c *versionCmd) Execute(_ []string) error {
	fmt.Printf("roadgraph %s (snapshot format %d)\n", version, roadgraph.SnapshotVersion)
	return nil
}
