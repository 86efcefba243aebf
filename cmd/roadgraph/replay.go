package main

import (
	"context"
	"fmt"

	"github.com/voidshard/roadgraph"
	"github.com/voidshard/roadgraph/internal/logger"
)

type replayCmd struct {
	storeOpts

	From string `long:"from" description:"Start from this saved map rather than an empty one"`

	Args struct {
		Script string `positional-arg-name:"SCRIPT" required:"true" description:"YAML edit script"`
		Name   string `positional-arg-name:"NAME" required:"true" description:"Name to save the map under"`
	} `positional-args:"true"`
}

// Execute runs the script and saves the map.
func (c *replayCmd) Execute(_ []string) error {
	ctx := context.Background()

	script, err := roadgraph.LoadScript(c.Args.Script)
	if err != nil {
		return err
	}

	var m *roadgraph.Map
	if c.From != "" {
		m, err = c.load(ctx, c.From)
	} else {
		var cfg *roadgraph.Config
		cfg, err = c.config()
		if err == nil {
			m, err = roadgraph.New(cfg)
		}
	}
	if err != nil {
		return err
	}

	applied := script.Run(m)
	logger.L().Info("replay", "script", c.Args.Script, "steps", len(script.Steps), "applied", applied)

	st, done, err := c.open()
	if err != nil {
		return err
	}
	defer done()
	if err := m.Save(ctx, st, c.Args.Name); err != nil {
		return err
	}

	fmt.Printf("applied %d/%d steps, saved %s (dirt %d)\n", applied, len(script.Steps), c.Args.Name, m.Dirt())
	return nil
}
