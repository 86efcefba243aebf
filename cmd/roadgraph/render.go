package main

import (
	"context"
	"fmt"

	"github.com/voidshard/roadgraph"
)

type renderCmd struct {
	storeOpts

	Scale  float64 `short:"s" long:"scale" default:"2" description:"Pixels per map unit"`
	Margin float64 `short:"m" long:"margin" default:"20" description:"Map units of margin around the content"`

	Args struct {
		Name   string `positional-arg-name:"NAME" required:"true" description:"Saved map"`
		Output string `positional-arg-name:"OUT" description:"Output PNG (default: NAME.png)"`
	} `positional-args:"true"`
}

// Execute renders the map.
func (c *renderCmd) Execute(_ []string) error {
	m, err := c.load(context.Background(), c.Args.Name)
	if err != nil {
		return err
	}

	out := c.Args.Output
	if out == "" {
		out = c.Args.Name + ".png"
	}
	err = roadgraph.RenderPNG(out, m, roadgraph.RenderOptions{Scale: c.Scale, Margin: c.Margin})
	if err != nil {
		return err
	}

	fmt.Printf("rendered %s\n", out)
	return nil
}
