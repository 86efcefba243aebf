package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/invopop/yaml"

	"github.com/voidshard/roadgraph"
	"github.com/voidshard/roadgraph/internal/store"
)

// storeOpts picks where snapshots live
type storeOpts struct {
	Backend string `long:"store" choice:"file" choice:"redis" default:"file" description:"Snapshot store (redis reads REDIS_* from the environment)"`
	Dir     string `long:"dir" default:"snapshots" description:"Directory of the file store"`
	Config  string `short:"c" long:"config" description:"Map config YAML (default: built in defaults)"`
}

// open returns the chosen store & a func to release it
func (o *storeOpts) open() (store.Store, func(), error) {
	switch o.Backend {
	case "redis":
		st := store.OpenRedisFromEnv()
		return st, func() { st.Close() }, nil
	default:
		st, err := store.NewFileStore(o.Dir)
		return st, func() {}, err
	}
}

// config loads the map config, if one was given
func (o *storeOpts) config() (*roadgraph.Config, error) {
	if o.Config == "" {
		return roadgraph.DefaultConfig(), nil
	}
	return roadgraph.LoadConfig(o.Config)
}

// load reads a saved map
func (o *storeOpts) load(ctx context.Context, name string) (*roadgraph.Map, error) {
	cfg, err := o.config()
	if err != nil {
		return nil, err
	}
	st, done, err := o.open()
	if err != nil {
		return nil, err
	}
	defer done()
	return roadgraph.Load(ctx, cfg, st, name)
}

// encode marshals v as yaml or json
func encode(v interface{}, format string) ([]byte, error) {
	switch format {
	case "yaml":
		return yaml.Marshal(v)
	case "json":
		return json.MarshalIndent(v, "", "  ")
	default:
		return nil, fmt.Errorf("unknown format: %s", format)
	}
}
