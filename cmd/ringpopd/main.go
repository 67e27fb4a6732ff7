/*
 * Copyright 2018 De-labtory
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 * https://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Command ringpopd is a thin CLI wrapper around the ringpop library,
// grounded on leesd556-swim's own urfave/cli dependency. It wires an
// in-process loopback transport (no real network stack is specified by the
// spec) so the join/gossip/lookup path can be exercised end-to-end from the
// command line.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	cli "github.com/urfave/cli"

	"github.com/DE-labtory/ringpop"
	"github.com/DE-labtory/ringpop/transport"
)

func main() {
	app := cli.NewApp()
	app.Name = "ringpopd"
	app.Usage = "bootstrap a ringpop node and look up keys against its hash ring"
	app.Commands = []cli.Command{
		startCommand(),
		lookupCommand(),
		leaveCommand(),
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "ringpopd:", err)
		os.Exit(1)
	}
}

func commonFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{Name: "app", Usage: "cluster application name"},
		cli.StringFlag{Name: "hostport", Usage: "this node's own host:port"},
		cli.StringFlag{Name: "bootstrap-file", Usage: "path to a JSON array of bootstrap host:port strings"},
		cli.StringSliceFlag{Name: "bootstrap-host", Usage: "bootstrap host:port (repeatable)"},
		cli.DurationFlag{Name: "max-join-duration", Usage: "give up joining after this long", Value: ringpop.DefaultMaxJoinDuration},
	}
}

func buildConfig(c *cli.Context) (*ringpop.Config, error) {
	app := c.String("app")
	hostport := c.String("hostport")
	if app == "" || hostport == "" {
		return nil, fmt.Errorf("--app and --hostport are required")
	}

	return &ringpop.Config{
		App:             app,
		HostPort:        hostport,
		BootstrapHosts:  c.StringSlice("bootstrap-host"),
		BootstrapFile:   c.String("bootstrap-file"),
		MaxJoinDuration: c.Duration("max-join-duration"),
	}, nil
}

func startCommand() cli.Command {
	return cli.Command{
		Name:  "start",
		Usage: "bootstrap this node and block, serving lookups on stdin",
		Flags: commonFlags(),
		Action: func(c *cli.Context) error {
			net := transport.NewNetwork()
			cfg, err := buildConfig(c)
			if err != nil {
				return err
			}
			ch := net.NewChannel(cfg.HostPort)
			cfg.Channel = ch

			node, err := ringpop.New(cfg)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(context.Background(), cfg.MaxJoinDuration+5*time.Second)
			defer cancel()
			if err := node.Bootstrap(ctx); err != nil {
				return fmt.Errorf("bootstrap failed: %w", err)
			}
			fmt.Fprintf(os.Stdout, "ringpop: ready, local=%s\n", cfg.HostPort)

			scanLookups(node)
			node.Destroy()
			return nil
		},
	}
}

func lookupCommand() cli.Command {
	return cli.Command{
		Name:      "lookup",
		Usage:     "bootstrap, look up a single key, print the owner, and exit",
		ArgsUsage: "KEY",
		Flags:     commonFlags(),
		Action: func(c *cli.Context) error {
			key := c.Args().First()
			if key == "" {
				return fmt.Errorf("usage: ringpopd lookup [flags] KEY")
			}

			net := transport.NewNetwork()
			cfg, err := buildConfig(c)
			if err != nil {
				return err
			}
			ch := net.NewChannel(cfg.HostPort)
			cfg.Channel = ch

			node, err := ringpop.New(cfg)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(context.Background(), cfg.MaxJoinDuration+5*time.Second)
			defer cancel()
			if err := node.Bootstrap(ctx); err != nil {
				return fmt.Errorf("bootstrap failed: %w", err)
			}

			fmt.Fprintln(os.Stdout, node.Lookup(key))
			node.Destroy()
			return nil
		},
	}
}

func leaveCommand() cli.Command {
	return cli.Command{
		Name:  "leave",
		Usage: "not implemented: no control-plane transport is specified for talking to a running instance",
		Action: func(c *cli.Context) error {
			return fmt.Errorf("ringpopd leave: not implemented; adminLeave must be called in-process against a *ringpop.Node")
		},
	}
}

// scanLookups reads newline-delimited keys from stdin and prints
// "key -> owner" until EOF or a "quit"/"exit" line, for manual smoke
// testing of a running node.
func scanLookups(node *ringpop.Node) {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		key := strings.TrimSpace(scanner.Text())
		if key == "" {
			continue
		}
		if key == "quit" || key == "exit" {
			return
		}
		fmt.Fprintf(os.Stdout, "%s -> %s\n", key, node.Lookup(key))
	}
}
