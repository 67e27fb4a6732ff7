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

package ringpop

import "time"

// Default timing constants (spec §5, §6). All are overridable per-node via
// Config.
const (
	DefaultMinProtocolPeriod = 200 * time.Millisecond
	DefaultPingTimeout       = 1500 * time.Millisecond
	DefaultPingReqTimeout    = 5000 * time.Millisecond
	DefaultSuspicionTimeout  = 5000 * time.Millisecond
	DefaultProxyReqTimeout   = 30000 * time.Millisecond
	DefaultMaxJoinDuration   = 300000 * time.Millisecond

	DefaultPingReqSize       = 3
	DefaultJoinSize          = 3
	DefaultVirtualNodes      = 100
	DefaultBootstrapFile     = "./hosts.json"
)

// StatsReporter is the process-metrics sink the facade drives (spec §6's
// "Operational signals"). Backing these counters with a concrete collector
// (statsd, prometheus, tally, ...) is explicitly out of scope for this
// library (spec §1); Config.Stats defaults to a no-op implementation.
type StatsReporter interface {
	IncCounter(name string, tags ...string)
	RecordTimer(name string, d time.Duration, tags ...string)
	UpdateGauge(name string, value int64, tags ...string)
}

type noopStats struct{}

func (noopStats) IncCounter(string, ...string)                 {}
func (noopStats) RecordTimer(string, time.Duration, ...string) {}
func (noopStats) UpdateGauge(string, int64, ...string)         {}

// Logger is the structured-logging surface the facade drives. The default
// implementation (logger.go) wraps it-chain/iLogger, matching the teacher.
type Logger interface {
	Debug(fields map[string]interface{}, msg string)
	Info(fields map[string]interface{}, msg string)
	Warn(fields map[string]interface{}, msg string)
	Error(fields map[string]interface{}, msg string)
}

// Config is the configuration surface for a node (spec §6). App and
// HostPort are required; Channel is the caller-supplied transport (spec
// non-goal: this library never owns or constructs a transport).
type Config struct {
	// App is the cluster's application name; joins across differing App
	// values are rejected (spec §4.7).
	App string

	// HostPort is this node's own "host:port" address.
	HostPort string

	// Channel is the externally supplied transport used to send protocol
	// messages. Required.
	Channel Channel

	// Logger and Stats are optional. If left nil, Logger defaults to the
	// iLogger-backed logger (logger.go) and Stats to a no-op reporter.
	Logger Logger
	Stats  StatsReporter

	// BootstrapHosts, if non-empty, takes precedence over BootstrapFile.
	BootstrapHosts []string
	// BootstrapFile is read if BootstrapHosts is empty. Defaults to
	// DefaultBootstrapFile.
	BootstrapFile string

	MinProtocolPeriod time.Duration
	PingTimeout       time.Duration
	PingReqTimeout    time.Duration
	SuspicionTimeout  time.Duration
	ProxyReqTimeout   time.Duration
	MaxJoinDuration   time.Duration

	PingReqSize  int
	JoinSize     int
	VirtualNodes int
}

func (c *Config) withDefaults() *Config {
	out := *c
	if out.Logger == nil {
		out.Logger = newILogger()
	}
	if out.Stats == nil {
		out.Stats = noopStats{}
	}
	if out.BootstrapFile == "" {
		out.BootstrapFile = DefaultBootstrapFile
	}
	if out.MinProtocolPeriod == 0 {
		out.MinProtocolPeriod = DefaultMinProtocolPeriod
	}
	if out.PingTimeout == 0 {
		out.PingTimeout = DefaultPingTimeout
	}
	if out.PingReqTimeout == 0 {
		out.PingReqTimeout = DefaultPingReqTimeout
	}
	if out.SuspicionTimeout == 0 {
		out.SuspicionTimeout = DefaultSuspicionTimeout
	}
	if out.ProxyReqTimeout == 0 {
		out.ProxyReqTimeout = DefaultProxyReqTimeout
	}
	if out.MaxJoinDuration == 0 {
		out.MaxJoinDuration = DefaultMaxJoinDuration
	}
	if out.PingReqSize == 0 {
		out.PingReqSize = DefaultPingReqSize
	}
	if out.JoinSize == 0 {
		out.JoinSize = DefaultJoinSize
	}
	if out.VirtualNodes == 0 {
		out.VirtualNodes = DefaultVirtualNodes
	}
	return &out
}
