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

import (
	"encoding/json"
	"fmt"
	"os"
)

// LoadHostFile reads a JSON array of "host:port" strings from path (spec
// §6, §4.12). A missing file at the caller-configured path is treated as a
// warning by resolveBootstrapHosts, not an error raised here — this
// function itself simply reports whatever os.Open/json.Unmarshal report.
func LoadHostFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var hosts []string
	if err := json.Unmarshal(data, &hosts); err != nil {
		return nil, fmt.Errorf("ringpop: malformed bootstrap host file %s: %w", path, err)
	}
	return hosts, nil
}

// resolveBootstrapHosts implements the precedence rule of spec §6/§8:
// explicit array > explicit file > default file. A missing file at the
// default path is silent; a missing file at an explicitly configured path
// is logged as a warning (not fatal) when an explicit hosts array was also
// supplied, and is a configuration error otherwise.
func resolveBootstrapHosts(cfg *Config) ([]string, error) {
	if len(cfg.BootstrapHosts) > 0 {
		if cfg.BootstrapFile != "" && cfg.BootstrapFile != DefaultBootstrapFile {
			if _, err := os.Stat(cfg.BootstrapFile); err != nil {
				cfg.Logger.Warn(map[string]interface{}{
					"file": cfg.BootstrapFile,
				}, "ringpop: bootstrap file unreadable, falling back to explicit host list")
			}
		}
		return cfg.BootstrapHosts, nil
	}

	path := cfg.BootstrapFile
	if path == "" {
		path = DefaultBootstrapFile
	}
	hosts, err := LoadHostFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			if path == DefaultBootstrapFile {
				return nil, nil
			}
			return nil, fmt.Errorf("ringpop: bootstrap file %s does not exist and no explicit host list was supplied", path)
		}
		return nil, err
	}
	return hosts, nil
}

// hostListFormatWarning reports whether hosts mixes dotted-IP addresses
// with hostnames, which spec §4.8 calls out as a non-fatal bootstrap
// warning.
func hostListFormatWarning(hosts []string) bool {
	sawIP, sawHostname := false, false
	for _, h := range hosts {
		if looksLikeIP(h) {
			sawIP = true
		} else {
			sawHostname = true
		}
	}
	return sawIP && sawHostname
}

func looksLikeIP(hostport string) bool {
	host := hostport
	for i := len(hostport) - 1; i >= 0; i-- {
		if hostport[i] == ':' {
			host = hostport[:i]
			break
		}
	}
	for _, r := range host {
		if (r < '0' || r > '9') && r != '.' {
			return false
		}
	}
	return host != ""
}
