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
	"github.com/it-chain/iLogger"
)

// ilogger adapts the package-level github.com/it-chain/iLogger functions to
// the Logger interface, exactly the way leesd556-swim calls
// iLogger.Error(nil, err.Error()) at its ping-handler call site.
type ilogger struct{}

func newILogger() Logger {
	return ilogger{}
}

func (ilogger) Debug(fields map[string]interface{}, msg string) {
	iLogger.Debug(fields, msg)
}

func (ilogger) Info(fields map[string]interface{}, msg string) {
	iLogger.Info(fields, msg)
}

func (ilogger) Warn(fields map[string]interface{}, msg string) {
	iLogger.Warn(fields, msg)
}

func (ilogger) Error(fields map[string]interface{}, msg string) {
	iLogger.Error(fields, msg)
}
