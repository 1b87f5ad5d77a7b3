/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

// Package config loads the two accepted configuration shapes (flat
// key-value, or structured with a containers/dependencies map) and handles
// the per-checkpoint config the dump side persists for the restore side to
// recover identity without re-discovering the container's cgroup.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/viper"

	liberr "github.com/behouba/criu-coordinator/errors"

	"github.com/behouba/criu-coordinator/phase"
	"github.com/behouba/criu-coordinator/wire"
)

// ClientConfig is what a hook invocation needs to announce itself and dial
// the coordinator.
type ClientConfig struct {
	ID           string
	Dependencies []string
	Address      string
	Port         string
	LogFile      string
}

// ServerConfig is what the server subcommand needs at start-up.
type ServerConfig struct {
	Address    string
	Port       string
	MaxRetries int
	LogFile    string
}

// perCheckpoint is the small JSON document written by the dump side into
// the images directory and read back by the restore side.
type perCheckpoint struct {
	ID           string `json:"id"`
	Dependencies string `json:"dependencies"`
}

// perCheckpointPath returns the per-checkpoint config path inside imagesDir.
func perCheckpointPath(imagesDir string) string {
	return filepath.Join(imagesDir, phase.ConfigFile)
}

// globalConfigPath returns the well-known global config path.
func globalConfigPath() string {
	return filepath.Join(phase.GlobalConfigDir, phase.ConfigFile)
}

// WritePerCheckpoint persists id and its resolved dependency list into
// imagesDir, per §6.5's "hook may write a per-checkpoint config during
// pre-dump/pre-stream" rule.
func WritePerCheckpoint(imagesDir, id string, deps []string) liberr.Error {
	doc := perCheckpoint{ID: id, Dependencies: wire.JoinDeps(deps)}

	raw, err := json.Marshal(doc)
	if err != nil {
		return ErrorPerCheckpointWrite.Error(err)
	}

	if err := os.WriteFile(perCheckpointPath(imagesDir), raw, 0o644); err != nil {
		return ErrorPerCheckpointWrite.Error(err)
	}

	return nil
}

// readPerCheckpoint reads back a config written by WritePerCheckpoint, if
// present.
func readPerCheckpoint(imagesDir string) (perCheckpoint, bool, liberr.Error) {
	raw, err := os.ReadFile(perCheckpointPath(imagesDir))
	if err != nil {
		if os.IsNotExist(err) {
			return perCheckpoint{}, false, nil
		}
		return perCheckpoint{}, false, ErrorPerCheckpointMissing.Error(err)
	}

	var doc perCheckpoint
	if err := json.Unmarshal(raw, &doc); err != nil {
		return perCheckpoint{}, false, ErrorParse.Error(err)
	}

	return doc, true, nil
}

// Load resolves a ClientConfig for a hook invoked with the given action and
// images directory, per §6.3 and the dump/restore asymmetry described in
// §4.4: the dump side may discover identity fresh (from a per-checkpoint
// file, or by cgroup discovery against a central config) and persists it;
// the restore side requires that persisted file to already exist.
func Load(imagesDir string, action phase.Phase, initPID int) (ClientConfig, liberr.Error) {
	if action.IsDumpSide() {
		return loadDumpSide(imagesDir, action, initPID)
	}

	return loadRestoreSide(imagesDir)
}

func loadRestoreSide(imagesDir string) (ClientConfig, liberr.Error) {
	doc, ok, err := readPerCheckpoint(imagesDir)
	if err != nil {
		return ClientConfig{}, err
	}
	if !ok {
		return ClientConfig{}, ErrorPerCheckpointMissing.Error(nil)
	}

	addr, port, logFile := readGlobalNetworking()

	return ClientConfig{
		ID:           doc.ID,
		Dependencies: wire.SplitDeps(doc.Dependencies),
		Address:      addr,
		Port:         port,
		LogFile:      logFile,
	}, nil
}

func loadDumpSide(imagesDir string, action phase.Phase, initPID int) (ClientConfig, liberr.Error) {
	if cfg, ok, err := loadLocalFlatConfig(imagesDir); err != nil {
		return ClientConfig{}, err
	} else if ok {
		return cfg, nil
	}

	return loadDumpSideFromCentral(imagesDir, action, initPID)
}

// loadLocalFlatConfig reads <images_dir>/<config_file> as the flat
// key-value shape of §6.3 shape 1 directly via viper, the same way it reads
// the global file. This covers two cases identically: a user pre-creating
// this file ahead of the very first dump-side invocation with its own
// address/port/log-file (the "simple process workflow"), and a file this
// hook itself wrote back on an earlier dump-side phase (WritePerCheckpoint
// only ever persists id/dependencies, so address/port/log-file fall back to
// their defaults on that path, matching the original's own behavior of not
// re-querying the central config once a local file exists).
func loadLocalFlatConfig(imagesDir string) (ClientConfig, bool, liberr.Error) {
	v := viper.New()
	v.SetConfigFile(perCheckpointPath(imagesDir))
	v.SetConfigType("json")

	if err := v.ReadInConfig(); err != nil {
		if os.IsNotExist(err) {
			return ClientConfig{}, false, nil
		}
		return ClientConfig{}, false, ErrorParse.Error(err)
	}

	id := v.GetString("id")
	if id == "" {
		return ClientConfig{}, false, nil
	}

	return ClientConfig{
		ID:           id,
		Dependencies: wire.SplitDeps(v.GetString("dependencies")),
		Address:      valueOr(v.GetString("address"), phase.DefaultAddress),
		Port:         valueOr(v.GetString("port"), phase.DefaultPort),
		LogFile:      valueOr(v.GetString("log-file"), "-"),
	}, true, nil
}

// loadDumpSideFromCentral is reached once loadLocalFlatConfig has found no
// local file carrying an id: the container-and-discovery workflow,
// resolving address/port/log-file from the central config and the
// participant's id/dependencies from it (an explicit id, else the
// containers entry for initPID, else cgroup discovery matched against the
// prefix-keyed dependencies map).
func loadDumpSideFromCentral(imagesDir string, action phase.Phase, initPID int) (ClientConfig, liberr.Error) {
	v, err := loadGlobalViper()
	if err != nil {
		return ClientConfig{}, err
	}

	cfg := ClientConfig{
		Address: valueOr(v.GetString("address"), phase.DefaultAddress),
		Port:    valueOr(v.GetString("port"), phase.DefaultPort),
		LogFile: valueOr(v.GetString("log-file"), "-"),
	}

	if id := v.GetString("id"); id != "" {
		cfg.ID = id
		cfg.Dependencies = wire.SplitDeps(v.GetString("dependencies"))
	} else {
		if initPID == 0 {
			return ClientConfig{}, ErrorMissingInitPID.Error(nil)
		}

		containers := v.GetStringMap("containers")
		entry, inMap := containers[strconv.Itoa(initPID)]
		if inMap {
			if m, ok := entry.(map[string]interface{}); ok {
				cfg.ID, _ = m["id"].(string)
			}
			cfg.Dependencies = dependenciesFromContainerEntry(entry)
		}

		if cfg.ID == "" {
			id, derr := ContainerIDFromPID(initPID)
			if derr != nil {
				return ClientConfig{}, derr
			}

			cfg.ID = id

			if !inMap {
				central := v.GetStringMapStringSlice("dependencies")
				if deps, ok := DependenciesByPrefix(stringSliceMap(central), id); ok {
					cfg.Dependencies = deps
				}
			}
		}
	}

	if action == phase.PreDump || action == phase.PreStream {
		if werr := WritePerCheckpoint(imagesDir, cfg.ID, cfg.Dependencies); werr != nil {
			return ClientConfig{}, werr
		}
	}

	return cfg, nil
}

// LoadServer resolves defaults for the server subcommand from the global
// config file, if present. CLI flags take precedence over whatever this
// returns; callers overlay non-zero flag values on top.
func LoadServer() ServerConfig {
	address, port, logFile := readGlobalNetworking()

	return ServerConfig{
		Address:    address,
		Port:       port,
		MaxRetries: 50,
		LogFile:    logFile,
	}
}

func readGlobalNetworking() (address, port, logFile string) {
	address, port, logFile = phase.DefaultAddress, phase.DefaultPort, "-"

	v, err := loadGlobalViper()
	if err != nil {
		return
	}

	if a := v.GetString("address"); a != "" {
		address = a
	}
	if p := v.GetString("port"); p != "" {
		port = p
	}
	if l := v.GetString("log-file"); l != "" {
		logFile = l
	}

	return
}

// loadGlobalViper loads the well-known global config file. Its absence is
// not itself an error: callers fall back to defaults.
func loadGlobalViper() (*viper.Viper, liberr.Error) {
	v := viper.New()
	v.SetConfigFile(globalConfigPath())
	v.SetConfigType("json")

	if err := v.ReadInConfig(); err != nil {
		if os.IsNotExist(err) {
			return viper.New(), nil
		}
		return nil, ErrorParse.Error(err)
	}

	return v, nil
}

func valueOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func dependenciesFromContainerEntry(entry interface{}) []string {
	m, ok := entry.(map[string]interface{})
	if !ok {
		return nil
	}

	raw, ok := m["dependencies"].([]interface{})
	if !ok {
		return nil
	}

	out := make([]string, 0, len(raw))
	for _, d := range raw {
		if s, ok := d.(string); ok {
			out = append(out, s)
		}
	}

	return out
}

func stringSliceMap(m map[string][]string) map[string][]string {
	if m == nil {
		return map[string][]string{}
	}
	return m
}
