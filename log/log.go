// Package log wraps github.com/astaxie/beego/logs with a module-filtered,
// level-configurable file logger, matching the teacher's log/log.go.
// Initialized once from conf at startup (SPEC_FULL's ambient-stack
// logging section).
package log

import (
	"encoding/json"
	"fmt"
	"path"
	"runtime"

	"github.com/astaxie/beego/logs"
)

type logConfig struct {
	Filename string `json:"filename"`
	Level    int    `json:"level,omitempty"`
	Rotate   bool   `json:"rotate,omitempty"`
	Daily    bool   `json:"daily,omitempty"`
	MaxDays  int64  `json:"maxdays,omitempty"`
}

var includedModules map[string]bool

// TraceLog reports the caller's function name and line, for panic/error
// messages that want a source location without a full stack trace.
func TraceLog() string {
	pc := make([]uintptr, 10)
	runtime.Callers(2, pc)
	f := runtime.FuncForPC(pc[0])
	_, line := f.FileLine(pc[0])
	return fmt.Sprintf("%s line : %d\n", f.Name(), line)
}

// Print logs one line at the given level, if module is in the configured
// include-list (or the list is empty, meaning "log everything").
func Print(module, level, format string, args ...interface{}) {
	if !IsIncludedModule(module) {
		return
	}
	switch level {
	case "emergency":
		logs.Emergency(format, args...)
	case "alert":
		logs.Alert(format, args...)
	case "critical":
		logs.Critical(format, args...)
	case "error":
		logs.Error(format, args...)
	case "warn":
		logs.Warn(format, args...)
	case "info":
		logs.Info(format, args...)
	case "debug":
		logs.Debug(format, args...)
	case "notice":
		logs.Notice(format, args...)
	}
}

// IsIncludedModule reports whether module should be logged, per the
// include-list SetIncludedModules configured at startup.
func IsIncludedModule(module string) bool {
	if len(includedModules) == 0 {
		return true
	}
	return includedModules[module]
}

// SetIncludedModules restricts Print to only the named modules; an empty
// list means "log every module" (the default).
func SetIncludedModules(modules []string) {
	includedModules = make(map[string]bool, len(modules))
	for _, m := range modules {
		includedModules[m] = true
	}
}

// InitLogger points the process-wide logger at dir/debug.logger, rotating
// daily, at strLevel (resolved via level.go's levelMap).
func InitLogger(dir, strLevel string) error {
	config, err := json.Marshal(logConfig{
		Filename: path.Join(dir, "debug.logger"),
		Rotate:   true,
		Daily:    true,
		MaxDays:  7,
		Level:    getLevel(strLevel),
	})
	if err != nil {
		return err
	}
	if err := logs.SetLogger(logs.AdapterFile, string(config)); err != nil {
		return err
	}
	logs.Debug(string(config))
	return nil
}
