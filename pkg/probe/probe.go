// Copyright (c) 2015-2024 MinIO, Inc.
//
// This file is part of MinIO Object Storage stack
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

// Package probe implements a simple mechanism to trace and return errors in large programs.
package probe

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/dustin/go-humanize"
)

var (
	// Root path to the project's source.
	rootPath string

	// App specific info to be included in reporting.
	appInfo   = make(map[string]string)
	appInfoMu sync.RWMutex
)

// Init initializes probe. It is typically called once from the main()
// function or at least from any source file placed at the top level
// source directory.
func Init() {
	// Root path is automatically determined from the calling function's source file location.
	_, file, _, _ := runtime.Caller(1)
	rootPath = filepath.Dir(file)
}

// SetAppInfo sets app specific key:value to report additionally during call trace dump.
// Eg. SetAppInfo("ReleaseTag", "RELEASE_42_0")
//
//	SetAppInfo("Commit", "00611fb")
func SetAppInfo(key, value string) {
	appInfoMu.Lock()
	defer appInfoMu.Unlock()
	appInfo[key] = value
}

// GetSysInfo returns useful system statistics.
func GetSysInfo() map[string]string {
	host, e := os.Hostname()
	if e != nil {
		host = ""
	}
	memstats := &runtime.MemStats{}
	runtime.ReadMemStats(memstats)
	info := map[string]string{
		"host.name":      host,
		"host.os":        runtime.GOOS,
		"host.arch":      runtime.GOARCH,
		"host.lang":      runtime.Version(),
		"host.cpus":      strconv.Itoa(runtime.NumCPU()),
		"mem.used":       humanize.IBytes(memstats.Alloc),
		"mem.total":      humanize.IBytes(memstats.Sys),
		"mem.heap.used":  humanize.IBytes(memstats.HeapAlloc),
		"mem.heap.total": humanize.IBytes(memstats.HeapSys),
	}

	appInfoMu.RLock()
	defer appInfoMu.RUnlock()
	for k, v := range appInfo {
		info[k] = v
	}
	return info
}

// TracePoint container for individual trace entries in overall call trace
type TracePoint struct {
	Line     int                 `json:"line,omitempty"`
	Filename string              `json:"file,omitempty"`
	Function string              `json:"func,omitempty"`
	Env      map[string][]string `json:"env,omitempty"`
}

// Error implements tracing error functionality.
type Error struct {
	lock      *sync.RWMutex
	Cause     error             `json:"cause,omitempty"`
	CallTrace []TracePoint      `json:"trace,omitempty"`
	SysInfo   map[string]string `json:"sysinfo,omitempty"`
}

// NewError function instantiates an error probe for tracing.
// Default 'error' (golang's error interface) is injected in
// only once. Rest of the time, you trace the return path with
// 'probe.Trace' and finally handle them at top level.
//
// Following dummy code talks about how one can pass up the
// errors and put them in CallTrace.
//
//	func sendError() *probe.Error {
//	     return probe.NewError(errors.New("Help Needed"))
//	}
//	func recvError() *probe.Error {
//	     return sendError().Trace()
//	}
//	if msg := recvError(); msg != nil {
//	     log.Fatalln(msg)
//	}
func NewError(e error) *Error {
	if e == nil {
		return nil
	}
	err := Error{lock: &sync.RWMutex{}, Cause: e, CallTrace: []TracePoint{}, SysInfo: GetSysInfo()}
	return err.trace() // Skip NewError and only register the NewError's caller.
}

// Trace records the point at which it is invoked.
// Stack traces are important for debugging purposes.
func (e *Error) Trace(fields ...string) *Error {
	if e == nil {
		return nil
	}

	e.lock.Lock()
	defer e.lock.Unlock()

	return e.trace(fields...)
}

// trace records caller's caller. It is intended for probe's own
// internal use. Take a look at probe.NewError for example.
func (e *Error) trace(fields ...string) *Error {
	if e == nil {
		return nil
	}
	pc, file, line, _ := runtime.Caller(2)
	function := runtime.FuncForPC(pc).Name()
	_, function = filepath.Split(function)
	file = strings.TrimPrefix(file, rootPath+string(os.PathSeparator)) // trims project's root path.
	tp := TracePoint{Line: line, Filename: file, Function: function}
	if len(fields) > 0 {
		tp.Env = map[string][]string{"Tags": fields}
	}
	e.CallTrace = append(e.CallTrace, tp)
	return e
}

// Untrace erases last known trace entry.
func (e *Error) Untrace() *Error {
	if e == nil {
		return nil
	}
	e.lock.Lock()
	defer e.lock.Unlock()

	if l := len(e.CallTrace); l > 0 {
		e.CallTrace = e.CallTrace[:l-1]
	}
	return e
}

// ToGoError returns original error message.
func (e *Error) ToGoError() error {
	if e == nil || e.Cause == nil {
		return nil
	}
	return e.Cause
}

// String returns error message.
func (e *Error) String() string {
	if e == nil || e.Cause == nil {
		return "<nil>"
	}
	e.lock.RLock()
	defer e.lock.RUnlock()

	str := e.Cause.Error()
	for i := len(e.CallTrace) - 1; i >= 0; i-- {
		tp := e.CallTrace[i]
		if len(tp.Env) > 0 {
			str += fmt.Sprintf("\n (%d) %s:%d %s(..) Tags: [%s]",
				i, tp.Filename, tp.Line, tp.Function, strings.Join(tp.Env["Tags"], ", "))
		} else {
			str += fmt.Sprintf("\n (%d) %s:%d %s(..)", i, tp.Filename, tp.Line, tp.Function)
		}
	}

	keys := make([]string, 0, len(e.SysInfo))
	for key := range e.SysInfo {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	str += "\n "
	for _, key := range keys {
		str += key + ":" + e.SysInfo[key] + " | "
	}
	return str
}
