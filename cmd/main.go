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
package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/minio/cli"
	"github.com/minio/pkg/v3/console"
	"github.com/minio/quickstart/pkg/probe"
)

// Help template for quickstart
var quickstartHelpTemplate = `NAME:
  {{.Name}} - {{.Usage}}

USAGE:
  {{.Name}} create [new-bucket-name]
  {{.Name}} list
  {{.Name}} list bucket-name [prefix]
  {{.Name}} upload bucket-name local-file-path
  {{.Name}} delete bucket-name
  {{.Name}} delete bucket-name object-name

COMMANDS:
  {{range .VisibleCommands}}{{join .Names ", "}}{{ "\t" }}{{.Usage}}
  {{end}}{{if .VisibleFlags}}
GLOBAL FLAGS:
  {{range .VisibleFlags}}{{.}}
  {{end}}{{end}}
VERSION:
  ` + Version +
	`{{ "\n"}}{{range $key, $value := ExtraInfo}}
{{$key}}:
  {{$value}}
{{end}}`

// appCmds are the commands quickstart understands.
var appCmds = []cli.Command{
	createCmd,
	listCmd,
	uploadCmd,
	deleteCmd,
	versionCmd,
}

// Main starts quickstart application
func Main(args []string) {
	probe.Init() // Set project's root source path.
	probe.SetAppInfo("Release-Tag", ReleaseTag)
	probe.SetAppInfo("Commit", ShortCommitID)

	// Cancel in-flight requests on user interrupt.
	go trapSignals(os.Interrupt, syscall.SIGTERM, syscall.SIGKILL)

	// Answer shell completion requests, `complete -C quickstart quickstart`.
	if len(args) > 1 && args[1] == filepath.Base(args[0]) && mainComplete() {
		return
	}

	app := registerApp(filepath.Base(args[0]))

	// Exit coders returned by commands have already terminated the
	// process, what is left are flag parsing failures.
	if e := app.Run(normalizeArgs(args)); e != nil {
		os.Exit(globalUsageExitStatus)
	}
}

// Get os/arch/platform specific information.
// Returns a map of current os/arch/platform/memstats.
func getSystemData() map[string]string {
	host, e := os.Hostname()
	fatalIf(probe.NewError(e), "Unable to determine the hostname.")

	memstats := &runtime.MemStats{}
	runtime.ReadMemStats(memstats)
	mem := fmt.Sprintf("Used: %s | Allocated: %s | UsedHeap: %s | AllocatedHeap: %s",
		humanize.IBytes(memstats.Alloc),
		humanize.IBytes(memstats.TotalAlloc),
		humanize.IBytes(memstats.HeapAlloc),
		humanize.IBytes(memstats.HeapSys))
	platform := fmt.Sprintf("Host: %s | OS: %s | Arch: %s", host, runtime.GOOS, runtime.GOARCH)
	goruntime := fmt.Sprintf("Version: %s | CPUs: %s", runtime.Version(), strconv.Itoa(runtime.NumCPU()))
	return map[string]string{
		"PLATFORM": platform,
		"RUNTIME":  goruntime,
		"MEM":      mem,
	}
}

// Function invoked when invalid command is passed.
func commandNotFound(ctx *cli.Context, command string) {
	msg := fmt.Sprintf("`%s` is not a %s command. See `%s --help`.", command, ctx.App.Name, ctx.App.Name)
	console.Errorln(msg)
	cli.ShowAppHelp(ctx)
}

// onUsageError reports malformed flags with the help of the failing command.
func onUsageError(ctx *cli.Context, err error, _ bool) error {
	errorIf(probe.NewError(err), "Incorrect usage.")
	return usageFailure(ctx)
}

// showCommandHelp prints the help of the running command.
func showCommandHelp(ctx *cli.Context) {
	if ctx.Command.Name == "" {
		cli.ShowAppHelp(ctx)
		return
	}
	cli.ShowCommandHelp(ctx, ctx.Command.Name)
}

// initQuickstart - initialize 'quickstart'.
func initQuickstart() {
	// Check if config exists.
	if !isQuickstartConfigExists() {
		initQuickstartConfig()
		if !globalQuiet && !globalJSON {
			console.Infoln("Configuration written to `" + mustGetQuickstartConfigPath() + "`. Please update your project id.")
		}
	}
}

func registerBefore(ctx *cli.Context) error {
	// Set the config folder.
	setQuickstartConfigDir(ctx.GlobalString("config-dir"))

	// Set global flags.
	if e := setGlobalsFromContext(ctx); e != nil {
		return e
	}

	// Initialize default config files.
	initQuickstart()

	return nil
}

func registerApp(name string) *cli.App {
	cli.HelpFlag = cli.BoolFlag{
		Name:  "help, h",
		Usage: "show help",
	}

	app := cli.NewApp()
	app.Name = name
	app.Action = func(ctx *cli.Context) error {
		if ctx.Args().Present() {
			commandNotFound(ctx, ctx.Args().First())
			return exitStatus(globalUsageExitStatus)
		}
		cli.ShowAppHelp(ctx)
		return exitStatus(globalUsageExitStatus)
	}

	app.HideVersion = true
	app.HideHelpCommand = true
	app.Usage = "Create, list, upload to and delete cloud storage buckets."
	app.Commands = appCmds
	app.Author = "MinIO, Inc."
	app.Version = Version
	app.Flags = globalFlags
	app.CustomAppHelpTemplate = quickstartHelpTemplate
	app.CommandNotFound = func(ctx *cli.Context, command string) {
		commandNotFound(ctx, command)
		cli.OsExiter(globalUsageExitStatus)
	}
	app.OnUsageError = onUsageError
	app.Before = registerBefore
	app.ExtraInfo = func() map[string]string {
		if globalDebug {
			return getSystemData()
		}
		return make(map[string]string)
	}

	return app
}
