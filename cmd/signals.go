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
	"os"
	"os/signal"
	"syscall"
)

// signalExitStatus maps a trapped signal to the exit status the shell expects.
func signalExitStatus(s os.Signal) int {
	switch s {
	case os.Interrupt:
		return globalCancelExitStatus
	case os.Kill:
		return globalKillExitStatus
	case syscall.SIGTERM:
		return globalTerminatExitStatus
	default:
		return globalErrorExitStatus
	}
}

// trapSignals traps the registered signals and cancel the global context.
// An in-flight storage request observes the cancellation before the exit.
func trapSignals(sig ...os.Signal) {
	// channel to receive signals.
	sigCh := make(chan os.Signal, 1)

	// `signal.Notify` registers the given channel to
	// receive notifications of the specified signals.
	signal.Notify(sigCh, sig...)

	// Wait for the signal.
	s := <-sigCh

	// Once signal has been received stop signal Notify handler.
	signal.Stop(sigCh)

	// Cancel the global context
	globalCancel()

	os.Exit(signalExitStatus(s))
}
