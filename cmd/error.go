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
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/minio/cli"
	json "github.com/minio/colorjson"
	"github.com/minio/minio-go/v7"
	"github.com/minio/pkg/v3/console"
	"github.com/minio/quickstart/pkg/probe"
	"google.golang.org/api/googleapi"
)

// causeMessage container for golang error messages
type causeMessage struct {
	Message string `json:"message"`
	Error   error  `json:"error"`
}

// errorMessage container for error messages
type errorMessage struct {
	Message   string             `json:"message"`
	Cause     causeMessage       `json:"cause"`
	Type      string             `json:"type"`
	Code      int                `json:"code,omitempty"`
	CallTrace []probe.TracePoint `json:"trace,omitempty"`
	SysInfo   map[string]string  `json:"sysinfo"`
}

// errorJSON renders err in the JSON error envelope.
func errorJSON(err *probe.Error, errType, msg string) string {
	errorMsg := errorMessage{
		Message: msg,
		Type:    errType,
		Cause: causeMessage{
			Message: err.ToGoError().Error(),
			Error:   err.ToGoError(),
		},
		Code:    serviceErrorCode(err),
		SysInfo: err.SysInfo,
	}
	if globalDebug {
		errorMsg.CallTrace = err.CallTrace
	}
	envelope := struct {
		Status string       `json:"status"`
		Error  errorMessage `json:"error"`
	}{
		Status: "error",
		Error:  errorMsg,
	}

	var (
		buf []byte
		e   error
	)
	if globalJSONLine {
		buf, e = json.Marshal(envelope)
	} else {
		buf, e = json.MarshalIndent(envelope, "", " ")
	}
	if e != nil {
		console.Fatalln(probe.NewError(e))
	}
	return string(buf)
}

// fatalIf wrapper function which takes error and selectively prints stack frames if available on debug
func fatalIf(err *probe.Error, msg string, data ...interface{}) {
	if err == nil {
		return
	}
	fatal(err, msg, data...)
}

func fatal(err *probe.Error, msg string, data ...interface{}) {
	if globalJSON {
		console.Println(errorJSON(err, "fatal", fmt.Sprintf(msg, data...)))
		console.Fatalln()
	}

	msg = fmt.Sprintf(msg, data...)
	errmsg := err.String()
	if !globalDebug {
		errmsg = userError(err).Error()
	}

	// Remove unnecessary leading spaces in generic/detailed error messages
	msg = strings.TrimSpace(msg)
	errmsg = strings.TrimSpace(errmsg)

	// Add punctuations when needed
	if len(errmsg) > 0 && len(msg) > 0 {
		if msg[len(msg)-1] != ':' && msg[len(msg)-1] != '.' {
			// The detailed error message starts with a capital letter,
			// we should then add '.', otherwise add ':'.
			if unicode.IsUpper(rune(errmsg[0])) {
				msg += "."
			} else {
				msg += ":"
			}
		}
		// Add '.' to the detail error if not found
		if errmsg[len(errmsg)-1] != '.' {
			errmsg += "."
		}
	}

	console.Fatalln(fmt.Sprintf("%s %s", msg, errmsg))
}

// userError replaces a cancellation with a message the user recognizes.
func userError(err *probe.Error) error {
	e := err.ToGoError()
	if errors.Is(e, context.Canceled) {
		// This will replace context canceled error message
		// that the user is seeing to a better one.
		e = errors.New("Canceling upon user request")
	}
	return e
}

// Exit coder wraps cli new exit error with a
// custom exitStatus number. cli package requires
// an error with `cli.ExitCoder` compatibility
// after an action. Which woud allow cli package to
// exit with the specified `exitStatus`.
func exitStatus(status int) error {
	return cli.NewExitError("", status)
}

// errorIf synonymous with fatalIf but doesn't exit on error != nil
func errorIf(err *probe.Error, msg string, data ...interface{}) {
	if err == nil {
		return
	}
	if globalJSON {
		console.Println(errorJSON(err, "error", fmt.Sprintf(msg, data...)))
		return
	}
	msg = fmt.Sprintf(msg, data...)
	if !globalDebug {
		console.Errorln(fmt.Sprintf("%s %s", msg, userError(err)))
		return
	}
	console.Errorln(fmt.Sprintf("%s %s", msg, err))
}

// serviceErrorCode extracts the numeric code the storage service
// reported for err, 0 when the failure never reached the service.
func serviceErrorCode(err *probe.Error) int {
	if err == nil {
		return 0
	}
	e := err.ToGoError()

	var apiErr *googleapi.Error
	if errors.As(e, &apiErr) {
		return apiErr.Code
	}

	var s3Err minio.ErrorResponse
	if errors.As(e, &s3Err) {
		return s3Err.StatusCode
	}
	return 0
}

// serviceExitStatus maps a failed storage operation to the process exit
// status: the service error code when one was reported, else the global
// error exit status.
func serviceExitStatus(err *probe.Error) int {
	if code := serviceErrorCode(err); code != 0 {
		return code
	}
	return globalErrorExitStatus
}

// serviceFailure prints err and returns the cli exit coder carrying
// the service error code.
func serviceFailure(err *probe.Error, msg string, data ...interface{}) error {
	errorIf(err, msg, data...)
	return exitStatus(serviceExitStatus(err))
}

// usageFailure prints the command help and returns the usage exit coder.
func usageFailure(ctx *cli.Context) error {
	showCommandHelp(ctx)
	return exitStatus(globalUsageExitStatus)
}
