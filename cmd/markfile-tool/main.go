// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Command markfile-tool inspects and drives a markfile.MarkFile from the
// shell, for operational debugging of a liveness marker shared between
// processes.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/alecthomas/kong"

	"code.forgecore.dev/corelf/markfile"
)

var cli struct {
	Path            string `help:"Path to the mark file." required:""`
	VersionOffset   int    `help:"Byte offset of the version field." default:"0"`
	TimestampOffset int    `help:"Byte offset of the timestamp field." default:"8"`
	TotalLength     int    `help:"Total mapped region length in bytes." default:"64"`

	Create struct {
		Version uint32 `help:"Initial version to signal after creation." default:"1"`
	} `cmd:"" help:"Create a new mark file and signal it ready."`

	Signal struct {
		Version uint32 `help:"Version to signal." required:""`
	} `cmd:"" help:"Open an existing mark file and signal a new version."`

	Touch struct{} `cmd:"" help:"Open an existing mark file and refresh its timestamp to now."`

	Status struct {
		TimeoutMs int64 `help:"Liveness window in milliseconds." default:"5000"`
	} `cmd:"" help:"Report whether the mark file is currently active."`
}

func main() {
	ktx := kong.Parse(&cli)

	layout := markfile.Layout{
		TotalLength:     cli.TotalLength,
		VersionOffset:   cli.VersionOffset,
		TimestampOffset: cli.TimestampOffset,
	}

	switch ktx.Command() {
	case "create":
		mf, err := markfile.Open(cli.Path, layout, markfile.MustNotExist)
		ktx.FatalIfErrorf(err)
		defer mf.Close()
		ktx.FatalIfErrorf(mf.SignalReady(cli.Create.Version))
		ktx.FatalIfErrorf(mf.TimestampOrdered(time.Now().UnixMilli()))
		fmt.Printf("created %s (version=%d)\n", cli.Path, cli.Create.Version)

	case "signal":
		mf, err := markfile.Open(cli.Path, layout, markfile.MustExist)
		ktx.FatalIfErrorf(err)
		defer mf.Close()
		ktx.FatalIfErrorf(mf.SignalReady(cli.Signal.Version))
		fmt.Printf("signaled %s version=%d\n", cli.Path, cli.Signal.Version)

	case "touch":
		mf, err := markfile.Open(cli.Path, layout, markfile.MustExist)
		ktx.FatalIfErrorf(err)
		defer mf.Close()
		ktx.FatalIfErrorf(mf.TimestampOrdered(time.Now().UnixMilli()))
		fmt.Printf("touched %s\n", cli.Path)

	case "status":
		mf, err := markfile.Open(cli.Path, layout, markfile.MustExist)
		ktx.FatalIfErrorf(err)
		defer mf.Close()
		active, err := mf.IsActive(time.Now().UnixMilli(), cli.Status.TimeoutMs)
		ktx.FatalIfErrorf(err)
		version, _ := mf.VersionVolatile()
		ts, _ := mf.TimestampVolatile()
		fmt.Printf("path=%s version=%d timestampMs=%d active=%t\n", cli.Path, version, ts, active)
		if !active {
			os.Exit(1)
		}
	}
}
