package main

import (
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/effective-security/x/ctl"
	"github.com/effective-security/xjws/cmd/jws-tool/cli"
	"github.com/effective-security/xjws/internal/version"
)

type app struct {
	cli.Cli

	Sign    cli.SignCmd    `cmd:"" help:"sign JSON payload"`
	Verify  cli.VerifyCmd  `cmd:"" help:"verify token and print its payload"`
	Inspect cli.InspectCmd `cmd:"" help:"print header and payload of a token, without verification"`
}

func main() {
	realMain(os.Args, os.Stdout, os.Stderr, os.Exit)
}

func realMain(args []string, out io.Writer, errout io.Writer, exit func(int)) {
	cl := app{
		Cli: cli.Cli{},
	}
	cl.Cli.WithErrWriter(errout).
		WithWriter(out)

	parser, err := kong.New(&cl,
		kong.Name("jws-tool"),
		kong.Description("JSON Web Signature tools"),
		kong.Writers(out, errout),
		kong.Exit(exit),
		ctl.BoolPtrMapper,
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version.Current().String(),
		})
	if err != nil {
		panic(err)
	}

	ctx, err := parser.Parse(args[1:])
	if err != nil {
		parser.FatalIfErrorf(err)
		return
	}

	err = ctx.Run(&cl.Cli)
	ctx.FatalIfErrorf(err)
}
