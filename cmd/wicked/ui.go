package main

import (
	"fmt"
	"io"
	"log"
	"strings"
	"text/template"
	"time"

	"github.com/jcorbin/wicked/internal/cliui"
	"github.com/jcorbin/wicked/internal/wickutil"
)

// context carries what a command runs with.
type context struct {
	prog  string
	store store
	cfg   config
	clock func() time.Time
}

func (ctx *context) now() time.Time {
	if ctx.clock == nil {
		return time.Now()
	}
	return ctx.clock()
}

// command is one stage of the dump pipeline: parse a dump into records,
// rebuild a dump from records, or both at once.
type command struct {
	name    string
	summary string
	help    *template.Template
	run     func(ctx *context, req *cliui.Request, res *cliui.Response) error
}

func newCommand(name, summary, help string, run func(*context, *cliui.Request, *cliui.Response) error) command {
	return command{
		name:    name,
		summary: summary,
		help:    template.Must(template.New(name).Parse(help)),
		run:     run,
	}
}

func lookupCommand(name string) *command {
	for i := range commands {
		if commands[i].name == name {
			return &commands[i]
		}
	}
	return nil
}

// helpData is what help templates are rendered with.
type helpData struct {
	Command string
	Config  config
}

func (ctx *context) helpData(name string) helpData {
	return helpData{
		Command: string(wickutil.QuotedArgs([]string{ctx.prog, name})),
		Config:  ctx.cfg,
	}
}

type ui struct {
	context
}

func (ui *ui) ServeUser(req *cliui.Request, res *cliui.Response) error {
	logOut := wickutil.PrefixWriter("> log: ", res)
	defer logOut.Close()
	defer redirectLog(logOut)()

	if ui.store == nil {
		ui.store = fsStore{}
	}
	ctx := ui.context
	if !req.ScanArg() {
		ctx.usage(res, false)
		return nil
	}
	switch name := req.Arg(); name {
	case "help":
		return ctx.serveHelp(req, res)
	default:
		if cmd := lookupCommand(name); cmd != nil {
			return cmd.run(&ctx, req, res)
		}
		fmt.Fprintf(res, "unrecognized command %q\n", name)
		return nil
	}
}

func (ctx *context) serveHelp(req *cliui.Request, res *cliui.Response) error {
	if !req.ScanArg() {
		ctx.usage(res, true)
		return nil
	}
	name := req.Arg()
	if name == "config" {
		return configHelp.Execute(res, ctx.helpData(name))
	}
	if cmd := lookupCommand(name); cmd != nil {
		return cmd.help.Execute(res, ctx.helpData(name))
	}
	fmt.Fprintf(res, "no help on %q\n", name)
	return nil
}

// usage prints the command overview; the help command adds its topics.
func (ctx *context) usage(w io.Writer, topics bool) {
	fmt.Fprintf(w, "# Usage\n")
	fmt.Fprintf(w, "> %s [flags] COMMAND [ARGS...]\n", ctx.prog)
	fmt.Fprintf(w, "\n## Commands\n")

	width := len("help")
	for _, cmd := range commands {
		if width < len(cmd.name) {
			width = len(cmd.name)
		}
	}
	fmt.Fprintf(w, "- %-*s: %s\n", width, "help", "show this overview, or help on a command or topic")
	for _, cmd := range commands {
		fmt.Fprintf(w, "- %-*s: %s\n", width, cmd.name, cmd.summary)
	}

	if topics {
		fmt.Fprintf(w, "\n## Topics\n")
		fmt.Fprintf(w, "- config: flags, and the wicked.toml file\n")
	}
}

// redirectLog sends the standard logger to w, without timestamps, until the
// returned func is called.
func redirectLog(w io.Writer) (restore func()) {
	out, flags, prefix := log.Writer(), log.Flags(), log.Prefix()
	log.SetOutput(w)
	log.SetFlags(0)
	log.SetPrefix("")
	return func() {
		log.SetOutput(out)
		log.SetFlags(flags)
		log.SetPrefix(prefix)
	}
}

var configHelp = template.Must(template.New("config").Parse(strings.TrimLeft(`
# Configuration
Flags may also be set in a wicked.toml file, found in the working directory or
any of its parents, or named by the -config flag. Flags given on the command
line take precedence. Recognized keys, with their current values:

    out = {{ printf "%q" .Config.Out }}
    sqlite = {{ printf "%q" .Config.SQLite }}
    report = {{ printf "%q" .Config.Report }}
    lines = {{ .Config.Lines }}
    decode = {{ .Config.Decode }}
    indent = {{ printf "%q" .Config.Indent }}
    verbose = {{ .Config.Verbose }}
    no_color = {{ .Config.NoColor }}
`, "\n")))
