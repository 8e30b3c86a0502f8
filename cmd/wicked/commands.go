package main

import (
	"bufio"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	"github.com/jcorbin/wicked/internal/cliui"
	"github.com/jcorbin/wicked/internal/records"
	"github.com/jcorbin/wicked/internal/report"
	"github.com/jcorbin/wicked/transpile"
	"github.com/jcorbin/wicked/wikiscan"
)

var errNoInput = errors.New("no input dump given")

var commands = []command{
	newCommand("parse", "parse a dump into record files", `> {{ .Command }} DUMP

Parses DUMP, an XML dump file optionally compressed with bzip2 (when named *.bz2),
or "-" for stdin. Records are written to the -out directory (now {{ printf "%q" .Config.Out }}),
and to the -sqlite database if one is given.
`, serveParse),

	newCommand("rebuild", "rebuild a dump from record files", `> {{ .Command }} [OUTPUT]

Rebuilds a dump from the records in the -out directory, or the -sqlite database if
one is given, writing it into OUTPUT or printing it.
`, serveRebuild),

	newCommand("run", "parse a dump, store its records, and rebuild it", `> {{ .Command }} DUMP [OUTPUT]

Does parse, then rebuild from the parsed document.
`, serveRun),
}

func serveParse(ctx *context, req *cliui.Request, res *cliui.Response) error {
	if !req.ScanArg() {
		return errNoInput
	}
	_, err := ctx.parse(req.Arg(), res)
	return err
}

func serveRebuild(ctx *context, req *cliui.Request, res *cliui.Response) error {
	doc, err := ctx.load()
	if err != nil {
		return err
	}
	var output string
	if req.ScanArg() {
		output = req.Arg()
	}
	return ctx.rebuild(doc, output, res)
}

func serveRun(ctx *context, req *cliui.Request, res *cliui.Response) error {
	if !req.ScanArg() {
		return errNoInput
	}
	doc, err := ctx.parse(req.Arg(), res)
	if err != nil {
		return err
	}
	var output string
	if req.ScanArg() {
		output = req.Arg()
	}
	return ctx.rebuild(doc, output, res)
}

// parse reads and parses the named dump, stores its records, and reports.
func (ctx *context) parse(name string, res *cliui.Response) (_ *wikiscan.Document, rerr error) {
	dr, err := openDump(ctx.store, name)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := dr.Close(); rerr == nil {
			rerr = cerr
		}
	}()

	start := ctx.now()
	var p wikiscan.Parser
	if ctx.cfg.Verbose {
		p.Logf = log.Printf
	}
	sc := bufio.NewScanner(dr)
	sc.Buffer(make([]byte, 0, 64*1024), wikiscan.MaxLineSize)
	for (ctx.cfg.Lines <= 0 || p.Line() < ctx.cfg.Lines) && sc.Scan() {
		p.ParseLine(sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%s line %v: %w", name, p.Line()+1, err)
	}
	doc := p.Document()
	if ctx.cfg.Verbose {
		trace(doc)
	}

	set := records.Flatten(doc)
	if err := records.WriteFiles(ctx.cfg.Out, set); err != nil {
		return nil, err
	}
	if ctx.cfg.SQLite != "" {
		if err := writeSQLite(ctx.cfg.SQLite, set); err != nil {
			return nil, err
		}
	}

	rep := report.Report{
		Stats:   p.Stats(),
		Input:   dr.Size(),
		Elapsed: ctx.now().Sub(start),
	}
	if err := rep.WriteText(res, !ctx.cfg.NoColor && !color.NoColor); err != nil {
		return nil, err
	}
	if ctx.cfg.Report != "" {
		if err := ctx.writeReport(ctx.cfg.Report, rep); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

func writeSQLite(path string, set *records.Set) (rerr error) {
	db, err := records.OpenSQLite(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := db.Close(); rerr == nil {
			rerr = cerr
		}
	}()
	return records.WriteSQLite(db, set)
}

func (ctx *context) writeReport(name string, rep report.Report) error {
	content := rep.Markdown()
	if ext := strings.ToLower(filepath.Ext(name)); ext == ".html" || ext == ".htm" {
		content = rep.HTML()
	}
	w, err := ctx.store.create(name)
	if err != nil {
		return err
	}
	defer w.Cleanup()
	if _, err := w.Write(content); err != nil {
		return err
	}
	return w.Close()
}

// load reads back stored records.
func (ctx *context) load() (*wikiscan.Document, error) {
	var (
		set *records.Set
		err error
	)
	if ctx.cfg.SQLite != "" {
		set, err = readSQLite(ctx.cfg.SQLite)
	} else {
		set, err = records.ReadFiles(ctx.cfg.Out)
	}
	if err != nil {
		return nil, err
	}
	return records.Build(set)
}

func readSQLite(path string) (*records.Set, error) {
	db, err := records.OpenSQLite(path)
	if err != nil {
		return nil, err
	}
	defer db.Close()
	return records.ReadSQLite(db)
}

// rebuild writes doc into the named output, or into res if name is empty.
func (ctx *context) rebuild(doc *wikiscan.Document, name string, res *cliui.Response) error {
	opts := transpile.Options{
		Indent:         ctx.cfg.Indent,
		DecodeEntities: ctx.cfg.Decode,
	}
	if name == "" {
		return transpile.Write(res, doc, opts)
	}
	w, err := ctx.store.create(name)
	if err != nil {
		return err
	}
	defer w.Cleanup()
	if err := transpile.Write(w, doc, opts); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	fmt.Fprintf(res, "%s rebuilt %v lines into %s\n", statusTag(ctx), doc.Lines, name)
	return nil
}

func statusTag(ctx *context) string {
	c := color.New(color.FgGreen, color.Bold)
	if ctx.cfg.NoColor {
		c.DisableColor()
	}
	return c.Sprint("[STATUS]")
}

// trace logs every parsed element and token.
func trace(doc *wikiscan.Document) {
	for _, node := range doc.Nodes {
		log.Printf("%+v", node)
		traceTokens(node.Children, "  ")
	}
	if len(doc.Loose) > 0 {
		log.Printf("loose text:")
		traceTokens(doc.Loose, "  ")
	}
}

func traceTokens(ts wikiscan.Tokens, indent string) {
	ts.Walk(func(t wikiscan.Token, parent *wikiscan.WikiTag) {
		if parent != nil {
			log.Printf("%s%s%+v", indent, indent, t)
		} else {
			log.Printf("%s%+v", indent, t)
		}
	})
}
