// Command wikiscan dumps the elements and tokens parsed from each line of a
// MediaWiki dump read from stdin.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/jcorbin/wicked/internal/wickutil"
	"github.com/jcorbin/wicked/wikiscan"
)

func main() {
	var (
		in      = os.Stdin
		out     = &wickutil.ErrWriter{Writer: os.Stdout}
		verbose bool
	)

	flag.BoolVar(&verbose, "v", false, "enable verbose output")
	flag.Parse()

	logOut := wickutil.PrefixWriter("> log: ", out)
	defer logOut.Close()
	log.SetOutput(logOut)
	log.SetFlags(0)

	var p wikiscan.Parser
	p.Logf = log.Printf

	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, 64*1024), wikiscan.MaxLineSize)

	var nodes, loose int
	if err := wickutil.WriteLines(out, func(w io.Writer, _ func()) bool {
		if !sc.Scan() {
			return false
		}
		open := append([]*wikiscan.Node(nil), p.Open()...)
		p.ParseLine(sc.Text())
		line := p.Line()

		width, _ := fmt.Fprintf(w, "%v. ", line)
		itemOut := wickutil.PrefixWriter(strings.Repeat(" ", width), w)
		itemOut.Skip = true
		defer itemOut.Close()

		doc := p.Document()
		added := doc.Nodes[nodes:]
		nodes = len(doc.Nodes)
		for _, node := range added {
			fmt.Fprintf(itemOut, "%+v\n", node)
		}
		if verbose {
			fmt.Fprintf(itemOut, "open: %v\n", p.Open())
		}
		for _, node := range append(open, added...) {
			dumpTokens(itemOut, lineTokens(node.Children, line), verbose)
		}
		dumpTokens(itemOut, doc.Loose[loose:], verbose)
		loose = len(doc.Loose)
		fmt.Fprintln(itemOut)
		return true
	}); err != nil {
		log.Fatalf("write error: %v", err)
	}

	if err := sc.Err(); err != nil {
		fmt.Printf("# main scan error\n%T: %v\n", err, err)
		os.Exit(1)
	}
}

// lineTokens returns the trailing tokens of ts that were parsed from line.
func lineTokens(ts wikiscan.Tokens, line int) wikiscan.Tokens {
	i := len(ts)
	for i > 0 && ts[i-1].Base().Line == line {
		i--
	}
	return ts[i:]
}

func dumpTokens(w io.Writer, ts wikiscan.Tokens, verbose bool) {
	format := "%v\n"
	if verbose {
		format = "%+v\n"
	}
	for _, t := range ts {
		fmt.Fprintf(w, format, t)
	}
}
