// Command wicked parses MediaWiki XML dumps into record files, and rebuilds
// dumps from them.
package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/jcorbin/wicked/internal/cliui"
)

func main() {
	var ui ui
	ui.prog = filepath.Base(os.Args[0])

	if err := ui.cfg.parse(flag.CommandLine, os.Args[1:]); err != nil {
		log.Fatalln(err)
	}
	if err := cliui.CLIRequest().Serve(os.Stdout, &ui); err != nil {
		log.Fatalln(err)
	}
}
