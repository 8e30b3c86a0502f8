/* Package cliui adapts command line arguments into line oriented user
requests, and collects handler output into a buffered response.

A request body holds one command per line, each made of space separated
args that may be quoted; CLIRequest builds a single command body from the
process arguments.
*/
package cliui

import (
	"bufio"
	"bytes"
	"flag"
	"io"
	"os"
	"time"

	"github.com/jcorbin/wicked/internal/wickutil"
)

// Handler handles a user request, writing output into a response.
type Handler interface {
	ServeUser(req *Request, resp *Response) error
}

// HandlerFunc adapts a function into a Handler.
type HandlerFunc func(req *Request, resp *Response) error

// ServeUser calls the receiver function.
func (f HandlerFunc) ServeUser(req *Request, resp *Response) error { return f(req, resp) }

// Request is a user request being handled: its time of arrival and a
// scanner over its commands and their args.
type Request struct {
	err  error
	now  time.Time
	body io.Reader
	cmd  *bufio.Scanner
	arg  *bufio.Scanner
}

// Response buffers output written by a Handler, flushing complete lines.
type Response struct {
	wickutil.WriteBuffer
}

// CLIRequest builds an ArgsRequest from the current time and the remaining
// command line args; flag.Args() is used once flags have been parsed.
func CLIRequest() Request {
	args := os.Args[1:]
	if flag.Parsed() {
		args = flag.Args()
	}
	return ArgsRequest(time.Now(), args)
}

// ArgsRequest builds a single command Request from args.
func ArgsRequest(now time.Time, args []string) Request {
	return Request{
		now:  now,
		body: bytes.NewReader(wickutil.QuotedArgs(args)),
	}
}

// Serve calls handler with the receiver and a Response writing to w,
// returning the first handler, request or response error.
func (req Request) Serve(w io.Writer, handler Handler) (rerr error) {
	if req.err != nil {
		return req.err
	}
	var resp Response
	resp.To = w
	defer func() {
		if rerr == nil {
			rerr = req.err
		}
		if ferr := resp.Flush(); rerr == nil {
			rerr = ferr
		}
	}()
	return handler.ServeUser(&req, &resp)
}

// Err returns any error encountered while scanning the request.
func (req *Request) Err() error { return req.err }

// Now returns the time the request was made.
func (req *Request) Now() time.Time { return req.now }

// Scan advances to the next command line of the request body.
func (req *Request) Scan() bool {
	if req.err != nil || req.body == nil {
		return false
	}
	if req.cmd == nil {
		req.cmd = bufio.NewScanner(req.body)
	}
	req.arg = nil
	if req.cmd.Scan() {
		return true
	}
	req.err = req.cmd.Err()
	return false
}

// ScanArg advances to the next arg of the current command, scanning the
// first command if none has been.
func (req *Request) ScanArg() bool {
	if req.err != nil {
		return false
	}
	if req.arg == nil {
		if req.cmd == nil && !req.Scan() {
			return false
		}
		req.arg = bufio.NewScanner(bytes.NewReader(req.cmd.Bytes()))
		req.arg.Split(wickutil.ScanArgs)
	}
	if req.arg.Scan() {
		return true
	}
	req.err = req.arg.Err()
	return false
}

// Args scans all remaining args of the current command.
func (req *Request) Args() []string {
	var args []string
	for req.ScanArg() {
		args = append(args, req.Arg())
	}
	return args
}

// Command returns the text of the current command.
func (req *Request) Command() string {
	if req.cmd == nil {
		return ""
	}
	return req.cmd.Text()
}

// Arg returns the current arg, unquoted.
func (req *Request) Arg() string {
	if req.arg == nil {
		return ""
	}
	return wickutil.UnquoteArg(req.arg.Text())
}
