package main

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcorbin/wicked/internal/cliui"
)

var testDump = strings.Join([]string{
	`<page>`,
	`  <title>Paris</title>`,
	`  <text>'''Paris''' is a [[city]] &amp; more.</text>`,
	`</page>`,
	``,
}, "\n")

func Test_ui(t *testing.T) {
	runUITest(t,
		time.Date(2021, 3, 4, 5, 6, 7, 0, time.UTC),

		cmd(nil,
			"# Usage\n",
			"> wickedTest [flags] COMMAND [ARGS...]\n",
			"\n",
			"## Commands\n",
			"- help   : show this overview, or help on a command or topic\n",
			"- parse  : parse a dump into record files\n",
			"- rebuild: rebuild a dump from record files\n",
			"- run    : parse a dump, store its records, and rebuild it\n",
		),

		cmd([]string{"help"},
			"# Usage\n",
			"> wickedTest [flags] COMMAND [ARGS...]\n",
			"\n",
			"## Commands\n",
			"- help   : show this overview, or help on a command or topic\n",
			"- parse  : parse a dump into record files\n",
			"- rebuild: rebuild a dump from record files\n",
			"- run    : parse a dump, store its records, and rebuild it\n",
			"\n",
			"## Topics\n",
			"- config: flags, and the wicked.toml file\n",
		),

		cmd([]string{"help", "nope"},
			"no help on \"nope\"\n",
		),

		cmdContains([]string{"help", "rebuild"},
			"> wickedTest rebuild [OUTPUT]\n",
			"-sqlite database",
		),

		withConfig(func(cfg *config) {
			cfg.Out = "recs"
			cfg.Lines = 10
		}),
		cmdContains([]string{"help", "parse"},
			"> wickedTest parse DUMP\n",
			`(now "recs")`,
		),
		cmdContains([]string{"help", "config"},
			"# Configuration\n",
			"    out = \"recs\"\n",
			"    lines = 10\n",
		),

		cmd([]string{"frob"},
			"unrecognized command \"frob\"\n",
		),

		cmd([]string{"parse"}, errNoInput),
		cmd([]string{"parse", "missing.xml"}, errors.New("missing.xml: file does not exist")),
	)
}

func Test_ui_roundTrip(t *testing.T) {
	var ms memStore
	ms.set("dump.xml", testDump)

	runUITest(t,
		time.Date(2021, 3, 4, 5, 6, 7, 0, time.UTC),
		&ms,
		withConfig(func(cfg *config) {
			cfg.Out = t.TempDir()
			cfg.NoColor = true
		}),

		"parse", cmdContains([]string{"parse", "dump.xml"},
			"[REPORT] PARSED LINES : 4 | FAILED ELEMENTS: 0\n",
			"[STATUS] ELAPSED: 0h 0m 0s\n",
		), nil,

		cmd([]string{"rebuild"}, testDump),

		"run", cmdContains([]string{"run", "dump.xml", "out.xml"},
			"[STATUS] rebuilt 4 lines into out.xml\n",
		), expectFile{"out.xml", testDump}, nil,

		"verbose", withConfig(func(cfg *config) {
			cfg.Verbose = true
		}), cmdContains([]string{"parse", "dump.xml"},
			"> log: <page @1:1-4:1>\n",
			"> log:   Word\"Paris\" @2:2\n",
		), nil,

		"line limit", withConfig(func(cfg *config) {
			cfg.Verbose = false
			cfg.Lines = 2
		}), cmdContains([]string{"parse", "dump.xml"},
			"[REPORT] PARSED LINES : 2 | FAILED ELEMENTS: 0\n",
		), cmd([]string{"rebuild"},
			"<page>\n",
			"  <title>Paris</title>\n",
		), nil,

		"sqlite", withConfig(func(cfg *config) {
			cfg.Lines = 0
			cfg.SQLite = filepath.Join(t.TempDir(), "wicked.db")
			cfg.Decode = true
		}), cmdContains([]string{"parse", "dump.xml"},
			"[REPORT] PARSED LINES : 4",
		), cmd([]string{"rebuild"},
			strings.Replace(testDump, "&amp;", "&", 1),
		), nil,

		"report", withConfig(func(cfg *config) {
			cfg.SQLite = ""
			cfg.Report = "report.html"
		}), cmdContains([]string{"parse", "dump.xml"},
			"[REPORT] PARSED LINES : 4",
		), expectFileContains{"report.html", "<td>Wiki-tags</td>"}, nil,
	)
}

func runUITest(tt *testing.T, args ...interface{}) {
	var tc uiTestCompiler
	if step, err := tc.compile(args...); err != nil {
		require.NoError(tt, err)
	} else if step != nil {
		var t uiTestContext
		t.T = tt
		t.prog = "wickedTest"
		t.clock = func() time.Time { return t.now }
		step.run(&t)
	}
}

func (tc *uiTestCompiler) compile(args ...interface{}) (uiTestStep, error) {
	for _, arg := range args {
		switch val := arg.(type) {
		// sub-test stack ops
		case string: // open a named sub-test
			tc.push(val)
		case nil: // close a named sub-test
			tc.pop()

		// add a step to the stack head
		case time.Time: // set the test clock
			tc.add(then(val))
		case time.Duration: // advance the test clock
			tc.add(elapse(val))
		case store: // set storage
			tc.add(withStorage{val})
		case uiTestArgs: // auto-name toplevel commands
			if tc.head().name == "" {
				tc.add(named{fmt.Sprintf("cmd: %q", val.args), val})
			} else {
				tc.add(val)
			}
		case uiTestStep: // any piece of test logic
			tc.add(val)

		default:
			return nil, fmt.Errorf("invalid ui test arg type %T", val)
		}
	}
	return tc.fin(), nil
}

type uiTestContext struct {
	*testing.T
	now time.Time
	ui
}

type uiTestStep interface {
	run(t *uiTestContext)
}

type withStorage struct{ store }

func (ws withStorage) run(t *uiTestContext) {
	t.store = ws.store
}

type withConfig func(cfg *config)

func (wc withConfig) run(t *uiTestContext) { wc(&t.cfg) }

type expectFile struct {
	name    string
	content string
}

func (expect expectFile) run(t *uiTestContext) {
	assert.Equal(t, expect.content, readTestFile(t, expect.name), "expected %v content", expect.name)
}

type expectFileContains struct {
	name string
	part string
}

func (expect expectFileContains) run(t *uiTestContext) {
	assert.Contains(t, readTestFile(t, expect.name), expect.part, "expected %v content", expect.name)
}

func readTestFile(t *uiTestContext, name string) string {
	var buf bytes.Buffer
	rc, err := t.store.open(name)
	require.NoError(t, err, "must open %v", name)
	_, err = buf.ReadFrom(rc)
	require.NoError(t, err, "must read %v", name)
	require.NoError(t, rc.Close(), "must close %v", name)
	return buf.String()
}

type then time.Time
type elapse time.Duration

func (tm then) run(t *uiTestContext)  { t.now = time.Time(tm) }
func (d elapse) run(t *uiTestContext) { t.now = t.now.Add(time.Duration(d)) }

func cmd(args []string, expect ...interface{}) (ta uiTestArgs) {
	ta.args = args
	for _, e := range expect {
		switch v := e.(type) {
		case string:
			ta.output += v
		case error:
			if ta.err != nil {
				panic("cmd already has an expected error ")
			}
			ta.err = v
		}
	}
	return ta
}

// cmdContains is like cmd, but only expects each given part to occur within
// the output.
func cmdContains(args []string, parts ...string) (ta uiTestArgs) {
	ta.args = args
	ta.parts = parts
	return ta
}

type uiTestArgs struct {
	args   []string
	output string
	parts  []string
	err    error
}

func (ta uiTestArgs) run(t *uiTestContext) {
	var out bytes.Buffer
	err := cliui.ArgsRequest(t.now, ta.args).Serve(&out, t)
	if ta.err != nil {
		assert.EqualError(t, err, ta.err.Error())
	} else {
		require.NoError(t, err, "unexpected error")
	}
	if ta.parts != nil {
		for _, part := range ta.parts {
			assert.Contains(t, out.String(), part, "expected output")
		}
	} else {
		assert.Equal(t, ta.output, out.String(), "expected output")
	}
}

type named struct {
	name string
	uiTestStep
}

func (n named) run(t *uiTestContext) {
	t.Run(n.name, func(tt *testing.T) {
		defer func(tt *testing.T) { t.T = tt }(t.T)
		t.T = tt
		n.uiTestStep.run(t)
	})
}

type uiTestSteps []uiTestStep

func (steps uiTestSteps) run(t *uiTestContext) {
	for _, step := range steps {
		if t.Failed() {
			break
		}
		step.run(t)
	}
}

func appendTestStep(a uiTestStep, bs ...uiTestStep) uiTestStep {
	steps, ok := a.(uiTestSteps)
	if !ok && a != nil {
		steps = uiTestSteps{a}
	}
	for _, b := range bs {
		if more, ok := b.(uiTestSteps); ok {
			steps = append(steps, more...)
		} else if b != nil {
			steps = append(steps, b)
		}
	}
	switch len(steps) {
	case 0:
		return nil
	case 1:
		return steps[0]
	default:
		return steps
	}
}

type uiTestCompiler struct {
	stack []named
}

func (tc *uiTestCompiler) head() named {
	if len(tc.stack) == 0 {
		return named{}
	}
	return tc.stack[len(tc.stack)-1]
}

func (tc *uiTestCompiler) add(step uiTestStep) {
	if i := len(tc.stack) - 1; i >= 0 {
		tc.stack[i].uiTestStep = appendTestStep(tc.stack[i].uiTestStep, step)
	} else {
		tc.stack = append(tc.stack, named{uiTestStep: step})
	}
}

func (tc *uiTestCompiler) push(name string) {
	tc.stack = append(tc.stack, named{name: name})
}

func (tc *uiTestCompiler) pop() bool {
	i := len(tc.stack) - 1
	if i < 1 {
		return false
	}
	head := tc.stack[i]
	tc.stack = tc.stack[:i]
	tc.add(head)
	return true
}

func (tc *uiTestCompiler) fin() uiTestStep {
	for tc.pop() {
	}
	ztep := tc.stack[0]
	tc.stack = tc.stack[:0]
	if ztep.name != "" {
		return ztep
	}
	return ztep.uiTestStep
}
