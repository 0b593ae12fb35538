package main

import (
	"strings"
	"testing"
)

func TestREPLSingleLine(t *testing.T) {
	m := newREPLModel()
	m.consumeLine("print 1 + 2")

	if len(m.history) != 1 {
		t.Fatalf("expected one history entry, got %d", len(m.history))
	}
	entry := m.history[0]
	if entry.isErr {
		t.Fatalf("unexpected error entry: %q", entry.output)
	}
	if entry.output != "3" {
		t.Fatalf("got %q", entry.output)
	}
}

func TestREPLKeepsSessionState(t *testing.T) {
	m := newREPLModel()
	m.consumeLine("x = 10")
	m.consumeLine("print x * 2")

	last := m.history[len(m.history)-1]
	if last.output != "20" {
		t.Fatalf("got %q", last.output)
	}
}

func TestREPLAccumulatesBlocks(t *testing.T) {
	m := newREPLModel()
	m.consumeLine("class Greeter:")
	m.consumeLine("  def hello():")
	m.consumeLine("    return 'hi'")
	if len(m.history) != 0 {
		t.Fatalf("block must stay pending until closed")
	}
	if len(m.pending) != 3 {
		t.Fatalf("expected three pending lines, got %d", len(m.pending))
	}

	m.consumeLine("")
	if len(m.pending) != 0 {
		t.Fatalf("empty line must flush the block")
	}
	if len(m.history) != 1 || m.history[0].isErr {
		t.Fatalf("block evaluation failed: %#v", m.history)
	}

	m.consumeLine("g = Greeter()")
	m.consumeLine("print g.hello()")
	last := m.history[len(m.history)-1]
	if last.output != "hi" {
		t.Fatalf("got %q", last.output)
	}
}

func TestREPLReportsErrors(t *testing.T) {
	m := newREPLModel()
	m.consumeLine("print missing")

	entry := m.history[0]
	if !entry.isErr {
		t.Fatalf("expected error entry")
	}
	if !strings.Contains(entry.output, "undefined variable missing") {
		t.Fatalf("got %q", entry.output)
	}
}

func TestREPLIgnoresBlankInput(t *testing.T) {
	m := newREPLModel()
	m.consumeLine("")
	m.consumeLine("   ")
	if len(m.history) != 0 || len(m.pending) != 0 {
		t.Fatalf("blank input must be ignored")
	}
}
