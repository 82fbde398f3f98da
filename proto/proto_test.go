package proto

import (
	"bufio"
	"strings"
	"testing"
)

func TestLookup(t *testing.T) {
	for token, cmd := range map[string]Command{
		"NICK": Nick,
		"LIST": List,
		"JOIN": Join,
		"LEAV": Leave,
		"MOVE": Move,
		"STRT": Start,
		"TACK": Tack,
		"PONG": Pong,
		"QUIT": Quit,
	} {
		if got := Lookup(token); got != cmd {
			t.Errorf("Lookup(%q) = %v, want %v", token, got, cmd)
		}
	}

	for _, token := range []string{"", "NIC", "nick", "START", "XXXX", "PING"} {
		if got := Lookup(token); got != Invalid {
			t.Errorf("Lookup(%q) = %v, want Invalid", token, got)
		}
	}
}

func TestFields(t *testing.T) {
	for _, test := range []struct {
		frame  string
		tokens []string
	}{
		{"LIST", []string{"LIST"}},
		{"NICK alice", []string{"NICK", "alice"}},
		{"WAIT a b", []string{"WAIT", "a", "b"}},
		// consecutive separators keep their empty token
		{"NICK  x", []string{"NICK", "", "x"}},
		{"NICK ", []string{"NICK", ""}},
	} {
		got := Fields(test.frame)
		if len(got) != len(test.tokens) {
			t.Errorf("Fields(%q) = %v, want %v", test.frame, got, test.tokens)
			continue
		}
		for i := range got {
			if got[i] != test.tokens[i] {
				t.Errorf("Fields(%q) = %v, want %v", test.frame, got, test.tokens)
				break
			}
		}
	}
}

func TestScanFrames(t *testing.T) {
	scanner := bufio.NewScanner(strings.NewReader("NICK alice|LIST|TACK"))
	scanner.Split(ScanFrames)

	var frames []string
	for scanner.Scan() {
		frames = append(frames, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		t.Fatal(err)
	}

	want := []string{"NICK alice", "LIST", "TACK"}
	if len(frames) != len(want) {
		t.Fatalf("frames = %v, want %v", frames, want)
	}
	for i := range want {
		if frames[i] != want[i] {
			t.Errorf("frame %d = %q, want %q", i, frames[i], want[i])
		}
	}
}
