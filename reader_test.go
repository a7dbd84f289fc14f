// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package ontree_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/creachadair/ontree"
	"github.com/google/go-cmp/cmp"
)

// readEvents reads input to the end of a document and returns a trace of
// the events read, one per line. On error the trace so far is returned along
// with the error.
func readEvents(input string) (string, error) {
	r := ontree.NewReader([]byte(input))
	var out []string
	for r.Last() != ontree.End {
		if err := r.Read(); err != nil {
			return strings.Join(out, "\n"), err
		}
		out = append(out, traceEvent(r))
	}
	return strings.Join(out, "\n"), nil
}

func traceEvent(r *ontree.Reader) string {
	switch ev := r.Last(); ev {
	case ontree.ObjectKey, ontree.String:
		return fmt.Sprintf("%v <%s>", ev, r.RawString())
	case ontree.Number:
		return fmt.Sprintf("%v <%v>", ev, r.Number())
	case ontree.Boolean:
		return fmt.Sprintf("%v <%v>", ev, r.Predicate())
	default:
		return ev.String()
	}
}

func TestReader(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`{}`, "object begin\nobject end\nend"},
		{" \t{\r\n}\v ", "object begin\nobject end\nend"},

		{`{"a":15}`, `
object begin
object key <a>
number <15>
object end
end`},

		// Out-of-range magnitudes saturate.
		{`{"a":1e999,"b":-1e999,"c":1e-999}`, `
object begin
object key <a>
number <+Inf>
object key <b>
number <-Inf>
object key <c>
number <0>
object end
end`},

		{` { "x" : null , "y" : [ true , -6.32 , "s\tq" , {} , [] ] } `, `
object begin
object key <x>
null
object key <y>
array begin
boolean <true>
number <-6.32>
string <s\tq>
object begin
object end
array begin
array end
array end
object end
end`},

		{`{"n":[0,5,0.1e-2,2E+3,-0.5,1.]}`, `
object begin
object key <n>
array begin
number <0>
number <5>
number <0.001>
number <2000>
number <-0.5>
number <1>
array end
object end
end`},

		{`{"\"\\\/\b\f\n\r\t":"\u0000Ǽꪜ","ü":"日本"}`, `
object begin
object key <\"\\\/\b\f\n\r\t>
string <\u0000Ǽꪜ>
object key <ü>
string <日本>
object end
end`},

		{`{"t":true,"f":false,"z":null}`, `
object begin
object key <t>
boolean <true>
object key <f>
boolean <false>
object key <z>
null
object end
end`},
	}
	for _, test := range tests {
		got, err := readEvents(test.input)
		if err != nil {
			t.Errorf("Read %#q: unexpected error: %v", test.input, err)
		}
		if diff := cmp.Diff(strings.TrimSpace(test.want), got); diff != "" {
			t.Errorf("Input: %#q\nEvents: (-want, +got)\n%s", test.input, diff)
		}
	}
}

func TestReaderErrors(t *testing.T) {
	tests := []struct {
		input string
		want  ontree.ErrorKind
	}{
		// Incomplete input.
		{``, ontree.NeedBuffer},
		{`   `, ontree.NeedBuffer},
		{`{`, ontree.NeedBuffer},
		{`{"a"`, ontree.NeedBuffer},
		{`{"a":`, ontree.NeedBuffer},
		{`{"a":"abc`, ontree.NeedBuffer},
		{`{"a":"abc\`, ontree.NeedBuffer},
		{`{"a":"\u12`, ontree.NeedBuffer},
		{`{"a":tr`, ontree.NeedBuffer},
		{`{"a":nul`, ontree.NeedBuffer},
		{`{"a":[`, ontree.NeedBuffer},
		{`{"a":[1`, ontree.NeedBuffer},
		{"{\"a\":\"\xe6\x97", ontree.NeedBuffer},

		// Syntax errors.
		{`[]`, ontree.IllFormed},
		{`"a"`, ontree.IllFormed},
		{`{"a":}`, ontree.IllFormed},
		{`{"a" 1}`, ontree.IllFormed},
		{`{a:1}`, ontree.IllFormed},
		{`{"a":fals}`, ontree.IllFormed},
		{`{"a":"\x"}`, ontree.IllFormed},
		{`{"a":"\u12G4"}`, ontree.IllFormed},
		{"{\"a\":\"\x80\"}", ontree.IllFormed},
		{`{"a":-}`, ontree.IllFormed},
		{"{\f}", ontree.IllFormed},
		{"{\"a\":\f1}", ontree.IllFormed},
		{`{"a":.}`, ontree.IllFormed},
		{`{"a":1,}`, ontree.IllFormed},
		{`{"a":1 "b":2}`, ontree.IllFormed},
		{`{"a":[1,]}`, ontree.IllFormed},
		{`{"a":[1 2]}`, ontree.IllFormed},
		{`{"a":[}`, ontree.IllFormed},
		{`{"a":{]}`, ontree.IllFormed},
	}
	for _, test := range tests {
		_, err := readEvents(test.input)
		if !errors.Is(err, test.want) {
			t.Errorf("Read %#q: got error %v, want %v", test.input, err, test.want)
		}
	}
}

// nested returns a document consisting of n nested objects.
func nested(n int) string {
	return strings.Repeat(`{"a":`, n-1) + "{}" + strings.Repeat("}", n-1)
}

func TestReaderDepth(t *testing.T) {
	for _, n := range []int{1, 2, 31, 32} {
		if _, err := readEvents(nested(n)); err != nil {
			t.Errorf("Depth %d: unexpected error: %v", n, err)
		}
	}
	for _, n := range []int{33, 40} {
		if _, err := readEvents(nested(n)); err != ontree.TooDeep {
			t.Errorf("Depth %d: got error %v, want %v", n, err, ontree.TooDeep)
		}
	}

	// An empty array at the limit is fine.
	arr := strings.Repeat(`{"a":`, 31) + "[]" + strings.Repeat("}", 31)
	if _, err := readEvents(arr); err != nil {
		t.Errorf("Array at limit: unexpected error: %v", err)
	}
}

func TestReaderPartial(t *testing.T) {
	r := ontree.NewReader([]byte(`{"foo": "b`))
	mustRead := func(want ontree.Event) {
		t.Helper()
		if err := r.Read(); err != nil {
			t.Fatalf("Read: unexpected error: %v", err)
		} else if got := r.Last(); got != want {
			t.Fatalf("Read: got %v, want %v", got, want)
		}
	}

	mustRead(ontree.ObjectBegin)
	if got := r.Offset(); got != 1 {
		t.Errorf("Offset: got %d, want 1", got)
	}
	mustRead(ontree.ObjectKey)
	if got := r.RawString().String(); got != "foo" {
		t.Errorf("Key: got %q, want foo", got)
	}
	if got := r.Offset(); got != 8 {
		t.Errorf("Offset: got %d, want 8", got)
	}

	// The value is incomplete. A failed read does not change the state.
	for range 2 {
		if err := r.Read(); err != ontree.NeedBuffer {
			t.Fatalf("Read: got %v, want %v", err, ontree.NeedBuffer)
		}
		if r.Last() != ontree.ObjectKey || r.Offset() != 8 || !r.Buffer().Equal(`"b`) {
			t.Fatalf("Read changed state: last=%v offset=%d buf=%q", r.Last(), r.Offset(), r.Buffer())
		}
	}

	r.Extend([]byte(`ar", "n": [tr`))
	mustRead(ontree.String)
	if got := r.RawString().String(); got != "bar" {
		t.Errorf("String: got %q, want bar", got)
	}
	mustRead(ontree.ObjectKey)
	mustRead(ontree.ArrayBegin)
	if got := r.Depth(); got != 2 {
		t.Errorf("Depth: got %d, want 2", got)
	}
	if err := r.Read(); err != ontree.NeedBuffer {
		t.Fatalf("Read: got %v, want %v", err, ontree.NeedBuffer)
	}

	r.Extend([]byte("ue]}"))
	mustRead(ontree.Boolean)
	if !r.Predicate() {
		t.Error("Predicate: got false, want true")
	}
	mustRead(ontree.ArrayEnd)
	mustRead(ontree.ObjectEnd)
	mustRead(ontree.End)
	if err := r.Read(); err != ontree.Unexpected {
		t.Errorf("Read past end: got %v, want %v", err, ontree.Unexpected)
	}
}

func TestReaderLongNumber(t *testing.T) {
	// Numeric literals are examined only up to a fixed length.
	const digits = "1234567890123456789012345678901" // 31 digits
	r := ontree.NewReader([]byte(`{"n":` + digits + `99}`))
	for r.Last() != ontree.Number {
		if err := r.Read(); err != nil {
			t.Fatalf("Read: unexpected error: %v", err)
		}
	}
	if got, want := r.Number(), 1234567890123456789012345678901.0; got != want {
		t.Errorf("Number: got %v, want %v", got, want)
	}
	if err := r.Read(); err != ontree.IllFormed {
		t.Errorf("Read: got %v, want %v", err, ontree.IllFormed)
	}
}

func TestEventString(t *testing.T) {
	tests := []struct {
		ev   ontree.Event
		want string
	}{
		{ontree.Begin, "begin"},
		{ontree.ObjectKey, "object key"},
		{ontree.End, "end"},
		{ontree.End + 10, "invalid event"},
	}
	for _, test := range tests {
		if got := test.ev.String(); got != test.want {
			t.Errorf("Event %d: got %q, want %q", test.ev, got, test.want)
		}
	}
	if !ontree.String.IsValue() || ontree.ObjectKey.IsValue() {
		t.Error("IsValue: wrong classification")
	}
}
