// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package ontree

// Event is the type of a single structural step of a document, as produced
// by the Reader and the tree Generator, and consumed by the Writer.
type Event byte

// Constants defining the valid Event values.
const (
	Begin       Event = iota // before the start of a document
	ObjectBegin              // open brace "{"
	ObjectEnd                // close brace "}"
	ObjectKey                // member name followed by ":"
	ArrayBegin               // open bracket "["
	ArrayEnd                 // close bracket "]"
	Number                   // numeric value
	String                   // string value
	Boolean                  // true or false
	Null                     // null
	End                      // after the end of a document
)

var eventStr = [...]string{
	Begin:       "begin",
	ObjectBegin: "object begin",
	ObjectEnd:   "object end",
	ObjectKey:   "object key",
	ArrayBegin:  "array begin",
	ArrayEnd:    "array end",
	Number:      "number",
	String:      "string",
	Boolean:     "boolean",
	Null:        "null",
	End:         "end",
}

func (e Event) String() string {
	if int(e) >= len(eventStr) {
		return "invalid event"
	}
	return eventStr[e]
}

// IsValue reports whether e is a leaf value event.
func (e Event) IsValue() bool { return e >= Number && e <= Null }

// Scope is the kind of the innermost open container.
type Scope byte

// Constants defining the valid Scope values.
const (
	Object Scope = iota // inside an object
	Array               // inside an array
)

func (s Scope) String() string {
	if s == Object {
		return "object"
	}
	return "array"
}
