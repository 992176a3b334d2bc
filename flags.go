package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/robalobadob/wordle-buddy/internal/solver"
)

// constraintFlags turns the suggest flags into a constraint view.
//
//	absent:  "st" or "s,t"
//	correct: "a2,e4"  letter followed by a 0-based tile index
//	present: "r3,r1"  repeated letters accumulate positions
//	banned:  "stare,crane"
//
// Range checks on letters and tiles are left to View.Constraints.
func constraintFlags(absent, correct, present, banned string) (solver.View, error) {
	v := solver.View{
		Correct: map[string][]int{},
		Present: map[string][]int{},
	}
	for _, part := range splitList(absent) {
		for _, r := range part {
			v.Absent = append(v.Absent, string(r))
		}
	}
	var err error
	if v.Correct, err = letterPositions(correct); err != nil {
		return v, fmt.Errorf("--correct: %w", err)
	}
	if v.Present, err = letterPositions(present); err != nil {
		return v, fmt.Errorf("--present: %w", err)
	}
	v.Banned = splitList(banned)
	return v, nil
}

func letterPositions(s string) (map[string][]int, error) {
	out := map[string][]int{}
	for _, item := range splitList(s) {
		if len(item) < 2 {
			return nil, fmt.Errorf("%q: want a letter followed by a tile index", item)
		}
		idx, err := strconv.Atoi(item[1:])
		if err != nil {
			return nil, fmt.Errorf("%q: %w", item, err)
		}
		l := strings.ToLower(item[:1])
		out[l] = append(out[l], idx)
	}
	return out, nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
