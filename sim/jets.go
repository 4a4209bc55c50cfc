package sim

import "strings"

const (
	Left  = -1
	Right = 1
)

// Jets is the cyclic sequence of horizontal pushes read from one input line.
type Jets struct {
	pushes []int8
	cursor int
}

// ParseJets turns a pattern into pushes: '<' pushes left, every other
// character pushes right.
func ParseJets(pattern string) (*Jets, error) {
	pushes := make([]int8, 0, len(pattern))
	for _, c := range pattern {
		if c == '<' {
			pushes = append(pushes, Left)
		} else {
			pushes = append(pushes, Right)
		}
	}

	if len(pushes) == 0 {
		return nil, ErrEmptyPattern
	}

	return &Jets{pushes: pushes}, nil
}

// Next returns the current push and advances the cursor, wrapping at the end.
func (j *Jets) Next() int {
	push := int(j.pushes[j.cursor])
	j.cursor++
	if j.cursor == len(j.pushes) {
		j.cursor = 0
	}
	return push
}

// Cursor is the index of the push Next will return.
func (j *Jets) Cursor() int {
	return j.cursor
}

func (j *Jets) Len() int {
	return len(j.pushes)
}

func (j *Jets) String() string {
	var sb strings.Builder
	sb.Grow(len(j.pushes))
	for _, p := range j.pushes {
		if p == Left {
			sb.WriteByte('<')
		} else {
			sb.WriteByte('>')
		}
	}
	return sb.String()
}
