package detector

import "fmt"

// FingerName labels a finger tip. The named fingers form the closed cycle
// Thumb -> Index -> Middle -> Ring -> Pinky -> Thumb.
type FingerName int

const (
	Unknown FingerName = iota
	Thumb
	Index
	Middle
	Ring
	Pinky
)

// Next returns the following finger in the cycle. Unknown has no neighbours.
func (f FingerName) Next() FingerName {
	switch f {
	case Thumb:
		return Index
	case Index:
		return Middle
	case Middle:
		return Ring
	case Ring:
		return Pinky
	case Pinky:
		return Thumb
	}
	return Unknown
}

// Prev returns the preceding finger in the cycle. Unknown has no neighbours.
func (f FingerName) Prev() FingerName {
	switch f {
	case Thumb:
		return Pinky
	case Index:
		return Thumb
	case Middle:
		return Index
	case Ring:
		return Middle
	case Pinky:
		return Ring
	}
	return Unknown
}

func (f FingerName) String() string {
	switch f {
	case Unknown:
		return "unknown"
	case Thumb:
		return "thumb"
	case Index:
		return "index"
	case Middle:
		return "middle"
	case Ring:
		return "ring"
	case Pinky:
		return "pinky"
	}
	return fmt.Sprintf("FingerName(%d)", int(f))
}

// MarshalText encodes the finger as its lower-case name.
func (f FingerName) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText decodes a lower-case finger name.
func (f *FingerName) UnmarshalText(text []byte) error {
	for n := Unknown; n <= Pinky; n++ {
		if n.String() == string(text) {
			*f = n
			return nil
		}
	}
	return fmt.Errorf("unknown finger name %q", text)
}
