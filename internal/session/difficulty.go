package session

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownDifficulty = errors.New("unknown difficulty")

type Difficulty uint8

const (
	Beginner Difficulty = iota
	Intermediate
	Expert
)

var Difficulties = []Difficulty{Beginner, Intermediate, Expert}

type Params struct {
	Width     int `json:"width"`
	Height    int `json:"height"`
	MineCount int `json:"mine_count"`
}

func (d Difficulty) Params() (Params, error) {
	switch d {
	case Beginner:
		return Params{9, 9, 10}, nil
	case Intermediate:
		return Params{16, 16, 40}, nil
	case Expert:
		return Params{30, 16, 99}, nil
	default:
		return Params{}, fmt.Errorf("%w: %d", ErrUnknownDifficulty, uint8(d))
	}
}

func (d Difficulty) String() string {
	switch d {
	case Beginner:
		return "beginner"
	case Intermediate:
		return "intermediate"
	case Expert:
		return "expert"
	default:
		return fmt.Sprintf("Difficulty(%d)", uint8(d))
	}
}

func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "beginner", "b":
		return Beginner, nil
	case "intermediate", "i":
		return Intermediate, nil
	case "expert", "e":
		return Expert, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownDifficulty, s)
	}
}

// [Difficulty] implements [encoding.TextMarshaler]
func (d Difficulty) MarshalText() ([]byte, error) {
	if _, err := d.Params(); err != nil {
		return nil, err
	}
	return []byte(d.String()), nil
}

func (d *Difficulty) UnmarshalText(text []byte) error {
	v, err := ParseDifficulty(string(text))
	if err != nil {
		return err
	}
	*d = v
	return nil
}
