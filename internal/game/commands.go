package game

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/vancomm/minefield/internal/session"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrBadArgs        = errors.New("invalid command arguments")
)

type Action uint8

const (
	Refresh Action = iota
	Open
	Flag
	TogglePause
	NewGame
	SelectDifficulty
	MainMenu
)

// Maps known commands to their minimum and maximum number of arguments
var commandNargs = map[string][2]int{
	"g": {0, 0},
	"o": {2, 2},
	"f": {2, 2},
	"p": {0, 0},
	"n": {0, 1},
	"d": {1, 1},
	"m": {0, 0},
}

var commandActions = map[string]Action{
	"g": Refresh,
	"o": Open,
	"f": Flag,
	"p": TogglePause,
	"n": NewGame,
	"d": SelectDifficulty,
	"m": MainMenu,
}

type Command struct {
	Action Action
	X, Y   int

	// Difficulty is meaningful for SelectDifficulty, and for NewGame when
	// HasDifficulty is set.
	Difficulty    session.Difficulty
	HasDifficulty bool
}

func parseXY(twoStrings []string) (x int, y int, err error) {
	if x, err = strconv.Atoi(twoStrings[0]); err != nil {
		err = fmt.Errorf("%w: first argument must be an int", ErrBadArgs)
		return
	}
	if y, err = strconv.Atoi(twoStrings[1]); err != nil {
		err = fmt.Errorf("%w: second argument must be an int", ErrBadArgs)
		return
	}
	return
}

// ParseCommand parses one line of the text protocol, e.g. "o 3 4" or
// "n expert".
func ParseCommand(line string) (Command, error) {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return Command{}, fmt.Errorf("%w: empty line", ErrUnknownCommand)
	}

	name, args := parts[0], parts[1:]
	nargs, ok := commandNargs[name]
	if !ok {
		return Command{}, fmt.Errorf("%w: %q", ErrUnknownCommand, name)
	}
	if len(args) < nargs[0] || len(args) > nargs[1] {
		return Command{}, fmt.Errorf("%w: %q takes %d to %d arguments, got %d",
			ErrBadArgs, name, nargs[0], nargs[1], len(args))
	}

	cmd := Command{Action: commandActions[name]}
	switch cmd.Action {
	case Open, Flag:
		x, y, err := parseXY(args)
		if err != nil {
			return Command{}, err
		}
		cmd.X, cmd.Y = x, y
	case NewGame, SelectDifficulty:
		if len(args) == 0 {
			break
		}
		d, err := session.ParseDifficulty(args[0])
		if err != nil {
			return Command{}, fmt.Errorf("%w: %w", ErrBadArgs, err)
		}
		cmd.Difficulty, cmd.HasDifficulty = d, true
	}
	return cmd, nil
}

func (c Command) String() string {
	switch c.Action {
	case Refresh:
		return "g"
	case Open:
		return fmt.Sprintf("o %d %d", c.X, c.Y)
	case Flag:
		return fmt.Sprintf("f %d %d", c.X, c.Y)
	case TogglePause:
		return "p"
	case NewGame:
		if c.HasDifficulty {
			return "n " + c.Difficulty.String()
		}
		return "n"
	case SelectDifficulty:
		return "d " + c.Difficulty.String()
	case MainMenu:
		return "m"
	default:
		return fmt.Sprintf("Command(%d)", c.Action)
	}
}
