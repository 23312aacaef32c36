package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/vancomm/minefield/internal/config"
	"github.com/vancomm/minefield/internal/game"
	"github.com/vancomm/minefield/internal/mines"
	"github.com/vancomm/minefield/internal/records"
	"github.com/vancomm/minefield/internal/session"
)

const bestTimesShown = 5

var (
	debug      bool
	showMines  bool
	difficulty string
	logFile    string
)

func init() {
	flag.BoolVar(&debug, "debug", false, "log debug records")
	flag.BoolVar(&showMines, "show-mines", false, "place mines up front and draw them")
	flag.StringVar(&difficulty, "difficulty", "beginner", "beginner, intermediate or expert")
	flag.StringVar(&logFile, "log-file", "minefield.log", "log file path")
}

func newLogger() (*slog.Logger, io.Closer) {
	out := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    5, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
	}
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: level})), out
}

type repl struct {
	g      *game.Game
	board  *records.Memory
	out    io.Writer
	logger *slog.Logger
}

// step handles one input line and reports whether to keep going.
func (r *repl) step(ctx context.Context, line string) bool {
	switch strings.TrimSpace(line) {
	case "":
		return true
	case "q":
		return false
	case "h", "?":
		fmt.Fprint(r.out, help)
		return true
	case "t":
		d := r.g.Coordinator().Difficulty()
		best, err := r.board.Best(ctx, d, bestTimesShown)
		if err != nil {
			r.logger.Error("unable to read best times", slog.Any("error", err))
			return true
		}
		renderBest(r.out, d, best)
		return true
	}

	if _, err := r.g.Handle(line); err != nil {
		fmt.Fprintf(r.out, "%s (h for help)\n", err)
		return true
	}
	render(r.out, r.g, showMines)
	return true
}

func run(ctx context.Context, in io.Reader, out io.Writer, logger *slog.Logger) error {
	d, err := session.ParseDifficulty(difficulty)
	if err != nil {
		return err
	}

	board := records.NewMemory(logger, bestTimesShown)
	g, err := game.New(d, game.Options{
		Rand:      mines.NewRand(),
		Logger:    logger,
		ShowMines: showMines,
		OnWin: func(res game.Result) {
			rec := records.New(res.Difficulty, res.Elapsed, time.Now())
			if err := board.Add(ctx, rec); err != nil {
				logger.Error("unable to save record", slog.Any("error", err))
			}
		},
	})
	if err != nil {
		return err
	}

	r := &repl{g: g, board: board, out: out, logger: logger}
	fmt.Fprint(out, help)
	render(out, g, showMines)

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			break
		}
		if !r.step(ctx, scanner.Text()) {
			break
		}
	}
	return scanner.Err()
}

func main() {
	flag.Parse()

	if err := config.Load(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	debug = debug || config.Debug()
	showMines = showMines || config.ShowMines()

	logger, closer := newLogger()
	defer closer.Close()
	mines.Log = logger

	logger.Info("starting", slog.String("difficulty", difficulty), slog.Bool("showMines", showMines))

	if err := run(context.Background(), os.Stdin, os.Stdout, logger); err != nil {
		logger.Error("exiting", slog.Any("error", err))
		fmt.Fprintln(os.Stderr, err)
		closer.Close()
		os.Exit(1)
	}
}
