// cmd/quartsolve/main.go
//
// Command-line Quartiles solver.
//
// Modes:
//   quartsolve -generate
//       Build the binary dictionary cache from the text word list and exit.
//   quartsolve -board "azz,th,ss,..."         (20 fragments)
//   quartsolve -board-file ./board.txt
//       Solve a board: print every discovered word to stdout in discovery
//       order, then a solved/unsolved verdict on stderr.
//
// The dictionary directory/name flags mirror the server's DICT_DIR and
// DICT_NAME settings; a missing dictionary falls back to the embedded list.

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/quartiles-solver/assets"
	"github.com/robalobadob/quartiles-solver/internal/dict"
	"github.com/robalobadob/quartiles-solver/internal/puzzle"
	"github.com/robalobadob/quartiles-solver/internal/solver"
)

func main() {
	dictDir := flag.String("dict-dir", "./dict", "Directory containing the dictionary files")
	dictName := flag.String("dict", "english", "Dictionary name (shared by .txt and .dict, sans extension)")
	generate := flag.Bool("generate", false, "Just generate the binary dictionary cache and exit")
	boardArg := flag.String("board", "", "The 20 board fragments, comma or space separated")
	boardFile := flag.String("board-file", "", "File containing the 20 board fragments")
	timeout := flag.Duration("timeout", time.Minute, "Give up on a board after this long")
	quiet := flag.Bool("quiet", false, "Suppress emission of the solution to stdout")
	logLevel := flag.String("log-level", "warn", "Log level (trace/debug/info/warn/error)")
	flag.Parse()

	if lvl, err := zerolog.ParseLevel(*logLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	if *generate {
		if _, err := dict.Open(*dictDir, *dictName); err != nil {
			log.Fatal().Err(err).Msg("failed to generate binary dictionary")
		}
		return
	}

	if *boardArg == "" && *boardFile == "" {
		fmt.Fprintln(os.Stderr, "need -board or -board-file (or -generate)")
		os.Exit(2)
	}
	if *boardArg != "" && *boardFile != "" {
		fmt.Fprintln(os.Stderr, "cannot use both -board and -board-file")
		os.Exit(2)
	}

	board, err := loadBoard(*boardArg, *boardFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "bad board:", err)
		os.Exit(2)
	}

	d, err := dict.Open(*dictDir, *dictName)
	if err != nil {
		log.Warn().Err(err).Msg("no dictionary files; using embedded word list")
		words, werr := assets.WordList()
		if werr != nil {
			log.Fatal().Err(werr).Msg("failed to load embedded word list")
		}
		d = dict.New()
		d.Populate(words)
	}

	s, err := solver.New(d, board)
	if err != nil {
		fmt.Fprintln(os.Stderr, "solver:", err)
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()
	if err := s.SolveFully(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "aborted:", err)
		os.Exit(1)
	}

	if !*quiet {
		for _, w := range s.Solution() {
			fmt.Println(w)
		}
	}
	if s.IsSolved() {
		fmt.Fprintf(os.Stderr, "solved: %d words, all fragments used\n", len(s.Solution()))
	} else {
		fmt.Fprintf(os.Stderr, "finished without a full solution: %d words\n", len(s.Solution()))
	}
}

// loadBoard parses the board from the -board flag or a board file.
func loadBoard(arg, file string) (puzzle.Board, error) {
	if arg != "" {
		return puzzle.Parse(arg)
	}
	b, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	return puzzle.Parse(string(b))
}
