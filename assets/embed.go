package assets

import (
	"bufio"
	"embed"
	"strings"
)

//go:embed words.txt boards.txt
var FS embed.FS

func readLines(name string) ([]string, error) {
	f, err := FS.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, strings.ToLower(s))
	}
	return out, sc.Err()
}

// WordList returns the embedded fallback dictionary, one word per entry.
// It is intentionally small: enough to solve the packaged sample boards and
// run the service without any configured dictionary files.
func WordList() ([]string, error) {
	return readLines("words.txt")
}

// SampleBoards returns the packaged boards, each a list of 20 fragments in
// row-major order (one board per line in boards.txt, space-separated).
func SampleBoards() ([][]string, error) {
	lines, err := readLines("boards.txt")
	if err != nil {
		return nil, err
	}
	out := make([][]string, 0, len(lines))
	for _, l := range lines {
		out = append(out, strings.Fields(l))
	}
	return out, nil
}
