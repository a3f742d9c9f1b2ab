package chat

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strings"
)

// wordRE tokenizes a message into words, accents included.
var wordRE = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// LoadWordlist reads trigger words, one per line, lowercased. Blank lines
// and #-comments are skipped. A missing file is an empty wordlist.
func LoadWordlist(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open wordlist: %w", err)
	}
	defer f.Close()

	var words []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read wordlist: %w", err)
	}
	return words, nil
}

// ContainsTrigger reports whether any whole word of the message matches a
// trigger. Matching is on whole words so "slt" does not fire on "résultat".
func ContainsTrigger(message string, triggers []string) bool {
	if len(triggers) == 0 {
		return false
	}
	words := wordRE.FindAllString(strings.ToLower(message), -1)
	for _, trigger := range triggers {
		for _, w := range words {
			if w == trigger {
				return true
			}
		}
	}
	return false
}
