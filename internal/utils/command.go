package utils

import (
	"errors"
	"strings"

	"github.com/kballard/go-shellquote"
)

var ErrEmptyCommand = errors.New("empty command")

// SplitStringIntoCommandAndArguments splits a command line the way a POSIX
// shell would, so keys and values may be quoted and contain spaces.
//
// Everything after the key is joined back with single spaces to form the
// value, which lets `put greeting hello world` store "hello world".
func SplitStringIntoCommandAndArguments(line string) (cmd, key, value string, err error) {
	words, err := shellquote.Split(line)
	if err != nil {
		return "", "", "", err
	}

	if len(words) == 0 {
		return "", "", "", ErrEmptyCommand
	}

	cmd = words[0]
	if len(words) > 1 {
		key = words[1]
	}
	if len(words) > 2 {
		value = strings.Join(words[2:], " ")
	}

	return cmd, key, value, nil
}
