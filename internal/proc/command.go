package proc

import (
	"github.com/kballard/go-shellquote"
)

// Command is a single external tool invocation.
type Command struct {
	Binary string
	Args   []string
}

// String renders the command as a shell-quoted command line.
func (c Command) String() string {
	argv := make([]string, 0, len(c.Args)+1)
	argv = append(argv, c.Binary)
	argv = append(argv, c.Args...)
	return shellquote.Join(argv...)
}
