// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bin

import (
	"flag"
	"strings"

	"github.com/pkg/errors"

	"github.com/gbhug5a/SD-Card-Bootloader-for-MSP430/sdbsl/internal/util"
)

type cmdArgs struct {
	in   string
	out  string
	base uint16
}

// parseArgs recognizes the arguments by their shape, in any order: the first
// two longer than 4 characters are the input and output file names, a shorter
// one is the base address in hex. Arguments that start with '/' or '-' are
// skipped, so are absolute paths. A file name of up to 4 characters is taken
// for the address.
func parseArgs(args []string) (a cmdArgs, err error) {
	var (
		baseErr error
		slashed []string
	)
	for _, arg := range args {
		switch {
		case arg != "" && arg[0] == '/':
			slashed = append(slashed, arg)
			continue
		case arg != "" && arg[0] == '-':
			continue
		case len(arg) > 4:
			if a.in == "" {
				a.in = arg
			} else if a.out == "" {
				a.out = arg
			}
		default:
			a.base, baseErr = util.ParseBase(arg)
		}
	}
	switch {
	case a.in == "":
		err = errors.New("missing input file")
	case a.out == "":
		err = errors.New("missing output file")
	case baseErr != nil:
		return a, errors.Wrap(baseErr, "error in hex value")
	case a.base == 0:
		return a, errors.New("missing base address")
	}
	if err != nil && len(slashed) != 0 {
		err = errors.Wrapf(
			err, "arguments starting with '/' are ignored (%s)",
			strings.Join(slashed, " "),
		)
	}
	return
}

// splitArgs separates the flags defined in fs (and -h, -help) from the rest
// of the arguments. Undefined flags stay in rest, where parseArgs skips them.
func splitArgs(fs *flag.FlagSet, args []string) (flags, rest []string) {
	for _, arg := range args {
		name, ok := strings.CutPrefix(arg, "-")
		if ok {
			name = strings.TrimPrefix(name, "-")
			name, _, _ = strings.Cut(name, "=")
			if name == "h" || name == "help" || fs.Lookup(name) != nil {
				flags = append(flags, arg)
				continue
			}
		}
		rest = append(rest, arg)
	}
	return
}

// parseCmdLine parses the known flags with fs and the remaining arguments
// with parseArgs.
func parseCmdLine(fs *flag.FlagSet, args []string) (cmdArgs, error) {
	flags, rest := splitArgs(fs, args)
	if err := fs.Parse(flags); err != nil {
		return cmdArgs{}, err
	}
	return parseArgs(append(rest, fs.Args()...))
}
