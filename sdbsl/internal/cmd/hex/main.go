// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hex

import (
	"bytes"
	"flag"
	"fmt"
	"os"

	"github.com/marcinbor85/gohex"
	"github.com/pkg/errors"

	"github.com/gbhug5a/SD-Card-Bootloader-for-MSP430/sdbsl/internal/flashimg"
	"github.com/gbhug5a/SD-Card-Bootloader-for-MSP430/sdbsl/internal/util"
)

const Descr = "convert a bootloader image back to the Intel HEX format"

func Main(cmd string, args []string) {
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(
			os.Stderr, "Usage:\n  %s [OPTIONS] BIN [HEX]\nOptions:\n", cmd,
		)
		fs.PrintDefaults()
	}
	base := fs.String(
		"base", "",
		"base `address` in hex (default: inferred from the image size)",
	)
	lineLen := fs.Uint("line", 16, "number of data bytes per HEX line")
	keepErased := fs.Bool(
		"keep-erased", false, "write the erased (0xFF) bytes too",
	)
	fs.Parse(args)
	if fs.NArg() < 1 || fs.NArg() > 2 {
		fs.Usage()
		os.Exit(1)
	}
	if *lineLen == 0 || *lineLen > 255 {
		util.Fatal("hex: bad line length: %d", *lineLen)
	}
	in, out := util.InOutFiles(fs.Arg(0), fs.Arg(1), ".hex")
	data, err := os.ReadFile(in)
	util.FatalErr("", err)
	var b uint16
	if *base == "" {
		b, err = flashimg.InferBase(len(data))
	} else {
		b, err = util.ParseBase(*base)
	}
	util.FatalErr("", err)
	mem, err := toMemory(data, b, *keepErased)
	util.FatalErr(in, err)
	var buf bytes.Buffer
	err = mem.DumpIntelHex(&buf, byte(*lineLen))
	util.FatalErr("dumpintelhex", err)
	util.FatalErr("", os.WriteFile(out, buf.Bytes(), 0o666))
}

// toMemory verifies the finalized image and returns its content, with the
// reset vector restored, placed at the absolute addresses. Runs of erased
// bytes are omitted unless keepErased is set.
func toMemory(data []byte, base uint16, keepErased bool) (*gohex.Memory, error) {
	if err := flashimg.Verify(data, base); err != nil {
		return nil, errors.Wrap(err, "verify")
	}
	img := bytes.Clone(data)
	n := len(img)
	img[n-2] = byte(base)
	keep := func(i int) bool {
		return keepErased || img[i] != flashimg.Erased || i >= n-2
	}
	mem := gohex.NewMemory()
	for i := 0; i < n; {
		if !keep(i) {
			i++
			continue
		}
		k := i
		for k < n && keep(k) {
			k++
		}
		if err := mem.AddBinary(uint32(base)+uint32(i), img[i:k:k]); err != nil {
			return nil, err
		}
		i = k
	}
	return mem, nil
}
