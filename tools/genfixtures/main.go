//go:build ignore

// Command genfixtures regenerates the golden .out fixtures under testdata/
// by compiling and running every testdata/*.sxc program and capturing its
// svc-write output. Each program is run concurrently under a shared timeout,
// mirroring the fan-out/cancellation shape of
// jcorbin-gothird/scripts/gen_vm_expects.go, adapted here to drive sxc
// programs instead of piping generated Go source through goimports.
package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/sxc-lang/sxc"
)

func main() {
	dir := flag.String("dir", "testdata", "directory of *.sxc fixtures")
	timeout := flag.Duration("timeout", 5*time.Second, "time limit shared by all runs")
	flag.Parse()

	if err := run(*dir, *timeout); err != nil {
		log.Fatalln(err)
	}
}

// dumbHost feeds a fixed byte sequence to svc read and records every svc
// write, with no sleep delay -- fixture generation needs a deterministic,
// instant run, not wall-clock-accurate timing.
type dumbHost struct {
	in  []byte
	out bytes.Buffer
}

func (h *dumbHost) ReadByte() (byte, error) {
	if len(h.in) == 0 {
		return 0, fmt.Errorf("dumbHost: no more input bytes")
	}
	b := h.in[0]
	h.in = h.in[1:]
	return b, nil
}

func (h *dumbHost) WriteByte(b byte) error {
	h.out.WriteByte(b)
	return nil
}

func (*dumbHost) Sleep(int) {}

func run(dir string, timeout time.Duration) error {
	matches, err := filepath.Glob(filepath.Join(dir, "*.sxc"))
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	eg, ctx := errgroup.WithContext(ctx)
	for _, srcPath := range matches {
		srcPath := srcPath
		eg.Go(func() error {
			return genOne(ctx, srcPath)
		})
	}
	return eg.Wait()
}

func genOne(ctx context.Context, srcPath string) error {
	src, err := os.ReadFile(srcPath)
	if err != nil {
		return err
	}

	prog, err := sxc.Compile(string(src))
	if err != nil {
		return fmt.Errorf("%s: compile: %w", srcPath, err)
	}

	host := &dumbHost{}
	vm := sxc.NewVM(prog.Mem, host)
	if err := vm.Run(ctx); err != nil {
		return fmt.Errorf("%s: run: %w", srcPath, err)
	}

	goldenPath := strings.TrimSuffix(srcPath, ".sxc") + ".out"
	return os.WriteFile(goldenPath, host.out.Bytes(), 0644)
}
