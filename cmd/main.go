// Command flintc compiles a single Flint source file to the intermediate
// target text described by the front end in pkg, then passes that file to a
// downstream native compiler (cc) to produce a binary.
package main

import (
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/pborman/getopt/v2"
	"golang.org/x/sync/errgroup"

	flint "go.flint-lang.dev/pkg"
)

func main() {
	out := "a.out"
	debug := false

	getopt.FlagLong(&out, "out", 'o', "output path for the final binary")
	getopt.FlagLong(&debug, "debug", 'd', "emit human-readable comments in the intermediate text")
	getopt.SetParameters("SOURCE")
	getopt.Parse()

	args := getopt.Args()
	if len(args) != 1 {
		getopt.Usage()
		os.Exit(2)
	}

	if err := run(args[0], out, debug); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(source, out string, debug bool) error {
	intermediate := out + ".flint.c"

	c := flint.NewCompiler(debug)
	result, err := c.Compile(source, intermediate, os.Stderr)
	if err != nil {
		return err
	}
	if !result.Compiled() {
		return fmt.Errorf("flintc: %d error(s), no output produced", len(result.Errors))
	}

	return compileNative(intermediate, out)
}

// compileNative shells out to the downstream native compiler (cc by
// convention), streaming its stdout/stderr back concurrently so a large
// diagnostic output on either stream can never deadlock the pipe.
func compileNative(intermediate, out string) error {
	cmd := exec.Command("cc", "-o", out, intermediate)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return err
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return err
	}

	if err := cmd.Start(); err != nil {
		return err
	}

	var g errgroup.Group
	g.Go(func() error { _, err := io.Copy(os.Stdout, stdout); return err })
	g.Go(func() error { _, err := io.Copy(os.Stderr, stderr); return err })

	if err := g.Wait(); err != nil {
		return err
	}

	return cmd.Wait()
}
