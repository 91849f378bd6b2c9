// Command ssrstack resolves a stage into the deployment graph for a
// server-rendered web app and either prints it (plan) or synthesizes it as a
// CDK app (synth, the cdk.json entry point).
package main

import (
	"fmt"
	"io"
	"os"
)

const (
	exitOK    = 0
	exitError = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr, os.LookupEnv))
}

func run(args []string, stdout, stderr io.Writer, lookupEnv func(string) (string, bool)) int {
	root := newRootCmd(&rootOptions{
		stdout:    stdout,
		stderr:    stderr,
		lookupEnv: lookupEnv,
	})
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(stderr, "ssrstack: FAIL: %v\n", err)
		return exitError
	}
	return exitOK
}
