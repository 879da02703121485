package main

import (
	"fmt"
	"os"

	"github.com/ec2ctl-io/ec2ctl/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
