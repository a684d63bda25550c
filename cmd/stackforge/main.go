package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/eduardo/stackforge/internal/cli"
	"github.com/eduardo/stackforge/internal/domain"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		var verrs domain.ValidationErrors
		if errors.As(err, &verrs) {
			for _, v := range verrs {
				fmt.Fprintln(os.Stderr, "error:", v.Error())
			}
		} else {
			fmt.Fprintln(os.Stderr, "error:", err.Error())
		}
		os.Exit(1)
	}
}
