package main

import (
	"fmt"

	"github.com/ratel-online/assistant/cmd"
	"github.com/ratel-online/core/util/async"
)

func main() {
	defer func() {
		if err := recover(); err != nil {
			fmt.Println("main", err)
			async.PrintStackTrace(err)
		}
	}()
	cmd.Execute()
}
