package main

import (
	cmd "github.com/obfuscation-bench/obfuscation-eval-tool/cmd/obfeval"
)

func main() {
	cmd.Execute()
}
