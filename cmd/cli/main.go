// Command jvm-dump-analyser groups the threads of a JVM thread dump by
// normalized stack trace and prints the groups.
package main

import (
	"github.com/jvm-dump-analyser/cmd/cli/cmd"
)

func main() {
	cmd.Execute()
}
