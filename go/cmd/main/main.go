package main

import (
	"github.com/usercorn-project/usercorn/go/cmd"

	_ "github.com/usercorn-project/usercorn/go/cmd/run"

	_ "github.com/usercorn-project/usercorn/go/cmd/bpf"
	_ "github.com/usercorn-project/usercorn/go/cmd/cfg"
	_ "github.com/usercorn-project/usercorn/go/cmd/cgc"
	_ "github.com/usercorn-project/usercorn/go/cmd/com"
	_ "github.com/usercorn-project/usercorn/go/cmd/fuzz"
	_ "github.com/usercorn-project/usercorn/go/cmd/imgtrace"
	_ "github.com/usercorn-project/usercorn/go/cmd/repl"
	_ "github.com/usercorn-project/usercorn/go/cmd/shellcode"
	_ "github.com/usercorn-project/usercorn/go/cmd/trace"
)

func main() { cmd.Main() }
