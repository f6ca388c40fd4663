package main

import (
	"oss.terrastruct.com/util-go/xmain"

	"oss.terrastruct.com/gridclick/gccli"
)

func main() {
	xmain.Main(gccli.Run)
}
