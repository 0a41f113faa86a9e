package main

import (
	"log"

	"github.com/sjzar/file-uploader-mcp/cmd/uploader"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	uploader.Execute()
}
