// cmd/alienness/main.go
package main

import (
	"alienness/internal/app"
	"alienness/internal/appshell"
)

func main() {
	appshell.Main(app.RunContext)
}
