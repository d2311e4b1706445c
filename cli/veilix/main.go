package main

import (
	"os"

	veilixcmder "github.com/jutt313/aiveilix-go/cmd/veilix"
)

func main() {
	cmd := veilixcmder.NewVeilixCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
