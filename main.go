package main

import (
	"fmt"
	"os"

	"github.com/AdadaEdu/ClassificadorDeEmaisComHuggingFace/internal/bootstrap"
)

func main() {
	if err := bootstrap.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "email-classifier: %v\n", err)
		os.Exit(1)
	}
}
